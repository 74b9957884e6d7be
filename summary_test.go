package tfrecord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlrecord/tfrecord/tfproto"
)

func TestFromScalar(t *testing.T) {
	s := FromScalar("acc", 0.9)
	require.Len(t, s.Value, 1)
	assert.Equal(t, "acc", s.Value[0].Tag)
	assert.True(t, s.Value[0].HasSimpleValue)
	assert.Equal(t, float32(0.9), s.Value[0].SimpleValue)
}

func TestFromHistogramOfSlice(t *testing.T) {
	s, err := FromHistogram("dist", HistogramOfSlice([]int32{1, 2, 3}))
	require.NoError(t, err)
	require.Len(t, s.Value, 1)
	assert.Equal(t, 3.0, s.Value[0].Histo.Num)
}

func TestFromImageListTagsByIndex(t *testing.T) {
	imgs := []*tfproto.Image{{Height: 1, Width: 1}, {Height: 2, Width: 2}}
	s := FromImageList("batch", imgs)
	require.Len(t, s.Value, 2)
	assert.Equal(t, "batch/image/0", s.Value[0].Tag)
	assert.Equal(t, "batch/image/1", s.Value[1].Tag)
}
