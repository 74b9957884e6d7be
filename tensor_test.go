package tfrecord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlrecord/tfrecord/tfproto"
)

func TestFromSliceRejectsShapeMismatch(t *testing.T) {
	_, err := FromSlice([]int{2, 2}, []float32{1, 2, 3})
	require.Error(t, err)
}

func TestFromSliceEncodesRowMajor(t *testing.T) {
	tp, err := FromSlice([]int{2, 2}, []float32{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, tfproto.DTFloat, tp.Dtype)
	assert.Len(t, tp.TensorContent, 4*4)
	require.Len(t, tp.TensorShape.Dim, 2)
	assert.Equal(t, int64(2), tp.TensorShape.Dim[0].Size)
}

func TestFromByteSlicesVarintLayout(t *testing.T) {
	tp, err := FromByteSlices([]int{2}, [][]byte{[]byte("a"), []byte("bb")})
	require.NoError(t, err)
	assert.Equal(t, tfproto.DTString, tp.Dtype)
	// varint(1) 'a' varint(2) 'b' 'b'
	assert.Equal(t, []byte{1, 'a', 2, 'b', 'b'}, tp.TensorContent)
}

func TestToTensorRequiresEqualRowLengths(t *testing.T) {
	_, err := ToTensor([][]float64{{1, 2}, {3}})
	require.Error(t, err)
}

func TestToTensorShape(t *testing.T) {
	tp, err := ToTensor([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), tp.TensorShape.Dim[0].Size)
	assert.Equal(t, int64(3), tp.TensorShape.Dim[1].Size)
}

func TestHistogramOfTensorCountsEveryElement(t *testing.T) {
	tp, err := FromSlice([]int{4}, []int32{1, 2, 3, 4})
	require.NoError(t, err)

	s, err := FromHistogram("weights", HistogramOfTensor(tp))
	require.NoError(t, err)
	assert.Equal(t, 4.0, s.Value[0].Histo.Num)
	assert.Equal(t, 10.0, s.Value[0].Histo.Sum)
}

func TestHistogramOfTensorRejectsStringDtype(t *testing.T) {
	tp, err := FromByteSlices([]int{1}, [][]byte{[]byte("x")})
	require.NoError(t, err)

	_, err = FromHistogram("strings", HistogramOfTensor(tp))
	require.Error(t, err)
}
