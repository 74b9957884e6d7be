package tfrecord

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFlusher struct {
	bytes.Buffer
	flushes int
}

func (f *countingFlusher) Flush() error {
	f.flushes++
	return nil
}

func TestWriterFlushDelegatesWhenSupported(t *testing.T) {
	f := &countingFlusher{}
	w := NewRawWriter(f)
	require.NoError(t, w.Send([]byte("x")))
	require.NoError(t, w.Flush())
	assert.Equal(t, 1, f.flushes)
}

func TestWriterFlushIsNoopWithoutFlusher(t *testing.T) {
	var buf bytes.Buffer
	w := NewRawWriter(&buf)
	require.NoError(t, w.Send([]byte("x")))
	assert.NoError(t, w.Flush())
}

func TestWriterProducesVerifiableFrames(t *testing.T) {
	var buf bytes.Buffer
	w := NewRawWriter(&buf)
	require.NoError(t, w.Send([]byte("payload")))

	record, ok, err := readRecord(&buf, true, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), record)
}
