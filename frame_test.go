package tfrecord

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRecordRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := []byte("a single record")
	require.NoError(t, writeRecord(&buf, want))

	got, ok, err := readRecord(&buf, true, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestReadRecordCleanEOF(t *testing.T) {
	var buf bytes.Buffer
	_, ok, err := readRecord(&buf, true, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadRecordTruncatedHeaderIsError(t *testing.T) {
	buf := bytes.NewBuffer([]byte{1, 2, 3})
	_, ok, err := readRecord(buf, true, nil)
	assert.False(t, ok)
	require.Error(t, err)
	var eof *ErrUnexpectedEOF
	assert.ErrorAs(t, err, &eof)
}

func TestReadRecordRejectsCorruptPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecord(&buf, []byte("payload")))
	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xFF

	_, ok, err := readRecord(bytes.NewReader(corrupted), true, nil)
	assert.False(t, ok)
	require.Error(t, err)
	var mismatch *ErrChecksumMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestReadRecordSkipsPayloadCheckWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecord(&buf, []byte("payload")))
	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xFF

	got, ok, err := readRecord(bytes.NewReader(corrupted), false, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), got)
}

func TestReadRecordRejectsCorruptLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecord(&buf, []byte("payload")))
	corrupted := buf.Bytes()
	corrupted[0] ^= 0xFF

	_, ok, err := readRecord(bytes.NewReader(corrupted), true, nil)
	assert.False(t, ok)
	require.Error(t, err)
	var mismatch *ErrChecksumMismatch
	assert.ErrorAs(t, err, &mismatch)
}
