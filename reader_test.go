package tfrecord

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlrecord/tfrecord/tfproto"
)

func TestRawReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewRawWriter(&buf)
	records := [][]byte{[]byte("one"), []byte("two"), []byte("three")}
	for _, r := range records {
		require.NoError(t, w.Send(r))
	}

	rd := NewRawReader(&buf, RecordReaderConfig{CheckIntegrity: true})
	var got [][]byte
	for rd.Next() {
		got = append(got, rd.Value())
	}
	require.NoError(t, rd.Err())
	assert.Equal(t, records, got)
}

func TestRawReaderStopsAfterFirstError(t *testing.T) {
	var corruptBuf, restBuf bytes.Buffer
	require.NoError(t, writeRecord(&corruptBuf, []byte("ok")))
	corrupted := append([]byte(nil), corruptBuf.Bytes()...)
	corrupted[len(corrupted)-1] ^= 0xFF
	require.NoError(t, writeRecord(&restBuf, []byte("never reached")))

	rd := NewRawReader(io.MultiReader(bytes.NewReader(corrupted), &restBuf), RecordReaderConfig{CheckIntegrity: true})
	assert.False(t, rd.Next())
	require.Error(t, rd.Err())
	assert.False(t, rd.Next(), "reader must stay terminally failed")
}

func TestExampleReaderRoundTripEmptyExample(t *testing.T) {
	var buf bytes.Buffer
	w := NewExampleWriter(&buf)
	require.NoError(t, w.Send(&tfproto.Example{}))

	rd := NewExampleReader(&buf, RecordReaderConfig{CheckIntegrity: true})
	require.True(t, rd.Next())
	got := rd.Value()
	require.NoError(t, rd.Err())
	require.NotNil(t, got.Features)
	assert.Empty(t, got.Features.Feature)
	assert.False(t, rd.Next())
}

func TestExampleReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewExampleWriter(&buf)
	ex := &tfproto.Example{Features: &tfproto.Features{Feature: map[string]*tfproto.Feature{
		"label": {Int64List: &tfproto.Int64List{Value: []int64{1}}},
	}}}
	require.NoError(t, w.Send(ex))

	rd := NewExampleReader(&buf, RecordReaderConfig{CheckIntegrity: true})
	require.True(t, rd.Next())
	got := rd.Value()
	require.NoError(t, rd.Err())
	assert.Equal(t, []int64{1}, got.Features.Feature["label"].Int64List.Value)
	assert.False(t, rd.Next())
}
