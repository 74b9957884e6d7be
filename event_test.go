package tfrecord

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlrecord/tfrecord/tfproto"
)

func TestEventWriterWriteScalarRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	ew := FromWriter(&buf, EventWriterConfig{AutoFlush: true})
	require.NoError(t, ew.WriteScalar("loss", 0.5, NewEventMeta(1)))

	rd := NewEventReader(&buf, RecordReaderConfig{CheckIntegrity: true})
	require.True(t, rd.Next())
	ev := rd.Value()
	require.NoError(t, rd.Err())
	assert.Equal(t, int64(1), ev.Step)
	require.Len(t, ev.Summary.Value, 1)
	assert.Equal(t, "loss", ev.Summary.Value[0].Tag)
	assert.Equal(t, float32(0.5), ev.Summary.Value[0].SimpleValue)
}

func TestEventWriterWriteHistogram(t *testing.T) {
	var buf bytes.Buffer
	ew := FromWriter(&buf, EventWriterConfig{AutoFlush: true})
	acc := NewDefaultAccumulator()
	require.NoError(t, acc.Add(0.3, 1))
	require.NoError(t, ew.WriteHistogram("weights", FromAccumulator(acc), NewEventMeta(0)))

	rd := NewEventReader(&buf, RecordReaderConfig{CheckIntegrity: true})
	require.True(t, rd.Next())
	ev := rd.Value()
	require.NoError(t, rd.Err())
	require.NotNil(t, ev.Summary.Value[0].Histo)
	assert.Equal(t, 1.0, ev.Summary.Value[0].Histo.Num)
}

func TestEventMetaDefaultsStepZeroAndResolvesWallTime(t *testing.T) {
	var buf bytes.Buffer
	ew := FromWriter(&buf, EventWriterConfig{AutoFlush: true})
	require.NoError(t, ew.WriteScalar("x", 1, EventMeta{}))

	rd := NewEventReader(&buf, RecordReaderConfig{CheckIntegrity: true})
	require.True(t, rd.Next())
	ev := rd.Value()
	assert.Equal(t, int64(0), ev.Step)
	assert.Greater(t, ev.WallTime, 0.0)
}

func TestEventWriterWriteEventBypassesBuilders(t *testing.T) {
	var buf bytes.Buffer
	ew := FromWriter(&buf, EventWriterConfig{AutoFlush: true})
	ev := &tfproto.Event{Step: 7, FileVersion: "brain.Event:2"}
	require.NoError(t, ew.WriteEvent(ev))

	rd := NewEventReader(&buf, RecordReaderConfig{CheckIntegrity: true})
	require.True(t, rd.Next())
	got := rd.Value()
	assert.Equal(t, "brain.Event:2", got.FileVersion)
	assert.Equal(t, int64(7), got.Step)
}
