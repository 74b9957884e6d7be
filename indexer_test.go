package tfrecord

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlrecord/tfrecord/tfproto"
)

func writeRecordsToFile(t *testing.T, path string, records [][]byte) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	w := NewRawWriter(f)
	for _, r := range records {
		require.NoError(t, w.Send(r))
	}
}

func TestFromFileFidelity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.tfrecord")
	records := [][]byte{[]byte("alpha"), []byte("beta"), []byte("gamma")}
	writeRecordsToFile(t, path, records)

	entries, err := FromFile(path, RecordIndexerConfig{CheckIntegrity: true})
	require.NoError(t, err)
	require.Len(t, entries, len(records))

	for i, e := range entries {
		assert.Equal(t, path, e.Path)
		got, err := LoadRaw(e, true)
		require.NoError(t, err)
		assert.Equal(t, records[i], got)
	}
}

func TestFromPathsOrdersEntriesDeterministically(t *testing.T) {
	dir := t.TempDir()
	pathB := filepath.Join(dir, "b.tfrecord")
	pathA := filepath.Join(dir, "a.tfrecord")
	writeRecordsToFile(t, pathB, [][]byte{[]byte("b0"), []byte("b1")})
	writeRecordsToFile(t, pathA, [][]byte{[]byte("a0")})

	entries, err := FromPaths(context.Background(), []string{pathB, pathA}, RecordIndexerConfig{CheckIntegrity: true})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, pathA, entries[0].Path)
	assert.Equal(t, pathB, entries[1].Path)
	assert.Equal(t, pathB, entries[2].Path)
}

func TestFromPrefixFiltersByFileName(t *testing.T) {
	dir := t.TempDir()
	writeRecordsToFile(t, filepath.Join(dir, "run.out.tfevents.1.host"), [][]byte{[]byte("r0")})
	writeRecordsToFile(t, filepath.Join(dir, "run.out.tfevents.2.host"), [][]byte{[]byte("r1")})
	writeRecordsToFile(t, filepath.Join(dir, "other.tfrecord"), [][]byte{[]byte("o0")})

	entries, err := FromPrefix(context.Background(), filepath.Join(dir, "run"), RecordIndexerConfig{CheckIntegrity: true})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Contains(t, e.Path, "run.out.tfevents")
	}
}

func TestFromFileExampleOffsetsAndRandomAccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "examples.tfrecord")

	f, err := os.Create(path)
	require.NoError(t, err)
	w := NewExampleWriter(f)
	first := &tfproto.Example{Features: &tfproto.Features{Feature: map[string]*tfproto.Feature{
		"x": {Int64List: &tfproto.Int64List{Value: []int64{1, 2, 3}}},
	}}}
	second := &tfproto.Example{Features: &tfproto.Features{Feature: map[string]*tfproto.Feature{
		"x": {Int64List: &tfproto.Int64List{Value: []int64{4}}},
	}}}
	require.NoError(t, w.Send(first))
	require.NoError(t, w.Send(second))
	require.NoError(t, f.Close())

	entries, err := FromFile(path, RecordIndexerConfig{CheckIntegrity: true})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	firstBytes, err := first.Marshal()
	require.NoError(t, err)
	wantDelta := int64(len(firstBytes)) + headerSize + footerSize
	assert.Equal(t, wantDelta, entries[1].Offset-entries[0].Offset)

	got, err := LoadExample(entries[1], true)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, got.Features.Feature["x"].Int64List.Value)
}

func TestLoadDecodesWithPluggableDecoder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.tfrecord")
	writeRecordsToFile(t, path, [][]byte{[]byte("hello")})

	entries, err := FromFile(path, RecordIndexerConfig{CheckIntegrity: true})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got, err := Load(entries[0], true, func(b []byte) (string, error) { return string(b), nil })
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestFromFileSkipPathMatchesCheckedPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.tfrecord")
	records := [][]byte{[]byte("alpha"), []byte("beta")}
	writeRecordsToFile(t, path, records)

	checked, err := FromFile(path, RecordIndexerConfig{CheckIntegrity: true})
	require.NoError(t, err)
	skipped, err := FromFile(path, RecordIndexerConfig{CheckIntegrity: false})
	require.NoError(t, err)
	assert.Equal(t, checked, skipped)
}
