package tfrecord

import (
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mlrecord/tfrecord/tfproto"
)

// Entry locates one record's payload within a file: the file it lives in,
// the byte offset of the payload (just past the frame header), and its
// length. Entries compare by (Path, Offset), giving files a stable total
// order across a multi-file index.
type Entry struct {
	Path   string
	Offset int64
	Length int64
}

func entryLess(a, b Entry) bool {
	if a.Path != b.Path {
		return a.Path < b.Path
	}
	return a.Offset < b.Offset
}

// RecordIndexerConfig controls how the Indexer validates records while
// building an index.
type RecordIndexerConfig struct {
	// CheckIntegrity verifies every record's checksum while indexing. When
	// false, the indexer seeks past each payload instead of reading it,
	// the "cheap path" spec'd for large files where corruption is assumed
	// to be rare and caught later at load time.
	CheckIntegrity bool
	// Logger receives diagnostic messages about skipped directory
	// entries during FromPrefix. A nil Logger discards them.
	Logger *slog.Logger
}

func (cfg RecordIndexerConfig) logger() *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FromReader scans r from its current position to EOF, returning one
// Entry per record. Offsets are relative to r's position when FromReader
// was called, since a plain io.Reader has no absolute file position.
func FromReader(r io.Reader, cfg RecordIndexerConfig) ([]Entry, error) {
	var entries []Entry
	var offset int64
	buf := make([]byte, 0)
	for {
		length, ok, err := readLength(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			return entries, nil
		}
		payloadOffset := offset + headerSize
		if cfg.CheckIntegrity {
			if _, err := readPayload(r, length, true, buf); err != nil {
				return nil, err
			}
		} else {
			if err := skipPayload(r, length); err != nil {
				return nil, err
			}
		}
		entries = append(entries, Entry{Offset: payloadOffset, Length: int64(length)})
		offset = payloadOffset + int64(length) + footerSize
	}
}

// FromFile scans one file on disk, returning one Entry per record with
// Path set to path.
func FromFile(path string, cfg RecordIndexerConfig) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ErrIO{Err: err}
	}
	defer f.Close()

	entries, err := FromReader(f, cfg)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Path = path
	}
	return entries, nil
}

// FromPaths concurrently scans every file in paths using a bounded worker
// pool, merging the results into one stably-ordered index. ctx cancels the
// scan at the next file boundary.
func FromPaths(ctx context.Context, paths []string, cfg RecordIndexerConfig) ([]Entry, error) {
	results := make([][]Entry, len(paths))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries, err := FromFile(path, cfg)
			if err != nil {
				return err
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []Entry
	for _, entries := range results {
		merged = append(merged, entries...)
	}
	sort.SliceStable(merged, func(i, j int) bool { return entryLess(merged[i], merged[j]) })
	return merged, nil
}

// FromPrefix lists every regular file in prefix's directory whose name
// starts with prefix's file-name component, in lexicographic order, and
// scans them with FromPaths. ctx is checked before the directory is read.
func FromPrefix(ctx context.Context, prefix string, cfg RecordIndexerConfig) ([]Entry, error) {
	dir, fileNamePrefix, err := splitPrefix(prefix)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ErrIO{Err: err}
	}

	var paths []string
	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			cfg.logger().Debug("indexer: skipping non-regular directory entry", "name", de.Name())
			continue
		}
		if !strings.HasPrefix(de.Name(), fileNamePrefix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, de.Name()))
	}
	sort.Strings(paths)
	return FromPaths(ctx, paths, cfg)
}

// Load reads the record described by entry directly from disk, decoding it
// with decode, the same pluggable-decoder contract Reader[T] follows.
func Load[T any](entry Entry, checkIntegrity bool, decode func([]byte) (T, error)) (T, error) {
	var zero T
	record, err := loadRawBytes(entry, checkIntegrity)
	if err != nil {
		return zero, err
	}
	return decode(record)
}

// LoadRaw reads entry's payload as raw bytes.
func LoadRaw(entry Entry, checkIntegrity bool) ([]byte, error) {
	return Load(entry, checkIntegrity, func(b []byte) ([]byte, error) { return b, nil })
}

// LoadExample reads and decodes entry's payload as a tfproto.Example.
func LoadExample(entry Entry, checkIntegrity bool) (*tfproto.Example, error) {
	return Load(entry, checkIntegrity, func(b []byte) (*tfproto.Example, error) {
		ex := &tfproto.Example{}
		if err := ex.Unmarshal(b); err != nil {
			return nil, &ErrExampleDecode{Err: err}
		}
		return ex, nil
	})
}

// LoadEvent reads and decodes entry's payload as a tfproto.Event.
func LoadEvent(entry Entry, checkIntegrity bool) (*tfproto.Event, error) {
	return Load(entry, checkIntegrity, func(b []byte) (*tfproto.Event, error) {
		ev := &tfproto.Event{}
		if err := ev.Unmarshal(b); err != nil {
			return nil, &ErrExampleDecode{Err: err}
		}
		return ev, nil
	})
}

func loadRawBytes(entry Entry, checkIntegrity bool) ([]byte, error) {
	f, err := os.Open(entry.Path)
	if err != nil {
		return nil, &ErrIO{Err: err}
	}
	defer f.Close()

	if _, err := f.Seek(entry.Offset, io.SeekStart); err != nil {
		return nil, &ErrIO{Err: err}
	}
	record := make([]byte, entry.Length)
	if _, err := io.ReadFull(f, record); err != nil {
		return nil, newUnexpectedEOF(err)
	}
	if checkIntegrity {
		var footer [footerSize]byte
		if _, err := io.ReadFull(f, footer[:]); err != nil {
			return nil, newUnexpectedEOF(err)
		}
		crc := binary.LittleEndian.Uint32(footer[:])
		if err := Verify(record, crc); err != nil {
			return nil, err
		}
	}
	return record, nil
}
