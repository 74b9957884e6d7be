package tfrecord

import (
	"io"

	"github.com/mlrecord/tfrecord/tfproto"
)

// RecordReaderConfig controls how a Reader validates and buffers frames.
type RecordReaderConfig struct {
	// CheckIntegrity verifies the payload CRC of every frame. Disabling it
	// still verifies the length-prefix CRC (a corrupt length is otherwise
	// unrecoverable) but skips hashing the payload, trading a little safety
	// for throughput.
	CheckIntegrity bool
	// BufSize is the initial payload buffer size, reused across frames
	// when large enough. A good value is the expected common record size;
	// frames larger than BufSize fall back to a one-off allocation.
	BufSize int
}

// Reader decodes a stream of length-prefixed, checksummed frames into
// values of type T. It follows the same Next/Value/Err shape as the
// teacher's Iterator, generalized from always returning raw bytes to
// decoding through a pluggable function.
type Reader[T any] struct {
	r      io.Reader
	cfg    RecordReaderConfig
	decode func([]byte) (T, error)

	buf   []byte
	value T
	err   error
}

// NewReader creates a Reader that decodes each frame's payload with decode.
func NewReader[T any](r io.Reader, cfg RecordReaderConfig, decode func([]byte) (T, error)) *Reader[T] {
	var buf []byte
	if cfg.BufSize > 0 {
		buf = make([]byte, cfg.BufSize)
	}
	return &Reader[T]{r: r, cfg: cfg, decode: decode, buf: buf}
}

// NewRawReader creates a Reader over raw frame payloads, copied out of the
// reused internal buffer so callers can hold onto Value() across calls to
// Next.
func NewRawReader(r io.Reader, cfg RecordReaderConfig) *Reader[[]byte] {
	return NewReader(r, cfg, func(b []byte) ([]byte, error) {
		return append([]byte(nil), b...), nil
	})
}

// NewExampleReader creates a Reader that decodes each frame as a
// tfproto.Example.
func NewExampleReader(r io.Reader, cfg RecordReaderConfig) *Reader[*tfproto.Example] {
	return NewReader(r, cfg, func(b []byte) (*tfproto.Example, error) {
		ex := &tfproto.Example{}
		if err := ex.Unmarshal(b); err != nil {
			return nil, &ErrExampleDecode{Err: err}
		}
		return ex, nil
	})
}

// NewEventReader creates a Reader that decodes each frame as a
// tfproto.Event.
func NewEventReader(r io.Reader, cfg RecordReaderConfig) *Reader[*tfproto.Event] {
	return NewReader(r, cfg, func(b []byte) (*tfproto.Event, error) {
		ev := &tfproto.Event{}
		if err := ev.Unmarshal(b); err != nil {
			return nil, &ErrExampleDecode{Err: err}
		}
		return ev, nil
	})
}

// Next advances to the next record, returning false at a clean end of
// stream or once Err() is non-nil. Once Next returns false with a non-nil
// error the Reader is in a terminal failed state; it will not recover on
// subsequent calls.
func (rd *Reader[T]) Next() bool {
	if rd.err != nil {
		return false
	}
	var zero T
	rd.value = zero

	record, ok, err := readRecord(rd.r, rd.cfg.CheckIntegrity, rd.buf)
	if err != nil {
		rd.err = err
		return false
	}
	if !ok {
		return false
	}
	v, err := rd.decode(record)
	if err != nil {
		rd.err = err
		return false
	}
	rd.value = v
	return true
}

// Err returns the error that stopped Next, or nil if iteration ended
// cleanly or has not yet run.
func (rd *Reader[T]) Err() error { return rd.err }

// Value returns the most recently decoded record, or the zero value of T
// if the Reader is not currently positioned on a record.
func (rd *Reader[T]) Value() T { return rd.value }
