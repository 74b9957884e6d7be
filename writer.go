package tfrecord

import (
	"io"

	"github.com/mlrecord/tfrecord/tfproto"
)

// flusher is satisfied by writers that buffer internally and need an
// explicit flush, such as a bufio.Writer wrapping a file.
type flusher interface {
	Flush() error
}

// Writer encodes values of type T and writes them as framed, checksummed
// records, generalizing the teacher's raw-bytes Writer to a pluggable
// encode function.
type Writer[T any] struct {
	w      io.Writer
	encode func(T) ([]byte, error)
}

// NewWriter creates a Writer that encodes each value with encode before
// framing it.
func NewWriter[T any](w io.Writer, encode func(T) ([]byte, error)) *Writer[T] {
	return &Writer[T]{w: w, encode: encode}
}

// NewRawWriter creates a Writer over raw record bytes.
func NewRawWriter(w io.Writer) *Writer[[]byte] {
	return NewWriter(w, func(b []byte) ([]byte, error) { return b, nil })
}

// NewExampleWriter creates a Writer that encodes each value as a
// tfproto.Example.
func NewExampleWriter(w io.Writer) *Writer[*tfproto.Example] {
	return NewWriter(w, func(ex *tfproto.Example) ([]byte, error) {
		b, err := ex.Marshal()
		if err != nil {
			return nil, &ErrExampleEncode{Err: err}
		}
		return b, nil
	})
}

// NewEventWriter creates a Writer that encodes each value as a
// tfproto.Event.
func NewEventWriter(w io.Writer) *Writer[*tfproto.Event] {
	return NewWriter(w, func(ev *tfproto.Event) ([]byte, error) {
		b, err := ev.Marshal()
		if err != nil {
			return nil, &ErrExampleEncode{Err: err}
		}
		return b, nil
	})
}

// Send encodes record and writes it as one framed record.
func (w *Writer[T]) Send(record T) error {
	b, err := w.encode(record)
	if err != nil {
		return err
	}
	return writeRecord(w.w, b)
}

// Flush flushes the underlying writer if it supports flushing; otherwise
// it is a no-op.
func (w *Writer[T]) Flush() error {
	if f, ok := w.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
