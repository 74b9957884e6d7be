package tfrecord

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/mlrecord/tfrecord/tfproto"
)

// EventMeta carries the step and wall-clock time attached to a written
// Event. A zero-value EventMeta is step 0 with the wall time resolved to
// time.Now() at write time.
type EventMeta struct {
	Step        int64
	WallTime    float64
	hasWallTime bool
}

// NewEventMeta creates an EventMeta for step, resolving wall time to
// time.Now() when the Event is built.
func NewEventMeta(step int64) EventMeta {
	return EventMeta{Step: step}
}

// WithWallTime returns a copy of m with an explicit wall-clock time.
func (m EventMeta) WithWallTime(t time.Time) EventMeta {
	m.WallTime = float64(t.UnixNano()) / 1e9
	m.hasWallTime = true
	return m
}

func (m EventMeta) resolvedWallTime() float64 {
	if m.hasWallTime {
		return m.WallTime
	}
	return float64(time.Now().UnixNano()) / 1e9
}

func (m EventMeta) buildWithSummary(summary *tfproto.Summary) *tfproto.Event {
	return &tfproto.Event{
		WallTime: m.resolvedWallTime(),
		Step:     m.Step,
		Summary:  summary,
	}
}

// EventWriterConfig controls EventWriter's behavior after each write.
type EventWriterConfig struct {
	// AutoFlush flushes the underlying writer after every Write* call.
	// Disable it when writing many events in a tight loop and flush
	// explicitly instead.
	AutoFlush bool
}

// EventWriter writes TensorBoard-compatible Event records: scalars,
// histograms, tensors, images, and audio, each wrapped in an Event with a
// step and wall time.
type EventWriter struct {
	events *Writer[*tfproto.Event]
	closer io.Closer
	cfg    EventWriterConfig
}

// Create opens path and returns an EventWriter over it.
func Create(path string, cfg EventWriterConfig) (*EventWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &ErrIO{Err: err}
	}
	bw := bufio.NewWriter(f)
	return &EventWriter{
		events: NewEventWriter(bw),
		closer: f,
		cfg:    cfg,
	}, nil
}

// FromPrefix derives a TensorBoard-style event file path from prefix and
// suffix, creates any missing parent directories, and opens an EventWriter
// over the result.
func FromPrefix(prefix, suffix string, cfg EventWriterConfig) (*EventWriter, error) {
	path, err := tfStylePath(prefix, suffix)
	if err != nil {
		return nil, err
	}
	dir, _, err := splitPrefix(prefix)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &ErrIO{Err: err}
	}
	return Create(path, cfg)
}

// FromWriter wraps an arbitrary io.Writer (e.g. an in-memory buffer in
// tests) as an EventWriter. The returned writer does not own w and Close
// will not close it.
func FromWriter(w io.Writer, cfg EventWriterConfig) *EventWriter {
	return &EventWriter{events: NewEventWriter(w), cfg: cfg}
}

func (ew *EventWriter) writeSummary(summary *tfproto.Summary, meta EventMeta) error {
	if err := ew.events.Send(meta.buildWithSummary(summary)); err != nil {
		return err
	}
	if ew.cfg.AutoFlush {
		return ew.Flush()
	}
	return nil
}

// WriteScalar writes a single named scalar value.
func (ew *EventWriter) WriteScalar(tag string, value float32, meta EventMeta) error {
	return ew.writeSummary(FromScalar(tag, value), meta)
}

// WriteHistogram writes a histogram built from h.
func (ew *EventWriter) WriteHistogram(tag string, h Histogrammable, meta EventMeta) error {
	summary, err := FromHistogram(tag, h)
	if err != nil {
		return err
	}
	return ew.writeSummary(summary, meta)
}

// WriteTensor writes a pre-built tensor.
func (ew *EventWriter) WriteTensor(tag string, t *tfproto.TensorProto, meta EventMeta) error {
	return ew.writeSummary(FromTensor(tag, t), meta)
}

// WriteImage writes a single pre-built image.
func (ew *EventWriter) WriteImage(tag string, img *tfproto.Image, meta EventMeta) error {
	return ew.writeSummary(FromImageValue(tag, img), meta)
}

// WriteImageList writes a batch of pre-built images under one tag.
func (ew *EventWriter) WriteImageList(tag string, imgs []*tfproto.Image, meta EventMeta) error {
	return ew.writeSummary(FromImageList(tag, imgs), meta)
}

// WriteAudio writes a single pre-built audio clip.
func (ew *EventWriter) WriteAudio(tag string, a *tfproto.Audio, meta EventMeta) error {
	return ew.writeSummary(FromAudio(tag, a), meta)
}

// WriteEvent writes a fully-constructed Event as-is, bypassing the
// summary-builder helpers.
func (ew *EventWriter) WriteEvent(ev *tfproto.Event) error {
	if err := ew.events.Send(ev); err != nil {
		return err
	}
	if ew.cfg.AutoFlush {
		return ew.Flush()
	}
	return nil
}

// Flush flushes any buffered output to the underlying writer.
func (ew *EventWriter) Flush() error {
	return ew.events.Flush()
}

// Close flushes and, if the EventWriter owns its underlying file, closes
// it.
func (ew *EventWriter) Close() error {
	if err := ew.Flush(); err != nil {
		return err
	}
	if ew.closer != nil {
		if err := ew.closer.Close(); err != nil {
			return &ErrIO{Err: err}
		}
	}
	return nil
}
