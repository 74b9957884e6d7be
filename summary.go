package tfrecord

import (
	"strconv"

	"github.com/mlrecord/tfrecord/tfproto"
)

// Numeric is any built-in numeric type this package can turn into a
// histogram or tensor. It stands in for the blanket numeric conversions the
// original implementation expressed as overloaded trait impls; here every
// target type lists the input types it accepts explicitly.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Histogrammable is anything FromHistogram can turn into a
// tfproto.HistogramProto: an Accumulator, an already-built
// tfproto.HistogramProto, or a numeric slice, TensorProto
// (HistogramOfTensor) or image (HistogramOfImage) to be folded into a fresh
// default Accumulator.
type Histogrammable interface {
	tryIntoHistogram() (*tfproto.HistogramProto, error)
}

type histogramFromAccumulator struct{ acc *Accumulator }

func (h histogramFromAccumulator) tryIntoHistogram() (*tfproto.HistogramProto, error) {
	return h.acc.Snapshot(), nil
}

// FromAccumulator wraps an Accumulator for use with FromHistogram.
func FromAccumulator(acc *Accumulator) Histogrammable { return histogramFromAccumulator{acc} }

type histogramFromProto struct{ p *tfproto.HistogramProto }

func (h histogramFromProto) tryIntoHistogram() (*tfproto.HistogramProto, error) { return h.p, nil }

// FromHistogramProto wraps an already-built tfproto.HistogramProto for use
// with FromHistogram.
func FromHistogramProto(p *tfproto.HistogramProto) Histogrammable { return histogramFromProto{p} }

// HistogramOfSlice folds every element of values into a fresh
// default-bucketed Accumulator, each counted once, for use with
// FromHistogram.
func HistogramOfSlice[T Numeric](values []T) Histogrammable {
	return histogramFromSlice[T]{values}
}

type histogramFromSlice[T Numeric] struct{ values []T }

func (h histogramFromSlice[T]) tryIntoHistogram() (*tfproto.HistogramProto, error) {
	acc := NewDefaultAccumulator()
	for _, v := range h.values {
		if err := acc.Add(float64(v), 1); err != nil {
			return nil, err
		}
	}
	return acc.Snapshot(), nil
}

// FromScalar builds a Summary with a single named scalar value.
func FromScalar(tag string, value float32) *tfproto.Summary {
	return &tfproto.Summary{Value: []*tfproto.SummaryValue{
		{Tag: tag, SimpleValue: value, HasSimpleValue: true},
	}}
}

// FromHistogram builds a Summary from anything Histogrammable.
func FromHistogram(tag string, h Histogrammable) (*tfproto.Summary, error) {
	histo, err := h.tryIntoHistogram()
	if err != nil {
		return nil, err
	}
	return &tfproto.Summary{Value: []*tfproto.SummaryValue{
		{Tag: tag, Histo: histo},
	}}, nil
}

// FromTensor builds a Summary wrapping a pre-built TensorProto.
func FromTensor(tag string, t *tfproto.TensorProto) *tfproto.Summary {
	return &tfproto.Summary{Value: []*tfproto.SummaryValue{
		{Tag: tag, Tensor: t},
	}}
}

// FromImageValue builds a Summary from a single pre-built Image value.
func FromImageValue(tag string, img *tfproto.Image) *tfproto.Summary {
	return &tfproto.Summary{Value: []*tfproto.SummaryValue{
		{Tag: tag, Image: img},
	}}
}

// FromImageList builds a Summary with one value per image, tagged
// "{tag}/image/{index}" the way TensorBoard's image plugin expects a batch
// to be laid out.
func FromImageList(tag string, imgs []*tfproto.Image) *tfproto.Summary {
	values := make([]*tfproto.SummaryValue, len(imgs))
	for i, img := range imgs {
		values[i] = &tfproto.SummaryValue{Tag: imageListTag(tag, i), Image: img}
	}
	return &tfproto.Summary{Value: values}
}

func imageListTag(tag string, i int) string {
	return tag + "/image/" + strconv.Itoa(i)
}

// FromAudio builds a Summary from a single pre-built Audio value.
func FromAudio(tag string, a *tfproto.Audio) *tfproto.Summary {
	return &tfproto.Summary{Value: []*tfproto.SummaryValue{
		{Tag: tag, Audio: a},
	}}
}
