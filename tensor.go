package tfrecord

import (
	"encoding/binary"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/mlrecord/tfrecord/tfproto"
)

// Element is any built-in numeric type FromSlice can pack into a
// TensorProto's tensor_content. Every supported Go type maps to exactly
// one TensorFlow DataType; there is no overloaded "convert to tensor" for
// arbitrary types the way a generic trait impl might offer.
type Element interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64
}

func dataTypeFor[T Element]() tfproto.DataType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return tfproto.DTUint8
	case uint16:
		return tfproto.DTUint16
	case uint32:
		return tfproto.DTUint32
	case uint64:
		return tfproto.DTUint64
	case int8:
		return tfproto.DTInt8
	case int16:
		return tfproto.DTInt16
	case int32:
		return tfproto.DTInt32
	case int64:
		return tfproto.DTInt64
	case float32:
		return tfproto.DTFloat
	case float64:
		return tfproto.DTDouble
	default:
		return tfproto.DTInvalid
	}
}

func appendLE[T Element](b []byte, v T) []byte {
	switch x := any(v).(type) {
	case uint8:
		return append(b, x)
	case int8:
		return append(b, byte(x))
	case uint16:
		return binary.LittleEndian.AppendUint16(b, x)
	case int16:
		return binary.LittleEndian.AppendUint16(b, uint16(x))
	case uint32:
		return binary.LittleEndian.AppendUint32(b, x)
	case int32:
		return binary.LittleEndian.AppendUint32(b, uint32(x))
	case uint64:
		return binary.LittleEndian.AppendUint64(b, x)
	case int64:
		return binary.LittleEndian.AppendUint64(b, uint64(x))
	case float32:
		return binary.LittleEndian.AppendUint32(b, math.Float32bits(x))
	case float64:
		return binary.LittleEndian.AppendUint64(b, math.Float64bits(x))
	default:
		return b
	}
}

func shapeProto(shape []int) *tfproto.TensorShapeProto {
	dims := make([]*tfproto.TensorShapeProtoDim, len(shape))
	for i, s := range shape {
		dims[i] = &tfproto.TensorShapeProtoDim{Size: int64(s)}
	}
	return &tfproto.TensorShapeProto{Dim: dims}
}

func shapeSize(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

// FromSlice packs data as a row-major TensorProto with the given shape.
// len(data) must equal the product of shape.
func FromSlice[T Element](shape []int, data []T) (*tfproto.TensorProto, error) {
	if shapeSize(shape) != len(data) {
		return nil, &ErrInvalidArgument{Description: "shape does not match data length"}
	}
	content := make([]byte, 0, len(data)*sizeofElement[T]())
	for _, v := range data {
		content = appendLE(content, v)
	}
	return &tfproto.TensorProto{
		Dtype:         dataTypeFor[T](),
		TensorShape:   shapeProto(shape),
		TensorContent: content,
	}, nil
}

func sizeofElement[T Element]() int {
	var zero T
	switch any(zero).(type) {
	case uint8, int8:
		return 1
	case uint16, int16:
		return 2
	case uint32, int32, float32:
		return 4
	default:
		return 8
	}
}

// FromByteSlices packs data as a row-major, DT_STRING TensorProto: each
// element is stored as a varint length prefix followed by its raw bytes,
// the layout TensorFlow uses for string tensors in tensor_content.
func FromByteSlices(shape []int, data [][]byte) (*tfproto.TensorProto, error) {
	if shapeSize(shape) != len(data) {
		return nil, &ErrInvalidArgument{Description: "shape does not match data length"}
	}
	var content []byte
	for _, elem := range data {
		content = protowire.AppendVarint(content, uint64(len(elem)))
		content = append(content, elem...)
	}
	return &tfproto.TensorProto{
		Dtype:         tfproto.DTString,
		TensorShape:   shapeProto(shape),
		TensorContent: content,
	}, nil
}

// ToTensor packs a rank-2 slice of float64 rows as a row-major TensorProto.
// Every row must have the same length.
func ToTensor(arr [][]float64) (*tfproto.TensorProto, error) {
	if len(arr) == 0 {
		return nil, &ErrInvalidArgument{Description: "array must have at least one row"}
	}
	cols := len(arr[0])
	flat := make([]float64, 0, len(arr)*cols)
	for _, row := range arr {
		if len(row) != cols {
			return nil, &ErrInvalidArgument{Description: "all rows must have the same length"}
		}
		flat = append(flat, row...)
	}
	return FromSlice([]int{len(arr), cols}, flat)
}

// tensorElementSize returns the byte width of one tensor_content element
// for dtype, or 0 for a dtype with no fixed width (DT_STRING) or one this
// package does not pack.
func tensorElementSize(dtype tfproto.DataType) int {
	switch dtype {
	case tfproto.DTUint8, tfproto.DTInt8:
		return 1
	case tfproto.DTUint16, tfproto.DTInt16:
		return 2
	case tfproto.DTUint32, tfproto.DTInt32, tfproto.DTFloat:
		return 4
	case tfproto.DTUint64, tfproto.DTInt64, tfproto.DTDouble:
		return 8
	default:
		return 0
	}
}

func decodeTensorElement(dtype tfproto.DataType, b []byte) float64 {
	switch dtype {
	case tfproto.DTUint8:
		return float64(b[0])
	case tfproto.DTInt8:
		return float64(int8(b[0]))
	case tfproto.DTUint16:
		return float64(binary.LittleEndian.Uint16(b))
	case tfproto.DTInt16:
		return float64(int16(binary.LittleEndian.Uint16(b)))
	case tfproto.DTUint32:
		return float64(binary.LittleEndian.Uint32(b))
	case tfproto.DTInt32:
		return float64(int32(binary.LittleEndian.Uint32(b)))
	case tfproto.DTFloat:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case tfproto.DTUint64:
		return float64(binary.LittleEndian.Uint64(b))
	case tfproto.DTInt64:
		return float64(int64(binary.LittleEndian.Uint64(b)))
	case tfproto.DTDouble:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	default:
		return 0
	}
}

// tensorSamples unpacks every element of t's tensor_content as a float64,
// failing if the dtype has no fixed-width element encoding (e.g.
// DT_STRING) or if any decoded element is not finite.
func tensorSamples(t *tfproto.TensorProto) ([]float64, error) {
	if t == nil {
		return nil, &ErrConversion{Description: "tensor is nil"}
	}
	size := tensorElementSize(t.Dtype)
	if size == 0 {
		return nil, &ErrConversion{Description: "unsupported tensor dtype for histogram"}
	}
	if len(t.TensorContent)%size != 0 {
		return nil, &ErrConversion{Description: "tensor content length does not match its dtype's element size"}
	}
	n := len(t.TensorContent) / size
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		v := decodeTensorElement(t.Dtype, t.TensorContent[i*size:(i+1)*size])
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &ErrConversion{Description: "tensor element is not finite"}
		}
		samples[i] = v
	}
	return samples, nil
}

type histogramFromTensor struct{ t *tfproto.TensorProto }

func (h histogramFromTensor) tryIntoHistogram() (*tfproto.HistogramProto, error) {
	samples, err := tensorSamples(h.t)
	if err != nil {
		return nil, err
	}
	acc := NewDefaultAccumulator()
	for _, v := range samples {
		if err := acc.Add(v, 1); err != nil {
			return nil, err
		}
	}
	return acc.Snapshot(), nil
}

// HistogramOfTensor folds every element of t's tensor_content into a fresh
// default-bucketed Accumulator, for use with FromHistogram. It fails if t's
// dtype is not one FromSlice can pack (e.g. DT_STRING) or if any element is
// not finite.
func HistogramOfTensor(t *tfproto.TensorProto) Histogrammable {
	return histogramFromTensor{t}
}
