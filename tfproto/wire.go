// Package tfproto holds wire-compatible Go bindings for the subset of
// TensorFlow's protobuf messages this library reads and writes: Example
// records, Event/Summary records, and the tensor/histogram/image/audio
// value types embedded in them.
//
// Field numbers and wire types match TensorFlow's public .proto
// definitions (example.proto, feature.proto, event.proto, summary.proto,
// tensor.proto, tensor_shape.proto, types.proto). They are reproduced here
// by hand because this environment has no protoc toolchain to vendor and
// regenerate the real .proto sources from; see DESIGN.md for the tradeoff.
// Encoding itself goes through google.golang.org/protobuf/encoding/protowire,
// the same low-level varint/tag machinery protoc-gen-go output relies on,
// so a real generated binding decodes the bytes produced here to the same
// values. The bytes themselves can differ from generated output: scalar
// fields are written here even when they hold their zero value.
package tfproto

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

func wireErr(n int) error {
	return fmt.Errorf("tfproto: malformed input: %w", protowire.ParseError(n))
}

func consumeVarint(b []byte) (uint64, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, wireErr(n)
	}
	return v, n, nil
}

func consumeFixed32(b []byte) (uint32, int, error) {
	v, n := protowire.ConsumeFixed32(b)
	if n < 0 {
		return 0, 0, wireErr(n)
	}
	return v, n, nil
}

func consumeFixed64(b []byte) (uint64, int, error) {
	v, n := protowire.ConsumeFixed64(b)
	if n < 0 {
		return 0, 0, wireErr(n)
	}
	return v, n, nil
}

func consumeBytes(b []byte) ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, wireErr(n)
	}
	return v, n, nil
}

// consumeTag reads one field tag and returns the field number, wire type,
// and bytes consumed.
func consumeTag(b []byte) (protowire.Number, protowire.Type, int, error) {
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 {
		return 0, 0, 0, wireErr(n)
	}
	return num, typ, n, nil
}

// skipField consumes and discards a field's value, used for unknown fields.
func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, wireErr(n)
	}
	return n, nil
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	return appendVarint(b, num, uint64(v))
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	return appendVarint(b, num, uint64(uint32(v)))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	var u uint64
	if v {
		u = 1
	}
	return appendVarint(b, num, u)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// appendMessage encodes a nested message as a length-delimited field.
func appendMessage(b []byte, num protowire.Number, m interface{ Marshal() ([]byte, error) }) ([]byte, error) {
	inner, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	if inner == nil {
		return b, nil
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner), nil
}

func appendPackedDoubles(b []byte, num protowire.Number, vs []float64) []byte {
	if len(vs) == 0 {
		return b
	}
	var inner []byte
	for _, v := range vs {
		inner = protowire.AppendFixed64(inner, math.Float64bits(v))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func consumePackedDoubles(raw []byte) ([]float64, error) {
	var out []float64
	for len(raw) > 0 {
		v, n, err := consumeFixed64(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, math.Float64frombits(v))
		raw = raw[n:]
	}
	return out, nil
}

func appendPackedFloats(b []byte, num protowire.Number, vs []float32) []byte {
	if len(vs) == 0 {
		return b
	}
	var inner []byte
	for _, v := range vs {
		inner = protowire.AppendFixed32(inner, math.Float32bits(v))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func consumePackedFloats(raw []byte) ([]float32, error) {
	var out []float32
	for len(raw) > 0 {
		v, n, err := consumeFixed32(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, math.Float32frombits(v))
		raw = raw[n:]
	}
	return out, nil
}

func appendPackedInt64s(b []byte, num protowire.Number, vs []int64) []byte {
	if len(vs) == 0 {
		return b
	}
	var inner []byte
	for _, v := range vs {
		inner = protowire.AppendVarint(inner, uint64(v))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func consumePackedInt64s(raw []byte) ([]int64, error) {
	var out []int64
	for len(raw) > 0 {
		v, n, err := consumeVarint(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, int64(v))
		raw = raw[n:]
	}
	return out, nil
}
