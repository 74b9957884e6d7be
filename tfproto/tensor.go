package tfproto

// DataType mirrors the subset of TensorFlow's types.proto DataType enum
// this library reads and writes.
type DataType int32

const (
	DTInvalid DataType = 0
	DTFloat   DataType = 1
	DTDouble  DataType = 2
	DTInt32   DataType = 3
	DTUint8   DataType = 4
	DTInt16   DataType = 5
	DTInt8    DataType = 6
	DTString  DataType = 7
	DTInt64   DataType = 9
	DTBool    DataType = 10
	DTUint16  DataType = 17
	DTUint32  DataType = 22
	DTUint64  DataType = 23
)

// TensorShapeProtoDim is one dimension of a TensorShapeProto.
type TensorShapeProtoDim struct {
	Size int64
	Name string
}

func (m *TensorShapeProtoDim) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	b = appendInt64(b, 1, m.Size)
	b = appendString(b, 2, m.Name)
	return b, nil
}

func (m *TensorShapeProtoDim) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		switch num {
		case 1:
			v, n, err := consumeVarint(data)
			if err != nil {
				return err
			}
			m.Size = int64(v)
			data = data[n:]
		case 2:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.Name = string(v)
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return err
			}
			data = data[n:]
		}
	}
	return nil
}

// TensorShapeProto describes the dimensions of a TensorProto.
type TensorShapeProto struct {
	Dim         []*TensorShapeProtoDim
	UnknownRank bool
}

func (m *TensorShapeProto) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	for _, d := range m.Dim {
		inner, err := d.Marshal()
		if err != nil {
			return nil, err
		}
		b = appendBytes(b, 2, inner)
	}
	b = appendBool(b, 3, m.UnknownRank)
	return b, nil
}

func (m *TensorShapeProto) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		switch num {
		case 2:
			raw, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			d := &TensorShapeProtoDim{}
			if err := d.Unmarshal(raw); err != nil {
				return err
			}
			m.Dim = append(m.Dim, d)
			data = data[n:]
		case 3:
			v, n, err := consumeVarint(data)
			if err != nil {
				return err
			}
			m.UnknownRank = v != 0
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return err
			}
			data = data[n:]
		}
	}
	return nil
}

// TensorProto is a dense tensor encoded as a flat, row-major byte buffer.
// This covers the TensorContent encoding path only (the union of
// type-specific repeated-value fields in tensor.proto is not needed by
// this library: every writer here produces tensor_content).
type TensorProto struct {
	Dtype         DataType
	TensorShape   *TensorShapeProto
	VersionNumber int32
	TensorContent []byte
}

func (m *TensorProto) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	b = appendInt32(b, 1, int32(m.Dtype))
	var err error
	b, err = appendMessage(b, 2, m.TensorShape)
	if err != nil {
		return nil, err
	}
	b = appendInt32(b, 3, m.VersionNumber)
	b = appendBytes(b, 4, m.TensorContent)
	return b, nil
}

func (m *TensorProto) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		switch num {
		case 1:
			v, n, err := consumeVarint(data)
			if err != nil {
				return err
			}
			m.Dtype = DataType(int32(v))
			data = data[n:]
		case 2:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			s := &TensorShapeProto{}
			if err := s.Unmarshal(v); err != nil {
				return err
			}
			m.TensorShape = s
			data = data[n:]
		case 3:
			v, n, err := consumeVarint(data)
			if err != nil {
				return err
			}
			m.VersionNumber = int32(v)
			data = data[n:]
		case 4:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.TensorContent = append([]byte(nil), v...)
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return err
			}
			data = data[n:]
		}
	}
	return nil
}
