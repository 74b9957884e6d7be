package tfproto

// BytesList holds the value of a bytes-list Feature. See feature.proto.
type BytesList struct {
	Value [][]byte
}

func (m *BytesList) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	for _, v := range m.Value {
		b = appendBytes(b, 1, v)
	}
	return b, nil
}

func (m *BytesList) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		if num == 1 && typ == 2 {
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.Value = append(m.Value, append([]byte(nil), v...))
			data = data[n:]
			continue
		}
		n, err := skipField(num, typ, data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// FloatList holds the value of a float-list Feature.
type FloatList struct {
	Value []float32
}

func (m *FloatList) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return appendPackedFloats(nil, 1, m.Value), nil
}

func (m *FloatList) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		if num == 1 {
			switch typ {
			case 2: // packed
				raw, n, err := consumeBytes(data)
				if err != nil {
					return err
				}
				vs, err := consumePackedFloats(raw)
				if err != nil {
					return err
				}
				m.Value = append(m.Value, vs...)
				data = data[n:]
				continue
			case 5: // unpacked fixed32
				v, n, err := consumeFixed32(data)
				if err != nil {
					return err
				}
				m.Value = append(m.Value, float32FromBits(v))
				data = data[n:]
				continue
			}
		}
		n, err := skipField(num, typ, data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// Int64List holds the value of an int64-list Feature.
type Int64List struct {
	Value []int64
}

func (m *Int64List) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return appendPackedInt64s(nil, 1, m.Value), nil
}

func (m *Int64List) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		if num == 1 {
			switch typ {
			case 2: // packed
				raw, n, err := consumeBytes(data)
				if err != nil {
					return err
				}
				vs, err := consumePackedInt64s(raw)
				if err != nil {
					return err
				}
				m.Value = append(m.Value, vs...)
				data = data[n:]
				continue
			case 0: // unpacked varint
				v, n, err := consumeVarint(data)
				if err != nil {
					return err
				}
				m.Value = append(m.Value, int64(v))
				data = data[n:]
				continue
			}
		}
		n, err := skipField(num, typ, data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// Feature is exactly one of BytesList, FloatList, Int64List, or absent.
//
// This is the Go sum-type rendering of the oneof "kind" field: exactly one
// of the three pointers is non-nil, or all are nil for an absent feature.
type Feature struct {
	BytesList *BytesList
	FloatList *FloatList
	Int64List *Int64List
}

func (m *Feature) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	var err error
	switch {
	case m.BytesList != nil:
		b, err = appendMessage(b, 1, m.BytesList)
	case m.FloatList != nil:
		b, err = appendMessage(b, 2, m.FloatList)
	case m.Int64List != nil:
		b, err = appendMessage(b, 3, m.Int64List)
	}
	return b, err
}

func (m *Feature) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		switch num {
		case 1:
			raw, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			v := &BytesList{}
			if err := v.Unmarshal(raw); err != nil {
				return err
			}
			m.BytesList = v
			data = data[n:]
		case 2:
			raw, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			v := &FloatList{}
			if err := v.Unmarshal(raw); err != nil {
				return err
			}
			m.FloatList = v
			data = data[n:]
		case 3:
			raw, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			v := &Int64List{}
			if err := v.Unmarshal(raw); err != nil {
				return err
			}
			m.Int64List = v
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

// Features is a name -> Feature map. Go map iteration order is
// non-deterministic, so Marshal sorts keys to keep output stable across
// runs; this is an implementation nicety, not a semantic requirement (the
// spec treats feature order as insignificant).
type Features struct {
	Feature map[string]*Feature
}

func (m *Features) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	keys := make([]string, 0, len(m.Feature))
	for k := range m.Feature {
		keys = append(keys, k)
	}
	sortStrings(keys)

	var b []byte
	for _, k := range keys {
		entry, err := marshalFeatureMapEntry(k, m.Feature[k])
		if err != nil {
			return nil, err
		}
		b = appendBytes(b, 1, entry)
	}
	return b, nil
}

// marshalFeatureMapEntry encodes one map<string, Feature> entry as its
// implicit MapEntry message: { string key = 1; Feature value = 2; }.
func marshalFeatureMapEntry(key string, f *Feature) ([]byte, error) {
	var b []byte
	b = appendString(b, 1, key)
	b, err := appendMessage(b, 2, f)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (m *Features) Unmarshal(data []byte) error {
	if m.Feature == nil {
		m.Feature = make(map[string]*Feature)
	}
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		if num == 1 {
			raw, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			key, feature, err := unmarshalFeatureMapEntry(raw)
			if err != nil {
				return err
			}
			m.Feature[key] = feature
			data = data[n:]
			continue
		}
		n, err := skipField(num, typ, data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func unmarshalFeatureMapEntry(data []byte) (string, *Feature, error) {
	var key string
	feature := &Feature{}
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return "", nil, err
		}
		data = data[tn:]
		switch num {
		case 1:
			v, n, err := consumeBytes(data)
			if err != nil {
				return "", nil, err
			}
			key = string(v)
			data = data[n:]
		case 2:
			v, n, err := consumeBytes(data)
			if err != nil {
				return "", nil, err
			}
			if err := feature.Unmarshal(v); err != nil {
				return "", nil, err
			}
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return "", nil, err
			}
			data = data[n:]
		}
	}
	return key, feature, nil
}

// Example is a named collection of Features; the standard training-data
// record payload.
type Example struct {
	Features *Features
}

func (m *Example) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	return appendMessage(b, 1, m.Features)
}

func (m *Example) Unmarshal(data []byte) error {
	if m.Features == nil {
		m.Features = &Features{Feature: make(map[string]*Feature)}
	}
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		if num == 1 {
			raw, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			f := &Features{}
			if err := f.Unmarshal(raw); err != nil {
				return err
			}
			m.Features = f
			data = data[n:]
			continue
		}
		n, err := skipField(num, typ, data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
