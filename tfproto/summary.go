package tfproto

// SummaryMetadata.PluginData names the plugin a Value belongs to and
// carries plugin-specific opaque content.
type SummaryMetadataPluginData struct {
	PluginName string
	Content    []byte
}

func (m *SummaryMetadataPluginData) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	b = appendString(b, 1, m.PluginName)
	b = appendBytes(b, 2, m.Content)
	return b, nil
}

func (m *SummaryMetadataPluginData) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		switch num {
		case 1:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.PluginName = string(v)
			data = data[n:]
		case 2:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.Content = append([]byte(nil), v...)
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

// SummaryMetadata identifies which TensorBoard plugin renders a Value and
// an optional human-readable display name.
type SummaryMetadata struct {
	PluginData  *SummaryMetadataPluginData
	DisplayName string
}

func (m *SummaryMetadata) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	var err error
	b, err = appendMessage(b, 1, m.PluginData)
	if err != nil {
		return nil, err
	}
	b = appendString(b, 2, m.DisplayName)
	return b, nil
}

func (m *SummaryMetadata) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		switch num {
		case 1:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			pd := &SummaryMetadataPluginData{}
			if err := pd.Unmarshal(v); err != nil {
				return err
			}
			m.PluginData = pd
			data = data[n:]
		case 2:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.DisplayName = string(v)
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

// HistogramProto is a fixed-bucket histogram over a stream of samples. The
// two packed repeated fields share an index: bucket[i] counts samples
// falling in (bucket_limit[i-1], bucket_limit[i]], with bucket_limit[-1]
// treated as -infinity.
type HistogramProto struct {
	Min         float64
	Max         float64
	Num         float64
	Sum         float64
	SumSquares  float64
	BucketLimit []float64
	Bucket      []float64
}

func (m *HistogramProto) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	b = appendDouble(b, 1, m.Min)
	b = appendDouble(b, 2, m.Max)
	b = appendDouble(b, 3, m.Num)
	b = appendDouble(b, 4, m.Sum)
	b = appendDouble(b, 5, m.SumSquares)
	b = appendPackedDoubles(b, 6, m.BucketLimit)
	b = appendPackedDoubles(b, 7, m.Bucket)
	return b, nil
}

func (m *HistogramProto) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		switch num {
		case 1, 2, 3, 4, 5:
			v, n, err := consumeFixed64(data)
			if err != nil {
				return err
			}
			f := float64FromBits(v)
			switch num {
			case 1:
				m.Min = f
			case 2:
				m.Max = f
			case 3:
				m.Num = f
			case 4:
				m.Sum = f
			case 5:
				m.SumSquares = f
			}
			data = data[n:]
		case 6, 7:
			raw, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			vs, err := consumePackedDoubles(raw)
			if err != nil {
				return err
			}
			if num == 6 {
				m.BucketLimit = append(m.BucketLimit, vs...)
			} else {
				m.Bucket = append(m.Bucket, vs...)
			}
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

// ColorSpace enumerates the channel layouts Image.Colorspace may carry.
type ColorSpace int32

const (
	ColorSpaceLuma       ColorSpace = 1
	ColorSpaceLumaAlpha  ColorSpace = 2
	ColorSpaceRGB        ColorSpace = 3
	ColorSpaceRGBA       ColorSpace = 4
	ColorSpaceDigitalYUV ColorSpace = 5
	ColorSpaceBGRA       ColorSpace = 6
)

// NumChannels returns the number of channels implied by the color space,
// or 0 for an unrecognized value.
func (c ColorSpace) NumChannels() int {
	switch c {
	case ColorSpaceLuma:
		return 1
	case ColorSpaceLumaAlpha:
		return 2
	case ColorSpaceRGB, ColorSpaceDigitalYUV:
		return 3
	case ColorSpaceRGBA, ColorSpaceBGRA:
		return 4
	default:
		return 0
	}
}

// Image is a single PNG-encoded image summary value.
type Image struct {
	Height             int32
	Width              int32
	Colorspace         int32
	EncodedImageString []byte
}

func (m *Image) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	b = appendInt32(b, 1, m.Height)
	b = appendInt32(b, 2, m.Width)
	b = appendInt32(b, 3, m.Colorspace)
	b = appendBytes(b, 4, m.EncodedImageString)
	return b, nil
}

func (m *Image) Unmarshal(data []byte) error {
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
			m.Height = int32(v)
			data = data[n:]
		case 2:
			v, n, err := consumeVarint(data)
			if err != nil {
				return err
			}
			m.Width = int32(v)
			data = data[n:]
		case 3:
			v, n, err := consumeVarint(data)
			if err != nil {
				return err
			}
			m.Colorspace = int32(v)
			data = data[n:]
		case 4:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.EncodedImageString = append([]byte(nil), v...)
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

// Audio is a single encoded audio summary value.
type Audio struct {
	SampleRate        float32
	NumChannels        int64
	LengthFrames       int64
	EncodedAudioString []byte
	ContentType        string
}

func (m *Audio) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	b = appendFloat(b, 1, m.SampleRate)
	b = appendInt64(b, 2, m.NumChannels)
	b = appendInt64(b, 3, m.LengthFrames)
	b = appendBytes(b, 4, m.EncodedAudioString)
	b = appendString(b, 5, m.ContentType)
	return b, nil
}

func (m *Audio) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		switch num {
		case 1:
			v, n, err := consumeFixed32(data)
			if err != nil {
				return err
			}
			m.SampleRate = float32FromBits(v)
			data = data[n:]
		case 2:
			v, n, err := consumeVarint(data)
			if err != nil {
				return err
			}
			m.NumChannels = int64(v)
			data = data[n:]
		case 3:
			v, n, err := consumeVarint(data)
			if err != nil {
				return err
			}
			m.LengthFrames = int64(v)
			data = data[n:]
		case 4:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.EncodedAudioString = append([]byte(nil), v...)
			data = data[n:]
		case 5:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.ContentType = string(v)
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

// SummaryValue is one named entry in a Summary. Exactly one of the value
// fields is populated, matching the oneof "value" in summary.proto.
// ObsoleteOldStyleHistogram is retained only to round-trip legacy files;
// new writers never populate it.
type SummaryValue struct {
	NodeName string
	Tag      string
	Metadata *SummaryMetadata

	SimpleValue               float32
	HasSimpleValue             bool
	ObsoleteOldStyleHistogram []byte
	Image                     *Image
	Histo                     *HistogramProto
	Audio                     *Audio
	Tensor                    *TensorProto
}

func (m *SummaryValue) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	b = appendString(b, 1, m.Tag)
	var err error
	switch {
	case m.HasSimpleValue:
		b = appendFloat(b, 2, m.SimpleValue)
	case m.ObsoleteOldStyleHistogram != nil:
		b = appendBytes(b, 3, m.ObsoleteOldStyleHistogram)
	case m.Image != nil:
		b, err = appendMessage(b, 4, m.Image)
	case m.Histo != nil:
		b, err = appendMessage(b, 5, m.Histo)
	case m.Audio != nil:
		b, err = appendMessage(b, 6, m.Audio)
	case m.Tensor != nil:
		b, err = appendMessage(b, 8, m.Tensor)
	}
	if err != nil {
		return nil, err
	}
	b = appendString(b, 7, m.NodeName)
	b, err = appendMessage(b, 9, m.Metadata)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (m *SummaryValue) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		switch num {
		case 1:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.Tag = string(v)
			data = data[n:]
		case 2:
			v, n, err := consumeFixed32(data)
			if err != nil {
				return err
			}
			m.SimpleValue = float32FromBits(v)
			m.HasSimpleValue = true
			data = data[n:]
		case 3:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.ObsoleteOldStyleHistogram = append([]byte(nil), v...)
			data = data[n:]
		case 4:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			img := &Image{}
			if err := img.Unmarshal(v); err != nil {
				return err
			}
			m.Image = img
			data = data[n:]
		case 5:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			h := &HistogramProto{}
			if err := h.Unmarshal(v); err != nil {
				return err
			}
			m.Histo = h
			data = data[n:]
		case 6:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			a := &Audio{}
			if err := a.Unmarshal(v); err != nil {
				return err
			}
			m.Audio = a
			data = data[n:]
		case 7:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.NodeName = string(v)
			data = data[n:]
		case 8:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			t := &TensorProto{}
			if err := t.Unmarshal(v); err != nil {
				return err
			}
			m.Tensor = t
			data = data[n:]
		case 9:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			md := &SummaryMetadata{}
			if err := md.Unmarshal(v); err != nil {
				return err
			}
			m.Metadata = md
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

// Summary is an ordered collection of named values attached to one Event.
type Summary struct {
	Value []*SummaryValue
}

func (m *Summary) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	for _, v := range m.Value {
		inner, err := v.Marshal()
		if err != nil {
			return nil, err
		}
		b = appendBytes(b, 1, inner)
	}
	return b, nil
}

func (m *Summary) Unmarshal(data []byte) error {
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
			v := &SummaryValue{}
			if err := v.Unmarshal(raw); err != nil {
				return err
			}
			m.Value = append(m.Value, v)
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
