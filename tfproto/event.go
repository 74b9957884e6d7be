package tfproto

// LogMessage is a free text log line, one of the Event "what" variants.
// Level numbering matches TensorFlow's LogMessage.Level enum.
type LogMessage struct {
	Level   int32
	Message string
}

const (
	LogMessageUnknown   int32 = 0
	LogMessageDebugging int32 = 10
	LogMessageInfo      int32 = 20
	LogMessageWarn      int32 = 30
	LogMessageError     int32 = 40
	LogMessageFatal     int32 = 50
)

func (m *LogMessage) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	b = appendInt32(b, 1, m.Level)
	b = appendString(b, 2, m.Message)
	return b, nil
}

func (m *LogMessage) Unmarshal(data []byte) error {
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
			m.Level = int32(v)
			data = data[n:]
		case 2:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.Message = string(v)
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

// SessionLog records the lifecycle of a training session. Status numbering
// matches TensorFlow's SessionLog.SessionStatus enum.
type SessionLog struct {
	Status         int32
	CheckpointPath string
	Msg            string
}

const (
	SessionStatusUnspecified int32 = 0
	SessionStatusStart       int32 = 1
	SessionStatusStop        int32 = 2
	SessionStatusCheckpoint  int32 = 3
)

func (m *SessionLog) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	b = appendInt32(b, 1, m.Status)
	b = appendString(b, 2, m.CheckpointPath)
	b = appendString(b, 3, m.Msg)
	return b, nil
}

func (m *SessionLog) Unmarshal(data []byte) error {
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
			m.Status = int32(v)
			data = data[n:]
		case 2:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.CheckpointPath = string(v)
			data = data[n:]
		case 3:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.Msg = string(v)
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

// TaggedRunMetadata carries an opaque, tagged RunMetadata blob.
type TaggedRunMetadata struct {
	Tag         string
	RunMetadata []byte
}

func (m *TaggedRunMetadata) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	b = appendString(b, 1, m.Tag)
	b = appendBytes(b, 2, m.RunMetadata)
	return b, nil
}

func (m *TaggedRunMetadata) Unmarshal(data []byte) error {
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
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.RunMetadata = append([]byte(nil), v...)
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

// Event is a time-stamped, stepped record. Exactly one of the What fields
// is populated at a time, matching the oneof "what" in event.proto.
type Event struct {
	WallTime float64
	Step     int64

	FileVersion       string
	GraphDef          []byte
	Summary           *Summary
	LogMessage        *LogMessage
	SessionLog        *SessionLog
	TaggedRunMetadata *TaggedRunMetadata
	MetaGraphDef      []byte
}

func (m *Event) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	b = appendDouble(b, 1, m.WallTime)
	b = appendInt64(b, 2, m.Step)

	var err error
	switch {
	case m.FileVersion != "":
		b = appendString(b, 3, m.FileVersion)
	case m.GraphDef != nil:
		b = appendBytes(b, 4, m.GraphDef)
	case m.Summary != nil:
		b, err = appendMessage(b, 5, m.Summary)
	case m.LogMessage != nil:
		b, err = appendMessage(b, 6, m.LogMessage)
	case m.SessionLog != nil:
		b, err = appendMessage(b, 7, m.SessionLog)
	case m.TaggedRunMetadata != nil:
		b, err = appendMessage(b, 8, m.TaggedRunMetadata)
	case m.MetaGraphDef != nil:
		b = appendBytes(b, 9, m.MetaGraphDef)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (m *Event) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, tn, err := consumeTag(data)
		if err != nil {
			return err
		}
		data = data[tn:]
		switch num {
		case 1:
			v, n, err := consumeFixed64(data)
			if err != nil {
				return err
			}
			m.WallTime = float64FromBits(v)
			data = data[n:]
		case 2:
			v, n, err := consumeVarint(data)
			if err != nil {
				return err
			}
			m.Step = int64(v)
			data = data[n:]
		case 3:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.FileVersion = string(v)
			data = data[n:]
		case 4:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.GraphDef = append([]byte(nil), v...)
			data = data[n:]
		case 5:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			s := &Summary{}
			if err := s.Unmarshal(v); err != nil {
				return err
			}
			m.Summary = s
			data = data[n:]
		case 6:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			lm := &LogMessage{}
			if err := lm.Unmarshal(v); err != nil {
				return err
			}
			m.LogMessage = lm
			data = data[n:]
		case 7:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			sl := &SessionLog{}
			if err := sl.Unmarshal(v); err != nil {
				return err
			}
			m.SessionLog = sl
			data = data[n:]
		case 8:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			trm := &TaggedRunMetadata{}
			if err := trm.Unmarshal(v); err != nil {
				return err
			}
			m.TaggedRunMetadata = trm
			data = data[n:]
		case 9:
			v, n, err := consumeBytes(data)
			if err != nil {
				return err
			}
			m.MetaGraphDef = append([]byte(nil), v...)
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
