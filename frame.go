package tfrecord

import (
	"encoding/binary"
	"io"
)

const (
	lengthSize = 8
	crcSize    = 4
	headerSize = lengthSize + crcSize
	footerSize = crcSize
)

// readLength reads and validates the 12-byte length header of one frame. A
// clean EOF before any byte is read is reported as (0, false, nil); any
// other short read is a truncation.
func readLength(r io.Reader) (length uint64, ok bool, err error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF {
			return 0, false, nil
		}
		return 0, false, newUnexpectedEOF(err)
	}
	length = binary.LittleEndian.Uint64(header[:lengthSize])
	lengthCRC := binary.LittleEndian.Uint32(header[lengthSize:])
	if err := Verify(header[:lengthSize], lengthCRC); err != nil {
		return 0, false, err
	}
	return length, true, nil
}

// readPayload reads length bytes of payload plus its 4-byte footer CRC into
// buf (reused when it's large enough), validating the payload checksum when
// checkIntegrity is set.
func readPayload(r io.Reader, length uint64, checkIntegrity bool, buf []byte) ([]byte, error) {
	var record []byte
	if length > uint64(len(buf)) {
		record = make([]byte, length)
	} else {
		record = buf[:length]
	}
	if _, err := io.ReadFull(r, record); err != nil {
		return nil, newUnexpectedEOF(err)
	}
	var footer [footerSize]byte
	if _, err := io.ReadFull(r, footer[:]); err != nil {
		return nil, newUnexpectedEOF(err)
	}
	if checkIntegrity {
		payloadCRC := binary.LittleEndian.Uint32(footer[:])
		if err := Verify(record, payloadCRC); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// skipPayload advances past length bytes of payload plus its footer without
// reading them, using seeker when the reader supports it, else by reading
// and discarding. Used by the Indexer's check-integrity=false fast path.
func skipPayload(r io.Reader, length uint64) error {
	toSkip := int64(length) + footerSize
	if seeker, ok := r.(io.Seeker); ok {
		if _, err := seeker.Seek(toSkip, io.SeekCurrent); err != nil {
			return newUnexpectedEOF(err)
		}
		return nil
	}
	if _, err := io.CopyN(io.Discard, r, toSkip); err != nil {
		return newUnexpectedEOF(err)
	}
	return nil
}

// readRecord reads one full frame from r. buf is reused for the payload
// when large enough. A clean end of stream is reported as (nil, false, nil).
func readRecord(r io.Reader, checkIntegrity bool, buf []byte) ([]byte, bool, error) {
	length, ok, err := readLength(r)
	if err != nil || !ok {
		return nil, false, err
	}
	record, err := readPayload(r, length, checkIntegrity, buf)
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

// writeRecord writes one full frame to w: 8-byte length, its masked CRC,
// the payload, and the payload's masked CRC.
func writeRecord(w io.Writer, record []byte) error {
	var header [headerSize]byte
	binary.LittleEndian.PutUint64(header[:lengthSize], uint64(len(record)))
	binary.LittleEndian.PutUint32(header[lengthSize:], Checksum(header[:lengthSize]))
	if _, err := w.Write(header[:]); err != nil {
		return &ErrIO{Err: err}
	}
	if _, err := w.Write(record); err != nil {
		return &ErrIO{Err: err}
	}
	var footer [footerSize]byte
	binary.LittleEndian.PutUint32(footer[:], Checksum(record))
	if _, err := w.Write(footer[:]); err != nil {
		return &ErrIO{Err: err}
	}
	return nil
}
