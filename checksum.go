package tfrecord

import "hash/crc32"

// crcMagicNum is TFRecord's masking constant: a plain CRC-32C is never
// stored on disk directly, so that a record payload that happens to embed
// another valid TFRecord frame doesn't confuse a naive scanner.
const crcMagicNum = 0xa282ead8

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// crc32c accumulates a masked CRC-32C checksum incrementally over any
// number of Update calls, giving the same result as Checksum over the
// concatenated input. The Frame Codec itself uses the one-shot Checksum and
// Verify.
type crc32c struct {
	acc uint32
}

func (c *crc32c) Update(p []byte) {
	c.acc = crc32.Update(c.acc, crc32cTable, p)
}

// Value returns the masked checksum of everything written so far.
func (c *crc32c) Value() uint32 {
	return maskCRC(c.acc)
}

func maskCRC(crc uint32) uint32 {
	return ((crc >> 15) | (crc << 17)) + crcMagicNum
}

// Checksum returns the masked CRC-32C checksum of data, as stored in a
// TFRecord length or payload footer.
func Checksum(data []byte) uint32 {
	return maskCRC(crc32.Checksum(data, crc32cTable))
}

// Verify reports an *ErrChecksumMismatch if data's masked CRC-32C does not
// equal expected.
func Verify(data []byte, expected uint32) error {
	if found := Checksum(data); found != expected {
		return &ErrChecksumMismatch{Expected: expected, Found: found}
	}
	return nil
}
