// Package tfrecord reads and writes the TFRecord container format and the
// TensorBoard summary/event records commonly stored inside it.
//
// Format spec: https://www.tensorflow.org/tutorials/load_data/tfrecord,
// assume all numbers are little-endian although not actually defined in
// spec.
//
// A record is framed as an 8-byte little-endian length, a masked CRC-32C
// of that length, the payload itself, and a masked CRC-32C of the payload
// (checksum.go, frame.go). Reader and Writer (reader.go, writer.go) layer
// pluggable encode/decode functions over that framing so the same codec
// serves raw bytes, tf.Example records, and TensorBoard Event records.
// Indexer (indexer.go) builds a random-access offset index over one or
// many TFRecord files without holding their contents in memory. Accumulator
// (histogram.go) and the summary builders (summary.go, tensor.go, image.go,
// event.go) produce TensorBoard-compatible Summary and Event values.
package tfrecord
