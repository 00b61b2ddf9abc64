// Package wire implements the XBee link wire format: bit-packing of the
// three robot message kinds into payload bytes, and framing of those
// payloads with reserved-byte escaping and an additive checksum.
//
// Every frame on the link has the shape
//
//	| START | escaped payload bytes ... | escaped checksum |
//
// where START is a literal, unescaped synchronization marker and any
// payload or checksum byte that collides with a reserved value is
// transmitted as an ESCAPE marker followed by the byte XORed with
// EscapeMask.
//
// The payload layouts, in transmission order (bit 0 = most significant
// bit of the first payload byte):
//
//	kind 0 (motion vector)
//	| 0-2(3) | 3-14(12) | 15-26(12) | 27-38(12) | 39(1) |
//	|--------|----------|-----------|-----------|-------|
//	| KIND   | X        | Y         | THETA     | PAD   |
//
//	kind 1 (calibration)
//	| 0-2(3) | 3-15(13) |
//	|--------|----------|
//	| KIND   | CALIB    |
//
//	kind 2 (command)
//	| 0-2(3) | 3-7(5) |
//	|--------|--------|
//	| KIND   | CMD    |
//
// The checksum is the low byte of START plus every transmitted payload
// byte, where "transmitted" means the value on the wire after escape
// masking. Inserted ESCAPE markers are not summed. This is the format
// the deployed receivers expect; see EncodeFrame for details.
//
// Encoding is pure and allocation-conscious: the Append variants write
// into a caller-provided buffer so per-cycle encoding can reuse scratch
// space.
package wire
