package wire

// Reserved byte values shared with the receiving end of the link.
const (
	// StartByte marks the beginning of every frame. It is transmitted
	// literally exactly once per frame and never appears unescaped
	// anywhere else in the frame.
	StartByte byte = 0x7D
	// EscapeByte precedes any payload or checksum byte that collides
	// with a reserved value.
	EscapeByte byte = 0x7E
	// EscapeMask is XORed onto the byte following an EscapeByte.
	EscapeMask byte = 0x20
)

// AppendFrame appends the complete frame for payload to dst and returns
// the extended slice: the literal start marker, the escaped payload,
// and the escaped checksum.
//
// The checksum accumulator starts at StartByte and adds each payload
// byte as transmitted, i.e. after escape masking; the inserted
// EscapeByte markers themselves are not summed. The resulting byte is
// escaped by the same rule before it is appended. Summing post-escape
// values is what the deployed receiver firmware implements, so it must
// not be "corrected" to the logical pre-escape payload.
func AppendFrame(dst, payload []byte) []byte {
	dst = append(dst, StartByte)
	sum := StartByte
	for _, b := range payload {
		if b == StartByte || b == EscapeByte {
			b ^= EscapeMask
			dst = append(dst, EscapeByte)
		}
		dst = append(dst, b)
		sum += b
	}
	if sum == StartByte || sum == EscapeByte {
		dst = append(dst, EscapeByte, sum^EscapeMask)
	} else {
		dst = append(dst, sum)
	}
	return dst
}

// EncodeFrame returns the complete frame for payload.
func EncodeFrame(payload []byte) []byte {
	// Worst case every byte escapes: marker + 2*payload + 2-byte checksum.
	return AppendFrame(make([]byte, 0, 2*len(payload)+3), payload)
}

// Checksum returns the frame checksum byte for payload, before escaping.
// It is the byte sum of StartByte and every transmitted payload byte
// (post-escape values, markers excluded).
func Checksum(payload []byte) byte {
	sum := StartByte
	for _, b := range payload {
		if b == StartByte || b == EscapeByte {
			b ^= EscapeMask
		}
		sum += b
	}
	return sum
}

// FrameEncodedLen returns the exact encoded length of the frame for
// payload, accounting for escape expansion of payload and checksum.
func FrameEncodedLen(payload []byte) int {
	n := 2 + len(payload) // marker + payload + checksum
	for _, b := range payload {
		if b == StartByte || b == EscapeByte {
			n++
		}
	}
	if sum := Checksum(payload); sum == StartByte || sum == EscapeByte {
		n++
	}
	return n
}
