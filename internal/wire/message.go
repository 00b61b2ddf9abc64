package wire

// Kind is the 3-bit message tag carried in the top bits of the first
// payload byte.
type Kind uint8

const (
	// KindVector tags a motion vector message (x, y, theta).
	KindVector Kind = 0
	// KindCalibration tags a rotation calibration message.
	KindCalibration Kind = 1
	// KindCommand tags a kicker command message.
	KindCommand Kind = 2
)

// kindBits is the width of the kind tag.
const kindBits = 3

// Message is one payload's worth of robot state. The three
// implementations — Vector, Calibration and Command — are the only ones:
// the unexported method keeps the set closed so the encoder's type
// switch is exhaustive by construction.
type Message interface {
	// Kind returns the message tag transmitted in the payload.
	Kind() Kind

	appendFields(w *bitWriter)
}

// Vector is the kind-0 motion vector. Each component carries 12 bits;
// higher bits of the field values are truncated on encode.
type Vector struct {
	X     uint16
	Y     uint16
	Theta uint16
}

// Kind returns KindVector.
func (Vector) Kind() Kind { return KindVector }

func (m Vector) appendFields(w *bitWriter) {
	w.writeBits(uint64(m.X), 12)
	w.writeBits(uint64(m.Y), 12)
	w.writeBits(uint64(m.Theta), 12)
}

// Calibration is the kind-1 rotation calibration value, 13 bits wide.
type Calibration struct {
	Value uint16
}

// Kind returns KindCalibration.
func (Calibration) Kind() Kind { return KindCalibration }

func (m Calibration) appendFields(w *bitWriter) {
	w.writeBits(uint64(m.Value), 13)
}

// Command is the kind-2 kicker command, 5 bits wide.
type Command struct {
	Code uint8
}

// Kind returns KindCommand.
func (Command) Kind() Kind { return KindCommand }

func (m Command) appendFields(w *bitWriter) {
	w.writeBits(uint64(m.Code), 5)
}

// AppendMessage appends the bit-packed payload for m to dst and returns
// the extended slice. The kind tag occupies the top three bits of the
// first appended byte; fields follow most-significant-bit first in
// declared order, and the final byte is zero-padded in its low bits
// when the total bit count is not a multiple of eight.
func AppendMessage(dst []byte, m Message) []byte {
	w := bitWriter{buf: dst}
	w.writeBits(uint64(m.Kind()), kindBits)
	m.appendFields(&w)
	return w.buf
}

// EncodeMessage returns the bit-packed payload for m.
func EncodeMessage(m Message) []byte {
	return AppendMessage(make([]byte, 0, 5), m)
}

// bitWriter packs values most-significant-bit first into a byte slice,
// zero-padding the trailing byte.
type bitWriter struct {
	buf  []byte
	used uint8 // bits consumed in the final byte of buf
}

// writeBits appends the low width bits of v, MSB first. Bits of v above
// width are ignored, which gives the encoder its truncate-to-width
// behavior.
func (w *bitWriter) writeBits(v uint64, width uint8) {
	for width > 0 {
		if w.used == 0 {
			w.buf = append(w.buf, 0)
		}
		free := 8 - w.used
		n := width
		if n > free {
			n = free
		}
		shift := width - n
		chunk := byte(v>>shift) & (1<<n - 1)
		w.buf[len(w.buf)-1] |= chunk << (free - n)
		w.used = (w.used + n) % 8
		width -= n
	}
}
