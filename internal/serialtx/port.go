package serialtx

import "io"

// Port defines the minimal interface the transmitter needs from a serial
// device. The link is transmit-only, so there is no read side. This
// abstraction enables unit testing without real serial hardware.
type Port interface {
	io.Writer
	io.Closer
}
