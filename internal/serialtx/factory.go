package serialtx

import (
	"go.bug.st/serial"
)

// NewRealTransmitter creates a Transmitter backed by a real serial port at
// the given path using the provided serial options.
func NewRealTransmitter(path string, opts PortOptions) (*Transmitter[serial.Port], error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}

	return NewTransmitter[serial.Port](port), nil
}

// NewMockTransmitter creates a Transmitter backed by an in-memory mock port
// and returns the port so tests and dev mode can inspect what was written.
func NewMockTransmitter() (*Transmitter[*MockPort], *MockPort) {
	port := NewMockPort()
	return NewTransmitter(port), port
}
