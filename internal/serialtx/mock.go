package serialtx

import (
	"bytes"
	"errors"
	"sync"
)

// MockPort implements Port with configurable behaviour for testing and dev
// mode. It records every write call individually so ordering and write
// granularity can be asserted, and supports injected write failures.
type MockPort struct {
	mu sync.Mutex

	// writeBuffer captures all data written to the port
	writeBuffer bytes.Buffer

	// calls records the bytes of each individual Write call
	calls [][]byte

	// WriteError is returned by the next Write call if set, then cleared
	WriteError error

	// FailFromCall makes every Write call numbered >= this value
	// (1-based) fail; zero disables the injection
	FailFromCall int

	// CloseError is returned by Close if set
	CloseError error

	// Closed indicates whether Close was called
	Closed bool

	// WriteCalls records the number of Write calls
	WriteCalls int
}

// NewMockPort creates a new MockPort.
func NewMockPort() *MockPort {
	return &MockPort{}
}

// Write records p, honouring any injected error.
func (m *MockPort) Write(p []byte) (n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCalls++

	if m.Closed {
		return 0, errors.New("serial port closed")
	}

	if m.WriteError != nil {
		err := m.WriteError
		m.WriteError = nil
		return 0, err
	}

	if m.FailFromCall > 0 && m.WriteCalls >= m.FailFromCall {
		return 0, errors.New("injected write failure")
	}

	m.calls = append(m.calls, append([]byte(nil), p...))
	return m.writeBuffer.Write(p)
}

// Close marks the port as closed.
func (m *MockPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Closed = true
	return m.CloseError
}

// Written returns all data written to the port.
func (m *MockPort) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]byte(nil), m.writeBuffer.Bytes()...)
}

// Calls returns the bytes of each individual Write call in order.
func (m *MockPort) Calls() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([][]byte, len(m.calls))
	for i, c := range m.calls {
		calls[i] = append([]byte(nil), c...)
	}
	return calls
}

// Reset clears all recorded writes and injected errors.
func (m *MockPort) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeBuffer.Reset()
	m.calls = nil
	m.WriteCalls = 0
	m.Closed = false
	m.WriteError = nil
	m.FailFromCall = 0
	m.CloseError = nil
}
