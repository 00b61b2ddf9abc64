// Serialtx owns the transmit side of the XBee serial link: a generic
// transmitter over an exclusively held serial port that writes frames one
// byte at a time, publishes a hex record of every delivered frame to
// subscribers, and exposes admin debugging routes for live inspection.
package serialtx

import (
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// ErrWriteFailed reports a write call that completed without error but did
// not consume the byte handed to it.
var ErrWriteFailed = fmt.Errorf("short write to serial port")

// Stats are cumulative transmit counters since the transmitter was created.
type Stats struct {
	Frames      int64     `json:"frames"`
	Bytes       int64     `json:"bytes"`
	WriteErrors int64     `json:"write_errors"`
	Since       time.Time `json:"since"`
}

// Transmitter drives a single serial port. Frames are written strictly in
// order, one byte per write call, so a failure identifies the exact prefix
// that reached the device. Multiple clients may subscribe to a hex feed of
// delivered frames.
type Transmitter[T Port] struct {
	port         T
	subscribers  map[string]chan string
	subscriberMu sync.Mutex
	transmitMu   sync.Mutex
	scratch      [1]byte

	statsMu sync.Mutex
	stats   Stats

	closing   bool
	closingMu sync.Mutex
}

// TransmitterInterface defines the interface for the Transmitter type so
// callers can hold real and mock transmitters behind one name.
type TransmitterInterface interface {
	// Transmit writes a complete frame to the serial port in order, one
	// byte at a time, and returns how many bytes were fully delivered.
	Transmit(frame []byte) (int, error)
	// Subscribe creates a new channel receiving the hex encoding of each
	// delivered frame. The channel ID identifies the channel when
	// unsubscribing.
	Subscribe() (string, chan string)
	// Unsubscribe removes a channel from the list of subscribers.
	Unsubscribe(string)
	// Stats returns cumulative transmit counters.
	Stats() Stats
	// Close closes all subscribed channels and closes the serial port.
	Close() error

	// AttachAdminRoutes attaches admin debugging endpoints to the given
	// HTTP mux served at /debug/. These routes are accessible only over
	// localhost/via Tailscale and are not publicly accessible.
	AttachAdminRoutes(*http.ServeMux)
}

// NewTransmitter creates a Transmitter that exclusively owns the given port.
func NewTransmitter[T Port](port T) *Transmitter[T] {
	return &Transmitter[T]{
		port:        port,
		subscribers: make(map[string]chan string),
		stats:       Stats{Since: time.Now()},
	}
}

// randomID generates a random channel ID (8 byte random hex encoded value)
func randomID() string {
	b := make([]byte, 8)
	crand.Read(b)
	return hex.EncodeToString(b)
}

func (t *Transmitter[T]) Subscribe() (string, chan string) {
	id := randomID()
	ch := make(chan string, 1)
	t.subscriberMu.Lock()
	defer t.subscriberMu.Unlock()
	t.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber from the transmitter.
func (t *Transmitter[T]) Unsubscribe(id string) {
	t.subscriberMu.Lock()
	defer t.subscriberMu.Unlock()
	if ch, ok := t.subscribers[id]; ok {
		close(ch)
		delete(t.subscribers, id)
	}
}

// Transmit writes frame to the serial port one byte at a time, preserving
// order and never coalescing or dropping bytes. It stops at the first write
// that fails or comes up short and returns the count of bytes that were
// fully delivered before the failure; the receiver must treat such a frame
// as not delivered. On success the frame's hex encoding is published to
// subscribers.
func (t *Transmitter[T]) Transmit(frame []byte) (int, error) {
	t.transmitMu.Lock()
	defer t.transmitMu.Unlock()

	for i, b := range frame {
		t.scratch[0] = b
		n, err := t.port.Write(t.scratch[:])
		if err != nil {
			t.recordError()
			return i, fmt.Errorf("write byte %d of %d: %w", i, len(frame), err)
		}
		if n != 1 {
			t.recordError()
			return i, fmt.Errorf("write byte %d of %d: %w", i, len(frame), ErrWriteFailed)
		}
	}

	t.statsMu.Lock()
	t.stats.Frames++
	t.stats.Bytes += int64(len(frame))
	t.statsMu.Unlock()

	t.publish(hex.EncodeToString(frame))
	return len(frame), nil
}

func (t *Transmitter[T]) recordError() {
	t.statsMu.Lock()
	t.stats.WriteErrors++
	t.statsMu.Unlock()
}

// publish fans a delivered frame out to subscribers without blocking the
// transmit path; a subscriber that is not keeping up misses frames.
func (t *Transmitter[T]) publish(frameHex string) {
	t.closingMu.Lock()
	if t.closing {
		t.closingMu.Unlock()
		return
	}
	t.closingMu.Unlock()

	t.subscriberMu.Lock()
	defer t.subscriberMu.Unlock()
	for _, ch := range t.subscribers {
		select {
		case ch <- frameHex:
		default:
		}
	}
}

// Stats returns a copy of the cumulative transmit counters.
func (t *Transmitter[T]) Stats() Stats {
	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	return t.stats
}

func (t *Transmitter[T]) Close() error {
	t.closingMu.Lock()
	t.closing = true
	t.closingMu.Unlock()

	t.subscriberMu.Lock()
	defer t.subscriberMu.Unlock()
	for id, ch := range t.subscribers {
		close(ch)
		delete(t.subscribers, id)
	}
	return t.port.Close()
}
