package serialtx

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tailscale.com/tsweb"

	"github.com/EaterK/usbserial-xbee/internal/wire"
)

// AttachAdminRoutes attaches admin debugging endpoints to the given HTTP mux
// served at /debug/: a JSON counter dump, an SSE tail of transmitted frame
// hex, and a manual frame injector for exercising the link by hand.
func (t *Transmitter[T]) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)

	debug.HandleSilentFunc("tx-stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(t.Stats()); err != nil {
			http.Error(w, "Failed to encode stats", http.StatusInternalServerError)
		}
	})

	// API endpoint to frame and transmit a hex payload, bypassing the
	// pacing loop. Useful for poking a receiver on the bench.
	debug.HandleSilentFunc("send-frame", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		payloadHex := strings.TrimSpace(r.FormValue("payload"))
		if payloadHex == "" {
			http.Error(w, "Missing payload", http.StatusBadRequest)
			return
		}
		payload, err := hex.DecodeString(payloadHex)
		if err != nil {
			http.Error(w, "Invalid hex payload", http.StatusBadRequest)
			return
		}
		frame := wire.EncodeFrame(payload)
		if _, err := t.Transmit(frame); err != nil {
			http.Error(w, "Failed to transmit frame", http.StatusInternalServerError)
			return
		}
		io.WriteString(w, fmt.Sprintf("Transmitted frame %x for payload %x", frame, payload))
	})

	// API endpoint to issue Server-Side Events (SSE) carrying the hex dump
	// of every frame delivered to the serial port.
	debug.HandleSilentFunc("tail", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no") // Disable buffering for nginx

		id, c := t.Subscribe()
		defer t.Unsubscribe(id)

		// Send initial ping to establish connection
		w.Write([]byte(": ping\n\n"))
		w.(http.Flusher).Flush()

		for {
			select {
			case frameHex, ok := <-c:
				if !ok {
					// Channel closed, exit gracefully
					return
				}
				if _, err := fmt.Fprintf(w, "data: %s\n\n", frameHex); err != nil {
					return
				}
				w.(http.Flusher).Flush()
			case <-r.Context().Done():
				return
			}
		}
	})
}
