// Command xbeetx transmits robot state frames over an XBee serial link at a
// fixed cadence. It wires a value source (random simulation or a live MQTT
// bus) through the wire codec and pacing loop onto a real or mock serial
// port, with optional admin debugging routes over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/EaterK/usbserial-xbee/internal/monitoring"
	"github.com/EaterK/usbserial-xbee/internal/pacing"
	"github.com/EaterK/usbserial-xbee/internal/serialtx"
	"github.com/EaterK/usbserial-xbee/internal/source"
	"github.com/EaterK/usbserial-xbee/internal/timeutil"
	"github.com/EaterK/usbserial-xbee/internal/version"
)

var (
	devMode       = flag.Bool("dev", false, "use an in-memory mock port instead of hardware")
	portPath      = flag.String("port", "/dev/ttyS16", "serial device to transmit on (ignored in dev mode)")
	baudRate      = flag.Int("baud", 115200, "serial baud rate")
	rateHz        = flag.Int("rate", pacing.DefaultRateHz, "transmit cycle rate in Hz")
	cycleCount    = flag.Uint64("count", 0, "number of cycles to transmit (0 = run until interrupted)")
	sourceKind    = flag.String("source", "random", "value source: random or mqtt")
	mqttURL       = flag.String("mqtt-url", "tcp://127.0.0.1:1883", "MQTT broker URL for -source=mqtt")
	listen        = flag.String("listen", "", "admin HTTP listen address (empty = disabled)")
	statsInterval = flag.Duration("stats-interval", 30*time.Second, "interval between cycle-time summaries (0 disables)")
	debugFrames   = flag.Bool("debug", false, "log the hex of every transmitted frame")
	showVersion   = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("xbeetx %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	os.Exit(run())
}

func run() int {
	runID := uuid.New()
	log.Printf("xbeetx starting run=%s version=%s", runID, version.Version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var tx serialtx.TransmitterInterface
	if *devMode {
		mockTx, _ := serialtx.NewMockTransmitter()
		tx = mockTx
		log.Print("using mock serial port")
	} else {
		realTx, err := serialtx.NewRealTransmitter(*portPath, serialtx.PortOptions{BaudRate: *baudRate})
		if err != nil {
			log.Printf("failed to open serial port %s: %v", *portPath, err)
			return 1
		}
		tx = realTx
		log.Printf("opened serial port %s at %d baud", *portPath, *baudRate)
	}
	defer tx.Close()

	src, cleanup, err := newSource(*sourceKind, *mqttURL)
	if err != nil {
		log.Printf("failed to create value source: %v", err)
		return 1
	}
	defer cleanup()

	var wg sync.WaitGroup

	if *debugFrames {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, c := tx.Subscribe()
			defer tx.Unsubscribe(id)
			for {
				select {
				case frameHex, ok := <-c:
					if !ok {
						return
					}
					log.Printf("frame %s", frameHex)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	if *listen != "" {
		mux := http.NewServeMux()
		tx.AttachAdminRoutes(mux)
		server := &http.Server{Addr: *listen, Handler: mux}

		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Printf("admin server listening on %s", *listen)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("admin server failed: %v", err)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Printf("admin server shutdown: %v", err)
			}
		}()
	}

	loop := pacing.New(pacing.Config{
		RateHz:        *rateHz,
		Cycles:        *cycleCount,
		StatsInterval: *statsInterval,
	}, src, tx, timeutil.RealClock{})

	result, err := loop.Run(ctx)

	stop()
	wg.Wait()

	return reportOutcome(runID.String(), result, err)
}

// reportOutcome logs how the run ended and maps it to the process exit
// status: a transmit I/O failure is the only fatal outcome, and early
// termination by signal is a reported, zero-status condition.
func reportOutcome(runID string, result pacing.Result, err error) int {
	switch {
	case err != nil:
		log.Printf("run=%s failed after %d cycles: %v", runID, result.Cycles, err)
		return 1
	case result.Interrupted:
		log.Printf("run=%s terminated early: %d of %d cycles transmitted", runID, result.Cycles, result.Limit)
		return 0
	default:
		log.Printf("run=%s complete: %d cycles in %v", runID, result.Cycles, result.Elapsed.Round(time.Millisecond))
		return 0
	}
}

// newSource builds the configured value source. The returned cleanup is
// always safe to call.
func newSource(kind, brokerURL string) (source.Source, func(), error) {
	switch kind {
	case "random":
		return source.NewRandom(time.Now().UnixNano()), func() {}, nil
	case "mqtt":
		bus, err := source.NewBus(brokerURL)
		if err != nil {
			return nil, func() {}, err
		}
		return bus, func() {
			if err := bus.Close(); err != nil {
				monitoring.Logf("closing bus source: %v", err)
			}
		}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown source %q: expected random or mqtt", kind)
	}
}
