package pacing

import (
	"context"
	"fmt"
	"time"

	"github.com/EaterK/usbserial-xbee/internal/monitoring"
	"github.com/EaterK/usbserial-xbee/internal/source"
	"github.com/EaterK/usbserial-xbee/internal/timeutil"
	"github.com/EaterK/usbserial-xbee/internal/wire"
)

// Sink is where completed frames go. It is the only part of the transmitter
// the loop depends on.
type Sink interface {
	Transmit(frame []byte) (int, error)
}

// Result reports how a loop run ended.
type Result struct {
	// Cycles is the number of complete cycles transmitted.
	Cycles uint64

	// Limit echoes the configured cycle bound; zero means unbounded.
	Limit uint64

	// Interrupted is set when cancellation stopped the loop before a
	// configured cycle limit was reached. It is a reportable condition,
	// not an error.
	Interrupted bool

	// Elapsed is the wall-clock duration of the whole run.
	Elapsed time.Duration

	// Jitter summarizes per-cycle elapsed times over the whole run.
	Jitter Summary
}

// Loop owns the pacing state. Construct with New and drive with Run; the
// loop itself is strictly sequential.
type Loop struct {
	cfg   Config
	src   source.Source
	sink  Sink
	clock timeutil.Clock
}

// New builds a loop from a config and its collaborators. An out-of-range
// rate is replaced by the documented default and logged, never rejected.
func New(cfg Config, src source.Source, sink Sink, clock timeutil.Clock) *Loop {
	norm := cfg.Normalize()
	if norm.RateHz != cfg.RateHz {
		monitoring.Logf("pacing: rate %d Hz outside [1, %d], using default %d Hz",
			cfg.RateHz, MaxRateHz, DefaultRateHz)
	}
	return &Loop{cfg: norm, src: src, sink: sink, clock: clock}
}

// Run transmits cycles until the configured limit is reached or ctx is
// cancelled. Each cycle reads fresh values from the source and transmits
// one frame per message kind, always in kind order; elapsed time under the
// target period is slept off, overruns are absorbed without catch-up.
//
// Cancellation is observed only at cycle boundaries: an in-flight cycle
// always completes all three transmissions. A transmit failure aborts the
// run and is returned as an error, since a partial frame desynchronizes the
// receiver.
func (l *Loop) Run(ctx context.Context) (Result, error) {
	period := l.cfg.Period()
	stats := newCycleStats()

	var tick <-chan time.Time
	if l.cfg.StatsInterval > 0 {
		ticker := l.clock.NewTicker(l.cfg.StatsInterval)
		defer ticker.Stop()
		tick = ticker.C()
	}

	// Scratch buffers reused across cycles; frames are at most a few
	// bytes even fully escape-expanded.
	payload := make([]byte, 0, 8)
	frame := make([]byte, 0, 16)

	monitoring.Logf("pacing: starting at %d Hz (period %v), limit %s",
		l.cfg.RateHz, period, limitString(l.cfg.Cycles))

	runStart := l.clock.Now()
	var done uint64
	for l.cfg.Cycles == 0 || done < l.cfg.Cycles {
		select {
		case <-ctx.Done():
			res := l.result(done, stats, l.clock.Since(runStart))
			res.Interrupted = l.cfg.Cycles > 0 && done < l.cfg.Cycles
			monitoring.Logf("pacing: cancelled after %d cycles (%s)", res.Cycles, res.Jitter)
			return res, nil
		default:
		}

		select {
		case <-tick:
			monitoring.Logf("pacing: %s", stats.windowSummary())
		default:
		}

		cycleStart := l.clock.Now()
		for _, m := range l.messages() {
			payload = wire.AppendMessage(payload[:0], m)
			frame = wire.AppendFrame(frame[:0], payload)
			if _, err := l.sink.Transmit(frame); err != nil {
				res := l.result(done, stats, l.clock.Since(runStart))
				return res, fmt.Errorf("transmit kind %d frame: %w", m.Kind(), err)
			}
		}
		elapsed := l.clock.Since(cycleStart)
		stats.record(elapsed)
		if elapsed < period {
			l.clock.Sleep(period - elapsed)
		}
		done++
	}

	res := l.result(done, stats, l.clock.Since(runStart))
	monitoring.Logf("pacing: completed %d cycles (%s)", res.Cycles, res.Jitter)
	return res, nil
}

// messages reads the current value of every kind from the source. The slice
// order is the wire order and must stay 0, 1, 2: the receiver depends on it.
func (l *Loop) messages() [3]wire.Message {
	x, y, theta := l.src.Vector()
	calib := l.src.Calibration()
	code := l.src.Command()
	return [3]wire.Message{
		wire.Vector{X: x, Y: y, Theta: theta},
		wire.Calibration{Value: calib},
		wire.Command{Code: code},
	}
}

func (l *Loop) result(done uint64, stats *cycleStats, elapsed time.Duration) Result {
	return Result{
		Cycles:  done,
		Limit:   l.cfg.Cycles,
		Elapsed: elapsed,
		Jitter:  stats.summary(),
	}
}

func limitString(cycles uint64) string {
	if cycles == 0 {
		return "unbounded"
	}
	return fmt.Sprintf("%d cycles", cycles)
}
