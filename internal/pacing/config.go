// Package pacing drives the transmit cycle: every period it encodes and
// transmits one frame per message kind, in fixed kind order, then sleeps
// whatever is left of the period. Drift inside a cycle is absorbed, never
// compensated across cycles.
package pacing

import "time"

const (
	// DefaultRateHz is the cycle rate used when the configured rate is
	// outside the accepted range.
	DefaultRateHz = 120

	// MaxRateHz bounds the accepted cycle rate.
	MaxRateHz = 99999
)

// Config holds the pacing loop parameters.
type Config struct {
	// RateHz is the target number of cycles per second.
	RateHz int

	// Cycles bounds the number of cycles to run; zero means run until
	// the context is cancelled.
	Cycles uint64

	// StatsInterval is how often the loop logs a cycle-time summary;
	// zero disables periodic reporting.
	StatsInterval time.Duration
}

// Normalize applies the documented default for a rate outside [1, MaxRateHz].
// An out-of-range rate is recovered, never fatal.
func (c Config) Normalize() Config {
	if c.RateHz < 1 || c.RateHz > MaxRateHz {
		c.RateHz = DefaultRateHz
	}
	return c
}

// Period returns the target cycle period for the normalized rate. The rate
// is converted to a whole number of microseconds, matching the link's
// documented cadence arithmetic.
func (c Config) Period() time.Duration {
	norm := c.Normalize()
	return time.Duration(1_000_000/norm.RateHz) * time.Microsecond
}
