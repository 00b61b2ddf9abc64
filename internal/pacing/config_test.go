package pacing

import (
	"testing"
	"time"
)

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero rate falls back", 0, DefaultRateHz},
		{"negative rate falls back", -7, DefaultRateHz},
		{"over max falls back", MaxRateHz + 1, DefaultRateHz},
		{"minimum accepted", 1, 1},
		{"maximum accepted", MaxRateHz, MaxRateHz},
		{"typical rate kept", 120, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Config{RateHz: tt.in}.Normalize()
			if got.RateHz != tt.want {
				t.Errorf("Normalize().RateHz = %d, want %d", got.RateHz, tt.want)
			}
		})
	}
}

func TestConfig_Normalize_KeepsOtherFields(t *testing.T) {
	cfg := Config{RateHz: -1, Cycles: 50, StatsInterval: time.Minute}
	got := cfg.Normalize()
	if got.Cycles != 50 || got.StatsInterval != time.Minute {
		t.Errorf("Normalize() = %+v, want cycles and interval unchanged", got)
	}
}

func TestConfig_Period(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		// Whole-microsecond arithmetic, matching the link cadence.
		{120, 8333 * time.Microsecond},
		{100, 10 * time.Millisecond},
		{1, time.Second},
		{3, 333333 * time.Microsecond},
		// Out-of-range rates use the default before dividing.
		{0, 8333 * time.Microsecond},
	}
	for _, tt := range tests {
		if got := (Config{RateHz: tt.rate}).Period(); got != tt.want {
			t.Errorf("Period() at %d Hz = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
