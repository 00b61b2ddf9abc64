package serialtx

import (
	"testing"

	"go.bug.st/serial"
)

func TestPortOptions_Normalize_Defaults(t *testing.T) {
	// Zero-value options should get the link defaults applied
	opts := PortOptions{}
	got, err := opts.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got.BaudRate != 115200 {
		t.Errorf("BaudRate = %d, want 115200", got.BaudRate)
	}
	if got.DataBits != 8 {
		t.Errorf("DataBits = %d, want 8", got.DataBits)
	}
	if got.StopBits != 1 {
		t.Errorf("StopBits = %d, want 1", got.StopBits)
	}
	if got.Parity != "N" {
		t.Errorf("Parity = %q, want %q", got.Parity, "N")
	}
}

func TestPortOptions_Normalize_ExplicitValues(t *testing.T) {
	opts := PortOptions{BaudRate: 9600, DataBits: 7, StopBits: 2, Parity: "E"}
	got, err := opts.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got.BaudRate != 9600 {
		t.Errorf("BaudRate = %d, want 9600", got.BaudRate)
	}
	if got.DataBits != 7 {
		t.Errorf("DataBits = %d, want 7", got.DataBits)
	}
	if got.StopBits != 2 {
		t.Errorf("StopBits = %d, want 2", got.StopBits)
	}
	if got.Parity != "E" {
		t.Errorf("Parity = %q, want %q", got.Parity, "E")
	}
}

func TestPortOptions_Normalize_NegativeBaudRate(t *testing.T) {
	opts := PortOptions{BaudRate: -5}
	got, err := opts.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got.BaudRate != 115200 {
		t.Errorf("negative baud rate should default to 115200, got %d", got.BaudRate)
	}
}

func TestPortOptions_Normalize_InvalidDataBits(t *testing.T) {
	for _, bits := range []int{-1, 3, 4, 9, 16} {
		opts := PortOptions{DataBits: bits}
		if _, err := opts.Normalize(); err == nil {
			t.Errorf("expected error for data bits %d, got nil", bits)
		}
	}
}

func TestPortOptions_Normalize_InvalidStopBits(t *testing.T) {
	for _, bits := range []int{-1, 3, 4} {
		opts := PortOptions{StopBits: bits}
		if _, err := opts.Normalize(); err == nil {
			t.Errorf("expected error for stop bits %d, got nil", bits)
		}
	}
}

func TestPortOptions_Normalize_ParityAliases(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "N"},
		{"n", "N"},
		{"none", "N"},
		{"NONE", "N"},
		{" E ", "E"},
		{"even", "E"},
		{"o", "O"},
		{"odd", "O"},
	}
	for _, tt := range tests {
		opts := PortOptions{Parity: tt.in}
		got, err := opts.Normalize()
		if err != nil {
			t.Errorf("Normalize() with parity %q: unexpected error %v", tt.in, err)
			continue
		}
		if got.Parity != tt.want {
			t.Errorf("Normalize() with parity %q = %q, want %q", tt.in, got.Parity, tt.want)
		}
	}
}

func TestPortOptions_Normalize_InvalidParity(t *testing.T) {
	opts := PortOptions{Parity: "M"}
	if _, err := opts.Normalize(); err == nil {
		t.Error("expected error for parity M, got nil")
	}
}

func TestPortOptions_Equal(t *testing.T) {
	a := PortOptions{}
	b := PortOptions{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: "none"}
	if !a.Equal(b) {
		t.Errorf("expected %+v to equal %+v after normalization", a, b)
	}

	c := PortOptions{BaudRate: 9600}
	if a.Equal(c) {
		t.Errorf("expected %+v to differ from %+v", a, c)
	}
}

func TestPortOptions_SerialMode(t *testing.T) {
	opts := PortOptions{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: "N"}
	mode, err := opts.SerialMode()
	if err != nil {
		t.Fatalf("SerialMode() error = %v", err)
	}
	if mode.BaudRate != 115200 {
		t.Errorf("mode.BaudRate = %d, want 115200", mode.BaudRate)
	}
	if mode.DataBits != 8 {
		t.Errorf("mode.DataBits = %d, want 8", mode.DataBits)
	}
	if mode.StopBits != serial.StopBits(1) {
		t.Errorf("mode.StopBits = %v, want 1", mode.StopBits)
	}
	if mode.Parity != serial.NoParity {
		t.Errorf("mode.Parity = %v, want NoParity", mode.Parity)
	}
}

func TestPortOptions_SerialMode_ParityMapping(t *testing.T) {
	tests := []struct {
		parity string
		want   serial.Parity
	}{
		{"N", serial.NoParity},
		{"E", serial.EvenParity},
		{"O", serial.OddParity},
	}
	for _, tt := range tests {
		mode, err := PortOptions{Parity: tt.parity}.SerialMode()
		if err != nil {
			t.Errorf("SerialMode() with parity %q: unexpected error %v", tt.parity, err)
			continue
		}
		if mode.Parity != tt.want {
			t.Errorf("SerialMode() parity %q = %v, want %v", tt.parity, mode.Parity, tt.want)
		}
	}
}

func TestPortOptions_SerialMode_InvalidOptions(t *testing.T) {
	if _, err := (PortOptions{DataBits: 12}).SerialMode(); err == nil {
		t.Error("expected error for invalid data bits, got nil")
	}
}
