package source

import "testing"

func TestRandom_ValuesFitDeclaredWidths(t *testing.T) {
	r := NewRandom(42)
	for i := 0; i < 1000; i++ {
		x, y, theta := r.Vector()
		for _, v := range []uint16{x, y, theta} {
			if v >= 1<<VectorBits {
				t.Fatalf("vector component %d does not fit %d bits", v, VectorBits)
			}
		}
		if v := r.Calibration(); v >= 1<<CalibrationBits {
			t.Fatalf("calibration %d does not fit %d bits", v, CalibrationBits)
		}
		if v := r.Command(); v >= 1<<CommandBits {
			t.Fatalf("command %d does not fit %d bits", v, CommandBits)
		}
	}
}

func TestRandom_SeededRunsReproduce(t *testing.T) {
	a, b := NewRandom(7), NewRandom(7)
	for i := 0; i < 100; i++ {
		ax, ay, atheta := a.Vector()
		bx, by, btheta := b.Vector()
		if ax != bx || ay != by || atheta != btheta {
			t.Fatalf("draw %d diverged: (%d,%d,%d) vs (%d,%d,%d)",
				i, ax, ay, atheta, bx, by, btheta)
		}
		if a.Calibration() != b.Calibration() || a.Command() != b.Command() {
			t.Fatalf("draw %d diverged on calibration or command", i)
		}
	}
}

func TestStatic_ReturnsFixedValues(t *testing.T) {
	s := Static{X: 1, Y: 2, Theta: 3, Calib: 4, Cmd: 5}
	for i := 0; i < 3; i++ {
		x, y, theta := s.Vector()
		if x != 1 || y != 2 || theta != 3 {
			t.Errorf("Vector() = (%d,%d,%d), want (1,2,3)", x, y, theta)
		}
		if s.Calibration() != 4 {
			t.Errorf("Calibration() = %d, want 4", s.Calibration())
		}
		if s.Command() != 5 {
			t.Errorf("Command() = %d, want 5", s.Command())
		}
	}
}
