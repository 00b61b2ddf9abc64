package source

// Static returns the same values on every call. Tests use it to pin the
// exact bytes a cycle puts on the wire.
type Static struct {
	X, Y, Theta uint16
	Calib       uint16
	Cmd         uint8
}

// Vector returns the fixed vector components.
func (s Static) Vector() (x, y, theta uint16) {
	return s.X, s.Y, s.Theta
}

// Calibration returns the fixed calibration value.
func (s Static) Calibration() uint16 {
	return s.Calib
}

// Command returns the fixed command code.
func (s Static) Command() uint8 {
	return s.Cmd
}
