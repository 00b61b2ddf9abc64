// Package source supplies the field values that get packed onto the link.
// The pacing loop pulls from a Source once per cycle; implementations cover
// random simulation values, fixed test fixtures, and a live MQTT feed.
package source

// Field widths on the wire. A source may return wider values; the encoder
// truncates to these widths.
const (
	VectorBits      = 12
	CalibrationBits = 13
	CommandBits     = 5
)

// Source returns the current field values for each message kind on demand.
type Source interface {
	// Vector returns the current motion vector components.
	Vector() (x, y, theta uint16)

	// Calibration returns the current rotation calibration value.
	Calibration() uint16

	// Command returns the current kicker command code.
	Command() uint8
}
