package enums

import "fmt"

// RoundingMode names the strategy used when rounding amounts to display precision.
type RoundingMode string

const (
	RoundingModeHalfUp   RoundingMode = "half_up"
	RoundingModeHalfEven RoundingMode = "half_even"
	RoundingModeUp       RoundingMode = "up"
	RoundingModeDown     RoundingMode = "down"
	RoundingModeCeil     RoundingMode = "ceil"
	RoundingModeFloor    RoundingMode = "floor"
)

var validRoundingModes = []RoundingMode{
	RoundingModeHalfUp,
	RoundingModeHalfEven,
	RoundingModeUp,
	RoundingModeDown,
	RoundingModeCeil,
	RoundingModeFloor,
}

// String implements fmt.Stringer.
func (r RoundingMode) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RoundingMode.
func (r RoundingMode) IsValid() bool {
	for _, candidate := range validRoundingModes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoundingMode converts raw input into a RoundingMode.
func ParseRoundingMode(value string) (RoundingMode, error) {
	for _, candidate := range validRoundingModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rounding mode %q", value)
}
