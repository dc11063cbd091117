package types

import "github.com/m-mizutani/goerr/v2"

// ControlType distinguishes controls that prevent a cause from those that detect a failure
type ControlType string

const (
	ControlTypePrevention ControlType = "prevention"
	ControlTypeDetection  ControlType = "detection"
)

// IsValid checks if the control type is valid
func (c ControlType) IsValid() bool {
	return c == ControlTypePrevention || c == ControlTypeDetection
}

// String returns the string representation of the control type
func (c ControlType) String() string {
	return string(c)
}

// ParseControlType parses a string into a ControlType
func ParseControlType(s string) (ControlType, error) {
	ct := ControlType(s)
	if !ct.IsValid() {
		return "", goerr.New("invalid control type", goerr.V("type", s))
	}
	return ct, nil
}
