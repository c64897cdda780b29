// Package model defines the monitored hierarchy: groups own nodes, nodes own
// status-bearing content rows. Parent statuses are always derived from their
// children; there is no way to assign them directly.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStatus is returned when a status string cannot be parsed.
var ErrUnknownStatus = errors.New("unknown status")

// Status is the three-valued health indicator. The numeric order is the
// severity order: Ok < Warning < Ng.
type Status int

const (
	StatusOk Status = iota
	StatusWarning
	StatusNg
)

// AllStatuses lists every status in severity order.
func AllStatuses() []Status {
	return []Status{StatusOk, StatusWarning, StatusNg}
}

// String returns the display name of the status.
func (s Status) String() string {
	switch s {
	case StatusOk:
		return "Ok"
	case StatusWarning:
		return "Warning"
	case StatusNg:
		return "Ng"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Severity returns the rank used for aggregation.
func (s Status) Severity() int {
	return int(s)
}

// IsValid reports whether s is one of the three defined statuses.
func (s Status) IsValid() bool {
	return s >= StatusOk && s <= StatusNg
}

// IsAlert reports whether the status is Warning or Ng.
func (s Status) IsAlert() bool {
	return s == StatusWarning || s == StatusNg
}

// IsAlert reports whether the status is Warning or Ng.
func IsAlert(s Status) bool {
	return s.IsAlert()
}

// Normalize maps values outside the defined range to Ng, so a corrupt
// status is never mistaken for a healthy one.
func (s Status) Normalize() Status {
	if !s.IsValid() {
		return StatusNg
	}
	return s
}

// Aggregate reduces statuses to the most severe one. Empty input is Ok.
// Undefined values count as Ng.
func Aggregate(statuses ...Status) Status {
	worst := StatusOk
	for _, s := range statuses {
		s = s.Normalize()
		if s == StatusNg {
			return StatusNg
		}
		if s > worst {
			worst = s
		}
	}
	return worst
}

// ParseStatus parses a status name. Matching is case-insensitive and "warn"
// is accepted for Warning.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ok":
		return StatusOk, nil
	case "warning", "warn":
		return StatusWarning, nil
	case "ng":
		return StatusNg, nil
	}
	return StatusOk, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
