package bio

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry indicates a non-positive radius or density.
	ErrInvalidGeometry = errors.New("bio: invalid geometry (radius and density must be positive)")

	// ErrDegenerateVolume indicates a bounding box with no usable interior
	// once the radius clearance is removed.
	ErrDegenerateVolume = errors.New("bio: degenerate bounding volume")

	// ErrInvalidCount indicates a negative object count.
	ErrInvalidCount = errors.New("bio: object count must not be negative")
)

// VolumeError reports the first axis of a bounding box whose interior span
// is not positive.
type VolumeError struct {
	Axis string
	Span float64
}

func (e *VolumeError) Error() string {
	return fmt.Sprintf("%s: %s span %.4g after radius clearance", ErrDegenerateVolume, e.Axis, e.Span)
}

func (e *VolumeError) Unwrap() error {
	return ErrDegenerateVolume
}
