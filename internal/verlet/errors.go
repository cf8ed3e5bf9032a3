package verlet

import (
	"errors"
	"fmt"
)

// Construction errors. They are returned wrapped in a *ConfigError.
var (
	ErrInvalidParams      = errors.New("verlet: invalid world parameters")
	ErrNonFinite          = errors.New("verlet: value is NaN or Inf")
	ErrNegativeRadius     = errors.New("verlet: point radius is negative")
	ErrRadiusTooLarge     = errors.New("verlet: point does not fit inside the world")
	ErrUnknownPoint       = errors.New("verlet: unknown point reference")
	ErrSelfStick          = errors.New("verlet: stick joins a point to itself")
	ErrNegativeStiffness  = errors.New("verlet: stick stiffness is negative")
	ErrNegativeRestLength = errors.New("verlet: stick rest length is negative")
	ErrZeroLengthStick    = errors.New("verlet: rigid stick has zero rest length")
	ErrPolygonTooSmall    = errors.New("verlet: polygon needs at least 3 vertices")
)

// ErrInvalidState indicates a coordinate became NaN or Inf during a run.
var ErrInvalidState = errors.New("verlet: invalid state (NaN or Inf detected)")

// ConfigError reports which entity was rejected during world construction.
type ConfigError struct {
	Kind    string // "params", "point", "stick" or "polygon"
	Index   int
	Wrapped error
}

func (e *ConfigError) Error() string {
	if e.Kind == "params" {
		return fmt.Sprintf("params: %v", e.Wrapped)
	}
	return fmt.Sprintf("%s %d: %v", e.Kind, e.Index, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

// SimulationError wraps an error with the tick it was detected on.
type SimulationError struct {
	Tick    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
