package configure

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateGroupName           = errors.New("duplicate group name")
	ErrUnsupportedEndpointVersion   = errors.New("unsupported endpoint version")
	ErrUnsupportedEndpointKind      = errors.New("unsupported endpoint kind")
	ErrDuplicateConfigurationTarget = errors.New("duplicate configuration target")
	ErrInvalidFleet                 = errors.New("invalid fleet")
)

// ConstructionError is returned for anything rejected while planning. No
// remote call has been made when it is returned.
type ConstructionError struct {
	Target string
	Err    error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("configure %s: %s", e.Target, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}
