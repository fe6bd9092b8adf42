package saltpass

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedAlgorithm is returned when an algorithm name does not
	// match any registered derivation scheme.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrInvalidInput is returned when a required request field is empty.
	ErrInvalidInput = errors.New("invalid input")
)

// UnsupportedAlgorithmError reports the rejected name together with the
// accepted ones so callers can show the user what to type instead.
type UnsupportedAlgorithmError struct {
	Name      string
	Supported []Algorithm
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("%s %q: must be one of %s", ErrUnsupportedAlgorithm, e.Name, strings.Join(Names(), ", "))
}

// Is makes errors.Is(err, ErrUnsupportedAlgorithm) hold.
func (e *UnsupportedAlgorithmError) Is(target error) bool {
	return target == ErrUnsupportedAlgorithm
}
