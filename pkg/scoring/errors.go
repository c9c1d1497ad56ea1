package scoring

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigError via errors.Is.
	ErrConfiguration = errors.New("scoring: configuration error")
	// ErrInsufficientInput means the player has not drawn enough to score.
	// Scoring calls report it through Breakdown.Err, never as a returned error.
	ErrInsufficientInput = errors.New("scoring: not enough drawing")
	// ErrNoReference is returned when scoring before a reference is set.
	ErrNoReference = errors.New("scoring: no reference set")
)

// ConfigError rejects a reference or configuration. It is a content problem,
// not a player failure.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scoring: %s: %v", e.Reason, e.Err)
	}
	return "scoring: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConfiguration) hold for any ConfigError.
func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

func configError(err error, format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...), Err: err}
}
