package scenery

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoScenes indicates the scene selector matched nothing at construction.
	ErrNoScenes = errors.New("no scenes found")

	// ErrInitialIndexOutOfRange indicates Options.InitialIndex does not address a scene.
	ErrInitialIndexOutOfRange = errors.New("initial index out of range")

	// ErrAlreadyProceeded is returned by a Proceed func that has already been called.
	ErrAlreadyProceeded = errors.New("transition already proceeded")

	// ErrTransitionAborted is returned by a Proceed func whose hook already failed.
	ErrTransitionAborted = errors.New("transition aborted by pre-transition hook")
)

// ConfigurationError means the navigator could not be built from the given
// document and options. Nothing was wired when this is returned.
type ConfigurationError struct {
	Op  string // Step that failed (e.g., "resolve_scenes", "bind_triggers")
	Err error  // Underlying error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scenery: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("scenery: %s", e.Op)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(op string, err error) *ConfigurationError {
	return &ConfigurationError{Op: op, Err: err}
}

// Hook phases reported by HookError.
const (
	PhasePre  = "pre"
	PhasePost = "post"
)

// HookError wraps a failure returned (or panicked) by a transition hook.
// A pre-phase failure leaves navigator state untouched. A post-phase failure
// happens after the commit.
type HookError struct {
	Phase string
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("scenery: %s-transition hook: %v", e.Phase, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// IsConfigurationError checks if an error is a configuration error.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsHookError checks if an error came out of a transition hook.
func IsHookError(err error) bool {
	var hookErr *HookError
	return errors.As(err, &hookErr)
}
