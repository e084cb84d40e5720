// Package constants defines shared defaults and configuration values
// used throughout the scenery navigator and its hosts.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names.
const (
	LogLevelEnvVar     = "SCENERY_LOG_LEVEL"
	LogPathEnvVar      = "SCENERY_LOG_PATH"
	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// Navigator defaults.
const (
	DefaultActiveClass  = "active"
	DefaultDataKey      = "sceneIndex"

	// FallbackIndex is where a transition lands when neither the request nor
	// the pre-transition hook names an index. It does not follow InitialIndex.
	FallbackIndex = 0
)

// Default selectors for the scene collection and each trigger group.
const (
	DefaultSceneSelector = ".scene"
	DefaultNextSelector  = ".scene__next"
	DefaultPrevSelector  = ".scene__prev"
	DefaultResetSelector = ".scene__reset"
	DefaultGotoSelector  = ".scene__goto"
	DefaultPopSelector   = ".scene__pop"
)

// Default timing for held-input repeat.
const (
	DefaultRepeatDelay    = 300 * time.Millisecond
	DefaultRepeatInterval = 120 * time.Millisecond
)
