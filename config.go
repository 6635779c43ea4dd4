package patstream

import "github.com/coregx/patstream/pattern"

// Config controls compilation limits and buffer search.
//
// Example:
//
//	config := patstream.DefaultConfig()
//	config.EnablePrefilter = false // always scan rune by rune
//	p, err := patstream.CompileWithConfig(`(get|put)\(`, config)
type Config struct {
	// EnablePrefilter enables literal prefix search in Find and friends.
	// When false, every rune of the input is tried as a match start.
	// Default: true
	EnablePrefilter bool

	// MinLiteralLen is the minimum byte length of the literal prefixes used
	// by the prefilter. Shorter literals produce too many candidates.
	// Default: 1
	MinLiteralLen int

	// MaxRepeat caps the counts of {n,m} repetitions.
	// Default: 1000
	MaxRepeat int

	// MaxNesting caps the depth of nested groups.
	// Default: 100
	MaxNesting int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	limits := pattern.DefaultConfig()
	return Config{
		EnablePrefilter: true,
		MinLiteralLen:   1,
		MaxRepeat:       limits.MaxRepeat,
		MaxNesting:      limits.MaxNesting,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MinLiteralLen: 1 to 64
//   - MaxRepeat: 1 to 100,000
//   - MaxNesting: 1 to 1,000
func (c Config) Validate() error {
	if c.EnablePrefilter && (c.MinLiteralLen < 1 || c.MinLiteralLen > 64) {
		return &ConfigError{
			Field:   "MinLiteralLen",
			Message: "must be between 1 and 64",
		}
	}
	if c.MaxRepeat < 1 || c.MaxRepeat > 100_000 {
		return &ConfigError{
			Field:   "MaxRepeat",
			Message: "must be between 1 and 100,000",
		}
	}
	if c.MaxNesting < 1 || c.MaxNesting > 1_000 {
		return &ConfigError{
			Field:   "MaxNesting",
			Message: "must be between 1 and 1,000",
		}
	}
	return nil
}

func (c Config) limits() pattern.Config {
	return pattern.Config{
		MaxRepeat:  c.MaxRepeat,
		MaxNesting: c.MaxNesting,
	}
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "patstream: invalid config: " + e.Field + ": " + e.Message
}
