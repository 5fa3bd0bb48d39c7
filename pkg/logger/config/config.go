package config

import "fmt"

// zap levels, from debug (-1) to fatal (5).
const (
	DEBUG_LEVEL = -1
	INFO_LEVEL  = 0
	WARN_LEVEL  = 1
	ERROR_LEVEL = 2
	FATAL_LEVEL = 5
)

type Configuration struct {
	Level      int
	TimeFormat string
}

func (c Configuration) Validate() error {
	if c.Level < DEBUG_LEVEL || c.Level > FATAL_LEVEL {
		return fmt.Errorf("invalid log level %d: must be between %d and %d", c.Level, DEBUG_LEVEL, FATAL_LEVEL)
	}
	if c.TimeFormat == "" {
		return fmt.Errorf("log time format is empty")
	}
	return nil
}
