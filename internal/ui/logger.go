package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

var logLevels = map[string]pterm.LogLevel{
	"trace": pterm.LogLevelTrace,
	"debug": pterm.LogLevelDebug,
	"info":  pterm.LogLevelInfo,
	"warn":  pterm.LogLevelWarn,
	"error": pterm.LogLevelError,
	"off":   pterm.LogLevelDisabled,
}

// NewLogger returns a structured pterm logger writing to w.
func NewLogger(level string, w io.Writer) (*pterm.Logger, error) {
	lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return nil, fmt.Errorf("invalid log level: %s", level)
	}
	return pterm.DefaultLogger.WithLevel(lvl).WithWriter(w), nil
}
