package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the process logger. Unknown levels fall back to info rather
// than failing startup.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(lvl)
}
