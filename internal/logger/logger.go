package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger. Development gets a console writer,
// everything else structured JSON.
func New(appName, environment string) zerolog.Logger {
	return NewWithWriter(appName, environment, os.Stdout)
}

func NewWithWriter(appName, environment string, w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if lv := strings.TrimSpace(os.Getenv("LOG_LEVEL")); lv != "" {
		if parsed, err := zerolog.ParseLevel(lv); err == nil {
			level = parsed
		}
	}

	if strings.EqualFold(environment, "development") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		With().
		Timestamp().
		Str("app", appName).
		Logger().
		Level(level)
}
