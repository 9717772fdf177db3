package obs

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger returns a tinted handler for local development and JSON
// output everywhere else.
func NewLogger(env string) *slog.Logger {
	writer := os.Stdout
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "debug":
		return slog.New(tint.NewHandler(writer, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC3339,
			AddSource:  true,
		}))
	default:
		return slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: true,
		}))
	}
}
