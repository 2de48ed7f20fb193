package logging

import (
	"log/slog"
	"os"
)

// New builds the JSON logger every component shares. The service name
// is attached so aggregated logs stay attributable.
func New(service string) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(h).With("service", service)
}
