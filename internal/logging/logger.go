package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON stdout logger as the process default. The database
// sink is layered on later, once a connection exists.
func Setup() {
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(stdout))
}
