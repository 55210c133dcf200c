package telemetry

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// InitSlog installs the default logger, progress messages go to stderr so
// that stdout stays clean for dry-run output and tables.
func InitSlog(verbose bool) {
	slog.SetDefault(NewLogger(os.Stderr, verbose, true))
}

func NewLogger(out io.Writer, verbose, color bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(out, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !color,
	}))
}
