package daemon

import (
	"io"
	"log/slog"
	"os"

	"github.com/statickit/siteconf/internal/config"
)

// applyLogging installs the handler monitoring.logging describes as the
// process default. The daemon calls it on startup and after every accepted
// reload, so level and format changes take effect without a restart.
func applyLogging(m *config.MonitoringConfig) {
	slog.SetDefault(slog.New(logHandler(m, os.Stderr)))
}

// logHandler builds a slog handler from the monitoring section. A nil
// section means info-level text, matching the section's defaults.
func logHandler(m *config.MonitoringConfig, w io.Writer) slog.Handler {
	level := slog.LevelInfo
	format := config.LogFormatText
	if m != nil {
		level = m.Logging.Level.SlogLevel()
		if m.Logging.Format != "" {
			format = m.Logging.Format
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
