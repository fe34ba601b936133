package daemon

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/statickit/siteconf/internal/config"
)

func TestLogHandlerFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	m := &config.MonitoringConfig{
		Logging: config.MonitoringLogging{
			Level:  config.LogLevelError,
			Format: config.LogFormatJSON,
		},
	}

	logger := slog.New(logHandler(m, &buf))

	logger.Info("suppressed line")
	if buf.Len() != 0 {
		t.Fatalf("info record emitted at error level: %s", buf.String())
	}

	logger.Error("emitted line")
	out := buf.String()
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"level":"ERROR"`) {
		t.Errorf("error record not JSON encoded: %s", out)
	}
}

func TestLogHandlerDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logHandler(nil, &buf))

	logger.Debug("suppressed line")
	if buf.Len() != 0 {
		t.Fatalf("debug record emitted at default level: %s", buf.String())
	}

	logger.Info("emitted line")
	if out := buf.String(); !strings.Contains(out, "level=INFO") {
		t.Errorf("info record not text encoded: %s", out)
	}
}

func TestDaemonAppliesConfiguredLogging(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	content := daemonTestConfig + `
monitoring:
  logging:
    level: error
    format: json
`
	path := writeTestConfig(t, content)

	d, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer d.store.Close()

	ctx := context.Background()
	if slog.Default().Enabled(ctx, slog.LevelInfo) {
		t.Error("default logger still accepts info records at configured error level")
	}

	next := *d.GetConfig()
	next.Monitoring = &config.MonitoringConfig{
		Logging: config.MonitoringLogging{
			Level:  config.LogLevelDebug,
			Format: config.LogFormatText,
		},
	}
	if err := d.ReloadConfig(ctx, &next, nil); err != nil {
		t.Fatalf("ReloadConfig() error = %v", err)
	}

	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		t.Error("reload did not lower the log level to debug")
	}
}
