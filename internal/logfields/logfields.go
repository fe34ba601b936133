package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyConfigPath = "config_path"
	KeyRevision   = "revision"
	KeyCommit     = "git_commit"
	KeyPlatform   = "platform"
	KeyURL        = "url"
	KeyLabel      = "label"
	KeyPath       = "path"
	KeySubject    = "subject"
	KeyRule       = "rule"
	KeyStatus     = "status"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func ConfigPath(p string) slog.Attr  { return slog.String(KeyConfigPath, p) }
func Revision(id string) slog.Attr   { return slog.String(KeyRevision, id) }
func Commit(c string) slog.Attr      { return slog.String(KeyCommit, c) }
func Platform(p string) slog.Attr    { return slog.String(KeyPlatform, p) }
func URL(u string) slog.Attr         { return slog.String(KeyURL, u) }
func Label(l string) slog.Attr       { return slog.String(KeyLabel, l) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Subject(s string) slog.Attr     { return slog.String(KeySubject, s) }
func Rule(r string) slog.Attr        { return slog.String(KeyRule, r) }
func Status(code int) slog.Attr      { return slog.Int(KeyStatus, code) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
