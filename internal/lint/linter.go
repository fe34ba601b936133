// Package lint checks a loaded site configuration against the content tree it
// describes: menu entries must point at real pages, pages should carry a
// title, and the theme path must exist. These checks need the filesystem, so
// they live outside plain validation.
package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/statickit/siteconf/internal/config"
)

// Source extensions the generator turns into HTML output, in lookup order.
var sourceExtensions = []string{".md", ".markdown", ".rst", ".html"}

// Linter runs content-aware checks over a configuration.
type Linter struct {
	cfg *config.Config
	// baseDir anchors relative paths from the config (content, theme).
	baseDir string
	// contentOverride, when set, replaces site.content_path for every rule.
	contentOverride string
}

// NewLinter creates a linter for the given configuration. baseDir is the
// directory the config file lives in; relative paths resolve against it.
func NewLinter(cfg *config.Config, baseDir string) *Linter {
	return &Linter{cfg: cfg, baseDir: baseDir}
}

// SetContentDir overrides the content directory from the config, for
// checkouts where content lives outside the config file's tree.
func (l *Linter) SetContentDir(dir string) {
	l.contentOverride = dir
}

// contentDir returns the directory the content rules operate on.
func (l *Linter) contentDir() string {
	if l.contentOverride != "" {
		return l.resolve(l.contentOverride)
	}
	return l.resolve(l.cfg.Site.ContentPath)
}

// Run executes all lint rules and returns the collected issues.
func (l *Linter) Run() *Result {
	res := &Result{}
	l.checkContentDir(res)
	l.checkThemePath(res)
	l.checkMenuTargets(res)
	l.checkPluginNames(res)
	return res
}

func (l *Linter) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.baseDir, p)
}

func (l *Linter) checkContentDir(res *Result) {
	dir := l.contentDir()
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		res.Issues = append(res.Issues, Issue{
			Severity: SeverityError,
			Rule:     "content-dir-exists",
			Subject:  l.cfg.Site.ContentPath,
			Message:  fmt.Sprintf("content directory %s does not exist", dir),
		})
	}
}

func (l *Linter) checkThemePath(res *Result) {
	dir := l.resolve(l.cfg.Theme.Path)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		res.Issues = append(res.Issues, Issue{
			Severity: SeverityError,
			Rule:     "theme-path-exists",
			Subject:  l.cfg.Theme.Path,
			Message:  fmt.Sprintf("theme directory %s does not exist", dir),
		})
	}
}

// checkMenuTargets verifies each relative menu entry resolves to a source
// page under the content tree, and that resolvable markdown pages carry a
// level-1 heading to use as the page title.
func (l *Linter) checkMenuTargets(res *Result) {
	contentDir := l.contentDir()
	for _, item := range l.cfg.Menu.Items {
		if strings.Contains(item.Path, "://") {
			continue // external target, covered by link checking
		}

		source := l.findSource(contentDir, item.Path)
		if source == "" {
			res.Issues = append(res.Issues, Issue{
				Severity: SeverityError,
				Rule:     "menu-target-exists",
				Subject:  item.Label,
				Message:  fmt.Sprintf("menu entry %q points at %s but no source page was found under %s", item.Label, item.Path, contentDir),
			})
			continue
		}

		if ext := filepath.Ext(source); ext == ".md" || ext == ".markdown" {
			body, err := os.ReadFile(source)
			if err != nil {
				res.Issues = append(res.Issues, Issue{
					Severity: SeverityWarning,
					Rule:     "page-readable",
					Subject:  source,
					Message:  fmt.Sprintf("cannot read page: %v", err),
				})
				continue
			}
			if ExtractTitle(body) == "" {
				res.Issues = append(res.Issues, Issue{
					Severity: SeverityWarning,
					Rule:     "page-title",
					Subject:  source,
					Message:  "page has no level-1 heading to use as a title",
				})
			}
			l.checkPageLinks(res, source, contentDir, body)
		}
	}
}

// checkPageLinks verifies that intra-site links on a menu page resolve to
// source files. External URLs are left to link checking.
func (l *Linter) checkPageLinks(res *Result, source, contentDir string, body []byte) {
	for _, link := range ExtractLinks(body) {
		if strings.Contains(link, "://") || strings.HasPrefix(link, "#") || strings.HasPrefix(link, "mailto:") {
			continue
		}
		target, _, _ := strings.Cut(link, "#")
		if target == "" {
			continue
		}
		if l.linkResolves(source, contentDir, target) {
			continue
		}
		res.Issues = append(res.Issues, Issue{
			Severity: SeverityWarning,
			Rule:     "page-link-target",
			Subject:  source,
			Message:  fmt.Sprintf("link %s does not resolve to a source page", link),
		})
	}
}

// linkResolves maps a site-absolute or page-relative link to a source file.
func (l *Linter) linkResolves(source, contentDir, target string) bool {
	if strings.HasPrefix(target, "/") {
		return l.findSource(contentDir, target) != ""
	}
	return l.findSource(filepath.Dir(source), target) != ""
}

// findSource maps a generated target path (pages/about-me.html) to its
// source file under the content directory, trying the source extensions the
// generator understands.
func (l *Linter) findSource(contentDir, target string) string {
	clean := filepath.FromSlash(strings.TrimPrefix(target, "/"))

	// The target may name the source file directly.
	direct := filepath.Join(contentDir, clean)
	if fileExists(direct) {
		return direct
	}

	stem := strings.TrimSuffix(clean, filepath.Ext(clean))
	for _, ext := range sourceExtensions {
		candidate := filepath.Join(contentDir, stem+ext)
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

// checkPluginNames warns about plugin names unlikely to resolve to a module.
func (l *Linter) checkPluginNames(res *Result) {
	for _, name := range l.cfg.Plugins {
		if strings.ContainsAny(name, " \t") || name != strings.ToLower(name) {
			res.Issues = append(res.Issues, Issue{
				Severity: SeverityWarning,
				Rule:     "plugin-name",
				Subject:  name,
				Message:  "plugin names are conventionally lowercase without spaces",
			})
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
