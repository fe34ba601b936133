package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	e := New(CategoryConfig, SeverityError, "bad value")
	if !strings.Contains(e.Error(), "config (error): bad value") {
		t.Errorf("unexpected format: %s", e.Error())
	}

	cause := stderrors.New("boom")
	w := Wrap(cause, CategoryStorage, SeverityFatal, "journal write")
	if !strings.Contains(w.Error(), "boom") {
		t.Errorf("cause missing: %s", w.Error())
	}
	if !stderrors.Is(w, cause) {
		t.Error("Unwrap chain broken")
	}
}

func TestIsRetryable(t *testing.T) {
	r := Retryable(CategoryNetwork, SeverityWarning, "timeout")
	if !IsRetryable(r) {
		t.Error("retryable error not detected")
	}
	wrapped := fmt.Errorf("outer: %w", r)
	if !IsRetryable(wrapped) {
		t.Error("retryable not detected through wrapping")
	}
	if IsRetryable(New(CategoryConfig, SeverityError, "nope")) {
		t.Error("non-retryable misclassified")
	}
	if IsRetryable(nil) {
		t.Error("nil must not be retryable")
	}
}

func TestWithContext(t *testing.T) {
	e := New(CategoryLint, SeverityWarning, "missing title").WithContext("path", "pages/about.md")
	if e.Context["path"] != "pages/about.md" {
		t.Errorf("context not recorded: %v", e.Context)
	}
}
