// Package engine defines the minimal browser-automation surface the
// extraction pipeline consumes. The production implementation lives in
// scraper/ (headless Chrome via rod); tests substitute fakes.
package engine

import (
	"context"
	"time"
)

// Session is a long-lived browser session. The batch runner owns exactly one
// session for the duration of a run and closes it exactly once.
type Session interface {
	// NewPage opens an isolated page/tab. The caller must Close it.
	NewPage() (Page, error)
	// Close tears down the session and the underlying browser process.
	Close() error
}

// Page is a single short-lived tab, scoped to one target's processing step
// and never shared across targets.
type Page interface {
	// Goto navigates to url and waits until network activity has settled.
	Goto(ctx context.Context, url string) error
	// HTML returns the serialized rendered DOM.
	HTML() (string, error)
	// LinkHrefs returns the href of every anchor element on the page.
	LinkHrefs() ([]string, error)
	// FirstHrefByText finds the first anchor whose visible text matches the
	// case-insensitive pattern and returns its raw href attribute within the
	// given timeout. A miss is an error.
	FirstHrefByText(pattern string, timeout time.Duration) (string, error)
	// Screenshot writes a full-page screenshot to path.
	Screenshot(path string) error
	// Close releases the tab.
	Close() error
}
