package driver

import (
	"context"
	"time"
)

// Viewport is the browser window size in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// Navigation describes the response obtained for a page navigation.
// Status is zero when the engine could not observe a response.
type Navigation struct {
	Status int
}

// Timing holds navigation performance numbers read from the page, all
// relative to navigation start.
type Timing struct {
	DOMContentLoadedMS float64
	LoadEventMS        float64
	TransferSizeBytes  float64
	DOMInteractiveMS   float64
}

// Driver launches browser sessions.
//
// Contract:
// - Concurrency: a Driver may be shared; Sessions and Pages are single-owner.
// - Context: all methods honor cancellation/deadlines.
// - Errors: failures are returned as-is; callers decide whether to retry.
type Driver interface {
	// Launch starts a browser of the named engine and returns a session.
	Launch(ctx context.Context, engine string, headless bool, viewport Viewport) (Session, error)
}

// Session is one running browser instance.
type Session interface {
	// NewPage opens a fresh page (tab) in the session.
	NewPage(ctx context.Context) (Page, error)

	// Close shuts the browser down. Idempotent.
	Close(ctx context.Context) error
}

// Page is a single browser page the instrumented actions operate on.
type Page interface {
	// Navigate loads the URL and waits for DOM content. The returned
	// Navigation may be nil when no response was observed.
	Navigate(ctx context.Context, url string) (*Navigation, error)

	// Timing reads navigation performance data for the current document.
	// Best-effort: reports false when the data is unavailable.
	Timing(ctx context.Context) (*Timing, bool)

	// Click clicks the first element matching the selector.
	Click(ctx context.Context, selector string) error

	// Fill sets the value of the first element matching the selector.
	Fill(ctx context.Context, selector, value string) error

	// WaitVisible blocks until the selector is visible or the timeout
	// elapses. A timeout is returned as an ordinary error.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// Text returns the text content of the first visible element matching
	// the selector.
	Text(ctx context.Context, selector string) (string, error)

	// Count returns the number of elements matching the selector.
	Count(ctx context.Context, selector string) (int, error)

	// URL returns the current page location. Best-effort: empty when the
	// location cannot be read.
	URL(ctx context.Context) string
}
