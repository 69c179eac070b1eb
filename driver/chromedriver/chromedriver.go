package chromedriver

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/arclabs/tracewright/driver"
)

// ErrUnsupportedEngine indicates an engine other than Chromium was requested.
var ErrUnsupportedEngine = fmt.Errorf("chromedriver: unsupported browser engine")

// New returns a driver.Driver backed by a locally installed Chromium.
func New() driver.Driver {
	return &chromeDriver{}
}

type chromeDriver struct{}

func (d *chromeDriver) Launch(ctx context.Context, engine string, headless bool, viewport driver.Viewport) (driver.Session, error) {
	switch engine {
	case "", "chromium", "chrome":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEngine, engine)
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.WindowSize(viewport.Width, viewport.Height))
	if !headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser process eagerly so launch failures surface here,
	// not on the first action.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("chromedriver: launch: %w", err)
	}

	return &session{
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
	}, nil
}

type session struct {
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
	closed        bool
}

func (s *session) NewPage(ctx context.Context) (driver.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx)
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		return nil, fmt.Errorf("chromedriver: new page: %w", err)
	}
	return &page{ctx: tabCtx, cancel: tabCancel}, nil
}

func (s *session) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := chromedp.Cancel(s.browserCtx)
	s.browserCancel()
	s.allocCancel()
	return err
}

type page struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func (p *page) Navigate(ctx context.Context, url string) (*driver.Navigation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := chromedp.RunResponse(p.ctx, chromedp.Navigate(url))
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return &driver.Navigation{Status: int(resp.Status)}, nil
}

// timingResult mirrors the PerformanceNavigationTiming fields read below.
type timingResult struct {
	DOMContentLoaded float64 `json:"domContentLoaded"`
	LoadEvent        float64 `json:"loadEvent"`
	TransferSize     float64 `json:"transferSize"`
	DOMInteractive   float64 `json:"domInteractive"`
}

const timingExpr = `(() => {
	const entries = performance.getEntriesByType('navigation');
	if (!entries || entries.length === 0) return null;
	const nav = entries[0];
	return {
		domContentLoaded: nav.domContentLoadedEventEnd - nav.startTime,
		loadEvent: nav.loadEventEnd - nav.startTime,
		transferSize: nav.transferSize || 0,
		domInteractive: nav.domInteractive - nav.startTime,
	};
})()`

func (p *page) Timing(ctx context.Context) (*driver.Timing, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	var res *timingResult
	if err := chromedp.Run(p.ctx, chromedp.Evaluate(timingExpr, &res)); err != nil || res == nil {
		return nil, false
	}
	return &driver.Timing{
		DOMContentLoadedMS: res.DOMContentLoaded,
		LoadEventMS:        res.LoadEvent,
		TransferSizeBytes:  res.TransferSize,
		DOMInteractiveMS:   res.DOMInteractive,
	}, true
}

func (p *page) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(p.ctx, chromedp.Click(selector, chromedp.ByQuery))
}

func (p *page) Fill(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(p.ctx, chromedp.SetValue(selector, value, chromedp.ByQuery))
}

func (p *page) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	waitCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("chromedriver: wait for %q: %w", selector, err)
	}
	return nil
}

func (p *page) Text(ctx context.Context, selector string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var text string
	if err := chromedp.Run(p.ctx, chromedp.Text(selector, &text, chromedp.ByQuery, chromedp.NodeVisible)); err != nil {
		return "", err
	}
	return text, nil
}

func (p *page) Count(ctx context.Context, selector string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var nodes []*cdp.Node
	if err := chromedp.Run(p.ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0))); err != nil {
		return 0, err
	}
	return len(nodes), nil
}

func (p *page) URL(ctx context.Context) string {
	if ctx.Err() != nil {
		return ""
	}
	var loc string
	if err := chromedp.Run(p.ctx, chromedp.Location(&loc)); err != nil {
		return ""
	}
	return loc
}
