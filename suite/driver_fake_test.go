package suite

import (
	"context"
	"time"

	"github.com/arclabs/tracewright/driver"
)

// fakeDriver implements the driver boundary in memory so the span hierarchy
// can be exercised without a browser.
type fakeDriver struct {
	engine    string
	headless  bool
	viewport  driver.Viewport
	launchErr error
	session   *fakeSession
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{session: &fakeSession{page: newFakePage()}}
}

func (d *fakeDriver) Launch(ctx context.Context, engine string, headless bool, viewport driver.Viewport) (driver.Session, error) {
	if d.launchErr != nil {
		return nil, d.launchErr
	}
	d.engine = engine
	d.headless = headless
	d.viewport = viewport
	return d.session, nil
}

type fakeSession struct {
	page       *fakePage
	closeCalls int
}

func (s *fakeSession) NewPage(ctx context.Context) (driver.Page, error) {
	return s.page, nil
}

func (s *fakeSession) Close(ctx context.Context) error {
	s.closeCalls++
	return nil
}

type fillCall struct {
	selector string
	value    string
}

type fakePage struct {
	url string

	nav    *driver.Navigation
	navErr error

	timing   *driver.Timing
	timingOK bool

	clickErr error
	fillErr  error
	waitErr  error

	text    string
	textErr error

	count    int
	countErr error

	fills []fillCall
}

func newFakePage() *fakePage {
	return &fakePage{
		url:  "http://localhost:8080/",
		nav:  &driver.Navigation{Status: 200},
		text: "Hello World",
	}
}

func (p *fakePage) Navigate(ctx context.Context, url string) (*driver.Navigation, error) {
	if p.navErr != nil {
		return nil, p.navErr
	}
	p.url = url
	return p.nav, nil
}

func (p *fakePage) Timing(ctx context.Context) (*driver.Timing, bool) {
	return p.timing, p.timingOK
}

func (p *fakePage) Click(ctx context.Context, selector string) error {
	return p.clickErr
}

func (p *fakePage) Fill(ctx context.Context, selector, value string) error {
	if p.fillErr != nil {
		return p.fillErr
	}
	p.fills = append(p.fills, fillCall{selector: selector, value: value})
	return nil
}

func (p *fakePage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return p.waitErr
}

func (p *fakePage) Text(ctx context.Context, selector string) (string, error) {
	if p.textErr != nil {
		return "", p.textErr
	}
	return p.text, nil
}

func (p *fakePage) Count(ctx context.Context, selector string) (int, error) {
	if p.countErr != nil {
		return 0, p.countErr
	}
	return p.count, nil
}

func (p *fakePage) URL(ctx context.Context) string {
	return p.url
}
