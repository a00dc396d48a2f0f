package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// BootMarkerVar is the window property the bundle sets once per document.
const BootMarkerVar = "__storefrontBoot"

var errNotRunning = errors.New("browser not running")

// ChromeDPDriver implements Driver using chromedp.
type ChromeDPDriver struct {
	config      *DriverConfig
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
	mu          sync.Mutex
	running     bool
}

var _ Driver = (*ChromeDPDriver)(nil)

// NewChromeDPDriver creates a new ChromeDP-based browser driver.
func NewChromeDPDriver(config *DriverConfig) *ChromeDPDriver {
	if config == nil {
		config = DefaultDriverConfig()
	}
	return &ChromeDPDriver{config: config}
}

func (d *ChromeDPDriver) buildExecAllocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", d.config.Headless),
		chromedp.Flag("disable-gpu", d.config.DisableGPU),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.WindowSize(d.config.WindowWidth, d.config.WindowHeight),
	)
	if d.config.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(d.config.UserDataDir))
	}
	return opts
}

// Start launches the browser. Its lifetime is independent of ctx.
func (d *ChromeDPDriver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("browser already running")
	}

	d.allocCtx, d.allocCancel = chromedp.NewExecAllocator(
		context.Background(),
		d.buildExecAllocatorOptions()...,
	)
	d.ctx, d.cancel = chromedp.NewContext(d.allocCtx)

	// Launch eagerly so a missing Chrome fails here rather than on the
	// first action.
	if err := chromedp.Run(d.ctx, network.Enable()); err != nil {
		d.cleanup()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	d.running = true
	return nil
}

// Stop closes the browser and releases resources.
func (d *ChromeDPDriver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return nil
	}
	d.cleanup()
	return nil
}

func (d *ChromeDPDriver) cleanup() {
	d.running = false
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.allocCancel != nil {
		d.allocCancel()
		d.allocCancel = nil
	}
	d.ctx = nil
	d.allocCtx = nil
}

// IsRunning returns true if the browser is active.
func (d *ChromeDPDriver) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// run executes actions on the browser tab, bounded by ctx and the action
// timeout.
func (d *ChromeDPDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	d.mu.Lock()
	browserCtx := d.ctx
	running := d.running
	d.mu.Unlock()

	if !running || browserCtx == nil {
		return errNotRunning
	}

	runCtx, cancel := context.WithTimeout(browserCtx, d.config.ActionTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// Navigate loads url.
func (d *ChromeDPDriver) Navigate(ctx context.Context, url string) error {
	return d.run(ctx, chromedp.Navigate(url))
}

// BootMarker reads window.__storefrontBoot.
func (d *ChromeDPDriver) BootMarker(ctx context.Context) (string, error) {
	var marker string
	expr := fmt.Sprintf("String(window.%s || '')", BootMarkerVar)
	if err := d.run(ctx, chromedp.Evaluate(expr, &marker)); err != nil {
		return "", fmt.Errorf("failed to read boot marker: %w", err)
	}
	return marker, nil
}

// ClickLink inserts a temporary anchor and clicks it, so the click goes
// through the document's listeners like a real one.
func (d *ChromeDPDriver) ClickLink(ctx context.Context, href string) error {
	expr := fmt.Sprintf(`(() => {
		const a = document.createElement('a');
		a.href = %q;
		a.textContent = 'smoke';
		document.body.appendChild(a);
		a.click();
		a.remove();
		return true;
	})()`, href)

	var ok bool
	if err := d.run(ctx, chromedp.Evaluate(expr, &ok)); err != nil {
		return fmt.Errorf("failed to click %s: %w", href, err)
	}
	return nil
}

// Location returns pathname plus search.
func (d *ChromeDPDriver) Location(ctx context.Context) (string, error) {
	var loc string
	if err := d.run(ctx, chromedp.Evaluate(`location.pathname + location.search`, &loc)); err != nil {
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return loc, nil
}

// History reads the tab's navigation history through the DevTools
// protocol, which sees pushState entries too.
func (d *ChromeDPDriver) History(ctx context.Context) (NavHistory, error) {
	var h NavHistory
	err := d.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		current, entries, err := page.GetNavigationHistory().Do(ctx)
		if err != nil {
			return err
		}
		h.Current = int(current)
		for _, e := range entries {
			h.Entries = append(h.Entries, pathOf(e.URL))
		}
		return nil
	}))
	if err != nil {
		return NavHistory{}, fmt.Errorf("failed to read navigation history: %w", err)
	}
	return h, nil
}

// Back calls history.back(). chromedp.NavigateBack waits for a load event,
// which same-document entries never fire.
func (d *ChromeDPDriver) Back(ctx context.Context) error {
	var ok bool
	if err := d.run(ctx, chromedp.Evaluate(`history.back(), true`, &ok)); err != nil {
		return fmt.Errorf("failed to go back: %w", err)
	}
	return nil
}

// SetOffline toggles network emulation for the tab.
func (d *ChromeDPDriver) SetOffline(ctx context.Context, offline bool) error {
	return d.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return network.EmulateNetworkConditions(offline, 0, -1, -1).Do(ctx)
	}))
}

// pathOf strips scheme and host from an absolute URL.
func pathOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p
}
