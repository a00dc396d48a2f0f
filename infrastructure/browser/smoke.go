package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// SmokeConfig configures RunSmoke.
type SmokeConfig struct {
	// BaseURL is where the storefront is served.
	BaseURL string
	// Links are in-app paths clicked in order after boot.
	Links []string
	// OfflineLink is clicked with the network disabled.
	OfflineLink string
	// OfflinePath is where the storefront lands without a network.
	OfflinePath string
	// Timeout bounds each wait.
	Timeout      time.Duration
	PollInterval time.Duration
	Logger       *slog.Logger
}

// DefaultSmokeConfig returns the smoke defaults for a local dev server.
func DefaultSmokeConfig() *SmokeConfig {
	return &SmokeConfig{
		BaseURL:      "http://localhost:3000",
		Links:        []string{"/items/1", "/item/1"},
		OfflineLink:  "/items/2",
		OfflinePath:  "/offline",
		Timeout:      10 * time.Second,
		PollInterval: 100 * time.Millisecond,
	}
}

// Check is the result of one smoke step.
type Check struct {
	Name string
	Err  error
}

// Report collects the checks of a run.
type Report struct {
	Checks []Check
}

// Failed reports whether any check failed.
func (r *Report) Failed() bool {
	return r.Err() != nil
}

// Err joins the errors of failed checks.
func (r *Report) Err() error {
	var errs []error
	for _, c := range r.Checks {
		if c.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, c.Err))
		}
	}
	return errors.Join(errs...)
}

type smoke struct {
	d      Driver
	cfg    *SmokeConfig
	logger *slog.Logger
	report *Report
	marker string
}

// RunSmoke loads the storefront and walks the navigation contract. An error
// is returned only when the run cannot start; failed checks are in the
// report.
func RunSmoke(ctx context.Context, d Driver, cfg *SmokeConfig) (*Report, error) {
	if cfg == nil {
		cfg = DefaultSmokeConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &smoke{d: d, cfg: cfg, logger: logger.With("component", "smoke"), report: &Report{}}

	if err := d.Navigate(ctx, strings.TrimRight(cfg.BaseURL, "/")+"/"); err != nil {
		return nil, fmt.Errorf("failed to open storefront: %w", err)
	}
	err := s.waitFor(ctx, "boot", func() (bool, error) {
		m, err := d.BootMarker(ctx)
		s.marker = m
		return m != "", err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("storefront booted", "marker", s.marker)

	for _, link := range cfg.Links {
		s.check("open "+link, func() error { return s.open(ctx, link) })
	}
	if len(cfg.Links) > 0 {
		s.check("back", func() error { return s.back(ctx) })
	}
	if cfg.OfflineLink != "" {
		s.check("offline", func() error { return s.offline(ctx) })
	}
	return s.report, nil
}

func (s *smoke) check(name string, fn func() error) {
	err := fn()
	if err != nil {
		s.logger.Warn("smoke check failed", "check", name, "error", err)
	} else {
		s.logger.Info("smoke check passed", "check", name)
	}
	s.report.Checks = append(s.report.Checks, Check{Name: name, Err: err})
}

// open clicks link and expects exactly one new entry and no reload.
func (s *smoke) open(ctx context.Context, link string) error {
	before, err := s.d.History(ctx)
	if err != nil {
		return err
	}
	if err := s.d.ClickLink(ctx, link); err != nil {
		return err
	}
	if err := s.waitLocation(ctx, link); err != nil {
		return err
	}
	after, err := s.d.History(ctx)
	if err != nil {
		return err
	}
	if after.Current != before.Current+1 || after.Len() != before.Current+2 {
		return fmt.Errorf("history went from %d/%d to %d/%d, want one new entry",
			before.Current, before.Len(), after.Current, after.Len())
	}
	return s.sameDocument(ctx)
}

// back expects the previous entry without a new one.
func (s *smoke) back(ctx context.Context) error {
	before, err := s.d.History(ctx)
	if err != nil {
		return err
	}
	if before.Current == 0 {
		return errors.New("no entry to go back to")
	}
	want := before.Entries[before.Current-1]

	if err := s.d.Back(ctx); err != nil {
		return err
	}
	if err := s.waitLocation(ctx, want); err != nil {
		return err
	}
	after, err := s.d.History(ctx)
	if err != nil {
		return err
	}
	if after.Len() != before.Len() || after.Current != before.Current-1 {
		return fmt.Errorf("history went from %d/%d to %d/%d, want same length one back",
			before.Current, before.Len(), after.Current, after.Len())
	}
	return s.sameDocument(ctx)
}

// offline clicks a data-backed link with the network down and expects the
// offline page in place of the link's entry.
func (s *smoke) offline(ctx context.Context) error {
	if err := s.d.SetOffline(ctx, true); err != nil {
		return err
	}
	defer func() {
		if err := s.d.SetOffline(context.WithoutCancel(ctx), false); err != nil {
			s.logger.Warn("failed to restore network", "error", err)
		}
	}()

	before, err := s.d.History(ctx)
	if err != nil {
		return err
	}
	if err := s.d.ClickLink(ctx, s.cfg.OfflineLink); err != nil {
		return err
	}
	if err := s.waitLocation(ctx, s.cfg.OfflinePath); err != nil {
		return err
	}
	after, err := s.d.History(ctx)
	if err != nil {
		return err
	}
	if after.Current != before.Current+1 || after.Len() != before.Current+2 {
		return fmt.Errorf("history went from %d/%d to %d/%d, want the clicked entry replaced",
			before.Current, before.Len(), after.Current, after.Len())
	}
	return s.sameDocument(ctx)
}

func (s *smoke) sameDocument(ctx context.Context) error {
	m, err := s.d.BootMarker(ctx)
	if err != nil {
		return err
	}
	if m != s.marker {
		return fmt.Errorf("page reloaded: boot marker %q became %q", s.marker, m)
	}
	return nil
}

func (s *smoke) waitLocation(ctx context.Context, want string) error {
	var last string
	err := s.waitFor(ctx, "location "+want, func() (bool, error) {
		loc, err := s.d.Location(ctx)
		last = loc
		return loc == want, err
	})
	if err != nil && last != "" {
		return fmt.Errorf("%w (at %s)", err, last)
	}
	return err
}

// waitFor polls cond until it holds, fails, or the timeout passes.
func (s *smoke) waitFor(ctx context.Context, what string, cond func() (bool, error)) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		ok, err := cond()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for %s", what)
		case <-ticker.C:
		}
	}
}
