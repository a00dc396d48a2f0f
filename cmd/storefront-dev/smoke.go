package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"storefront-go/infrastructure/browser"
)

func newSmokeCmd(a *app) *cobra.Command {
	var baseURL string
	var headful bool

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Check in-app navigation in a headless browser",
		Long: `Loads the storefront in Chrome, clicks the configured links, goes back,
then clicks a product with the network disabled. Fails if any step reloads
the page or leaves the wrong history entries. Without --url a dev server is
started on a free port; the API at api.base_url must be reachable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if baseURL == "" {
				a.settings.Server.Proxy = true
				srv, err := a.devServer()
				if err != nil {
					return err
				}
				ln, err := net.Listen("tcp", "127.0.0.1:0")
				if err != nil {
					return fmt.Errorf("failed to listen: %w", err)
				}
				hs := &http.Server{Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
				go func() {
					if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						a.logger.Error("Dev server stopped", "error", err)
					}
				}()
				defer hs.Close()
				baseURL = "http://" + ln.Addr().String()
			}

			dcfg := browser.DefaultDriverConfig()
			dcfg.Headless = a.settings.Smoke.Headless && !headful
			driver := browser.NewChromeDPDriver(dcfg)
			if err := driver.Start(ctx); err != nil {
				return err
			}
			defer driver.Stop()

			scfg := browser.DefaultSmokeConfig()
			scfg.BaseURL = baseURL
			scfg.Links = a.settings.Smoke.Links
			scfg.OfflinePath = a.settings.Paths.Offline
			if t := a.settings.Smoke.Timeout.Duration; t > 0 {
				scfg.Timeout = t
			}
			scfg.Logger = a.logger

			report, err := browser.RunSmoke(ctx, driver, scfg)
			if err != nil {
				return err
			}
			for _, c := range report.Checks {
				status := "ok"
				if c.Err != nil {
					status = "FAIL: " + c.Err.Error()
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", c.Name, status)
			}
			return report.Err()
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "", "storefront URL (default: start a dev server)")
	cmd.Flags().BoolVar(&headful, "headful", false, "show the browser window")
	return cmd
}
