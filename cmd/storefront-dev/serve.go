package main

import (
	"os"

	"github.com/spf13/cobra"

	"storefront-go/core/router"
	"storefront-go/infrastructure/devserver"
	"storefront-go/resources"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	var proxy bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the storefront bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.settings.Server.Addr = addr
			}
			if cmd.Flags().Changed("proxy") {
				a.settings.Server.Proxy = proxy
			}
			srv, err := a.devServer()
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&proxy, "proxy", false, "proxy /api/ to api.base_url")
	return cmd
}

func (a *app) devServer() (*devserver.Server, error) {
	specs, err := router.LoadTable(resources.Routes)
	if err != nil {
		return nil, err
	}
	cfg := &devserver.Config{
		Addr:   a.settings.Server.Addr,
		Static: os.DirFS(a.settings.Server.Dir),
		Shell:  resources.Web(),
		Routes: specs,
		Logger: a.logger,
	}
	if a.settings.Server.Proxy {
		cfg.APIURL = a.settings.API.BaseURL
	}
	return devserver.New(cfg)
}
