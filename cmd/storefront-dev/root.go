package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"storefront-go/infrastructure/config"
	"storefront-go/infrastructure/logging"
)

type app struct {
	configPath string

	settings *config.Config
	logger   *slog.Logger
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "storefront-dev",
		Short:         "Storefront development tool",
		Long:          "Serves the storefront bundle with deep-link fallback and an /api/ proxy, and checks navigation in a headless browser.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "storefront.yaml", "config file (.yaml or .toml)")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newSmokeCmd(a))
	root.AddCommand(newRoutesCmd(a))
	return root
}

func (a *app) init() error {
	settings, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.Setup(settings.Logging())
	if err != nil {
		return err
	}
	a.settings = settings
	a.logger = logger
	a.closeLog = closeLog
	return nil
}
