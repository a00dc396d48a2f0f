//go:build js && wasm

// Package main is the storefront bundle. Build with
// GOOS=js GOARCH=wasm go build -o web/storefront.wasm ./cmd/storefront.
package main

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"os"
	"syscall/js"

	"storefront-go/application"
	"storefront-go/infrastructure/config"
	"storefront-go/infrastructure/logging"
	"storefront-go/infrastructure/web"
	"storefront-go/presentation"
	"storefront-go/resources"
)

func main() {
	settings, err := config.LoadFromReader(bytes.NewReader(resources.Config))
	if err != nil {
		os.Stderr.WriteString("Failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, closeLog, err := logging.Setup(settings.Logging())
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closeLog()

	tmpl, err := resources.Templates()
	if err != nil {
		logger.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	history := web.NewHistory(logger)
	// The dev server proxies /api/, so requests stay same-origin.
	if settings.API.BaseURL != "" {
		settings.API.BaseURL = history.Origin()
	}

	store, err := application.New(&application.Config{
		Settings: settings,
		History:  history,
		Surfaces: func(view string) (presentation.Surface, error) {
			return web.NewSurface(view, tmpl)
		},
		Logger: logger,
	})
	if err != nil {
		logger.Error("Failed to build storefront", "error", err)
		os.Exit(1)
	}
	if err := store.Start(); err != nil {
		logger.Error("Failed to start storefront", "error", err)
		os.Exit(1)
	}

	js.Global().Set(bootMarkerVar, bootID())
	logger.Info("Storefront started", "location", history.Location())

	select {}
}

// bootMarkerVar must match browser.BootMarkerVar.
const bootMarkerVar = "__storefrontBoot"

func bootID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
