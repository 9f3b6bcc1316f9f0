package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/posterity/internal/api"
	"github.com/ytget/posterity/internal/config"
	"github.com/ytget/posterity/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "no.posterity.client"
	AppName = "Posterity"
)

func main() {
	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewTheme())

	settings := config.NewSettings(myApp)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: settings.GetLogLevel().SlogLevel(),
	}))
	slog.SetDefault(logger)
	logger.Info("app.starting", "version", version, "server", settings.GetServerURL())

	client, err := api.NewClient(settings.GetServerURL(),
		api.WithTimeout(settings.GetRequestTimeout()),
		api.WithLogger(logger),
	)
	if err != nil {
		// A stored URL is validated on save; fall back if it was edited by hand
		logger.Error("app.bad_server_url", "url", settings.GetServerURL(), "error", err)
		client, err = api.NewClient(config.DefaultServerURL, api.WithTimeout(settings.GetRequestTimeout()), api.WithLogger(logger))
		if err != nil {
			logger.Error("app.client_failed", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Create and setup UI
	ui.NewRootUI(ctx, myWindow, settings, client, logger)

	// Pending requests are dropped when the window closes
	myWindow.SetOnClosed(cancel)

	// Show and run
	myWindow.ShowAndRun()
}
