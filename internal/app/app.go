// Package app wires the storefront together: configuration, event bus, API
// client, application model, and the console front end. It is the single
// composition point owning every collaborator's lifetime.
package app

import (
	"context"
	"net/http"
	"os"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/larek-storefront/internal/apiclient"
	"github.com/xenking/larek-storefront/internal/cli"
	"github.com/xenking/larek-storefront/internal/event"
	"github.com/xenking/larek-storefront/internal/model"
	"github.com/xenking/larek-storefront/pkg/httpclient"
)

// Run constructs all dependencies and drives the console session until the
// user quits or the context is cancelled.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("api", cfg.APIBaseURL),
		zap.String("cdn", cfg.CDNBaseURL),
	)

	bus := event.NewBus()

	httpClient := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: httpclient.Wrap(http.DefaultTransport,
			httpclient.RequestID(),
			httpclient.Instrument(),
			httpclient.LogRequests(),
		),
	}

	api, err := apiclient.New(apiclient.Config{
		BaseURL:    cfg.APIBaseURL,
		CDNBaseURL: cfg.CDNBaseURL,
		HTTPClient: httpClient,
	})
	if err != nil {
		return errors.Wrap(err, "create api client")
	}

	m := model.New(bus, api)

	// Catch-all observer: one structured log line per notification.
	bus.SubscribeAll(func(ev event.Event) {
		lg.Debug("Event", zap.String("kind", string(ev.Kind())))
	})

	console := cli.New(m, bus, os.Stdin, os.Stdout)
	return console.Run(ctx)
}
