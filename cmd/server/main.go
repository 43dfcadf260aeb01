// stockbot - WhatsApp order and inventory responder
// Copyright (C) 2026  nexus contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.

// stockbot answers WhatsApp messages about orders and inventory kept in a
// Google Sheet. Twilio posts each inbound message to /api/whatsapp and the
// TwiML reply is sent straight back to the sender.
//
// Configuration is read from the environment (and an optional .env file);
// see config.Load for the full list.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/jredh-dev/stockbot/config"
	"github.com/jredh-dev/stockbot/internal/handlers"
	"github.com/jredh-dev/stockbot/internal/logging"
	"github.com/jredh-dev/stockbot/internal/server"
	"github.com/jredh-dev/stockbot/internal/store"
	"github.com/jredh-dev/stockbot/internal/token"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("stockbot %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", buildDate)
		os.Exit(0)
	}

	cfg := config.Load()

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stockbot: build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	src, closeSrc, err := openSource(context.Background(), cfg)
	if err != nil {
		log.Fatal("open data source", zap.String("backend", cfg.Data.Backend), zap.Error(err))
	}

	srv := server.New(log)
	srv.OnStop(closeSrc)

	h := handlers.New(store.WithMetrics(src), log)

	// Twilio webhook. /sms is kept for numbers still pointed at the old path.
	srv.Router.Group(func(r chi.Router) {
		if cfg.Twilio.AuthToken != "" {
			r.Use(handlers.TwilioSignature(cfg.Twilio.AuthToken, cfg.Twilio.PublicBaseURL, log))
		} else {
			log.Warn("TWILIO_AUTH_TOKEN not set, webhook signatures are not checked")
		}
		r.HandleFunc("/api/whatsapp", h.WhatsApp)
		r.HandleFunc("/sms", h.WhatsApp)
	})

	// JSON lookup API, only when a signing key is configured.
	if cfg.API.SigningKey != "" {
		tokens := token.New(cfg.API.SigningKey, cfg.API.Issuer)
		srv.Router.Route("/api", func(r chi.Router) {
			r.Use(server.CORS)
			r.Use(handlers.BearerAuth(tokens, log))
			r.Get("/orders/{id}", h.GetOrder)
			r.Get("/inventory", h.SearchInventory)
			r.Get("/inventory/low-stock", h.LowStock)
		})
	} else {
		log.Info("API_SIGNING_KEY not set, lookup API disabled")
	}

	log.Info("stockbot configured",
		zap.String("version", version),
		zap.String("env", cfg.Server.Env),
		zap.String("backend", cfg.Data.Backend),
		zap.Float64("low_stock_threshold", cfg.Data.LowStockThreshold),
	)

	if err := srv.ListenAndServe(":" + cfg.Server.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

// openSource builds the configured backend and a function that releases it.
func openSource(ctx context.Context, cfg *config.Config) (store.Source, func(), error) {
	noop := func() {}

	switch cfg.Data.Backend {
	case config.BackendSheets:
		var opts []option.ClientOption
		switch {
		case cfg.Sheets.CredentialsJSON != "":
			opts = append(opts, option.WithCredentialsJSON([]byte(cfg.Sheets.CredentialsJSON)))
		case cfg.Sheets.CredentialsFile != "":
			opts = append(opts, option.WithCredentialsFile(cfg.Sheets.CredentialsFile))
		}
		s, err := store.NewSheets(ctx, store.SheetsConfig{
			SpreadsheetID:  cfg.Sheets.SpreadsheetID,
			OrdersSheet:    cfg.Sheets.OrdersSheet,
			InventorySheet: cfg.Sheets.InventorySheet,
			Threshold:      cfg.Data.LowStockThreshold,
			Timeout:        cfg.Sheets.Timeout,
		}, opts...)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil

	case config.BackendFirestore:
		var opts []option.ClientOption
		if cfg.Firestore.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Firestore.CredentialsFile))
		}
		f, err := store.NewFirestore(ctx, store.FirestoreConfig{
			ProjectID: cfg.Firestore.ProjectID,
			Database:  cfg.Firestore.Database,
			Threshold: cfg.Data.LowStockThreshold,
		}, opts...)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil

	case config.BackendMemory:
		return store.NewDemo(cfg.Data.LowStockThreshold), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Data.Backend)
}
