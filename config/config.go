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

// Package config loads stockbot configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Data backends selectable with DATA_BACKEND.
const (
	BackendSheets    = "sheets"
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Data      DataConfig
	Sheets    SheetsConfig
	Firestore FirestoreConfig
	Twilio    TwilioConfig
	API       APIConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

type DataConfig struct {
	Backend           string
	LowStockThreshold float64
}

type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsFile string
	CredentialsJSON string
	OrdersSheet     string
	InventorySheet  string
	Timeout         time.Duration
}

type FirestoreConfig struct {
	ProjectID       string
	Database        string
	CredentialsFile string
}

type TwilioConfig struct {
	AuthToken     string // enables X-Twilio-Signature validation when set
	PublicBaseURL string // external base URL Twilio posts to, e.g. https://bot.example.com
}

type APIConfig struct {
	SigningKey string // lookup API is disabled when empty
	Issuer     string
}

// Load reads configuration from environment variables. A .env file in the
// working directory, if present, is loaded first without overriding
// variables already set.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = getEnv("SERVICE_PORT", "8080")
	}

	return &Config{
		Server: ServerConfig{
			Port: port,
			Env:  getEnv("ENV", "development"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Data: DataConfig{
			Backend:           getEnv("DATA_BACKEND", BackendSheets),
			LowStockThreshold: getEnvFloat("LOW_STOCK_THRESHOLD", 5),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   getEnv("GOOGLE_SHEETS_ID", ""),
			CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
			CredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
			OrdersSheet:     getEnv("ORDERS_SHEET", "Orders"),
			InventorySheet:  getEnv("INVENTORY_SHEET", "Inventory"),
			Timeout:         getEnvDuration("SHEETS_TIMEOUT", 10*time.Second),
		},
		Firestore: FirestoreConfig{
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			Database:        getEnv("FIRESTORE_DATABASE", "(default)"),
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		Twilio: TwilioConfig{
			AuthToken:     getEnv("TWILIO_AUTH_TOKEN", ""),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		},
		API: APIConfig{
			SigningKey: getEnv("API_SIGNING_KEY", ""),
			Issuer:     getEnv("API_TOKEN_ISSUER", "stockbot"),
		},
	}
}

// Validate reports settings the selected backend cannot run without.
func (c *Config) Validate() error {
	var errs []error
	switch c.Data.Backend {
	case BackendSheets:
		if c.Sheets.SpreadsheetID == "" {
			errs = append(errs, errors.New("GOOGLE_SHEETS_ID is required for the sheets backend"))
		}
	case BackendFirestore:
		if c.Firestore.ProjectID == "" {
			errs = append(errs, errors.New("FIREBASE_PROJECT_ID is required for the firestore backend"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown DATA_BACKEND %q", c.Data.Backend))
	}
	if c.Data.LowStockThreshold < 0 {
		errs = append(errs, errors.New("LOW_STOCK_THRESHOLD must not be negative"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
