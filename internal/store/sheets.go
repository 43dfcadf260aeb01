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

package store

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsConfig locates the workbook and the two tabs the bot reads.
type SheetsConfig struct {
	SpreadsheetID  string
	OrdersSheet    string
	InventorySheet string
	// Threshold is the quantity below which an item counts as low stock.
	Threshold float64
	// Timeout bounds each Values.Get call. Zero means no extra deadline.
	Timeout time.Duration
}

// Sheets reads orders and inventory from a Google Sheets workbook. Every
// operation issues exactly one Values.Get call; nothing is cached.
type Sheets struct {
	svc *sheets.Service
	cfg SheetsConfig
}

// NewSheets creates a Sheets source. opts are passed to the Sheets client;
// with none, Application Default Credentials are used.
func NewSheets(ctx context.Context, cfg SheetsConfig, opts ...option.ClientOption) (*Sheets, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet id is required")
	}
	if cfg.OrdersSheet == "" {
		cfg.OrdersSheet = "Orders"
	}
	if cfg.InventorySheet == "" {
		cfg.InventorySheet = "Inventory"
	}

	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create client: %w", err)
	}
	return &Sheets{svc: svc, cfg: cfg}, nil
}

// GetOrder looks up id in the Orders tab.
func (s *Sheets) GetOrder(ctx context.Context, id string) (*OrderRecord, error) {
	t, err := s.read(ctx, s.cfg.OrdersSheet)
	if err != nil {
		return nil, unavailable("get order", err)
	}
	return findOrder(t.orders(), id), nil
}

// FindInventory searches the Inventory tab by sku or name.
func (s *Sheets) FindInventory(ctx context.Context, query string) ([]InventoryItem, error) {
	t, err := s.read(ctx, s.cfg.InventorySheet)
	if err != nil {
		return nil, unavailable("find inventory", err)
	}
	return matchInventory(t.inventory(), query), nil
}

// ListLowStock returns Inventory rows below the configured threshold.
func (s *Sheets) ListLowStock(ctx context.Context) ([]InventoryItem, error) {
	t, err := s.read(ctx, s.cfg.InventorySheet)
	if err != nil {
		return nil, unavailable("list low stock", err)
	}
	return belowThreshold(t.inventory(), s.cfg.Threshold), nil
}

func (s *Sheets) read(ctx context.Context, tab string) (table, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, tab+"!A:Z").Context(ctx).Do()
	if err != nil {
		return table{}, fmt.Errorf("read %s: %w", tab, err)
	}
	return newTable(stringify(resp.Values)), nil
}

// stringify converts the API's loosely typed cells to text. Formatted values
// already arrive as strings; anything else is printed with %v.
func stringify(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			switch v := cell.(type) {
			case string:
				out[i][j] = v
			case nil:
			default:
				out[i][j] = fmt.Sprint(v)
			}
		}
	}
	return out
}
