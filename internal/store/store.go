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

// Package store provides the order and inventory data sources the chat
// responder reads from: a Google Sheets workbook, a Firestore database, or an
// in-memory table for tests and local demos.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable wraps every failure to reach a backend. Callers use
// errors.Is to tell a data-source outage apart from "no such record".
var ErrUnavailable = errors.New("data source unavailable")

// OrderRecord is one row of the Orders sheet. Empty fields are absent.
type OrderRecord struct {
	OrderID      string `json:"order_id"`
	CustomerName string `json:"customer_name,omitempty"`
	Status       string `json:"status,omitempty"`
	ETA          string `json:"eta,omitempty"`
}

// InventoryItem is one row of the Inventory sheet. Empty fields are absent.
// Quantity is kept as the cell text; it is only read as a number when
// filtering against the low stock threshold.
type InventoryItem struct {
	Name     string `json:"name,omitempty"`
	SKU      string `json:"sku,omitempty"`
	Quantity string `json:"quantity,omitempty"`
	Location string `json:"location,omitempty"`
}

// Source is the read-only view of orders and inventory the responder needs.
type Source interface {
	// GetOrder returns nil, nil when no order matches id.
	GetOrder(ctx context.Context, id string) (*OrderRecord, error)
	// FindInventory returns matches in the backend's ranking order.
	FindInventory(ctx context.Context, query string) ([]InventoryItem, error)
	// ListLowStock returns items already filtered by the configured threshold.
	ListLowStock(ctx context.Context) ([]InventoryItem, error)
}

// unavailable wraps err so that errors.Is(err, ErrUnavailable) holds while
// the underlying cause stays visible in logs.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
