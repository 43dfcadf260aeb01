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

package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jredh-dev/stockbot/internal/store"
)

// Reply size limits.
const (
	MaxInventoryMatches = 5
	MaxLowStockItems    = 10
)

// Responder answers classified messages using a data source.
type Responder struct {
	src store.Source
	log *zap.Logger
}

// NewResponder creates a Responder reading from src.
func NewResponder(src store.Source, log *zap.Logger) *Responder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Responder{src: src, log: log}
}

// Reply runs the handler for msg and returns the text to send back. It always
// produces a complete message: lookup failures are logged and replaced with
// a fixed apology.
func (r *Responder) Reply(ctx context.Context, msg Message) string {
	switch msg.Intent {
	case IntentOrder:
		if msg.Argument == "" {
			return HelpText
		}
		text, err := r.Order(ctx, msg.Argument)
		return r.orApology(msg, text, err, OrdersUnavailableText)
	case IntentInventory:
		if msg.Argument == "" {
			return HelpText
		}
		text, err := r.Inventory(ctx, msg.Argument)
		return r.orApology(msg, text, err, InventoryUnavailableText)
	case IntentLowStock:
		text, err := r.LowStock(ctx)
		return r.orApology(msg, text, err, InventoryUnavailableText)
	case IntentHelp:
		return HelpText
	default:
		return FallbackText
	}
}

func (r *Responder) orApology(msg Message, text string, err error, apology string) string {
	if err == nil {
		return text
	}
	r.log.Error("lookup failed",
		zap.String("intent", string(msg.Intent)),
		zap.String("argument", msg.Argument),
		zap.Error(err),
	)
	return apology
}

// Order formats the order matching id.
func (r *Responder) Order(ctx context.Context, id string) (string, error) {
	rec, err := r.src.GetOrder(ctx, id)
	if err != nil {
		return "", fmt.Errorf("order lookup: %w", err)
	}
	if rec == nil {
		return fmt.Sprintf("No order found for %s.", id), nil
	}

	orderID := rec.OrderID
	if orderID == "" {
		orderID = id
	}
	lines := []string{"Order " + orderID}
	if rec.CustomerName != "" {
		lines = append(lines, "Customer: "+rec.CustomerName)
	}
	if rec.Status != "" {
		lines = append(lines, "Status: "+rec.Status)
	}
	if rec.ETA != "" {
		lines = append(lines, "ETA: "+rec.ETA)
	}
	return strings.Join(lines, "\n"), nil
}

// Inventory formats up to five items matching query, one block per item.
func (r *Responder) Inventory(ctx context.Context, query string) (string, error) {
	items, err := r.src.FindInventory(ctx, query)
	if err != nil {
		return "", fmt.Errorf("inventory lookup: %w", err)
	}
	if len(items) == 0 {
		return "No inventory records match \"" + query + "\".", nil
	}

	if len(items) > MaxInventoryMatches {
		items = items[:MaxInventoryMatches]
	}
	blocks := make([]string, 0, len(items))
	for _, it := range items {
		lines := []string{itemIdentity(it), "Qty: " + quantity(it)}
		if it.Location != "" {
			lines = append(lines, "Location: "+it.Location)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n"), nil
}

// LowStock lists up to ten items below the threshold, one per line.
func (r *Responder) LowStock(ctx context.Context) (string, error) {
	items, err := r.src.ListLowStock(ctx)
	if err != nil {
		return "", fmt.Errorf("low stock listing: %w", err)
	}
	if len(items) == 0 {
		return "No items are below the low stock threshold.", nil
	}

	if len(items) > MaxLowStockItems {
		items = items[:MaxLowStockItems]
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		line := shortName(it) + " — Qty: " + quantity(it)
		if it.Location != "" {
			line += " (" + it.Location + ")"
		}
		lines = append(lines, line)
	}
	return "Low Stock Alerts:\n\n" + strings.Join(lines, "\n"), nil
}

func itemIdentity(it store.InventoryItem) string {
	switch {
	case it.Name != "" && it.SKU != "":
		return it.Name + " (" + it.SKU + ")"
	case it.Name != "":
		return it.Name + " (N/A)"
	case it.SKU != "":
		return it.SKU
	default:
		return "Unknown Item"
	}
}

func shortName(it store.InventoryItem) string {
	switch {
	case it.Name != "":
		return it.Name
	case it.SKU != "":
		return it.SKU
	default:
		return "Unknown Item"
	}
}

func quantity(it store.InventoryItem) string {
	if it.Quantity == "" {
		return "?"
	}
	return it.Quantity
}
