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
	"sync"
)

// Memory is an in-process Source backed by fixed slices. It applies the same
// matching rules as the sheet backends and is used in tests and for local
// runs without Google credentials.
type Memory struct {
	mu        sync.RWMutex
	orders    []OrderRecord
	items     []InventoryItem
	threshold float64
	err       error
}

// NewMemory creates a Memory source holding orders and items.
func NewMemory(orders []OrderRecord, items []InventoryItem, threshold float64) *Memory {
	return &Memory{orders: orders, items: items, threshold: threshold}
}

// NewDemo returns a Memory source with a few sample rows.
func NewDemo(threshold float64) *Memory {
	return NewMemory(
		[]OrderRecord{
			{OrderID: "1001", CustomerName: "Ada Lovelace", Status: "Shipped", ETA: "Tomorrow"},
			{OrderID: "1002", CustomerName: "Grace Hopper", Status: "Packing"},
			{OrderID: "1003", Status: "Awaiting payment"},
		},
		[]InventoryItem{
			{Name: "Blue Widget", SKU: "WID-BLU", Quantity: "42", Location: "Aisle 3"},
			{Name: "Red Widget", SKU: "WID-RED", Quantity: "2", Location: "Aisle 3"},
			{Name: "Gear Oil", SKU: "OIL-01", Quantity: "0"},
			{SKU: "BOLT-M6", Quantity: "350", Location: "Bin 12"},
		},
		threshold,
	)
}

// SetErr makes every subsequent call fail with err wrapped as ErrUnavailable.
// Pass nil to restore normal behaviour.
func (m *Memory) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// GetOrder implements Source.
func (m *Memory) GetOrder(_ context.Context, id string) (*OrderRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, unavailable("get order", m.err)
	}
	return findOrder(m.orders, id), nil
}

// FindInventory implements Source.
func (m *Memory) FindInventory(_ context.Context, query string) ([]InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, unavailable("find inventory", m.err)
	}
	return matchInventory(m.items, query), nil
}

// ListLowStock implements Source.
func (m *Memory) ListLowStock(_ context.Context) ([]InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, unavailable("list low stock", m.err)
	}
	return belowThreshold(m.items, m.threshold), nil
}
