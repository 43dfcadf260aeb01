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
	"time"

	"github.com/jredh-dev/stockbot/internal/metrics"
)

// instrumented records latency and failures for every call to the wrapped
// Source.
type instrumented struct {
	next Source
}

// WithMetrics wraps src so each call is observed by the Prometheus collectors
// in package metrics.
func WithMetrics(src Source) Source {
	return instrumented{next: src}
}

func observe(op string, start time.Time, err error) {
	metrics.SourceDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SourceFailures.WithLabelValues(op).Inc()
	}
}

func (i instrumented) GetOrder(ctx context.Context, id string) (rec *OrderRecord, err error) {
	start := time.Now()
	defer func() { observe("get_order", start, err) }()
	return i.next.GetOrder(ctx, id)
}

func (i instrumented) FindInventory(ctx context.Context, query string) (items []InventoryItem, err error) {
	start := time.Now()
	defer func() { observe("find_inventory", start, err) }()
	return i.next.FindInventory(ctx, query)
}

func (i instrumented) ListLowStock(ctx context.Context) (items []InventoryItem, err error) {
	start := time.Now()
	defer func() { observe("list_low_stock", start, err) }()
	return i.next.ListLowStock(ctx)
}
