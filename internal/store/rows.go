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
	"strconv"
	"strings"
)

// Header aliases accepted for each column. Headers are normalised before
// lookup, so "Order ID", "order-id" and "ORDER_ID" all map to order_id.
var (
	orderIDCols  = []string{"order_id", "order", "id"}
	customerCols = []string{"customer_name", "customer", "name"}
	statusCols   = []string{"status"}
	etaCols      = []string{"eta", "delivery_eta"}

	itemNameCols = []string{"name", "item", "product", "item_name"}
	skuCols      = []string{"sku", "item_sku"}
	quantityCols = []string{"quantity", "qty", "stock", "on_hand"}
	locationCols = []string{"location", "bin", "warehouse"}
)

// table is a header row plus data rows as read from a sheet range.
type table struct {
	cols map[string]int
	rows [][]string
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

// newTable treats the first row as the header. Blank rows are dropped.
func newTable(values [][]string) table {
	t := table{cols: make(map[string]int)}
	if len(values) == 0 {
		return t
	}
	for i, h := range values[0] {
		key := normalizeHeader(h)
		if _, dup := t.cols[key]; key != "" && !dup {
			t.cols[key] = i
		}
	}
	for _, row := range values[1:] {
		if blankRow(row) {
			continue
		}
		t.rows = append(t.rows, row)
	}
	return t
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// cell returns the trimmed value of the first alias column present in the
// header. Short rows (the Sheets API drops trailing empty cells) read as "".
func (t table) cell(row []string, aliases []string) string {
	for _, a := range aliases {
		i, ok := t.cols[a]
		if !ok {
			continue
		}
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	return ""
}

func (t table) orders() []OrderRecord {
	out := make([]OrderRecord, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, OrderRecord{
			OrderID:      t.cell(row, orderIDCols),
			CustomerName: t.cell(row, customerCols),
			Status:       t.cell(row, statusCols),
			ETA:          t.cell(row, etaCols),
		})
	}
	return out
}

func (t table) inventory() []InventoryItem {
	out := make([]InventoryItem, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, InventoryItem{
			Name:     t.cell(row, itemNameCols),
			SKU:      t.cell(row, skuCols),
			Quantity: t.cell(row, quantityCols),
			Location: t.cell(row, locationCols),
		})
	}
	return out
}

// findOrder returns the first order whose id matches, ignoring case and
// surrounding whitespace.
func findOrder(orders []OrderRecord, id string) *OrderRecord {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	for i := range orders {
		if strings.EqualFold(orders[i].OrderID, id) {
			rec := orders[i]
			return &rec
		}
	}
	return nil
}

// matchInventory returns items whose sku equals the query first, followed by
// items whose name or sku contains it, both in sheet order.
func matchInventory(items []InventoryItem, query string) []InventoryItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var exact, partial []InventoryItem
	for _, it := range items {
		sku := strings.ToLower(it.SKU)
		name := strings.ToLower(it.Name)
		switch {
		case sku != "" && sku == q:
			exact = append(exact, it)
		case strings.Contains(sku, q), strings.Contains(name, q):
			partial = append(partial, it)
		}
	}
	return append(exact, partial...)
}

// belowThreshold keeps items whose quantity is a number strictly less than
// threshold. Items with a missing or non-numeric quantity are skipped.
func belowThreshold(items []InventoryItem, threshold float64) []InventoryItem {
	var out []InventoryItem
	for _, it := range items {
		n, ok := parseQuantity(it.Quantity)
		if ok && n < threshold {
			out = append(out, it)
		}
	}
	return out
}

func parseQuantity(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
