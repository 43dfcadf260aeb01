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

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jredh-dev/stockbot/internal/chat"
	"github.com/jredh-dev/stockbot/internal/store"
)

// GetOrder returns one order as JSON.
// GET /api/orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	rec, err := h.src.GetOrder(r.Context(), id)
	if err != nil {
		h.sourceError(w, r, "get order", err)
		return
	}
	if rec == nil {
		jsonError(w, "order not found", http.StatusNotFound)
		return
	}
	jsonOK(w, http.StatusOK, rec)
}

// SearchInventory returns up to five items matching q.
// GET /api/inventory?q=
func (h *Handler) SearchInventory(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		jsonError(w, "q is required", http.StatusBadRequest)
		return
	}

	items, err := h.src.FindInventory(r.Context(), q)
	if err != nil {
		h.sourceError(w, r, "find inventory", err)
		return
	}
	jsonOK(w, http.StatusOK, limit(items, chat.MaxInventoryMatches))
}

// LowStock returns up to ten items below the threshold.
// GET /api/inventory/low-stock
func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.src.ListLowStock(r.Context())
	if err != nil {
		h.sourceError(w, r, "list low stock", err)
		return
	}
	jsonOK(w, http.StatusOK, limit(items, chat.MaxLowStockItems))
}

func (h *Handler) sourceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	fields := []zap.Field{zap.String("operation", op), zap.Error(err)}
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		fields = append(fields, zap.String("client", claims.Client))
	}
	h.log.Error("api lookup failed", fields...)
	jsonError(w, "data source unavailable", http.StatusBadGateway)
}

func limit(items []store.InventoryItem, n int) []store.InventoryItem {
	if items == nil {
		return []store.InventoryItem{}
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

// --- helpers ---

func jsonOK(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
