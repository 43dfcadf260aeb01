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
	"strconv"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ordersCollection    = "orders"
	inventoryCollection = "inventory"
)

// FirestoreConfig selects the project and database holding the orders and
// inventory collections.
type FirestoreConfig struct {
	ProjectID string
	Database  string
	Threshold float64
}

// Firestore serves the same lookups as Sheets from two Firestore collections,
// for teams that have moved off the spreadsheet. Inventory documents are
// read in full and matched with the same rules as sheet rows.
type Firestore struct {
	client    *firestore.Client
	threshold float64
}

// NewFirestore connects through a Firebase app. A named (non-default)
// database is opened directly since the Firebase app only exposes the default.
func NewFirestore(ctx context.Context, cfg FirestoreConfig, opts ...option.ClientOption) (*Firestore, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore: project id is required")
	}

	var (
		client *firestore.Client
		err    error
	)
	if cfg.Database == "" || cfg.Database == firestore.DefaultDatabaseID {
		app, appErr := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
		if appErr != nil {
			return nil, fmt.Errorf("firestore: init firebase app: %w", appErr)
		}
		client, err = app.Firestore(ctx)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, cfg.ProjectID, cfg.Database, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("firestore: create client: %w", err)
	}

	return &Firestore{client: client, threshold: cfg.Threshold}, nil
}

// Close releases the underlying client.
func (f *Firestore) Close() error {
	return f.client.Close()
}

// GetOrder reads the document keyed by id first, since orders are stored
// under their order ID. When that misses it scans the collection and matches
// the order_id field case-insensitively, falling back to the document ID when
// the field is missing.
func (f *Firestore) GetOrder(ctx context.Context, id string) (*OrderRecord, error) {
	rec, err := f.orderByDocID(ctx, id)
	if err != nil {
		return nil, unavailable("get order", err)
	}
	if rec != nil {
		return rec, nil
	}

	docs, err := f.readAll(ctx, ordersCollection)
	if err != nil {
		return nil, unavailable("get order", err)
	}
	orders := make([]OrderRecord, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, orderFromDoc(d))
	}
	return findOrder(orders, id), nil
}

func (f *Firestore) orderByDocID(ctx context.Context, id string) (*OrderRecord, error) {
	key := strings.TrimSpace(id)
	if !validDocID(key) {
		return nil, nil
	}
	snap, err := f.client.Collection(ordersCollection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", ordersCollection, key, err)
	}
	rec := orderFromDoc(document{id: snap.Ref.ID, data: normalizeKeys(snap.Data())})
	return findOrder([]OrderRecord{rec}, id), nil
}

// validDocID reports whether s can name a document without a lookup error.
func validDocID(s string) bool {
	return s != "" && s != "." && s != ".." &&
		!strings.Contains(s, "/") && !strings.HasPrefix(s, "__")
}

func orderFromDoc(d document) OrderRecord {
	rec := OrderRecord{
		OrderID:      field(d.data, orderIDCols),
		CustomerName: field(d.data, customerCols),
		Status:       field(d.data, statusCols),
		ETA:          field(d.data, etaCols),
	}
	if rec.OrderID == "" {
		rec.OrderID = d.id
	}
	return rec
}

// FindInventory searches inventory documents by sku or name.
func (f *Firestore) FindInventory(ctx context.Context, query string) ([]InventoryItem, error) {
	items, err := f.inventory(ctx)
	if err != nil {
		return nil, unavailable("find inventory", err)
	}
	return matchInventory(items, query), nil
}

// ListLowStock returns inventory documents below the threshold.
func (f *Firestore) ListLowStock(ctx context.Context) ([]InventoryItem, error) {
	items, err := f.inventory(ctx)
	if err != nil {
		return nil, unavailable("list low stock", err)
	}
	return belowThreshold(items, f.threshold), nil
}

func (f *Firestore) inventory(ctx context.Context) ([]InventoryItem, error) {
	docs, err := f.readAll(ctx, inventoryCollection)
	if err != nil {
		return nil, err
	}
	items := make([]InventoryItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, InventoryItem{
			Name:     field(d.data, itemNameCols),
			SKU:      field(d.data, skuCols),
			Quantity: field(d.data, quantityCols),
			Location: field(d.data, locationCols),
		})
	}
	return items, nil
}

type document struct {
	id   string
	data map[string]interface{}
}

// readAll returns every document ordered by ID, which stands in for sheet
// row order.
func (f *Firestore) readAll(ctx context.Context, collection string) ([]document, error) {
	iter := f.client.Collection(collection).OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var docs []document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", collection, err)
		}
		docs = append(docs, document{id: snap.Ref.ID, data: normalizeKeys(snap.Data())})
	}
	return docs, nil
}

func normalizeKeys(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[normalizeHeader(k)] = v
	}
	return out
}

// field renders the first alias present in m as text.
func field(m map[string]interface{}, aliases []string) string {
	for _, a := range aliases {
		v, ok := m[a]
		if !ok || v == nil {
			continue
		}
		switch x := v.(type) {
		case string:
			return strings.TrimSpace(x)
		case int64:
			return strconv.FormatInt(x, 10)
		case float64:
			return strconv.FormatFloat(x, 'f', -1, 64)
		default:
			return fmt.Sprint(x)
		}
	}
	return ""
}
