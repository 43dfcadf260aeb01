package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoSource(t *testing.T) {
	ctx := context.Background()
	m := NewDemo(5)

	rec, err := m.GetOrder(ctx, "1001")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Ada Lovelace", rec.CustomerName)

	items, err := m.FindInventory(ctx, "widget")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	low, err := m.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "WID-RED", low[0].SKU)
	assert.Equal(t, "OIL-01", low[1].SKU)
}

func TestMemorySetErr(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil, nil, 5)
	cause := errors.New("connection refused")
	m.SetErr(cause)

	_, err := m.GetOrder(ctx, "1")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)

	_, err = m.FindInventory(ctx, "x")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = m.ListLowStock(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)

	m.SetErr(nil)
	_, err = m.ListLowStock(ctx)
	assert.NoError(t, err)
}

func TestWithMetricsPassesThrough(t *testing.T) {
	ctx := context.Background()
	m := NewDemo(5)
	src := WithMetrics(m)

	rec, err := src.GetOrder(ctx, "1002")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Packing", rec.Status)

	m.SetErr(errors.New("down"))
	_, err = src.FindInventory(ctx, "widget")
	assert.ErrorIs(t, err, ErrUnavailable)
}
