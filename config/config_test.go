package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "SERVICE_PORT", "DATA_BACKEND", "LOW_STOCK_THRESHOLD", "SHEETS_TIMEOUT", "ORDERS_SHEET", "API_SIGNING_KEY"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, BackendSheets, cfg.Data.Backend)
	assert.Equal(t, 5.0, cfg.Data.LowStockThreshold)
	assert.Equal(t, 10*time.Second, cfg.Sheets.Timeout)
	assert.Equal(t, "Orders", cfg.Sheets.OrdersSheet)
	assert.Equal(t, "Inventory", cfg.Sheets.InventorySheet)
	assert.Empty(t, cfg.API.SigningKey)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVICE_PORT", "9090")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("LOW_STOCK_THRESHOLD", "12.5")
	t.Setenv("SHEETS_TIMEOUT", "3s")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, BackendMemory, cfg.Data.Backend)
	assert.Equal(t, 12.5, cfg.Data.LowStockThreshold)
	assert.Equal(t, 3*time.Second, cfg.Sheets.Timeout)

	t.Setenv("PORT", "7000")
	assert.Equal(t, "7000", Load().Server.Port, "PORT wins over SERVICE_PORT")
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "five")
	t.Setenv("SHEETS_TIMEOUT", "soon")

	cfg := Load()
	assert.Equal(t, 5.0, cfg.Data.LowStockThreshold)
	assert.Equal(t, 10*time.Second, cfg.Sheets.Timeout)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Data: DataConfig{Backend: BackendSheets}}
	require.Error(t, cfg.Validate())

	cfg.Sheets.SpreadsheetID = "abc"
	require.NoError(t, cfg.Validate())

	cfg.Data.Backend = BackendFirestore
	require.Error(t, cfg.Validate())
	cfg.Firestore.ProjectID = "proj"
	require.NoError(t, cfg.Validate())

	cfg.Data.Backend = BackendMemory
	require.NoError(t, cfg.Validate())

	cfg.Data.Backend = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "unknown DATA_BACKEND")

	cfg.Data.Backend = BackendMemory
	cfg.Data.LowStockThreshold = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadFirestore(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "stock-proj")
	t.Setenv("FIRESTORE_DATABASE", "ops")
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/etc/stockbot/firebase.json")

	cfg := Load()
	assert.Equal(t, "stock-proj", cfg.Firestore.ProjectID)
	assert.Equal(t, "ops", cfg.Firestore.Database)
	assert.Equal(t, "/etc/stockbot/firebase.json", cfg.Firestore.CredentialsFile)
}
