package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/mercado/internal/types"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "products.txt", cfg.StoreFile)
	assert.Equal(t, "logs/mercado.log", cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "R$", cfg.CurrencyMarker)
	assert.Equal(t, 2*time.Second, cfg.Pacing())
	assert.Equal(t, "reports", cfg.ExportDir)
	assert.Len(t, cfg.SeedProducts, 5)
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store_file: /tmp/stock.txt
log_level: debug
currency_marker: "€"
pacing_ms: 50
seed_products:
  - code: "111111"
    name: "Coffee"
    price: "12.5"
    sold_in: GR
`), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/stock.txt", cfg.StoreFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "€", cfg.CurrencyMarker)
	assert.Equal(t, 50*time.Millisecond, cfg.Pacing())

	seeds, err := cfg.Seeds()
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	assert.Equal(t, "Coffee", seeds[0].Name)
	assert.Equal(t, "12.5", seeds[0].Price.String())
	assert.Equal(t, types.Gram, seeds[0].SoldIn)
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0644))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestLoadRejectsBadSeedProduct(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed_products:
  - code: "111111"
    name: "Coffee"
    price: "not-a-price"
    sold_in: GR
`), 0644))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestDefaultSeedsConvert(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	seeds, err := cfg.Seeds()
	require.NoError(t, err)
	require.Len(t, seeds, 5)

	for _, p := range seeds {
		assert.Len(t, p.Code, types.CodeLength)
		assert.True(t, p.SoldIn.Valid())
		assert.False(t, p.Price.IsNegative())
	}
}
