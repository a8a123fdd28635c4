package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"glossary-backend/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfigDefaults tests the built-in defaults.
func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 100, cfg.DefaultPageSize)
	assert.Equal(t, 1000, cfg.MaxPageSize)
	assert.Equal(t, "", cfg.DataFile)
	assert.True(t, cfg.EnableCORS)
	assert.False(t, cfg.IsProduction())
}

// TestLoadConfigFromEnv tests configuration loading from environment variables.
func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DEFAULT_PAGE_SIZE", "25")
	t.Setenv("MAX_PAGE_SIZE", "50")
	t.Setenv("ENABLE_CORS", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 25, cfg.DefaultPageSize)
	assert.Equal(t, 50, cfg.MaxPageSize)
	assert.False(t, cfg.EnableCORS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

// TestLoadConfigFromFile tests the YAML overlay with environment overrides.
func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"server_address: \":7070\"\ndefault_page_size: 10\nmax_page_size: 20\n"), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MAX_PAGE_SIZE", "30") // environment wins over the file

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ServerAddress)
	assert.Equal(t, 10, cfg.DefaultPageSize)
	assert.Equal(t, 30, cfg.MaxPageSize)
}

// TestConfigValidation tests configuration validation.
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*testing.T)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(t *testing.T) {},
			wantErr: false,
		},
		{
			name: "default page size below one",
			mutate: func(t *testing.T) {
				t.Setenv("DEFAULT_PAGE_SIZE", "0")
			},
			wantErr: true,
		},
		{
			name: "max below default",
			mutate: func(t *testing.T) {
				t.Setenv("DEFAULT_PAGE_SIZE", "100")
				t.Setenv("MAX_PAGE_SIZE", "10")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mutate(t)
			_, err := config.LoadConfig()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestMissingConfigFile tests that a named but unreadable file fails loading.
func TestMissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := config.LoadConfig()
	assert.Error(t, err)
}
