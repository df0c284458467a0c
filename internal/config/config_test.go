package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "eliteplans", cfg.Database.Name)
	assert.True(t, cfg.S3.UseSSL)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  address: ":3000"
database:
  name: eliteplans_test
s3:
  bucket_name: tutorials
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Address)
	assert.Equal(t, "eliteplans_test", cfg.Database.Name)
	assert.Equal(t, "tutorials", cfg.S3.BucketName)
	// Untouched keys keep their defaults.
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":4000")
	t.Setenv("DATABASE_NAME", "eliteplans_env")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.Server.Address)
	assert.Equal(t, "eliteplans_env", cfg.Database.Name)
}
