package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Validation.EnforceCargoEnum)
	assert.True(t, cfg.Validation.EnforceNotFuture)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, DefaultAuditDSN, cfg.Audit.DSN)
	assert.True(t, cfg.Seed.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "departamento.yml")
	require.NoError(t, os.WriteFile(path, []byte(`server:
  addr: ":9000"
  base_path: /api
validation:
  enforce_cargo_enum: false
logging:
  level: debug
`), 0o644))
	t.Setenv("DEPARTAMENTO_LOGGING_FORMAT", "console")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.False(t, cfg.Validation.EnforceCargoEnum)
	assert.True(t, cfg.Validation.EnforceNotFuture)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("DEPARTAMENTO_LOGGING_LEVEL", "verbose")
	_, err := Load(viper.New(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")

	_, err = Load(viper.New(), filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestValidateBasePath(t *testing.T) {
	cfg := Default()
	cfg.Server.BasePath = "api"
	assert.Error(t, cfg.Validate())
}

func TestLoadSeed(t *testing.T) {
	seed, err := LoadSeed("")
	require.NoError(t, err)
	require.Len(t, seed.Agentes, 1)
	require.Len(t, seed.Casos, 1)
	assert.Equal(t, "Rommel Carneiro", seed.Agentes[0].Nome)
	assert.Equal(t, "1992-10-04", seed.Agentes[0].DataDeIncorporacao)
	assert.Equal(t, seed.Agentes[0].ID, seed.Casos[0].Caso().AgenteID)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)

	_, err = SeedFromYAML([]byte("agentes: [oops"))
	assert.Error(t, err)
}
