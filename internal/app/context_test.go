package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"departamento/internal/config"
	"departamento/internal/domain"
	"departamento/internal/engine"
	"departamento/internal/events"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Audit.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	return cfg
}

func TestNewSeedsAndAudits(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), nil)
	require.NoError(t, err)
	defer a.Close()

	agentes, err := a.Engine.ListAgentes(domain.AgenteFilter{})
	require.NoError(t, err)
	require.Len(t, agentes, 1)
	assert.Equal(t, "Rommel Carneiro", agentes[0].Nome)

	evts, err := a.Engine.ListEvents(context.Background(), events.Filter{})
	require.NoError(t, err)
	assert.Len(t, evts, 2)
}

func TestNewWithoutAuditOrSeed(t *testing.T) {
	cfg := testConfig(t)
	cfg.Audit.Enabled = false
	cfg.Seed.Enabled = false
	cfg.Validation.EnforceCargoEnum = false
	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Empty(t, a.Engine.Agentes.FindAll())
	_, err = a.Engine.ListEvents(context.Background(), events.Filter{})
	assert.ErrorIs(t, err, engine.ErrAuditDisabled)
	_, err = a.Engine.CreateAgente(context.Background(), domain.Agente{Nome: "Ana", DataDeIncorporacao: "2020-01-01", Cargo: "xerife"})
	assert.NoError(t, err)
}

func TestNewWithSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yml")
	require.NoError(t, os.WriteFile(path, []byte(`agentes:
  - nome: Letícia Almeida
    dataDeIncorporacao: "2023-03-10"
    cargo: delegado
  - nome: Bruno Dias
    dataDeIncorporacao: "2019-07-22"
    cargo: perito
`), 0o644))
	cfg := testConfig(t)
	cfg.Seed.File = path
	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()
	assert.Len(t, a.Engine.Agentes.FindAll(), 2)

	cfg = testConfig(t)
	cfg.Seed.File = filepath.Join(t.TempDir(), "missing.yml")
	_, err = New(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestDefaultAuditLogIsPerApp(t *testing.T) {
	ctx := context.Background()
	first, err := New(ctx, config.Default(), nil)
	require.NoError(t, err)
	defer first.Close()
	_, err = first.Engine.CreateAgente(ctx, domain.Agente{Nome: "Ana", DataDeIncorporacao: "2020-01-01", Cargo: "delegado"})
	require.NoError(t, err)

	second, err := New(ctx, config.Default(), nil)
	require.NoError(t, err)
	defer second.Close()

	firstEvts, err := first.Engine.ListEvents(ctx, events.Filter{})
	require.NoError(t, err)
	assert.Len(t, firstEvts, 3)
	secondEvts, err := second.Engine.ListEvents(ctx, events.Filter{})
	require.NoError(t, err)
	assert.Len(t, secondEvts, 2)
}
