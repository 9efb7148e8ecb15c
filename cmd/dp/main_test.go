package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"departamento/internal/config"
	"departamento/internal/engine"
	"departamento/internal/server"
	"departamento/internal/validation"
	departamentosdk "departamento/sdk/go"
)

func newSeededServer(t *testing.T) {
	t.Helper()
	e := engine.New(validation.Strict(), nil, nil)
	seed, err := config.LoadSeed("")
	require.NoError(t, err)
	require.NoError(t, e.Seed(context.Background(), seed))
	handler, err := server.New(server.Config{Engine: e})
	require.NoError(t, err)
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	viper.Set("client.server", ts.URL)
	t.Cleanup(func() { viper.Set("client.server", "") })
}

func TestAgentesListTable(t *testing.T) {
	newSeededServer(t)
	var out bytes.Buffer
	cmd := agentesCmd(&out)
	cmd.SetArgs([]string{"list", "--cargo", "delegado"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Rommel Carneiro")
	assert.Contains(t, out.String(), "401bccf5-cf9e-489d-8412-446cd169a0f1")
}

func TestCasosListJSON(t *testing.T) {
	newSeededServer(t)
	viper.Set("json", true)
	t.Cleanup(func() { viper.Set("json", false) })

	var out bytes.Buffer
	cmd := casosCmd(&out)
	cmd.SetArgs([]string{"list", "--status", "aberto"})
	require.NoError(t, cmd.Execute())
	var casos []departamentosdk.Caso
	require.NoError(t, json.Unmarshal(out.Bytes(), &casos))
	require.Len(t, casos, 1)
	assert.Equal(t, "f5fb2ad5-22a8-4cb4-90f2-8733517a0d46", casos[0].ID)
}

func TestCasosGetReportsAPIError(t *testing.T) {
	newSeededServer(t)
	var out bytes.Buffer
	cmd := casosCmd(&out)
	cmd.SetArgs([]string{"get", "not-a-uuid"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	err := cmd.Execute()
	var apiErr *departamentosdk.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "O campo 'id' deve ser um UUID válido", apiErr.Errors["id"])
}
