package repo

import (
	"testing"
	"time"

	"go.uber.org/goleak"

	"departamento/internal/validation"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newStores(t *testing.T) (*Agentes, *Casos) {
	t.Helper()
	agentes := NewAgentes(validation.Strict())
	agentes.Now = func() time.Time { return fixedNow }
	return agentes, NewCasos(agentes)
}

func strPtr(s string) *string { return &s }
