package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"departamento/internal/domain"
	"departamento/internal/validation"
)

const unknownAgente = "9b2f6a7e-1c3d-4e5f-8a9b-0c1d2e3f4a5b"

func seedAgente(t *testing.T, agentes *Agentes) domain.Agente {
	t.Helper()
	a, err := agentes.Create(domain.Agente{Nome: "Ana", DataDeIncorporacao: "2020-01-01", Cargo: "delegado"})
	require.NoError(t, err)
	return a
}

func TestCreateCasoReferentialIntegrity(t *testing.T) {
	agentes, casos := newStores(t)
	a := seedAgente(t, agentes)

	c, err := casos.Create(domain.Caso{Titulo: "X", Descricao: "Y", Status: "aberto", AgenteID: a.ID})
	require.NoError(t, err)
	assert.True(t, validation.ValidateUUID(c.ID))

	_, err = casos.Create(domain.Caso{Titulo: "X", Descricao: "Y", Status: "aberto", AgenteID: unknownAgente})
	var rie ReferentialIntegrityError
	require.ErrorAs(t, err, &rie)
	assert.Equal(t, unknownAgente, rie.AgenteID)

	_, err = casos.Create(domain.Caso{Titulo: "X", Descricao: "Y", Status: "aberto", AgenteID: "nope"})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, validation.MsgAgenteUUID, ve.Fields["agente_id"])

	assert.Len(t, casos.FindAll(), 1)
}

func TestUpdateCasoLeavesStoreOnFailure(t *testing.T) {
	agentes, casos := newStores(t)
	a := seedAgente(t, agentes)
	c, err := casos.Create(domain.Caso{Titulo: "X", Descricao: "Y", Status: "aberto", AgenteID: a.ID})
	require.NoError(t, err)

	_, err = casos.Update(c.ID, domain.Caso{Titulo: "X2", Descricao: "Y2", Status: "solucionado", AgenteID: unknownAgente})
	var rie ReferentialIntegrityError
	require.ErrorAs(t, err, &rie)
	stored, _ := casos.FindByID(c.ID)
	assert.Equal(t, c, stored)

	_, err = casos.Update(unknownAgente, domain.Caso{Titulo: "X2", Descricao: "Y2", Status: "solucionado", AgenteID: a.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := casos.Update(c.ID, domain.Caso{Titulo: "X2", Descricao: "Y2", Status: "solucionado", AgenteID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, c.ID, updated.ID)
	assert.Equal(t, "solucionado", updated.Status)
}

func TestPartialUpdateCaso(t *testing.T) {
	agentes, casos := newStores(t)
	a := seedAgente(t, agentes)
	b := seedAgente(t, agentes)
	c, err := casos.Create(domain.Caso{Titulo: "X", Descricao: "Y", Status: "aberto", AgenteID: a.ID})
	require.NoError(t, err)

	_, err = casos.PartialUpdate(c.ID, domain.CasoPatch{Status: strPtr("invalid_status")})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, validation.MsgStatus, ve.Fields["status"])
	stored, _ := casos.FindByID(c.ID)
	assert.Equal(t, c, stored)

	_, err = casos.PartialUpdate(c.ID, domain.CasoPatch{AgenteID: strPtr(unknownAgente)})
	var rie ReferentialIntegrityError
	require.ErrorAs(t, err, &rie)

	got, err := casos.PartialUpdate(c.ID, domain.CasoPatch{AgenteID: strPtr(b.ID), Status: strPtr("solucionado")})
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.AgenteID)
	assert.Equal(t, "solucionado", got.Status)
	assert.Equal(t, "X", got.Titulo)

	_, err = casos.PartialUpdate(c.ID, domain.CasoPatch{ID: strPtr(unknownAgente)})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, validation.MsgIDImmutable, ve.Fields["id"])
}

func TestPartialUpdateWithoutAgenteSkipsIntegrity(t *testing.T) {
	agentes, casos := newStores(t)
	a := seedAgente(t, agentes)
	c, err := casos.Create(domain.Caso{Titulo: "X", Descricao: "Y", Status: "aberto", AgenteID: a.ID})
	require.NoError(t, err)
	require.True(t, agentes.Remove(a.ID))

	got, err := casos.PartialUpdate(c.ID, domain.CasoPatch{Titulo: strPtr("Novo")})
	require.NoError(t, err)
	assert.Equal(t, "Novo", got.Titulo)
	assert.Equal(t, a.ID, got.AgenteID)
}

func TestDeletingAgenteLeavesDanglingCaso(t *testing.T) {
	agentes, casos := newStores(t)
	a := seedAgente(t, agentes)
	c, err := casos.Create(domain.Caso{Titulo: "X", Descricao: "Y", Status: "aberto", AgenteID: a.ID})
	require.NoError(t, err)

	require.True(t, agentes.Remove(a.ID))
	assert.False(t, agentes.Remove(a.ID))
	stored, err := casos.FindByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, stored.AgenteID)
	assert.False(t, IntegrityChecker{Agentes: agentes}.CheckAgentExists(a.ID))
}

func TestFindFilteredCasos(t *testing.T) {
	agentes, casos := newStores(t)
	a := seedAgente(t, agentes)
	b := seedAgente(t, agentes)
	roubo, err := casos.Create(domain.Caso{Titulo: "Roubo no banco", Descricao: "Assalto à agência central", Status: "aberto", AgenteID: a.ID})
	require.NoError(t, err)
	furto, err := casos.Create(domain.Caso{Titulo: "Furto", Descricao: "Celular levado no BANCO da praça", Status: "solucionado", AgenteID: b.ID})
	require.NoError(t, err)
	_, err = casos.Create(domain.Caso{Titulo: "Homicídio", Descricao: "Disparos", Status: "aberto", AgenteID: b.ID})
	require.NoError(t, err)

	for _, q := range []string{"banco", "BANCO", "Banco"} {
		got, err := casos.FindFiltered(domain.CasoFilter{Q: q})
		require.NoError(t, err)
		assert.Equal(t, []domain.Caso{roubo, furto}, got, q)
	}

	got, err := casos.FindFiltered(domain.CasoFilter{AgenteID: b.ID, Status: "solucionado"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Caso{furto}, got)

	got, err = casos.FindFiltered(domain.CasoFilter{Status: "aberto", Q: "agência"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Caso{roubo}, got)

	_, err = casos.FindFiltered(domain.CasoFilter{Status: "fechado"})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "status")

	_, err = casos.FindFiltered(domain.CasoFilter{AgenteID: "123"})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "agente_id")
}
