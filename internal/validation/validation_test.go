package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"departamento/internal/domain"
)

func TestValidateDate(t *testing.T) {
	cases := map[string]bool{
		"2023-02-28": true,
		"2024-02-29": true,
		"2023-02-30": false,
		"2023-13-01": false,
		"2023-2-01":  false,
		"23-02-01":   false,
		"2023/02/01": false,
		"":           false,
		"2023-02-01T00:00:00Z": false,
	}
	for in, want := range cases {
		assert.Equal(t, want, ValidateDate(in), in)
	}
}

func TestValidateNotFuture(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)
	assert.True(t, ValidateNotFuture("2024-05-10", now), "today")
	assert.True(t, ValidateNotFuture("1992-10-04", now))
	assert.False(t, ValidateNotFuture("2024-05-11", now))
	assert.False(t, ValidateNotFuture("garbage", now))
}

func TestValidateCargo(t *testing.T) {
	assert.True(t, ValidateCargo("delegado", true))
	assert.False(t, ValidateCargo("xerife", true))
	assert.True(t, ValidateCargo("xerife", false))
	assert.False(t, ValidateCargo("", false))
	assert.False(t, ValidateCargo("  ", false))
}

func TestValidateStatusAndUUID(t *testing.T) {
	assert.True(t, ValidateStatus("aberto"))
	assert.True(t, ValidateStatus("solucionado"))
	assert.False(t, ValidateStatus("Aberto"))
	assert.False(t, ValidateStatus("invalid_status"))

	assert.True(t, ValidateUUID("401bccf5-cf9e-489d-8412-446cd169a0f1"))
	assert.False(t, ValidateUUID("401bccf5cf9e489d8412446cd169a0f1"))
	assert.False(t, ValidateUUID("{401bccf5-cf9e-489d-8412-446cd169a0f1}"))
	assert.False(t, ValidateUUID("not-a-uuid"))
}

func TestCheckAgenteAggregatesFields(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	errs := CheckAgente(Strict(), domain.Agente{DataDeIncorporacao: "2030-01-01", Cargo: "xerife"}, now)
	assert.Equal(t, MsgRequired, errs["nome"])
	assert.Equal(t, MsgDateFuture, errs["dataDeIncorporacao"])
	assert.Contains(t, errs["cargo"], "delegado")

	lenient := CheckAgente(Policy{}, domain.Agente{Nome: "Ana", DataDeIncorporacao: "2030-01-01", Cargo: "xerife"}, now)
	assert.True(t, lenient.Empty())
}

func TestCheckCaso(t *testing.T) {
	errs := CheckCaso(domain.Caso{Titulo: "X", Status: "fechado", AgenteID: "123"})
	assert.Len(t, errs, 3)
	assert.Equal(t, MsgRequired, errs["descricao"])
	assert.Equal(t, MsgStatus, errs["status"])
	assert.Equal(t, MsgAgenteUUID, errs["agente_id"])
}
