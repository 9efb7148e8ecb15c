package validation

import (
	"fmt"
	"strings"
	"time"

	"departamento/internal/domain"
)

const (
	MsgRequired       = "Campo obrigatório"
	MsgNull           = "Campo não pode ser nulo"
	MsgDateFormat     = "Campo dataDeIncorporacao deve seguir a formatação 'YYYY-MM-DD' e ser uma data válida"
	MsgDateFuture     = "Campo dataDeIncorporacao não pode ser uma data futura"
	MsgStatus         = "O campo 'status' pode ser somente 'aberto' ou 'solucionado'"
	MsgUUID           = "O campo deve ser um UUID válido"
	MsgAgenteUUID     = "ID do agente deve ser UUID válido"
	MsgAgenteNotFound = "Agente não encontrado"
	MsgIDImmutable    = "O campo 'id' não pode ser alterado"
	MsgIDDuplicate    = "Já existe um registro com este 'id'"
)

func msgCargo() string {
	return fmt.Sprintf("O campo 'cargo' deve ser um dos valores: %s", strings.Join(domain.Cargos, ", "))
}

// CheckNome records a failure for nome, if any.
func CheckNome(errs FieldErrors, nome string) {
	if !ValidateRequiredString(nome) {
		errs.Add("nome", MsgRequired)
	}
}

func CheckDataDeIncorporacao(errs FieldErrors, p Policy, value string, now time.Time) {
	switch {
	case !ValidateRequiredString(value):
		errs.Add("dataDeIncorporacao", MsgRequired)
	case !ValidateDate(value):
		errs.Add("dataDeIncorporacao", MsgDateFormat)
	case p.EnforceNotFuture && !ValidateNotFuture(value, now):
		errs.Add("dataDeIncorporacao", MsgDateFuture)
	}
}

func CheckCargo(errs FieldErrors, p Policy, value string) {
	switch {
	case !ValidateRequiredString(value):
		errs.Add("cargo", MsgRequired)
	case !ValidateCargo(value, p.EnforceCargoEnum):
		errs.Add("cargo", msgCargo())
	}
}

func CheckTitulo(errs FieldErrors, value string) {
	if !ValidateRequiredString(value) {
		errs.Add("titulo", MsgRequired)
	}
}

func CheckDescricao(errs FieldErrors, value string) {
	if !ValidateRequiredString(value) {
		errs.Add("descricao", MsgRequired)
	}
}

func CheckStatus(errs FieldErrors, value string) {
	if !ValidateStatus(value) {
		errs.Add("status", MsgStatus)
	}
}

// CheckAgenteIDFormat only checks shape; existence is the integrity checker's job.
func CheckAgenteIDFormat(errs FieldErrors, value string) {
	switch {
	case !ValidateRequiredString(value):
		errs.Add("agente_id", MsgRequired)
	case !ValidateUUID(value):
		errs.Add("agente_id", MsgAgenteUUID)
	}
}

// CheckAgente runs every agente field check.
func CheckAgente(p Policy, a domain.Agente, now time.Time) FieldErrors {
	errs := FieldErrors{}
	CheckNome(errs, a.Nome)
	CheckDataDeIncorporacao(errs, p, a.DataDeIncorporacao, now)
	CheckCargo(errs, p, a.Cargo)
	return errs
}

// CheckCaso runs every caso field check except agente existence.
func CheckCaso(c domain.Caso) FieldErrors {
	errs := FieldErrors{}
	CheckTitulo(errs, c.Titulo)
	CheckDescricao(errs, c.Descricao)
	CheckStatus(errs, c.Status)
	CheckAgenteIDFormat(errs, c.AgenteID)
	return errs
}
