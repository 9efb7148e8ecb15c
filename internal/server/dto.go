package server

import (
	"departamento/internal/domain"
)

// Request payloads. Every field is optional at the schema level; missing and
// malformed values are reported per field by the validation package.

type AgenteRequest struct {
	ID                 *string `json:"id,omitempty"`
	Nome               string  `json:"nome,omitempty" example:"Rommel Carneiro"`
	DataDeIncorporacao string  `json:"dataDeIncorporacao,omitempty" example:"1992-10-04"`
	Cargo              string  `json:"cargo,omitempty" example:"delegado"`
}

type AgentePatchRequest struct {
	ID                 *string `json:"id,omitempty" nullable:"true"`
	Nome               *string `json:"nome,omitempty" nullable:"true"`
	DataDeIncorporacao *string `json:"dataDeIncorporacao,omitempty" nullable:"true"`
	Cargo              *string `json:"cargo,omitempty" nullable:"true"`
}

type CasoRequest struct {
	ID        *string `json:"id,omitempty"`
	Titulo    string  `json:"titulo,omitempty" example:"homicidio"`
	Descricao string  `json:"descricao,omitempty" example:"Disparos foram reportados às 22:33 do dia 10/07/2007"`
	Status    string  `json:"status,omitempty" example:"aberto"`
	AgenteID  string  `json:"agente_id,omitempty" example:"401bccf5-cf9e-489d-8412-446cd169a0f1"`
}

type CasoPatchRequest struct {
	ID        *string `json:"id,omitempty" nullable:"true"`
	Titulo    *string `json:"titulo,omitempty" nullable:"true"`
	Descricao *string `json:"descricao,omitempty" nullable:"true"`
	Status    *string `json:"status,omitempty" nullable:"true"`
	AgenteID  *string `json:"agente_id,omitempty" nullable:"true"`
}

// Inputs

type idPath struct {
	ID string `path:"id" doc:"UUID do recurso"`
}

type listAgentesInput struct {
	Cargo string `query:"cargo" doc:"Filtra pelo cargo exato"`
	Sort  string `query:"sort" doc:"dataDeIncorporacao ou -dataDeIncorporacao; outros valores mantêm a ordem de inserção"`
}

type listCasosInput struct {
	AgenteID string `query:"agente_id" doc:"Filtra pelo agente responsável"`
	Status   string `query:"status" doc:"aberto ou solucionado"`
	Q        string `query:"q" doc:"Busca em título e descrição, sem diferenciar maiúsculas"`
}

type listEventosInput struct {
	Limit      int    `query:"limit" doc:"Máximo de eventos (padrão 50, limite 200)"`
	EntityKind string `query:"entity_kind" doc:"agente ou caso"`
	EntityID   string `query:"entity_id"`
}

// Outputs

type agenteOutput struct {
	Body domain.Agente `json:"body"`
}

type agentesOutput struct {
	Body []domain.Agente `json:"body"`
}

type casoOutput struct {
	Body domain.Caso `json:"body"`
}

type casosOutput struct {
	Body []domain.Caso `json:"body"`
}

type eventosOutput struct {
	Body []domain.Event `json:"body"`
}

func (r AgenteRequest) toDomain() domain.Agente {
	a := domain.Agente{Nome: r.Nome, DataDeIncorporacao: r.DataDeIncorporacao, Cargo: r.Cargo}
	if r.ID != nil {
		a.ID = *r.ID
	}
	return a
}

func (r AgentePatchRequest) toDomain() domain.AgentePatch {
	return domain.AgentePatch{
		ID:                 r.ID,
		Nome:               r.Nome,
		DataDeIncorporacao: r.DataDeIncorporacao,
		Cargo:              r.Cargo,
	}
}

func (r CasoRequest) toDomain() domain.Caso {
	c := domain.Caso{Titulo: r.Titulo, Descricao: r.Descricao, Status: r.Status, AgenteID: r.AgenteID}
	if r.ID != nil {
		c.ID = *r.ID
	}
	return c
}

func (r CasoPatchRequest) toDomain() domain.CasoPatch {
	return domain.CasoPatch{
		ID:        r.ID,
		Titulo:    r.Titulo,
		Descricao: r.Descricao,
		Status:    r.Status,
		AgenteID:  r.AgenteID,
	}
}

// nonNil keeps empty listings encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
