package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"departamento/internal/domain"
	"departamento/internal/validation"
)

const msgAgenteNotFound = "Agente não encontrado"

func (h handlers) registerAgentes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-agentes",
		Method:      http.MethodGet,
		Path:        "/agentes",
		Summary:     "Lista agentes",
		Tags:        []string{"Agentes"},
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *listAgentesInput) (*agentesOutput, error) {
		items, err := h.e.ListAgentes(domain.AgenteFilter{Cargo: input.Cargo, Sort: input.Sort})
		if err != nil {
			return nil, h.handleError(err, msgAgenteNotFound)
		}
		return &agentesOutput{Body: nonNil(items)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-agente",
		Method:      http.MethodGet,
		Path:        "/agentes/{id}",
		Summary:     "Busca agente por id",
		Tags:        []string{"Agentes"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *idPath) (*agenteOutput, error) {
		if !validation.ValidateUUID(input.ID) {
			return nil, invalidID()
		}
		a, err := h.e.GetAgente(input.ID)
		if err != nil {
			return nil, h.handleError(err, msgAgenteNotFound)
		}
		return &agenteOutput{Body: a}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-agente",
		Method:        http.MethodPost,
		Path:          "/agentes",
		Summary:       "Cria agente",
		Tags:          []string{"Agentes"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body AgenteRequest `json:"body" required:"false"`
	}) (*agenteOutput, error) {
		a, err := h.e.CreateAgente(ctx, input.Body.toDomain())
		if err != nil {
			return nil, h.handleError(err, msgAgenteNotFound)
		}
		return &agenteOutput{Body: a}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-agente",
		Method:      http.MethodPut,
		Path:        "/agentes/{id}",
		Summary:     "Substitui agente",
		Tags:        []string{"Agentes"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ID   string        `path:"id"`
		Body AgenteRequest `json:"body" required:"false"`
	}) (*agenteOutput, error) {
		if !validation.ValidateUUID(input.ID) {
			return nil, invalidID()
		}
		a, err := h.e.UpdateAgente(ctx, input.ID, input.Body.toDomain())
		if err != nil {
			return nil, h.handleError(err, msgAgenteNotFound)
		}
		return &agenteOutput{Body: a}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "patch-agente",
		Method:      http.MethodPatch,
		Path:        "/agentes/{id}",
		Summary:     "Atualiza agente parcialmente",
		Tags:        []string{"Agentes"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ID   string             `path:"id"`
		Body AgentePatchRequest `json:"body" required:"false"`
	}) (*agenteOutput, error) {
		if !validation.ValidateUUID(input.ID) {
			return nil, invalidID()
		}
		if nulls := nullFields(ctx); len(nulls) > 0 {
			return nil, newAPIError(http.StatusBadRequest, msgInvalidParams, nulls)
		}
		a, err := h.e.PatchAgente(ctx, input.ID, input.Body.toDomain())
		if err != nil {
			return nil, h.handleError(err, msgAgenteNotFound)
		}
		return &agenteOutput{Body: a}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-agente",
		Method:        http.MethodDelete,
		Path:          "/agentes/{id}",
		Summary:       "Remove agente",
		Description:   "Casos que referenciam o agente não são alterados.",
		Tags:          []string{"Agentes"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *idPath) (*struct{}, error) {
		if !validation.ValidateUUID(input.ID) {
			return nil, invalidID()
		}
		if err := h.e.DeleteAgente(ctx, input.ID); err != nil {
			return nil, h.handleError(err, msgAgenteNotFound)
		}
		return nil, nil
	})
}
