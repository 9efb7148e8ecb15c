package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"departamento/internal/domain"
	"departamento/internal/validation"
)

const msgCasoNotFound = "Caso não encontrado"

func (h handlers) registerCasos(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-casos",
		Method:      http.MethodGet,
		Path:        "/casos",
		Summary:     "Lista casos",
		Tags:        []string{"Casos"},
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *listCasosInput) (*casosOutput, error) {
		items, err := h.e.ListCasos(domain.CasoFilter{AgenteID: input.AgenteID, Status: input.Status, Q: input.Q})
		if err != nil {
			return nil, h.handleError(err, msgCasoNotFound)
		}
		return &casosOutput{Body: nonNil(items)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-caso",
		Method:      http.MethodGet,
		Path:        "/casos/{id}",
		Summary:     "Busca caso por id",
		Tags:        []string{"Casos"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *idPath) (*casoOutput, error) {
		if !validation.ValidateUUID(input.ID) {
			return nil, invalidID()
		}
		c, err := h.e.GetCaso(input.ID)
		if err != nil {
			return nil, h.handleError(err, msgCasoNotFound)
		}
		return &casoOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-caso",
		Method:        http.MethodPost,
		Path:          "/casos",
		Summary:       "Cria caso",
		Tags:          []string{"Casos"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		Body CasoRequest `json:"body" required:"false"`
	}) (*casoOutput, error) {
		c, err := h.e.CreateCaso(ctx, input.Body.toDomain())
		if err != nil {
			return nil, h.handleError(err, msgCasoNotFound)
		}
		return &casoOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-caso",
		Method:      http.MethodPut,
		Path:        "/casos/{id}",
		Summary:     "Substitui caso",
		Tags:        []string{"Casos"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ID   string      `path:"id"`
		Body CasoRequest `json:"body" required:"false"`
	}) (*casoOutput, error) {
		if !validation.ValidateUUID(input.ID) {
			return nil, invalidID()
		}
		c, err := h.e.UpdateCaso(ctx, input.ID, input.Body.toDomain())
		if err != nil {
			return nil, h.handleError(err, msgCasoNotFound)
		}
		return &casoOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "patch-caso",
		Method:      http.MethodPatch,
		Path:        "/casos/{id}",
		Summary:     "Atualiza caso parcialmente",
		Tags:        []string{"Casos"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ID   string           `path:"id"`
		Body CasoPatchRequest `json:"body" required:"false"`
	}) (*casoOutput, error) {
		if !validation.ValidateUUID(input.ID) {
			return nil, invalidID()
		}
		if nulls := nullFields(ctx); len(nulls) > 0 {
			return nil, newAPIError(http.StatusBadRequest, msgInvalidParams, nulls)
		}
		c, err := h.e.PatchCaso(ctx, input.ID, input.Body.toDomain())
		if err != nil {
			return nil, h.handleError(err, msgCasoNotFound)
		}
		return &casoOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-caso",
		Method:        http.MethodDelete,
		Path:          "/casos/{id}",
		Summary:       "Remove caso",
		Tags:          []string{"Casos"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *idPath) (*struct{}, error) {
		if !validation.ValidateUUID(input.ID) {
			return nil, invalidID()
		}
		if err := h.e.DeleteCaso(ctx, input.ID); err != nil {
			return nil, h.handleError(err, msgCasoNotFound)
		}
		return nil, nil
	})
}
