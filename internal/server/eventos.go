package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"departamento/internal/events"
)

func (h handlers) registerEventos(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-eventos",
		Method:      http.MethodGet,
		Path:        "/eventos",
		Summary:     "Lista o log de alterações",
		Description: "Eventos mais recentes primeiro.",
		Tags:        []string{"Eventos"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *listEventosInput) (*eventosOutput, error) {
		switch input.EntityKind {
		case "", "agente", "caso":
		default:
			return nil, newAPIError(http.StatusBadRequest, msgInvalidParams, map[string]string{
				"entity_kind": "O parâmetro 'entity_kind' aceita somente 'agente' ou 'caso'",
			})
		}
		if input.Limit < 0 {
			return nil, newAPIError(http.StatusBadRequest, msgInvalidParams, map[string]string{
				"limit": "O parâmetro 'limit' deve ser positivo",
			})
		}
		items, err := h.e.ListEvents(ctx, events.Filter{
			Limit:      input.Limit,
			EntityKind: input.EntityKind,
			EntityID:   input.EntityID,
		})
		if err != nil {
			return nil, h.handleError(err, "")
		}
		return &eventosOutput{Body: nonNil(items)}, nil
	})
}
