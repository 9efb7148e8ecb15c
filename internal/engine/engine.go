package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"departamento/internal/config"
	"departamento/internal/domain"
	"departamento/internal/events"
	"departamento/internal/repo"
	"departamento/internal/validation"
)

// ErrAuditDisabled is returned by ListEvents when no event log is configured.
var ErrAuditDisabled = errors.New("audit log disabled")

// Engine exposes the agente and caso operations and records each successful
// write in the event log.
type Engine struct {
	Agentes *repo.Agentes
	Casos   *repo.Casos
	Events  *events.Writer
	Logger  *zap.Logger
}

// New wires both stores. ev may be nil to disable the event log.
func New(policy validation.Policy, ev *events.Writer, logger *zap.Logger) Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	agentes := repo.NewAgentes(policy)
	return Engine{
		Agentes: agentes,
		Casos:   repo.NewCasos(agentes),
		Events:  ev,
		Logger:  logger,
	}
}

// record never fails the caller; the write it describes has already happened.
func (e Engine) record(ctx context.Context, evtType, kind, id string, payload events.EventPayload) {
	e.Logger.Debug("entity changed", zap.String("event", evtType), zap.String("entity_id", id))
	if e.Events == nil {
		return
	}
	if err := e.Events.Append(ctx, evtType, kind, id, payload); err != nil {
		e.Logger.Warn("audit append failed", zap.String("event", evtType), zap.String("entity_id", id), zap.Error(err))
	}
}

func agentePayload(a domain.Agente) events.EventPayload {
	return events.EventPayload{"nome": a.Nome, "dataDeIncorporacao": a.DataDeIncorporacao, "cargo": a.Cargo}
}

func casoPayload(c domain.Caso) events.EventPayload {
	return events.EventPayload{"titulo": c.Titulo, "status": c.Status, "agente_id": c.AgenteID}
}

func (e Engine) ListAgentes(f domain.AgenteFilter) ([]domain.Agente, error) {
	return e.Agentes.FindFiltered(f)
}

func (e Engine) GetAgente(id string) (domain.Agente, error) {
	return e.Agentes.FindByID(id)
}

func (e Engine) CreateAgente(ctx context.Context, a domain.Agente) (domain.Agente, error) {
	created, err := e.Agentes.Create(a)
	if err != nil {
		return domain.Agente{}, err
	}
	e.record(ctx, "agente.created", "agente", created.ID, agentePayload(created))
	return created, nil
}

func (e Engine) UpdateAgente(ctx context.Context, id string, a domain.Agente) (domain.Agente, error) {
	updated, err := e.Agentes.Update(id, a)
	if err != nil {
		return domain.Agente{}, err
	}
	e.record(ctx, "agente.updated", "agente", id, agentePayload(updated))
	return updated, nil
}

func (e Engine) PatchAgente(ctx context.Context, id string, p domain.AgentePatch) (domain.Agente, error) {
	updated, err := e.Agentes.PartialUpdate(id, p)
	if err != nil {
		return domain.Agente{}, err
	}
	e.record(ctx, "agente.patched", "agente", id, agentePayload(updated))
	return updated, nil
}

// DeleteAgente removes the agente without touching casos that reference it.
func (e Engine) DeleteAgente(ctx context.Context, id string) error {
	if !e.Agentes.Remove(id) {
		return repo.ErrNotFound
	}
	e.record(ctx, "agente.deleted", "agente", id, nil)
	return nil
}

func (e Engine) ListCasos(f domain.CasoFilter) ([]domain.Caso, error) {
	return e.Casos.FindFiltered(f)
}

func (e Engine) GetCaso(id string) (domain.Caso, error) {
	return e.Casos.FindByID(id)
}

func (e Engine) CreateCaso(ctx context.Context, c domain.Caso) (domain.Caso, error) {
	created, err := e.Casos.Create(c)
	if err != nil {
		return domain.Caso{}, err
	}
	e.record(ctx, "caso.created", "caso", created.ID, casoPayload(created))
	return created, nil
}

func (e Engine) UpdateCaso(ctx context.Context, id string, c domain.Caso) (domain.Caso, error) {
	updated, err := e.Casos.Update(id, c)
	if err != nil {
		return domain.Caso{}, err
	}
	e.record(ctx, "caso.updated", "caso", id, casoPayload(updated))
	return updated, nil
}

func (e Engine) PatchCaso(ctx context.Context, id string, p domain.CasoPatch) (domain.Caso, error) {
	updated, err := e.Casos.PartialUpdate(id, p)
	if err != nil {
		return domain.Caso{}, err
	}
	e.record(ctx, "caso.patched", "caso", id, casoPayload(updated))
	return updated, nil
}

func (e Engine) DeleteCaso(ctx context.Context, id string) error {
	if !e.Casos.Remove(id) {
		return repo.ErrNotFound
	}
	e.record(ctx, "caso.deleted", "caso", id, nil)
	return nil
}

func (e Engine) ListEvents(ctx context.Context, f events.Filter) ([]domain.Event, error) {
	if e.Events == nil {
		return nil, ErrAuditDisabled
	}
	return e.Events.List(ctx, f)
}

// Seed loads fixtures through the regular create path, agentes first.
func (e Engine) Seed(ctx context.Context, s *config.Seed) error {
	if s == nil {
		return nil
	}
	for _, a := range s.Agentes {
		if _, err := e.CreateAgente(ctx, a.Agente()); err != nil {
			return fmt.Errorf("seed agente %s: %w", a.ID, err)
		}
	}
	for _, c := range s.Casos {
		if _, err := e.CreateCaso(ctx, c.Caso()); err != nil {
			return fmt.Errorf("seed caso %s: %w", c.ID, err)
		}
	}
	e.Logger.Info("seeded stores", zap.Int("agentes", len(s.Agentes)), zap.Int("casos", len(s.Casos)))
	return nil
}
