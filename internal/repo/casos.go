package repo

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"departamento/internal/domain"
	"departamento/internal/validation"
)

// Casos owns the caso collection. Every write that sets agente_id is checked
// against the agente store before it is committed.
type Casos struct {
	store     *Store[domain.Caso]
	integrity IntegrityChecker
}

func NewCasos(agentes AgenteLookup) *Casos {
	return &Casos{
		store:     NewStore(func(c domain.Caso) string { return c.ID }),
		integrity: IntegrityChecker{Agentes: agentes},
	}
}

func (r *Casos) Create(c domain.Caso) (domain.Caso, error) {
	errs := validation.CheckCaso(c)
	if c.ID == "" {
		c.ID = uuid.NewString()
	} else if !validation.ValidateUUID(c.ID) {
		errs.Add("id", validation.MsgUUID)
	}
	if err := newValidationError(errs); err != nil {
		return domain.Caso{}, err
	}
	if err := r.integrity.verify(c.AgenteID); err != nil {
		return domain.Caso{}, err
	}
	if err := r.store.Add(c); err != nil {
		if errors.Is(err, errDuplicateID) {
			return domain.Caso{}, ValidationError{Fields: validation.FieldErrors{"id": validation.MsgIDDuplicate}}
		}
		return domain.Caso{}, err
	}
	return c, nil
}

func (r *Casos) FindAll() []domain.Caso {
	return r.store.All()
}

func (r *Casos) FindByID(id string) (domain.Caso, error) {
	c, ok := r.store.Get(id)
	if !ok {
		return domain.Caso{}, ErrNotFound
	}
	return c, nil
}

func (r *Casos) Update(id string, c domain.Caso) (domain.Caso, error) {
	return r.store.Replace(id, func(cur domain.Caso) (domain.Caso, error) {
		errs := validation.CheckCaso(c)
		if c.ID != "" && c.ID != cur.ID {
			errs.Add("id", validation.MsgIDImmutable)
		}
		if err := newValidationError(errs); err != nil {
			return cur, err
		}
		if err := r.integrity.verify(c.AgenteID); err != nil {
			return cur, err
		}
		c.ID = cur.ID
		return c, nil
	})
}

// PartialUpdate merges the touched fields of p. The agente reference is only
// checked when p touches agente_id.
func (r *Casos) PartialUpdate(id string, p domain.CasoPatch) (domain.Caso, error) {
	return r.store.Replace(id, func(cur domain.Caso) (domain.Caso, error) {
		errs := validation.FieldErrors{}
		next := cur
		if p.ID != nil && *p.ID != cur.ID {
			errs.Add("id", validation.MsgIDImmutable)
		}
		if p.Titulo != nil {
			validation.CheckTitulo(errs, *p.Titulo)
			next.Titulo = *p.Titulo
		}
		if p.Descricao != nil {
			validation.CheckDescricao(errs, *p.Descricao)
			next.Descricao = *p.Descricao
		}
		if p.Status != nil {
			validation.CheckStatus(errs, *p.Status)
			next.Status = *p.Status
		}
		if p.AgenteID != nil {
			validation.CheckAgenteIDFormat(errs, *p.AgenteID)
			next.AgenteID = *p.AgenteID
		}
		if err := newValidationError(errs); err != nil {
			return cur, err
		}
		if p.AgenteID != nil {
			if err := r.integrity.verify(next.AgenteID); err != nil {
				return cur, err
			}
		}
		return next, nil
	})
}

func (r *Casos) Remove(id string) bool {
	return r.store.Delete(id)
}

// FindFiltered validates the filter values before scanning the collection.
func (r *Casos) FindFiltered(f domain.CasoFilter) ([]domain.Caso, error) {
	errs := validation.FieldErrors{}
	if f.Status != "" {
		validation.CheckStatus(errs, f.Status)
	}
	if f.AgenteID != "" && !validation.ValidateUUID(f.AgenteID) {
		errs.Add("agente_id", validation.MsgAgenteUUID)
	}
	if err := newValidationError(errs); err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(f.Q))
	return r.store.Filter(func(c domain.Caso) bool {
		if f.AgenteID != "" && c.AgenteID != f.AgenteID {
			return false
		}
		if f.Status != "" && c.Status != f.Status {
			return false
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Titulo), q) &&
			!strings.Contains(strings.ToLower(c.Descricao), q) {
			return false
		}
		return true
	}), nil
}
