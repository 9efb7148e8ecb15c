package repo

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"departamento/internal/domain"
	"departamento/internal/validation"
)

const (
	SortIncorporacaoAsc  = "dataDeIncorporacao"
	SortIncorporacaoDesc = "-dataDeIncorporacao"
)

// Agentes owns the agente collection and validates every write against Policy.
type Agentes struct {
	store  *Store[domain.Agente]
	Policy validation.Policy
	Now    func() time.Time
}

func NewAgentes(policy validation.Policy) *Agentes {
	return &Agentes{
		store:  NewStore(func(a domain.Agente) string { return a.ID }),
		Policy: policy,
		Now:    time.Now,
	}
}

func (r *Agentes) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Create stores a new agente. A fresh id is generated when a.ID is empty.
func (r *Agentes) Create(a domain.Agente) (domain.Agente, error) {
	errs := validation.CheckAgente(r.Policy, a, r.now())
	if a.ID == "" {
		a.ID = uuid.NewString()
	} else if !validation.ValidateUUID(a.ID) {
		errs.Add("id", validation.MsgUUID)
	}
	if err := newValidationError(errs); err != nil {
		return domain.Agente{}, err
	}
	if err := r.store.Add(a); err != nil {
		if errors.Is(err, errDuplicateID) {
			return domain.Agente{}, ValidationError{Fields: validation.FieldErrors{"id": validation.MsgIDDuplicate}}
		}
		return domain.Agente{}, err
	}
	return a, nil
}

func (r *Agentes) FindAll() []domain.Agente {
	return r.store.All()
}

func (r *Agentes) FindByID(id string) (domain.Agente, error) {
	a, ok := r.store.Get(id)
	if !ok {
		return domain.Agente{}, ErrNotFound
	}
	return a, nil
}

// Update replaces every field of the agente except its id.
func (r *Agentes) Update(id string, a domain.Agente) (domain.Agente, error) {
	return r.store.Replace(id, func(cur domain.Agente) (domain.Agente, error) {
		errs := validation.CheckAgente(r.Policy, a, r.now())
		if a.ID != "" && a.ID != cur.ID {
			errs.Add("id", validation.MsgIDImmutable)
		}
		if err := newValidationError(errs); err != nil {
			return cur, err
		}
		a.ID = cur.ID
		return a, nil
	})
}

// PartialUpdate merges the touched fields of p and validates only those.
func (r *Agentes) PartialUpdate(id string, p domain.AgentePatch) (domain.Agente, error) {
	return r.store.Replace(id, func(cur domain.Agente) (domain.Agente, error) {
		errs := validation.FieldErrors{}
		next := cur
		if p.ID != nil && *p.ID != cur.ID {
			errs.Add("id", validation.MsgIDImmutable)
		}
		if p.Nome != nil {
			validation.CheckNome(errs, *p.Nome)
			next.Nome = *p.Nome
		}
		if p.DataDeIncorporacao != nil {
			validation.CheckDataDeIncorporacao(errs, r.Policy, *p.DataDeIncorporacao, r.now())
			next.DataDeIncorporacao = *p.DataDeIncorporacao
		}
		if p.Cargo != nil {
			validation.CheckCargo(errs, r.Policy, *p.Cargo)
			next.Cargo = *p.Cargo
		}
		if err := newValidationError(errs); err != nil {
			return cur, err
		}
		return next, nil
	})
}

// Remove deletes the agente. Casos referencing it are left as they are.
func (r *Agentes) Remove(id string) bool {
	return r.store.Delete(id)
}

// FindFiltered applies the cargo filter and the optional incorporation date sort.
// A sort token other than the two date orders leaves insertion order.
func (r *Agentes) FindFiltered(f domain.AgenteFilter) ([]domain.Agente, error) {
	cargo := strings.TrimSpace(f.Cargo)
	items := r.store.Filter(func(a domain.Agente) bool {
		return cargo == "" || a.Cargo == cargo
	})
	switch f.Sort {
	case SortIncorporacaoAsc:
		return SortByIncorporacao(items, false), nil
	case SortIncorporacaoDesc:
		return SortByIncorporacao(items, true), nil
	}
	return items, nil
}

// SortByIncorporacao orders agentes by dataDeIncorporacao. Agentes whose date is
// not a valid YYYY-MM-DD value keep their relative order after the sorted run.
func SortByIncorporacao(items []domain.Agente, desc bool) []domain.Agente {
	valid := make([]domain.Agente, 0, len(items))
	var invalid []domain.Agente
	for _, a := range items {
		if validation.ValidateDate(a.DataDeIncorporacao) {
			valid = append(valid, a)
		} else {
			invalid = append(invalid, a)
		}
	}
	// YYYY-MM-DD compares lexically in date order.
	slices.SortStableFunc(valid, func(a, b domain.Agente) int {
		c := strings.Compare(a.DataDeIncorporacao, b.DataDeIncorporacao)
		if desc {
			return -c
		}
		return c
	})
	return append(valid, invalid...)
}
