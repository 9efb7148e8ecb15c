package repo

import (
	"errors"

	"departamento/internal/domain"
	"departamento/internal/validation"
)

// AgenteLookup resolves agentes by id.
type AgenteLookup interface {
	FindByID(id string) (domain.Agente, error)
}

// IntegrityChecker enforces the caso -> agente reference at write time.
type IntegrityChecker struct {
	Agentes AgenteLookup
}

func (c IntegrityChecker) CheckAgentExists(agenteID string) bool {
	return c.verify(agenteID) == nil
}

func (c IntegrityChecker) verify(agenteID string) error {
	if !validation.ValidateUUID(agenteID) {
		return ValidationError{Fields: validation.FieldErrors{"agente_id": validation.MsgAgenteUUID}}
	}
	if _, err := c.Agentes.FindByID(agenteID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ReferentialIntegrityError{AgenteID: agenteID}
		}
		return err
	}
	return nil
}
