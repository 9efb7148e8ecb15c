// Package validation holds the stateless field checks shared by the agente and
// caso stores. Validators report plain booleans; callers collect failures into
// FieldErrors.
package validation

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"departamento/internal/domain"
)

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Policy selects the optional checks. The zero value is the lenient variant.
type Policy struct {
	EnforceCargoEnum bool
	EnforceNotFuture bool
}

// Strict enables every optional check.
func Strict() Policy {
	return Policy{EnforceCargoEnum: true, EnforceNotFuture: true}
}

// FieldErrors maps a field name to a human readable message.
type FieldErrors map[string]string

func (f FieldErrors) Add(field, msg string) {
	if _, ok := f[field]; ok {
		return
	}
	f[field] = msg
}

func (f FieldErrors) Empty() bool { return len(f) == 0 }

// ValidateDate reports whether value is YYYY-MM-DD and names a real calendar day.
func ValidateDate(value string) bool {
	if !datePattern.MatchString(value) {
		return false
	}
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

// ValidateNotFuture reports whether date is on or before the calendar day of now.
// Dates that do not parse are rejected.
func ValidateNotFuture(date string, now time.Time) bool {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	y, m, day := now.UTC().Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return !d.After(today)
}

func ValidateCargo(value string, enforceEnum bool) bool {
	if !ValidateRequiredString(value) {
		return false
	}
	if !enforceEnum {
		return true
	}
	return slices.Contains(domain.Cargos, value)
}

func ValidateStatus(value string) bool {
	return slices.Contains(domain.CasoStatuses, value)
}

func ValidateRequiredString(value string) bool {
	return strings.TrimSpace(value) != ""
}

// ValidateUUID accepts only the canonical 36 character hyphenated form.
func ValidateUUID(value string) bool {
	if len(value) != 36 {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}
