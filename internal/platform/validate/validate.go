// Package validate acumula problemas por campo y los devuelve como un único
// apperr de validación.
package validate

import (
	"regexp"
	"slices"
	"strings"

	"vet-clinic/internal/platform/apperr"

	"github.com/shopspring/decimal"
)

const (
	MsgMissing = "missing required information"
	MsgInvalid = "invalid data"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Collector struct {
	missing []apperr.FieldError
	invalid []apperr.FieldError
}

// Required marca el campo como faltante si value está vacío.
func (c *Collector) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		c.missing = append(c.missing, apperr.FieldError{Field: field, Message: "required"})
		return false
	}
	return true
}

// Present marca el campo como faltante si ok es false.
func (c *Collector) Present(field string, ok bool) bool {
	if !ok {
		c.missing = append(c.missing, apperr.FieldError{Field: field, Message: "required"})
	}
	return ok
}

func (c *Collector) Check(ok bool, field, msg string) bool {
	if !ok {
		c.invalid = append(c.invalid, apperr.FieldError{Field: field, Message: msg})
	}
	return ok
}

func (c *Collector) Email(field, value string) bool {
	return c.Check(emailRe.MatchString(strings.TrimSpace(value)), field, "must be a valid email")
}

func (c *Collector) NonNegative(field string, d decimal.Decimal) bool {
	return c.Check(!d.IsNegative(), field, "must be >= 0")
}

// MaxDigits valida precisión DECIMAL(p,2): parte entera con p-2 dígitos como máximo.
func (c *Collector) MaxDigits(field string, d decimal.Decimal, precision int) bool {
	limit := decimal.New(1, int32(precision-2))
	return c.Check(d.Abs().LessThan(limit), field, "too many digits")
}

func (c *Collector) OneOf(field, value string, allowed []string) bool {
	return c.Check(slices.Contains(allowed, value), field, "must be one of: "+strings.Join(allowed, ", "))
}

func (c *Collector) MaxLen(field, value string, n int) bool {
	return c.Check(len([]rune(value)) <= n, field, "too long")
}

// Err devuelve nil si no hubo problemas. Faltantes tienen prioridad en el mensaje.
func (c *Collector) Err() error {
	switch {
	case len(c.missing) > 0:
		return apperr.Invalid(MsgMissing, append(c.missing, c.invalid...)...)
	case len(c.invalid) > 0:
		return apperr.Invalid(MsgInvalid, c.invalid...)
	default:
		return nil
	}
}
