package clientes

import (
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

const (
	nombreMinLen = 3
	nombreMaxLen = 100
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	telefonoPattern = regexp.MustCompile(`^\+\d{1,3}-\d{4}-\d{4}$`)

	// fechaLayouts are tried in order; the month/day/year form is kept for
	// clients that post browser-formatted dates.
	fechaLayouts = []string{
		"2006-01-02",
		"1/2/2006",
		time.RFC3339,
	}
)

// ValidName reports whether s has between 3 and 100 characters.
func ValidName(s string) bool {
	n := utf8.RuneCountInString(norm.NFC.String(s))
	return n >= nombreMinLen && n <= nombreMaxLen
}

// ValidEmail reports whether s looks like local@domain.tld. No DNS lookup is made.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone reports whether s has the +CCC-NNNN-NNNN shape, e.g. +502-5855-8408.
func ValidPhone(s string) bool {
	return telefonoPattern.MatchString(s)
}

// ValidCountry reports whether s names one of Paises.
func ValidCountry(s string) bool {
	_, ok := ParsePais(s)
	return ok
}

// ValidStatus reports whether s names one of Estados.
func ValidStatus(s string) bool {
	_, ok := ParseEstado(s)
	return ok
}

// ValidDate reports whether s is a calendar date that is not after now's date.
func ValidDate(s string, now time.Time) bool {
	fecha, ok := parseFecha(s, now.Location())
	if !ok {
		return false
	}
	y, m, d := now.Date()
	return !fecha.After(time.Date(y, m, d, 0, 0, 0, 0, now.Location()))
}

func parseFecha(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range fechaLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		y, m, d := t.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}

type fieldRule struct {
	field   string
	tag     string
	message string
}

var (
	ruleNombre   = fieldRule{field: "nombre", tag: "nombre", message: MsgNombreInvalido}
	ruleEmail    = fieldRule{field: "email", tag: "correo", message: MsgEmailInvalido}
	ruleTelefono = fieldRule{field: "telefono", tag: "telefono", message: MsgTelefonoInvalido}
	rulePais     = fieldRule{field: "pais", tag: "pais", message: MsgPaisInvalido}
	ruleFecha    = fieldRule{field: "fechaContacto", tag: "fecha_contacto", message: MsgFechaInvalida}
	ruleEstado   = fieldRule{field: "estado", tag: "estado", message: MsgEstadoInvalido}
)

// Validator runs the field validators through go-playground/validator tags.
type Validator struct {
	validate *validator.Validate
	clock    Clock
}

// NewValidator registers one validator tag per cliente field. A nil clock falls back
// to SystemClock.
func NewValidator(clock Clock) *Validator {
	if clock == nil {
		clock = SystemClock
	}
	v := &Validator{validate: validator.New(), clock: clock}
	fecha := func(s string) bool {
		return ValidDate(s, v.clock.Now())
	}
	rules := map[string]func(string) bool{
		ruleNombre.tag:   ValidName,
		ruleEmail.tag:    ValidEmail,
		ruleTelefono.tag: ValidPhone,
		rulePais.tag:     ValidCountry,
		ruleFecha.tag:    fecha,
		ruleEstado.tag:   ValidStatus,
	}
	for tag, fn := range rules {
		// only fails on empty or reserved tag names
		if err := v.validate.RegisterValidation(tag, stringRule(fn)); err != nil {
			panic(err)
		}
	}
	return v
}

func stringRule(fn func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	}
}

// Validate checks every non-nil field in the fixed order nombre, email, telefono,
// pais, fechaContacto, estado and returns the first failure as a *FieldError.
// Empresa is free text and never fails.
func (v *Validator) Validate(fields UpdateClienteRequest) error {
	checks := []struct {
		value *string
		rule  fieldRule
	}{
		{fields.Nombre, ruleNombre},
		{fields.Email, ruleEmail},
		{fields.Telefono, ruleTelefono},
		{fields.Pais, rulePais},
		{fields.FechaContacto, ruleFecha},
		{fields.Estado, ruleEstado},
	}
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if err := v.validate.Var(*c.value, c.rule.tag); err != nil {
			return &FieldError{Field: c.rule.field, Message: c.rule.message}
		}
	}
	return nil
}
