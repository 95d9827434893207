package clientes

import "github.com/odyssey-erp/clientes/internal/platform/httpx"

// Messages returned to API clients.
const (
	MsgIncompleto       = "Datos incompletos."
	MsgNombreInvalido   = "Nombre inválido."
	MsgEmailInvalido    = "Correo electrónico inválido."
	MsgTelefonoInvalido = "Teléfono inválido."
	MsgPaisInvalido     = "País inválido."
	MsgFechaInvalida    = "Fecha de contacto inválida."
	MsgEstadoInvalido   = "Estado inválido."
	MsgEmailRegistrado  = "Correo electrónico ya registrado."
	MsgNoEncontrado     = "Cliente no encontrado."
	MsgEliminado        = "Cliente eliminado."
	MsgCuerpoInvalido   = "Cuerpo de solicitud inválido."
)

// Error is a client-input failure. It unwraps to one of the httpx sentinels so the
// HTTP edge can pick a status code.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

// PublicMessage implements httpx.PublicError.
func (e *Error) PublicMessage() string { return e.message }

var (
	ErrNotFound       = &Error{kind: httpx.ErrNotFound, message: MsgNoEncontrado}
	ErrIncomplete     = &Error{kind: httpx.ErrIncomplete, message: MsgIncompleto}
	ErrDuplicateEmail = &Error{kind: httpx.ErrDuplicate, message: MsgEmailRegistrado}
	ErrInvalidBody    = &Error{kind: httpx.ErrBadRequest, message: MsgCuerpoInvalido}
)

// FieldError reports the first field that failed its validator.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func (e *FieldError) Unwrap() error { return httpx.ErrValidation }

// PublicMessage implements httpx.PublicError.
func (e *FieldError) PublicMessage() string { return e.Message }
