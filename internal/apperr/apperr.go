package apperr

import "errors"

// ===============================
// Error Taxonomy
// ===============================

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindAuthorization
	KindConflict
	KindState
	KindLimit
)

// Error é um erro de negócio barato: sem stack, sem wrapping pesado.
// Resultados esperados (conflito de horário, limite atingido) passam por aqui.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details []string
}

func (e *Error) Error() string {
	return e.Code
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

func NotFound(code, message string) *Error {
	return New(KindNotFound, code, message)
}

func Authorization(code, message string) *Error {
	return New(KindAuthorization, code, message)
}

func Conflict(code, message string) *Error {
	return New(KindConflict, code, message)
}

func State(code, message string) *Error {
	return New(KindState, code, message)
}

func Limit(code, message string) *Error {
	return New(KindLimit, code, message)
}

// WithDetails anexa itens legíveis (ex.: agendamentos em conflito).
func (e *Error) WithDetails(details []string) *Error {
	e.Details = details
	return e
}

func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func HasCode(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
