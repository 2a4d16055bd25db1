package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Type clasifica los errores que cruzan el borde HTTP.
type Type string

const (
	TypeOriginRejected          Type = "ORIGIN_REJECTED"
	TypeRateLimited             Type = "RATE_LIMITED"
	TypeBackingStoreUnavailable Type = "BACKING_STORE_UNAVAILABLE"
	TypeValidation              Type = "VALIDATION"
	TypeRendering               Type = "RENDERING"
	TypeInvalidInput            Type = "INVALID_INPUT"
	TypeInternal                Type = "INTERNAL"
)

// AppError es un error de aplicación con tipo y mensaje apto para el cliente.
// Err guarda la causa original (p.ej. error del driver) y nunca se serializa tal cual.
type AppError struct {
	Type    Type
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewOriginRejected(message string) *AppError {
	return &AppError{Type: TypeOriginRejected, Message: message}
}

func NewRateLimited(message string) *AppError {
	return &AppError{Type: TypeRateLimited, Message: message}
}

func NewBackingStoreUnavailable(message string, err error) *AppError {
	return &AppError{Type: TypeBackingStoreUnavailable, Message: message, Err: err}
}

func NewValidation(message string) *AppError {
	return &AppError{Type: TypeValidation, Message: message}
}

func NewRendering(message string, err error) *AppError {
	return &AppError{Type: TypeRendering, Message: message, Err: err}
}

func NewInvalidInput(message string) *AppError {
	return &AppError{Type: TypeInvalidInput, Message: message}
}

func NewInternal(message string, err error) *AppError {
	return &AppError{Type: TypeInternal, Message: message, Err: err}
}

// TypeOf devuelve el tipo del primer AppError en la cadena, o TypeInternal.
func TypeOf(err error) Type {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Type
	}
	return TypeInternal
}

// StatusCode mapea un error al código HTTP correspondiente.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch TypeOf(err) {
	case TypeOriginRejected:
		return http.StatusForbidden
	case TypeRateLimited:
		return http.StatusTooManyRequests
	case TypeValidation:
		return http.StatusUnprocessableEntity
	case TypeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage devuelve el mensaje del AppError (sin la causa) o un genérico.
func PublicMessage(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "erro interno"
}

// CauseMessage devuelve solo el texto de la causa, para el campo "message" de la respuesta.
func CauseMessage(err error) string {
	var ae *AppError
	if errors.As(err, &ae) && ae.Err != nil {
		return ae.Err.Error()
	}
	if err == nil {
		return ""
	}
	return "Erro desconhecido"
}
