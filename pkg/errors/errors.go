package errors

import (
	"errors"
	"fmt"
)

var (
	// JWT y tokens
	ErrInvalidSigningMethod = errors.New("método de firma del token no válido")
	ErrInvalidToken         = errors.New("token no válido")
	ErrTokenExpired         = errors.New("el token ha expirado")
	ErrTokenIsNotRefresh    = errors.New("el token no es un refresh token")
	ErrTokenIsNotAccess     = errors.New("el token no es un access token")

	// Autorización
	ErrEmptyAuthHeader    = errors.New("falta el encabezado de autorización")
	ErrInvalidAuthHeader  = errors.New("formato de encabezado de autorización no válido")
	ErrInvalidCredentials = errors.New("credenciales no válidas")
	ErrUnauthorized       = errors.New("no autorizado")

	// Generales
	ErrNotFound   = errors.New("registro no encontrado")
	ErrConflict   = errors.New("el registro ya existe")
	ErrBadRequest = errors.New("solicitud no válida")
)

// HttpError lleva el código HTTP, el mensaje para el usuario y la causa
// interna (solo para logs).
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}
