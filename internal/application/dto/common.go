package dto

import "time"

// Envelope respuesta estándar de las operaciones de consulta del escáner.
// En una falla Success es false, Error lleva el mensaje crudo y Data puede
// traer la última vista en caché si aún está vigente.
type Envelope[T any] struct {
	Success   bool      `json:"success"`
	Data      T         `json:"data"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
