package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidCredentials = errors.New("usuario o contraseña incorrectos")
	ErrMissingLot         = errors.New("registro sin lote")
	ErrMissingDocument    = errors.New("registro sin documento")
)

// FetchError falla al leer una fuente (red, HTTP no-2xx o timeout).
// Aborta la pasada completa de conciliación: nunca se devuelven resultados parciales.
type FetchError struct {
	Source     string // nombre lógico de la fuente: pedidos, facturas, soportes...
	StatusCode int    // 0 si la falla fue de red o de contexto
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fuente %s: HTTP %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fuente %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError una fila o celda no se pudo interpretar. Se recupera localmente
// saltando la fila; nunca sale del pipeline.
type ParseError struct {
	Source string
	Row    int // índice de fila dentro del rango (0 = primera fila de datos)
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fuente %s fila %d: %v", e.Source, e.Row, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReconciliationError registro válido en forma pero sin un campo requerido.
// El registro se descarta de la salida; el resto de la pasada continúa.
type ReconciliationError struct {
	RecordID string
	Err      error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("registro %q: %v", e.RecordID, e.Err)
}

func (e *ReconciliationError) Unwrap() error { return e.Err }

// IsFetchError indica si err (o alguno de sus envueltos) es un FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
