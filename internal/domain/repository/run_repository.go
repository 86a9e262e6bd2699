package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationRun resumen de una pasada del pipeline de conciliación.
type ReconciliationRun struct {
	ID                 string
	StartedAt          time.Time
	Duration           time.Duration
	Success            bool
	ErrorMessage       string
	OrderCount         int
	LineCount          int
	DeliveredCount     int
	ParseSkipped       int
	ReconcileSkipped   int
	InvoicedGrossValue decimal.Decimal
}

// RunRepository historial de pasadas para el panel de administración.
// Las implementaciones no participan del resultado de la pasada: un error aquí
// se registra en el log y no invalida la conciliación.
type RunRepository interface {
	Save(ctx context.Context, run *ReconciliationRun) error
	ListRecent(ctx context.Context, limit int) ([]ReconciliationRun, error)
}
