package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/resumen.
type DashboardSummaryDTO struct {
	GeneratedAt time.Time `json:"generado"`
	Stale       bool      `json:"desactualizado"` // la última pasada falló; se muestra la vista en caché

	TotalLines    int             `json:"total_lineas"`
	TotalDocs     int             `json:"total_documentos"`
	TotalQuantity int             `json:"total_unidades"`
	InvoicedValue decimal.Decimal `json:"valor_facturado"`

	ByState    []CountDTO `json:"por_estado"`
	BySupplier []CountDTO `json:"por_proveedor"`
	ByClient   []CountDTO `json:"por_cliente"`

	RecentRuns []RunDTO `json:"pasadas_recientes"`
}

// CountDTO conteo de líneas y unidades por etiqueta.
type CountDTO struct {
	Label    string `json:"etiqueta"`
	Lines    int    `json:"lineas"`
	Quantity int    `json:"unidades"`
}

// RunDTO pasada del pipeline registrada en el historial.
type RunDTO struct {
	ID               string          `json:"id"`
	StartedAt        time.Time       `json:"inicio"`
	DurationMs       int64           `json:"duracion_ms"`
	Success          bool            `json:"exitosa"`
	Error            string          `json:"error,omitempty"`
	Lines            int             `json:"lineas"`
	Delivered        int             `json:"entregadas"`
	ParseSkipped     int             `json:"omitidas_parseo"`
	ReconcileSkipped int             `json:"omitidas_conciliacion"`
	InvoicedValue    decimal.Decimal `json:"valor_facturado"`
}
