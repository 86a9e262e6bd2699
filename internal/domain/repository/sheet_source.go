package repository

import "context"

// SourceRef ubica un rango dentro de una hoja de cálculo.
type SourceRef struct {
	Name          string // nombre lógico: pedidos, facturas, facturas_v2, soportes, distribucion, responsables
	SpreadsheetID string
	Range         string // notación A1, ej. "PEDIDOS!A2:A"
}

// Configured indica si la fuente tiene hoja y rango definidos.
func (r SourceRef) Configured() bool {
	return r.SpreadsheetID != "" && r.Range != ""
}

// SheetSource puerto de lectura de tablas crudas.
//
// ReadRange devuelve las celdas como texto (celdas vacías = ""), o una tabla
// vacía si el rango no tiene valores. Una falla de red o un HTTP no-2xx se
// devuelve como *domain.FetchError. No reintenta.
type SheetSource interface {
	ReadRange(ctx context.Context, ref SourceRef) ([][]string, error)
}
