package entity

import "github.com/shopspring/decimal"

// RefVar marca la referencia ambigua: varias filas V2 comparten número de factura.
const RefVar = "RefVar"

// Invoice factura leída de la hoja de facturación, ya filtrada por estado,
// prefijo y cliente conocido. Value, Quantity y Reference provienen de la hoja V2.
type Invoice struct {
	Number        string
	LotCode       string
	IssueDate     string // tal como viene en la hoja (dd/mm/aaaa)
	ClientNameRaw string
	Client        KnownClient // cliente resuelto por el matcher
	GrossValue    decimal.Decimal
	Quantity      int
	Reference     string
	SupplierCode  string
}
