package entity

// Support soporte de entrega (foto + metadatos) para una combinación exacta
// documento/lote/referencia/cantidad/NIT. Su existencia implica entrega física.
type Support struct {
	InvoiceNumber string
	Confirmed     bool
	Timestamp     string
}

// HasInvoice indica si el soporte quedó asociado a una factura.
func (s Support) HasInvoice() bool { return s.InvoiceNumber != "" }
