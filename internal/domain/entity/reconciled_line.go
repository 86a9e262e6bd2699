package entity

// Estados de confirmación de una línea conciliada.
const (
	StateNone                    = ""
	StateDelivered               = "ENTREGADO"
	StateDeliveredPendingInvoice = "ENTREGADO, PENDIENTE FACTURA"
	StatePendingInvoice          = "PENDIENTE FACTURA"
)

// ReconciledLine unidad que consume el escáner. ConfirmationState se deriva en
// cada pasada; nunca se persiste.
type ReconciledLine struct {
	OrderDocument     string `json:"documento"`
	LotCode           string `json:"lote"`
	Reference         string `json:"referencia"`
	ClientName        string `json:"cliente"`
	TaxID             string `json:"nit"`
	Quantity          int    `json:"cantidad"`
	InvoiceNumber     string `json:"factura"`
	SupplierName      string `json:"proveedor"`
	ConfirmationState string `json:"confirmacion"`
	Responsible       string `json:"responsable,omitempty"`
	DeliveryKey       string `json:"clave_entrega"`
	Promo             bool   `json:"promo,omitempty"`
}

// Delivered indica si la línea ya tiene soporte de entrega.
func (l ReconciledLine) Delivered() bool {
	return l.ConfirmationState == StateDelivered || l.ConfirmationState == StateDeliveredPendingInvoice
}
