package entity

// Tipos de anexo de un pedido.
const (
	AttachmentPromo = "PROMO" // muestras y material promocional que viajan con el lote
)

// Order representa un pedido de lote completo leído de la hoja de pedidos.
// Se construye a partir del documento JSON de una celda y no se modifica después.
type Order struct {
	ID            string // campo "A" del documento; el documento de despacho es prefijo + ID
	LotCode       string
	Reference     string
	Quantity      int
	SupplierCode  string
	Attachments   []Attachment
	RawTimestamps map[string]string // campos FECHA_* tal como vienen en la hoja
}

// Attachment anexo de un pedido (ej. PROMO).
type Attachment struct {
	Type      string
	Reference string
	Quantity  int
}

// IsPromo indica si el anexo es promocional.
func (a Attachment) IsPromo() bool { return a.Type == AttachmentPromo }
