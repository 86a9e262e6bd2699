package entity

// KnownClient cliente habilitado para despacho. Role es la clave con la que
// aparece en la hoja de distribución (ej. "Templo", "Shopping").
type KnownClient struct {
	Role  string
	Name  string
	TaxID string // NIT o Cédula (Colombia)
}
