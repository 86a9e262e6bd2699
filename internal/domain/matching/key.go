package matching

import (
	"strconv"
	"strings"
)

const keySeparator = "_"

var keyEscaper = strings.NewReplacer(`\`, `\\`, `_`, `\_`)

// DeliveryKey clave compuesta que une un soporte de entrega con una línea de
// factura o de distribución: documento_lote_referencia_cantidad_nit.
type DeliveryKey string

// BuildDeliveryKey arma la clave a partir de las cinco partes ya convertidas a
// texto. Cada parte se recorta por separado; un "_" o "\" dentro de una parte
// se escapa con "\" para que dos tuplas distintas nunca produzcan la misma clave.
func BuildDeliveryKey(documentID, lotCode, reference, quantity, taxID string) DeliveryKey {
	parts := [5]string{documentID, lotCode, reference, quantity, taxID}
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteString(keySeparator)
		}
		b.WriteString(keyEscaper.Replace(strings.TrimSpace(p)))
	}
	return DeliveryKey(b.String())
}

// KeyFor igual que BuildDeliveryKey con la cantidad numérica (decimal sin formato).
func KeyFor(documentID, lotCode, reference string, quantity int, taxID string) DeliveryKey {
	return BuildDeliveryKey(documentID, lotCode, reference, FormatQuantity(quantity), taxID)
}

// FormatQuantity representa una cantidad como entero decimal sin separadores.
func FormatQuantity(q int) string {
	return strconv.Itoa(q)
}

func (k DeliveryKey) String() string { return string(k) }
