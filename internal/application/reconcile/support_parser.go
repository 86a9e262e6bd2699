package reconcile

import (
	"github.com/jhoicas/despachos-api/internal/domain/entity"
	"github.com/jhoicas/despachos-api/internal/domain/matching"
)

// Columnas de la hoja de soportes de entrega.
const (
	supColDocument = iota
	supColLot
	supColReference
	supColQuantity
	supColTaxID
	supColInvoice
	supColTimestamp
)

// ParseSupports indexa los soportes por clave compuesta de entrega.
//
// Una fila sin documento ni lote se ignora. Si dos filas producen la misma
// clave, prevalece la que tenga factura; entre iguales, la última.
func ParseSupports(rows [][]string, st *Stats) map[matching.DeliveryKey]entity.Support {
	out := make(map[matching.DeliveryKey]entity.Support, len(rows))
	for _, row := range rows {
		doc, lot := cell(row, supColDocument), cell(row, supColLot)
		if doc == "" && lot == "" {
			continue
		}
		key := matching.BuildDeliveryKey(
			doc, lot,
			cell(row, supColReference),
			supportQuantity(cell(row, supColQuantity)),
			cell(row, supColTaxID),
		)
		sup := entity.Support{
			InvoiceNumber: cell(row, supColInvoice),
			Confirmed:     true,
			Timestamp:     cell(row, supColTimestamp),
		}
		if prev, ok := out[key]; ok && prev.HasInvoice() && !sup.HasInvoice() {
			continue
		}
		out[key] = sup
	}
	st.Supports = len(out)
	return out
}

// supportQuantity lleva la cantidad a la misma forma que usan facturas y
// distribución ("1.500" y "10.0" → "1500" y "10"). Si no es un entero
// legible se conserva el texto, así que ese soporte no casa con ninguna línea.
func supportQuantity(raw string) string {
	if raw == "" {
		return ""
	}
	q, err := parseQuantity(raw)
	if err != nil {
		return raw
	}
	return matching.FormatQuantity(q)
}
