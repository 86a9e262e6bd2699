package entity

// Allocation cantidad asignada a un cliente conocido dentro de un pedido.
type Allocation struct {
	Role              string
	ClientName        string
	TaxID             string
	AllocatedQuantity int
}

// ClientDistribution reparto de un pedido entre los clientes conocidos, en el
// orden de configuración. Solo se usa cuando el lote aún no tiene factura.
type ClientDistribution struct {
	OrderID     string
	Allocations []Allocation
}

// Positive devuelve las asignaciones con cantidad mayor a cero.
func (d ClientDistribution) Positive() []Allocation {
	out := make([]Allocation, 0, len(d.Allocations))
	for _, a := range d.Allocations {
		if a.AllocatedQuantity > 0 {
			out = append(out, a)
		}
	}
	return out
}
