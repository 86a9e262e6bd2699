package reconcile

// ParseResponsibles relaciona cada pedido con la persona responsable del
// despacho. Columna A: id del pedido; columna B: responsable.
func ParseResponsibles(rows [][]string) map[string]string {
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		id, name := cell(row, 0), cell(row, 1)
		if id == "" || name == "" {
			continue
		}
		out[id] = name
	}
	return out
}
