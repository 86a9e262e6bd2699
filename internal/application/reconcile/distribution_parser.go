package reconcile

import (
	"encoding/json"
	"strings"

	"github.com/jhoicas/despachos-api/internal/domain"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
)

const sourceDistributions = "distribucion"

// allocationDoc entrada de reparto dentro del JSON de distribución.
type allocationDoc struct {
	Cantidad flexString `json:"cantidad"`
}

// ParseDistributions suma, por pedido y por cliente conocido, las cantidades
// de cada entrada de reparto. Columna A: id del pedido; columna B: JSON
// {"<rol>": [{"cantidad": n}, ...]}.
//
// Un cliente ausente en el JSON aporta cero. Roles desconocidos se ignoran.
// El resultado sigue el orden de clients.
func ParseDistributions(rows [][]string, clients []entity.KnownClient, st *Stats) map[string]entity.ClientDistribution {
	sums := make(map[string]map[string]int)
	for i, row := range rows {
		orderID, raw := cell(row, 0), cell(row, 1)
		if raw == "" {
			continue
		}
		if orderID == "" {
			st.skip(&domain.ParseError{Source: sourceDistributions, Row: i, Err: domain.ErrMissingDocument})
			continue
		}
		var doc map[string][]allocationDoc
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			st.skip(&domain.ParseError{Source: sourceDistributions, Row: i, Err: err})
			continue
		}
		perRole, ok := sums[orderID]
		if !ok {
			perRole = make(map[string]int)
			sums[orderID] = perRole
		}
		for role, entries := range doc {
			for _, e := range entries {
				q, err := parseQuantity(e.Cantidad.String())
				if err != nil {
					continue
				}
				perRole[strings.TrimSpace(role)] += q
			}
		}
	}

	out := make(map[string]entity.ClientDistribution, len(sums))
	for orderID, perRole := range sums {
		d := entity.ClientDistribution{
			OrderID:     orderID,
			Allocations: make([]entity.Allocation, 0, len(clients)),
		}
		for _, c := range clients {
			d.Allocations = append(d.Allocations, entity.Allocation{
				Role:              c.Role,
				ClientName:        c.Name,
				TaxID:             c.TaxID,
				AllocatedQuantity: perRole[c.Role],
			})
		}
		out[orderID] = d
	}
	st.Distributions = len(out)
	return out
}
