package reconcile

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/despachos-api/internal/domain"
)

const maxIssues = 50 // incidencias guardadas por pasada para el log

// Stats contadores de una pasada. Las filas omitidas nunca abortan la pasada.
type Stats struct {
	Orders             int
	Invoices           int
	Supports           int
	Distributions      int
	Lines              int
	ParseSkipped       int
	ReconcileSkipped   int
	InvoicedGrossValue decimal.Decimal
	Issues             []error
}

// skip registra una fila o registro descartado.
func (s *Stats) skip(err error) {
	var re *domain.ReconciliationError
	if errors.As(err, &re) {
		s.ReconcileSkipped++
	} else {
		s.ParseSkipped++
	}
	if len(s.Issues) < maxIssues {
		s.Issues = append(s.Issues, err)
	}
}
