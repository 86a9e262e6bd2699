package reconcile

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/despachos-api/internal/domain"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
	"github.com/jhoicas/despachos-api/internal/domain/matching"
)

const (
	sourceInvoices   = "facturas"
	sourceInvoicesV2 = "facturas_v2"
)

// Columnas de la hoja de facturas.
const (
	invColStatus = iota
	invColNumber
	invColDate
	invColLot
	invColClient
	invColSupplier
)

// Columnas de la hoja complementaria V2.
const (
	v2ColNumber = iota
	v2ColValue
	v2ColReference
	v2ColQuantity
)

// InvoiceRules filtros aplicados a las filas de facturación.
type InvoiceRules struct {
	Matcher          *matching.ClientMatcher
	ValidPrefixes    []string
	ExcludedStatuses []string
}

// v2Totals acumulado de las filas V2 que comparten número de factura.
type v2Totals struct {
	value     decimal.Decimal
	quantity  int
	reference string
	rows      int
}

// ParseInvoices filtra las facturas por estado, prefijo y cliente conocido y
// les agrega los campos numéricos de la hoja V2.
//
// Si varias filas V2 comparten número se suman valor y cantidad, y la
// referencia pasa a ser entity.RefVar. Sin fila V2 los campos quedan en cero.
func ParseInvoices(rows, v2 [][]string, rules InvoiceRules, st *Stats) []entity.Invoice {
	totals := aggregateV2(v2, st)

	out := make([]entity.Invoice, 0, len(rows))
	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		if rules.excluded(cell(row, invColStatus)) {
			continue
		}
		number := cell(row, invColNumber)
		if number == "" {
			st.skip(&domain.ParseError{Source: sourceInvoices, Row: i, Err: domain.ErrMissingDocument})
			continue
		}
		if !rules.allowedPrefix(number) {
			continue
		}
		client, ok := rules.Matcher.Match(cell(row, invColClient))
		if !ok {
			continue
		}
		lot := cell(row, invColLot)
		if lot == "" {
			st.skip(&domain.ReconciliationError{RecordID: sourceInvoices + ":" + number, Err: domain.ErrMissingLot})
			continue
		}
		inv := entity.Invoice{
			Number:        number,
			LotCode:       lot,
			IssueDate:     cell(row, invColDate),
			ClientNameRaw: cell(row, invColClient),
			Client:        client,
			GrossValue:    decimal.Zero,
			SupplierCode:  cell(row, invColSupplier),
		}
		if t, ok := totals[number]; ok {
			inv.GrossValue = t.value
			inv.Quantity = t.quantity
			inv.Reference = t.reference
		}
		out = append(out, inv)
	}
	st.Invoices = len(out)
	return out
}

func aggregateV2(rows [][]string, st *Stats) map[string]*v2Totals {
	totals := make(map[string]*v2Totals)
	for i, row := range rows {
		number := cell(row, v2ColNumber)
		if number == "" {
			continue
		}
		value, err := parseMoney(cell(row, v2ColValue))
		if err != nil {
			st.skip(&domain.ParseError{Source: sourceInvoicesV2, Row: i, Err: err})
			continue
		}
		qty, err := parseQuantity(cell(row, v2ColQuantity))
		if err != nil {
			st.skip(&domain.ParseError{Source: sourceInvoicesV2, Row: i, Err: err})
			continue
		}
		t, ok := totals[number]
		if !ok {
			t = &v2Totals{value: decimal.Zero}
			totals[number] = t
		}
		t.value = t.value.Add(value)
		t.quantity += qty
		t.rows++
		if t.rows == 1 {
			t.reference = cell(row, v2ColReference)
		} else {
			t.reference = entity.RefVar
		}
	}
	return totals
}

func (r InvoiceRules) excluded(status string) bool {
	for _, s := range r.ExcludedStatuses {
		if strings.EqualFold(strings.TrimSpace(s), status) {
			return true
		}
	}
	return false
}

func (r InvoiceRules) allowedPrefix(number string) bool {
	if len(r.ValidPrefixes) == 0 {
		return true
	}
	upper := strings.ToUpper(number)
	for _, p := range r.ValidPrefixes {
		if p != "" && strings.HasPrefix(upper, strings.ToUpper(p)) {
			return true
		}
	}
	return false
}
