package reconcile

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/despachos-api/internal/domain"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
	"github.com/jhoicas/despachos-api/internal/domain/matching"
)

// Snapshot registros tipados de una pasada, listos para conciliar.
type Snapshot struct {
	Orders        []entity.Order
	Invoices      []entity.Invoice
	Supports      map[matching.DeliveryKey]entity.Support
	Distributions map[string]entity.ClientDistribution // por id de pedido
	Responsibles  map[string]string                    // por id de pedido
}

// Reconciler une pedidos con facturas, soportes y distribución.
// No guarda estado entre llamadas.
type Reconciler struct {
	suppliers          map[string]string
	documentPrefix     string
	markPendingInvoice bool
}

// NewReconciler construye el conciliador a partir de las opciones del pipeline.
func NewReconciler(opts Options) *Reconciler {
	suppliers := make(map[string]string, len(opts.SupplierCodeMap))
	for code, name := range opts.SupplierCodeMap {
		suppliers[strings.TrimSpace(code)] = name
	}
	return &Reconciler{
		suppliers:          suppliers,
		documentPrefix:     opts.DocumentPrefix,
		markPendingInvoice: opts.MarkPendingInvoice,
	}
}

// Reconcile produce las líneas de todos los pedidos, en el orden de la fuente.
//
// Por pedido:
//   - Con facturas del mismo lote: una línea por factura. La distribución se ignora.
//   - Sin facturas: una línea por cliente con cantidad asignada > 0, más una
//     línea por referencia PROMO de los anexos.
//   - Sin líneas resultantes: el pedido no aparece.
//
// Un error en un pedido lo descarta solo a él.
func (r *Reconciler) Reconcile(s Snapshot, st *Stats) []entity.ReconciledLine {
	byLot := make(map[string][]entity.Invoice)
	for _, inv := range s.Invoices {
		lot := strings.TrimSpace(inv.LotCode)
		byLot[lot] = append(byLot[lot], inv)
	}

	// Varios pedidos pueden compartir lote: cada factura suma una sola vez.
	gross := decimal.Zero
	counted := make(map[string]bool)
	var lines []entity.ReconciledLine
	for _, order := range s.Orders {
		orderLines, invoiced, err := r.reconcileOrder(order, byLot, s)
		if err != nil {
			st.skip(&domain.ReconciliationError{RecordID: order.ID, Err: err})
			continue
		}
		lines = append(lines, orderLines...)
		for _, inv := range invoiced {
			number := strings.TrimSpace(inv.Number)
			if number != "" && counted[number] {
				continue
			}
			counted[number] = true
			gross = gross.Add(inv.GrossValue)
		}
	}
	if lines == nil {
		lines = []entity.ReconciledLine{}
	}
	st.Lines = len(lines)
	st.InvoicedGrossValue = gross
	return lines
}

func (r *Reconciler) reconcileOrder(
	order entity.Order,
	byLot map[string][]entity.Invoice,
	s Snapshot,
) ([]entity.ReconciledLine, []entity.Invoice, error) {
	lot := strings.TrimSpace(order.LotCode)
	if lot == "" {
		return nil, nil, domain.ErrMissingLot
	}
	if strings.TrimSpace(order.ID) == "" {
		return nil, nil, domain.ErrMissingDocument
	}
	doc := r.documentFor(order.ID)
	responsible := s.Responsibles[order.ID]

	if invoices := byLot[lot]; len(invoices) > 0 {
		lines := make([]entity.ReconciledLine, 0, len(invoices))
		for _, inv := range invoices {
			ref := inv.Reference
			if ref == "" {
				ref = order.Reference
			}
			supplierCode := inv.SupplierCode
			if supplierCode == "" {
				supplierCode = order.SupplierCode
			}
			key := matching.KeyFor(doc, lot, ref, inv.Quantity, inv.Client.TaxID)
			lines = append(lines, entity.ReconciledLine{
				OrderDocument:     doc,
				LotCode:           lot,
				Reference:         ref,
				ClientName:        inv.Client.Name,
				TaxID:             inv.Client.TaxID,
				Quantity:          inv.Quantity,
				InvoiceNumber:     inv.Number,
				SupplierName:      r.supplierName(supplierCode),
				ConfirmationState: r.confirmation(key, s.Supports, false),
				Responsible:       responsible,
				DeliveryKey:       key.String(),
			})
		}
		return lines, invoices, nil
	}

	var lines []entity.ReconciledLine
	supplier := r.supplierName(order.SupplierCode)
	if dist, ok := r.distributionFor(order.ID, s.Distributions); ok {
		for _, a := range dist.Positive() {
			key := matching.KeyFor(doc, lot, order.Reference, a.AllocatedQuantity, a.TaxID)
			lines = append(lines, entity.ReconciledLine{
				OrderDocument:     doc,
				LotCode:           lot,
				Reference:         order.Reference,
				ClientName:        a.ClientName,
				TaxID:             a.TaxID,
				Quantity:          a.AllocatedQuantity,
				SupplierName:      supplier,
				ConfirmationState: r.confirmation(key, s.Supports, true),
				Responsible:       responsible,
				DeliveryKey:       key.String(),
			})
		}
	}
	for _, p := range promoTotals(order.Attachments) {
		key := matching.KeyFor(doc, lot, p.reference, p.quantity, "")
		lines = append(lines, entity.ReconciledLine{
			OrderDocument:     doc,
			LotCode:           lot,
			Reference:         p.reference,
			Quantity:          p.quantity,
			SupplierName:      supplier,
			ConfirmationState: r.confirmation(key, s.Supports, true),
			Responsible:       responsible,
			DeliveryKey:       key.String(),
			Promo:             true,
		})
	}
	return lines, nil, nil
}

// confirmation deriva el estado solo de la existencia del soporte y su factura.
func (r *Reconciler) confirmation(
	key matching.DeliveryKey,
	supports map[matching.DeliveryKey]entity.Support,
	fromDistribution bool,
) string {
	sup, ok := supports[key]
	switch {
	case ok && sup.HasInvoice():
		return entity.StateDelivered
	case ok:
		return entity.StateDeliveredPendingInvoice
	case fromDistribution && r.markPendingInvoice:
		return entity.StatePendingInvoice
	default:
		return entity.StateNone
	}
}

func (r *Reconciler) supplierName(code string) string {
	code = strings.TrimSpace(code)
	if name, ok := r.suppliers[code]; ok {
		return name
	}
	return code
}

func (r *Reconciler) documentFor(orderID string) string {
	id := strings.TrimSpace(orderID)
	if r.documentPrefix == "" || strings.HasPrefix(id, r.documentPrefix) {
		return id
	}
	return r.documentPrefix + id
}

// distributionFor busca la distribución por id de pedido o por documento.
func (r *Reconciler) distributionFor(orderID string, dists map[string]entity.ClientDistribution) (entity.ClientDistribution, bool) {
	if d, ok := dists[strings.TrimSpace(orderID)]; ok {
		return d, true
	}
	d, ok := dists[r.documentFor(orderID)]
	return d, ok
}

type promoTotal struct {
	reference string
	quantity  int
}

// promoTotals agrupa los anexos PROMO por referencia, en orden de aparición.
func promoTotals(attachments []entity.Attachment) []promoTotal {
	var out []promoTotal
	index := make(map[string]int)
	for _, a := range attachments {
		if !a.IsPromo() {
			continue
		}
		ref := strings.TrimSpace(a.Reference)
		if ref == "" {
			continue
		}
		if i, ok := index[ref]; ok {
			out[i].quantity += a.Quantity
			continue
		}
		index[ref] = len(out)
		out = append(out, promoTotal{reference: ref, quantity: a.Quantity})
	}
	kept := out[:0]
	for _, p := range out {
		if p.quantity > 0 {
			kept = append(kept, p)
		}
	}
	return kept
}
