package reconcile

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jhoicas/despachos-api/internal/domain"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
)

const sourceOrders = "pedidos"

// orderDoc documento JSON que la hoja de pedidos guarda en una sola celda.
type orderDoc struct {
	A          flexString `json:"A"`
	Lote       flexString `json:"LOTE"`
	Referencia flexString `json:"REFERENCIA"`
	Cantidad   flexString `json:"CANTIDAD"`
	Proveedor  flexString `json:"PROVEEDOR"`
	Tipo       flexString `json:"TIPO"`
	Anexos     []anexoDoc `json:"ANEXOS"`
}

type anexoDoc struct {
	Tipo       flexString `json:"TIPO"`
	Referencia flexString `json:"REFERENCIA"`
	Cantidad   flexString `json:"CANTIDAD"`
}

// ParseOrders convierte la columna A de la hoja de pedidos en pedidos tipados.
//
// Solo se conservan documentos cuyo TIPO es marker. Un JSON mal formado se
// omite como ParseError (las celdas se editan a mano); un documento sin A o
// sin LOTE se descarta como ReconciliationError.
func ParseOrders(rows [][]string, marker string, st *Stats) []entity.Order {
	out := make([]entity.Order, 0, len(rows))
	for i, row := range rows {
		raw := cell(row, 0)
		if raw == "" {
			continue
		}
		var doc orderDoc
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			st.skip(&domain.ParseError{Source: sourceOrders, Row: i, Err: err})
			continue
		}
		if doc.Tipo.String() != marker {
			continue
		}
		order, err := orderFromDoc(doc, raw)
		if err != nil {
			st.skip(wrapRowErr(sourceOrders, i, doc.A.String(), err))
			continue
		}
		out = append(out, order)
	}
	st.Orders = len(out)
	return out
}

func orderFromDoc(doc orderDoc, raw string) (entity.Order, error) {
	id := doc.A.String()
	if id == "" {
		return entity.Order{}, domain.ErrMissingDocument
	}
	if doc.Lote.String() == "" {
		return entity.Order{}, domain.ErrMissingLot
	}
	qty, err := parseQuantity(doc.Cantidad.String())
	if err != nil {
		return entity.Order{}, err
	}
	order := entity.Order{
		ID:            id,
		LotCode:       doc.Lote.String(),
		Reference:     doc.Referencia.String(),
		Quantity:      qty,
		SupplierCode:  doc.Proveedor.String(),
		RawTimestamps: timestampFields(raw),
	}
	for _, a := range doc.Anexos {
		aq, err := parseQuantity(a.Cantidad.String())
		if err != nil {
			continue
		}
		order.Attachments = append(order.Attachments, entity.Attachment{
			Type:      strings.ToUpper(a.Tipo.String()),
			Reference: a.Referencia.String(),
			Quantity:  aq,
		})
	}
	return order, nil
}

// timestampFields conserva los campos FECHA* del documento como texto.
func timestampFields(raw string) map[string]string {
	var all map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil
	}
	var out map[string]string
	for k, v := range all {
		if !strings.HasPrefix(strings.ToUpper(k), "FECHA") {
			continue
		}
		var f flexString
		if err := json.Unmarshal(v, &f); err != nil || f == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[k] = f.String()
	}
	return out
}

// wrapRowErr clasifica el error de un registro: faltantes de campo requerido
// son ReconciliationError; el resto, ParseError.
func wrapRowErr(source string, row int, id string, err error) error {
	if errors.Is(err, domain.ErrMissingLot) || errors.Is(err, domain.ErrMissingDocument) {
		return &domain.ReconciliationError{RecordID: source + ":" + id, Err: err}
	}
	return &domain.ParseError{Source: source, Row: row, Err: err}
}
