// Package pdf genera la planilla de despacho de un documento: una fila por
// línea conciliada con su QR de clave de entrega, para firmar en bodega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Documento + Lote     │  Proveedor + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: QR | Cliente + NIT | Ref | Cant | Factura | Estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades / líneas entregadas                      │
//	│  FIRMAS: despacha / recibe                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/despachos-api/internal/domain"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOK      = &props.Color{Red: 0, Green: 120, Blue: 60}
	colorWarn    = &props.Color{Red: 190, Green: 110, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// DispatchSheetGenerator genera la planilla de despacho con Maroto v2.
type DispatchSheetGenerator struct {
	company string
}

// NewDispatchSheetGenerator construye el generador. company aparece como autor.
func NewDispatchSheetGenerator(company string) *DispatchSheetGenerator {
	return &DispatchSheetGenerator{company: company}
}

// Generate devuelve los bytes del PDF para las líneas de un documento.
// Sin líneas devuelve domain.ErrNotFound.
func (g *DispatchSheetGenerator) Generate(
	_ context.Context,
	document string,
	lines []entity.ReconciledLine,
	generatedAt time.Time,
) ([]byte, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("pdf: documento %s: %w", document, domain.ErrNotFound)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Planilla de despacho "+document, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(document, lines[0], generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lines))
	m.AddRows(row.New(12))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar planilla: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: documento + lote (izq) y proveedor + fecha (der).
func headerRow(document string, first entity.ReconciledLine, generatedAt time.Time) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New("PLANILLA DE DESPACHO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(document, props.Text{
				Style: fontstyle.Bold, Size: 14, Top: 6,
			}),
			text.New("Lote: "+first.LotCode, props.Text{
				Size: 9, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(nonEmpty(first.SupplierName, "-"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Responsable: "+nonEmpty(first.Responsible, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("QR", 2, align.Center),
		h("Cliente", 4, align.Left),
		h("Ref.", 2, align.Left),
		h("Cant.", 1, align.Center),
		h("Factura", 1, align.Left),
		h("Estado", 2, align.Left),
	)
}

// tableLineRows: una fila por línea; el QR codifica la clave de entrega que
// se escanea al registrar el soporte.
func tableLineRows(lines []entity.ReconciledLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		client := l.ClientName
		if l.Promo {
			client = "PROMOCIÓN"
		}
		result = append(result, row.New(24).Add(
			col.New(2).Add(code.NewQr(l.DeliveryKey, props.Rect{Percent: 90, Center: true})),
			col.New(4).Add(
				text.New(client, props.Text{Style: fontstyle.Bold, Size: 8, Top: 4, Left: 1}),
				text.New("NIT: "+nonEmpty(l.TaxID, "-"), props.Text{Size: 7, Top: 10, Left: 1, Color: colorGray}),
			),
			col.New(2).Add(text.New(l.Reference, props.Text{Size: 8, Top: 4, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Top: 4, Align: align.Center})),
			col.New(1).Add(text.New(nonEmpty(l.InvoiceNumber, "-"), props.Text{Size: 7, Top: 4, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(l.ConfirmationState, "SIN SOPORTE"), props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 4, Left: 1, Color: stateColor(l),
			})),
		))
	}
	return result
}

func totalsRow(lines []entity.ReconciledLine) core.Row {
	units, delivered := 0, 0
	for _, l := range lines {
		units += l.Quantity
		if l.Delivered() {
			delivered++
		}
	}
	return row.New(10).Add(
		col.New(6),
		col.New(6).Add(text.New(
			fmt.Sprintf("Unidades: %d   |   Entregadas: %d de %d líneas", units, delivered, len(lines)),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary},
		)),
	)
}

func signatureRow() core.Row {
	sign := func(label string) core.Col {
		return col.New(6).Add(
			text.New("______________________________", props.Text{Size: 9, Align: align.Center}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 5, Color: colorGray}),
		)
	}
	return row.New(14).Add(sign("Despacha"), sign("Recibe"))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func stateColor(l entity.ReconciledLine) *props.Color {
	switch {
	case l.ConfirmationState == entity.StateDelivered:
		return colorOK
	case l.Delivered():
		return colorWarn
	default:
		return colorGray
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
