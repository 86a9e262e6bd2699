// Package xlsx exporta la vista conciliada a una hoja de Excel.
package xlsx

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/despachos-api/internal/domain/entity"
)

const sheetName = "Despachos"

var headers = []string{
	"Documento", "Lote", "Referencia", "Cliente", "NIT", "Cantidad",
	"Factura", "Proveedor", "Confirmación", "Responsable", "Promo", "Clave de entrega",
}

var colWidths = map[string]float64{
	"A": 12, "B": 10, "C": 14, "D": 38, "E": 14, "F": 10,
	"G": 12, "H": 28, "I": 30, "J": 18, "K": 8, "L": 40,
}

// Exporter genera el libro con una fila por línea conciliada.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

type styles struct {
	title, header, base, delivered, pending int
}

// Export devuelve los bytes del .xlsx. Una vista vacía produce solo la cabecera.
func (e *Exporter) Export(lines []entity.ReconciledLine, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	st, err := buildStyles(f)
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilos: %w", err)
	}
	for c, w := range colWidths {
		_ = f.SetColWidth(sheetName, c, c, w)
	}

	title := fmt.Sprintf("Conciliación de despachos - %s", generatedAt.Format("02/01/2006 15:04"))
	_ = f.MergeCell(sheetName, "A1", "L1")
	_ = f.SetCellValue(sheetName, "A1", title)
	_ = f.SetCellStyle(sheetName, "A1", "L1", st.title)

	if err := f.SetSheetRow(sheetName, "A2", &headers); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	_ = f.SetCellStyle(sheetName, "A2", "L2", st.header)

	for i, l := range lines {
		r := i + 3
		row := []interface{}{
			l.OrderDocument, l.LotCode, l.Reference, l.ClientName, l.TaxID, l.Quantity,
			l.InvoiceNumber, l.SupplierName, l.ConfirmationState, l.Responsible, promoLabel(l.Promo), l.DeliveryKey,
		}
		cell := fmt.Sprintf("A%d", r)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", r, err)
		}
		_ = f.SetCellStyle(sheetName, cell, fmt.Sprintf("L%d", r), st.base)
		state := fmt.Sprintf("I%d", r)
		switch {
		case l.ConfirmationState == entity.StateDelivered:
			_ = f.SetCellStyle(sheetName, state, state, st.delivered)
		case l.ConfirmationState != entity.StateNone:
			_ = f.SetCellStyle(sheetName, state, state, st.pending)
		}
	}

	last := len(lines) + 2
	if err := f.AutoFilter(sheetName, fmt.Sprintf("A2:L%d", last), nil); err != nil {
		return nil, fmt.Errorf("xlsx: autofiltro: %w", err)
	}
	_ = f.SetPanes(sheetName, &excelize.Panes{
		Freeze: true, YSplit: 2, TopLeftCell: "A3", ActivePane: "bottomLeft",
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func buildStyles(f *excelize.File) (styles, error) {
	var (
		s   styles
		err error
	)
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "00467F"},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}); err != nil {
		return s, err
	}
	if s.base, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Vertical: "center"},
	}); err != nil {
		return s, err
	}
	if s.delivered, err = f.NewStyle(&excelize.Style{
		Border: border,
		Font:   &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"92D050"}},
	}); err != nil {
		return s, err
	}
	s.pending, err = f.NewStyle(&excelize.Style{
		Border: border,
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC000"}},
	})
	return s, err
}

func promoLabel(promo bool) string {
	if promo {
		return "SI"
	}
	return ""
}
