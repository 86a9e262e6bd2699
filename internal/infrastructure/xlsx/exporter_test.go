package xlsx_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/despachos-api/internal/domain/entity"
	"github.com/jhoicas/despachos-api/internal/infrastructure/xlsx"
)

func TestExport(t *testing.T) {
	lines := []entity.ReconciledLine{
		{
			OrderDocument: "REC500", LotCode: "77", Reference: "REF1",
			ClientName: "EL TEMPLO DE LA MODA S.A.S.", TaxID: "805027653", Quantity: 10,
			InvoiceNumber: "FEV-001", ConfirmationState: entity.StateDelivered,
			DeliveryKey: "REC500_77_REF1_10_805027653",
		},
		{OrderDocument: "REC500", LotCode: "77", Reference: "P1", Quantity: 3, Promo: true, DeliveryKey: "REC500_77_P1_3_"},
	}

	b, err := xlsx.NewExporter().Export(lines, time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Despachos")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Contains(t, rows[0][0], "05/03/2024")
	assert.Equal(t, "Documento", rows[1][0])
	assert.Equal(t, "Clave de entrega", rows[1][11])
	assert.Equal(t, "REC500", rows[2][0])
	assert.Equal(t, "10", rows[2][5])
	assert.Equal(t, entity.StateDelivered, rows[2][8])
	assert.Equal(t, "SI", rows[3][10])
}

func TestExport_Vacio(t *testing.T) {
	b, err := xlsx.NewExporter().Export(nil, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Despachos")
	require.NoError(t, err)
	assert.Len(t, rows, 2, "título y cabecera")
}
