package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despachos-api/internal/domain"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
	"github.com/jhoicas/despachos-api/internal/infrastructure/pdf"
)

func TestGenerate_Planilla(t *testing.T) {
	lines := []entity.ReconciledLine{
		{
			OrderDocument: "REC500", LotCode: "77", Reference: "REF1",
			ClientName: "EL TEMPLO DE LA MODA S.A.S.", TaxID: "805027653", Quantity: 10,
			InvoiceNumber: "FEV-001", SupplierName: "CONFECCIONES MODA TOTAL",
			ConfirmationState: entity.StateDelivered, DeliveryKey: "REC500_77_REF1_10_805027653",
		},
		{
			OrderDocument: "REC500", LotCode: "77", Reference: "P1", Quantity: 3,
			Promo: true, DeliveryKey: "REC500_77_P1_3_",
		},
	}
	g := pdf.NewDispatchSheetGenerator("Despachos")

	b, err := g.Generate(context.Background(), "REC500", lines, time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Greater(t, len(b), 4)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestGenerate_SinLineas(t *testing.T) {
	_, err := pdf.NewDispatchSheetGenerator("x").Generate(context.Background(), "REC999", nil, time.Now())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
