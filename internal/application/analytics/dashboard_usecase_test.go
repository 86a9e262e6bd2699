package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despachos-api/internal/application/analytics"
	"github.com/jhoicas/despachos-api/internal/application/reconcile"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
	"github.com/jhoicas/despachos-api/internal/domain/repository"
)

type stubSource struct {
	view    *reconcile.View
	stale   bool
	viewErr error
	runs    []repository.ReconciliationRun
	runsErr error
}

func (s *stubSource) View(context.Context) (*reconcile.View, bool, error) {
	return s.view, s.stale, s.viewErr
}

func (s *stubSource) Runs(context.Context, int) ([]repository.ReconciliationRun, error) {
	return s.runs, s.runsErr
}

func sampleView() *reconcile.View {
	return &reconcile.View{
		GeneratedAt: time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC),
		Stats:       reconcile.Stats{InvoicedGrossValue: decimal.RequireFromString("1500000.456")},
		Lines: []entity.ReconciledLine{
			{OrderDocument: "REC500", ClientName: "TEMPLO", SupplierName: "MODA TOTAL", Quantity: 10, ConfirmationState: entity.StateDelivered},
			{OrderDocument: "REC500", ClientName: "SHOPPING", SupplierName: "MODA TOTAL", Quantity: 4},
			{OrderDocument: "REC600", ClientName: "TEMPLO", SupplierName: "TEXTILES", Quantity: 6, ConfirmationState: entity.StateDelivered},
			{OrderDocument: "REC600", SupplierName: "TEXTILES", Quantity: 2, Promo: true},
		},
	}
}

func TestGetSummary(t *testing.T) {
	src := &stubSource{
		view: sampleView(),
		runs: []repository.ReconciliationRun{{ID: "r1", Success: true, Duration: 1500 * time.Millisecond, LineCount: 4}},
	}

	got, err := analytics.NewDashboardUseCase(src).GetSummary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, got.TotalLines)
	assert.Equal(t, 2, got.TotalDocs)
	assert.Equal(t, 22, got.TotalQuantity)
	assert.Equal(t, "1500000.46", got.InvoicedValue.String())
	assert.False(t, got.Stale)

	require.Len(t, got.ByState, 2)
	assert.Equal(t, entity.StateDelivered, got.ByState[0].Label)
	assert.Equal(t, 16, got.ByState[0].Quantity)
	assert.Equal(t, "SIN SOPORTE", got.ByState[1].Label)

	require.Len(t, got.ByClient, 3)
	assert.Equal(t, "TEMPLO", got.ByClient[0].Label)
	assert.Equal(t, 2, got.ByClient[0].Lines)

	require.Len(t, got.RecentRuns, 1)
	assert.Equal(t, int64(1500), got.RecentRuns[0].DurationMs)
}

func TestGetSummary_SinHistorial(t *testing.T) {
	src := &stubSource{view: sampleView(), stale: true, runsErr: errors.New("db caída")}

	got, err := analytics.NewDashboardUseCase(src).GetSummary(context.Background())

	require.NoError(t, err)
	assert.True(t, got.Stale)
	assert.NotNil(t, got.RecentRuns)
	assert.Empty(t, got.RecentRuns)
}

func TestGetSummary_ErrorDeVista(t *testing.T) {
	src := &stubSource{viewErr: errors.New("fuente pedidos: timeout")}

	_, err := analytics.NewDashboardUseCase(src).GetSummary(context.Background())

	assert.ErrorContains(t, err, "timeout")
}
