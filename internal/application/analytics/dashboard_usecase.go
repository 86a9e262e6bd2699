// Package analytics resumen de la vista conciliada para el panel de administración.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/despachos-api/internal/application/dto"
	"github.com/jhoicas/despachos-api/internal/application/reconcile"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
	"github.com/jhoicas/despachos-api/internal/domain/repository"
)

const (
	dashboardRecentRuns = 10 // pasadas en el widget de historial
	dashboardTopClients = 10
	labelNoState        = "SIN SOPORTE"
	labelPromo          = "PROMOCIÓN"
)

// ViewSource vista conciliada y su historial de pasadas.
type ViewSource interface {
	View(ctx context.Context) (*reconcile.View, bool, error)
	Runs(ctx context.Context, limit int) ([]repository.ReconciliationRun, error)
}

// DashboardUseCase genera el resumen por estado, proveedor y cliente.
type DashboardUseCase struct {
	source ViewSource
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(source ViewSource) *DashboardUseCase {
	return &DashboardUseCase{source: source}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Dos llamadas en paralelo:
//  1. View()  → totales y agrupaciones (puede disparar una pasada)
//  2. Runs()  → historial; si falla el resumen sale sin historial
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type viewResult struct {
		view  *reconcile.View
		stale bool
		err   error
	}
	type runsResult struct {
		runs []repository.ReconciliationRun
		err  error
	}

	viewCh := make(chan viewResult, 1)
	runsCh := make(chan runsResult, 1)

	go func() {
		v, stale, err := uc.source.View(ctx)
		viewCh <- viewResult{v, stale, err}
	}()
	go func() {
		runs, err := uc.source.Runs(ctx, dashboardRecentRuns)
		runsCh <- runsResult{runs, err}
	}()

	view := <-viewCh
	runs := <-runsCh

	if view.err != nil {
		return nil, fmt.Errorf("dashboard: vista: %w", view.err)
	}

	out := summarize(view.view.Lines)
	out.GeneratedAt = view.view.GeneratedAt
	out.Stale = view.stale
	out.InvoicedValue = view.view.Stats.InvoicedGrossValue.Round(2)
	out.RecentRuns = make([]dto.RunDTO, 0, len(runs.runs))
	if runs.err == nil {
		for _, r := range runs.runs {
			out.RecentRuns = append(out.RecentRuns, toRunDTO(r))
		}
	}
	return out, nil
}

func summarize(lines []entity.ReconciledLine) *dto.DashboardSummaryDTO {
	out := &dto.DashboardSummaryDTO{TotalLines: len(lines)}
	docs := make(map[string]struct{})
	byState := newCounter()
	bySupplier := newCounter()
	byClient := newCounter()

	for _, l := range lines {
		docs[l.OrderDocument] = struct{}{}
		out.TotalQuantity += l.Quantity

		state := l.ConfirmationState
		if state == entity.StateNone {
			state = labelNoState
		}
		byState.add(state, l.Quantity)
		bySupplier.add(l.SupplierName, l.Quantity)
		client := l.ClientName
		if l.Promo {
			client = labelPromo
		}
		byClient.add(client, l.Quantity)
	}

	out.TotalDocs = len(docs)
	out.ByState = byState.sorted(0)
	out.BySupplier = bySupplier.sorted(0)
	out.ByClient = byClient.sorted(dashboardTopClients)
	return out
}

type counter map[string]*dto.CountDTO

func newCounter() counter { return make(counter) }

func (c counter) add(label string, qty int) {
	e, ok := c[label]
	if !ok {
		e = &dto.CountDTO{Label: label}
		c[label] = e
	}
	e.Lines++
	e.Quantity += qty
}

// sorted ordena por líneas desc y etiqueta asc. top <= 0 = todas.
func (c counter) sorted(top int) []dto.CountDTO {
	out := make([]dto.CountDTO, 0, len(c))
	for _, e := range c {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Lines != out[j].Lines {
			return out[i].Lines > out[j].Lines
		}
		return out[i].Label < out[j].Label
	})
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out
}

func toRunDTO(r repository.ReconciliationRun) dto.RunDTO {
	return dto.RunDTO{
		ID:               r.ID,
		StartedAt:        r.StartedAt.In(time.UTC),
		DurationMs:       r.Duration.Milliseconds(),
		Success:          r.Success,
		Error:            r.ErrorMessage,
		Lines:            r.LineCount,
		Delivered:        r.DeliveredCount,
		ParseSkipped:     r.ParseSkipped,
		ReconcileSkipped: r.ReconcileSkipped,
		InvoicedValue:    r.InvoicedGrossValue,
	}
}
