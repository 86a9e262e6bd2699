// Package reconcile implementa el pipeline de conciliación de despachos:
// lectura paralela de fuentes, parseo, conciliación y caché de la vista.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/despachos-api/internal/application/dto"
	"github.com/jhoicas/despachos-api/internal/domain"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
	"github.com/jhoicas/despachos-api/internal/domain/matching"
	"github.com/jhoicas/despachos-api/internal/domain/repository"
	"github.com/jhoicas/despachos-api/pkg/cache"
)

const (
	viewKey        = "all"
	runSaveTimeout = 3 * time.Second
)

// View resultado de una pasada completa.
type View struct {
	Lines       []entity.ReconciledLine
	Stats       Stats
	GeneratedAt time.Time
}

// Service pipeline de conciliación con su propia caché y configuración.
// Es seguro para uso concurrente.
type Service struct {
	source     repository.SheetSource
	runs       repository.RunRepository
	opts       Options
	matcher    *matching.ClientMatcher
	reconciler *Reconciler
	cache      *cache.TTL[*View]
	now        func() time.Time
	log        zerolog.Logger
}

// NewService construye el pipeline. runs puede ser nil (sin historial).
// now puede ser nil (time.Now).
func NewService(
	source repository.SheetSource,
	runs repository.RunRepository,
	opts Options,
	now func() time.Time,
	log zerolog.Logger,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		source:     source,
		runs:       runs,
		opts:       opts,
		matcher:    matching.NewClientMatcher(opts.KnownClients),
		reconciler: NewReconciler(opts),
		cache:      cache.NewTTL[*View](opts.CacheTTL, now),
		now:        now,
		log:        log.With().Str("component", "reconcile").Logger(),
	}
}

// GetAll devuelve todas las líneas conciliadas, desde la caché si está vigente.
func (s *Service) GetAll(ctx context.Context) dto.Envelope[[]entity.ReconciledLine] {
	view, err := s.load(ctx, false)
	return s.envelope(view, err, nil)
}

// Refresh ejecuta una pasada nueva sin consultar la caché. Si falla, la
// vista anterior sigue en caché.
func (s *Service) Refresh(ctx context.Context) dto.Envelope[[]entity.ReconciledLine] {
	view, err := s.load(ctx, true)
	return s.envelope(view, err, nil)
}

// FindByDocument devuelve las líneas cuyo documento, factura o lote coincide
// con el código escaneado (sin distinguir mayúsculas).
func (s *Service) FindByDocument(ctx context.Context, code string) dto.Envelope[[]entity.ReconciledLine] {
	code = strings.TrimSpace(code)
	view, err := s.load(ctx, false)
	return s.envelope(view, err, func(l entity.ReconciledLine) bool {
		return strings.EqualFold(l.OrderDocument, code) ||
			strings.EqualFold(l.InvoiceNumber, code) ||
			strings.EqualFold(l.LotCode, code)
	})
}

// View devuelve la vista completa (con estadísticas). stale indica que la
// última pasada falló y la vista viene de la caché.
func (s *Service) View(ctx context.Context) (view *View, stale bool, err error) {
	view, err = s.load(ctx, false)
	if err != nil && view != nil {
		return view, true, nil
	}
	return view, false, err
}

// load devuelve la vista en caché o ejecuta una pasada. Si la pasada falla y
// hay una vista vigente, devuelve ambas: la vista y el error.
func (s *Service) load(ctx context.Context, force bool) (*View, error) {
	if !force {
		if v, ok := s.cache.Get(viewKey); ok {
			return v, nil
		}
	}
	view, err := s.run(ctx)
	if err != nil {
		if cached, ok := s.cache.Get(viewKey); ok {
			return cached, err
		}
		return nil, err
	}
	s.cache.Set(viewKey, view)
	return view, nil
}

func (s *Service) envelope(
	view *View,
	err error,
	keep func(entity.ReconciledLine) bool,
) dto.Envelope[[]entity.ReconciledLine] {
	env := dto.Envelope[[]entity.ReconciledLine]{Success: err == nil, Timestamp: s.now()}
	if err != nil {
		env.Error = err.Error()
	}
	if view == nil {
		return env
	}
	if err == nil {
		env.Timestamp = view.GeneratedAt
	}
	if keep == nil {
		env.Data = view.Lines
		return env
	}
	env.Data = []entity.ReconciledLine{}
	for _, l := range view.Lines {
		if keep(l) {
			env.Data = append(env.Data, l)
		}
	}
	return env
}

// run ejecuta una pasada completa: lectura paralela, parseo y conciliación.
func (s *Service) run(ctx context.Context) (*View, error) {
	started := s.now()
	run := &repository.ReconciliationRun{ID: uuid.NewString(), StartedAt: started}

	tables, err := s.fetchAll(ctx)
	if err != nil {
		run.Duration = s.now().Sub(started)
		run.ErrorMessage = err.Error()
		s.log.Error().Err(err).Dur("duracion", run.Duration).Msg("lectura de fuentes fallida")
		s.saveRun(ctx, run)
		return nil, err
	}

	var st Stats
	snap := Snapshot{
		Orders: ParseOrders(tables.orders, s.opts.CompleteLotMarker, &st),
		Invoices: ParseInvoices(tables.invoices, tables.invoicesV2, InvoiceRules{
			Matcher:          s.matcher,
			ValidPrefixes:    s.opts.ValidInvoicePrefixes,
			ExcludedStatuses: s.opts.ExcludedStatuses,
		}, &st),
		Supports:      ParseSupports(tables.supports, &st),
		Distributions: ParseDistributions(tables.distributions, s.opts.KnownClients, &st),
		Responsibles:  ParseResponsibles(tables.responsibles),
	}
	lines := s.reconciler.Reconcile(snap, &st)

	view := &View{Lines: lines, Stats: st, GeneratedAt: s.now()}

	run.Duration = view.GeneratedAt.Sub(started)
	run.Success = true
	run.OrderCount = st.Orders
	run.LineCount = st.Lines
	run.DeliveredCount = countDelivered(lines)
	run.ParseSkipped = st.ParseSkipped
	run.ReconcileSkipped = st.ReconcileSkipped
	run.InvoicedGrossValue = st.InvoicedGrossValue

	ev := s.log.Info()
	if st.ParseSkipped+st.ReconcileSkipped > 0 {
		ev = s.log.Warn().Errs("incidencias", st.Issues)
	}
	ev.Str("run_id", run.ID).
		Dur("duracion", run.Duration).
		Int("pedidos", st.Orders).
		Int("facturas", st.Invoices).
		Int("soportes", st.Supports).
		Int("lineas", st.Lines).
		Int("omitidas_parseo", st.ParseSkipped).
		Int("omitidas_conciliacion", st.ReconcileSkipped).
		Msg("conciliación completada")

	s.saveRun(ctx, run)
	return view, nil
}

type rawTables struct {
	orders, invoices, invoicesV2, supports, distributions, responsibles [][]string
}

// fetchAll lee todas las fuentes en paralelo y espera a que terminen.
// La primera falla cancela las demás y aborta la pasada.
func (s *Service) fetchAll(ctx context.Context) (rawTables, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()

	var t rawTables
	jobs := []struct {
		ref      repository.SourceRef
		dst      *[][]string
		optional bool
	}{
		{s.opts.Sources.Orders, &t.orders, false},
		{s.opts.Sources.Invoices, &t.invoices, false},
		{s.opts.Sources.InvoicesV2, &t.invoicesV2, true},
		{s.opts.Sources.Supports, &t.supports, false},
		{s.opts.Sources.Distributions, &t.distributions, false},
		{s.opts.Sources.Responsibles, &t.responsibles, true},
	}

	for _, job := range jobs {
		if !job.optional && !job.ref.Configured() {
			return rawTables{}, &domain.FetchError{Source: job.ref.Name, Err: errors.New("fuente no configurada")}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		if !job.ref.Configured() {
			continue
		}
		g.Go(func() error {
			rows, err := s.source.ReadRange(gctx, job.ref)
			if err != nil {
				if domain.IsFetchError(err) {
					return err
				}
				return &domain.FetchError{Source: job.ref.Name, Err: err}
			}
			*job.dst = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rawTables{}, fmt.Errorf("reconcile: %w", err)
	}
	return t, nil
}

func (s *Service) saveRun(ctx context.Context, run *repository.ReconciliationRun) {
	if s.runs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), runSaveTimeout)
	defer cancel()
	if err := s.runs.Save(ctx, run); err != nil {
		s.log.Warn().Err(err).Str("run_id", run.ID).Msg("no se pudo registrar la pasada")
	}
}

// Runs devuelve las últimas pasadas registradas (vacío sin historial).
func (s *Service) Runs(ctx context.Context, limit int) ([]repository.ReconciliationRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.ListRecent(ctx, limit)
}

func countDelivered(lines []entity.ReconciledLine) int {
	n := 0
	for _, l := range lines {
		if l.Delivered() {
			n++
		}
	}
	return n
}
