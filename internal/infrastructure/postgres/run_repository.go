package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/despachos-api/internal/domain/repository"
)

var _ repository.RunRepository = (*RunRepo)(nil)

// RunRepo historial de pasadas de conciliación.
type RunRepo struct {
	pool *pgxpool.Pool
}

// NewRunRepository construye el adaptador.
func NewRunRepository(pool *pgxpool.Pool) *RunRepo {
	return &RunRepo{pool: pool}
}

// Save inserta la pasada. Reintentar con el mismo ID no duplica.
func (r *RunRepo) Save(ctx context.Context, run *repository.ReconciliationRun) error {
	const query = `
	INSERT INTO reconciliation_runs (
	    id, started_at, duration_ms, success, error_message,
	    order_count, line_count, delivered_count,
	    parse_skipped, reconcile_skipped, invoiced_gross_value
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		run.ID,
		run.StartedAt,
		run.Duration.Milliseconds(),
		run.Success,
		run.ErrorMessage,
		run.OrderCount,
		run.LineCount,
		run.DeliveredCount,
		run.ParseSkipped,
		run.ReconcileSkipped,
		run.InvoicedGrossValue,
	)
	if err != nil {
		return fmt.Errorf("runs.Save: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas pasadas, la más reciente primero.
func (r *RunRepo) ListRecent(ctx context.Context, limit int) ([]repository.ReconciliationRun, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
	SELECT id::TEXT, started_at, duration_ms, success, error_message,
	       order_count, line_count, delivered_count,
	       parse_skipped, reconcile_skipped, invoiced_gross_value
	FROM reconciliation_runs
	ORDER BY started_at DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("runs.ListRecent: %w", err)
	}
	defer rows.Close()

	out := make([]repository.ReconciliationRun, 0, limit)
	for rows.Next() {
		var (
			run        repository.ReconciliationRun
			durationMs int64
		)
		if err := rows.Scan(
			&run.ID,
			&run.StartedAt,
			&durationMs,
			&run.Success,
			&run.ErrorMessage,
			&run.OrderCount,
			&run.LineCount,
			&run.DeliveredCount,
			&run.ParseSkipped,
			&run.ReconcileSkipped,
			&run.InvoicedGrossValue,
		); err != nil {
			return nil, fmt.Errorf("runs.ListRecent scan: %w", err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("runs.ListRecent rows: %w", err)
	}
	return out, nil
}
