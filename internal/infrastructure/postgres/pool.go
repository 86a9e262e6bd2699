package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"

	"github.com/jhoicas/despachos-api/pkg/config"
)

// Una escritura por pasada y lecturas del panel: pocas conexiones bastan.
const (
	historyMaxConns    = 5
	historyMinConns    = 1
	historyPingTimeout = 5 * time.Second
)

// NewPool abre el pool del historial de pasadas y verifica la conexión.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := PoolConfig(cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.NewPool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, historyPingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.NewPool: ping: %w", err)
	}
	return pool, nil
}

// PoolConfig arma la configuración del pool sin conectar: límites del
// historial, dial con preferencia IPv4 y codec NUMERIC -> decimal.Decimal.
func PoolConfig(dsn string) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.PoolConfig: %w", err)
	}

	poolCfg.MaxConns = historyMaxConns
	poolCfg.MinConns = historyMinConns
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute
	poolCfg.HealthCheckPeriod = time.Minute
	poolCfg.ConnConfig.DialFunc = dialPreferIPv4

	poolCfg.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolCfg, nil
}

// dialPreferIPv4 intenta tcp4 primero; en contenedores sin IPv6 los hosts
// administrados (Supabase) pueden resolver AAAA y fallar.
func dialPreferIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	if conn, err := d.DialContext(ctx, "tcp4", addr); err == nil {
		return conn, nil
	}
	return d.DialContext(ctx, network, addr)
}
