package main

import (
	"github.com/jhoicas/despachos-api/internal/application/reconcile"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
	"github.com/jhoicas/despachos-api/pkg/config"
)

// pipelineOptions parte del preset y aplica los overrides de configuración.
func pipelineOptions(cfg config.PipelineConfig) (reconcile.Options, error) {
	opts, err := reconcile.Preset(cfg.Preset)
	if err != nil {
		return reconcile.Options{}, err
	}
	if cfg.CacheTTL != nil {
		opts.CacheTTL = *cfg.CacheTTL
	}
	if cfg.FetchTimeout > 0 {
		opts.FetchTimeout = cfg.FetchTimeout
	}
	if opts, err = opts.WithRanges(cfg.Ranges); err != nil {
		return reconcile.Options{}, err
	}
	if len(cfg.KnownClients) > 0 {
		opts.KnownClients = make([]entity.KnownClient, 0, len(cfg.KnownClients))
		for _, c := range cfg.KnownClients {
			opts.KnownClients = append(opts.KnownClients, entity.KnownClient{Role: c.Role, Name: c.Name, TaxID: c.TaxID})
		}
	}
	opts = opts.WithSpreadsheet(cfg.SpreadsheetID)
	return opts, opts.Validate()
}
