// Comando migrate: aplica o revierte el esquema del historial de pasadas.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"github.com/jhoicas/despachos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/despachos-api/pkg/config"
	"github.com/jhoicas/despachos-api/pkg/logger"
)

const usage = "Uso: migrate [up|down|steps N|version]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo crear el migrador")
	}
	defer m.Close()

	switch cmd := os.Args[1]; cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migrate up falló")
		}
		log.Info().Msg("migraciones aplicadas")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migrate down falló")
		}
		log.Info().Msg("migraciones revertidas")

	case "steps":
		if len(os.Args) < 3 {
			log.Fatal().Msg("steps requiere un número")
		}
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Msg("argumento de steps inválido")
		}
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migrate steps falló")
		}
		log.Info().Int("pasos", n).Msg("pasos aplicados")

	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal().Err(err).Msg("no se pudo leer la versión")
		}
		fmt.Printf("versión: %d, dirty: %v\n", version, dirty)

	default:
		fmt.Printf("comando desconocido: %s\n%s\n", cmd, usage)
		os.Exit(1)
	}
}
