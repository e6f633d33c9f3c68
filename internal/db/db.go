package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"president-insights/internal/config"
)

// Schema crea las tablas de analisis; pgvector debe estar disponible en el servidor.
const Schema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS analyses (
	id                UUID PRIMARY KEY,
	handle            TEXT NOT NULL,
	name              TEXT NOT NULL,
	profile_image_url TEXT NOT NULL DEFAULT '',
	word_count        INTEGER NOT NULL DEFAULT 0,
	traits            JSONB NOT NULL,
	trait_vector      vector(30) NOT NULL,
	analyzed_at       TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS analyses_handle_analyzed_at_idx ON analyses (handle, analyzed_at DESC);

CREATE TABLE IF NOT EXISTS analysis_traits (
	analysis_id UUID NOT NULL REFERENCES analyses(id) ON DELETE CASCADE,
	trait       TEXT NOT NULL,
	percentage  DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (analysis_id, trait)
);
`

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("database url not configured")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = 5
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

// Migrate aplica Schema; es idempotente.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, Schema)
	return err
}
