package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"president-insights/internal/domain"
)

// ErrNotFound indica que no hay analisis guardados para el handle.
var ErrNotFound = errors.New("analysis not found")

type AnalysisRepository interface {
	Create(ctx context.Context, profile domain.PoliticianProfile) error
	Latest(ctx context.Context, handle string) (domain.PoliticianProfile, error)
	ListByHandle(ctx context.Context, handle string, limit int) ([]domain.PoliticianProfile, error)
	Nearest(ctx context.Context, handle string, vector pgvector.Vector, k int) ([]domain.SimilarPolitician, error)
}

type PgAnalysisRepository struct {
	pool *pgxpool.Pool
}

func NewPgAnalysisRepository(pool *pgxpool.Pool) *PgAnalysisRepository {
	return &PgAnalysisRepository{pool: pool}
}

// Create guarda el analisis y una fila por rasgo aplanado en una sola transaccion.
func (r *PgAnalysisRepository) Create(ctx context.Context, profile domain.PoliticianProfile) error {
	traitsJSON, err := json.Marshal(profile.Traits)
	if err != nil {
		return fmt.Errorf("marshal traits: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertAnalysis = `
		INSERT INTO analyses (id, handle, name, profile_image_url, word_count, traits, trait_vector, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := tx.Exec(ctx, insertAnalysis,
		profile.ID,
		profile.Handle,
		profile.Name,
		profile.ProfileImageURL,
		profile.WordCount,
		string(traitsJSON),
		pgvector.NewVector(profile.Traits.Vector()),
		profile.AnalyzedAt,
	); err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	const upsertTrait = `
		INSERT INTO analysis_traits (analysis_id, trait, percentage)
		VALUES ($1, $2, $3)
		ON CONFLICT (analysis_id, trait)
		DO UPDATE SET percentage = EXCLUDED.percentage
	`
	batch := &pgx.Batch{}
	for trait, pct := range profile.Flattened {
		batch.Queue(upsertTrait, profile.ID, trait, pct)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert traits: %w", err)
		}
	}

	return tx.Commit(ctx)
}

const selectAnalysis = `
	SELECT id::text, handle, name, profile_image_url, word_count, traits, analyzed_at
	FROM analyses
`

func (r *PgAnalysisRepository) Latest(ctx context.Context, handle string) (domain.PoliticianProfile, error) {
	query := selectAnalysis + `WHERE handle = $1 ORDER BY analyzed_at DESC LIMIT 1`
	profile, err := scanAnalysis(r.pool.QueryRow(ctx, query, handle))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PoliticianProfile{}, ErrNotFound
	}
	return profile, err
}

func (r *PgAnalysisRepository) ListByHandle(ctx context.Context, handle string, limit int) ([]domain.PoliticianProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	query := selectAnalysis + `WHERE handle = $1 ORDER BY analyzed_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, handle, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.PoliticianProfile
	for rows.Next() {
		p, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// Nearest compara el vector contra el ultimo analisis de cada otro handle (distancia L2).
func (r *PgAnalysisRepository) Nearest(ctx context.Context, handle string, vector pgvector.Vector, k int) ([]domain.SimilarPolitician, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT handle, name, trait_vector <-> $2 AS distance
		FROM (
			SELECT DISTINCT ON (handle) handle, name, trait_vector
			FROM analyses
			WHERE handle <> $1
			ORDER BY handle, analyzed_at DESC
		) latest
		ORDER BY distance
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, handle, vector, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SimilarPolitician
	for rows.Next() {
		var s domain.SimilarPolitician
		if err := rows.Scan(&s.Handle, &s.Name, &s.Distance); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func scanAnalysis(row pgx.Row) (domain.PoliticianProfile, error) {
	var (
		p          domain.PoliticianProfile
		traitsJSON []byte
	)
	if err := row.Scan(
		&p.ID,
		&p.Handle,
		&p.Name,
		&p.ProfileImageURL,
		&p.WordCount,
		&traitsJSON,
		&p.AnalyzedAt,
	); err != nil {
		return domain.PoliticianProfile{}, err
	}
	if err := json.Unmarshal(traitsJSON, &p.Traits); err != nil {
		return domain.PoliticianProfile{}, fmt.Errorf("unmarshal traits: %w", err)
	}
	return p, nil
}
