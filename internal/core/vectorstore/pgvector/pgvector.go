// Package pgvector stores points in Postgres with the pgvector extension.
// It is the self-hosted alternative to the Qdrant backend.
package pgvector

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/markdave123-py/VectorVault/internal/models"
)

//go:embed scripts/initdb.sql
var bootstrapFS embed.FS

type Store struct {
	db *sql.DB
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// EnsureCollection runs the bootstrap script, creating the vector extension
// and the points table sized to vectorSize. Safe to call repeatedly.
func (s *Store) EnsureCollection(ctx context.Context, vectorSize int) error {
	if vectorSize <= 0 {
		return fmt.Errorf("invalid vector size %d", vectorSize)
	}

	ctxBoot, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	sqlBytes, err := bootstrapFS.ReadFile("scripts/initdb.sql")
	if err != nil {
		return fmt.Errorf("read initdb.sql: %w", err)
	}

	tx, err := s.db.BeginTx(ctxBoot, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if _, err := tx.ExecContext(ctxBoot, fmt.Sprintf(string(sqlBytes), vectorSize)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("exec bootstrap: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bootstrap: %w", err)
	}
	return nil
}

// UpsertBatch writes points in a single transaction. Conflicting IDs are
// overwritten, which makes re-ingestion idempotent.
func (s *Store) UpsertBatch(ctx context.Context, points []models.Point) error {
	if len(points) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO points (id, embedding, text, source, chunk_index, page, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			text = EXCLUDED.text,
			source = EXCLUDED.source,
			chunk_index = EXCLUDED.chunk_index,
			page = EXCLUDED.page,
			created_at = EXCLUDED.created_at
	`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i := range points {
		p := &points[i]
		vec := pgvector.NewVector(p.Vector)
		if _, err := stmt.ExecContext(ctx,
			p.ID, vec, p.Payload.Text, p.Payload.Source, p.Payload.ChunkIndex, p.Payload.Page, p.Payload.CreatedAt,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Search returns the topK nearest points by cosine distance. The score is
// converted to cosine similarity so both backends report on the same scale.
func (s *Store) Search(ctx context.Context, vector []float32, topK int) ([]models.SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}
	const q = `
		SELECT id, text, source, chunk_index, page, created_at, embedding <=> $1 AS distance
		FROM points
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	vec := pgvector.NewVector(vector)
	rows, err := s.db.QueryContext(ctx, q, vec, topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SearchResult
	for rows.Next() {
		var (
			r        models.SearchResult
			distance float64
		)
		if err := rows.Scan(
			&r.ID, &r.Payload.Text, &r.Payload.Source, &r.Payload.ChunkIndex, &r.Payload.Page, &r.Payload.CreatedAt, &distance,
		); err != nil {
			return nil, err
		}
		r.Score = 1 - distance
		out = append(out, r)
	}
	return out, rows.Err()
}
