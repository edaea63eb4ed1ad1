// Package indexer drives the ingestion pipeline: walk a directory of
// documents, extract text, split it into chunks, embed the chunks and upsert
// the resulting points into the vector store.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/markdave123-py/VectorVault/internal/core"
	"github.com/markdave123-py/VectorVault/internal/core/extract"
	"github.com/markdave123-py/VectorVault/internal/core/splitter"
	"github.com/markdave123-py/VectorVault/internal/models"
)

// ErrInfrastructure marks failures of the embedding provider or the vector
// store. Unlike per-file extraction errors these abort the whole run: every
// subsequent file would hit the same wall.
var ErrInfrastructure = errors.New("infrastructure failure")

// Config holds the tunables for one Ingestor.
type Config struct {
	Splitter        splitter.Options
	VectorSize      int
	UpsertBatchSize int
}

// Ingestor wires the extraction, splitting and embedding stages to a vector
// store.
type Ingestor struct {
	store    core.VectorStore
	embedder core.EmbeddingProvider
	cfg      Config
}

func NewIngestor(store core.VectorStore, embedder core.EmbeddingProvider, cfg Config) *Ingestor {
	if cfg.UpsertBatchSize <= 0 {
		cfg.UpsertBatchSize = 100
	}
	return &Ingestor{store: store, embedder: embedder, cfg: cfg}
}

// Ingest processes every supported file directly under dataDir, in sorted
// order. Files that fail extraction are skipped and counted; embedding or
// store failures abort the run with an error wrapping ErrInfrastructure.
// The report is returned even alongside an error so callers can see how far
// the run got.
func (in *Ingestor) Ingest(ctx context.Context, dataDir string) (*models.IngestReport, error) {
	report := &models.IngestReport{}

	info, err := os.Stat(dataDir)
	if err != nil {
		return report, fmt.Errorf("data dir %q: %w", dataDir, err)
	}
	if !info.IsDir() {
		return report, fmt.Errorf("data dir %q is not a directory", dataDir)
	}

	if err := in.store.EnsureCollection(ctx, in.cfg.VectorSize); err != nil {
		return report, fmt.Errorf("%w: ensure collection: %v", ErrInfrastructure, err)
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return report, fmt.Errorf("read data dir %q: %w", dataDir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !extract.Supported(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	var points []models.Point
	for _, name := range files {
		filePoints, err := in.processFile(ctx, filepath.Join(dataDir, name), name)
		if err != nil {
			if errors.Is(err, ErrInfrastructure) {
				return report, err
			}
			log.Printf("skipping %s: %v", name, err)
			report.FilesFailed++
			continue
		}
		points = append(points, filePoints...)
		report.FilesSucceeded++
	}

	if len(points) == 0 {
		log.Printf("ingestion produced no points (%d files failed)", report.FilesFailed)
		return report, nil
	}

	for start := 0; start < len(points); start += in.cfg.UpsertBatchSize {
		end := start + in.cfg.UpsertBatchSize
		if end > len(points) {
			end = len(points)
		}
		if err := in.store.UpsertBatch(ctx, points[start:end]); err != nil {
			return report, fmt.Errorf("%w: upsert points [%d:%d]: %v", ErrInfrastructure, start, end, err)
		}
		report.TotalPoints += end - start
	}

	log.Printf("ingestion complete: %d points from %d files (%d failed)",
		report.TotalPoints, report.FilesSucceeded, report.FilesFailed)
	return report, nil
}

// processFile turns one document into points. Extraction errors are returned
// as-is (recoverable); embedding errors are wrapped with ErrInfrastructure.
func (in *Ingestor) processFile(ctx context.Context, path, source string) ([]models.Point, error) {
	res, err := extract.File(path)
	if err != nil {
		return nil, err
	}
	if res.Text == "" {
		log.Printf("no text extracted from %s, skipping", source)
		return nil, nil
	}

	chunks := splitter.Split(res.Text, in.cfg.Splitter)
	if len(chunks) == 0 {
		log.Printf("no chunks produced from %s, skipping", source)
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := in.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: embed %s: %v", ErrInfrastructure, source, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: embed %s: got %d vectors for %d chunks", ErrInfrastructure, source, len(vectors), len(chunks))
	}

	now := time.Now().UTC()
	points := make([]models.Point, len(chunks))
	for i, c := range chunks {
		points[i] = models.Point{
			ID:     PointID(source, c.ChunkIndex),
			Vector: vectors[i],
			Payload: models.Payload{
				Text:       c.Text,
				Source:     source,
				ChunkIndex: c.ChunkIndex,
				Page:       FindPage(c.StartChar, res.PageMap),
				CreatedAt:  now,
			},
		}
	}
	log.Printf("prepared %d points from %s", len(points), source)
	return points, nil
}
