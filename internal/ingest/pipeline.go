package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/procura/notice-harvester/internal/db"
	"github.com/procura/notice-harvester/internal/eforms"
	"github.com/procura/notice-harvester/internal/models"
)

// Pipeline wires the monthly flow together: fetch the archive, extract
// every document, deliver records to the configured sinks. The JSON output
// directory is always a sink; the database store is one when connected.
type Pipeline struct {
	Config  *Config
	Fetcher *ArchiveFetcher
	Store   *db.Store

	// Progress is forwarded to the batch runner; the CLI hangs a
	// progress bar on it.
	Progress func(done, total int)
}

func NewPipeline(cfg *Config, store *db.Store) *Pipeline {
	return &Pipeline{
		Config:  cfg,
		Fetcher: NewArchiveFetcher(cfg),
		Store:   store,
	}
}

// RunMonth fetches one publication month's archive and processes it.
func (p *Pipeline) RunMonth(ctx context.Context, month string) (BatchStats, error) {
	runID := uuid.New().String()[:8]

	log.Printf("[harvest %s] fetching archive for %s", runID, month)
	archivePath, err := p.Fetcher.FetchMonth(ctx, month, p.Config.DataDir)
	if err != nil {
		return BatchStats{}, fmt.Errorf("fetch month %s: %w", month, err)
	}
	log.Printf("[harvest %s] saved archive: %s", runID, archivePath)

	return p.RunArchive(ctx, archivePath)
}

// RunArchive processes an already-downloaded archive.
func (p *Pipeline) RunArchive(ctx context.Context, archivePath string) (BatchStats, error) {
	writer, err := NewJSONWriter(p.Config.OutputDir)
	if err != nil {
		return BatchStats{}, err
	}

	sinks := []NoticeSink{writer}
	if p.Store != nil {
		sinks = append(sinks, &storeSink{store: p.Store})
	}

	runner := &Runner{
		Extractor: eforms.NewExtractor(p.Config.Language),
		Sinks:     sinks,
		Progress:  p.Progress,
	}

	stats, err := runner.ProcessArchive(ctx, archivePath)
	if err != nil {
		return stats, err
	}

	if err := WriteFailureManifest(p.Config.OutputDir, stats.FailedEntries); err != nil {
		log.Printf("[harvest] failed to write manifest: %v", err)
	}

	log.Printf("[harvest] done: found=%d saved=%d failed=%d", stats.Found, stats.Saved, stats.Failed)
	return stats, nil
}

// storeSink adapts the database store to the sink interface.
type storeSink struct {
	store *db.Store
}

func (s *storeSink) Save(ctx context.Context, entryName string, n *models.Notice) error {
	return s.store.UpsertNotice(ctx, entryName, n)
}
