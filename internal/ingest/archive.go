package ingest

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/procura/notice-harvester/internal/eforms"
	"github.com/procura/notice-harvester/internal/models"
)

// BatchStats summarizes one archive run.
type BatchStats struct {
	Found         int      `json:"found"`
	Saved         int      `json:"saved"`
	Failed        int      `json:"failed"`
	FailedEntries []string `json:"failed_entries"`
}

// NoticeSink receives one extracted record per document entry.
type NoticeSink interface {
	Save(ctx context.Context, entryName string, n *models.Notice) error
}

// Runner walks an archive's document entries, extracts each one and hands
// the record to every sink. A single bad entry never stops the batch; the
// archive itself being unreadable does.
type Runner struct {
	Extractor *eforms.Extractor
	Sinks     []NoticeSink

	// Progress, when set, is called after each considered entry.
	Progress func(done, total int)
}

// ProcessArchive extracts every .xml entry of the ZIP archive at path, in
// archive order. Entries with any other extension are ignored.
func (r *Runner) ProcessArchive(ctx context.Context, path string) (BatchStats, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return BatchStats{}, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer zr.Close()

	var entries []*zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(extOf(f.Name), ".xml") {
			continue
		}
		entries = append(entries, f)
	}

	stats := BatchStats{Found: len(entries), FailedEntries: []string{}}
	for i, f := range entries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if err := r.processEntry(ctx, f); err != nil {
			log.Printf("[batch] entry %s: %v", f.Name, err)
			stats.Failed++
			stats.FailedEntries = append(stats.FailedEntries, f.Name)
		} else {
			stats.Saved++
		}

		if r.Progress != nil {
			r.Progress(i+1, len(entries))
		}
	}

	return stats, nil
}

func (r *Runner) processEntry(ctx context.Context, f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry: %w", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return fmt.Errorf("read entry: %w", err)
	}

	notice, err := r.Extractor.Extract(data)
	if err != nil {
		return err
	}

	for _, sink := range r.Sinks {
		if err := sink.Save(ctx, f.Name, notice); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}
