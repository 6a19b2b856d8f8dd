package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/procura/notice-harvester/internal/models"
)

// FailureManifest is written next to the output records and names every
// source entry that failed extraction, one per line.
const FailureManifest = "failed_entries.txt"

// JSONWriter persists one indented JSON file per record, named by the
// record's notice id when present and by the sanitized source entry stem
// otherwise. Non-ASCII text is written verbatim.
type JSONWriter struct {
	Dir string
}

func NewJSONWriter(dir string) (*JSONWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &JSONWriter{Dir: dir}, nil
}

func (w *JSONWriter) Save(ctx context.Context, entryName string, n *models.Notice) error {
	path := filepath.Join(w.Dir, outputName(entryName, n.NoticeID))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(n); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// WriteFailureManifest persists the failed entry list alongside the output
// records, replacing any manifest from a previous run.
func WriteFailureManifest(dir string, failed []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	content := ""
	if len(failed) > 0 {
		content = strings.Join(failed, "\n") + "\n"
	}
	return os.WriteFile(filepath.Join(dir, FailureManifest), []byte(content), 0o644)
}

func outputName(entryName string, noticeID *string) string {
	if noticeID != nil && *noticeID != "" {
		return sanitizeName(*noticeID) + ".json"
	}
	base := filepath.Base(entryName)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return sanitizeName(stem) + ".json"
}

// sanitizeName keeps file names portable: anything outside a conservative
// character set becomes an underscore.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "notice"
	}
	return out
}
