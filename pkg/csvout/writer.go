// Package csvout renders aggregation records as a long-format CSV,
// one row per emoji and month.
package csvout

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"emojiusage/pkg/aggregator"
	"emojiusage/pkg/errors"
	"emojiusage/pkg/logger"
)

var header = []string{"emoji", "month", "usage_count"}

// Writer persists records to a CSV file at a fixed path
type Writer struct {
	path   string
	backup bool
	logger logger.Logger
}

func NewWriter(path string, backup bool, log logger.Logger) *Writer {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Writer{path: path, backup: backup, logger: log}
}

// Path returns the output file path
func (w *Writer) Path() string {
	return w.path
}

// Validate checks that the output path is usable before the run spends
// any API quota: the parent directory must exist and the target must
// not be a directory.
func (w *Writer) Validate() error {
	if w.path == "" {
		return &errors.Error{
			Type:    errors.ErrorTypeConfig,
			Message: "output path is required",
		}
	}

	dir := filepath.Dir(w.path)
	info, err := os.Stat(dir)
	if err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeConfig,
			Message: fmt.Sprintf("output directory does not exist: %s", dir),
		}
	}
	if !info.IsDir() {
		return &errors.Error{
			Type:    errors.ErrorTypeConfig,
			Message: fmt.Sprintf("output directory is not a directory: %s", dir),
		}
	}

	if info, err := os.Stat(w.path); err == nil && info.IsDir() {
		return &errors.Error{
			Type:    errors.ErrorTypeConfig,
			Message: fmt.Sprintf("output path is a directory: %s", w.path),
		}
	}

	return nil
}

// Write renders the records to the output file, replacing any previous
// content. When backups are enabled an existing file is moved aside
// first, so an aborted run never destroys the last good output.
func (w *Writer) Write(records []aggregator.Record) error {
	if w.backup {
		if err := w.backupExisting(); err != nil {
			return err
		}
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Emoji.Name, r.Period.String(), strconv.Itoa(r.Count)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv output: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	w.logger.WithFields(map[string]interface{}{
		"path": w.path,
		"rows": len(records),
	}).Info("Wrote usage CSV")

	return nil
}

// backupExisting moves an existing output file to a timestamped sibling
func (w *Writer) backupExisting() error {
	if _, err := os.Stat(w.path); os.IsNotExist(err) {
		return nil
	}

	backupPath := fmt.Sprintf("%s.backup_%s", w.path, time.Now().Format("20060102_150405"))
	if err := os.Rename(w.path, backupPath); err != nil {
		return fmt.Errorf("failed to back up existing output: %w", err)
	}

	w.logger.WithField("backup", backupPath).Info("Backed up previous output")
	return nil
}
