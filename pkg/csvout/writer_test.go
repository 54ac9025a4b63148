package csvout

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"emojiusage/pkg/aggregator"
	"emojiusage/pkg/emoji"
	"emojiusage/pkg/errors"
	"emojiusage/pkg/period"
)

func sampleRecords() []aggregator.Record {
	return []aggregator.Record{
		{Emoji: emoji.Emoji{Name: "thumbsup", Kind: emoji.KindStandard}, Period: period.Period{Year: 2024, Month: time.January}, Count: 42},
		{Emoji: emoji.Emoji{Name: "thumbsup", Kind: emoji.KindStandard}, Period: period.Period{Year: 2024, Month: time.February}, Count: 0},
		{Emoji: emoji.Emoji{Name: "partyparrot", Kind: emoji.KindCustom}, Period: period.Period{Year: 2024, Month: time.January}, Count: 7},
	}
}

func TestWriteProducesLongFormatCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.csv")
	w := NewWriter(path, false, nil)

	if err := w.Write(sampleRecords()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header plus 3 records", len(rows))
	}
	if strings.Join(rows[0], ",") != "emoji,month,usage_count" {
		t.Errorf("header = %v", rows[0])
	}
	if strings.Join(rows[1], ",") != "thumbsup,2024-01,42" {
		t.Errorf("first record = %v", rows[1])
	}
	if strings.Join(rows[2], ",") != "thumbsup,2024-02,0" {
		t.Errorf("zero-count record = %v", rows[2])
	}
	if strings.Join(rows[3], ",") != "partyparrot,2024-01,7" {
		t.Errorf("custom record = %v", rows[3])
	}
}

func TestWriteEmptyRecordsStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.csv")
	w := NewWriter(path, false, nil)

	if err := w.Write(nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.TrimSpace(string(data)) != "emoji,month,usage_count" {
		t.Errorf("content = %q, want only the header", data)
	}
}

func TestWriteBacksUpExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "usage.csv")
	if err := os.WriteFile(path, []byte("old content\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w := NewWriter(path, true, nil)
	if err := w.Write(sampleRecords()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var backups []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "usage.csv.backup_") {
			backups = append(backups, e.Name())
		}
	}
	if len(backups) != 1 {
		t.Fatalf("found %d backup files, want 1: %v", len(backups), entries)
	}

	old, err := os.ReadFile(filepath.Join(dir, backups[0]))
	if err != nil {
		t.Fatal(err)
	}
	if string(old) != "old content\n" {
		t.Errorf("backup content = %q", old)
	}
}

func TestWriteWithoutBackupOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "usage.csv")
	if err := os.WriteFile(path, []byte("old content\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w := NewWriter(path, false, nil)
	if err := w.Write(nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("found %d files, want only the output: %v", len(entries), entries)
	}
}

func TestValidateRejectsBadPaths(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing directory", filepath.Join(dir, "nope", "usage.csv")},
		{"path is a directory", dir},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWriter(tc.path, false, nil)
			err := w.Validate()
			if err == nil {
				t.Fatalf("Validate() succeeded for %q", tc.path)
			}
			apiErr, ok := err.(*errors.Error)
			if !ok || apiErr.Type != errors.ErrorTypeConfig {
				t.Errorf("Validate() error = %v, want config error", err)
			}
		})
	}
}

func TestValidateAcceptsWritablePath(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "usage.csv"), false, nil)
	if err := w.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
