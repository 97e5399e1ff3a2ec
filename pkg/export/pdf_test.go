package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Samik0007/JournalAppPersonal/pkg/journal"
)

func sampleEntry(title string) journal.Entry {
	mood := journal.MoodGrateful
	return journal.Entry{
		ID:             uuid.New(),
		Title:          title,
		Description:    "<p>Walked to the lake before work.</p><p>Water was &quot;glass&quot; calm.</p>",
		EntryDate:      time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		PrimaryMood:    journal.MoodHappy,
		SecondaryMood1: &mood,
		Category:       "Personal",
		Tags: []journal.Tag{
			{ID: uuid.New(), Name: "Nature", IsPrebuilt: true},
		},
		CreatedAt: 1741600000,
		UpdatedAt: 1741600000,
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Morning pages", "Morning pages"},
		{"invalid characters", `a/b\c:d*e?f"g<h>i|j`, "a_b_c_d_e_f_g_h_i_j"},
		{"trailing dots trimmed", "Ends with dots...", "Ends with dots"},
		{"surrounding whitespace", "  padded  ", "padded"},
		{"control characters", "tab\there", "tab_here"},
		{"empty title", "", "journal_entry"},
		{"only invalid characters", `///:::***`, "journal_entry"},
		{"length capped", strings.Repeat("a", 80), strings.Repeat("a", 50)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeFileName(tc.title); got != tc.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestExportEntryWritesPDF(t *testing.T) {
	outDir := t.TempDir()
	entry := sampleEntry("Lake walk")

	path, err := ExportEntry(context.Background(), entry, outDir)
	if err != nil {
		t.Fatalf("ExportEntry failed: %v", err)
	}
	if filepath.Dir(path) != outDir {
		t.Errorf("Expected file in %s, got %s", outDir, path)
	}
	if filepath.Base(path) != "Lake walk.pdf" {
		t.Errorf("Expected file name 'Lake walk.pdf', got %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Expected a PDF header in the exported file")
	}

	// The temporary sibling must be gone.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Expected temporary file to be cleaned up")
	}
}

func TestExportEntryAddsSuffixOnCollision(t *testing.T) {
	outDir := t.TempDir()
	entry := sampleEntry("Same title")

	first, err := ExportEntry(context.Background(), entry, outDir)
	if err != nil {
		t.Fatalf("First ExportEntry failed: %v", err)
	}

	second, err := ExportEntry(context.Background(), entry, outDir)
	if err != nil {
		t.Fatalf("Second ExportEntry failed: %v", err)
	}

	if first == second {
		t.Fatal("Expected a different path for the second export")
	}
	if !strings.HasPrefix(filepath.Base(second), "Same title_") {
		t.Errorf("Expected a timestamp suffix, got %s", filepath.Base(second))
	}
	for _, path := range []string{first, second} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to exist: %v", path, err)
		}
	}
}

func TestExportEntryCancelledLeavesNoFile(t *testing.T) {
	outDir := t.TempDir()
	entry := sampleEntry("Never written")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExportEntry(ctx, entry, outDir)
	if err == nil {
		t.Fatal("Expected error from cancelled export")
	}

	files, readErr := os.ReadDir(outDir)
	if readErr != nil {
		t.Fatalf("Failed to read output dir: %v", readErr)
	}
	if len(files) != 0 {
		t.Errorf("Expected no files after cancelled export, found %d", len(files))
	}
}

func TestExportAllWritesPDF(t *testing.T) {
	outDir := t.TempDir()
	entries := []journal.Entry{
		sampleEntry("First day"),
		sampleEntry("Second day"),
	}
	entries[1].EntryDate = entries[0].EntryDate.AddDate(0, 0, 1)

	path, err := ExportAll(context.Background(), entries, outDir)
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "AllJournalEntries_") {
		t.Errorf("Expected batch file name prefix, got %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Expected a PDF header in the exported file")
	}
}
