// Package export renders journal entries to PDF documents. Rendering always
// completes in memory before anything touches the destination path, so a
// failed or cancelled export never leaves a partial file behind.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Samik0007/JournalAppPersonal/pkg/journal"
	"github.com/Samik0007/JournalAppPersonal/pkg/utils"
)

const (
	dateDisplayLayout      = "January 02, 2006"
	timestampSuffixLayout  = "_20060102_150405"
	generatedAtLayout      = "January 02, 2006 15:04"
	defaultEntryFileName   = "journal_entry"
	batchFileNamePrefix    = "AllJournalEntries"
	maxFileNameTitleLength = 50
)

// ExportError wraps a render or write failure with the entry title it
// concerned, when applicable.
type ExportError struct {
	Title string
	Err   error
}

func (e *ExportError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("export: failed to export entry '%s': %v", e.Title, e.Err)
	}
	return fmt.Sprintf("export: %v", e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// ExportEntry renders a single entry to a PDF in outDir (the user's
// downloads directory when empty) and returns the written file path. A name
// collision gets a timestamp suffix instead of overwriting.
func ExportEntry(ctx context.Context, entry journal.Entry, outDir string) (string, error) {
	destPath, err := resolveEntryPath(entry.Title, outDir)
	if err != nil {
		return "", &ExportError{Title: entry.Title, Err: err}
	}

	var buf bytes.Buffer
	if err := renderSingleEntry(ctx, &buf, entry); err != nil {
		return "", &ExportError{Title: entry.Title, Err: err}
	}

	if err := writeAtomic(ctx, destPath, buf.Bytes()); err != nil {
		return "", &ExportError{Title: entry.Title, Err: err}
	}
	return destPath, nil
}

// ExportAll renders every entry into one document, newest entry date first,
// with page numbering in the footer.
func ExportAll(ctx context.Context, entries []journal.Entry, outDir string) (string, error) {
	if outDir == "" {
		var err error
		outDir, err = utils.GetDownloadsPath()
		if err != nil {
			return "", &ExportError{Err: err}
		}
	}

	fileName := fmt.Sprintf("%s_%s.pdf", batchFileNamePrefix, time.Now().Format("20060102_150405"))
	destPath := filepath.Join(outDir, fileName)

	var buf bytes.Buffer
	if err := renderAllEntries(ctx, &buf, entries); err != nil {
		return "", &ExportError{Err: err}
	}

	if err := writeAtomic(ctx, destPath, buf.Bytes()); err != nil {
		return "", &ExportError{Err: err}
	}
	return destPath, nil
}

// SanitizeFileName replaces filesystem-invalid characters with underscores
// and caps the length at 50 characters. A title that sanitizes to nothing
// falls back to a fixed default.
func SanitizeFileName(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			b.WriteRune('_')
		default:
			if r < 0x20 {
				b.WriteRune('_')
			} else {
				b.WriteRune(r)
			}
		}
	}

	sanitized := strings.TrimRight(strings.TrimSpace(b.String()), ".")
	if len(sanitized) > maxFileNameTitleLength {
		sanitized = sanitized[:maxFileNameTitleLength]
	}
	if strings.TrimSpace(strings.ReplaceAll(sanitized, "_", "")) == "" {
		return defaultEntryFileName
	}
	return sanitized
}

func resolveEntryPath(title, outDir string) (string, error) {
	if outDir == "" {
		var err error
		outDir, err = utils.GetDownloadsPath()
		if err != nil {
			return "", err
		}
	}

	base := SanitizeFileName(title)
	destPath := filepath.Join(outDir, base+".pdf")
	if _, err := os.Stat(destPath); err == nil {
		destPath = filepath.Join(outDir, base+time.Now().Format(timestampSuffixLayout)+".pdf")
	}
	return destPath, nil
}

// writeAtomic writes data to a temporary sibling and renames it into place.
// Cancellation before the rename leaves the destination untouched.
func writeAtomic(ctx context.Context, destPath string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmpPath := destPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
