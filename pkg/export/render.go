package export

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Samik0007/JournalAppPersonal/pkg/journal"
)

func newDocument() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	return pdf
}

func moodColor(mood journal.Mood) (int, int, int) {
	switch mood.Bucket() {
	case journal.BucketPositive:
		return 76, 175, 80 // green
	case journal.BucketNegative:
		return 244, 67, 54 // red
	default:
		return 128, 128, 128 // grey
	}
}

func tagNames(tags []journal.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

func secondaryMoodNames(entry journal.Entry) string {
	var moods []string
	if entry.SecondaryMood1 != nil {
		moods = append(moods, string(*entry.SecondaryMood1))
	}
	if entry.SecondaryMood2 != nil {
		moods = append(moods, string(*entry.SecondaryMood2))
	}
	return strings.Join(moods, ", ")
}

func renderSingleEntry(ctx context.Context, w io.Writer, entry journal.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf := newDocument()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 40

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(contentWidth, 6, tr(fmt.Sprintf("Journal Entry - %s", entry.EntryDate.Format(dateDisplayLayout))), "", 1, "L", false, 0, "")
		pdf.Ln(4)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(contentWidth, 5, tr(fmt.Sprintf("Generated on %s", time.Now().Format(generatedAtLayout))), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(contentWidth, 10, tr(entry.Title), "", "L", false)
	pdf.Ln(2)

	// Date and mood classification
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(contentWidth/2, 6, tr(fmt.Sprintf("Date: %s", entry.EntryDate.Format(dateDisplayLayout))), "", 0, "L", false, 0, "")
	r, g, b := moodColor(entry.PrimaryMood)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(contentWidth/2, 6, tr(fmt.Sprintf("Mood: %s", entry.PrimaryMood.Bucket())), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)

	pdf.SetDrawColor(224, 224, 224)
	pdf.Line(20, pdf.GetY(), pageWidth-20, pdf.GetY())
	pdf.Ln(4)

	if entry.Category != "" {
		pdf.SetFont("Arial", "I", 11)
		pdf.CellFormat(contentWidth, 6, tr(fmt.Sprintf("Category: %s", entry.Category)), "", 1, "L", false, 0, "")
	}

	if len(entry.Tags) > 0 {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(14, 6, "Tags: ", "", 0, "L", false, 0, "")
		pdf.SetTextColor(33, 150, 243)
		pdf.MultiCell(contentWidth-14, 6, tr(tagNames(entry.Tags)), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(6)

	// Body with markup stripped
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(contentWidth, 7, tr(journal.StripHTML(entry.Description)), "", "L", false)

	if secondary := secondaryMoodNames(entry); secondary != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(contentWidth, 5, tr(fmt.Sprintf("Secondary Moods: %s", secondary)), "", 1, "L", false, 0, "")
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func renderAllEntries(ctx context.Context, w io.Writer, entries []journal.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted := make([]journal.Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EntryDate.After(sorted[j].EntryDate)
	})

	pdf := newDocument()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 40

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 14)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(contentWidth, 7, "My Journal Entries", "", 1, "L", false, 0, "")
		pdf.Ln(4)
	})
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(contentWidth, 5, fmt.Sprintf("%d / {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	for i, entry := range sorted {
		if err := ctx.Err(); err != nil {
			return err
		}
		renderEntrySection(pdf, tr, contentWidth, entry)

		if i < len(sorted)-1 {
			pdf.Ln(10)
			pdf.SetDrawColor(189, 189, 189)
			pdf.SetLineWidth(0.5)
			pdf.Line(20, pdf.GetY(), pageWidth-20, pdf.GetY())
			pdf.SetLineWidth(0.2)
			pdf.Ln(10)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func renderEntrySection(pdf *fpdf.Fpdf, tr func(string) string, contentWidth float64, entry journal.Entry) {
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(contentWidth, 8, tr(entry.Title), "", "L", false)
	pdf.Ln(1)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(contentWidth/2, 5, tr(fmt.Sprintf("Date: %s", entry.EntryDate.Format(dateDisplayLayout))), "", 0, "L", false, 0, "")
	r, g, b := moodColor(entry.PrimaryMood)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(contentWidth/2, 5, tr(fmt.Sprintf("Mood: %s", entry.PrimaryMood.Bucket())), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(contentWidth/2, 5, tr(fmt.Sprintf("Category: %s", entry.Category)), "", 0, "L", false, 0, "")
	if len(entry.Tags) > 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(33, 150, 243)
		pdf.CellFormat(contentWidth/2, 5, tr(fmt.Sprintf("Tags: %s", tagNames(entry.Tags))), "", 1, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	} else {
		pdf.Ln(5)
	}
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(contentWidth, 6, tr(journal.StripHTML(entry.Description)), "", "L", false)
}
