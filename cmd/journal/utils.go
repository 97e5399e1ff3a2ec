package main

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	pkgdb "github.com/Samik0007/JournalAppPersonal/pkg/db"
	"github.com/Samik0007/JournalAppPersonal/pkg/journal"
	"github.com/Samik0007/JournalAppPersonal/pkg/utils"
)

func openDB() (*sql.DB, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	dbConn, err := pkgdb.OpenDBConnection(resolvedPath, walMode, syncMode)
	if err != nil {
		return nil, err
	}

	if err := pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, err
	}

	return dbConn, nil
}

func formatTimestamp(timestamp float64) string {
	if timestamp == 0 {
		return "-"
	}
	return time.Unix(int64(timestamp), 0).UTC().Format("2006-01-02 15:04:05")
}

func parseDateFlag(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s': expected YYYY-MM-DD", value)
	}
	return date, nil
}

func tagNameList(tags []journal.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

func printEntry(entry journal.Entry) {
	fmt.Println("Entry Details:")
	fmt.Printf("ID:          %s\n", entry.ID)
	fmt.Printf("Date:        %s\n", entry.EntryDate.Format("2006-01-02"))
	fmt.Printf("Title:       %s\n", entry.Title)
	fmt.Printf("Mood:        %s (%s)\n", entry.PrimaryMood, entry.PrimaryMood.Bucket())
	if entry.SecondaryMood1 != nil {
		fmt.Printf("Also:        %s\n", *entry.SecondaryMood1)
	}
	if entry.SecondaryMood2 != nil {
		fmt.Printf("Also:        %s\n", *entry.SecondaryMood2)
	}
	if entry.Category != "" {
		fmt.Printf("Category:    %s\n", entry.Category)
	}
	if len(entry.Tags) > 0 {
		fmt.Printf("Tags:        %s\n", tagNameList(entry.Tags))
	}
	fmt.Printf("Created At:  %s\n", formatTimestamp(entry.CreatedAt))
	fmt.Printf("Updated At:  %s\n", formatTimestamp(entry.UpdatedAt))
	fmt.Println()
	fmt.Println(journal.StripHTML(entry.Description))
}

func printEntryList(entries []journal.Entry) {
	fmt.Println("Date       | Mood       | Title | Tags")
	fmt.Println("--------------------------------------------------")
	for _, e := range entries {
		fmt.Printf("%s | %-10s | %s | %s\n", e.EntryDate.Format("2006-01-02"), e.PrimaryMood, e.Title, tagNameList(e.Tags))
	}
}
