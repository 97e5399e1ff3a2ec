package journal

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

// seedEntry inserts an entry on the given day with optional tags.
func seedEntry(t *testing.T, testDB *sql.DB, date time.Time, title, description string, mood Mood, tags ...string) *Entry {
	t.Helper()
	return mustCreateEntry(t, testDB, CreateEntryParams{
		Title:       title,
		Description: description,
		PrimaryMood: mood,
		TagNames:    tags,
		EntryDate:   &date,
	})
}

func TestSearchEntriesByContent(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	seedEntry(t, testDB, dateOf(2025, time.March, 1), "Morning Run", "<p>Ran 5k along the river.</p>", MoodHappy)
	seedEntry(t, testDB, dateOf(2025, time.March, 2), "Quiet day", "<p>Read a book about running form.</p>", MoodCalm)
	seedEntry(t, testDB, dateOf(2025, time.March, 3), "Groceries", "<p>Nothing special.</p>", MoodBored)

	// Case-insensitive, matches title or description.
	entries, err := SearchEntriesByContent(ctx, testDB, "RUN")
	if err != nil {
		t.Fatalf("SearchEntriesByContent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Title != "Quiet day" || entries[1].Title != "Morning Run" {
		t.Errorf("Unexpected order: %s, %s", entries[0].Title, entries[1].Title)
	}

	titleOnly, err := SearchEntriesByTitle(ctx, testDB, "run")
	if err != nil {
		t.Fatalf("SearchEntriesByTitle failed: %v", err)
	}
	if len(titleOnly) != 1 || titleOnly[0].Title != "Morning Run" {
		t.Errorf("Expected title-only search to match 'Morning Run', got %v", titleOnly)
	}
}

func TestSearchEscapesLikeWildcards(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	seedEntry(t, testDB, dateOf(2025, time.March, 4), "Progress", "<p>100% done with the move.</p>", MoodExcited)
	seedEntry(t, testDB, dateOf(2025, time.March, 5), "Numbers", "<p>100 pages left.</p>", MoodCalm)

	// A literal % must not act as a wildcard.
	entries, err := SearchEntriesByContent(ctx, testDB, "100%")
	if err != nil {
		t.Fatalf("SearchEntriesByContent failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Progress" {
		t.Errorf("Expected only the literal match, got %v", entries)
	}
}

func TestGetEntriesByDateRange(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		seedEntry(t, testDB, dateOf(2025, time.April, day), "Entry", "", MoodCalm)
	}

	// Both ends inclusive, whole calendar days.
	entries, err := GetEntriesByDateRange(ctx, testDB, dateOf(2025, time.April, 2), dateOf(2025, time.April, 4))
	if err != nil {
		t.Fatalf("GetEntriesByDateRange failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries in range, got %d", len(entries))
	}
	if !entries[0].EntryDate.Equal(dateOf(2025, time.April, 4)) {
		t.Errorf("Expected newest first, got %v", entries[0].EntryDate)
	}
}

func TestGetEntriesByMood(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	secondary := MoodAnxious
	date := dateOf(2025, time.May, 1)
	mustCreateEntry(t, testDB, CreateEntryParams{
		Title:          "Mixed",
		PrimaryMood:    MoodHappy,
		SecondaryMood1: &secondary,
		EntryDate:      &date,
	})
	seedEntry(t, testDB, dateOf(2025, time.May, 2), "Down", "", MoodAnxious)
	seedEntry(t, testDB, dateOf(2025, time.May, 3), "Fine", "", MoodCalm)

	// Secondary slots count as carrying the mood.
	entries, err := GetEntriesByMood(ctx, testDB, MoodAnxious)
	if err != nil {
		t.Fatalf("GetEntriesByMood failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries carrying Anxious, got %d", len(entries))
	}

	ranged, err := GetEntriesByMoodAndDateRange(ctx, testDB, MoodAnxious, dateOf(2025, time.May, 2), dateOf(2025, time.May, 3))
	if err != nil {
		t.Fatalf("GetEntriesByMoodAndDateRange failed: %v", err)
	}
	if len(ranged) != 1 || ranged[0].Title != "Down" {
		t.Errorf("Expected only 'Down' in range, got %v", ranged)
	}
}

func TestGetEntriesByTag(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	seedEntry(t, testDB, dateOf(2025, time.June, 1), "Office", "", MoodCalm, "Work", "Health")
	seedEntry(t, testDB, dateOf(2025, time.June, 2), "Desk", "", MoodBored, "Work")
	seedEntry(t, testDB, dateOf(2025, time.June, 3), "Untagged", "", MoodCalm)

	entries, err := GetEntriesByTag(ctx, testDB, "Work")
	if err != nil {
		t.Fatalf("GetEntriesByTag failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries tagged Work, got %d", len(entries))
	}
}

func TestGetEntriesByTagsRequiresAll(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	seedEntry(t, testDB, dateOf(2025, time.June, 1), "Both", "", MoodCalm, "Work", "Health")
	seedEntry(t, testDB, dateOf(2025, time.June, 2), "One", "", MoodCalm, "Work")

	entries, err := GetEntriesByTags(ctx, testDB, []string{"Work", "Health"})
	if err != nil {
		t.Fatalf("GetEntriesByTags failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Both" {
		t.Errorf("Expected only the entry carrying all tags, got %v", entries)
	}

	// An empty filter means no filter.
	all, err := GetEntriesByTags(ctx, testDB, nil)
	if err != nil {
		t.Fatalf("GetEntriesByTags with empty filter failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected all entries for empty filter, got %d", len(all))
	}
}

func TestGetEntriesByTagsDeduplicatesFilterNames(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	seedEntry(t, testDB, dateOf(2025, time.June, 3), "Tagged once", "", MoodCalm, "Work")

	// Repeating a name must not raise the required match count.
	entries, err := GetEntriesByTags(ctx, testDB, []string{"Work", "Work"})
	if err != nil {
		t.Fatalf("GetEntriesByTags failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Tagged once" {
		t.Errorf("Expected 1 entry for duplicated filter name, got %d", len(entries))
	}

	// Whitespace-only names drop out entirely, leaving an empty filter.
	all, err := GetEntriesByTags(ctx, testDB, []string{" ", ""})
	if err != nil {
		t.Fatalf("GetEntriesByTags with blank names failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected blank names to mean no filter, got %d entries", len(all))
	}
}

func TestGetEntriesByCategory(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	date := dateOf(2025, time.July, 1)
	mustCreateEntry(t, testDB, CreateEntryParams{
		Title:       "Trip",
		PrimaryMood: MoodExcited,
		Category:    "Travel",
		EntryDate:   &date,
	})
	seedEntry(t, testDB, dateOf(2025, time.July, 2), "Home", "", MoodCalm)

	entries, err := GetEntriesByCategory(ctx, testDB, "Travel")
	if err != nil {
		t.Fatalf("GetEntriesByCategory failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Trip" {
		t.Errorf("Expected only the Travel entry, got %v", entries)
	}
}

func TestGetDailyStreak(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	// No entries at all.
	streak, err := GetDailyStreak(ctx, testDB)
	if err != nil {
		t.Fatalf("GetDailyStreak failed: %v", err)
	}
	if streak != 0 {
		t.Errorf("Expected streak 0 on empty journal, got %d", streak)
	}

	// Three consecutive days ending today.
	today := Today()
	for _, offset := range []int{0, -1, -2} {
		date := today.AddDate(0, 0, offset)
		seedEntry(t, testDB, date, "Day", "", MoodCalm)
	}
	// An older disconnected entry must not extend the streak.
	seedEntry(t, testDB, today.AddDate(0, 0, -5), "Old", "", MoodCalm)

	streak, err = GetDailyStreak(ctx, testDB)
	if err != nil {
		t.Fatalf("GetDailyStreak failed: %v", err)
	}
	if streak != 3 {
		t.Errorf("Expected streak 3, got %d", streak)
	}
}

func TestGetDailyStreakRequiresTodayEntry(t *testing.T) {
	testDB := setupTestDB(t)

	today := Today()
	seedEntry(t, testDB, today.AddDate(0, 0, -1), "Yesterday", "", MoodCalm)
	seedEntry(t, testDB, today.AddDate(0, 0, -2), "Before", "", MoodCalm)

	streak, err := GetDailyStreak(context.Background(), testDB)
	if err != nil {
		t.Fatalf("GetDailyStreak failed: %v", err)
	}
	if streak != 0 {
		t.Errorf("Expected streak 0 without a today entry, got %d", streak)
	}
}

func TestGetMoodAnalytics(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	secondary := MoodHappy
	date1 := dateOf(2025, time.August, 1)
	mustCreateEntry(t, testDB, CreateEntryParams{
		Title:          "One",
		PrimaryMood:    MoodCalm,
		SecondaryMood1: &secondary,
		EntryDate:      &date1,
	})
	seedEntry(t, testDB, dateOf(2025, time.August, 2), "Two", "", MoodHappy)
	// Outside the queried range.
	seedEntry(t, testDB, dateOf(2025, time.September, 1), "Out", "", MoodSad)

	counts, err := GetMoodAnalytics(ctx, testDB, dateOf(2025, time.August, 1), dateOf(2025, time.August, 31))
	if err != nil {
		t.Fatalf("GetMoodAnalytics failed: %v", err)
	}
	if counts[MoodHappy] != 2 {
		t.Errorf("Expected Happy count 2 (one primary, one secondary), got %d", counts[MoodHappy])
	}
	if counts[MoodCalm] != 1 {
		t.Errorf("Expected Calm count 1, got %d", counts[MoodCalm])
	}
	if counts[MoodSad] != 0 {
		t.Errorf("Expected Sad excluded from range, got %d", counts[MoodSad])
	}
}
