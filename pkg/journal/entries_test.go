package journal

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Samik0007/JournalAppPersonal/pkg/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := db.OpenDBConnection(":memory:", true, "NORMAL")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	if err := db.InitializeSchema(testDB, db.TargetSchemaVersion); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	t.Cleanup(func() { testDB.Close() })
	return testDB
}

func mustCreateEntry(t *testing.T, testDB *sql.DB, params CreateEntryParams) *Entry {
	t.Helper()
	entry, err := CreateEntry(context.Background(), testDB, params)
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	return entry
}

func dateOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCreateEntry(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	date := dateOf(2025, time.March, 10)
	secondary := MoodGrateful
	entry := mustCreateEntry(t, testDB, CreateEntryParams{
		Title:          "Morning pages",
		Description:    "<p>Slept well, long walk before work.</p>",
		PrimaryMood:    MoodHappy,
		SecondaryMood1: &secondary,
		Category:       "Personal",
		TagNames:       []string{"Work", "Nature"},
		EntryDate:      &date,
	})

	if entry.ID == uuid.Nil {
		t.Error("Expected entry ID to be set")
	}
	if entry.Title != "Morning pages" {
		t.Errorf("Expected title 'Morning pages', got %q", entry.Title)
	}
	if !entry.EntryDate.Equal(date) {
		t.Errorf("Expected entry date %v, got %v", date, entry.EntryDate)
	}
	if entry.PrimaryMood != MoodHappy {
		t.Errorf("Expected primary mood Happy, got %s", entry.PrimaryMood)
	}
	if entry.SecondaryMood1 == nil || *entry.SecondaryMood1 != MoodGrateful {
		t.Error("Expected secondary mood Grateful")
	}
	if entry.CreatedAt == 0 || entry.UpdatedAt == 0 {
		t.Error("Expected created_at and updated_at to be populated")
	}
	if len(entry.Tags) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(entry.Tags))
	}

	// Reads through GetEntry must agree with the returned value.
	stored, err := GetEntry(ctx, testDB, entry.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if stored == nil {
		t.Fatal("Expected entry to be retrievable")
	}
	if stored.Title != entry.Title || !stored.EntryDate.Equal(entry.EntryDate) {
		t.Error("Stored entry does not match created entry")
	}
}

func TestCreateEntryRejectsSecondForSameDay(t *testing.T) {
	testDB := setupTestDB(t)

	date := dateOf(2025, time.March, 10)
	mustCreateEntry(t, testDB, CreateEntryParams{
		Title:       "First",
		PrimaryMood: MoodCalm,
		EntryDate:   &date,
	})

	// Same calendar day, different time of day. Only the day counts.
	later := date.Add(18 * time.Hour)
	_, err := CreateEntry(context.Background(), testDB, CreateEntryParams{
		Title:       "Second",
		PrimaryMood: MoodHappy,
		EntryDate:   &later,
	})
	if !errors.Is(err, ErrDuplicateDateEntry) {
		t.Errorf("Expected ErrDuplicateDateEntry, got %v", err)
	}

	// The failed create must not leave partial state behind.
	entries, err := ListEntries(context.Background(), testDB)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 entry after rejected duplicate, got %d", len(entries))
	}
}

func TestCreateEntryRejectsInvalidMood(t *testing.T) {
	testDB := setupTestDB(t)

	_, err := CreateEntry(context.Background(), testDB, CreateEntryParams{
		Title:       "Bad mood",
		PrimaryMood: Mood("Ecstatic"),
	})
	if !errors.Is(err, ErrInvalidMood) {
		t.Errorf("Expected ErrInvalidMood, got %v", err)
	}

	bad := Mood("Meh")
	_, err = CreateEntry(context.Background(), testDB, CreateEntryParams{
		Title:          "Bad secondary",
		PrimaryMood:    MoodCalm,
		SecondaryMood1: &bad,
	})
	if !errors.Is(err, ErrInvalidMood) {
		t.Errorf("Expected ErrInvalidMood for secondary mood, got %v", err)
	}
}

func TestCreateEntryDeduplicatesSecondaryMoods(t *testing.T) {
	testDB := setupTestDB(t)

	date := dateOf(2025, time.March, 11)
	dupOfPrimary := MoodHappy
	distinct := MoodCalm
	entry := mustCreateEntry(t, testDB, CreateEntryParams{
		Title:          "Dedupe",
		PrimaryMood:    MoodHappy,
		SecondaryMood1: &dupOfPrimary,
		SecondaryMood2: &distinct,
		EntryDate:      &date,
	})

	// The duplicate of the primary drops out; the distinct mood moves up.
	if entry.SecondaryMood1 == nil || *entry.SecondaryMood1 != MoodCalm {
		t.Error("Expected Calm to fill the first secondary slot")
	}
	if entry.SecondaryMood2 != nil {
		t.Errorf("Expected empty second slot, got %s", *entry.SecondaryMood2)
	}
}

func TestGetEntryByDate(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	date := dateOf(2025, time.April, 1)
	created := mustCreateEntry(t, testDB, CreateEntryParams{
		Title:       "April",
		PrimaryMood: MoodCurious,
		EntryDate:   &date,
	})

	entry, err := GetEntryByDate(ctx, testDB, date.Add(9*time.Hour))
	if err != nil {
		t.Fatalf("GetEntryByDate failed: %v", err)
	}
	if entry == nil || entry.ID != created.ID {
		t.Error("Expected to find the entry by its calendar day")
	}

	missing, err := GetEntryByDate(ctx, testDB, dateOf(2025, time.April, 2))
	if err != nil {
		t.Fatalf("GetEntryByDate for empty day failed: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for a day with no entry")
	}
}

func TestGetEntryMissingReturnsNil(t *testing.T) {
	testDB := setupTestDB(t)

	entry, err := GetEntry(context.Background(), testDB, uuid.New())
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if entry != nil {
		t.Error("Expected nil entry for unknown ID")
	}
}

func TestListEntriesNewestFirst(t *testing.T) {
	testDB := setupTestDB(t)

	for _, day := range []int{3, 1, 2} {
		date := dateOf(2025, time.May, day)
		mustCreateEntry(t, testDB, CreateEntryParams{
			Title:       "Entry",
			PrimaryMood: MoodCalm,
			EntryDate:   &date,
		})
	}

	entries, err := ListEntries(context.Background(), testDB)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i := 0; i < len(entries)-1; i++ {
		if entries[i].EntryDate.Before(entries[i+1].EntryDate) {
			t.Error("Expected entries ordered newest first")
		}
	}
}

func TestUpdateEntry(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	date := dateOf(2025, time.June, 5)
	created := mustCreateEntry(t, testDB, CreateEntryParams{
		Title:       "Draft",
		Description: "first pass",
		PrimaryMood: MoodBored,
		TagNames:    []string{"Work"},
		EntryDate:   &date,
	})

	updated, err := UpdateEntry(ctx, testDB, created.ID, UpdateEntryParams{
		Title:       "Final",
		Description: "second pass",
		PrimaryMood: MoodConfident,
		Category:    "Projects",
	})
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	if updated == nil {
		t.Fatal("Expected updated entry, got nil")
	}
	if updated.Title != "Final" || updated.PrimaryMood != MoodConfident || updated.Category != "Projects" {
		t.Error("Scalar fields were not overwritten")
	}
	if !updated.EntryDate.Equal(date) {
		t.Error("Entry date must not change on update")
	}

	// TagNames omitted: the tag set stays untouched.
	if len(updated.Tags) != 1 || updated.Tags[0].Name != "Work" {
		t.Errorf("Expected tags untouched, got %v", updated.Tags)
	}
}

func TestUpdateEntryReplacesTagSet(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	date := dateOf(2025, time.June, 6)
	created := mustCreateEntry(t, testDB, CreateEntryParams{
		Title:       "Tagged",
		PrimaryMood: MoodCalm,
		TagNames:    []string{"Work", "Health"},
		EntryDate:   &date,
	})

	updated, err := UpdateEntry(ctx, testDB, created.ID, UpdateEntryParams{
		Title:       created.Title,
		PrimaryMood: created.PrimaryMood,
		TagNames:    []string{"Travel"},
	})
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].Name != "Travel" {
		t.Errorf("Expected tag set replaced with [Travel], got %v", updated.Tags)
	}

	// An explicit empty slice clears the set.
	cleared, err := UpdateEntry(ctx, testDB, created.ID, UpdateEntryParams{
		Title:       created.Title,
		PrimaryMood: created.PrimaryMood,
		TagNames:    []string{},
	})
	if err != nil {
		t.Fatalf("UpdateEntry with empty tag set failed: %v", err)
	}
	if len(cleared.Tags) != 0 {
		t.Errorf("Expected no tags, got %v", cleared.Tags)
	}
}

func TestUpdateEntryMissingReturnsNil(t *testing.T) {
	testDB := setupTestDB(t)

	entry, err := UpdateEntry(context.Background(), testDB, uuid.New(), UpdateEntryParams{
		Title:       "Ghost",
		PrimaryMood: MoodCalm,
	})
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	if entry != nil {
		t.Error("Expected nil for unknown ID")
	}
}

func TestDeleteEntryCascadesTagLinks(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	date := dateOf(2025, time.July, 1)
	created := mustCreateEntry(t, testDB, CreateEntryParams{
		Title:       "Doomed",
		PrimaryMood: MoodCalm,
		TagNames:    []string{"Work"},
		EntryDate:   &date,
	})

	deleted, err := DeleteEntry(ctx, testDB, created.ID)
	if err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if !deleted {
		t.Error("Expected delete to report true")
	}

	var links int
	if err := testDB.QueryRow(`SELECT COUNT(*) FROM journal_entry_tags WHERE entry_id = ?`, created.ID).Scan(&links); err != nil {
		t.Fatalf("Failed to count tag links: %v", err)
	}
	if links != 0 {
		t.Errorf("Expected tag associations removed with the entry, got %d", links)
	}

	// The tag itself survives the entry.
	tag, err := getTagByName(ctx, testDB, "Work")
	if err != nil {
		t.Fatalf("getTagByName failed: %v", err)
	}
	if tag == nil {
		t.Error("Expected the tag to outlive the entry")
	}

	deletedAgain, err := DeleteEntry(ctx, testDB, created.ID)
	if err != nil {
		t.Fatalf("Second DeleteEntry failed: %v", err)
	}
	if deletedAgain {
		t.Error("Expected second delete to report false")
	}
}

func TestCreateEntryDefaultsToToday(t *testing.T) {
	testDB := setupTestDB(t)

	entry := mustCreateEntry(t, testDB, CreateEntryParams{
		Title:       "Today",
		PrimaryMood: MoodCalm,
	})
	if !entry.EntryDate.Equal(Today()) {
		t.Errorf("Expected entry date %v, got %v", Today(), entry.EntryDate)
	}

	today, err := GetTodayEntry(context.Background(), testDB)
	if err != nil {
		t.Fatalf("GetTodayEntry failed: %v", err)
	}
	if today == nil || today.ID != entry.ID {
		t.Error("Expected GetTodayEntry to return the entry just created")
	}
}
