package journal

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	entryColumns = `id, title, description, entry_date, primary_mood, secondary_mood1, secondary_mood2, category, created_at, updated_at`

	createEntryStatement = `
	INSERT INTO journal_entries (id, title, description, entry_date, primary_mood, secondary_mood1, secondary_mood2, category)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	getEntryStatement = `
	SELECT ` + entryColumns + `
	FROM journal_entries
	WHERE id = ?
	`

	getEntryByDateStatement = `
	SELECT ` + entryColumns + `
	FROM journal_entries
	WHERE entry_date = ?
	`

	listEntriesStatement = `
	SELECT ` + entryColumns + `
	FROM journal_entries
	ORDER BY entry_date DESC
	`

	updateEntryStatement = `
	UPDATE journal_entries
	SET title = ?, description = ?, primary_mood = ?, secondary_mood1 = ?, secondary_mood2 = ?, category = ?, updated_at = unixepoch()
	WHERE id = ?
	`

	deleteEntryStatement = `
	DELETE FROM journal_entries
	WHERE id = ?
	`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(s rowScanner) (Entry, error) {
	var entry Entry
	var entryDate string
	var secondary1, secondary2 sql.NullString

	err := s.Scan(
		&entry.ID,
		&entry.Title,
		&entry.Description,
		&entryDate,
		&entry.PrimaryMood,
		&secondary1,
		&secondary2,
		&entry.Category,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return Entry{}, err
	}

	entry.EntryDate, err = parseDateKey(entryDate)
	if err != nil {
		return Entry{}, err
	}
	if secondary1.Valid {
		m := Mood(secondary1.String)
		entry.SecondaryMood1 = &m
	}
	if secondary2.Valid {
		m := Mood(secondary2.String)
		entry.SecondaryMood2 = &m
	}

	return entry, nil
}

// normalizeSecondaryMoods deduplicates the secondary slots against each
// other and against the primary mood, keeping at most two.
func normalizeSecondaryMoods(primary Mood, moods ...*Mood) []Mood {
	seen := map[Mood]bool{primary: true}
	var secondary []Mood
	for _, m := range moods {
		if m == nil || seen[*m] {
			continue
		}
		seen[*m] = true
		secondary = append(secondary, *m)
		if len(secondary) == 2 {
			break
		}
	}
	return secondary
}

func validateMoods(primary Mood, moods ...*Mood) error {
	if !primary.Valid() {
		return ErrInvalidMood
	}
	for _, m := range moods {
		if m != nil && !m.Valid() {
			return ErrInvalidMood
		}
	}
	return nil
}

// CreateEntry creates the entry for its calendar day and attaches the
// normalized tag set, all in one transaction. At most one entry may exist
// per day; a second create for the same date fails with
// ErrDuplicateDateEntry.
func CreateEntry(ctx context.Context, db *sql.DB, params CreateEntryParams) (*Entry, error) {
	if err := validateMoods(params.PrimaryMood, params.SecondaryMood1, params.SecondaryMood2); err != nil {
		return nil, err
	}

	date := Today()
	if params.EntryDate != nil {
		date = DateOnly(*params.EntryDate)
	}

	secondary := normalizeSecondaryMoods(params.PrimaryMood, params.SecondaryMood1, params.SecondaryMood2)
	var secondary1, secondary2 any
	if len(secondary) > 0 {
		secondary1 = string(secondary[0])
	}
	if len(secondary) > 1 {
		secondary2 = string(secondary[1])
	}

	tagNames := NormalizeTagNames(params.TagNames)
	entryID := uuid.New()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, opErr("create entry", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_entries WHERE entry_date = ?`, dateKey(date)).Scan(&exists)
	if err != nil {
		return nil, opErr("create entry", err)
	}
	if exists > 0 {
		return nil, ErrDuplicateDateEntry
	}

	_, err = tx.ExecContext(
		ctx,
		createEntryStatement,
		entryID,
		params.Title,
		params.Description,
		dateKey(date),
		string(params.PrimaryMood),
		secondary1,
		secondary2,
		params.Category,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateDateEntry
		}
		return nil, opErr("create entry", err)
	}

	if err := addTagsToEntry(ctx, tx, entryID, tagNames); err != nil {
		return nil, opErr("create entry", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, opErr("create entry", err)
	}

	entry, err := GetEntry(ctx, db, entryID)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetEntry retrieves an entry with its tags loaded. Returns nil, nil when no
// entry exists for the id.
func GetEntry(ctx context.Context, db *sql.DB, id uuid.UUID) (*Entry, error) {
	entry, err := scanEntry(db.QueryRowContext(ctx, getEntryStatement, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, opErr("get entry", err)
	}

	entry.Tags, err = listTagsForEntry(ctx, db, entry.ID)
	if err != nil {
		return nil, opErr("get entry", err)
	}
	return &entry, nil
}

// GetEntryByDate retrieves the entry for a calendar day (the time component
// of date is ignored). Returns nil, nil when the day has no entry.
func GetEntryByDate(ctx context.Context, db *sql.DB, date time.Time) (*Entry, error) {
	entry, err := scanEntry(db.QueryRowContext(ctx, getEntryByDateStatement, dateKey(date)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, opErr("get entry by date", err)
	}

	entry.Tags, err = listTagsForEntry(ctx, db, entry.ID)
	if err != nil {
		return nil, opErr("get entry by date", err)
	}
	return &entry, nil
}

// GetTodayEntry retrieves today's entry, if any.
func GetTodayEntry(ctx context.Context, db *sql.DB) (*Entry, error) {
	return GetEntryByDate(ctx, db, Today())
}

// ListEntries returns all entries, newest entry date first, with tags loaded.
func ListEntries(ctx context.Context, db *sql.DB) ([]Entry, error) {
	entries, err := queryEntries(ctx, db, listEntriesStatement)
	return entries, opErr("list entries", err)
}

// UpdateEntry overwrites the entry's scalar fields and refreshes updated_at.
// Returns nil, nil when the id does not exist. A nil TagNames leaves the tag
// set untouched; a non-nil slice replaces it entirely inside the same
// transaction.
func UpdateEntry(ctx context.Context, db *sql.DB, id uuid.UUID, params UpdateEntryParams) (*Entry, error) {
	if err := validateMoods(params.PrimaryMood, params.SecondaryMood1, params.SecondaryMood2); err != nil {
		return nil, err
	}

	secondary := normalizeSecondaryMoods(params.PrimaryMood, params.SecondaryMood1, params.SecondaryMood2)
	var secondary1, secondary2 any
	if len(secondary) > 0 {
		secondary1 = string(secondary[0])
	}
	if len(secondary) > 1 {
		secondary2 = string(secondary[1])
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, opErr("update entry", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(
		ctx,
		updateEntryStatement,
		params.Title,
		params.Description,
		string(params.PrimaryMood),
		secondary1,
		secondary2,
		params.Category,
		id,
	)
	if err != nil {
		return nil, opErr("update entry", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, opErr("update entry", err)
	}
	if rowsAffected == 0 {
		return nil, nil
	}

	if params.TagNames != nil {
		if err := removeAllTagsFromEntry(ctx, tx, id); err != nil {
			return nil, opErr("update entry", err)
		}
		if err := addTagsToEntry(ctx, tx, id, NormalizeTagNames(params.TagNames)); err != nil {
			return nil, opErr("update entry", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, opErr("update entry", err)
	}

	return GetEntry(ctx, db, id)
}

// DeleteEntry removes an entry. Returns false when the id does not exist.
// Tag associations go with it via the cascading foreign key.
func DeleteEntry(ctx context.Context, db *sql.DB, id uuid.UUID) (bool, error) {
	res, err := db.ExecContext(ctx, deleteEntryStatement, id)
	if err != nil {
		return false, opErr("delete entry", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, opErr("delete entry", err)
	}
	return rowsAffected > 0, nil
}

// queryEntries runs an entry SELECT and loads the tag set of every row.
func queryEntries(ctx context.Context, db *sql.DB, query string, args ...any) ([]Entry, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Tags, err = listTagsForEntry(ctx, db, entries[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return entries, nil
}
