package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const (
	searchByContentStatement = `
	SELECT ` + entryColumns + `
	FROM journal_entries
	WHERE title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'
	ORDER BY entry_date DESC
	`

	searchByTitleStatement = `
	SELECT ` + entryColumns + `
	FROM journal_entries
	WHERE title LIKE ? ESCAPE '\'
	ORDER BY entry_date DESC
	`

	entriesByDateRangeStatement = `
	SELECT ` + entryColumns + `
	FROM journal_entries
	WHERE entry_date >= ? AND entry_date < ?
	ORDER BY entry_date DESC
	`

	entriesByMoodStatement = `
	SELECT ` + entryColumns + `
	FROM journal_entries
	WHERE primary_mood = ? OR secondary_mood1 = ? OR secondary_mood2 = ?
	ORDER BY entry_date DESC
	`

	entriesByMoodAndDateStatement = `
	SELECT ` + entryColumns + `
	FROM journal_entries
	WHERE (primary_mood = ? OR secondary_mood1 = ? OR secondary_mood2 = ?)
		AND entry_date >= ? AND entry_date < ?
	ORDER BY entry_date DESC
	`

	entriesByTagStatement = `
	SELECT e.id, e.title, e.description, e.entry_date, e.primary_mood, e.secondary_mood1, e.secondary_mood2, e.category, e.created_at, e.updated_at
	FROM journal_entries e
	JOIN journal_entry_tags jet ON jet.entry_id = e.id
	JOIN tags t ON t.id = jet.tag_id
	WHERE t.name = ?
	ORDER BY e.entry_date DESC
	`

	entriesByCategoryStatement = `
	SELECT ` + entryColumns + `
	FROM journal_entries
	WHERE category = ?
	ORDER BY entry_date DESC
	`

	distinctDatesDescStatement = `
	SELECT DISTINCT entry_date
	FROM journal_entries
	ORDER BY entry_date DESC
	`

	moodSlotsInRangeStatement = `
	SELECT primary_mood, secondary_mood1, secondary_mood2
	FROM journal_entries
	WHERE entry_date >= ? AND entry_date < ?
	`
)

// likePattern builds a substring LIKE pattern with the wildcard characters
// of term escaped. SQLite LIKE is case-insensitive for ASCII, which is the
// documented default for content and title search.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

// rangeKeys normalizes a start/end pair to whole calendar days, returned as
// the half-open [start, end+1d) key pair every range query uses.
func rangeKeys(start, end time.Time) (string, string) {
	return dateKey(start), dateKey(DateOnly(end).AddDate(0, 0, 1))
}

// SearchEntriesByContent matches term as a substring of the title or the
// description markup.
func SearchEntriesByContent(ctx context.Context, db *sql.DB, term string) ([]Entry, error) {
	pattern := likePattern(term)
	entries, err := queryEntries(ctx, db, searchByContentStatement, pattern, pattern)
	return entries, opErr("search entries by content", err)
}

// SearchEntriesByTitle matches term as a substring of the title only.
func SearchEntriesByTitle(ctx context.Context, db *sql.DB, term string) ([]Entry, error) {
	entries, err := queryEntries(ctx, db, searchByTitleStatement, likePattern(term))
	return entries, opErr("search entries by title", err)
}

// GetEntriesByDateRange returns entries with dates in [start, end], both
// treated as whole calendar days.
func GetEntriesByDateRange(ctx context.Context, db *sql.DB, start, end time.Time) ([]Entry, error) {
	startKey, endKey := rangeKeys(start, end)
	entries, err := queryEntries(ctx, db, entriesByDateRangeStatement, startKey, endKey)
	return entries, opErr("get entries by date range", err)
}

// GetEntriesByMood returns entries carrying mood in any slot, primary or
// secondary.
func GetEntriesByMood(ctx context.Context, db *sql.DB, mood Mood) ([]Entry, error) {
	m := string(mood)
	entries, err := queryEntries(ctx, db, entriesByMoodStatement, m, m, m)
	return entries, opErr("get entries by mood", err)
}

// GetEntriesByMoodAndDateRange combines the mood filter with a whole-day
// date range.
func GetEntriesByMoodAndDateRange(ctx context.Context, db *sql.DB, mood Mood, start, end time.Time) ([]Entry, error) {
	m := string(mood)
	startKey, endKey := rangeKeys(start, end)
	entries, err := queryEntries(ctx, db, entriesByMoodAndDateStatement, m, m, m, startKey, endKey)
	return entries, opErr("get entries by mood and date range", err)
}

// GetEntriesByTag returns entries associated with the exactly-named tag.
func GetEntriesByTag(ctx context.Context, db *sql.DB, tagName string) ([]Entry, error) {
	entries, err := queryEntries(ctx, db, entriesByTagStatement, tagName)
	return entries, opErr("get entries by tag", err)
}

// GetEntriesByTags returns entries carrying ALL of the named tags. Names are
// normalized first so repeating a name does not inflate the match count.
func GetEntriesByTags(ctx context.Context, db *sql.DB, tagNames []string) ([]Entry, error) {
	tagNames = NormalizeTagNames(tagNames)
	if len(tagNames) == 0 {
		return ListEntries(ctx, db)
	}

	placeholders := strings.Repeat("?,", len(tagNames)-1) + "?"
	query := fmt.Sprintf(`
	SELECT e.id, e.title, e.description, e.entry_date, e.primary_mood, e.secondary_mood1, e.secondary_mood2, e.category, e.created_at, e.updated_at
	FROM journal_entries e
	JOIN journal_entry_tags jet ON jet.entry_id = e.id
	JOIN tags t ON t.id = jet.tag_id
	WHERE t.name IN (%s)
	GROUP BY e.id, e.title, e.description, e.entry_date, e.primary_mood, e.secondary_mood1, e.secondary_mood2, e.category, e.created_at, e.updated_at
	HAVING COUNT(DISTINCT t.name) = ?
	ORDER BY e.entry_date DESC
	`, placeholders)

	args := make([]any, 0, len(tagNames)+1)
	for _, name := range tagNames {
		args = append(args, name)
	}
	args = append(args, len(tagNames))

	entries, err := queryEntries(ctx, db, query, args...)
	return entries, opErr("get entries by tags", err)
}

// GetEntriesByCategory returns entries whose category matches exactly.
func GetEntriesByCategory(ctx context.Context, db *sql.DB, category string) ([]Entry, error) {
	entries, err := queryEntries(ctx, db, entriesByCategoryStatement, category)
	return entries, opErr("get entries by category", err)
}

// GetDailyStreak counts consecutive days with entries ending today (UTC).
// No entry today means zero regardless of history. The analytics package
// computes the same figure; both must agree for identical data.
func GetDailyStreak(ctx context.Context, db *sql.DB) (int, error) {
	dates, err := distinctEntryDatesDesc(ctx, db)
	if err != nil {
		return 0, opErr("get daily streak", err)
	}

	if len(dates) == 0 || !dates[0].Equal(Today()) {
		return 0, nil
	}

	streak := 1
	for i := 0; i < len(dates)-1; i++ {
		if dates[i].AddDate(0, 0, -1).Equal(dates[i+1]) {
			streak++
		} else {
			break
		}
	}
	return streak, nil
}

func distinctEntryDatesDesc(ctx context.Context, db *sql.DB) ([]time.Time, error) {
	rows, err := db.QueryContext(ctx, distinctDatesDescStatement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		date, err := parseDateKey(key)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// GetMoodAnalytics counts each raw mood value (not bucketed) across every
// mood slot of the entries in [start, end].
func GetMoodAnalytics(ctx context.Context, db *sql.DB, start, end time.Time) (map[Mood]int, error) {
	startKey, endKey := rangeKeys(start, end)
	rows, err := db.QueryContext(ctx, moodSlotsInRangeStatement, startKey, endKey)
	if err != nil {
		return nil, opErr("get mood analytics", err)
	}
	defer rows.Close()

	counts := make(map[Mood]int)
	for rows.Next() {
		var primary string
		var secondary1, secondary2 sql.NullString
		if err := rows.Scan(&primary, &secondary1, &secondary2); err != nil {
			return nil, opErr("get mood analytics", err)
		}

		counts[Mood(primary)]++
		if secondary1.Valid {
			counts[Mood(secondary1.String)]++
		}
		if secondary2.Valid {
			counts[Mood(secondary2.String)]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, opErr("get mood analytics", err)
	}

	return counts, nil
}
