// Package analytics computes streaks, mood, tag and word-count statistics
// over persisted journal entries. Every operation is a pure read; nothing
// here mutates the store.
package analytics

import (
	"context"
	"database/sql"
	"time"

	"github.com/Samik0007/JournalAppPersonal/pkg/journal"
)

const (
	distinctDatesDescStatement = `
	SELECT DISTINCT entry_date
	FROM journal_entries
	ORDER BY entry_date DESC
	`

	distinctDatesAscStatement = `
	SELECT DISTINCT entry_date
	FROM journal_entries
	ORDER BY entry_date ASC
	`

	distinctDatesInRangeStatement = `
	SELECT DISTINCT entry_date
	FROM journal_entries
	WHERE entry_date >= ? AND entry_date <= ?
	ORDER BY entry_date ASC
	`
)

// CurrentStreak counts consecutive days with entries ending today (UTC). If
// today has no entry the streak is zero regardless of history.
func CurrentStreak(ctx context.Context, db *sql.DB) (int, error) {
	dates, err := queryDates(ctx, db, distinctDatesDescStatement)
	if err != nil {
		return 0, err
	}

	if len(dates) == 0 || !dates[0].Equal(journal.Today()) {
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

// LongestStreak scans all entry dates ascending and returns the longest run
// of consecutive days ever recorded.
func LongestStreak(ctx context.Context, db *sql.DB) (int, error) {
	dates, err := queryDates(ctx, db, distinctDatesAscStatement)
	if err != nil {
		return 0, err
	}

	if len(dates) == 0 {
		return 0, nil
	}

	longest, current := 1, 1
	for i := 0; i < len(dates)-1; i++ {
		if dates[i].AddDate(0, 0, 1).Equal(dates[i+1]) {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest, nil
}

// MissedDays returns the calendar days in [start, end] with no entry, in
// ascending order.
func MissedDays(ctx context.Context, db *sql.DB, start, end time.Time) ([]time.Time, error) {
	startDay := journal.DateOnly(start)
	endDay := journal.DateOnly(end)

	dates, err := queryDates(ctx, db, distinctDatesInRangeStatement,
		startDay.Format("2006-01-02"), endDay.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	covered := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		covered[d] = true
	}

	var missed []time.Time
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		if !covered[day] {
			missed = append(missed, day)
		}
	}
	return missed, nil
}

func queryDates(ctx context.Context, db *sql.DB, query string, args ...any) ([]time.Time, error) {
	rows, err := db.QueryContext(ctx, query, args...)
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
		date, err := time.Parse("2006-01-02", key)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}
