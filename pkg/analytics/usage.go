package analytics

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/Samik0007/JournalAppPersonal/pkg/journal"
)

const (
	tagCountsInRangeStatement = `
	SELECT t.name, COUNT(*) AS uses
	FROM journal_entry_tags jet
	JOIN tags t ON t.id = jet.tag_id
	JOIN journal_entries e ON e.id = jet.entry_id
	WHERE e.entry_date >= ? AND e.entry_date < ?
	GROUP BY t.name
	`

	totalEntriesInRangeStatement = `
	SELECT COUNT(*)
	FROM journal_entries
	WHERE entry_date >= ? AND entry_date < ?
	`

	descriptionsInRangeStatement = `
	SELECT description
	FROM journal_entries
	WHERE entry_date >= ? AND entry_date < ?
	`

	datedDescriptionsInRangeStatement = `
	SELECT entry_date, description
	FROM journal_entries
	WHERE entry_date >= ? AND entry_date < ?
	ORDER BY entry_date ASC
	`

	entriesPerDayStatement = `
	SELECT entry_date, COUNT(*)
	FROM journal_entries
	WHERE entry_date >= ? AND entry_date < ?
	GROUP BY entry_date
	ORDER BY entry_date ASC
	`
)

// TagCount pairs a tag name with how many entries in range use it.
type TagCount struct {
	Name  string
	Count int
}

// TagPercentage pairs a tag name with its share of total entries in range.
type TagPercentage struct {
	Name    string
	Percent float64
}

func tagCountsInRange(ctx context.Context, db *sql.DB, start, end time.Time) ([]TagCount, error) {
	startKey, endKey := rangeKeys(start, end)
	rows, err := db.QueryContext(ctx, tagCountsInRangeStatement, startKey, endKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Name, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Highest count first; equal counts order by name so results are stable.
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	return counts, nil
}

// MostUsedTags returns the topN tags by occurrence count across entries in
// range, most used first.
func MostUsedTags(ctx context.Context, db *sql.DB, start, end time.Time, topN int) ([]TagCount, error) {
	counts, err := tagCountsInRange(ctx, db, start, end)
	if err != nil {
		return nil, err
	}
	if topN > 0 && len(counts) > topN {
		counts = counts[:topN]
	}
	return counts, nil
}

// TagPercentages returns each tag's share of total entries (not total tag
// occurrences) in range, rounded to two decimals and limited to the top ten
// by count. An empty range yields an empty result.
func TagPercentages(ctx context.Context, db *sql.DB, start, end time.Time) ([]TagPercentage, error) {
	total, err := TotalEntries(ctx, db, start, end)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []TagPercentage{}, nil
	}

	counts, err := tagCountsInRange(ctx, db, start, end)
	if err != nil {
		return nil, err
	}
	if len(counts) > 10 {
		counts = counts[:10]
	}

	percentages := make([]TagPercentage, 0, len(counts))
	for _, tc := range counts {
		percentages = append(percentages, TagPercentage{
			Name:    tc.Name,
			Percent: round2(float64(tc.Count) / float64(total) * 100),
		})
	}
	return percentages, nil
}

// TotalEntries counts entries with dates in [start, end].
func TotalEntries(ctx context.Context, db *sql.DB, start, end time.Time) (int, error) {
	startKey, endKey := rangeKeys(start, end)
	var total int
	err := db.QueryRowContext(ctx, totalEntriesInRangeStatement, startKey, endKey).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// AverageWordCount returns the mean word count of entry descriptions in
// range, rounded to two decimals. Markup tags are stripped before counting.
// An empty range yields zero.
func AverageWordCount(ctx context.Context, db *sql.DB, start, end time.Time) (float64, error) {
	startKey, endKey := rangeKeys(start, end)
	rows, err := db.QueryContext(ctx, descriptionsInRangeStatement, startKey, endKey)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	total, n := 0, 0
	for rows.Next() {
		var description string
		if err := rows.Scan(&description); err != nil {
			return 0, err
		}
		total += journal.CountWords(description)
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	if n == 0 {
		return 0, nil
	}
	return round2(float64(total) / float64(n)), nil
}

// WordCountTrends groups entries by day and returns the mean word count per
// day, rounded to two decimals.
func WordCountTrends(ctx context.Context, db *sql.DB, start, end time.Time) (map[time.Time]float64, error) {
	startKey, endKey := rangeKeys(start, end)
	rows, err := db.QueryContext(ctx, datedDescriptionsInRangeStatement, startKey, endKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[time.Time]int)
	counts := make(map[time.Time]int)
	for rows.Next() {
		var key, description string
		if err := rows.Scan(&key, &description); err != nil {
			return nil, err
		}
		day, err := time.Parse("2006-01-02", key)
		if err != nil {
			return nil, err
		}
		sums[day] += journal.CountWords(description)
		counts[day]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	trends := make(map[time.Time]float64, len(sums))
	for day, sum := range sums {
		trends[day] = round2(float64(sum) / float64(counts[day]))
	}
	return trends, nil
}

// EntriesPerDay counts entries per calendar day in range.
func EntriesPerDay(ctx context.Context, db *sql.DB, start, end time.Time) (map[time.Time]int, error) {
	startKey, endKey := rangeKeys(start, end)
	rows, err := db.QueryContext(ctx, entriesPerDayStatement, startKey, endKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perDay := make(map[time.Time]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		day, err := time.Parse("2006-01-02", key)
		if err != nil {
			return nil, err
		}
		perDay[day] = count
	}
	return perDay, rows.Err()
}
