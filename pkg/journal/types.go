package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Entry represents one journal record for exactly one calendar day.
type Entry struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"` // rich text stored as markup
	EntryDate      time.Time `json:"entry_date"`  // normalized to UTC midnight
	PrimaryMood    Mood      `json:"primary_mood"`
	SecondaryMood1 *Mood     `json:"secondary_mood1,omitempty"`
	SecondaryMood2 *Mood     `json:"secondary_mood2,omitempty"`
	Category       string    `json:"category"`
	CreatedAt      float64   `json:"created_at"`
	UpdatedAt      float64   `json:"updated_at"`
	Tags           []Tag     `json:"tags,omitempty"`
}

// Tag represents a reusable label, either seeded (prebuilt) or user-created.
type Tag struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	IsPrebuilt bool      `json:"is_prebuilt"`
	CreatedAt  float64   `json:"created_at"`
}

// EntryTag is the association row between an entry and a tag.
type EntryTag struct {
	EntryID   uuid.UUID `json:"entry_id"`
	TagID     uuid.UUID `json:"tag_id"`
	CreatedAt float64   `json:"created_at"`
}

// CreateEntryParams carries the inputs for CreateEntry. EntryDate nil means
// "today". TagNames are normalized before use.
type CreateEntryParams struct {
	Title          string
	Description    string
	PrimaryMood    Mood
	Category       string
	SecondaryMood1 *Mood
	SecondaryMood2 *Mood
	TagNames       []string
	EntryDate      *time.Time
}

// UpdateEntryParams carries the inputs for UpdateEntry. All scalar fields
// overwrite the stored entry. TagNames nil leaves the tag set untouched; a
// non-nil slice (including an empty one) replaces it entirely.
type UpdateEntryParams struct {
	Title          string
	Description    string
	PrimaryMood    Mood
	Category       string
	SecondaryMood1 *Mood
	SecondaryMood2 *Mood
	TagNames       []string
}

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same statement helpers run standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const dateLayout = "2006-01-02"

// DateOnly truncates t to its UTC calendar day.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar day.
func Today() time.Time {
	return DateOnly(time.Now())
}

func dateKey(t time.Time) string {
	return DateOnly(t).Format(dateLayout)
}

func parseDateKey(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
