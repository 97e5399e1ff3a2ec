package db

const (
	// SchemaV1 defines the SQL statements for version 1 of the database schema.
	// This schema pertains to the 'journaldb' component.
	//
	// entry_date is stored as a 'YYYY-MM-DD' string so lexicographic
	// comparison matches calendar order; the UNIQUE index on it is the
	// storage-level guarantee of the one-entry-per-day invariant. Tag names
	// are unique ignoring case via the COLLATE NOCASE index.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS journal_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    pin INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS journal_entries (
    id UUID PRIMARY KEY,
    title VARCHAR(200) NOT NULL,
    description TEXT NOT NULL,
    entry_date TEXT NOT NULL,
    primary_mood VARCHAR(32) NOT NULL,
    secondary_mood1 VARCHAR(32),
    secondary_mood2 VARCHAR(32),
    category VARCHAR(100) NOT NULL DEFAULT '',
    created_at REAL DEFAULT (unixepoch()),
    updated_at REAL DEFAULT (unixepoch())
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_journal_entries_entry_date
    ON journal_entries(entry_date);

CREATE TABLE IF NOT EXISTS tags (
    id UUID PRIMARY KEY,
    name VARCHAR(50) NOT NULL,
    is_prebuilt BOOLEAN NOT NULL DEFAULT FALSE,
    created_at REAL DEFAULT (unixepoch())
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_name
    ON tags(name COLLATE NOCASE);

CREATE TABLE IF NOT EXISTS journal_entry_tags (
    entry_id UUID NOT NULL REFERENCES journal_entries(id) ON DELETE CASCADE,
    tag_id UUID NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
    created_at REAL DEFAULT (unixepoch()),
    PRIMARY KEY (entry_id, tag_id)
);
`
)

// PrebuiltTags is the fixed starter list seeded once at initialization.
// Seeded rows are flagged is_prebuilt and are never deleted by normal
// operation.
var PrebuiltTags = []string{
	"Work", "Career", "Studies", "Family", "Friends", "Relationships",
	"Health", "Fitness", "Personal Growth", "Self-care", "Hobbies", "Travel",
	"Nature", "Finance", "Spirituality", "Birthday", "Holiday", "Vacation",
	"Celebration", "Exercise", "Reading", "Writing", "Cooking", "Meditation",
	"Yoga", "Music", "Shopping", "Parenting", "Projects", "Planning", "Reflection",
}
