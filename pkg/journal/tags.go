package journal

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
)

const (
	listTagsByKindStatement = `
	SELECT id, name, is_prebuilt, created_at
	FROM tags
	WHERE is_prebuilt = ?
	ORDER BY name ASC
	`

	getTagByNameStatement = `
	SELECT id, name, is_prebuilt, created_at
	FROM tags
	WHERE name = ? COLLATE NOCASE
	`

	createTagStatement = `
	INSERT INTO tags (id, name, is_prebuilt)
	VALUES (?, ?, FALSE)
	`

	listTagsForEntryStatement = `
	SELECT t.id, t.name, t.is_prebuilt, t.created_at
	FROM tags t
	JOIN journal_entry_tags jet ON jet.tag_id = t.id
	WHERE jet.entry_id = ?
	ORDER BY t.name ASC
	`

	attachTagStatement = `
	INSERT INTO journal_entry_tags (entry_id, tag_id)
	VALUES (?, ?)
	`

	detachAllTagsStatement = `
	DELETE FROM journal_entry_tags
	WHERE entry_id = ?
	`
)

// ListPrebuiltTags returns the seeded starter tags ordered by name.
func ListPrebuiltTags(ctx context.Context, db *sql.DB) ([]Tag, error) {
	tags, err := listTagsByKind(ctx, db, true)
	return tags, opErr("list prebuilt tags", err)
}

// ListCustomTags returns user-created tags ordered by name.
func ListCustomTags(ctx context.Context, db *sql.DB) ([]Tag, error) {
	tags, err := listTagsByKind(ctx, db, false)
	return tags, opErr("list custom tags", err)
}

func listTagsByKind(ctx context.Context, db *sql.DB, prebuilt bool) ([]Tag, error) {
	rows, err := db.QueryContext(ctx, listTagsByKindStatement, prebuilt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var tag Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.IsPrebuilt, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

// CreateCustomTag creates a user tag. Names are unique ignoring case;
// creating a duplicate fails with ErrDuplicateTag.
func CreateCustomTag(ctx context.Context, db *sql.DB, name string) (Tag, error) {
	name = strings.TrimSpace(name)

	existing, err := getTagByName(ctx, db, name)
	if err != nil {
		return Tag{}, opErr("create custom tag", err)
	}
	if existing != nil {
		return Tag{}, ErrDuplicateTag
	}

	tagID := uuid.New()
	if _, err := db.ExecContext(ctx, createTagStatement, tagID, name); err != nil {
		if isUniqueViolation(err) {
			return Tag{}, ErrDuplicateTag
		}
		return Tag{}, opErr("create custom tag", err)
	}

	created, err := getTagByName(ctx, db, name)
	if err != nil {
		return Tag{}, opErr("create custom tag", err)
	}
	return *created, nil
}

// ListTagsForEntry returns the tags associated with an entry, ordered by name.
func ListTagsForEntry(ctx context.Context, db *sql.DB, entryID uuid.UUID) ([]Tag, error) {
	tags, err := listTagsForEntry(ctx, db, entryID)
	return tags, opErr("list tags for entry", err)
}

func listTagsForEntry(ctx context.Context, q DBTX, entryID uuid.UUID) ([]Tag, error) {
	rows, err := q.QueryContext(ctx, listTagsForEntryStatement, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var tag Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.IsPrebuilt, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

// getTagByName matches tag names case-insensitively, so "work" resolves to a
// seeded "Work" instead of colliding with the unique index. Returns nil, nil
// when no tag exists.
func getTagByName(ctx context.Context, q DBTX, name string) (*Tag, error) {
	var tag Tag
	err := q.QueryRowContext(ctx, getTagByNameStatement, name).Scan(
		&tag.ID,
		&tag.Name,
		&tag.IsPrebuilt,
		&tag.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// getOrCreateTagByName resolves a tag for an entry write, creating a custom
// tag when the name is new.
func getOrCreateTagByName(ctx context.Context, q DBTX, name string) (Tag, error) {
	existing, err := getTagByName(ctx, q, name)
	if err != nil {
		return Tag{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	tagID := uuid.New()
	if _, err := q.ExecContext(ctx, createTagStatement, tagID, name); err != nil {
		return Tag{}, err
	}

	created, err := getTagByName(ctx, q, name)
	if err != nil {
		return Tag{}, err
	}
	return *created, nil
}

// addTagsToEntry associates each name with the entry, creating missing
// custom tags. Any failure aborts the whole write; the caller runs this
// inside the entry's transaction, so there is no partial silent success.
func addTagsToEntry(ctx context.Context, q DBTX, entryID uuid.UUID, tagNames []string) error {
	for _, name := range tagNames {
		tag, err := getOrCreateTagByName(ctx, q, name)
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, attachTagStatement, entryID, tag.ID); err != nil {
			return err
		}
	}
	return nil
}

func removeAllTagsFromEntry(ctx context.Context, q DBTX, entryID uuid.UUID) error {
	_, err := q.ExecContext(ctx, detachAllTagsStatement, entryID)
	return err
}

// NormalizeTagNames trims whitespace, drops empty strings and deduplicates
// case-insensitively. The first-seen casing of a name wins.
func NormalizeTagNames(tagNames []string) []string {
	seen := make(map[string]bool, len(tagNames))
	normalized := make([]string, 0, len(tagNames))
	for _, name := range tagNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, name)
	}
	return normalized
}
