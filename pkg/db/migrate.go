package db

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	// TargetSchemaVersion is the highest schema version this version of the code supports for the journaldb component.
	// This constant is used by the CLI to pass to UpgradeDB.
	TargetSchemaVersion int64 = 1
	// JournalDBComponent is the name for the main journal database component.
	JournalDBComponent = "journaldb"
)

// GetComponentSchemaVersion retrieves the schema version for a given component.
// Returns 0 if the component is not found, the versions table is uninitialized, or the table doesn't exist.
func GetComponentSchemaVersion(db *sql.DB, componentName string) (int64, error) {
	query := `SELECT version FROM journal_versions WHERE component = ?;`
	row := db.QueryRow(query, componentName)

	var version int64
	err := row.Scan(&version)
	if err != nil {
		if err == sql.ErrNoRows {
			// Component not found in the table, or table is empty.
			return 0, nil
		}
		// Check if the error is due to the table not existing
		if strings.Contains(err.Error(), "no such table") && strings.Contains(err.Error(), "journal_versions") {
			// journal_versions table itself doesn't exist, so definitely version 0.
			return 0, nil
		}
		// Another error occurred during scan.
		return 0, fmt.Errorf("failed to scan version for component '%s': %w", componentName, err)
	}
	return version, nil
}

// InitializeSchema creates the database schema (all tables for journaldb),
// seeds the prebuilt tags, and sets the specified schema version for the
// journaldb component. Safe to run against an already-initialized database.
func InitializeSchema(db *sql.DB, schemaVersionToSet int64) error {
	_, err := db.Exec(SchemaV1)
	if err != nil {
		return fmt.Errorf("failed to execute schema v1 SQL: %w", err)
	}

	if err := SeedPrebuiltTags(db); err != nil {
		return err
	}

	// Insert or update the version for the journaldb component
	insertVersionSQL := `
INSERT INTO journal_versions (component, version) VALUES (?, ?)
ON CONFLICT(component) DO UPDATE SET version = excluded.version, created_at = unixepoch();`

	_, err = db.Exec(insertVersionSQL, JournalDBComponent, schemaVersionToSet)
	if err != nil {
		return fmt.Errorf("failed to insert/update version for component %s to %d: %w", JournalDBComponent, schemaVersionToSet, err)
	}

	fmt.Fprintf(os.Stderr, "Component %s initialized/updated to schema version %d\n", JournalDBComponent, schemaVersionToSet)
	return nil
}

// SeedPrebuiltTags inserts the fixed starter tag list. Idempotent: names that
// already exist (compared case-insensitively by the unique index) are left
// untouched, so re-running initialization never duplicates seed rows.
func SeedPrebuiltTags(db *sql.DB) error {
	const seedTagSQL = `
INSERT INTO tags (id, name, is_prebuilt) VALUES (?, ?, TRUE)
ON CONFLICT(name) DO NOTHING;`

	for _, name := range PrebuiltTags {
		if _, err := db.Exec(seedTagSQL, uuid.New(), name); err != nil {
			return fmt.Errorf("failed to seed prebuilt tag '%s': %w", name, err)
		}
	}
	return nil
}

// UpgradeDB applies necessary migrations to bring the database, represented by the *sql.DB connection,
// for the JournalDBComponent to the appTargetSchemaVersion.
// dbIdentifierForLog is used for logging purposes only.
func UpgradeDB(db *sql.DB, dbIdentifierForLog string, appTargetSchemaVersion int64) error {
	currentDBVersion, err := GetComponentSchemaVersion(db, JournalDBComponent)
	if err != nil {
		return err
	}

	if currentDBVersion == 0 { // 0 indicates component not versioned or new DB
		fmt.Fprintf(os.Stderr, "Component %s in database '%s' appears to be uninitialized or at version 0. Initializing/Upgrading to schema version %d...\n", JournalDBComponent, dbIdentifierForLog, appTargetSchemaVersion)
		err = InitializeSchema(db, appTargetSchemaVersion)
		if err != nil {
			return fmt.Errorf("failed to initialize component %s in database '%s': %w", JournalDBComponent, dbIdentifierForLog, err)
		}
		return nil
	} else if currentDBVersion == appTargetSchemaVersion {
		fmt.Fprintf(os.Stderr, "Component %s in database '%s' is already up to date (schema version %d).\n", JournalDBComponent, dbIdentifierForLog, currentDBVersion)
		return nil
	} else if currentDBVersion < appTargetSchemaVersion {
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is older than application's target schema version %d. Automatic migration from this older version is not yet supported", JournalDBComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	} else { // currentDBVersion > appTargetSchemaVersion
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is newer than application's target schema version %d. Please upgrade the application", JournalDBComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	}
}
