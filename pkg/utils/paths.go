package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// GetDefaultDBPathOnly returns a system-appropriate default path for the database
func GetDefaultDBPathOnly() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "journal.db"
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", "journal", "journal.db")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "journal", "journal.db")
	default: // Primarily Linux, but also other UNIX-like systems.
		return filepath.Join(homeDir, ".local", "share", "journal", "journal.db")
	}
}

// ResolveAndEnsureDBPath expands and absolutizes the provided database path
// (falling back to the default location when empty) and creates the parent
// directory if it does not exist yet.
func ResolveAndEnsureDBPath(providedPath string) (string, error) {
	targetPath := providedPath
	if targetPath == "" {
		targetPath = GetDefaultDBPathOnly()
	}

	if strings.HasPrefix(targetPath, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", targetPath, err)
		}
		targetPath = filepath.Join(homeDir, targetPath[2:])
	}

	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", targetPath, err)
	}
	targetPath = absPath

	dbDir := filepath.Dir(targetPath)
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory '%s' for database: %w", dbDir, err)
		}
	} else if err != nil {
		// Some other error occurred when checking the directory.
		return "", fmt.Errorf("failed to stat directory '%s' for database: %w", dbDir, err)
	}

	return targetPath, nil
}

// GetDownloadsPath returns the user's downloads directory, creating it if
// necessary. Exported documents land here unless the caller picks another
// destination.
func GetDownloadsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	downloadsPath := filepath.Join(homeDir, "Downloads")
	if _, err := os.Stat(downloadsPath); os.IsNotExist(err) {
		if err := os.MkdirAll(downloadsPath, 0755); err != nil {
			return "", fmt.Errorf("failed to create downloads directory '%s': %w", downloadsPath, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to stat downloads directory '%s': %w", downloadsPath, err)
	}

	return downloadsPath, nil
}
