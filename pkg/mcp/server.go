package mcp

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	journalapp "github.com/Samik0007/JournalAppPersonal/pkg"
	pkgdb "github.com/Samik0007/JournalAppPersonal/pkg/db"
	"github.com/Samik0007/JournalAppPersonal/pkg/utils"
)

// JournalMCPServer exposes the journal engine over MCP stdio so AI tooling
// can read and write entries through the same core the CLI uses.
type JournalMCPServer struct {
	mcpServer *server.MCPServer
	db        *sql.DB
	DbPath    string
}

// NewJournalMCPServer spins up an MCP server backed by the SQLite database at dbPath.
func NewJournalMCPServer(dbPath string) (*JournalMCPServer, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	// Create base MCP server.
	s := server.NewMCPServer(
		"Journal MCP Server",
		journalapp.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	// Open database (WAL + FULL).
	dbConn, err := pkgdb.OpenDBConnection(resolvedPath, true, "FULL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Automatically initialize or migrate the database schema.
	if err := pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
		// Attempt to close the DB connection if upgrade fails.
		dbConn.Close()
		return nil, fmt.Errorf("failed to initialize/upgrade database schema for '%s': %w", resolvedPath, err)
	}

	return &JournalMCPServer{
		mcpServer: s,
		db:        dbConn,
		DbPath:    resolvedPath,
	}, nil
}

// RegisterAllTools wires every journal tool onto the server.
func (s *JournalMCPServer) RegisterAllTools() {
	RegisterPingTool(s.mcpServer)
	RegisterCreateEntryTool(s.mcpServer, s.db)
	RegisterGetTodayEntryTool(s.mcpServer, s.db)
	RegisterGetEntryByDateTool(s.mcpServer, s.db)
	RegisterListEntriesTool(s.mcpServer, s.db)
	RegisterSearchEntriesTool(s.mcpServer, s.db)
	RegisterDeleteEntryTool(s.mcpServer, s.db)
	RegisterDailyStreakTool(s.mcpServer, s.db)
	RegisterMoodDistributionTool(s.mcpServer, s.db)
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *JournalMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// DB returns the underlying *sql.DB.
func (s *JournalMCPServer) DB() *sql.DB {
	return s.db
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *JournalMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close cleans up allocated resources.
func (s *JournalMCPServer) Close() error {
	if s.db != nil {
		// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
		_, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: WAL checkpoint failed during close: %v\n", err)
		}
		return s.db.Close()
	}
	return nil
}
