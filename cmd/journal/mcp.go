package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Samik0007/JournalAppPersonal/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the journal MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes journal entries,
search and analytics as MCP tools via STDIO.

The --dbpath flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\journal\journal.db
- macOS: ~/Library/Application Support/journal/journal.db
- Linux: ~/.local/share/journal/journal.db

Example:

  journal mcp --dbpath journal.db | tee server.log

  # Or simply use the default location:
  journal mcp`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mcp.NewJournalMCPServer(dbPath)
		if err != nil {
			return err
		}
		defer srv.Close()

		srv.RegisterAllTools()

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "Journal MCP server started. DB: %s\n", srv.DbPath)
		fmt.Fprintln(os.Stderr, "Available tools: ping, create_entry, get_today_entry, get_entry_by_date, list_entries, search_entries, delete_entry, daily_streak, mood_distribution")
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		// Run the server (blocks until stdio closes).
		return srv.Start()
	},
}
