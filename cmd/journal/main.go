package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	journalapp "github.com/Samik0007/JournalAppPersonal/pkg"
	pkgdb "github.com/Samik0007/JournalAppPersonal/pkg/db"
	"github.com/Samik0007/JournalAppPersonal/pkg/utils"
)

var (
	dbPath   string
	walMode  bool
	syncMode string
)

var rootCmd = &cobra.Command{
	Use:     "journal",
	Short:   "A personal journal: one entry per day, with moods, tags and analytics.",
	Long:    ``,
	Version: fmt.Sprintf("v%s", journalapp.Version),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for journal.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(journal completion bash)

  Zsh:
    $ journal completion zsh > "${fpath[1]}/_journal"

  Fish:
    $ journal completion fish | source`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of journal",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(journalapp.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the journal database",
	Long:  `Provides commands for managing the journal SQLite database, including schema upgrades.`,
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the journal database schema to the latest version",
	Long: `Connects to the SQLite database at the specified path (via --dbpath) and applies any
necessary schema migrations. If the database does not exist or is uninitialized, it is
created, initialized with the latest schema, and seeded with the prebuilt tags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
		if err != nil {
			return err
		}

		dbConn, err := pkgdb.OpenDBConnection(resolvedPath, walMode, syncMode)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer dbConn.Close()

		if err := pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
			return err
		}

		fmt.Printf("Database at %s is ready.\n", resolvedPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "dbpath", utils.GetDefaultDBPathOnly(), "Path to the SQLite database file")
	rootCmd.PersistentFlags().BoolVar(&walMode, "wal", true, "Enable WAL journal mode")
	rootCmd.PersistentFlags().StringVar(&syncMode, "sync", "NORMAL", "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA)")

	dbCmd.AddCommand(dbUpgradeCmd)

	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(mcpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
