package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/pagetitle/internal/config"
	"github.com/nao1215/pagetitle/internal/history"
)

// noTitlePlaceholder is shown for lookups that found no title element.
const noTitlePlaceholder = "(no title)"

// NewHistoryCmd creates the history command.
// This command lists past lookups stored in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [url]",
		Short: "List past title lookups",
		Long: `History lists title lookups recorded by previous runs.

Every successful lookup is stored in a local SQLite database under the
XDG data directory (disable with --no-history). Without arguments all
recent lookups are shown; with a URL argument only the lookups for that
exact URL are shown.

Examples:
  # Show recent lookups
  pagetitle history

  # Show lookups for one URL
  pagetitle history https://example.com

  # Show more entries
  pagetitle history --limit 100`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of entries to show (0 for all)")
	cmd.Flags().String("data-dir", "",
		"Directory holding the history database (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	dataDir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		return err
	}
	if dataDir == "" {
		dataDir = config.XDGDataDir()
	}

	// Listing must not create an empty database
	db, err := history.Open(dataDir, history.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No lookup history yet.")
			return nil
		}
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	var records []history.Record
	if len(args) == 1 {
		records, err = db.ForURL(cmd.Context(), args[0])
	} else {
		records, err = db.All(cmd.Context(), limit)
	}
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No lookup history yet.")
		return nil
	}

	for _, rec := range records {
		title := rec.Title
		if !rec.TitleFound {
			title = noTitlePlaceholder
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-50s  %s\n",
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.URL,
			title,
		)
	}

	return nil
}
