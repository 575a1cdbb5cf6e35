package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/mathdrill/internal/export"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent attempts or export them to a spreadsheet",
	Example: `  mathdrill history -n 50 --topic money
  mathdrill history --xlsx progress.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		topicID, _ := cmd.Flags().GetString("topic")
		sessionID, _ := cmd.Flags().GetString("session")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")

		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		opts := store.QueryOpts{Limit: limit, TopicID: topicID, SessionID: sessionID}
		if xlsxPath == "" {
			return printHistory(cmd.Context(), cmd.OutOrStdout(), st.EventRepo(), opts)
		}

		// Exports are complete unless a limit was asked for.
		if !cmd.Flags().Changed("limit") {
			opts.Limit = 0
		}
		n, err := exportHistory(cmd.Context(), xlsxPath, st.EventRepo(), opts)
		if err != nil {
			return err
		}
		log.Info("history exported", "path", xlsxPath, "attempts", n)
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d attempts to %s\n", n, xlsxPath)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().String("topic", "", "Only this topic")
	historyCmd.Flags().String("session", "", "Only this session ID")
	historyCmd.Flags().String("xlsx", "", "Write attempts and topic totals to this .xlsx file")
}

func printHistory(ctx context.Context, out io.Writer, repo store.EventRepo, opts store.QueryOpts) error {
	attempts, err := repo.Attempts(ctx, opts)
	if err != nil {
		return fmt.Errorf("query attempts: %w", err)
	}
	if len(attempts) == 0 {
		fmt.Fprintln(out, "No attempts found.")
		return nil
	}

	fmt.Fprintf(out, "%-16s  %-16s  %3s  %-12s  %-12s  %2s  %s\n",
		"Time", "Topic", "Lvl", "Expected", "Submitted", "OK", "Change")
	fmt.Fprintln(out, strings.Repeat("─", 84))
	for _, a := range attempts {
		ok := "✓"
		if !a.Correct {
			ok = "✗"
		}
		change := ""
		if a.LevelChange != "" && a.LevelChange != "none" {
			change = fmt.Sprintf("%s → L%d", a.LevelChange, a.LevelAfter)
		}
		if a.Revealed {
			change = strings.TrimSpace(change + " (solution shown)")
		}
		fmt.Fprintf(out, "%-16s  %-16s  %3d  %-12s  %-12s  %2s  %s\n",
			a.Timestamp.Local().Format("2006-01-02 15:04"), truncate(a.TopicID, 16), a.Level,
			truncate(a.Expected, 12), truncate(a.Submitted, 12), ok, change)
	}
	return nil
}

func exportHistory(ctx context.Context, path string, repo store.EventRepo, opts store.QueryOpts) (int, error) {
	attempts, err := repo.Attempts(ctx, opts)
	if err != nil {
		return 0, fmt.Errorf("query attempts: %w", err)
	}
	stats, err := repo.TopicStats(ctx)
	if err != nil {
		return 0, fmt.Errorf("query topic stats: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.WriteXLSX(f, attempts, stats); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", path, err)
	}
	return len(attempts), nil
}
