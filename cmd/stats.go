package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/mathdrill/internal/i18n"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/topic"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-topic accuracy and recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, _ := cmd.Flags().GetInt("sessions")

		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		return printStats(cmd.Context(), cmd.OutOrStdout(), st.EventRepo(), topic.Default(), sessions)
	},
}

func init() {
	statsCmd.Flags().IntP("sessions", "n", 5, "Number of recent sessions to show")
}

func printStats(ctx context.Context, out io.Writer, repo store.EventRepo, cat *topic.Catalog, recent int) error {
	stats, err := repo.TopicStats(ctx)
	if err != nil {
		return fmt.Errorf("query topic stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Fprintln(out, "No practice recorded yet.")
		return nil
	}

	fmt.Fprintln(out, "Topics")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	fmt.Fprintf(out, "%-24s  %9s  %7s  %8s  %7s  %s\n",
		"Topic", "Attempted", "Correct", "Accuracy", "Best L", "Last practiced")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	var attempted, correct int
	for _, s := range stats {
		name := s.TopicID
		if t, err := cat.Get(s.TopicID); err == nil {
			name = t.Name
		}
		fmt.Fprintf(out, "%-24s  %9d  %7d  %7d%%  %7d  %s\n",
			truncate(name, 24), s.Attempted, s.Correct, i18n.Percent(s.Accuracy()),
			s.HighestLevel, s.LastPracticed.Local().Format("2006-01-02 15:04"))
		attempted += s.Attempted
		correct += s.Correct
	}
	fmt.Fprintln(out, strings.Repeat("─", 72))
	total := store.TopicStats{Attempted: attempted, Correct: correct}
	fmt.Fprintf(out, "%-24s  %9d  %7d  %7d%%\n", "TOTAL", attempted, correct, i18n.Percent(total.Accuracy()))

	if recent <= 0 {
		return nil
	}
	sessions, err := repo.Sessions(ctx, recent)
	if err != nil {
		return fmt.Errorf("query sessions: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent sessions")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	for _, s := range sessions {
		length := "open"
		if !s.EndedAt.IsZero() {
			length = s.EndedAt.Sub(s.StartedAt).Round(time.Second).String()
		}
		fmt.Fprintf(out, "%s  %-4s  %3d/%-3d  %-9s  %s\n",
			s.StartedAt.Local().Format("2006-01-02 15:04"), s.FrontEnd,
			s.Correct, s.Attempted, length, truncate(s.SessionID, 8))
	}
	return nil
}
