package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/mathdrill/internal/answer"
	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/i18n"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Practice one topic in plain line mode",
	Long: `Answer a fixed number of problems from one topic, one line at a time.

Type ? instead of an answer to see the worked solution. Answers that
cannot be read are asked again and do not count.`,
	Example: "  mathdrill practice --topic money --count 10 --seed 42",
	RunE:    runPractice,
}

func init() {
	practiceCmd.Flags().String("topic", "", "Topic ID (see 'mathdrill topics')")
	practiceCmd.Flags().Int("count", 10, "Number of problems")
	_ = practiceCmd.MarkFlagRequired("topic")
}

func runPractice(cmd *cobra.Command, args []string) error {
	topicID, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")
	if count <= 0 {
		return fmt.Errorf("--count must be positive, got %d", count)
	}

	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := localized(cmd.Context(), cfg)
	explainer, closeExplainer := newExplainer(ctx, cfg, st.EventRepo(), log)
	defer closeExplainer()

	gen := problemgen.NewDefault()
	if _, err := gen.Catalog().Get(topicID); err != nil {
		return errors.New(i18n.Td(ctx, "UnknownTopic", map[string]any{"Topic": topicID}))
	}

	sess := session.New(ctx, session.Options{
		Generator: gen,
		Seed:      cfg.Seed,
		FrontEnd:  "cli",
		Recorder:  store.NewRecorder(st.EventRepo()),
		Explainer: explainer,
		Logger:    log,
	})
	_, err = drill(ctx, sess, topicID, count, cmd.InOrStdin(), cmd.OutOrStdout())
	return err
}

// drill runs count problems of topicID, reading answers line by line from
// in. It stops early at end of input. The session is ended and its
// summary printed either way.
func drill(ctx context.Context, sess *session.Session, topicID string, count int, in io.Reader, out io.Writer) (session.Summary, error) {
	t, err := sess.Catalog().Get(topicID)
	if err != nil {
		return session.Summary{}, err
	}
	sc := bufio.NewScanner(in)

	fmt.Fprintf(out, "%s (seed %d)\n\n", t.Name, sess.Seed())

problems:
	for i := 1; i <= count; i++ {
		p, err := sess.Next(ctx, topicID)
		if err != nil {
			return session.Summary{}, err
		}
		level := i18n.Td(ctx, "Level", map[string]any{"Level": p.Level, "Max": t.Difficulty.MaxLevel})
		fmt.Fprintf(out, "── %d/%d · %s ──\n%s\n", i, count, level, p.Prompt)
		fmt.Fprintln(out, i18n.FormatHint(ctx, p.Answer), i18n.T(ctx, "RevealHint"))

		for {
			fmt.Fprint(out, "> ")
			if !sc.Scan() {
				fmt.Fprintln(out)
				break problems
			}
			raw := strings.TrimSpace(sc.Text())
			if raw == "" {
				continue
			}
			if raw == "?" {
				text, err := sess.Reveal(ctx, topicID)
				if err != nil {
					return session.Summary{}, err
				}
				fmt.Fprintf(out, "\n%s\n%s\n\n", i18n.T(ctx, "Solution"), text)
				continue
			}

			o, err := sess.Submit(ctx, topicID, raw)
			var perr *answer.ParseError
			if errors.As(err, &perr) {
				fmt.Fprintln(out, i18n.Td(ctx, "InvalidFormat", map[string]any{"Input": perr.Input}),
					i18n.FormatHint(ctx, p.Answer))
				continue
			}
			if err != nil {
				return session.Summary{}, err
			}
			printOutcome(ctx, out, o)
			break
		}
	}
	if err := sc.Err(); err != nil {
		return session.Summary{}, fmt.Errorf("read answers: %w", err)
	}

	sum := sess.End(ctx)
	printSummary(ctx, out, sum)
	return sum, nil
}

func printOutcome(ctx context.Context, out io.Writer, o *session.Outcome) {
	if o.Correct {
		fmt.Fprintln(out, "✓", i18n.T(ctx, "Correct"))
	} else {
		fmt.Fprintln(out, "✗", i18n.Td(ctx, "Incorrect", map[string]any{"Answer": o.Expected.String()}))
		fmt.Fprintf(out, "%s\n%s\n", i18n.T(ctx, "Solution"), o.Explanation)
	}
	switch o.Change.Kind {
	case difficulty.Promoted:
		fmt.Fprintf(out, "★ %s\n", i18n.Td(ctx, "LevelUp", map[string]any{"Level": o.Change.To}))
	case difficulty.Demoted:
		fmt.Fprintf(out, "↓ %s\n", i18n.Td(ctx, "LevelDown", map[string]any{"Level": o.Change.To}))
	}
	fmt.Fprintln(out)
}

func printSummary(ctx context.Context, out io.Writer, sum session.Summary) {
	sep := strings.Repeat("─", 48)
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, i18n.T(ctx, "SummaryTitle"))
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, i18n.Td(ctx, "SummaryTotals", map[string]any{
		"Correct":   sum.Correct,
		"Attempted": sum.Attempted,
		"Percent":   i18n.Percent(sum.Accuracy),
	}))
	for _, ts := range sum.Topics {
		if ts.Attempted == 0 {
			continue
		}
		fmt.Fprintf(out, "  %-22s L%d → L%d  %d/%d\n", ts.Name, ts.StartLevel, ts.EndLevel, ts.Correct, ts.Attempted)
	}
	fmt.Fprintf(out, "  %s\n", sum.Duration.Round(time.Second))
}
