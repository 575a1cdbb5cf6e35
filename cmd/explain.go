package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/mathdrill/internal/explain"
	"github.com/abhisek/mathdrill/internal/i18n"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Generate one problem and print its worked solution",
	Long: `Generate one problem and print both the template solution and, when an
LLM provider is configured, the model's explanation. Nothing is recorded
except the LLM request itself.`,
	Example: "  mathdrill explain --topic fractions --level 3 --seed 7 --lang es",
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, _ := cmd.Flags().GetString("topic")
		level, _ := cmd.Flags().GetInt("level")

		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		ctx := localized(cmd.Context(), cfg)

		gen := problemgen.NewDefault()
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		p, err := gen.Generate(topicID, level, rand.New(problemgen.NewSource(seed)))
		if errors.Is(err, problemgen.ErrUnknownTopic) {
			return errors.New(i18n.Td(ctx, "UnknownTopic", map[string]any{"Topic": topicID}))
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s · L%d · %s (seed %d)\n\n%s\n\n", p.TopicID, p.Level, p.TemplateID, seed, p.Prompt)
		fmt.Fprintf(out, "%s\n%s\n", i18n.T(ctx, "Solution"), p.Explanation)

		if !cfg.LLMEnabled() {
			return nil
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ex, closeExplainer := newExplainer(ctx, cfg, st.EventRepo(), log)
		defer closeExplainer()
		if ex == nil {
			return nil
		}
		text, err := ex.Explain(ctx, p)
		if err != nil {
			if errors.Is(err, explain.ErrAnswerMismatch) {
				fmt.Fprintln(out, "\nThe model's explanation reached a different answer and was discarded.")
				return nil
			}
			return fmt.Errorf("LLM explanation: %w", err)
		}
		fmt.Fprintf(out, "\n%s (%s)\n%s\n", i18n.T(ctx, "Solution"), cfg.LLM.Model, text)
		return nil
	},
}

func init() {
	explainCmd.Flags().String("topic", "", "Topic ID (see 'mathdrill topics')")
	explainCmd.Flags().Int("level", 1, "Difficulty level")
	_ = explainCmd.MarkFlagRequired("topic")
}
