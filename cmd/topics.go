package cmd

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/topic"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List practice topics and their difficulty rules",
	Long: `List the topic catalogue grouped by strand.

With --sample N, print N generated problems with answers for every level
of every topic. Useful for checking templates; nothing is recorded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, _ := cmd.Flags().GetInt("sample")
		only, _ := cmd.Flags().GetString("topic")

		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}

		gen := problemgen.NewDefault()
		out := cmd.OutOrStdout()
		if samples <= 0 {
			printTopics(out, gen.Catalog())
			return nil
		}

		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		return printSamples(out, gen, only, samples, seed)
	},
}

func init() {
	topicsCmd.Flags().Int("sample", 0, "Print this many sample problems per level")
	topicsCmd.Flags().String("topic", "", "Only sample this topic")
}

func printTopics(out io.Writer, c *topic.Catalog) {
	fmt.Fprintf(out, "Topic catalogue %s\n", c.Version())
	for _, s := range c.Strands() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, topic.StrandDisplayName(s))
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-18s  %-24s  %5s  %6s  %7s  %6s\n",
			"ID", "Name", "Grade", "Levels", "Promote", "Demote")
		for _, t := range c.ByStrand(s) {
			fmt.Fprintf(out, "%-18s  %-24s  %5d  %6d  %7d  %6d\n",
				t.ID, truncate(t.Name, 24), t.Grade,
				t.Difficulty.MaxLevel, t.Difficulty.PromoteAfter, t.Difficulty.DemoteAfter)
		}
	}
}

// printSamples prints n problems per level for each topic (or just only)
// from one seeded random source.
func printSamples(out io.Writer, gen *problemgen.Generator, only string, n int, seed uint64) error {
	topics := gen.Catalog().All()
	if only != "" {
		t, err := gen.Catalog().Get(only)
		if err != nil {
			return err
		}
		topics = []topic.Topic{t}
	}

	rng := rand.New(problemgen.NewSource(seed))
	fmt.Fprintf(out, "Samples (seed %d)\n", seed)
	for _, t := range topics {
		fmt.Fprintf(out, "\n%s [%s]\n", t.Name, t.ID)
		for level := 1; level <= t.Difficulty.MaxLevel; level++ {
			for range n {
				p, err := gen.Generate(t.ID, level, rng)
				if err != nil {
					return err
				}
				mark := ""
				if p.Fallback {
					mark = " (fallback)"
				}
				fmt.Fprintf(out, "  L%d %-22s %s\n       → %s%s\n",
					level, p.TemplateID, p.Prompt, p.Answer, mark)
			}
		}
	}
	return nil
}
