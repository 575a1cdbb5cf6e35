package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/mathdrill/internal/llm"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM explanation usage",
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		return printLLMUsage(cmd.Context(), cmd.OutOrStdout(), st.EventRepo())
	},
}

var llmConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show which provider and model explanations would use",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !cfg.LLMEnabled() {
			fmt.Fprintln(out, "No LLM provider configured; template solutions are used.")
			return nil
		}
		fmt.Fprintf(out, "Provider:  %s\n", cfg.LLM.Provider)
		fmt.Fprintf(out, "Model:     %s\n", cfg.LLM.Model)
		fmt.Fprintf(out, "Timeout:   %s\n", cfg.LLM.Timeout)
		if err := cfg.LLM.Validate(); err != nil {
			fmt.Fprintf(out, "Problem:   %v\n", err)
		}
		return nil
	},
}

func printLLMUsage(ctx context.Context, out io.Writer, repo store.EventRepo) error {
	usage, err := repo.LLMUsage(ctx)
	if err != nil {
		return fmt.Errorf("query usage: %w", err)
	}
	if len(usage) == 0 {
		fmt.Fprintln(out, "No LLM usage recorded yet.")
		return nil
	}

	fmt.Fprintln(out, "Estimated Cost (USD)")
	fmt.Fprintln(out, strings.Repeat("─", 80))
	fmt.Fprintf(out, "%-32s  %6s  %6s  %10s  %10s  %10s\n",
		"Model", "Calls", "Failed", "Input", "Output", "Cost")
	fmt.Fprintln(out, strings.Repeat("─", 80))

	var totalCost float64
	var unknown []string
	for _, u := range usage {
		cost, ok := llm.LookupCost(u.Model)
		if !ok {
			unknown = append(unknown, u.Model)
			fmt.Fprintf(out, "%-32s  %6d  %6d  %10d  %10d  %10s\n",
				truncate(u.Model, 32), u.Requests, u.Failures, u.InputTokens, u.OutputTokens, "?")
			continue
		}
		c := cost.Cost(u.InputTokens, u.OutputTokens)
		totalCost += c
		fmt.Fprintf(out, "%-32s  %6d  %6d  %10d  %10d  %10s\n",
			truncate(u.Model, 32), u.Requests, u.Failures, u.InputTokens, u.OutputTokens, formatCost(c))
	}

	fmt.Fprintln(out, strings.Repeat("─", 80))
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(out, "%-32s  %6s  %6s  %10s  %10s  %10s\n", label, "", "", "", "", formatCost(totalCost))
	if len(unknown) > 0 {
		fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmCmd.AddCommand(llmStatsCmd)
	llmCmd.AddCommand(llmConfigCmd)
}
