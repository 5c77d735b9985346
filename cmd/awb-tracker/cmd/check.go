package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [AWB]",
		Short: "Fetch the shipment history once and print it",
		Long: "check performs a single tracking request and prints every checkpoint,\n" +
			"marking the latest one. It never sends notifications.",
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().StringP("output", "o", "table", "output format (table, json)")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if output != "table" && output != "json" {
		return fmt.Errorf("unknown output format %q (want table or json)", output)
	}

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	client := newTrackingClient(cfg, newRateLimiter(cfg))
	cps, err := client.Checkpoints(cmd.Context(), cfg.Tracking.AWB)
	if err != nil {
		return fmt.Errorf("checking %s: %w", cfg.Tracking.AWB, err)
	}
	log.Debug("history fetched", "awb", cfg.Tracking.AWB, "checkpoints", len(cps))

	report := newCheckReport(cfg.Tracking.AWB, cps)
	if output == "json" {
		return printCheckJSON(cmd.OutOrStdout(), report)
	}
	return printCheckTable(cmd.OutOrStdout(), report)
}
