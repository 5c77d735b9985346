package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/awb-tracker/internal/api"
	"github.com/donaldgifford/awb-tracker/internal/console"
	"github.com/donaldgifford/awb-tracker/internal/engine"
	"github.com/donaldgifford/awb-tracker/pkg/tracking"
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [AWB]",
		Short: "Poll DHL until interrupted and report every status change",
		Long: "watch asks DHL for the shipment history on a schedule. Each new\n" +
			"checkpoint is printed in red and sent to the enabled notifiers.\n" +
			"The first check runs one period after start unless --now is given.\n" +
			"A response without usable data stops the tracker with exit status 1.",
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().String("cron", "", "schedule between checks (overrides schedule.cron)")
	cmd.Flags().Bool("now", false, "run the first check immediately")

	cobra.CheckErr(viper.BindPFlag("cron", cmd.Flags().Lookup("cron")))
	cobra.CheckErr(viper.BindPFlag("now", cmd.Flags().Lookup("now")))

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	schedule, err := engine.ParseSchedule(cfg.Schedule.Cron)
	if err != nil {
		return err
	}
	log.Debug("schedule parsed",
		"cron", cfg.Schedule.Cron,
		"next_runs", engine.NextRuns(schedule, time.Now(), 3),
	)

	printer := console.New(cmd.OutOrStdout(), cfg.Console.Color)
	if cfg.Console.Banner {
		printer.Banner()
	}

	rl := newRateLimiter(cfg)
	poller := engine.NewPoller(
		cfg.Tracking.AWB,
		newTrackingClient(cfg, rl),
		buildNotifier(cfg, log),
		printer,
		engine.WithLogger(log),
		engine.WithSchedule(schedule),
		engine.WithStartImmediately(cfg.Schedule.StartImmediately),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		stopServer := startAPIServer(ctx, api.NewServer(Version, poller, rl, log), cfg.Metrics.Addr, log)
		defer stopServer()
	}

	final, err := poller.Run(ctx, tracking.NewState())
	if err != nil {
		return fmt.Errorf("tracking %s: %w", cfg.Tracking.AWB, err)
	}

	log.Info("tracker stopped", "awb", cfg.Tracking.AWB, "last_step_id", final.LastStepID)
	return nil
}

// startAPIServer runs srv in the background. A listen or serve failure is
// logged as soon as it happens and tracking carries on. The returned func
// shuts the server down and waits for it.
func startAPIServer(ctx context.Context, srv *api.Server, addr string, log *slog.Logger) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		if err := srv.ListenAndServe(ctx, addr); err != nil {
			log.Error("api server failed, tracking continues without it", "addr", addr, "error", err)
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
