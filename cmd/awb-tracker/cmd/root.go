// Package cmd implements the CLI commands for awb-tracker.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/awb-tracker/internal/config"
	"github.com/donaldgifford/awb-tracker/pkg/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "awb-tracker",
		Short: "Watch a DHL shipment and report status changes",
		Long: "awb-tracker polls the DHL tracking endpoint for one air waybill and\n" +
			"prints, pops up and optionally posts to Discord whenever a new\n" +
			"checkpoint shows up.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initEnv)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "config.yaml", "config file path")
	pf.String("awb", "", "air waybill to track (overrides tracking.awb)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text, json, pretty")

	cobra.CheckErr(viper.BindPFlag("awb", pf.Lookup("awb")))
	cobra.CheckErr(viper.BindPFlag("log-level", pf.Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("log-format", pf.Lookup("log-format")))

	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(versionCmd())
}

// initEnv loads an optional .env file and enables AWB_TRACKER_* overrides.
func initEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Ignoring .env:", err)
	}

	viper.SetEnvPrefix("AWB_TRACKER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the config file and applies CLI and environment overrides.
// A positional AWB argument wins over everything else. The default config
// path may be absent; an explicit --config must exist.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	opts := []config.Option{config.WithOverride(func(c *config.Config) {
		applyOverrides(c)
		if len(args) > 0 {
			c.Tracking.AWB = args[0]
		}
	})}
	if !cmd.Flags().Changed("config") {
		opts = append(opts, config.AllowMissing())
	}

	cfg, err := config.Load(cfgFile, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func applyOverrides(c *config.Config) {
	if viper.IsSet("awb") {
		c.Tracking.AWB = viper.GetString("awb")
	}
	if viper.IsSet("cron") {
		c.Schedule.Cron = viper.GetString("cron")
	}
	if viper.GetBool("now") {
		c.Schedule.StartImmediately = true
	}
	if viper.IsSet("log-level") {
		c.Logging.Level = viper.GetString("log-level")
	}
	if viper.IsSet("log-format") {
		c.Logging.Format = viper.GetString("log-format")
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)
	return log
}
