package cmd

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Build metadata, set with -ldflags "-X .../cmd.Version=v1.2.3 -X .../cmd.Commit=... -X .../cmd.Date=...".
// Commit and Date fall back to the VCS stamp embedded by the go tool.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

type buildInfo struct {
	version string
	commit  string
	date    string
	goVer   string
}

func currentBuild() buildInfo {
	b := buildInfo{version: Version, commit: Commit, date: Date, goVer: runtime.Version()}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && b.commit == "":
				b.commit = s.Value
			case s.Key == "vcs.time" && b.date == "":
				b.date = s.Value
			}
		}
	}
	if b.commit == "" {
		b.commit = "unknown"
	}
	if b.date == "" {
		b.date = "unknown"
	}
	return b
}

func (b buildInfo) write(w io.Writer, short bool) error {
	if short {
		_, err := fmt.Fprintln(w, b.version)
		return err
	}
	_, err := fmt.Fprintf(w, "awb-tracker %s\n  commit: %s\n  built:  %s\n  go:     %s\n",
		b.version, b.commit, b.date, b.goVer)
	return err
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version and build details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return err
			}
			return currentBuild().write(cmd.OutOrStdout(), short)
		},
	}
	cmd.Flags().Bool("short", false, "print only the version")
	return cmd
}
