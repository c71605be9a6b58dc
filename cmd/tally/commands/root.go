package commands

import (
	"fmt"
	"time"

	"github.com/chrisconley/tally/internal/config"
	"github.com/chrisconley/tally/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	verbose bool
	cfg     *config.AppConfig
	now     func() time.Time
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(time.Now)
}

func newRootCmd(now func() time.Time) *cobra.Command {
	a := &app{now: now}

	rootCmd := &cobra.Command{
		Use:   "tally",
		Short: "Tally buckets timestamped records into calendar periods and aggregates them",
		Long: `Tally segments time ranges into calendar-aligned buckets (hours to years,
including day-of-week and week-of-month) and computes sum, avg, count and
distinct-count statistics over JSON, YAML or SQLite records.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a.cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := logging.InitWriter(cmd.ErrOrStderr(), a.verbose, a.cfg.LogDir); err != nil {
				return err
			}

			log.Debug().
				Str("version", Version).
				Str("commit", Commit).
				Str("buildDate", BuildDate).
				Int("workers", a.cfg.Workers).
				Msg("Tally starting")
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(
		newSegmentCmd(a),
		newTotalCmd(a),
		newCycleCmd(a),
		newReportCmd(a),
		newMergeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
