// Package cmd provides command-line interface commands for ptserve
package cmd

import (
	"fmt"
	"os"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/ptserve/pkg/context"
	log2 "github.com/yeisme/ptserve/pkg/utils/log"
	"github.com/yeisme/ptserve/pkg/utils/version"
)

var (
	serveCtx *context.ServeContext
	log      log2.Logger

	// Global flags
	globalFlags = context.GlobalFlags{}
)

// rootCmd represents the base command; without a subcommand it serves the
// current directory on port 8000
var rootCmd = &cobra.Command{
	Use:   "ptserve",
	Short: "ptserve serves static files with every response labeled text/plain",
	Long: `ptserve is a local HTTP server for test fixtures. It serves files from a
directory and forces the Content-Type of every response to text/plain.

Running ptserve without a subcommand is the same as "ptserve serve".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if globalFlags.VersionEnable {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetShortVersionString())
			return nil
		}
		return runServe(cmd, args)
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if globalFlags.CPUProfile != "" {
			f, err := os.Create(globalFlags.CPUProfile)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
		}
		if globalFlags.Trace != "" {
			f, err := os.Create(globalFlags.Trace)
			if err != nil {
				return fmt.Errorf("could not create trace file: %w", err)
			}
			if err := trace.Start(f); err != nil {
				return fmt.Errorf("could not start trace: %w", err)
			}
		}

		ctx, err := context.InitServeContext(cmd.Context(), globalFlags)
		if err != nil {
			return err
		}
		serveCtx = ctx
		log = ctx.Logger

		log.Debug().Msgf("Execute Command: %s %s", "ptserve", strings.Join(os.Args[1:], " "))
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		stopProfiling()
	},
	SilenceUsage: true,
}

func stopProfiling() {
	if globalFlags.CPUProfile != "" {
		pprof.StopCPUProfile()
	}
	if globalFlags.Trace != "" {
		trace.Stop()
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		stopProfiling()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "config file")
	rootCmd.PersistentFlags().StringVar(&globalFlags.CPUProfile, "cpu-profile", "", "write cpu profile to `file`")
	rootCmd.PersistentFlags().StringVar(&globalFlags.Trace, "trace", "", "write execution trace to `file`")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "enable debug mode (prints additional information)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "V", false, "enable verbose output (prints more detailed information)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Quiet, "quiet", false, "suppress all output except errors")
	rootCmd.Flags().BoolVarP(&globalFlags.VersionEnable, "version", "v", false, "show version information")
}
