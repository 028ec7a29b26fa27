package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeisme/ptserve/pkg/server"
)

var (
	// Serve command flags
	serveHost   string
	servePort   int
	serveDir    string
	serveSerial bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve a directory with every response labeled text/plain",
		Long: `
Serve files from a directory over HTTP. Every response carries exactly one
"Content-Type: text/plain" header, whatever the file type; all other headers
are left alone.

Examples:
  # Serve the current directory on 0.0.0.0:8000
  ptserve serve

  # Serve ./testdata on localhost only
  ptserve serve --host 127.0.0.1 --port 9000 --dir ./testdata

  # Handle connections concurrently instead of one at a time
  ptserve serve --serial=false

Notes:
  - Flags override the config file and PTSERVE_SERVER_* environment variables.
  - Binding a port that is already in use is fatal; there is no retry.
  - Stop the server with Ctrl+C (SIGINT) or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
)

// runServe is shared by serve and the root command. The root command has no
// server flags, so Changed is false there and the config values apply.
func runServe(cmd *cobra.Command, _ []string) error {
	cfg := serveCtx.Config.Server
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = serveHost
	}
	if flags.Changed("port") {
		cfg.Port = servePort
	}
	if flags.Changed("dir") {
		cfg.Root = serveDir
	}
	if flags.Changed("serial") {
		cfg.Serial = serveSerial
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	srv, err := server.New(cfg, log, server.WithOutput(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	if serveCtx.WatchConfig(globalFlags) {
		log.Debug().Str("file", serveCtx.Viper.ConfigFileUsed()).Msg("watching config file")
	}

	// a bind failure comes back wrapped; cobra prints it once and Execute exits 1
	return srv.Start(serveCtx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "address to listen on")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8000, "port to listen on (0 picks a free port)")
	serveCmd.Flags().StringVarP(&serveDir, "dir", "d", ".", "directory to serve")
	serveCmd.Flags().BoolVar(&serveSerial, "serial", true, "handle one connection at a time")
}
