package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/ptserve/pkg/configs"
	"github.com/yeisme/ptserve/pkg/style"
	"github.com/yeisme/ptserve/pkg/utils/schema"
)

var (
	noColor bool

	configCmd = &cobra.Command{
		Use:     "config",
		Short:   "Manage ptserve configuration",
		Long:    `ptserve config allows you to view and manage your ptserve configuration settings.`,
		Aliases: []string{"c"},
	}

	configValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate ptserve configuration",
		Long:  `ptserve config validate checks that the configuration file parses and that the server settings are usable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := serveCtx.Config.Validate(); err != nil {
				return fmt.Errorf("config is invalid: %w", err)
			}

			fileUsed := serveCtx.Viper.ConfigFileUsed()
			if fileUsed == "" {
				fileUsed = "(defaults)"
			}
			log.Info().Msgf("Config file used: %s", fileUsed)
			fmt.Fprintln(cmd.OutOrStdout(), "config OK:", fileUsed)
			return nil
		},
		Aliases: []string{"check", "verify"},
	}

	configListCmd = &cobra.Command{
		Use:   "list [section]",
		Short: "List ptserve configuration",
		Long: `ptserve config list displays the current configuration settings.

You can specify a section to display only that part of the configuration:
  - app: Application settings
  - log: Logging settings
  - server: HTTP server settings

Examples:
  ptserve config list                    # Show all configuration (viper raw data)
  ptserve config list --all              # Show all configuration with defaults
  ptserve config list server             # Show only server settings
  ptserve config list --format json      # Output in JSON format
  ptserve config list server --all --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) > 0 {
				section = args[0]
			}

			format := configs.GetOutputFormatFromFlags(cmd)
			showAll, _ := cmd.Flags().GetBool("all")

			data, err := configs.GetConfigSection(serveCtx.Viper, section, showAll)
			if err != nil {
				return fmt.Errorf("error getting config section: %w", err)
			}

			out := cmd.OutOrStdout()
			color := !noColor && style.IsTerminal(out)
			if section != "" && format != configs.FormatJSON {
				_ = style.PrintHeading(out, section, color)
			}
			return configs.OutputData(data, format, out, color)
		},
		Aliases: []string{"ls"},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize ptserve configuration",
		Long: `ptserve config init creates a new configuration file with default settings.

Examples:
  ptserve config init                    # Create .ptserve.yaml in current directory
  ptserve config init --path ~/.config/ptserve/ptserve.yaml
  ptserve config init --format toml      # Create .ptserve.toml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			formatStr, _ := cmd.Flags().GetString("format")

			format, err := configs.ParseOutputFormat(formatStr)
			if err != nil {
				return err
			}

			// 如果没有指定路径，使用默认路径
			if path == "" {
				path = ".ptserve." + string(format)
			}

			if err := configs.CreateDefaultConfig(path, format); err != nil {
				return err
			}

			log.Info().Msgf("Config file created successfully: %s", path)
			return nil
		},
		Args: cobra.NoArgs,
	}

	configSchemaCmd = &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !noColor && style.IsTerminal(out) {
				var sb strings.Builder
				if err := schema.GenConfigSchema(&sb); err != nil {
					return err
				}
				return style.PrintJSON(out, sb.String())
			}
			return schema.GenConfigSchema(out)
		},
	}
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(
		configListCmd,
		configValidateCmd,
		configInitCmd,
		configSchemaCmd,
	)

	configCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable color output")

	// 添加 config list 标志
	configListCmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(configs.ValidFormats(), ", ")))
	configListCmd.Flags().Bool("yaml", false, "Output in YAML format")
	configListCmd.Flags().Bool("json", false, "Output in JSON format")
	configListCmd.Flags().Bool("toml", false, "Output in TOML format")
	configListCmd.Flags().Bool("text", false, "Output in plain text format")
	configListCmd.Flags().BoolP("all", "a", false, "Show complete configuration with defaults (processed struct)")

	// 添加 config init 标志
	configInitCmd.Flags().StringP("path", "p", "", "Path to the config file")
	configInitCmd.Flags().StringP("format", "f", "yaml", "Format of the config file (yaml, json, toml)")
}
