package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/all-dot-files/stopwatch/internal/models"
	apperrors "github.com/all-dot-files/stopwatch/pkg/errors"
)

const keyDisplayInterval = "display_interval"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stopwatch configuration",
	Long:  `View and modify the persisted stopwatch settings.`,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return configManager.Close()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cfg := configManager.Get()

		fmt.Fprintln(out, "⚙️  Stopwatch Configuration")
		fmt.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		fmt.Fprintf(out, "Config File:       %s\n", configManager.GetConfigPath())
		fmt.Fprintf(out, "Storage:           %s\n", configManager.GetDriver())
		fmt.Fprintf(out, "Display Interval:  %g seconds\n", cfg.DisplayInterval)
		if configLoadErr != nil {
			Warning(out, "Showing defaults: %v", configLoadErr)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Examples:
  stopwatch config set display_interval 0.5
  stopwatch config set display_interval 10`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		switch key {
		case keyDisplayInterval:
			seconds, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return apperrors.Wrap(err, apperrors.ErrInvalidInput, "config.set",
					fmt.Sprintf("invalid number: %s", value))
			}
			if err := configManager.SetDisplayInterval(models.IntervalFromSeconds(seconds)); err != nil {
				return err
			}
		default:
			return unknownKey("config.set", key)
		}

		if err := configManager.Save(cmd.Context()); err != nil {
			return err
		}

		Success(cmd.OutOrStdout(), "Set %s = %s", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		cfg := configManager.Get()

		switch key {
		case keyDisplayInterval:
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", cfg.DisplayInterval)
		default:
			return unknownKey("config.get", key)
		}
		return nil
	},
}

func unknownKey(op, key string) error {
	return apperrors.New(apperrors.ErrInvalidInput, op, fmt.Sprintf("unknown configuration key: %s", key)).
		WithSuggestion("Available keys: " + keyDisplayInterval)
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
}
