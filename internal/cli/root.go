package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/all-dot-files/stopwatch/internal/config"
	"github.com/all-dot-files/stopwatch/pkg/logger"
)

var (
	cfgFile       string
	configManager config.ConfigStore
	configLoadErr error
	debugMode     bool
	logFormat     string
	logLevel      string
	intervalFlag  float64
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "stopwatch",
	Short: "Console stopwatch with laps and a live progress display",
	Long: `A menu-driven console stopwatch.

Features:
  - Start, pause, resume, stop and reset timing
  - Record and list lap times
  - Periodic display of the elapsed time with a one-minute progress bar
  - Display interval remembered between runs`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Tip: use \"stopwatch help\" for guidance.")
		PrintError(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SuggestionsMinimumDistance = 2

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/stopwatch/stopwatch_config.txt; .yaml and .db select other formats)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging and detailed error messages")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.Flags().Float64Var(&intervalFlag, "interval", 0, "display interval in seconds for this session (0.1 to 60)")
}

// initConfig sets up logging and reads the config file
func initConfig() {
	level := logLevel
	if debugMode {
		level = "debug"
	}
	logger.SetupWriter(rootCmd.ErrOrStderr(), logFormat, level)
	logger.With("session", uuid.NewString())

	manager, err := config.NewManager(cfgFile)
	if err != nil {
		PrintError(fmt.Errorf("error initializing config: %w", err))
		os.Exit(1)
	}
	configManager = manager

	// A missing or broken file is not fatal, the defaults stay in effect.
	configLoadErr = configManager.Load(context.Background())
	if configLoadErr != nil {
		logger.Warn("config load failed, using defaults",
			"path", configManager.GetConfigPath(), "driver", configManager.GetDriver(), "err", configLoadErr)
	} else {
		logger.Debug("config loaded",
			"path", configManager.GetConfigPath(), "interval", configManager.Get().Interval())
	}
}

// IsDebug returns true if debug mode is enabled
func IsDebug() bool {
	return debugMode
}
