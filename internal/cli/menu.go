package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/all-dot-files/stopwatch/internal/models"
	"github.com/all-dot-files/stopwatch/internal/stopwatch"
	"github.com/all-dot-files/stopwatch/pkg/logger"
)

const (
	choiceStart = iota + 1
	choicePause
	choiceStop
	choiceReset
	choiceDisplay
	choiceInterval
	choiceLap
	choiceLaps
	choiceHelp
	choiceExit
)

var menuItems = []string{
	"Start/Resume",
	"Pause",
	"Stop",
	"Reset",
	"Display Time",
	"Set Display Interval",
	"Record Lap",
	"Display Laps",
	"Help",
	"Exit",
}

func runMenu(cmd *cobra.Command, args []string) error {
	out := newConsole(cmd.OutOrStdout())
	errOut := cmd.ErrOrStderr()

	if configLoadErr != nil {
		printError(errOut, configLoadErr)
		Warning(errOut, "Using default display interval of %g second.", models.DefaultDisplayInterval.Seconds())
	}

	interval := configManager.Get().Interval()
	if cmd.Flags().Changed("interval") {
		d := models.IntervalFromSeconds(intervalFlag)
		if err := models.ValidateInterval(d); err != nil {
			return fmt.Errorf("invalid --interval: %w", err)
		}
		interval = d
	}

	sw := stopwatch.New(
		stopwatch.WithOutput(out),
		stopwatch.WithLogger(logger.Log),
		stopwatch.WithDisplayInterval(interval),
	)
	prompt := newPrompter(cmd.Context(), cmd.InOrStdin(), out)
	defer prompt.Close()
	defer shutdown(sw, errOut)

	fmt.Fprintln(out, "Welcome to the Stopwatch!")
	fmt.Fprintln(out, "Type 9 for help on how to use the stopwatch.")

	for {
		printMenu(out)
		choice, ok := prompt.MenuChoice(len(menuItems))
		if !ok {
			fmt.Fprintln(out)
			logger.Debug("input closed, exiting")
			return nil
		}
		if choice == choiceExit {
			return nil
		}
		dispatch(choice, sw, prompt, out)
	}
}

func dispatch(choice int, sw *stopwatch.Stopwatch, prompt *prompter, out io.Writer) {
	var err error
	switch choice {
	case choiceStart:
		err = sw.Start()
	case choicePause:
		err = sw.Pause()
	case choiceStop:
		err = sw.Stop()
	case choiceReset:
		err = sw.Reset(prompt)
	case choiceDisplay:
		sw.Display()
	case choiceInterval:
		d, ok := prompt.Interval()
		if !ok {
			return
		}
		err = sw.SetDisplayInterval(d)
	case choiceLap:
		err = sw.Lap()
	case choiceLaps:
		sw.DisplayLaps()
	case choiceHelp:
		printHelp(out)
	}

	if err != nil {
		logger.Debug("menu action rejected", "action", menuItems[choice-1], "err", err)
	}
}

// shutdown stops the display loop and persists the interval in use.
func shutdown(sw *stopwatch.Stopwatch, errOut io.Writer) {
	sw.Close()

	if err := configManager.SetDisplayInterval(sw.DisplayInterval()); err != nil {
		printError(errOut, err)
	} else if err := configManager.Save(context.Background()); err != nil {
		// The command context may already be cancelled by a signal.
		logger.Error("failed to save config", "path", configManager.GetConfigPath(), "err", err)
		printError(errOut, err)
	}
	if err := configManager.Close(); err != nil {
		logger.Warn("failed to close config store", "err", err)
	}
}

func printMenu(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Stopwatch Menu:")
	for i, item := range menuItems {
		fmt.Fprintf(w, "%d. %s\n", i+1, item)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `
Help: This stopwatch allows you to:
1. Start and stop timing.
2. Pause and resume timing.
3. Record lap times.
4. View recorded lap times.
5. Change the display update interval.
6. Reset the stopwatch.
Type the number corresponding to each option to use the stopwatch.
`)
}
