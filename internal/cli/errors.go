package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	apperrors "github.com/all-dot-files/stopwatch/pkg/errors"
)

// PrintError prints the error in a user-friendly format
func PrintError(err error) {
	printError(os.Stderr, err)
}

func printError(w io.Writer, err error) {
	if err == nil {
		return
	}

	// Colors
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.FgHiBlack).SprintFunc()

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		fmt.Fprintf(w, "%s %s\n", red("Error:"), appErr.Message)

		if appErr.Suggestion != "" {
			fmt.Fprintf(w, "%s %s\n", yellow("Suggestion:"), appErr.Suggestion)
		}

		if IsDebug() {
			fmt.Fprintf(w, "\n%s\n", dim("--- Debug Info ---"))
			fmt.Fprintf(w, "%s Code: %s\n", dim("•"), appErr.Code)
			fmt.Fprintf(w, "%s Op:   %s\n", dim("•"), appErr.Op)
			if appErr.Err != nil {
				fmt.Fprintf(w, "%s Cause: %+v\n", dim("•"), appErr.Err)
			}
		}
		return
	}

	// Generic error
	fmt.Fprintf(w, "%s %s\n", red("Error:"), err.Error())
	if IsDebug() {
		fmt.Fprintf(w, "\n%s %+v\n", dim("Debug:"), err)
	}
}
