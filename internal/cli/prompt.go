package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/all-dot-files/stopwatch/internal/models"
)

// prompter reads answers line by line. Lines are read on a separate goroutine
// so a pending prompt can be abandoned when the context is cancelled.
type prompter struct {
	ctx    context.Context
	cancel context.CancelFunc
	lines  <-chan string
	out    io.Writer
	echo   bool
}

func newPrompter(ctx context.Context, in io.Reader, out io.Writer) *prompter {
	ctx, cancel := context.WithCancel(ctx)
	lines := make(chan string)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	return &prompter{
		ctx:    ctx,
		cancel: cancel,
		lines:  lines,
		out:    out,
		echo:   isPiped(in),
	}
}

// isPiped reports whether in is a file that is not a terminal. Answers read
// from a pipe are echoed so the transcript stays readable.
func isPiped(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && !term.IsTerminal(int(f.Fd()))
}

// Close releases the reader goroutine.
func (p *prompter) Close() {
	p.cancel()
}

// readLine prints the prompt and waits for the next line. It returns false
// when the input is exhausted or the context is done.
func (p *prompter) readLine(prompt string) (string, bool) {
	fmt.Fprint(p.out, prompt)

	select {
	case <-p.ctx.Done():
		return "", false
	case line, ok := <-p.lines:
		if !ok {
			return "", false
		}
		if p.echo {
			fmt.Fprintln(p.out, line)
		}
		return strings.TrimSpace(line), true
	}
}

// MenuChoice asks until a number between 1 and n is entered.
func (p *prompter) MenuChoice(n int) (int, bool) {
	for {
		line, ok := p.readLine(fmt.Sprintf("Enter your choice (1-%d): ", n))
		if !ok {
			return 0, false
		}
		if choice, err := strconv.Atoi(line); err == nil && choice >= 1 && choice <= n {
			return choice, true
		}
		fmt.Fprintf(p.out, "Invalid input. Please enter a number between 1 and %d.\n", n)
	}
}

// Interval asks until a display interval within bounds is entered.
func (p *prompter) Interval() (time.Duration, bool) {
	lo, hi := models.MinDisplayInterval.Seconds(), models.MaxDisplayInterval.Seconds()
	for {
		line, ok := p.readLine(fmt.Sprintf("Enter new display interval in seconds (%g to %g): ", lo, hi))
		if !ok {
			return 0, false
		}
		if seconds, err := strconv.ParseFloat(line, 64); err == nil {
			d := models.IntervalFromSeconds(seconds)
			if models.ValidateInterval(d) == nil {
				return d, true
			}
		}
		fmt.Fprintf(p.out, "Invalid input. Please enter a number between %g and %g.\n", lo, hi)
	}
}

// Confirm implements stopwatch.Confirmer. Only answers starting with y or Y confirm.
func (p *prompter) Confirm(prompt string) bool {
	line, ok := p.readLine(prompt)
	return ok && (strings.HasPrefix(line, "y") || strings.HasPrefix(line, "Y"))
}
