package stopwatch

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ProgressBarWidth is the number of cells in the progress bar.
const ProgressBarWidth = 50

// FormatElapsed renders d as zero-padded minutes and seconds with two decimals, e.g. "02:05.50".
func FormatElapsed(d time.Duration) string {
	seconds := d.Seconds()
	minutes := int(seconds) / 60
	return fmt.Sprintf("%02d:%05.2f", minutes, math.Mod(seconds, 60))
}

// ProgressIndex is the cursor cell of the progress bar for d. The bar wraps every minute.
func ProgressIndex(d time.Duration) int {
	return int(d.Seconds()/60*ProgressBarWidth) % ProgressBarWidth
}

// ProgressBar renders the one-minute cyclic bar for d, e.g. "[====>    ] 5s".
func ProgressBar(d time.Duration) string {
	progress := ProgressIndex(d)

	var b strings.Builder
	b.Grow(ProgressBarWidth + 8)
	b.WriteByte('[')
	for i := 0; i < ProgressBarWidth; i++ {
		switch {
		case i < progress:
			b.WriteByte('=')
		case i == progress:
			b.WriteByte('>')
		default:
			b.WriteByte(' ')
		}
	}
	fmt.Fprintf(&b, "] %ds", int(d.Seconds())%60)
	return b.String()
}
