package display

import (
	"fmt"
	"os"

	"github.com/backmassage/clipstitch/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if logging.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, `  ____ _ _      ____  _   _ _       _
 / ___| (_)_ __/ ___|| |_(_) |_ ___| |__
| |   | | | '_ \___ \| __| | __/ __| '_ \
| |___| | | |_) |__) | |_| | || (__| | | |
 \____|_|_| .__/____/ \__|_|\__\___|_| |_|
          |_|
`)
	if logging.Magenta != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
