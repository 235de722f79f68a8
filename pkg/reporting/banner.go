package reporting

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
)

//go:embed banner.txt
var banner string

// rainbow cycles through the banner lines when colors are on.
var rainbow = []string{
	ansiRed, ansiYellow, ansiGreen, ansiCyan, ansiBlue, ansiMagenta,
}

// PrintBanner writes the startup banner, one rainbow color per line when
// colors are enabled.
func PrintBanner(w io.Writer, colors bool) {
	if !colors {
		fmt.Fprintln(w, strings.TrimRight(banner, "\n"))
		return
	}

	for i, line := range strings.Split(strings.TrimRight(banner, "\n"), "\n") {
		fmt.Fprintf(w, "%s%s%s\n", rainbow[i%len(rainbow)], line, ansiReset)
	}
}
