package reporting

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/jihwankim/porty/pkg/classify"
	"github.com/jihwankim/porty/pkg/discovery"
)

// ANSI escapes used by the banner and detail view.
const (
	ansiReset   = "\x1b[0m"
	ansiBold    = "\x1b[1m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiBlue    = "\x1b[34m"
	ansiMagenta = "\x1b[35m"
	ansiCyan    = "\x1b[36m"
)

// PrintTable renders the listener table. Verbose adds the exec-path column;
// colors tint the category cell per kind.
func PrintTable(w io.Writer, entries []discovery.PortEntry, verbose, colors bool) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No ports found.")
		return
	}

	table := tablewriter.NewWriter(w)
	if verbose {
		table.SetHeader([]string{"PORT", "PROCESS", "CATEGORY", "PID", "EXEC PATH"})
	} else {
		table.SetHeader([]string{"PORT", "PROCESS", "CATEGORY", "PID"})
	}
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, e := range entries {
		row := []string{
			strconv.FormatUint(uint64(e.Port), 10),
			orDash(e.Process),
			e.Kind.String(),
			pidCell(e),
		}
		if verbose {
			row = append(row, orDash(e.ExecPath))
		}

		if colors {
			cellColors := make([]tablewriter.Colors, len(row))
			cellColors[2] = kindCellColor(e.Kind)
			table.Rich(row, cellColors)
		} else {
			table.Append(row)
		}
	}

	table.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func pidCell(e discovery.PortEntry) string {
	if !e.HasPID() {
		return "-"
	}
	return strconv.FormatInt(int64(e.PID), 10)
}

func kindCellColor(kind classify.Kind) tablewriter.Colors {
	switch kind {
	case classify.Dev:
		return tablewriter.Colors{tablewriter.FgGreenColor}
	case classify.Database:
		return tablewriter.Colors{tablewriter.FgCyanColor}
	case classify.Container:
		return tablewriter.Colors{tablewriter.FgBlueColor}
	case classify.System:
		return tablewriter.Colors{tablewriter.FgYellowColor}
	default:
		return tablewriter.Colors{tablewriter.FgRedColor}
	}
}

// kindANSI is the detail-view color for a kind.
func kindANSI(kind classify.Kind) string {
	switch kind {
	case classify.Dev:
		return ansiGreen
	case classify.Database:
		return ansiCyan
	case classify.Container:
		return ansiBlue
	case classify.System:
		return ansiYellow
	default:
		return ansiRed
	}
}
