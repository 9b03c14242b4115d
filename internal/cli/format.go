package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/danieljhkim/roadplan/internal/geom"
)

var (
	// fatih/color disables these automatically when output is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	dimColor     = color.New(color.FgHiBlack)

	out io.Writer = os.Stdout
)

// setOutput redirects all printing, so commands honour cobra's SetOut.
func setOutput(stdout io.Writer) {
	out = stdout
}

// PrintSection prints a section header
func PrintSection(title string) {
	_, _ = fmt.Fprintln(out)
	_, _ = headerColor.Fprintf(out, "▸ %s\n", title)
	_, _ = fmt.Fprintln(out)
}

// PrintSuccess prints a success message with a checkmark
func PrintSuccess(msg string) {
	_, _ = successColor.Fprintf(out, "✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(msg string) {
	_, _ = warningColor.Fprintf(out, "⚠ %s\n", msg)
}

// PrintInfo prints an informational message
func PrintInfo(msg string) {
	_, _ = fmt.Fprintln(out, msg)
}

// PrintLabelValue prints a label-value pair with proper formatting
func PrintLabelValue(label, value string) {
	_, _ = labelColor.Fprintf(out, "  %s: ", label)
	_, _ = valueColor.Fprintln(out, value)
}

// PrintList prints a list of items with bullet points
func PrintList(items []string, indent int) {
	indentStr := strings.Repeat("  ", indent)
	for _, item := range items {
		_, _ = infoColor.Fprintf(out, "%s• %s\n", indentStr, item)
	}
}

// PrintTable prints a simple table
func PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	_, _ = fmt.Fprint(out, "  ")
	for i, header := range headers {
		if i > 0 {
			_, _ = fmt.Fprint(out, "  ")
		}
		_, _ = headerColor.Fprintf(out, "%-*s", colWidths[i], header)
	}
	_, _ = fmt.Fprintln(out)

	_, _ = fmt.Fprint(out, "  ")
	for i, width := range colWidths {
		if i > 0 {
			_, _ = fmt.Fprint(out, "  ")
		}
		_, _ = fmt.Fprint(out, strings.Repeat("-", width))
	}
	_, _ = fmt.Fprintln(out)

	for _, row := range rows {
		_, _ = fmt.Fprint(out, "  ")
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				_, _ = fmt.Fprint(out, "  ")
			}
			_, _ = valueColor.Fprintf(out, "%-*s", colWidths[i], cell)
		}
		_, _ = fmt.Fprintln(out)
	}
}

// PrintEmptyState prints a message when there's no data to show
func PrintEmptyState(msg string) {
	_, _ = dimColor.Fprintf(out, "  %s\n", msg)
}

// PrintCount prints a count with proper formatting
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// FormatError formats an error for display.
func FormatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatLength(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatPoint(p geom.Point) string {
	return formatFloat(p.X) + "," + formatFloat(p.Y)
}

// shortRevision trims a revision hash for display.
func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
