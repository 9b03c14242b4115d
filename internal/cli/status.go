package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/roadplan/internal/engine"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the content of a plan session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, done, err := newEngine()
		if err != nil {
			return err
		}
		defer done()

		result, err := eng.Status(context.Background(), &engine.StatusRequest{Plan: planFlag})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		printStatus(result)
		return nil
	},
}

func printStatus(result *engine.StatusResult) {
	PrintSection(fmt.Sprintf("Plan %s", result.Plan))
	if !result.Exists {
		PrintEmptyState("Not started; the next intent starts it")
	} else {
		PrintLabelValue("Path", result.Path)
		PrintLabelValue("Updated", result.UpdatedAt.Format(time.RFC3339))
		PrintLabelValue("Revision", shortRevision(result.Revision))
	}
	PrintLabelValue("Last intent", result.Intent)
	PrintLabelValue("Committed strokes", strconv.Itoa(result.BuiltStrokes))

	PrintSection("New Strokes")
	if len(result.NewStrokes) == 0 {
		PrintEmptyState("No new strokes")
	} else {
		PrintTable([]string{"REF", "NODES", "LENGTH", "FROM", "TO"}, strokeRows(result.NewStrokes))
	}

	if len(result.Destroyed) > 0 {
		PrintSection("Strokes To Destroy")
		PrintTable([]string{"REF", "NODES", "LENGTH", "FROM", "TO"}, strokeRows(result.Destroyed))
	}

	PrintSection("Selections")
	if len(result.Selections) == 0 {
		PrintEmptyState("Nothing selected")
	} else {
		rows := make([][]string, 0, len(result.Selections))
		for _, sel := range result.Selections {
			rows = append(rows, []string{sel.Ref, formatLength(sel.Start), formatLength(sel.End)})
		}
		PrintTable([]string{"REF", "START", "END"}, rows)
	}

	if len(result.Plans) > 1 {
		PrintSection("Plans")
		PrintList(result.Plans, 1)
	}
}

func strokeRows(strokes []engine.StrokeInfo) [][]string {
	rows := make([][]string, 0, len(strokes))
	for _, s := range strokes {
		rows = append(rows, []string{s.Ref, strconv.Itoa(s.Nodes), formatLength(s.Length), formatPoint(s.From.Point()), formatPoint(s.To.Point())})
	}
	return rows
}
