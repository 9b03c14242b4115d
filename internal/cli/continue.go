package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/roadplan/internal/plan"
)

var (
	continueAppend  []int
	continuePrepend []int
	continueStart   string
	continueDryRun  bool
)

var continueCmd = &cobra.Command{
	Use:   "continue --start <x,y> <x,y>...",
	Short: "Extend new strokes through more points",
	Long: `Extend strokes of the plan through more points.

--append extends a stroke at its end, --prepend at its start; both take the
index of a new stroke (see "roadplan status") and can be repeated. All
strokes keep their offset from the path traced from --start through the
points.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(continueAppend)+len(continuePrepend) == 0 {
			return fmt.Errorf("must specify at least one stroke with --append or --prepend")
		}
		start, err := parsePoint(continueStart)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		points, err := parsePoints(args)
		if err != nil {
			return err
		}

		intent := plan.ContinueRoad{AdditionalPoints: points, StartReferencePoint: start}
		for _, idx := range continueAppend {
			intent.ContinueFrom = append(intent.ContinueFrom, plan.Continuation{Index: idx, Mode: plan.Append})
		}
		for _, idx := range continuePrepend {
			intent.ContinueFrom = append(intent.ContinueFrom, plan.Continuation{Index: idx, Mode: plan.Prepend})
		}
		return applyIntent(intent, nil, continueDryRun)
	},
}

func init() {
	continueCmd.Flags().IntSliceVar(&continueAppend, "append", nil, "Index of a new stroke to extend at its end")
	continueCmd.Flags().IntSliceVar(&continuePrepend, "prepend", nil, "Index of a new stroke to extend at its start")
	continueCmd.Flags().StringVar(&continueStart, "start", "", "Reference point the continuation starts from (x,y)")
	continueCmd.Flags().BoolVar(&continueDryRun, "dry-run", false, "Show the result without saving it")
	_ = continueCmd.MarkFlagRequired("start")
}
