package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/roadplan/internal/geom"
	"github.com/danieljhkim/roadplan/internal/plan"
)

var (
	editDryRun bool
	moveDX     float64
	moveDY     float64
)

var selectCmd = &cobra.Command{
	Use:   "select <stroke> <start> <end>",
	Short: "Select a range of a stroke",
	Long: `Select the range [start, end] (arc length) of a stroke.

The stroke is "new:<index>" for a stroke of the plan or the id of a
committed stroke. Parallel lanes are selected along with it as configured
by select_parallel and select_opposite.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := plan.ParseStrokeRef(args[0])
		if err != nil {
			return err
		}
		start, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid start %q: %w", args[1], err)
		}
		end, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid end %q: %w", args[2], err)
		}
		return applyIntent(plan.Select{Ref: ref, Start: start, End: end}, nil, editDryRun)
	},
}

var maximizeCmd = &cobra.Command{
	Use:   "maximize",
	Short: "Grow every selection to its whole stroke",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyIntent(plan.MaximizeSelection{}, nil, editDryRun)
	},
}

var moveCmd = &cobra.Command{
	Use:   "move --dx <dx> --dy <dy>",
	Short: "Move the selected ranges",
	Long: `Translate every selected range by (dx, dy).

The moved ranges are joined back to the rest of their strokes, and the
joins of neighbouring lanes are kept apart.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("dx") && !cmd.Flags().Changed("dy") {
			return fmt.Errorf("must specify --dx and/or --dy")
		}
		return applyIntent(plan.MoveSelection{Delta: geom.Pt(moveDX, moveDY)}, nil, editDryRun)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the selected ranges",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyIntent(plan.DeleteSelection{}, nil, editDryRun)
	},
}

var nextLaneCmd = &cobra.Command{
	Use:   "next-lane",
	Short: "Add a lane beside every selected range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyIntent(plan.CreateNextLane{}, nil, editDryRun)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{selectCmd, maximizeCmd, moveCmd, deleteCmd, nextLaneCmd} {
		cmd.Flags().BoolVar(&editDryRun, "dry-run", false, "Show the result without saving it")
	}
	moveCmd.Flags().Float64Var(&moveDX, "dx", 0, "Translation along x")
	moveCmd.Flags().Float64Var(&moveDY, "dy", 0, "Translation along y")
}
