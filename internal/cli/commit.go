package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/roadplan/internal/engine"
)

var commitDryRun bool

// commitOutput is the JSON form of a commit.
type commitOutput struct {
	Plan         string   `json:"plan"`
	Created      []string `json:"created"`
	Destroyed    []string `json:"destroyed"`
	BuiltStrokes int      `json:"builtStrokes"`
	DryRun       bool     `json:"dryRun"`
}

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit a plan session to the road network",
	Long: `Fold the plan into the committed road network.

New strokes are committed under fresh ids, strokes the plan destroys are
removed, and the session is reset to an empty plan.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, done, err := newEngine()
		if err != nil {
			return err
		}
		defer done()

		result, err := eng.Commit(context.Background(), &engine.CommitRequest{Plan: planFlag, DryRun: commitDryRun})
		if err != nil {
			return err
		}

		created := make([]string, 0, len(result.Created))
		for _, ref := range result.Created {
			created = append(created, ref.String())
		}
		destroyed := make([]string, 0, len(result.Destroyed))
		for _, ref := range result.Destroyed {
			destroyed = append(destroyed, ref.String())
		}

		if jsonOutput {
			return outputJSON(commitOutput{
				Plan:         result.Plan,
				Created:      created,
				Destroyed:    destroyed,
				BuiltStrokes: result.BuiltStrokes,
				DryRun:       result.DryRun,
			})
		}

		if commitDryRun {
			PrintSection("Dry Run")
			PrintInfo(fmt.Sprintf("Would commit %s and destroy %s",
				PrintCount(len(created), "stroke", "strokes"),
				PrintCount(len(destroyed), "stroke", "strokes")))
			if len(destroyed) > 0 {
				PrintList(destroyed, 1)
			}
			return nil
		}

		PrintSuccess(fmt.Sprintf("Committed plan %s", result.Plan))
		if len(created) > 0 {
			PrintInfo("Created:")
			PrintList(created, 1)
		}
		if len(destroyed) > 0 {
			PrintInfo("Destroyed:")
			PrintList(destroyed, 1)
		}
		PrintLabelValue("Committed strokes", fmt.Sprint(result.BuiltStrokes))
		return nil
	},
}

func init() {
	commitCmd.Flags().BoolVar(&commitDryRun, "dry-run", false, "Show what would be committed without committing")
}
