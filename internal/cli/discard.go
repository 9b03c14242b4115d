package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/roadplan/internal/engine"
)

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Throw away a plan session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, done, err := newEngine()
		if err != nil {
			return err
		}
		defer done()

		result, err := eng.Discard(context.Background(), &engine.DiscardRequest{Plan: planFlag})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		if !result.Existed {
			PrintWarning(fmt.Sprintf("Plan %s does not exist", result.Plan))
			return nil
		}
		PrintSuccess(fmt.Sprintf("Discarded plan %s", result.Plan))
		return nil
	},
}
