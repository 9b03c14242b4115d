package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/roadplan/internal/engine"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Start an empty plan session",
	Long: `Start an empty plan session named by --plan.

Intents applied to a plan that does not exist start it implicitly; init is
for starting over. Use --force to replace an existing session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, done, err := newEngine()
		if err != nil {
			return err
		}
		defer done()

		result, err := eng.Init(context.Background(), &engine.InitRequest{Plan: planFlag, Force: initForce})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		if result.Replaced {
			PrintWarning(fmt.Sprintf("Replaced plan %s", result.Plan))
		} else {
			PrintSuccess(fmt.Sprintf("Started plan %s", result.Plan))
		}
		PrintLabelValue("Path", result.Path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Replace the plan if it already exists")
}
