package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/roadplan/internal/engine"
	"github.com/danieljhkim/roadplan/internal/fsops"
)

var (
	previewOutput string
	previewWidth  int
	previewHeight int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a plan session as a PNG",
	Long: `Render the plan over the committed road network as a PNG.

Committed strokes are grey, or red when the plan destroys them. New strokes
are blue and selections orange. Use "-o -" to write the image to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, done, err := newEngine()
		if err != nil {
			return err
		}
		defer done()

		var buf bytes.Buffer
		result, err := eng.Preview(context.Background(), &engine.PreviewRequest{
			Plan:   planFlag,
			Out:    &buf,
			Width:  previewWidth,
			Height: previewHeight,
		})
		if err != nil {
			return err
		}

		if previewOutput == "-" {
			_, err := out.Write(buf.Bytes())
			return err
		}
		if err := fsops.NewRealFS().AtomicWrite(previewOutput, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}

		if jsonOutput {
			return outputJSON(map[string]any{
				"plan":   result.Plan,
				"path":   previewOutput,
				"width":  result.Width,
				"height": result.Height,
			})
		}
		PrintSuccess(fmt.Sprintf("Rendered plan %s to %s (%dx%d)", result.Plan, previewOutput, result.Width, result.Height))
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "plan.png", "Output file, or - for stdout")
	previewCmd.Flags().IntVar(&previewWidth, "width", 0, "Image width (default from config)")
	previewCmd.Flags().IntVar(&previewHeight, "height", 0, "Image height (default from config)")
}
