package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/roadplan/internal/config"
	"github.com/danieljhkim/roadplan/internal/plan"
)

var (
	roadLanes   int
	roadOneSide bool
	roadDryRun  bool
)

var roadCmd = &cobra.Command{
	Use:   "road <x,y> <x,y> [x,y]...",
	Short: "Draw a new road through points",
	Long: `Draw a new road through the given points.

Lanes are created on the left of the drawing direction and, unless
--one-side is given, on the right heading the other way. Use "--" before
points with a negative x coordinate, e.g. roadplan road -- -10,0 50,0`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := parsePoints(args)
		if err != nil {
			return err
		}

		settings, err := roadSettings(cmd)
		if err != nil {
			return err
		}
		return applyIntent(plan.NewRoad{Points: points}, settings, roadDryRun)
	},
}

// roadSettings returns the settings override implied by the road flags, or
// nil when none was given.
func roadSettings(cmd *cobra.Command) (*config.Settings, error) {
	if !cmd.Flags().Changed("lanes") && !cmd.Flags().Changed("one-side") {
		return nil, nil
	}
	_, cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	settings := cfg.Settings
	if cmd.Flags().Changed("lanes") {
		if roadLanes < 0 {
			return nil, fmt.Errorf("--lanes must not be negative")
		}
		settings.NLanesPerSide = roadLanes
	}
	if roadOneSide {
		settings.CreateBothSides = false
	}
	return &settings, nil
}

func init() {
	roadCmd.Flags().IntVar(&roadLanes, "lanes", 1, "Lanes per side")
	roadCmd.Flags().BoolVar(&roadOneSide, "one-side", false, "Only create lanes on the left side")
	roadCmd.Flags().BoolVar(&roadDryRun, "dry-run", false, "Show the result without saving it")
}
