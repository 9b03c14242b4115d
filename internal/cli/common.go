package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/danieljhkim/roadplan/internal/clock"
	"github.com/danieljhkim/roadplan/internal/config"
	"github.com/danieljhkim/roadplan/internal/engine"
	"github.com/danieljhkim/roadplan/internal/fsops"
	"github.com/danieljhkim/roadplan/internal/geom"
	"github.com/danieljhkim/roadplan/internal/hash"
	"github.com/danieljhkim/roadplan/internal/logging"
	"github.com/danieljhkim/roadplan/internal/plan"
	"github.com/danieljhkim/roadplan/internal/state"
)

// loadConfig resolves the data paths and reads the config file named by
// --config, or the default one under the roadplan root.
func loadConfig() (*config.Paths, *config.Config, string, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to get config paths: %w", err)
	}

	path := paths.Config
	if configFlag != "" {
		path = configFlag
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, "", fmt.Errorf("invalid config %s: %w", path, err)
	}
	return paths, cfg, path, nil
}

// newEngine creates a new engine with real implementations of all dependencies.
// The returned func flushes the logger.
func newEngine() (*engine.Engine, func(), error) {
	paths, cfg, _, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if err := paths.EnsureDirectories(); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	logger, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return nil, nil, err
	}

	fs := fsops.NewRealFS()
	hasher := hash.NewSHA256Hasher()
	clk := &clock.RealClock{}
	stateStore := state.NewFileStateStore(fs, paths.Plans, paths.Built)

	eng := engine.New(stateStore, fs, hasher, clk, *paths, cfg, logger)
	return eng, func() { _ = logger.Sync() }, nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point{}, fmt.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return geom.Pt(x, y), nil
}

func parsePoints(args []string) ([]geom.Point, error) {
	points := make([]geom.Point, 0, len(args))
	for _, arg := range args {
		p, err := parsePoint(arg)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

// applyOutput is the JSON form of an applied intent.
type applyOutput struct {
	Plan           string          `json:"plan"`
	Intent         string          `json:"intent"`
	Started        bool            `json:"started"`
	Changed        bool            `json:"changed"`
	DryRun         bool            `json:"dryRun"`
	RevisionBefore string          `json:"revisionBefore"`
	RevisionAfter  string          `json:"revisionAfter"`
	Step           state.PlanState `json:"step"`
}

// applyIntent runs intent against the selected plan and reports the result.
func applyIntent(intent plan.Intent, settings *config.Settings, dryRun bool) error {
	eng, done, err := newEngine()
	if err != nil {
		return err
	}
	defer done()

	result, err := eng.Apply(context.Background(), &engine.ApplyRequest{
		Plan:     planFlag,
		Intent:   intent,
		Settings: settings,
		DryRun:   dryRun,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(applyOutput{
			Plan:           result.Plan,
			Intent:         result.Intent,
			Started:        result.Started,
			Changed:        result.Changed,
			DryRun:         result.DryRun,
			RevisionBefore: result.RevisionBefore,
			RevisionAfter:  result.RevisionAfter,
			Step:           state.FromStep(result.Step),
		})
	}

	delta := result.Step.Delta
	switch {
	case result.DryRun:
		PrintSection("Dry Run")
		PrintInfo(fmt.Sprintf("Would apply %s to plan %s", result.Intent, result.Plan))
	case result.Changed:
		PrintSuccess(fmt.Sprintf("Applied %s to plan %s", result.Intent, result.Plan))
	default:
		PrintWarning(fmt.Sprintf("Applied %s to plan %s; nothing changed", result.Intent, result.Plan))
	}
	PrintLabelValue("New strokes", strconv.Itoa(len(delta.NewStrokes)))
	PrintLabelValue("Strokes to destroy", strconv.Itoa(len(delta.StrokesToDestroy)))
	PrintLabelValue("Selections", strconv.Itoa(len(result.Step.Selections)))
	PrintLabelValue("Revision", shortRevision(result.RevisionAfter))
	return nil
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
