package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/danieljhkim/roadplan/internal/engine"
)

// setupTestEnv points roadplan at a fresh temporary root.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ROADPLAN_ROOT", root)
	t.Setenv("ROADPLAN_LANES_PER_SIDE", "")
	t.Setenv("ROADPLAN_BOTH_SIDES", "")
	t.Setenv("ROADPLAN_LOG_LEVEL", "")
	return root
}

// resetFlags restores every flag to its default; cobra keeps parsed values
// between executions of the same command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the CLI with args and returns what it printed to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var bufOut, bufErr bytes.Buffer
	rootCmd.SetOut(&bufOut)
	rootCmd.SetErr(&bufErr)
	rootCmd.SetArgs(args)
	defer setOutput(os.Stdout)

	err := rootCmd.Execute()
	return bufOut.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	output, err := run(t, args...)
	if err != nil {
		t.Fatalf("roadplan %s: %v", strings.Join(args, " "), err)
	}
	return output
}

func status(t *testing.T, args ...string) engine.StatusResult {
	t.Helper()
	output := mustRun(t, append([]string{"status", "--json"}, args...)...)
	var result engine.StatusResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("status output is not JSON: %v\n%s", err, output)
	}
	return result
}

func TestRoadCommand_JSONOutput(t *testing.T) {
	setupTestEnv(t)

	output := mustRun(t, "road", "0,0", "100,0", "--json")

	var result applyOutput
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("expected valid JSON output, got error: %v\n%s", err, output)
	}
	if result.Intent != "new_road" || !result.Started || !result.Changed {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(result.Step.NewStrokes) != 2 {
		t.Errorf("road created %d strokes, want 2", len(result.Step.NewStrokes))
	}
	if result.Plan != engine.DefaultPlan {
		t.Errorf("plan = %q, want %q", result.Plan, engine.DefaultPlan)
	}
}

func TestRoadCommand_Flags(t *testing.T) {
	setupTestEnv(t)

	mustRun(t, "road", "0,0", "100,0", "--lanes", "2", "--one-side")

	if got := len(status(t).NewStrokes); got != 2 {
		t.Errorf("--lanes 2 --one-side created %d strokes, want 2", got)
	}
}

func TestRoadCommand_DryRun(t *testing.T) {
	setupTestEnv(t)

	output := mustRun(t, "road", "0,0", "100,0", "--dry-run")

	if !strings.Contains(output, "Dry Run") {
		t.Errorf("expected dry run output, got %q", output)
	}
	if status(t).Exists {
		t.Error("dry run should not start the plan")
	}
}

func TestRoadCommand_InvalidArgs(t *testing.T) {
	setupTestEnv(t)

	if _, err := run(t, "road", "0,0"); err == nil {
		t.Error("expected error for a single point")
	}
	if _, err := run(t, "road", "0,0", "east"); err == nil {
		t.Error("expected error for a malformed point")
	}
}

func TestEditCommands(t *testing.T) {
	setupTestEnv(t)
	mustRun(t, "road", "0,0", "100,0")

	mustRun(t, "select", "new:0", "20", "80")
	got := status(t)
	if len(got.Selections) != 1 || got.Selections[0].Ref != "new:0" || got.Selections[0].Start != 20 {
		t.Fatalf("unexpected selections: %+v", got.Selections)
	}

	mustRun(t, "maximize")
	got = status(t)
	if got.Selections[0].Start != 0 || got.Selections[0].End != 100 {
		t.Errorf("maximize should select the whole stroke, got %+v", got.Selections[0])
	}

	mustRun(t, "select", "new:0", "20", "80")
	mustRun(t, "move", "--dx", "0", "--dy", "-2")
	if got := status(t); got.Intent != "move_selection" {
		t.Errorf("last intent = %q, want move_selection", got.Intent)
	}

	mustRun(t, "next-lane")
	got = status(t)
	if len(got.NewStrokes) != 3 {
		t.Errorf("next-lane left %d strokes, want 3", len(got.NewStrokes))
	}
	if len(got.Selections) != 0 {
		t.Errorf("next-lane should clear the selection, got %+v", got.Selections)
	}

}

func TestDeleteCommand(t *testing.T) {
	setupTestEnv(t)
	mustRun(t, "road", "0,0", "100,0")

	// The lanes run in opposite directions, so only new:1 is selected.
	mustRun(t, "select", "new:1", "0", "1000")
	mustRun(t, "delete")

	got := status(t)
	if len(got.NewStrokes) != 1 {
		t.Errorf("delete left %d strokes, want 1", len(got.NewStrokes))
	}
	if len(got.Selections) != 0 {
		t.Errorf("delete should clear the selection, got %+v", got.Selections)
	}
}

func TestEditCommands_InvalidArgs(t *testing.T) {
	setupTestEnv(t)

	tests := [][]string{
		{"select", "lane-7", "0", "10"},
		{"select", "new:0", "zero", "10"},
		{"move"},
		{"continue", "--start", "0,0", "10,0"},
		{"continue", "--append", "0", "10,0"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if _, err := run(t, args...); err == nil {
				t.Errorf("expected error for %v", args)
			}
		})
	}
}

func TestContinueCommand(t *testing.T) {
	setupTestEnv(t)
	mustRun(t, "road", "0,0", "100,0")

	mustRun(t, "continue", "--append", "0", "--prepend", "1", "--start", "100,0", "200,0")

	got := status(t)
	if got.NewStrokes[0].Length < 199 || got.NewStrokes[1].Length < 199 {
		t.Errorf("both lanes should be extended: %+v", got.NewStrokes)
	}
}

func TestCommitAndDiscard(t *testing.T) {
	setupTestEnv(t)

	_, err := run(t, "commit")
	if !errors.Is(err, engine.ErrNotFound) {
		t.Errorf("commit without plan error = %v, want ErrNotFound", err)
	}

	mustRun(t, "road", "0,0", "100,0")
	output := mustRun(t, "commit", "--json")
	var result commitOutput
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("expected valid JSON output, got error: %v", err)
	}
	if len(result.Created) != 2 || result.BuiltStrokes != 2 {
		t.Errorf("unexpected commit result: %+v", result)
	}

	if got := status(t); got.BuiltStrokes != 2 || len(got.NewStrokes) != 0 {
		t.Errorf("unexpected status after commit: %+v", got)
	}


	mustRun(t, "select", result.Created[0], "0", "100")
	if got := status(t); len(got.Selections) != 1 {
		t.Errorf("selecting a committed stroke: %+v", got.Selections)
	}

	mustRun(t, "discard")
	got := status(t)
	if got.Exists {
		t.Error("discard should remove the plan")
	}
	if got.BuiltStrokes != 2 {
		t.Error("discard must not touch committed strokes")
	}
}

func TestInitCommand(t *testing.T) {
	setupTestEnv(t)

	mustRun(t, "init", "--plan", "harbor")
	if _, err := run(t, "init", "--plan", "harbor"); !errors.Is(err, engine.ErrPlanExists) {
		t.Errorf("second init error = %v, want ErrPlanExists", err)
	}
	mustRun(t, "init", "--plan", "harbor", "--force")

	got := status(t, "--plan", "harbor")
	if !got.Exists || got.Plan != "harbor" {
		t.Errorf("unexpected status: %+v", got)
	}
	if _, err := run(t, "init", "--plan", "../escape"); !errors.Is(err, engine.ErrValidation) {
		t.Errorf("init with unsafe name error = %v, want ErrValidation", err)
	}
}

func TestPreviewCommand(t *testing.T) {
	root := setupTestEnv(t)
	mustRun(t, "road", "0,0", "100,0")
	path := filepath.Join(root, "out", "plan.png")

	mustRun(t, "preview", "-o", path, "--width", "80", "--height", "60")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("preview was not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("preview is not a PNG")
	}
}

func TestConfigCommands(t *testing.T) {
	root := setupTestEnv(t)

	mustRun(t, "config", "init")
	if _, err := os.Stat(filepath.Join(root, "config.yaml")); err != nil {
		t.Fatalf("config init did not write config.yaml: %v", err)
	}
	if _, err := run(t, "config", "init"); err == nil {
		t.Error("config init should refuse to overwrite")
	}

	output := mustRun(t, "config", "show")
	if !strings.Contains(output, "n_lanes_per_side: 1") {
		t.Errorf("config show output missing settings: %q", output)
	}
}

func TestConfigFlag(t *testing.T) {
	root := setupTestEnv(t)
	path := filepath.Join(root, "custom.yaml")
	if err := os.WriteFile(path, []byte("settings:\n  n_lanes_per_side: 2\n  create_both_sides: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	mustRun(t, "road", "0,0", "100,0", "--config", path)

	if got := len(status(t).NewStrokes); got != 4 {
		t.Errorf("road with 2 lanes per side created %d strokes, want 4", got)
	}
}

func TestCommandHelp(t *testing.T) {
	setupTestEnv(t)
	commands := []string{"road", "continue", "select", "move", "status", "commit", "preview", "config"}

	for _, cmd := range commands {
		t.Run(cmd, func(t *testing.T) {
			output, err := run(t, cmd, "--help")
			if err != nil {
				t.Errorf("Execute() for %s --help error = %v", cmd, err)
			}
			if output == "" {
				t.Errorf("expected help output for %s, got empty", cmd)
			}
		})
	}
}
