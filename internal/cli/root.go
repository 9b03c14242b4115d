package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
	planFlag   string
	configFlag string
	verbose    bool

	// Colors for help output sections
	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// rootCmd is the root command for roadplan.
var rootCmd = &cobra.Command{
	Use:     "roadplan",
	Version: "dev",
	Short:   "Lane-level road network planner",
	Long: `roadplan edits road networks lane by lane.

Draw roads, select stretches of lanes, move or delete them and add lanes
beside them. Every edit goes into a named plan session that can be previewed,
committed to the road network or discarded.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setOutput(cmd.OutOrStdout())
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// customHelpFunc returns a custom help function that colors group titles
func customHelpFunc(cmd *cobra.Command, args []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	for _, group := range cmd.Groups() {
		help.WriteString(groupTitleColor.Sprint(group.Title))
		help.WriteString("\n")

		for _, c := range cmd.Commands() {
			if c.GroupID == group.ID && !c.Hidden {
				fmt.Fprintf(&help, "  %-11s %s\n", c.Name(), c.Short)
			}
		}
		help.WriteString("\n")
	}

	hasUngrouped := false
	for _, c := range cmd.Commands() {
		if c.GroupID == "" && !c.Hidden {
			if !hasUngrouped {
				help.WriteString(sectionTitleColor.Sprint("Additional Commands:"))
				help.WriteString("\n")
				hasUngrouped = true
			}
			fmt.Fprintf(&help, "  %-11s %s\n", c.Name(), c.Short)
		}
	}
	if hasUngrouped {
		help.WriteString("\n")
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailablePersistentFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString(cmd.InheritedFlags().FlagUsages())
		help.WriteString("\n")
	}

	fmt.Fprintf(&help, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())

	fmt.Fprint(cmd.OutOrStdout(), help.String())
}

func init() {
	rootCmd.SetHelpFunc(customHelpFunc)

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVarP(&planFlag, "plan", "p", "", "Plan session to work on (default \"default\")")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default ~/.roadplan/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "drawing",
		Title: "Drawing:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "selection",
		Title: "Selection & Editing:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "plan-lifecycle",
		Title: "Plan Lifecycle:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "cli-tooling",
		Title: "CLI & Tooling:",
	})

	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the roadplan CLI version",
		Args:    cobra.NoArgs,
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	helpCmd := &cobra.Command{
		Use:     "help [command]",
		Short:   "Help about any command",
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			target, _, err := cmd.Root().Find(args)
			if err != nil || target == nil {
				target = cmd.Root()
			}
			_ = target.Help()
		},
	}
	rootCmd.SetHelpCommand(helpCmd)

	completionCmd := &cobra.Command{
		Use:     "completion",
		Short:   "Generate the autocompletion script for the specified shell",
		GroupID: "cli-tooling",
		Long: `Generate the autocompletion script for roadplan for the specified shell.
See each sub-command's help for details on how to use the generated script.`,
	}
	completionCmd.AddCommand(completionFor("bash", func(w io.Writer) error { return rootCmd.GenBashCompletion(w) }))
	completionCmd.AddCommand(completionFor("zsh", func(w io.Writer) error { return rootCmd.GenZshCompletion(w) }))
	completionCmd.AddCommand(completionFor("fish", func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) }))
	completionCmd.AddCommand(completionFor("powershell", func(w io.Writer) error { return rootCmd.GenPowerShellCompletionWithDesc(w) }))
	rootCmd.AddCommand(completionCmd)

	configCmd.GroupID = "cli-tooling"
	rootCmd.AddCommand(configCmd)

	// Drawing commands
	roadCmd.GroupID = "drawing"
	continueCmd.GroupID = "drawing"
	nextLaneCmd.GroupID = "drawing"
	rootCmd.AddCommand(roadCmd)
	rootCmd.AddCommand(continueCmd)
	rootCmd.AddCommand(nextLaneCmd)

	// Selection & Editing commands
	selectCmd.GroupID = "selection"
	maximizeCmd.GroupID = "selection"
	moveCmd.GroupID = "selection"
	deleteCmd.GroupID = "selection"
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(maximizeCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(deleteCmd)

	// Plan Lifecycle commands
	initCmd.GroupID = "plan-lifecycle"
	statusCmd.GroupID = "plan-lifecycle"
	previewCmd.GroupID = "plan-lifecycle"
	commitCmd.GroupID = "plan-lifecycle"
	discardCmd.GroupID = "plan-lifecycle"
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(discardCmd)
}

func completionFor(shell string, gen func(io.Writer) error) *cobra.Command {
	return &cobra.Command{
		Use:                   shell,
		Short:                 "Generate the autocompletion script for " + shell,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return gen(cmd.OutOrStdout())
		},
	}
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
