package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type App struct {
	File          string
	Reset         bool
	NoUpdateCheck bool
	LogLevel      string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "kanbo",
		Short:        "Terminal kanban boards with undo, fuzzy search and autosave",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open your boards
  kanbo

  # Use a specific board file
  kanbo --file ./project.save

  # Dump everything as JSON
  kanbo export > boards.json
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.File, "file", envOr("KANBO_FILE", ""), "Path to the board save file (default: ~/.kanbo/kanbo.save)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("KANBO_LOG", ""), "Log level (debug|info|warn|error); overrides the config file")
	cmd.Flags().BoolVar(&app.Reset, "reset", false, "Start with an empty board set, ignoring the save file")
	cmd.Flags().BoolVar(&app.NoUpdateCheck, "no-update-check", false, "Skip the release version check")

	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
