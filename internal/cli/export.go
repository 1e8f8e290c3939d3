package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kanbo/internal/store"
	"kanbo/internal/update"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full board state as JSON to stdout (or --out)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.File
			if path == "" {
				path = store.DefaultSavePath()
			}
			st, err := store.Store{Path: path}.Load()
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return store.ExportJSON(w, st, update.Version, time.Now())
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write to a file instead of stdout")
	return cmd
}
