package biolink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/saadjs/biolink/internal/service"
	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportStdout bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full ledger as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			state := rt.session.State()
			if exportStdout {
				return service.Export(state, cmd.OutOrStdout())
			}

			path := exportOut
			name := service.ExportFileName(rt.session.Today())
			if path == "" {
				path = name
			} else if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, name)
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			if err := service.Export(state, f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file or directory (default ./biolink-export-<date>.json)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write JSON to stdout instead of a file")
}
