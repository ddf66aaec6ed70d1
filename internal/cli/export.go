package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/coven/internal/lineage"
)

func newExportCmd(s *session) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write the lineage to a .yaml or .jsonl file",
		Long: `Write the lineage, or the lineage below --from, to path. The format follows
the file extension: .yaml/.yml writes a nested document, .jsonl writes one
record per vampire. The file is replaced atomically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := s.start(from)
			if err != nil {
				return err
			}
			path, err := filepath.Abs(args[0])
			if err != nil {
				return userError(err)
			}
			if err := lineage.Write(path, start); err != nil {
				return sysError(fmt.Errorf("export lineage: %w", err))
			}
			n := start.TotalDescendants() + 1
			s.logger.Info("lineage exported",
				zap.String("path", path),
				zap.String("from", start.Name),
				zap.Int("vampires", n))
			if s.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"path":     path,
					"vampires": n,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d vampires to %s\n", n, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "export only the lineage of this vampire (default: the original)")
	return cmd
}
