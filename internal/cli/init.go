package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/coven/internal/lineage"
)

func newInitCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config directory and a starter lineage",
		Long: `Create the configuration directory with a default config.yaml and write a
starter lineage to the lineage file if it does not exist yet. Existing files
are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, s)
		},
	}
}

func runInit(cmd *cobra.Command, s *session) error {
	if err := os.MkdirAll(s.configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	wrote, err := writeConfigIfMissing(s.configDir, s.cfg.LineageFile)
	if err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}
	if wrote {
		s.logger.Info("config written", zap.String("dir", s.configDir))
	}

	if _, err := os.Stat(s.cfg.LineageFile); os.IsNotExist(err) {
		sample, err := lineage.Sample()
		if err != nil {
			return sysError(fmt.Errorf("build sample lineage: %w", err))
		}
		if err := lineage.Write(s.cfg.LineageFile, sample.Original); err != nil {
			return sysError(fmt.Errorf("write sample lineage: %w", err))
		}
		s.logger.Info("sample lineage written", zap.String("path", s.cfg.LineageFile))
	} else if err != nil {
		return sysError(fmt.Errorf("stat lineage file: %w", err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Coven initialized successfully")
	fmt.Fprintln(out, "  config: ", s.configDir)
	fmt.Fprintln(out, "  lineage:", s.cfg.LineageFile)
	return nil
}
