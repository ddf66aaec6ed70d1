// Package cli implements the coven command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/coven/internal/lineage"
	"github.com/mesh-intelligence/coven/internal/paths"
	"github.com/mesh-intelligence/coven/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error { return &exitError{code: exitSysError, err: err} }

// exitCode maps an error returned by the root command to a process exit code.
// Errors without an explicit code come from cobra argument parsing.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// session holds global flag values and state shared by all subcommands of
// one invocation.
type session struct {
	configDir   string
	lineageFile string
	jsonMode    bool
	verbose     bool

	logger *zap.Logger
	cfg    types.Config
	tree   *lineage.Lineage
}

// NewRootCmd creates the top-level "coven" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&session{})
}

func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:   "coven",
		Short: "Query a vampire lineage",
		Long: `coven loads a vampire lineage from a YAML or JSONL file and answers
questions about it: generations from the original, seniority, closest common
ancestors, descendants, and conversion years.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.prepare()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if s.logger != nil {
				_ = s.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&s.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/coven)")
	root.PersistentFlags().StringVar(&s.lineageFile, "lineage", "", "lineage file, .yaml or .jsonl (default: <config-dir>/lineage.yaml)")
	root.PersistentFlags().BoolVar(&s.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(s))
	root.AddCommand(newShowCmd(s))
	root.AddCommand(newGenerationsCmd(s))
	root.AddCommand(newSeniorCmd(s))
	root.AddCommand(newAncestorCmd(s))
	root.AddCommand(newFindCmd(s))
	root.AddCommand(newOffspringCmd(s))
	root.AddCommand(newDescendantsCmd(s))
	root.AddCommand(newAfterCmd(s))
	root.AddCommand(newExportCmd(s))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// prepare builds the logger and resolves configuration. The lineage itself is
// loaded on first use so that init and version work without one.
func (s *session) prepare() error {
	if s.logger == nil {
		logger, err := newLogger(s.verbose)
		if err != nil {
			return sysError(fmt.Errorf("initialize logger: %w", err))
		}
		s.logger = logger
	}

	configDir, err := paths.ResolveConfigDir(s.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	s.configDir = configDir

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}

	lineageFile, err := paths.ResolveLineageFile(s.lineageFile, v.GetString(cfgKeyLineageFile), configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve lineage file: %w", err))
	}
	year, err := millennialYear(v)
	if err != nil {
		return sysError(err)
	}
	s.cfg = types.Config{
		LineageFile:    lineageFile,
		MillennialYear: year,
	}
	s.logger.Debug("configuration resolved",
		zap.String("config_dir", configDir),
		zap.String("lineage_file", lineageFile),
		zap.Int("millennial_year", s.cfg.MillennialYear))
	return nil
}

// load returns the lineage, reading it from disk on first call.
func (s *session) load() (*lineage.Lineage, error) {
	if s.tree != nil {
		return s.tree, nil
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, sysError(fmt.Errorf("invalid config: %w", err))
	}
	tree, err := lineage.Load(s.cfg.LineageFile)
	if err != nil {
		return nil, sysError(fmt.Errorf("load lineage: %w", err))
	}
	s.logger.Debug("lineage loaded",
		zap.String("path", s.cfg.LineageFile),
		zap.Int("vampires", tree.Len()),
		zap.String("original", tree.Original.Name))
	s.tree = tree
	return tree, nil
}

// vampire looks a vampire up by name in the loaded lineage.
func (s *session) vampire(name string) (*types.Vampire, error) {
	tree, err := s.load()
	if err != nil {
		return nil, err
	}
	v, err := tree.Find(name)
	if err != nil {
		return nil, userError(err)
	}
	return v, nil
}
