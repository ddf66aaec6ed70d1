package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/coven/internal/paths"
	"github.com/mesh-intelligence/coven/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "COVEN"

	cfgKeyLineageFile    = "lineage_file"
	cfgKeyMillennialYear = "millennial_year"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	LineageFile    string `yaml:"lineage_file,omitempty"`
	MillennialYear int    `yaml:"millennial_year"`
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults apply. COVEN_MILLENNIAL_YEAR
// overrides the file.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	defaults := types.DefaultConfig()
	v.SetDefault(cfgKeyMillennialYear, defaults.MillennialYear)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	if err := v.BindEnv(cfgKeyMillennialYear); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// millennialYear returns the configured millennial_year, rejecting values
// that are not integers.
func millennialYear(v *viper.Viper) (int, error) {
	year, err := cast.ToIntE(v.Get(cfgKeyMillennialYear))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", cfgKeyMillennialYear, err)
	}
	return year, nil
}

// writeConfigIfMissing creates config.yaml pointing at lineageFile if the
// file does not exist. A lineage file under configDir is written relative to
// it. If config.yaml already exists, the function returns nil.
func writeConfigIfMissing(configDir, lineageFile string) (bool, error) {
	path := filepath.Join(configDir, paths.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		LineageFile:    configRelative(configDir, lineageFile),
		MillennialYear: types.MillennialYear,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// configRelative returns path relative to configDir when it lies inside it,
// and path unchanged otherwise.
func configRelative(configDir, path string) string {
	if path == "" {
		return paths.DefaultLineageName
	}
	rel, err := filepath.Rel(configDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
