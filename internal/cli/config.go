package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
	"github.com/dandxy89/lp-parser-rs/pkg/lp"
)

// appName is used for the config directory and display.
const appName = "lpparser"

// config holds user defaults loaded from the TOML config file.
// Pointer fields distinguish "unset" from explicit values.
type config struct {
	Write writeConfig `toml:"write"`
}

type writeConfig struct {
	Precision          *int  `toml:"precision"`
	MaxLineLength      *int  `toml:"max_line_length"`
	IncludeProblemName *bool `toml:"include_problem_name"`
	SectionSpacing     *bool `toml:"section_spacing"`
}

// configPath returns the config file location using the XDG convention
// (~/.config/lpparser/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file. A missing file yields the zero
// config; a malformed file is an error.
func loadConfig() (config, error) {
	var cfg config
	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (config, error) {
	var cfg config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeIO, err, "config %s", path)
	}
	return cfg, nil
}

// writeFlags are the shared output-formatting flags. Flags override the
// config file, which overrides the built-in defaults.
type writeFlags struct {
	precision     int
	maxLineLength int
	noProblemName bool
	compact       bool
}

func addWriteFlags(cmd *cobra.Command, f *writeFlags) {
	defaults := lp.DefaultWriteOptions()
	cmd.Flags().IntVar(&f.precision, "precision", defaults.DecimalPrecision, "decimal digits for non-integral numbers")
	cmd.Flags().IntVar(&f.maxLineLength, "max-line-length", defaults.MaxLineLength, "soft wrap width for expression lines")
	cmd.Flags().BoolVar(&f.noProblemName, "no-problem-name", false, "omit the problem name header comment")
	cmd.Flags().BoolVar(&f.compact, "compact", false, "omit blank lines between sections")
}

// resolveWriteOptions layers defaults, config file values, and any
// explicitly set flags.
func (f *writeFlags) resolveWriteOptions(cmd *cobra.Command) (lp.WriteOptions, error) {
	opts := lp.DefaultWriteOptions()

	cfg, err := loadConfig()
	if err != nil {
		return opts, err
	}
	if cfg.Write.Precision != nil {
		opts.DecimalPrecision = *cfg.Write.Precision
	}
	if cfg.Write.MaxLineLength != nil {
		opts.MaxLineLength = *cfg.Write.MaxLineLength
	}
	if cfg.Write.IncludeProblemName != nil {
		opts.IncludeProblemName = *cfg.Write.IncludeProblemName
	}
	if cfg.Write.SectionSpacing != nil {
		opts.SectionSpacing = *cfg.Write.SectionSpacing
	}

	if cmd.Flags().Changed("precision") {
		opts.DecimalPrecision = f.precision
	}
	if cmd.Flags().Changed("max-line-length") {
		opts.MaxLineLength = f.maxLineLength
	}
	if f.noProblemName {
		opts.IncludeProblemName = false
	}
	if f.compact {
		opts.SectionSpacing = false
	}
	return opts, nil
}
