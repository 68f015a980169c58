package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug             = "debug"
	ConfigSearchDepth       = "search-depth"
	ConfigTimeLimit         = "time-limit"
	ConfigEndgameEmpties    = "endgame-empties"
	ConfigTTableMemFraction = "ttable-mem-fraction"
	ConfigTTableSizePower   = "ttable-size-power"
	ConfigLogIterations     = "log-iterations"
	ConfigCPUProfile        = "cpu-profile"
	ConfigFile              = "config"
)

// Config wraps a viper instance; callers read settings with GetInt,
// GetDuration and friends.
type Config struct {
	*viper.Viper
	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigSearchDepth, 8)
	v.SetDefault(ConfigTimeLimit, 1900*time.Millisecond)
	v.SetDefault(ConfigEndgameEmpties, 12)
	v.SetDefault(ConfigTTableMemFraction, 0.05)
	v.SetDefault(ConfigTTableSizePower, 0)
	v.SetDefault(ConfigLogIterations, "")
	v.SetDefault(ConfigCPUProfile, "")
}

// DefaultConfig returns a config holding only the defaults. It does not look
// at flags, the environment, or config files.
func DefaultConfig() Config {
	v := viper.New()
	setDefaults(v)
	return Config{Viper: v}
}

// Load reads settings from command-line args, then OTHELLO_* environment
// variables, then an optional config file given with --config. Callers may
// register extra flags of their own; those are bound into the config too.
func (c *Config) Load(args []string, extraFlags ...func(fs *pflag.FlagSet)) error {
	v := viper.New()
	setDefaults(v)

	fs := pflag.NewFlagSet("othello", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.Int(ConfigSearchDepth, 8, "maximum search depth in plies")
	fs.Duration(ConfigTimeLimit, 1900*time.Millisecond, "time budget per move (0 for no limit)")
	fs.Int(ConfigEndgameEmpties, 12, "solve exactly at or below this many empty squares")
	fs.Float64(ConfigTTableMemFraction, 0.05, "fraction of system memory for the transposition table")
	fs.Int(ConfigTTableSizePower, 0, "transposition table size as a power of 2 (overrides the memory fraction)")
	fs.String(ConfigLogIterations, "", "write a YAML log of each search iteration to this file")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigFile, "", "path to a config file (yaml, toml, json)")
	for _, f := range extraFlags {
		f(fs)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := v.BindPFlags(fs); err != nil {
		return err
	}

	v.SetEnvPrefix("othello")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString(ConfigFile); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}
	c.Viper = v
	c.args = fs.Args()
	return nil
}

// Args returns the positional arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

// SanitizedSettings returns the settings for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
