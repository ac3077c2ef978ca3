// Package config handles configuration loading from CLI flags, environment variables, and TOML files.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration settings for the demo host.
type Config struct {
	Store    StoreConfig    `toml:"store"`
	Resolver ResolverConfig `toml:"resolver"`
	Logging  LoggingConfig  `toml:"logging"`

	// RemainingArgs holds positional arguments left after flag parsing,
	// e.g. the script path the demo host runs.
	RemainingArgs []string `toml:"-"`
}

// StoreConfig selects which reference store the demo host wires up.
type StoreConfig struct {
	Kind string `toml:"kind"` // "memory" or "async-memory"
}

// ResolverConfig configures the require resolver's file:// registry.
type ResolverConfig struct {
	FileDir string `toml:"file_dir"` // directory of .lua files preloaded as file://NAME
	Watch   bool   `toml:"watch"`    // reload registrations on file change
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level     string `toml:"level"`     // "debug", "info", "warn", "error"
	Verbosity int    `toml:"verbosity"` // 0=errors, 1=+warnings, 2=+info, 3=+debug (config.Level* thresholds)
}

// verbosityCounter implements flag.Value for counting -v flags.
type verbosityCounter int

func (v *verbosityCounter) String() string {
	return fmt.Sprintf("%d", *v)
}

func (v *verbosityCounter) Set(string) error {
	*v++
	return nil
}

func (v *verbosityCounter) IsBoolFlag() bool {
	return true
}

// expandVerbosityFlags preprocesses args to expand -vvv into -v -v -v.
// This allows both "-v -v -v" and "-vvv" styles to work.
func expandVerbosityFlags(args []string) []string {
	result := make([]string, 0, len(args))
	for _, arg := range args {
		if len(arg) > 2 && arg[0] == '-' && arg[1] != '-' && arg[1] == 'v' {
			allV := true
			for _, c := range arg[1:] {
				if c != 'v' {
					allV = false
					break
				}
			}
			if allV {
				for range arg[1:] {
					result = append(result, "-v")
				}
				continue
			}
		}
		result = append(result, arg)
	}
	return result
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Kind: "memory",
		},
		Resolver: ResolverConfig{},
		Logging: LoggingConfig{
			Level:     "info",
			Verbosity: 0,
		},
	}
}

// Load loads configuration from CLI flags, environment variables, and TOML file.
// Priority: CLI flags > env vars > TOML file > defaults
func Load(args []string) (*Config, error) {
	cfg := DefaultConfig()

	args = expandVerbosityFlags(args)

	fs := flag.NewFlagSet("rdflua", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a TOML config file")
	storeKind := fs.String("store", "", "Reference store kind: memory or async-memory")
	fileDir := fs.String("modules", "", "Directory of .lua files to preload into the file:// registry")
	watch := fs.Bool("watch", false, "Watch the module directory and reload registrations on change")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	var verbosity verbosityCounter
	fs.Var(&verbosity, "v", "Verbosity level (use -v, -vv, or -vvv)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *configPath != "" {
		if err := cfg.loadTOML(*configPath); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg.applyEnv()

	if *storeKind != "" {
		cfg.Store.Kind = *storeKind
	}
	if *fileDir != "" {
		cfg.Resolver.FileDir = *fileDir
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "watch" {
			cfg.Resolver.Watch = *watch
		}
	})
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if verbosity > 0 {
		cfg.Logging.Verbosity = int(verbosity)
	}

	cfg.RemainingArgs = fs.Args()

	return cfg, nil
}

// loadTOML loads configuration from a TOML file.
func (c *Config) loadTOML(path string) error {
	_, err := toml.DecodeFile(path, c)
	return err
}

// applyEnv applies environment variable overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("RDFLUA_STORE"); v != "" {
		c.Store.Kind = v
	}
	if v := os.Getenv("RDFLUA_MODULES"); v != "" {
		c.Resolver.FileDir = v
	}
	if v := os.Getenv("RDFLUA_WATCH"); v != "" {
		c.Resolver.Watch = v == "true" || v == "1"
	}
	if v := os.Getenv("RDFLUA_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("RDFLUA_VERBOSITY"); v != "" {
		if verbosity, err := strconv.Atoi(v); err == nil {
			c.Logging.Verbosity = verbosity
		}
	}
}

// Verbosity returns the configured verbosity level.
func (c *Config) Verbosity() int {
	return c.Logging.Verbosity
}
