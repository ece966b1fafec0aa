package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/leosykes117/archeota/pkg/logger"
)

const appName = "archeota"

type ConfigLog struct {
	Level            string `mapstructure:"level"`
	Enabled          string `mapstructure:"enabled"`
	Color            string `mapstructure:"color"`
	TimestampPattern string `mapstructure:"timestamp_pattern"`
	IncludeFilename  bool   `mapstructure:"include_filename"`
	IncludeLine      bool   `mapstructure:"include_line"`
	IncludeFunction  bool   `mapstructure:"include_function"`
}

type Config struct {
	Log         ConfigLog `mapstructure:"log"`
	Environment string    `mapstructure:"environment"`
}

// Load reads config from configs/config.yaml, ./config.yaml or
// $XDG_CONFIG_HOME/archeota/config.yaml, then .env, env vars and flags.
// Flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// .env only fills variables the environment does not already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	c := &Config{}

	// default values
	v.SetDefault("environment", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.enabled", "")
	v.SetDefault("log.color", "false")
	v.SetDefault("log.timestamp_pattern", logger.DefaultTimestampPattern)
	v.SetDefault("log.include_filename", true)
	v.SetDefault("log.include_line", true)
	v.SetDefault("log.include_function", true)

	// allow ENV variables like:
	//   LOG_LEVEL=debug
	//   LOG_COLOR=auto
	//   ENVIRONMENT=prod
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	// look for file: configs/config.yaml
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, appName))

	// optional: if no config file present, continue
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return c, nil
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"env":               "environment",
	"log-level":         "log.level",
	"log-enabled":       "log.enabled",
	"log-color":         "log.color",
	"timestamp-pattern": "log.timestamp_pattern",
	"include-filename":  "log.include_filename",
	"include-line":      "log.include_line",
	"include-function":  "log.include_function",
}

// RegisterFlags adds the logger flags understood by Load to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("env", "dev", `environment, "dev" or "prod"; prod disables logging unless --log-enabled is set`)
	flags.String("log-level", "info", "minimum level: debug, info, warn, error")
	flags.String("log-enabled", "", "force logging on or off")
	flags.String("log-color", "false", `color output: "auto", "true" or "false"`)
	flags.String("timestamp-pattern", logger.DefaultTimestampPattern, "strftime pattern for timestamps")
	flags.Bool("include-filename", true, "include the source file name")
	flags.Bool("include-line", true, "include the source line number")
	flags.Bool("include-function", true, "include the function name")
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var err error
	if c.Environment != "dev" && c.Environment != "prod" {
		err = multierr.Append(err, fmt.Errorf("environment: %q is not dev or prod", c.Environment))
	}
	if _, e := logger.ParseLevel(c.Log.Level); e != nil {
		err = multierr.Append(err, fmt.Errorf("log.level: %w", e))
	}
	if _, e := c.enabled(); e != nil {
		err = multierr.Append(err, fmt.Errorf("log.enabled: %w", e))
	}
	if _, e := c.colorMode(); e != nil {
		err = multierr.Append(err, fmt.Errorf("log.color: %w", e))
	}
	return err
}

// LoggerOptions converts the loaded config into logger options.
func (c *Config) LoggerOptions() []logger.Option {
	lvl, _ := logger.ParseLevel(c.Log.Level)
	opts := []logger.Option{
		logger.WithEnvironment(c.Environment),
		logger.WithLevel(lvl),
		logger.WithTimestampPattern(c.Log.TimestampPattern),
		logger.WithIncludeFilename(c.Log.IncludeFilename),
		logger.WithIncludeLine(c.Log.IncludeLine),
		logger.WithIncludeFunctionName(c.Log.IncludeFunction),
	}
	if mode, err := c.colorMode(); err == nil {
		opts = append(opts, logger.WithColorMode(mode))
	}
	if enabled, err := c.enabled(); err == nil && enabled != nil {
		opts = append(opts, logger.WithEnabled(*enabled))
	}
	return opts
}

// enabled returns nil when the value is unset and the environment decides.
func (c *Config) enabled() (*bool, error) {
	if strings.TrimSpace(c.Log.Enabled) == "" {
		return nil, nil
	}
	b, err := cast.ToBoolE(strings.TrimSpace(c.Log.Enabled))
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Config) colorMode() (logger.ColorMode, error) {
	s := strings.ToLower(strings.TrimSpace(c.Log.Color))
	switch s {
	case "auto":
		return logger.ColorAuto, nil
	case "always":
		return logger.ColorAlways, nil
	case "never", "":
		return logger.ColorNever, nil
	}
	b, err := cast.ToBoolE(s)
	if err != nil {
		return "", err
	}
	if b {
		return logger.ColorAlways, nil
	}
	return logger.ColorNever, nil
}
