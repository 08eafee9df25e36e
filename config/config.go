// Package config loads bubbleworm settings from flags, an optional
// config.yaml, and BUBBLEWORM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/bubbleworm/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "BUBBLEWORM"

type Config struct {
	Debug   bool           `mapstructure:"debug"`
	Seed    uint64         `mapstructure:"seed"` // 0 picks a random seed
	Prefabs string         `mapstructure:"prefabs"`
	Watch   bool           `mapstructure:"watch"`
	Scale   float64        `mapstructure:"scale"`
	Log     logging.Config `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	logDefaults := logging.DefaultConfig()

	v.SetDefault("debug", false)
	v.SetDefault("seed", uint64(0))
	v.SetDefault("prefabs", "prefabs")
	v.SetDefault("watch", false)
	v.SetDefault("scale", 1.0)
	v.SetDefault("log.level", logDefaults.Level)
	v.SetDefault("log.format", logDefaults.Format)
	v.SetDefault("log.file", logDefaults.File)
	v.SetDefault("log.max_size", logDefaults.MaxSize)
	v.SetDefault("log.max_backups", logDefaults.MaxBackups)
	v.SetDefault("log.max_age", logDefaults.MaxAge)
	v.SetDefault("log.compress", logDefaults.Compress)
}

// RegisterFlags adds the command-line flags and binds them to v.
func RegisterFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.Bool("debug", false, "show the debug HUD and log at debug level")
	flags.Uint64("seed", 0, "random seed (0 picks one)")
	flags.String("prefabs", "prefabs", "prefab directory that overrides the embedded specs")
	flags.Bool("watch", false, "hot reload prefab specs and scripts")
	flags.Float64("scale", 1, "window scale")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "also write JSON logs to this rotated file")

	binds := map[string]string{
		"debug":     "debug",
		"seed":      "seed",
		"prefabs":   "prefabs",
		"watch":     "watch",
		"scale":     "scale",
		"log.level": "log-level",
		"log.file":  "log-file",
	}
	for key, name := range binds {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("config: bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads file, or ./config.yaml when file is empty, and unmarshals the
// merged settings. A missing default config file is not an error.
func Load(v *viper.Viper, file string) (Config, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.Debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("config: scale must be positive, got %g", c.Scale)
	}
	if c.Prefabs == "" {
		return fmt.Errorf("config: prefabs directory is empty")
	}
	return nil
}
