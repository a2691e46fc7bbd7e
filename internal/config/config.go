// Package config is a minimal viper-backed loader for cmd/fredkin,
// mirroring the teacher's own use of viper for node configuration.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the settings cmd/fredkin needs to construct an Index:
// the key width (root-slot count), the removal nobble mode, an optional
// capacity ceiling, and an optional newline-delimited seed file of
// hex-or-decimal keys to load at startup.
type Config struct {
	KeyWidth uint   `mapstructure:"key-width"`
	Nobble   string `mapstructure:"nobble"`
	MaxSize  uint64 `mapstructure:"max-size"`
	SeedFile string `mapstructure:"seed-file"`
	Debug    bool   `mapstructure:"debug"`
}

// Default matches spec.md's own defaults: a 64-bit key width, the
// zeros-preferring nobble direction, and no capacity ceiling (the
// numerical maximum of uint64).
func Default() Config {
	return Config{
		KeyWidth: 64,
		Nobble:   "zeros",
		MaxSize:  ^uint64(0),
	}
}

// Load builds a Config from defaults, an optional config file, and
// environment variables prefixed FREDKIN_, with v (typically bound to
// the invoking cobra command's flags) taking precedence over all of
// them.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	v.SetEnvPrefix("fredkin")
	v.AutomaticEnv()

	v.SetDefault("key-width", cfg.KeyWidth)
	v.SetDefault("nobble", cfg.Nobble)
	v.SetDefault("max-size", cfg.MaxSize)

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(err, "reading config file")
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoding configuration")
	}
	return cfg, nil
}
