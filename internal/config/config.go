// Package config loads viewer settings from geoscope.yaml, the environment,
// and flag overrides, in rising precedence.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all geoscope configuration.
type Config struct {
	Cluster   ClusterConfig   `mapstructure:"cluster"`
	Hit       HitConfig       `mapstructure:"hit"`
	Animation AnimationConfig `mapstructure:"animation"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Log       LogConfig       `mapstructure:"log"`
	Watch     bool            `mapstructure:"watch"`
}

// ClusterConfig controls marker aggregation.
type ClusterConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	RadiusMeters float64 `mapstructure:"radius_meters"`
	MinSize      int     `mapstructure:"min_size"`
}

// HitConfig controls tap resolution.
type HitConfig struct {
	TolerancePx float64 `mapstructure:"tolerance_px"`
}

// AnimationConfig controls chart entrance tweening.
type AnimationConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// ThemeConfig is the lipgloss palette, hex colors.
type ThemeConfig struct {
	Point     string `mapstructure:"point"`
	Line      string `mapstructure:"line"`
	Polygon   string `mapstructure:"polygon"`
	Cluster   string `mapstructure:"cluster"`
	Label     string `mapstructure:"label"`
	Graticule string `mapstructure:"graticule"`
	Selection string `mapstructure:"selection"`
}

// LogConfig controls the zap file sink. Empty file disables logging; stdout
// is never an option because bubbletea owns it.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cluster.enabled", true)
	v.SetDefault("cluster.radius_meters", 200.0)
	v.SetDefault("cluster.min_size", 2)
	v.SetDefault("hit.tolerance_px", 16.0)
	v.SetDefault("animation.duration", 1200*time.Millisecond)
	v.SetDefault("theme.point", "#7C3AED")
	v.SetDefault("theme.line", "#38BDF8")
	v.SetDefault("theme.polygon", "#334155")
	v.SetDefault("theme.cluster", "#F59E0B")
	v.SetDefault("theme.label", "#E6E6E6")
	v.SetDefault("theme.graticule", "#243141")
	v.SetDefault("theme.selection", "#FFA500")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("watch", false)
}

// Load reads configuration. With an explicit path the file must exist; with
// none the usual locations are searched and a missing file just means
// defaults. GEOSCOPE_* environment variables override file values.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("GEOSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	} else {
		v.SetConfigName("geoscope")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/geoscope")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
