// Package config loads frameshow settings from defaults, an optional config
// file and FRAMESHOW_* environment variables, in increasing priority.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/phanxgames/frameshow"
)

// EnvPrefix is the prefix of environment overrides, e.g. FRAMESHOW_GRIDSIZE
// or FRAMESHOW_STORE_DRIVER.
const EnvPrefix = "FRAMESHOW"

// Store drivers.
const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// ViewportConfig is the logical screen size in pixels.
type ViewportConfig struct {
	Width  float64 `json:"width" mapstructure:"width"`
	Height float64 `json:"height" mapstructure:"height"`
}

// StoreConfig selects the page store backend.
type StoreConfig struct {
	Driver string `json:"driver" mapstructure:"driver"`
	Path   string `json:"path" mapstructure:"path"`
}

// Config holds every frameshow setting.
type Config struct {
	LogLevel        string         `json:"logLevel" mapstructure:"logLevel"`
	Debug           bool           `json:"debug" mapstructure:"debug"`
	ShowFPS         bool           `json:"showFPS" mapstructure:"showFPS"`
	Viewport        ViewportConfig `json:"viewport" mapstructure:"viewport"`
	GridSize        float64        `json:"gridSize" mapstructure:"gridSize"`
	TransitionSteps int            `json:"transitionSteps" mapstructure:"transitionSteps"`
	EditTPS         int            `json:"editTPS" mapstructure:"editTPS"`
	PresentTPS      int            `json:"presentTPS" mapstructure:"presentTPS"`
	HistoryDepth    int            `json:"historyDepth" mapstructure:"historyDepth"`
	TransitionEase  string         `json:"transitionEase" mapstructure:"transitionEase"`
	ScreenshotDir   string         `json:"screenshotDir" mapstructure:"screenshotDir"`
	Store           StoreConfig    `json:"store" mapstructure:"store"`
}

func setDefaults(v *viper.Viper) {
	def := frameshow.DefaultSceneConfig()
	v.SetDefault("logLevel", "info")
	v.SetDefault("debug", false)
	v.SetDefault("showFPS", false)
	v.SetDefault("viewport.width", def.Viewport.Width)
	v.SetDefault("viewport.height", def.Viewport.Height)
	v.SetDefault("gridSize", def.GridSize)
	v.SetDefault("transitionSteps", def.TransitionSteps)
	v.SetDefault("editTPS", def.EditTPS)
	v.SetDefault("presentTPS", def.PresentTPS)
	v.SetDefault("historyDepth", 200)
	v.SetDefault("transitionEase", "logistic")
	v.SetDefault("screenshotDir", "screenshots")
	v.SetDefault("store.driver", DriverBadger)
	v.SetDefault("store.path", "./frameshow-data")
}

// Load reads the configuration. path may be empty to use defaults and the
// environment only; otherwise the file type follows its extension (json,
// yaml, toml).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("config: viewport must be positive, got %vx%v", c.Viewport.Width, c.Viewport.Height)
	}
	if c.GridSize <= 0 {
		return fmt.Errorf("config: gridSize must be positive, got %v", c.GridSize)
	}
	if c.TransitionSteps < 0 {
		return fmt.Errorf("config: transitionSteps must not be negative, got %d", c.TransitionSteps)
	}
	if c.EditTPS <= 0 || c.PresentTPS <= 0 {
		return fmt.Errorf("config: tick rates must be positive, got %d/%d", c.EditTPS, c.PresentTPS)
	}
	if _, ok := frameshow.EaseByName(c.TransitionEase); !ok {
		return fmt.Errorf("config: unknown transitionEase %q", c.TransitionEase)
	}
	if c.HistoryDepth < 0 {
		return fmt.Errorf("config: historyDepth must not be negative, got %d", c.HistoryDepth)
	}
	switch c.Store.Driver {
	case DriverBadger, DriverSQLite:
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Level returns the parsed log level, info when it cannot be parsed.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// SceneConfig converts the settings to a scene configuration.
func (c *Config) SceneConfig() frameshow.SceneConfig {
	ease, _ := frameshow.EaseByName(c.TransitionEase)
	return frameshow.SceneConfig{
		Viewport:        frameshow.Rect{Width: c.Viewport.Width, Height: c.Viewport.Height},
		GridSize:        c.GridSize,
		TransitionSteps: c.TransitionSteps,
		EditTPS:         c.EditTPS,
		PresentTPS:      c.PresentTPS,
		Ease:            ease,
	}
}
