package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"timepick/picker"
)

// Config holds all application configuration
type Config struct {
	UI struct {
		Color    string `mapstructure:"color" yaml:"color"`
		ShowHelp bool   `mapstructure:"show_help" yaml:"show_help"`
	} `mapstructure:"ui" yaml:"ui"`
	Picker struct {
		VisibleRows int     `mapstructure:"visible_rows" yaml:"visible_rows"`
		ScrollStep  float64 `mapstructure:"scroll_step" yaml:"scroll_step"`
	} `mapstructure:"picker" yaml:"picker"`
	Timing struct {
		SettleMs int `mapstructure:"settle_ms" yaml:"settle_ms"`
		FrameMs  int `mapstructure:"frame_ms" yaml:"frame_ms"`
	} `mapstructure:"timing" yaml:"timing"`
	Animation struct {
		Frequency float64 `mapstructure:"frequency" yaml:"frequency"`
		Damping   float64 `mapstructure:"damping" yaml:"damping"`
	} `mapstructure:"animation" yaml:"animation"`
	Log struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"log" yaml:"log"`
}

const defaultColor = "2"

// SafeConfig wraps Config with thread-safe access
type SafeConfig struct {
	mu  sync.RWMutex
	cfg Config
}

// Get returns a copy of the current config (thread-safe read)
func (sc *SafeConfig) Get() Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.cfg
}

// Set updates the config (thread-safe write)
func (sc *SafeConfig) Set(cfg Config) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cfg = cfg
}

var config = &SafeConfig{}

// Config file changed notification
type configReloadMsg struct{}

var configChangeChan = make(chan struct{}, 1)

// Watch for config file changes
func watchConfigCmd() tea.Cmd {
	return func() tea.Msg {
		<-configChangeChan
		return configReloadMsg{}
	}
}

// isValidColor accepts ANSI codes (0-255) and #RGB/#RRGGBB hex
func isValidColor(c string) bool {
	if c == "" {
		return false
	}
	if c[0] == '#' {
		if len(c) != 4 && len(c) != 7 {
			return false
		}
		for _, r := range c[1:] {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return false
			}
		}
		return true
	}
	if len(c) > 3 {
		return false
	}
	for _, r := range c {
		if r < '0' || r > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(c)
	return err == nil && n <= 255
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ui.color", defaultColor)
	v.SetDefault("ui.show_help", false)
	v.SetDefault("picker.visible_rows", 7)
	v.SetDefault("picker.scroll_step", picker.ItemHeight/2)
	v.SetDefault("timing.settle_ms", 100)
	v.SetDefault("timing.frame_ms", 16)
	v.SetDefault("animation.frequency", 6.0)
	v.SetDefault("animation.damping", 1.0)
	v.SetDefault("log.file", "")
}

// configError describes one invalid config field
type configError struct {
	field   string
	message string
}

func (e configError) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.message)
}

// validateConfig checks every field and returns one error per invalid field
func validateConfig(cfg *Config) []error {
	var errs []error
	if !isValidColor(cfg.UI.Color) {
		errs = append(errs, configError{"ui.color", fmt.Sprintf("invalid color format '%s'", cfg.UI.Color)})
	}
	if r := cfg.Picker.VisibleRows; r < 1 || r >= picker.BufferItems || r%2 == 0 {
		errs = append(errs, configError{"picker.visible_rows", fmt.Sprintf("must be odd and between 1 and %d (got %d)", picker.BufferItems-1, r)})
	}
	if s := cfg.Picker.ScrollStep; s <= 0 || s > picker.ItemHeight {
		errs = append(errs, configError{"picker.scroll_step", fmt.Sprintf("must be between 0 and %v (got %v)", picker.ItemHeight, s)})
	}
	if ms := cfg.Timing.SettleMs; ms < 10 || ms > 2000 {
		errs = append(errs, configError{"timing.settle_ms", fmt.Sprintf("must be between 10 and 2000 (got %d)", ms)})
	}
	if ms := cfg.Timing.FrameMs; ms < 5 || ms > 100 {
		errs = append(errs, configError{"timing.frame_ms", fmt.Sprintf("must be between 5 and 100 (got %d)", ms)})
	}
	if f := cfg.Animation.Frequency; f <= 0 || f > 30 {
		errs = append(errs, configError{"animation.frequency", fmt.Sprintf("must be between 0 and 30 (got %v)", f)})
	}
	if d := cfg.Animation.Damping; d <= 0 || d > 3 {
		errs = append(errs, configError{"animation.damping", fmt.Sprintf("must be between 0 and 3 (got %v)", d)})
	}
	return errs
}

// applyDefaultsForInvalidFields resets each field named in errs to its default
func applyDefaultsForInvalidFields(cfg *Config, errs []error) {
	for _, err := range errs {
		ce, ok := err.(configError)
		if !ok {
			continue
		}
		switch ce.field {
		case "ui.color":
			cfg.UI.Color = defaultColor
		case "picker.visible_rows":
			cfg.Picker.VisibleRows = 7
		case "picker.scroll_step":
			cfg.Picker.ScrollStep = picker.ItemHeight / 2
		case "timing.settle_ms":
			cfg.Timing.SettleMs = 100
		case "timing.frame_ms":
			cfg.Timing.FrameMs = 16
		case "animation.frequency":
			cfg.Animation.Frequency = 6.0
		case "animation.damping":
			cfg.Animation.Damping = 1.0
		}
	}
}

func printConfigWarnings(errs []error) {
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "Warning: config %v, using default\n", err)
	}
}

// loadConfig unmarshals v into a Config and replaces invalid fields with
// their defaults
func loadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	err := v.Unmarshal(&cfg)
	if err != nil {
		err = fmt.Errorf("failed to parse config: %w", err)
	}
	if errs := validateConfig(&cfg); len(errs) > 0 {
		printConfigWarnings(errs)
		applyDefaultsForInvalidFields(&cfg, errs)
	}
	return cfg, err
}

func initConfig(cmd *cobra.Command) {
	v := viper.GetViper()
	setDefaults(v)

	if configFileFlag != "" {
		v.SetConfigFile(configFileFlag)
	} else {
		// Set config file location following XDG standard
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check XDG_CONFIG_HOME first, fallback to ~/.config
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			homeDir, err := os.UserHomeDir()
			if err == nil {
				configHome = filepath.Join(homeDir, ".config")
			}
		}
		if configHome != "" {
			v.AddConfigPath(filepath.Join(configHome, "timepick"))
		}
	}

	// Environment variable support with TIMEPICK_ prefix
	v.SetEnvPrefix("TIMEPICK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Flags take precedence once explicitly set
	_ = v.BindPFlag("ui.color", cmd.Flags().Lookup("color"))
	_ = v.BindPFlag("log.file", cmd.Flags().Lookup("log-file"))

	// Read config file (ignore error if not found)
	fileErr := v.ReadInConfig()
	if fileErr != nil {
		if _, ok := fileErr.(viper.ConfigFileNotFoundError); !ok {
			// Config file found but had errors
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", fileErr)
		}
	}

	cfg, err := loadConfig(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	config.Set(cfg)

	if fileErr != nil {
		return
	}

	// Watch for config file changes and live reload
	v.OnConfigChange(func(e fsnotify.Event) {
		newCfg, err := loadConfig(v)
		if err != nil {
			return
		}
		config.Set(newCfg)
		// Config reloaded successfully, notify the app
		select {
		case configChangeChan <- struct{}{}:
		default:
			// Channel full, skip notification
		}
	})
	v.WatchConfig()
}

// pickerStyles derives the picker styles from the configured color.
func pickerStyles(cfg Config) picker.Styles {
	return picker.DefaultStyles(lipgloss.Color(cfg.UI.Color))
}

// pickerOptions maps config onto picker options.
func pickerOptions(cfg Config) []picker.Option {
	return []picker.Option{
		picker.WithVisibleRows(cfg.Picker.VisibleRows),
		picker.WithScrollStep(cfg.Picker.ScrollStep),
		picker.WithSettleDelay(time.Duration(cfg.Timing.SettleMs) * time.Millisecond),
		picker.WithFrameInterval(time.Duration(cfg.Timing.FrameMs) * time.Millisecond),
		picker.WithSpring(cfg.Animation.Frequency, cfg.Animation.Damping),
		picker.WithStyles(pickerStyles(cfg)),
	}
}
