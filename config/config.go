// Package config provides configuration management for NordVPN Indicator.
// Settings live in indicator.conf, a POSIX KEY="value" file next to the
// autoconnect marker files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yllada/nordvpn-indicator/common"
)

// Keys understood in indicator.conf.
const (
	KeyOrderLink         = "ORDER_LINK"
	KeyPollInterval      = "POLL_INTERVAL"
	KeyShowNotifications = "SHOW_NOTIFICATIONS"
	KeyLogLevel          = "LOG_LEVEL"
)

// Config represents the indicator configuration.
type Config struct {
	// OrderLink is opened when the user has no NordVPN account yet.
	OrderLink string
	// PollInterval is the delay between two status queries.
	PollInterval time.Duration
	// ShowNotifications enables desktop notifications for failed actions.
	ShowNotifications bool
	// LogLevel is one of debug, info, warn or error.
	LogLevel string

	path string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		OrderLink:         common.DefaultOrderLink,
		PollInterval:      common.PollInterval,
		ShowNotifications: true,
		LogLevel:          "info",
	}
}

// Load reads indicator.conf from dir. An empty dir means the default config
// directory. If the file doesn't exist, or ORDER_LINK is missing, the default
// link is written back so the user has something to edit.
func Load(dir string) (*Config, error) {
	if dir == "" {
		d, err := common.GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
		}
		dir = d
	}

	cfg := DefaultConfig()
	cfg.path = filepath.Join(dir, common.IndicatorConfFileName)

	values, err := ParseFile(cfg.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
	}

	if v, ok := values[KeyOrderLink]; ok && v != "" {
		cfg.OrderLink = v
	} else {
		if err := setValues(cfg.path, map[string]string{KeyOrderLink: cfg.OrderLink}); err != nil {
			return cfg, fmt.Errorf("%w: %v", common.ErrConfigSave, err)
		}
	}

	if v, ok := values[KeyPollInterval]; ok {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.PollInterval = time.Duration(secs) * time.Second
		}
	}
	if v, ok := values[KeyShowNotifications]; ok {
		cfg.ShowNotifications = parseBool(v, true)
	}
	if v, ok := values[KeyLogLevel]; ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	cfg.validate()
	return cfg, nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Dir returns the directory holding indicator.conf and the marker files.
func (c *Config) Dir() string {
	if c.path == "" {
		return ""
	}
	return filepath.Dir(c.path)
}

// validate clamps values that would make the indicator misbehave.
func (c *Config) validate() {
	if c.PollInterval < common.MinPollInterval {
		c.PollInterval = common.MinPollInterval
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		c.LogLevel = "info"
	}
	if c.OrderLink == "" {
		c.OrderLink = common.DefaultOrderLink
	}
}

// Save writes the known keys to indicator.conf, keeping any other lines intact.
func (c *Config) Save() error {
	if c.path == "" {
		dir, err := common.GetConfigDir()
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
		}
		c.path = filepath.Join(dir, common.IndicatorConfFileName)
	}

	notify := "no"
	if c.ShowNotifications {
		notify = "yes"
	}
	err := setValues(c.path, map[string]string{
		KeyOrderLink:         c.OrderLink,
		KeyPollInterval:      strconv.Itoa(int(c.PollInterval / time.Second)),
		KeyShowNotifications: notify,
		KeyLogLevel:          c.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}
	return nil
}

// setValues replaces the lines defining the given keys and appends the missing ones.
func setValues(path string, values map[string]string) error {
	var lines []string
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if len(data) > 0 {
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	}

	written := make(map[string]bool, len(values))
	for i, line := range lines {
		m := keyValue.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if v, ok := values[m[1]]; ok {
			lines[i] = formatLine(m[1], v)
			written[m[1]] = true
		}
	}
	for _, key := range []string{KeyOrderLink, KeyPollInterval, KeyShowNotifications, KeyLogLevel} {
		if v, ok := values[key]; ok && !written[key] {
			lines = append(lines, formatLine(key, v))
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600)
}

func formatLine(key, value string) string {
	return fmt.Sprintf("%s=%q", key, value)
}

func parseBool(s string, fallback bool) bool {
	switch strings.ToLower(s) {
	case "yes", "true", "on", "1":
		return true
	case "no", "false", "off", "0":
		return false
	default:
		return fallback
	}
}
