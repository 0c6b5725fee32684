// Package config loads the touchbridge settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// FileName is the settings file inside Dir.
	FileName = "config.toml"

	appDir = "touchbridge"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds the user settings.
type Config struct {
	Host               string  `toml:"host"`
	Port               int     `toml:"port"`
	HandshakeTimeoutMs int     `toml:"handshake_timeout_ms"`
	DPI                float64 `toml:"dpi"`
	MinSize            float64 `toml:"min_size"`
	HandleRadius       float64 `toml:"handle_radius"`
	LogFile            string  `toml:"log_file"`
}

// Default returns the settings used for a fresh install.
func Default() Config {
	return Config{
		Host:               "localhost",
		Port:               28200,
		HandshakeTimeoutMs: 5000,
		DPI:                12,
		MinSize:            4,
		HandleRadius:       1.5,
	}
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) HandshakeTimeout() time.Duration {
	return time.Duration(c.HandshakeTimeoutMs) * time.Millisecond
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Host == "":
		return fmt.Errorf("%w: empty host", ErrInvalid)
	case c.Port < 1 || c.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrInvalid, c.Port)
	case c.HandshakeTimeoutMs <= 0:
		return fmt.Errorf("%w: handshake_timeout_ms must be positive", ErrInvalid)
	case c.DPI <= 0:
		return fmt.Errorf("%w: dpi must be positive", ErrInvalid)
	case c.MinSize <= 0:
		return fmt.Errorf("%w: min_size must be positive", ErrInvalid)
	case c.HandleRadius <= 0:
		return fmt.Errorf("%w: handle_radius must be positive", ErrInvalid)
	}
	return nil
}

// Dir returns the settings directory, $XDG_CONFIG_HOME/touchbridge or
// ~/.config/touchbridge.
func Dir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), appDir)
}

// Load reads the settings file at path, writing the defaults there first if
// it does not exist. Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	conf := Default()

	ok, err := exists(path)
	if err != nil {
		return conf, fmt.Errorf("couldn't check config file: %w", err)
	}
	if !ok {
		log.Println("Initializing config")
		if err := Write(path, conf); err != nil {
			return conf, err
		}
		return conf, nil
	}

	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return conf, fmt.Errorf("couldn't read config file: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return conf, err
	}
	return conf, nil
}

// Write stores conf at path, creating the directory if needed.
func Write(path string, conf Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("couldn't create config directory: %w", err)
	}
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(conf); err != nil {
		return fmt.Errorf("couldn't encode config: %w", err)
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("couldn't write config file: %w", err)
	}
	return nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func xdgOrFallback(xdg string, fallback string) string {
	dir := os.Getenv(xdg)
	if dir != "" {
		if ok, err := exists(dir); ok && err == nil {
			log.Printf("Resolved $%s to '%s'\n", xdg, dir)
			return dir
		}
	}

	log.Printf("Couldn't resolve $%s falling back to '%s'\n", xdg, fallback)
	return fallback
}
