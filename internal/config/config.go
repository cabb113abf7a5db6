// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names consumed by the bot.
const (
	EnvEmail        = "INTERNSHALA_EMAIL"
	EnvPassword     = "INTERNSHALA_PASSWORD"
	EnvChromeBinary = "CHROME_BINARY_PATH"
	EnvLimit        = "INTERNAUTO_LIMIT"
)

// MaxLimit bounds the application cap; a runaway cap would hammer the site.
const MaxLimit = 20

// Config holds the settings for one automation run.
// All fields are optional at load time; Validate enforces what a run needs.
type Config struct {
	Email        string // Internshala login email
	Password     string // Internshala login password
	Limit        int    // Maximum applications to submit per run
	Headless     bool   // Run the browser without a visible window
	ChromeBinary string // Optional explicit Chrome executable path
	LogFile      string // Optional log file path; empty means stderr only
}

// FromEnv builds a Config from environment variables. Flags merged on top
// of this take precedence.
func FromEnv() Config {
	cfg := Config{
		Email:        os.Getenv(EnvEmail),
		Password:     os.Getenv(EnvPassword),
		ChromeBinary: os.Getenv(EnvChromeBinary),
	}
	if raw := os.Getenv(EnvLimit); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.Limit = n
		}
	}
	return cfg
}

// MergeFlags overlays flag values onto the config. Non-zero flag values win.
func (c Config) MergeFlags(email, password, chromeBinary, logFile string, limit int, headless bool) Config {
	if email != "" {
		c.Email = email
	}
	if password != "" {
		c.Password = password
	}
	if chromeBinary != "" {
		c.ChromeBinary = chromeBinary
	}
	if logFile != "" {
		c.LogFile = logFile
	}
	if limit != 0 {
		c.Limit = limit
	}
	// Bool flags always win; unset cannot be distinguished from false.
	c.Headless = headless
	return c
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	if c.Email == "" {
		return fmt.Errorf("config error: email is required (flag --email or %s)", EnvEmail)
	}
	if c.Password == "" {
		return fmt.Errorf("config error: password is required (flag --password or %s)", EnvPassword)
	}
	if c.Limit < 1 {
		return fmt.Errorf("config error: limit must be a positive integer")
	}
	if c.Limit > MaxLimit {
		return fmt.Errorf("config error: limit must not exceed %d", MaxLimit)
	}
	if c.ChromeBinary != "" {
		if _, err := os.Stat(c.ChromeBinary); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromeBinary)
		}
	}
	return nil
}
