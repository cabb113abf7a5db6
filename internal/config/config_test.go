package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{Email: "user@example.com", Password: "secret", Limit: 5}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRequiresCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Email = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	cfg = validConfig()
	cfg.Password = ""
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestValidateLimitBounds(t *testing.T) {
	cfg := validConfig()

	cfg.Limit = 0
	assert.Error(t, cfg.Validate())

	cfg.Limit = -2
	assert.Error(t, cfg.Validate())

	cfg.Limit = MaxLimit + 1
	assert.Error(t, cfg.Validate())

	cfg.Limit = MaxLimit
	assert.NoError(t, cfg.Validate())
}

func TestValidateChromeBinaryMustExist(t *testing.T) {
	cfg := validConfig()
	cfg.ChromeBinary = filepath.Join(t.TempDir(), "missing-chrome")
	assert.Error(t, cfg.Validate())

	existing := filepath.Join(t.TempDir(), "chrome")
	require.NoError(t, os.WriteFile(existing, []byte("#!/bin/sh\n"), 0o755))
	cfg.ChromeBinary = existing
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvEmail, "env@example.com")
	t.Setenv(EnvPassword, "envpass")
	t.Setenv(EnvChromeBinary, "/usr/bin/google-chrome")
	t.Setenv(EnvLimit, "7")

	cfg := FromEnv()

	assert.Equal(t, "env@example.com", cfg.Email)
	assert.Equal(t, "envpass", cfg.Password)
	assert.Equal(t, "/usr/bin/google-chrome", cfg.ChromeBinary)
	assert.Equal(t, 7, cfg.Limit)
}

func TestFromEnvIgnoresBadLimit(t *testing.T) {
	t.Setenv(EnvLimit, "not-a-number")
	assert.Zero(t, FromEnv().Limit)
}

func TestMergeFlagsKeepsEnvLimitWhenFlagUnset(t *testing.T) {
	t.Setenv(EnvLimit, "12")

	merged := FromEnv().MergeFlags("", "", "", "", 0, false)
	assert.Equal(t, 12, merged.Limit, "env-configured limit survives when the flag is unset")

	merged = FromEnv().MergeFlags("", "", "", "", 5, false)
	assert.Equal(t, 5, merged.Limit, "an explicit flag still wins over the env")
}

func TestMergeFlagsPrecedence(t *testing.T) {
	base := Config{Email: "env@example.com", Password: "envpass", Limit: 5}

	merged := base.MergeFlags("flag@example.com", "", "", "run.log", 3, true)

	// Set flags win; unset flags keep the env value.
	assert.Equal(t, "flag@example.com", merged.Email)
	assert.Equal(t, "envpass", merged.Password)
	assert.Equal(t, 3, merged.Limit)
	assert.Equal(t, "run.log", merged.LogFile)
	assert.True(t, merged.Headless)
}
