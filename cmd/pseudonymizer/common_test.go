package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-pseudonymizer/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvSeed, config.EnvDateShiftRange, config.EnvAppEnv,
		config.EnvGoEnv, config.EnvDatabaseURL, config.EnvLogLevel,
	} {
		t.Setenv(key, "")
	}
}

func newFlagCommand(t *testing.T, args ...string) (*cobra.Command, *engineFlags) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	f := &engineFlags{}
	f.register(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd, f
}

func TestResolveConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cmd, f := newFlagCommand(t)

	cfg, err := resolveConfig(cmd, f)
	require.NoError(t, err)

	opts := cfg.Options()
	assert.Empty(t, opts.Seed)
	assert.Equal(t, 2, opts.DateShiftRange)
	assert.False(t, opts.SkipChronologyShift)
	assert.False(t, opts.DevMode)
}

func TestResolveConfig_Layering(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvSeed, "env-seed")
	t.Setenv(config.EnvDateShiftRange, "3")

	cfgPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"seed": "file-seed", "candidate_index": 4}`), 0644))

	cmd, f := newFlagCommand(t, "--config", cfgPath, "--index", "7", "--no-chronology")

	cfg, err := resolveConfig(cmd, f)
	require.NoError(t, err)

	assert.Equal(t, "file-seed", cfg.Seed, "file should override env")
	assert.Equal(t, 3, cfg.DateShiftRange, "env should fill unset file values")
	assert.Equal(t, 7, cfg.CandidateIndex, "flag should override file")
	require.NotNil(t, cfg.PreserveChronology)
	assert.False(t, *cfg.PreserveChronology)
}

func TestResolveConfig_FlagSeedOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvSeed, "env-seed")
	cmd, f := newFlagCommand(t, "--seed", "flag-seed", "--dev")

	cfg, err := resolveConfig(cmd, f)
	require.NoError(t, err)
	assert.Equal(t, "flag-seed", cfg.Seed)
	require.NotNil(t, cfg.DevMode)
	assert.True(t, *cfg.DevMode)
}

func restoreLogLevel(t *testing.T) {
	t.Helper()
	lvl := logrus.GetLevel()
	t.Cleanup(func() { logrus.SetLevel(lvl) })
}

func TestResolveConfig_AppliesFileLogLevel(t *testing.T) {
	clearEnv(t)
	restoreLogLevel(t)
	logrus.SetLevel(logrus.InfoLevel)

	cfgPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"log_level": "debug"}`), 0644))
	cmd, f := newFlagCommand(t, "--config", cfgPath)

	_, err := resolveConfig(cmd, f)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestResolveConfig_AppliesEnvLogLevel(t *testing.T) {
	clearEnv(t)
	restoreLogLevel(t)
	logrus.SetLevel(logrus.InfoLevel)
	t.Setenv(config.EnvLogLevel, "warn")
	cmd, f := newFlagCommand(t)

	_, err := resolveConfig(cmd, f)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}

func TestResolveConfig_LogLevelFlagWins(t *testing.T) {
	clearEnv(t)
	restoreLogLevel(t)
	logrus.SetLevel(logrus.ErrorLevel)

	cfgPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"log_level": "debug"}`), 0644))

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("log-level", "", "")
	f := &engineFlags{}
	f.register(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{"--config", cfgPath, "--log-level", "error"}))

	_, err := resolveConfig(cmd, f)
	require.NoError(t, err)
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
}

func TestResolveConfig_Invalid(t *testing.T) {
	clearEnv(t)
	cmd, f := newFlagCommand(t, "--range", "500")

	_, err := resolveConfig(cmd, f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date_shift_range")
}

func TestResolveConfig_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	cmd, f := newFlagCommand(t, "--config", filepath.Join(t.TempDir(), "missing.json"))

	_, err := resolveConfig(cmd, f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestEngineOptions_DevModeInstallsPrinter(t *testing.T) {
	dev := true
	var buf bytes.Buffer

	opts, err := engineOptions(&config.Config{DevMode: &dev}, &buf)
	require.NoError(t, err)
	assert.True(t, opts.DevMode)
	assert.NotNil(t, opts.Trace)
	assert.NotNil(t, opts.Logger)

	opts, err = engineOptions(&config.Config{}, &buf)
	require.NoError(t, err)
	assert.Nil(t, opts.Trace)
}

func TestDecodeProfile(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		profile, err := decodeProfile([]byte(`{"name": "Max", "position": "Developer"}`), false)
		require.NoError(t, err)
		assert.Equal(t, "Max", profile.Name)
		assert.Equal(t, "Developer", profile.Position)
	})

	t.Run("schema violation", func(t *testing.T) {
		_, err := decodeProfile([]byte(`{"name": "Max"}`), false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not validate against profile schema")
	})

	t.Run("schema violation skipped", func(t *testing.T) {
		profile, err := decodeProfile([]byte(`{"name": "Max"}`), true)
		require.NoError(t, err)
		assert.Equal(t, "Max", profile.Name)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := decodeProfile([]byte(`{not json`), false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse profile JSON")
	})
}

func TestDecodeProfiles(t *testing.T) {
	profiles, err := decodeProfiles([]byte(`[
		{"name": "A", "position": "Dev"},
		{"name": "B", "position": "Ops"}
	]`), false)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "B", profiles[1].Name)

	_, err = decodeProfiles([]byte(`[{"name": "A", "position": "Dev"}, {"name": "B"}]`), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile 1")

	_, err = decodeProfiles([]byte(`{"name": "A"}`), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON array")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, "", map[string]string{"name": "Kandidat:in A"}))
	assert.Contains(t, buf.String(), `"name": "Kandidat:in A"`)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeJSON(&buf, path, []int{1, 2}))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "1,")
}

func TestSetupLogging(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.NoError(t, setupLogging(""))
	assert.NoError(t, setupLogging("debug"))
	assert.Error(t, setupLogging("loud"))
}
