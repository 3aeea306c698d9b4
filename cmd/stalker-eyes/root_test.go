package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/stalker-eyes/config"
)

// execute runs the root command and captures the config handed to run
func execute(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	// Keep the working-directory lookup away from stray config files
	t.Chdir(t.TempDir())

	var got *config.Config
	cmd := newRootCmd(func(_ *cobra.Command, cfg *config.Config) error {
		got = cfg
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(new(nopWriter))
	cmd.SetErr(new(nopWriter))
	err := cmd.Execute()
	return got, err
}

type nopWriter struct{}

func (*nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestRootDefaults(t *testing.T) {
	cfg, err := execute(t)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, config.ColorAuto, cfg.Display.Color)
	assert.False(t, cfg.Sound.Enabled)
	assert.Empty(t, cfg.Logger.File)
	assert.Equal(t, 10*time.Second, cfg.Mood.BaseDelay)
}

func TestRootFlags(t *testing.T) {
	cfg, err := execute(t,
		"--color", "256",
		"--sound",
		"--log-file", "eyes.log",
		"--log-level", "debug",
		"--seed", "7",
	)
	require.NoError(t, err)

	assert.Equal(t, config.Color256, cfg.Display.Color)
	assert.True(t, cfg.Sound.Enabled)
	assert.Equal(t, "eyes.log", cfg.Logger.File)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, uint64(7), cfg.Seed)
}

func TestRootConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eyes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mood:\n  jitter: 1s\ndisplay:\n  color: truecolor\n"), 0644))

	cfg, err := execute(t, "--config", path, "--color", "256")
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Mood.Jitter)
	assert.Equal(t, config.Color256, cfg.Display.Color, "flags override the file")
}

func TestRootErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing file", []string{"--config", "/nonexistent/eyes.yaml"}, "error reading config file"},
		{"bad color", []string{"--color", "16"}, "display.color"},
		{"bad level", []string{"--log-level", "loud"}, "logger.level"},
		{"extra args", []string{"stare"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
