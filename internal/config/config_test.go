package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagdrift/tagdrift/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(config.EnvRuntimeVersion, "")
	t.Setenv(config.EnvProjectRoot, "")
	t.Setenv(config.EnvVerbose, "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.False(t, cfg.RuntimeVersion)
	assert.Empty(t, cfg.ProjectRoot)
	assert.False(t, cfg.Verbose)
}

func TestLoadRuntimeVersion(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"unset means frozen", "", false},
		{"one enables", "1", true},
		{"word enables", "yes", true},
		// Presence counts, not boolean parsing: "0" still opts in, the
		// same way a non-empty environment string is truthy elsewhere.
		{"zero still enables", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.EnvRuntimeVersion, tt.value)

			cfg, err := config.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.RuntimeVersion)
		})
	}
}

func TestLoadProjectRoot(t *testing.T) {
	t.Setenv(config.EnvProjectRoot, "/srv/checkout")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/checkout", cfg.ProjectRoot)
}

func TestLoadVerbose(t *testing.T) {
	t.Setenv(config.EnvVerbose, "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}
