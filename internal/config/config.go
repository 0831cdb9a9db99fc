// Package config loads tagdrift's runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Environment variables read by tagdrift.
const (
	// EnvRuntimeVersion toggles runtime version recomputation. Any
	// non-empty value enables it; unset (or empty) means the frozen
	// build-time version is reported.
	EnvRuntimeVersion = "TAGDRIFT_VCS_RUNTIME_VERSION"

	// EnvProjectRoot overrides where the build-manifest search starts.
	EnvProjectRoot = "TAGDRIFT_PROJECT_ROOT"

	// EnvVerbose enables debug logging.
	EnvVerbose = "TAGDRIFT_VERBOSE"
)

// Config holds the resolved runtime settings.
type Config struct {
	// RuntimeVersion selects recomputed version resolution.
	RuntimeVersion bool

	// ProjectRoot is the starting directory for the manifest search;
	// empty means the process working directory.
	ProjectRoot string

	// Verbose enables debug logging.
	Verbose bool
}

// Load reads the configuration from the environment. It is evaluated once
// per invocation; tagdrift has no config file, the environment is the whole
// configuration surface.
func Load() (*Config, error) {
	v := viper.New()

	bindings := map[string]string{
		"runtime_version": EnvRuntimeVersion,
		"project_root":    EnvProjectRoot,
		"verbose":         EnvVerbose,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	return &Config{
		RuntimeVersion: v.GetString("runtime_version") != "",
		ProjectRoot:    v.GetString("project_root"),
		Verbose:        v.GetBool("verbose"),
	}, nil
}
