// Package config resolves the filesystem layout pack operates on.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// EnvBaseDir is the environment variable that relocates every path
// pack touches. It defaults to ~/.vim when unset.
const EnvBaseDir = "VIM_CONFIG_PATH"

// Paths holds every location pack reads or writes. It is resolved once
// at startup and passed down explicitly; nothing else in the codebase
// consults the environment.
type Paths struct {
	// Base is the vim configuration root, usually ~/.vim.
	Base string
	// PackDir is where plugin checkouts live, <Base>/pack.
	PackDir string
	// ConfigDir holds pack's own files and per-plugin configs, <Base>/.pack.
	ConfigDir string
	// Packfile is the declarative plugin registry, <ConfigDir>/packfile.
	Packfile string
	// PluginFile is the generated loader script vim sources at startup.
	PluginFile string
}

// NewPaths resolves the path layout from the environment.
func NewPaths() (*Paths, error) {
	v := viper.New()
	if err := v.BindEnv("base", EnvBaseDir); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", EnvBaseDir, err)
	}

	base := v.GetString("base")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("no home directory found: %w", err)
		}
		base = filepath.Join(home, ".vim")
	}

	return NewPathsFromBase(base), nil
}

// NewPathsFromBase derives the full layout from an explicit base directory.
func NewPathsFromBase(base string) *Paths {
	configDir := filepath.Join(base, ".pack")
	return &Paths{
		Base:       base,
		PackDir:    filepath.Join(base, "pack"),
		ConfigDir:  configDir,
		Packfile:   filepath.Join(configDir, "packfile"),
		PluginFile: filepath.Join(base, "plugin", "__pack.vim"),
	}
}
