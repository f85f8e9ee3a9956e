// Package registry holds the declarative plugin registry and its
// packfile persistence.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/awidegreen/pack/pkg/config"
)

// Package describes one managed plugin. Name is the unique
// "owner/repo" coordinate; everything filesystem-related is derived
// from it rather than stored.
type Package struct {
	Name     string
	Category string
	// Opt marks the plugin as not auto-loaded at startup; vim loads it
	// on demand via :packadd or the LoadCommand trigger.
	Opt bool
	// Local marks a plugin managed outside pack; update leaves it alone.
	Local bool
	// LoadCommand is the vim command that triggers loading an opt plugin.
	LoadCommand string
}

// New creates a package with the given coordinate and category.
func New(name, category string, opt bool) Package {
	return Package{Name: name, Category: category, Opt: opt}
}

// Repo splits the coordinate into its owner and repository parts.
func (p Package) Repo() (owner, repo string) {
	parts := strings.SplitN(p.Name, "/", 2)
	owner = parts[0]
	if len(parts) > 1 {
		repo = parts[1]
	}
	return owner, repo
}

// InstallPath returns the checkout directory for this package,
// <pack dir>/<category>/{start|opt}/<repo>.
func (p Package) InstallPath(paths *config.Paths) string {
	_, repo := p.Repo()
	sub := "start"
	if p.Opt {
		sub = "opt"
	}
	return filepath.Join(paths.PackDir, p.Category, sub, repo)
}

// ConfigPath returns the per-plugin vim config file, named after the
// coordinate with "/" replaced by "-" and a ".vim" suffix.
func (p Package) ConfigPath(paths *config.Paths) string {
	name := strings.ReplaceAll(p.Name, "/", "-")
	if !strings.HasSuffix(name, ".vim") {
		name += ".vim"
	}
	return filepath.Join(paths.ConfigDir, name)
}

// Installed reports whether the package's checkout directory exists.
func (p Package) Installed(paths *config.Paths) bool {
	info, err := os.Stat(p.InstallPath(paths))
	return err == nil && info.IsDir()
}

// String renders the package the way `pack list` prints it.
func (p Package) String() string {
	sub := "start"
	if p.Opt {
		sub = "opt"
	}
	on := ""
	if p.LoadCommand != "" {
		on = fmt.Sprintf(" [Load on `%s`]", p.LoadCommand)
	}
	return fmt.Sprintf("%s => pack/%s/%s%s", p.Name, p.Category, sub, on)
}
