package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/awidegreen/pack/pkg/config"
	"github.com/awidegreen/pack/pkg/generator"
	"github.com/awidegreen/pack/pkg/logger"
	"github.com/awidegreen/pack/pkg/registry"
)

func newUninstallCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "uninstall <plugin>...",
		Short: "Uninstall plugins",
		Long: `Remove the named plugins' checkouts and drop them from the packfile.
Per-plugin config files are kept unless --all is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := config.NewPaths()
			if err != nil {
				return err
			}
			log := logger.New(verbosity)
			return runUninstall(paths, log, args, all)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "also remove the plugins' config files")

	return cmd
}

// runUninstall removes the requested plugins and, unlike update,
// rewrites the packfile: uninstalling is an explicit change to the
// desired state. A filesystem failure aborts before the remaining
// plugins are touched.
func runUninstall(paths *config.Paths, log logger.Logger, names []string, removeConfig bool) error {
	store := registry.NewStore(paths, log)
	packs, err := store.Load()
	if err != nil {
		return err
	}

	requested := make(map[string]bool, len(names))
	for _, n := range names {
		requested[n] = true
	}

	for _, p := range packs {
		if !requested[p.Name] {
			continue
		}
		if err := uninstallPackage(p, paths, removeConfig); err != nil {
			return fmt.Errorf("failed to uninstall %s: %w", p.Name, err)
		}
		log.WithPlugin(p.Name).Success("uninstalled")
	}

	remaining := make([]registry.Package, 0, len(packs))
	for _, p := range packs {
		if !requested[p.Name] {
			remaining = append(remaining, p)
		}
	}

	if err := generator.Write(paths, remaining); err != nil {
		return err
	}
	return store.Save(remaining)
}

func uninstallPackage(p registry.Package, paths *config.Paths, removeConfig bool) error {
	if removeConfig {
		configFile := p.ConfigPath(paths)
		if _, err := os.Stat(configFile); err == nil {
			if err := os.Remove(configFile); err != nil {
				return err
			}
		}
	}

	installPath := p.InstallPath(paths)
	if info, err := os.Stat(installPath); err == nil && info.IsDir() {
		if err := os.RemoveAll(installPath); err != nil {
			return err
		}
	}
	return nil
}
