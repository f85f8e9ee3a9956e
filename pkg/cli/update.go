package cli

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/awidegreen/pack/pkg/config"
	"github.com/awidegreen/pack/pkg/engine"
	"github.com/awidegreen/pack/pkg/generator"
	"github.com/awidegreen/pack/pkg/logger"
	"github.com/awidegreen/pack/pkg/registry"
	"github.com/awidegreen/pack/pkg/vcs"
)

// Per-plugin update outcomes, recorded into the batch failure set and
// checked with errors.Is.
var (
	// ErrPluginNotInstalled indicates the plugin has no checkout to update.
	ErrPluginNotInstalled = errors.New("plugin is not installed")

	// ErrSkipLocal indicates a locally managed plugin pack must not touch.
	ErrSkipLocal = errors.New("local plugin, skipped")
)

func newUpdateCmd() *cobra.Command {
	var skip string
	var threads int
	var packfileOnly bool

	cmd := &cobra.Command{
		Use:   "update [plugin]...",
		Short: "Update installed plugins",
		Long: `Pull the latest revision of every registered plugin, or only the
named ones. Failed plugins are left out of the regenerated loader
script; the packfile itself is never modified by update.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := config.NewPaths()
			if err != nil {
				return err
			}
			log := logger.New(verbosity)

			if packfileOnly {
				printInfo("Regenerating the loader script for all plugins")
				return regenerateLoader(paths, log)
			}

			if threads < 1 {
				return fmt.Errorf("threads must be greater than 0")
			}
			client := vcs.NewGit(log)
			return runUpdate(cmd.Context(), paths, log, client, args, splitSkip(skip), threads)
		},
	}

	cmd.Flags().StringVarP(&skip, "skip", "s", "", "comma separated list of plugins to skip")
	cmd.Flags().IntVarP(&threads, "threads", "j", runtime.NumCPU(), "number of concurrent updates")
	cmd.Flags().BoolVarP(&packfileOnly, "packfile", "p", false, "only regenerate the loader script")

	return cmd
}

// splitSkip parses the --skip list, dropping empty entries.
func splitSkip(skip string) []string {
	var out []string
	for _, s := range strings.Split(skip, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func regenerateLoader(paths *config.Paths, log logger.Logger) error {
	packs, err := registry.NewStore(paths, log).Load()
	if err != nil {
		return err
	}
	return generator.Write(paths, packs)
}

// runUpdate is the update frontend: select the batch, run it through
// the engine, and regenerate the loader script from whatever survived.
// The packfile is deliberately not saved here; a transient update
// failure must never alter the declared desired state.
func runUpdate(ctx context.Context, paths *config.Paths, log logger.Logger, client vcs.Client, names, skip []string, threads int) error {
	store := registry.NewStore(paths, log)
	packs, err := store.Load()
	if err != nil {
		return err
	}

	runner := engine.New(threads, log)
	if len(names) == 0 {
		for _, p := range packs {
			if skipped(p.Name, skip) {
				log.Info("skip " + p.Name)
				continue
			}
			runner.Add(p)
		}
	} else {
		requested := make(map[string]bool, len(names))
		for _, n := range names {
			requested[n] = true
		}
		for _, p := range packs {
			if requested[p.Name] {
				runner.Add(p)
			}
		}
	}

	failed := runner.Run(updateOp(ctx, paths, log, client))

	survivors := make([]registry.Package, 0, len(packs))
	for _, p := range packs {
		if !failed[p.Name] {
			survivors = append(survivors, p)
		}
	}
	return generator.Write(paths, survivors)
}

func skipped(name string, skip []string) bool {
	for _, s := range skip {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

func updateOp(ctx context.Context, paths *config.Paths, log logger.Logger, client vcs.Client) engine.Operation {
	return func(p registry.Package) error {
		switch {
		case !p.Installed(paths):
			return ErrPluginNotInstalled
		case p.Local:
			return ErrSkipLocal
		default:
			log.WithPlugin(p.Name).Info("updating")
			if err := client.Update(ctx, p.Name, p.InstallPath(paths)); err != nil {
				return err
			}
			log.WithPlugin(p.Name).Success("updated")
			return nil
		}
	}
}
