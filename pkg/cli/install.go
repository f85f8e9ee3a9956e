package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/awidegreen/pack/pkg/config"
	"github.com/awidegreen/pack/pkg/engine"
	"github.com/awidegreen/pack/pkg/generator"
	"github.com/awidegreen/pack/pkg/logger"
	"github.com/awidegreen/pack/pkg/registry"
	"github.com/awidegreen/pack/pkg/vcs"
)

type installOpts struct {
	category string
	opt      bool
	local    bool
	onCmd    string
}

func newInstallCmd() *cobra.Command {
	var opts installOpts
	var threads int

	cmd := &cobra.Command{
		Use:   "install [plugin]...",
		Short: "Install plugins",
		Long: `Clone the named plugins and register them in the packfile. Without
arguments, install every registered plugin that has no checkout yet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := config.NewPaths()
			if err != nil {
				return err
			}
			if threads < 1 {
				return fmt.Errorf("threads must be greater than 0")
			}
			log := logger.New(verbosity)
			client := vcs.NewGit(log)
			return runInstall(cmd.Context(), paths, log, client, args, opts, threads)
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", "default", "category to install the plugin under")
	cmd.Flags().BoolVarP(&opts.opt, "opt", "o", false, "register as an optional plugin (not loaded at startup)")
	cmd.Flags().BoolVarP(&opts.local, "local", "l", false, "register a locally managed plugin without cloning")
	cmd.Flags().StringVar(&opts.onCmd, "on", "", "load the plugin when this command is first used (implies --opt)")
	cmd.Flags().IntVarP(&threads, "threads", "j", runtime.NumCPU(), "number of concurrent installs")

	return cmd
}

// runInstall clones the requested plugins through the engine. Newly
// requested coordinates join the packfile only when their clone
// succeeded, so the declared state never references a broken install.
func runInstall(ctx context.Context, paths *config.Paths, log logger.Logger, client vcs.Client, names []string, opts installOpts, threads int) error {
	store := registry.NewStore(paths, log)
	packs, err := store.Load()
	if err != nil {
		return err
	}

	known := make(map[string]registry.Package, len(packs))
	for _, p := range packs {
		known[p.Name] = p
	}

	runner := engine.New(threads, log)
	var added []registry.Package

	if len(names) == 0 {
		for _, p := range packs {
			if !p.Local && !p.Installed(paths) {
				runner.Add(p)
			}
		}
	} else {
		for _, name := range names {
			if p, ok := known[name]; ok {
				if p.Installed(paths) {
					log.WithPlugin(name).Info("already installed")
					continue
				}
				runner.Add(p)
				continue
			}
			p := registry.Package{
				Name:        name,
				Category:    opts.category,
				Opt:         opts.opt || opts.onCmd != "",
				Local:       opts.local,
				LoadCommand: opts.onCmd,
			}
			added = append(added, p)
			if !p.Local {
				runner.Add(p)
			}
		}
	}

	failed := runner.Run(installOp(ctx, paths, log, client))

	for _, p := range added {
		if !failed[p.Name] {
			packs = append(packs, p)
		}
	}

	survivors := make([]registry.Package, 0, len(packs))
	for _, p := range packs {
		if !failed[p.Name] {
			survivors = append(survivors, p)
		}
	}
	if err := generator.Write(paths, survivors); err != nil {
		return err
	}

	// The packfile changes only when a new coordinate was requested.
	if len(added) > 0 {
		if err := store.Save(packs); err != nil {
			return err
		}
	}

	if n := len(failed); n > 0 {
		printError(fmt.Sprintf("%d plugin(s) failed to install", n))
	} else {
		printSuccess("all plugins installed")
	}
	return nil
}

func installOp(ctx context.Context, paths *config.Paths, log logger.Logger, client vcs.Client) engine.Operation {
	return func(p registry.Package) error {
		if p.Installed(paths) {
			return nil
		}
		log.WithPlugin(p.Name).Info("installing")
		if err := client.Clone(ctx, p.Name, p.InstallPath(paths)); err != nil {
			return err
		}
		log.WithPlugin(p.Name).Success("installed")
		return nil
	}
}
