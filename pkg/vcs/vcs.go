// Package vcs wraps the git operations pack performs on plugin
// checkouts.
package vcs

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/awidegreen/pack/pkg/logger"
)

// Client is what the command frontends need from a version-control
// system: materialize a plugin at a path, or bring an existing
// checkout up to date. Failure detail beyond the error is opaque.
type Client interface {
	Clone(ctx context.Context, name, path string) error
	Update(ctx context.Context, name, path string) error
}

// Git implements Client over go-git against GitHub coordinates.
type Git struct {
	log logger.Logger
}

// NewGit creates a git-backed client.
func NewGit(log logger.Logger) *Git {
	return &Git{log: log}
}

// RemoteURL maps an "owner/repo" coordinate to its clone URL.
func RemoteURL(name string) string {
	return fmt.Sprintf("https://github.com/%s.git", name)
}

// Clone checks the plugin out at path.
func (g *Git) Clone(ctx context.Context, name, path string) error {
	g.log.WithPlugin(name).Debug("cloning", logger.WithField("path", path))
	_, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL:               RemoteURL(name),
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		return fmt.Errorf("clone of %s failed: %w", name, err)
	}
	return nil
}

// Update pulls the existing checkout at path.
func (g *Git) Update(ctx context.Context, name, path string) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree of %s: %w", name, err)
	}

	err = worktree.PullContext(ctx, &git.PullOptions{
		RemoteName:        "origin",
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		g.log.WithPlugin(name).Debug("already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("update of %s failed: %w", name, err)
	}
	return nil
}
