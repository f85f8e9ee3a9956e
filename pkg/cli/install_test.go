package cli

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/awidegreen/pack/pkg/mocks"
	"github.com/awidegreen/pack/pkg/registry"
)

func TestRunInstall_NewPlugin(t *testing.T) {
	paths, log, _ := testEnv(t)
	client := mocks.NewMockVCS()

	opts := installOpts{category: "tools", onCmd: "DoIt"}
	if err := runInstall(context.Background(), paths, log, client, []string{"x/new"}, opts, 2); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	packs, err := registry.NewStore(paths, log).Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(packs) != 1 {
		t.Fatalf("packfile has %d entries, want 1", len(packs))
	}
	p := packs[0]
	if p.Name != "x/new" || p.Category != "tools" || !p.Opt || p.LoadCommand != "DoIt" {
		t.Errorf("persisted package = %+v", p)
	}
	if !p.Installed(paths) {
		t.Error("checkout directory missing after install")
	}
}

func TestRunInstall_CloneFailureNotPersisted(t *testing.T) {
	paths, log, _ := testEnv(t)
	client := mocks.NewMockVCS()
	client.CloneErr["x/bad"] = errors.New("no such repository")

	opts := installOpts{category: "default"}
	if err := runInstall(context.Background(), paths, log, client, []string{"x/bad", "y/good"}, opts, 2); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	packs, err := registry.NewStore(paths, log).Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(packs) != 1 || packs[0].Name != "y/good" {
		t.Errorf("packfile = %v, want only y/good", packs)
	}
}

func TestRunInstall_MissingRegisteredPlugins(t *testing.T) {
	paths, log, _ := testEnv(t)
	present := registry.New("a/here", "default", false)
	absent := registry.New("b/missing", "default", false)
	seedPackfile(t, paths, log, []registry.Package{present, absent})
	makeInstalled(t, paths, present)

	client := mocks.NewMockVCS()
	if err := runInstall(context.Background(), paths, log, client, nil, installOpts{}, 2); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	calls := client.CloneCalls()
	if len(calls) != 1 || calls[0] != "b/missing" {
		t.Errorf("cloned %v, want only b/missing", calls)
	}
}

func TestRunInstall_LocalNotCloned(t *testing.T) {
	paths, log, _ := testEnv(t)
	client := mocks.NewMockVCS()

	opts := installOpts{category: "default", local: true}
	if err := runInstall(context.Background(), paths, log, client, []string{"me/hacks"}, opts, 1); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	if calls := client.CloneCalls(); len(calls) != 0 {
		t.Errorf("local plugin was cloned: %v", calls)
	}

	packs, err := registry.NewStore(paths, log).Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(packs) != 1 || !packs[0].Local {
		t.Errorf("local plugin not persisted: %v", packs)
	}
}

func TestRunInstall_AlreadyInstalledSkipsClone(t *testing.T) {
	paths, log, _ := testEnv(t)
	p := registry.New("a/x", "default", false)
	seedPackfile(t, paths, log, []registry.Package{p})
	makeInstalled(t, paths, p)

	client := mocks.NewMockVCS()
	if err := runInstall(context.Background(), paths, log, client, []string{"a/x"}, installOpts{}, 1); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	if calls := client.CloneCalls(); len(calls) != 0 {
		t.Errorf("already installed plugin was cloned: %v", calls)
	}

	// No new coordinate was requested, so the packfile is untouched.
	if _, err := os.Stat(paths.Packfile); err != nil {
		t.Fatalf("packfile missing: %v", err)
	}
}
