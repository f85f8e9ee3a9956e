package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/awidegreen/pack/pkg/registry"
)

func TestRunUninstall_RemovesCheckout(t *testing.T) {
	paths, log, _ := testEnv(t)
	p := registry.New("user/repo", "default", false)
	keep := registry.New("other/stays", "default", false)
	seedPackfile(t, paths, log, []registry.Package{p, keep})
	makeInstalled(t, paths, p)

	configFile := p.ConfigPath(paths)
	if err := os.WriteFile(configFile, []byte("\" settings\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runUninstall(paths, log, []string{"user/repo"}, false); err != nil {
		t.Fatalf("uninstall failed: %v", err)
	}

	if _, err := os.Stat(p.InstallPath(paths)); !os.IsNotExist(err) {
		t.Error("install directory still present")
	}
	if _, err := os.Stat(configFile); err != nil {
		t.Error("config file removed although --all was not given")
	}

	packs, err := registry.NewStore(paths, log).Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(packs) != 1 || packs[0].Name != "other/stays" {
		t.Errorf("packfile after uninstall = %v, want only other/stays", packs)
	}

	if strings.Contains(loaderScript(t, paths), "\" user/repo") {
		t.Error("uninstalled plugin still in loader script")
	}
}

func TestRunUninstall_AllRemovesConfig(t *testing.T) {
	paths, log, _ := testEnv(t)
	p := registry.New("user/repo", "default", false)
	seedPackfile(t, paths, log, []registry.Package{p})
	makeInstalled(t, paths, p)

	configFile := filepath.Join(paths.ConfigDir, "user-repo.vim")
	if err := os.WriteFile(configFile, []byte("\" settings\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runUninstall(paths, log, []string{"user/repo"}, true); err != nil {
		t.Fatalf("uninstall failed: %v", err)
	}

	if _, err := os.Stat(configFile); !os.IsNotExist(err) {
		t.Error("config file still present despite --all")
	}
}

func TestRunUninstall_UnknownNameIsNoop(t *testing.T) {
	paths, log, _ := testEnv(t)
	p := registry.New("a/x", "default", false)
	seedPackfile(t, paths, log, []registry.Package{p})

	if err := runUninstall(paths, log, []string{"no/such"}, false); err != nil {
		t.Fatalf("uninstall failed: %v", err)
	}

	packs, err := registry.NewStore(paths, log).Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(packs) != 1 {
		t.Errorf("packfile changed by uninstalling an unknown plugin: %v", packs)
	}
}
