package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/awidegreen/pack/pkg/config"
	"github.com/awidegreen/pack/pkg/registry"
)

func TestPackage_InstallPath(t *testing.T) {
	paths := config.NewPathsFromBase("/home/user/.vim")

	tests := []struct {
		name string
		pkg  registry.Package
		want string
	}{
		{
			"start package",
			registry.New("junegunn/fzf", "default", false),
			"/home/user/.vim/pack/default/start/fzf",
		},
		{
			"opt package",
			registry.New("tpope/vim-fugitive", "git", true),
			"/home/user/.vim/pack/git/opt/vim-fugitive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pkg.InstallPath(paths); got != filepath.FromSlash(tt.want) {
				t.Errorf("InstallPath() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPackage_ConfigPath(t *testing.T) {
	paths := config.NewPathsFromBase("/home/user/.vim")

	tests := []struct {
		coordinate string
		wantFile   string
	}{
		{"user/repo", "user-repo.vim"},
		{"rust-lang/rust.vim", "rust-lang-rust.vim"},
	}

	for _, tt := range tests {
		t.Run(tt.coordinate, func(t *testing.T) {
			p := registry.New(tt.coordinate, "default", false)
			want := filepath.Join(paths.ConfigDir, tt.wantFile)
			if got := p.ConfigPath(paths); got != want {
				t.Errorf("ConfigPath() = %s, want %s", got, want)
			}
		})
	}
}

func TestPackage_Repo(t *testing.T) {
	owner, repo := registry.New("tpope/vim-surround", "default", false).Repo()
	if owner != "tpope" || repo != "vim-surround" {
		t.Errorf("Repo() = (%s, %s), want (tpope, vim-surround)", owner, repo)
	}

	owner, repo = registry.New("noslash", "default", false).Repo()
	if owner != "noslash" || repo != "" {
		t.Errorf("Repo() = (%s, %s), want (noslash, )", owner, repo)
	}
}

func TestPackage_Installed(t *testing.T) {
	paths := config.NewPathsFromBase(t.TempDir())
	p := registry.New("a/x", "default", false)

	if p.Installed(paths) {
		t.Error("package reported installed before checkout exists")
	}
	if err := os.MkdirAll(p.InstallPath(paths), 0755); err != nil {
		t.Fatal(err)
	}
	if !p.Installed(paths) {
		t.Error("package not reported installed after checkout created")
	}
}

func TestPackage_String(t *testing.T) {
	p := registry.Package{Name: "a/x", Category: "c", Opt: true, LoadCommand: "DoIt"}
	want := "a/x => pack/c/opt [Load on `DoIt`]"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
