// Package generator produces the loader script vim sources at startup.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/awidegreen/pack/pkg/config"
	"github.com/awidegreen/pack/pkg/registry"
)

const scriptHeader = `" Generated by pack. DO NOT EDIT!
if exists('g:loaded_pack_plugins')
  finish
endif
let g:loaded_pack_plugins = 1

function! s:source_config(path) abort
  if filereadable(a:path)
    execute 'source' fnameescape(a:path)
  endif
endfunction

function! s:do_load(repo, cmd, args) abort
  execute 'delcommand' a:cmd
  execute 'packadd' a:repo
  execute a:cmd a:args
endfunction
`

// Script renders the loader for the given package set: every package's
// config file is sourced, and opt packages get their deferred-load
// trigger. The output is a function of the set and the path layout
// alone: packages are sorted by name, so batch order never changes the
// result.
func Script(paths *config.Paths, packs []registry.Package) string {
	sorted := make([]registry.Package, len(packs))
	copy(sorted, packs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var out strings.Builder
	out.WriteString(scriptHeader)

	for _, p := range sorted {
		_, repo := p.Repo()
		out.WriteByte('\n')
		fmt.Fprintf(&out, "\" %s\n", p.Name)
		fmt.Fprintf(&out, "call s:source_config('%s')\n", vimEscape(p.ConfigPath(paths)))
		switch {
		case p.Opt && p.LoadCommand != "":
			fmt.Fprintf(&out, "command! -nargs=* %s call s:do_load('%s', '%s', <q-args>)\n",
				p.LoadCommand, repo, p.LoadCommand)
		case p.Opt:
			fmt.Fprintf(&out, "\" load manually with :packadd %s\n", repo)
		}
	}

	return out.String()
}

// vimEscape makes a path safe inside a single-quoted vimscript string.
func vimEscape(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), "'", "''")
}

// Write regenerates the loader script on disk from the given set.
func Write(paths *config.Paths, packs []registry.Package) error {
	if err := os.MkdirAll(filepath.Dir(paths.PluginFile), 0755); err != nil {
		return fmt.Errorf("failed to create plugin directory: %w", err)
	}
	if err := os.WriteFile(paths.PluginFile, []byte(Script(paths, packs)), 0644); err != nil {
		return fmt.Errorf("failed to write loader script: %w", err)
	}
	return nil
}
