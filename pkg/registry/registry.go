package registry

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/awidegreen/pack/pkg/config"
	"github.com/awidegreen/pack/pkg/logger"
)

// ErrFormat indicates a packfile record missing a required field.
// The packfile is authoritative, so a malformed record aborts the
// whole command rather than being repaired silently.
var ErrFormat = errors.New("malformed packfile record")

const packfileHeader = `# vim: ft=yaml
#
# Generated by pack. DO NOT EDIT!

`

// record is the packfile wire form of a Package. Required fields are
// pointers so a missing key is distinguishable from a zero value.
type record struct {
	Name     *string `yaml:"name"`
	Category *string `yaml:"category"`
	Opt      *bool   `yaml:"opt"`
	On       string  `yaml:"on,omitempty"`
	Local    bool    `yaml:"local,omitempty"`
}

func (r record) toPackage() (Package, error) {
	if r.Name == nil || r.Category == nil || r.Opt == nil {
		return Package{}, ErrFormat
	}
	return Package{
		Name:        *r.Name,
		Category:    *r.Category,
		Opt:         *r.Opt,
		Local:       r.Local,
		LoadCommand: r.On,
	}, nil
}

func toRecord(p Package) record {
	return record{
		Name:     &p.Name,
		Category: &p.Category,
		Opt:      &p.Opt,
		On:       p.LoadCommand,
		Local:    p.Local,
	}
}

// Store loads and saves the packfile.
type Store struct {
	paths *config.Paths
	log   logger.Logger
}

// NewStore creates a store over the given path layout.
func NewStore(paths *config.Paths, log logger.Logger) *Store {
	return &Store{paths: paths, log: log}
}

// Load reads the packfile. An absent packfile yields an empty registry.
// Duplicate coordinates keep the first record seen; later ones are
// dropped with a warning.
func (s *Store) Load() ([]Package, error) {
	data, err := os.ReadFile(s.paths.Packfile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read packfile: %w", err)
	}

	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	seen := make(map[string]bool, len(records))
	packs := make([]Package, 0, len(records))
	for i, r := range records {
		p, err := r.toPackage()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d", err, i)
		}
		if seen[p.Name] {
			s.log.Warn("duplicate packfile entry ignored", logger.WithField("name", p.Name))
			continue
		}
		seen[p.Name] = true
		packs = append(packs, p)
	}
	return packs, nil
}

// Save writes the full package set back to the packfile, sorted by
// name so the output is deterministic.
func (s *Store) Save(packs []Package) error {
	sorted := make([]Package, len(packs))
	copy(sorted, packs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	records := make([]record, len(sorted))
	for i, p := range sorted {
		records[i] = toRecord(p)
	}

	out, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to serialize packfile: %w", err)
	}

	if err := os.MkdirAll(s.paths.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.paths.Packfile, append([]byte(packfileHeader), out...), 0644); err != nil {
		return fmt.Errorf("failed to write packfile: %w", err)
	}
	return nil
}
