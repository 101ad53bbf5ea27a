package npc

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// TemplateSource produces templates for the generator. Importers of external
// character-sheet formats implement it; DirSource is the bundled YAML implementation.
type TemplateSource interface {
	Load() ([]*Template, error)
}

// DirSource loads every YAML template in a directory.
type DirSource struct {
	dir string
}

// NewDirSource creates a DirSource reading from dir.
//
// Precondition: dir must be non-empty.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Load reads and validates every template in the directory.
func (s *DirSource) Load() ([]*Template, error) {
	return LoadTemplates(s.dir)
}

// ErrTemplateNotFound is returned by Library.Get for an unknown template ID.
var ErrTemplateNotFound = errors.New("template not found")

// Library indexes loaded templates by ID.
type Library struct {
	byID map[string]*Template
	ids  []string
}

// NewLibrary loads every template from src and indexes it.
//
// Postcondition: Returns an error if src fails or two templates share an ID.
func NewLibrary(src TemplateSource) (*Library, error) {
	templates, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	lib := &Library{byID: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		if _, dup := lib.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		lib.byID[t.ID] = t
		lib.ids = append(lib.ids, t.ID)
	}
	sort.Strings(lib.ids)
	return lib, nil
}

// IDs returns every template ID in ascending order.
func (l *Library) IDs() []string {
	out := make([]string, len(l.ids))
	copy(out, l.ids)
	return out
}

// Len returns the number of templates.
func (l *Library) Len() int { return len(l.ids) }

// Get returns the template with the given ID.
//
// Postcondition: an unknown id yields an error wrapping ErrTemplateNotFound
// that names the closest known IDs, if any are near enough to be typos.
func (l *Library) Get(id string) (*Template, error) {
	if t, ok := l.byID[id]; ok {
		return t, nil
	}
	if s := l.Suggest(id); len(s) > 0 {
		return nil, fmt.Errorf("%w: %q (did you mean %s?)", ErrTemplateNotFound, id, strings.Join(s, ", "))
	}
	return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
}

// Suggest returns known IDs within typo distance of id, closest first.
func (l *Library) Suggest(id string) []string {
	type candidate struct {
		id   string
		dist int
	}
	needle := strings.ToLower(id)
	var cands []candidate
	for _, known := range l.ids {
		dist := levenshtein.ComputeDistance(needle, strings.ToLower(known))
		if dist > typoLimit(len(known)) {
			continue
		}
		cands = append(cands, candidate{id: known, dist: dist})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.id)
	}
	return out
}

func typoLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
