// Package lineage builds vampire trees from lineage files and writes them
// back out. YAML files describe the tree as nested documents; JSONL files hold
// one flat record per vampire with a reference to its creator.
package lineage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/coven/pkg/types"
)

// Lineage loading errors.
var (
	ErrNoOriginal        = errors.New("lineage has no original vampire")
	ErrMultipleOriginals = errors.New("lineage has more than one original vampire")
	ErrDuplicateID       = errors.New("duplicate vampire ID")
	ErrUnknownCreator    = errors.New("creator not found in lineage")
)

// Record is the flat form of one vampire. An empty CreatorID marks the
// original.
type Record struct {
	VampireID     string `json:"vampire_id"`
	Name          string `json:"name"`
	YearConverted int    `json:"year_converted"`
	CreatorID     string `json:"creator_id,omitempty"`
}

// Lineage is a loaded vampire tree together with an ID index.
type Lineage struct {
	Original *types.Vampire
	byID     map[string]*types.Vampire
}

// Load reads a lineage file, choosing the decoder by file extension.
func Load(path string) (*Lineage, error) {
	if !types.IsSupportedFormat(path) {
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, filepath.Base(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lineage: %w", err)
	}
	defer f.Close()

	var records []Record
	switch strings.ToLower(filepath.Ext(path)) {
	case types.FormatJSONL:
		records, err = decodeJSONL(f)
	default:
		records, err = decodeYAML(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return Build(records)
}

// Build assembles a tree from flat records. Records may appear in any order.
// Offspring are attached in record order, so siblings keep the order in which
// they were listed. Missing IDs are generated.
func Build(records []Record) (*Lineage, error) {
	l := &Lineage{byID: make(map[string]*types.Vampire, len(records))}
	ordered := make([]*types.Vampire, len(records))

	var originals []*types.Vampire
	for i := range records {
		rec := &records[i]
		if strings.TrimSpace(rec.Name) == "" {
			return nil, fmt.Errorf("record %d: %w", i+1, types.ErrInvalidName)
		}
		if rec.VampireID == "" {
			rec.VampireID = generateUUID()
		}
		if _, dup := l.byID[rec.VampireID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, rec.VampireID)
		}
		v := types.NewVampire(rec.Name, rec.YearConverted)
		v.ID = rec.VampireID
		l.byID[v.ID] = v
		ordered[i] = v
		if rec.CreatorID == "" {
			originals = append(originals, v)
		}
	}

	switch len(originals) {
	case 0:
		return nil, ErrNoOriginal
	case 1:
		l.Original = originals[0]
	default:
		return nil, fmt.Errorf("%w: %s and %s", ErrMultipleOriginals, originals[0].Name, originals[1].Name)
	}

	for i, rec := range records {
		if rec.CreatorID == "" {
			continue
		}
		creator, ok := l.byID[rec.CreatorID]
		if !ok {
			return nil, fmt.Errorf("%w: %s (creator of %s)", ErrUnknownCreator, rec.CreatorID, rec.Name)
		}
		if err := creator.AddOffspring(ordered[i]); err != nil {
			return nil, fmt.Errorf("attaching %s to %s: %w", rec.Name, creator.Name, err)
		}
	}
	return l, nil
}

// Find returns the first vampire with the given name, searching from the
// original in pre-order.
func (l *Lineage) Find(name string) (*types.Vampire, error) {
	return l.Original.VampireWithName(name)
}

// ByID returns the vampire with the given ID.
func (l *Lineage) ByID(id string) (*types.Vampire, bool) {
	v, ok := l.byID[id]
	return v, ok
}

// Len returns the number of vampires in the lineage.
func (l *Lineage) Len() int {
	return len(l.byID)
}

// Records flattens the tree below root in pre-order. Vampires without an ID
// are given a generated one in the output only; root is not modified.
func Records(root *types.Vampire) []Record {
	ids := make(map[*types.Vampire]string)
	idOf := func(v *types.Vampire) string {
		if v.ID != "" {
			return v.ID
		}
		if id, ok := ids[v]; ok {
			return id
		}
		id := generateUUID()
		ids[v] = id
		return id
	}

	var out []Record
	for v := range root.Lineage() {
		rec := Record{
			VampireID:     idOf(v),
			Name:          v.Name,
			YearConverted: v.YearConverted,
		}
		if c := v.Creator(); c != nil && v != root {
			rec.CreatorID = idOf(c)
		}
		out = append(out, rec)
	}
	return out
}

// generateUUID generates a new UUID v7 for vampire IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
