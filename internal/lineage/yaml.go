package lineage

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlVampire is one node of a nested YAML lineage document.
type yamlVampire struct {
	ID            string        `yaml:"id,omitempty"`
	Name          string        `yaml:"name"`
	YearConverted int           `yaml:"year_converted"`
	Offspring     []yamlVampire `yaml:"offspring,omitempty"`
}

// errEmptyDocument is returned for a YAML file with no document.
var errEmptyDocument = errors.New("empty lineage document")

// decodeYAML reads a nested lineage document rooted at the original vampire
// and flattens it into records in pre-order.
func decodeYAML(r io.Reader) ([]Record, error) {
	var doc yamlVampire
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyDocument
		}
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	var records []Record
	var flatten func(n *yamlVampire, creatorID string)
	flatten = func(n *yamlVampire, creatorID string) {
		if n.ID == "" {
			n.ID = generateUUID()
		}
		records = append(records, Record{
			VampireID:     n.ID,
			Name:          n.Name,
			YearConverted: n.YearConverted,
			CreatorID:     creatorID,
		})
		for i := range n.Offspring {
			flatten(&n.Offspring[i], n.ID)
		}
	}
	flatten(&doc, "")
	return records, nil
}

// encodeYAML writes records as a nested YAML document. Records must form a
// single tree; the first record without a creator is used as the root.
func encodeYAML(w io.Writer, records []Record) error {
	nodes := make(map[string]*yamlVampire, len(records))
	for _, rec := range records {
		nodes[rec.VampireID] = &yamlVampire{
			ID:            rec.VampireID,
			Name:          rec.Name,
			YearConverted: rec.YearConverted,
		}
	}

	children := make(map[string][]string, len(records))
	var rootID string
	for _, rec := range records {
		if rec.CreatorID == "" {
			if rootID == "" {
				rootID = rec.VampireID
			}
			continue
		}
		children[rec.CreatorID] = append(children[rec.CreatorID], rec.VampireID)
	}
	if rootID == "" {
		return ErrNoOriginal
	}

	var assemble func(id string) yamlVampire
	assemble = func(id string) yamlVampire {
		n := *nodes[id]
		for _, childID := range children[id] {
			n.Offspring = append(n.Offspring, assemble(childID))
		}
		return n
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(assemble(rootID)); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
