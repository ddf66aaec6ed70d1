package lineage

import "strings"

// SampleYAML is the starter lineage written by "coven init".
const SampleYAML = `# Coven lineage. Each vampire lists the offspring it created, in order.
name: Ansel
year_converted: 1500
offspring:
  - name: Sarah
    year_converted: 1600
    offspring:
      - name: Wayne
        year_converted: 1990
  - name: Andrew
    year_converted: 1600
`

// Sample returns a freshly built copy of the starter lineage.
func Sample() (*Lineage, error) {
	records, err := decodeYAML(strings.NewReader(SampleYAML))
	if err != nil {
		return nil, err
	}
	return Build(records)
}
