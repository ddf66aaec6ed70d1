package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/coven/pkg/types"
)

// vampireView is the JSON shape of a vampire in command output.
type vampireView struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	YearConverted int    `json:"year_converted"`
	Creator       string `json:"creator,omitempty"`
	Generations   int    `json:"generations"`
	Offspring     int    `json:"offspring"`
}

func viewOf(v *types.Vampire) vampireView {
	view := vampireView{
		ID:            v.ID,
		Name:          v.Name,
		YearConverted: v.YearConverted,
		Generations:   v.GenerationsFromOriginal(),
		Offspring:     v.NumberOfOffspring(),
	}
	if c := v.Creator(); c != nil {
		view.Creator = c.Name
	}
	return view
}

func viewsOf(vs []*types.Vampire) []vampireView {
	out := make([]vampireView, len(vs))
	for i, v := range vs {
		out[i] = viewOf(v)
	}
	return out
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(w, string(data))
	return nil
}
