package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/coven/pkg/types"
)

func newGenerationsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "generations <name>",
		Short: "Count the generations between a vampire and the original",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := s.vampire(args[0])
			if err != nil {
				return err
			}
			n := v.GenerationsFromOriginal()
			if s.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"name":        v.Name,
					"generations": n,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is %d generations from the original\n", v.Name, n)
			return nil
		},
	}
}

func newSeniorCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "senior <name> <other>",
		Short: "Report whether a vampire is closer to the original than another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.vampire(args[0])
			if err != nil {
				return err
			}
			b, err := s.vampire(args[1])
			if err != nil {
				return err
			}
			senior := a.IsMoreSeniorThan(b)
			if s.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"name":        a.Name,
					"other":       b.Name,
					"more_senior": senior,
				})
			}
			verb := "is"
			if !senior {
				verb = "is not"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s more senior than %s\n", a.Name, verb, b.Name)
			return nil
		},
	}
}

func newAncestorCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "ancestor <name> <other>",
		Short: "Find the closest common ancestor of two vampires",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.vampire(args[0])
			if err != nil {
				return err
			}
			b, err := s.vampire(args[1])
			if err != nil {
				return err
			}
			anc, err := a.ClosestCommonAncestor(b)
			if err != nil {
				return userError(err)
			}
			if s.jsonMode {
				return writeJSON(cmd.OutOrStdout(), viewOf(anc))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Closest common ancestor of %s and %s: %s\n", a.Name, b.Name, anc.Name)
			return nil
		},
	}
}

func newFindCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "find <name>",
		Short: "Display a vampire by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := s.vampire(args[0])
			if err != nil {
				return err
			}
			view := viewOf(v)
			if s.jsonMode {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %s\n", view.ID)
			fmt.Fprintf(out, "Name:        %s\n", view.Name)
			fmt.Fprintf(out, "Converted:   %d\n", view.YearConverted)
			if view.Creator != "" {
				fmt.Fprintf(out, "Creator:     %s\n", view.Creator)
			} else {
				fmt.Fprintln(out, "Creator:     (original)")
			}
			fmt.Fprintf(out, "Generations: %d\n", view.Generations)
			fmt.Fprintf(out, "Offspring:   %d\n", view.Offspring)
			return nil
		},
	}
}

func newOffspringCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "offspring <name>",
		Short: "List the vampires a vampire created directly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := s.vampire(args[0])
			if err != nil {
				return err
			}
			offspring := v.Offspring()
			if s.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"name":      v.Name,
					"count":     v.NumberOfOffspring(),
					"offspring": viewsOf(offspring),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s has %d offspring\n", v.Name, v.NumberOfOffspring())
			for _, o := range offspring {
				fmt.Fprintf(out, "  %s\n", o)
			}
			return nil
		},
	}
}

func newDescendantsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "descendants <name>",
		Short: "Count every vampire below a vampire",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := s.vampire(args[0])
			if err != nil {
				return err
			}
			n := v.TotalDescendants()
			if s.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"name":        v.Name,
					"descendants": n,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s has %d descendants\n", v.Name, n)
			return nil
		},
	}
}

func newAfterCmd(s *session) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "after [year]",
		Short: "List vampires converted after a year",
		Long: `List every vampire converted strictly after the given year, in lineage
order. Without a year the configured millennial_year is used (default 1980).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := s.cfg.MillennialYear
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return userError(fmt.Errorf("invalid year %q", args[0]))
				}
				year = y
			}

			start, err := s.start(from)
			if err != nil {
				return err
			}
			found := start.ConvertedAfter(year)
			if s.jsonMode {
				return writeJSON(cmd.OutOrStdout(), viewsOf(found))
			}
			out := cmd.OutOrStdout()
			if len(found) == 0 {
				fmt.Fprintf(out, "No vampires converted after %d\n", year)
				return nil
			}
			for _, v := range found {
				fmt.Fprintln(out, v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "search only the lineage of this vampire (default: the original)")
	return cmd
}

// start returns the named vampire, or the original when name is empty.
func (s *session) start(name string) (*types.Vampire, error) {
	if name == "" {
		tree, err := s.load()
		if err != nil {
			return nil, err
		}
		return tree.Original, nil
	}
	return s.vampire(name)
}

func newShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Print the lineage as a tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			start, err := s.start(name)
			if err != nil {
				return err
			}
			if s.jsonMode {
				var all []*types.Vampire
				for v := range start.Lineage() {
					all = append(all, v)
				}
				return writeJSON(cmd.OutOrStdout(), viewsOf(all))
			}
			base := start.GenerationsFromOriginal()
			out := cmd.OutOrStdout()
			for v := range start.Lineage() {
				indent := strings.Repeat("  ", v.GenerationsFromOriginal()-base)
				fmt.Fprintf(out, "%s%s\n", indent, v)
			}
			return nil
		},
	}
}
