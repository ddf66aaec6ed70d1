package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// coven builds the reference lineage:
//
//	Ansel (1500)
//	├── Sarah (1600)
//	│   └── Wayne (1990)
//	└── Andrew (1600)
type coven struct {
	ansel, sarah, andrew, wayne *Vampire
}

func newCoven(t *testing.T) coven {
	t.Helper()
	c := coven{
		ansel:  NewVampire("Ansel", 1500),
		sarah:  NewVampire("Sarah", 1600),
		andrew: NewVampire("Andrew", 1600),
		wayne:  NewVampire("Wayne", 1990),
	}
	require.NoError(t, c.ansel.AddOffspring(c.sarah))
	require.NoError(t, c.ansel.AddOffspring(c.andrew))
	require.NoError(t, c.sarah.AddOffspring(c.wayne))
	return c
}

func names(vs []*Vampire) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name
	}
	return out
}

func TestNewVampireIsUnattached(t *testing.T) {
	v := NewVampire("Ansel", 1500)

	assert.Equal(t, "Ansel", v.Name)
	assert.Equal(t, 1500, v.YearConverted)
	assert.Nil(t, v.Creator())
	assert.True(t, v.IsOriginal())
	assert.Equal(t, 0, v.NumberOfOffspring())
	assert.NotNil(t, v.Offspring())
	assert.Equal(t, "Ansel (1500)", v.String())
}

func TestAddOffspring(t *testing.T) {
	c := newCoven(t)

	assert.Same(t, c.ansel, c.sarah.Creator())
	assert.Same(t, c.ansel, c.andrew.Creator())
	assert.Same(t, c.sarah, c.wayne.Creator())
	assert.Equal(t, []string{"Sarah", "Andrew"}, names(c.ansel.Offspring()))
	assert.Equal(t, []string{"Wayne"}, names(c.sarah.Offspring()))
	assert.False(t, c.sarah.IsOriginal())
}

func TestAddOffspringRejects(t *testing.T) {
	tests := []struct {
		name   string
		attach func(c coven) error
	}{
		{
			name:   "already created by another vampire",
			attach: func(c coven) error { return c.andrew.AddOffspring(c.wayne) },
		},
		{
			name:   "already created by the same vampire",
			attach: func(c coven) error { return c.ansel.AddOffspring(c.sarah) },
		},
		{
			name:   "self",
			attach: func(c coven) error { return c.ansel.AddOffspring(c.ansel) },
		},
		{
			name:   "own original",
			attach: func(c coven) error { return c.wayne.AddOffspring(c.ansel) },
		},
		{
			name:   "nil",
			attach: func(c coven) error { return c.ansel.AddOffspring(nil) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCoven(t)

			err := tt.attach(c)

			assert.ErrorIs(t, err, ErrInvalidOperation)
			assert.Equal(t, []string{"Sarah", "Andrew"}, names(c.ansel.Offspring()),
				"offspring should not change on error")
			assert.Equal(t, []string{"Wayne"}, names(c.sarah.Offspring()))
			assert.Empty(t, c.andrew.Offspring())
			assert.Empty(t, c.wayne.Offspring())
			assert.Nil(t, c.ansel.Creator(), "original should stay original")
		})
	}
}

func TestOffspringReturnsCopy(t *testing.T) {
	c := newCoven(t)

	got := c.ansel.Offspring()
	got[0] = c.wayne

	assert.Equal(t, []string{"Sarah", "Andrew"}, names(c.ansel.Offspring()))
}

func TestOffspringKeepsCreationOrder(t *testing.T) {
	root := NewVampire("Root", 1000)
	want := []string{"a", "b", "c", "d", "e"}
	for _, n := range want {
		require.NoError(t, root.AddOffspring(NewVampire(n, 1100)))
	}

	assert.Equal(t, want, names(root.Offspring()))
	assert.Equal(t, len(want), root.NumberOfOffspring())
}

func TestNumberOfOffspring(t *testing.T) {
	c := newCoven(t)

	assert.Equal(t, 2, c.ansel.NumberOfOffspring())
	assert.Equal(t, 1, c.sarah.NumberOfOffspring())
	assert.Equal(t, 0, c.andrew.NumberOfOffspring())
	assert.Equal(t, 0, c.wayne.NumberOfOffspring())
}

func TestGenerationsFromOriginal(t *testing.T) {
	c := newCoven(t)

	assert.Equal(t, 0, c.ansel.GenerationsFromOriginal())
	assert.Equal(t, 1, c.sarah.GenerationsFromOriginal())
	assert.Equal(t, 1, c.andrew.GenerationsFromOriginal())
	assert.Equal(t, 2, c.wayne.GenerationsFromOriginal())

	for v := range c.ansel.Lineage() {
		if creator := v.Creator(); creator != nil {
			assert.Equal(t, creator.GenerationsFromOriginal()+1, v.GenerationsFromOriginal(), v.Name)
		}
	}
}

func TestOriginal(t *testing.T) {
	c := newCoven(t)

	for v := range c.ansel.Lineage() {
		assert.Same(t, c.ansel, v.Original(), v.Name)
	}
}

func TestIsMoreSeniorThan(t *testing.T) {
	c := newCoven(t)

	tests := []struct {
		name string
		a, b *Vampire
		want bool
	}{
		{"original over offspring", c.ansel, c.sarah, true},
		{"original over grand-offspring", c.ansel, c.wayne, true},
		{"offspring over its own offspring", c.sarah, c.wayne, true},
		{"cousin-level shallower wins", c.andrew, c.wayne, true},
		{"deeper is not senior", c.wayne, c.andrew, false},
		{"offspring not senior to original", c.sarah, c.ansel, false},
		{"siblings are not senior", c.sarah, c.andrew, false},
		{"siblings reversed", c.andrew, c.sarah, false},
		{"self is not senior", c.sarah, c.sarah, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.IsMoreSeniorThan(tt.b))
		})
	}
}

func TestIsMoreSeniorThanAntisymmetric(t *testing.T) {
	c := newCoven(t)
	all := []*Vampire{c.ansel, c.sarah, c.andrew, c.wayne}

	for _, a := range all {
		for _, b := range all {
			if a.IsMoreSeniorThan(b) {
				assert.False(t, b.IsMoreSeniorThan(a), "%s vs %s", a.Name, b.Name)
			}
			assert.Equal(t,
				a.GenerationsFromOriginal() < b.GenerationsFromOriginal(),
				a.IsMoreSeniorThan(b), "%s vs %s", a.Name, b.Name)
		}
	}
}

func TestTotalDescendants(t *testing.T) {
	c := newCoven(t)

	assert.Equal(t, 3, c.ansel.TotalDescendants())
	assert.Equal(t, 1, c.sarah.TotalDescendants())
	assert.Equal(t, 0, c.andrew.TotalDescendants())
	assert.Equal(t, 0, c.wayne.TotalDescendants())

	for v := range c.ansel.Lineage() {
		sum := 0
		for _, o := range v.Offspring() {
			sum += 1 + o.TotalDescendants()
		}
		assert.Equal(t, sum, v.TotalDescendants(), v.Name)
	}
}

func TestTotalDescendantsDeepChain(t *testing.T) {
	const depth = 10000
	root := NewVampire("v0", 0)
	cur := root
	for i := 1; i <= depth; i++ {
		next := NewVampire("v", i)
		require.NoError(t, cur.AddOffspring(next))
		cur = next
	}

	assert.Equal(t, depth, root.TotalDescendants())
	assert.Equal(t, depth, cur.GenerationsFromOriginal())
	assert.Len(t, root.ConvertedAfter(depth-10), 10)
}

func TestVampireWithName(t *testing.T) {
	c := newCoven(t)

	tests := []struct {
		name   string
		from   *Vampire
		search string
		want   *Vampire
	}{
		{"finds self", c.ansel, "Ansel", c.ansel},
		{"finds offspring", c.ansel, "Andrew", c.andrew},
		{"finds grand-offspring", c.ansel, "Wayne", c.wayne},
		{"searches only the subtree", c.sarah, "Wayne", c.wayne},
		{"sibling outside the subtree", c.sarah, "Andrew", nil},
		{"ancestor outside the subtree", c.wayne, "Ansel", nil},
		{"unknown name", c.ansel, "Nobody", nil},
		{"empty name", c.ansel, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.VampireWithName(tt.search)
			if tt.want == nil {
				assert.ErrorIs(t, err, ErrNotFound)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestVampireWithNameDuplicateReturnsFirstInPreOrder(t *testing.T) {
	root := NewVampire("Root", 1000)
	left := NewVampire("Left", 1100)
	right := NewVampire("Twin", 1100)
	deepTwin := NewVampire("Twin", 1200)
	require.NoError(t, root.AddOffspring(left))
	require.NoError(t, root.AddOffspring(right))
	require.NoError(t, left.AddOffspring(deepTwin))

	got, err := root.VampireWithName("Twin")
	require.NoError(t, err)
	assert.Same(t, deepTwin, got, "left subtree is searched before right sibling")
}

func TestConvertedAfter(t *testing.T) {
	c := newCoven(t)

	tests := []struct {
		name string
		from *Vampire
		year int
		want []string
	}{
		{"millennials from the original", c.ansel, 1980, []string{"Wayne"}},
		{"threshold is exclusive", c.ansel, 1600, []string{"Wayne"}},
		{"includes self", c.ansel, 1499, []string{"Ansel", "Sarah", "Wayne", "Andrew"}},
		{"pre-order within subtree", c.sarah, 1500, []string{"Sarah", "Wayne"}},
		{"no matches", c.ansel, 2000, []string{}},
		{"leaf without match", c.andrew, 1600, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.ConvertedAfter(tt.year)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, names(got))
			for _, v := range got {
				assert.Greater(t, v.YearConverted, tt.year)
			}
		})
	}
}

func TestAllMillennialVampires(t *testing.T) {
	c := newCoven(t)

	got := c.ansel.AllMillennialVampires()

	require.Len(t, got, 1)
	assert.Same(t, c.wayne, got[0])
}

func TestClosestCommonAncestor(t *testing.T) {
	c := newCoven(t)

	tests := []struct {
		name string
		a, b *Vampire
		want *Vampire
	}{
		{"offspring and grand-offspring", c.sarah, c.wayne, c.sarah},
		{"grand-offspring and offspring", c.wayne, c.sarah, c.sarah},
		{"siblings", c.sarah, c.andrew, c.ansel},
		{"original and offspring", c.ansel, c.sarah, c.ansel},
		{"original and grand-offspring", c.ansel, c.andrew, c.ansel},
		{"cousin-level", c.wayne, c.andrew, c.ansel},
		{"self", c.wayne, c.wayne, c.wayne},
		{"original with itself", c.ansel, c.ansel, c.ansel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.ClosestCommonAncestor(tt.b)
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestClosestCommonAncestorDisjointLineages(t *testing.T) {
	c := newCoven(t)
	stranger := NewVampire("Stranger", 1700)
	strangerChild := NewVampire("StrangerChild", 1800)
	require.NoError(t, stranger.AddOffspring(strangerChild))

	got, err := c.wayne.ClosestCommonAncestor(strangerChild)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, got)

	got, err = c.wayne.ClosestCommonAncestor(nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, got)
}

func TestClosestCommonAncestorUsesIdentityNotName(t *testing.T) {
	root := NewVampire("Root", 1000)
	a := NewVampire("Same", 1100)
	b := NewVampire("Same", 1100)
	require.NoError(t, root.AddOffspring(a))
	require.NoError(t, root.AddOffspring(b))

	got, err := a.ClosestCommonAncestor(b)
	require.NoError(t, err)
	assert.Same(t, root, got)
}

func TestLineageStopsEarly(t *testing.T) {
	c := newCoven(t)

	var seen []string
	for v := range c.ansel.Lineage() {
		seen = append(seen, v.Name)
		if v.Name == "Wayne" {
			break
		}
	}

	assert.Equal(t, []string{"Ansel", "Sarah", "Wayne"}, seen)
}

func TestAncestors(t *testing.T) {
	c := newCoven(t)

	var got []*Vampire
	for a := range c.wayne.Ancestors() {
		got = append(got, a)
	}

	assert.Equal(t, []string{"Wayne", "Sarah", "Ansel"}, names(got))
}
