package linker

import (
	"testing"

	"vna-etl/lib/vna"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestCreateImplicitLinks(t *testing.T) {
	testCases := []struct {
		name  string
		left  []string
		right []string
		// if ImplicitLink.Correlation == 0
		// the test will not assert the correlation to be equal
		expected []ImplicitLink
	}{
		{
			name:  "exact matches",
			left:  []string{"peter benoit", "paul gilson", "jef van hoof"},
			right: []string{"peter benoit", "paul gilson"},
			expected: []ImplicitLink{
				{Left: "peter benoit", Right: "peter benoit", Correlation: 1},
				{Left: "paul gilson", Right: "paul gilson", Correlation: 1},
			},
		},
		{
			name:  "fuzzy fallback",
			left:  []string{"peter benoit", "paul gilson"},
			right: []string{"peter benoît", "paul gilson"},
			expected: []ImplicitLink{
				{Left: "paul gilson", Right: "paul gilson", Correlation: 1},
				{Left: "peter benoit", Right: "peter benoît"},
			},
		},
		{
			name:     "empty right",
			left:     []string{"peter benoit"},
			right:    []string{},
			expected: nil,
		},
		{
			name:     "both empty",
			left:     []string{},
			right:    []string{},
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			links := CreateImplicitLinks(tc.left, tc.right)

			var opts []cmp.Option
			for _, e := range tc.expected {
				if e.Correlation == 0 {
					opts = append(opts, cmpopts.IgnoreFields(ImplicitLink{}, "Correlation"))
					break
				}
			}
			require.Empty(t, cmp.Diff(tc.expected, links, opts...))
		})
	}
}

func TestCreateImplicitLinksEachSideOnce(t *testing.T) {
	links := CreateImplicitLinks(
		[]string{"jan peeters", "jan peters"},
		[]string{"jan peeters"},
	)
	require.Len(t, links, 1)
	require.Equal(t, "jan peeters", links[0].Left)
	require.Equal(t, float64(1), links[0].Correlation)
}

func TestLinkPersons(t *testing.T) {
	left := []vna.Person{
		{Name: vna.Name{Full: "Benoit,  Peter"}},
		{Name: vna.Name{First: "Paul", Last: "Gilson"}},
	}
	right := []vna.Person{
		{Name: vna.Name{Full: "benoit, peter"}},
	}

	links := LinkPersons(left, right)
	require.Len(t, links, 1)
	require.Equal(t, "benoit, peter", links[0].Left)
	require.Equal(t, float64(1), links[0].Correlation)
}
