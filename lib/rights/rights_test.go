package rights

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name     string
		wikitext string
		expected Rights
	}{
		{
			name:     "empty input",
			wikitext: "",
			expected: Rights{},
		},
		{
			name:     "plain text without templates",
			wikitext: "just a description, no markup",
			expected: Rights{},
		},
		{
			name:     "plain author",
			wikitext: "{{Information|author=Jane Doe}}",
			expected: Rights{Author: "Jane Doe"},
		},
		{
			name:     "author with wiki link",
			wikitext: "{{Information|author=[[w:Jane Doe|Jane Doe]]}}",
			expected: Rights{Author: "Jane Doe"},
		},
		{
			name:     "creator transclusion",
			wikitext: "{{Information|author={{Creator:Jane Doe}}}}",
			expected: Rights{Author: "Jane Doe"},
		},
		{
			name:     "creator transclusion beats language wrappers",
			wikitext: "{{Information|author={{Creator:Jane Doe}} {{en|John}}}}",
			expected: Rights{Author: "Jane Doe"},
		},
		{
			name:     "language preference nl over en",
			wikitext: "{{Information|author={{en|Hello}}{{nl|Hallo}}}}",
			expected: Rights{Author: "Hallo"},
		},
		{
			name:     "language fallback to first non-empty",
			wikitext: "{{Information|author={{de|Hallo Welt}}}}",
			expected: Rights{Author: "Hallo Welt"},
		},
		{
			name:     "lang template with positional code",
			wikitext: "{{Information|author={{lang|nl|Jan Jansen}}}}",
			expected: Rights{Author: "Jan Jansen"},
		},
		{
			name:     "lang prefixed template",
			wikitext: "{{Information|author={{lang-nl|Jan Jansen}}}}",
			expected: Rights{Author: "Jan Jansen"},
		},
		{
			name:     "unknown author sentinel",
			wikitext: "{{Information|author={{Unknown|author}}}}",
			expected: Rights{Author: "Onbekend"},
		},
		{
			name:     "alias artist",
			wikitext: "{{Artwork|artist=Jane Doe}}",
			expected: Rights{Author: "Jane Doe"},
		},
		{
			name:     "first information template wins",
			wikitext: "{{Information|author=Jane}}{{Photograph|photographer=John}}",
			expected: Rights{Author: "Jane"},
		},
		{
			name:     "self declaration",
			wikitext: "{{Self|cc-by-sa-4.0}}",
			expected: Rights{License: "https://creativecommons.org/licenses/by-sa/4.0/"},
		},
		{
			name:     "self declaration duplicates collapse",
			wikitext: "{{Self|cc-by-sa-4.0|cc-by-sa-4.0}}",
			expected: Rights{License: "https://creativecommons.org/licenses/by-sa/4.0/"},
		},
		{
			name:     "bare license template",
			wikitext: "{{cc-by-sa-3.0}}",
			expected: Rights{License: "https://creativecommons.org/licenses/by-sa/3.0/"},
		},
		{
			name:     "public domain template",
			wikitext: "{{PD-old-70}}",
			expected: Rights{License: PublicDomainURI},
		},
		{
			name:     "pd substring quirk misroutes cc codes",
			wikitext: "{{Self|cc-by-pd}}",
			expected: Rights{License: PublicDomainURI},
		},
		{
			name:     "gfdl with migration",
			wikitext: "{{GFDL|migration=relicense}}",
			expected: Rights{License: CCBySa30URI},
		},
		{
			name:     "bare gfdl substitutes cc-by-sa-3.0",
			wikitext: "{{GFDL}}",
			expected: Rights{License: CCBySa30URI},
		},
		{
			name:     "strictest of many",
			wikitext: "{{cc-by-3.0}}{{cc-by-sa-3.0}}{{cc0}}",
			expected: Rights{License: "https://creativecommons.org/licenses/by-sa/3.0/"},
		},
		{
			name:     "newest version wins at equal level",
			wikitext: "{{cc-by-sa-3.0}}{{cc-by-sa-4.0}}",
			expected: Rights{License: "https://creativecommons.org/licenses/by-sa/4.0/"},
		},
		{
			name:     "permission note fallback",
			wikitext: "{{Information|author=Jane|permission=CC-BY-SA-3.0}}",
			expected: Rights{
				Author:  "Jane",
				License: "https://creativecommons.org/licenses/by-sa/3.0/",
			},
		},
		{
			name:     "explicit license beats permission note",
			wikitext: "{{Information|permission=CC-BY-SA-3.0}}{{cc0}}",
			expected: Rights{License: CCZeroURI},
		},
		{
			name:     "wikiportrait special template",
			wikitext: "{{Information|author=Jane}}{{Wikiportrait-approved}}",
			expected: Rights{Author: "Jane", License: CCBy30URI},
		},
		{
			name:     "nationaal archief special template",
			wikitext: "{{Nationaal Archief}}",
			expected: Rights{License: CCBySa30URI},
		},
		{
			name:     "candidates beat special template fallback",
			wikitext: "{{Wikiportrait-approved}}{{cc0}}",
			expected: Rights{License: CCZeroURI},
		},
		{
			name:     "unknown license template kept as opaque token",
			wikitext: "{{Attribution}}",
			expected: Rights{License: "attribution"},
		},
		{
			name:     "unbalanced markup degrades to empty",
			wikitext: "{{Information|author=Jane",
			expected: Rights{},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			diff := cmp.Diff(test.expected, Resolve(test.wikitext))
			if diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestResolveDeterministic(t *testing.T) {
	input := "{{Information|author={{en|Jane}}{{nl|Jan}}|permission=see below}}" +
		"{{Self|cc-by-sa-4.0|cc-by-3.0}}{{PD-old}}{{Wikiportrait}}"
	first := Resolve(input)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Resolve(input))
	}
}

func TestResolveCustomTables(t *testing.T) {
	tables := DefaultTables()
	tables.PreferredLangs = []string{"en"}
	resolver := NewResolver(tables)

	got := resolver.Resolve("{{Information|author={{en|Hello}}{{nl|Hallo}}}}")
	require.Equal(t, "Hello", got.Author)
}

func TestAuthorResolutionStopsAtFirstRawValue(t *testing.T) {
	// the first information-like template carries an author field that
	// renders empty; later templates must not override it
	got := Resolve("{{Information|author={{SomeDecoration}}}}{{Artwork|artist=Jane}}")
	require.Equal(t, "", got.Author)
}

func TestDedup(t *testing.T) {
	testCases := []struct {
		input    []string
		expected []string
	}{
		{nil, nil},
		{[]string{"a", "a", "b"}, []string{"a", "b"}},
		{[]string{"self", "a"}, []string{"a"}},
		{[]string{"", "a", ""}, []string{"a"}},
		{[]string{"b", "a", "b"}, []string{"b", "a"}},
	}
	for _, test := range testCases {
		diff := cmp.Diff(test.expected, dedup(test.input))
		if diff != "" {
			t.Fatal(diff)
		}
	}
}

func TestStrictest(t *testing.T) {
	bySa3 := "https://creativecommons.org/licenses/by-sa/3.0/"
	by3 := "https://creativecommons.org/licenses/by/3.0/"

	testCases := []struct {
		name       string
		candidates []string
		expected   string
	}{
		{
			name:       "by-sa beats by and zero",
			candidates: []string{by3, bySa3, CCZeroURI},
			expected:   bySa3,
		},
		{
			name:       "order does not matter",
			candidates: []string{CCZeroURI, bySa3, by3},
			expected:   bySa3,
		},
		{
			name:       "zero beats unrecognized",
			candidates: []string{"GFDL", CCZeroURI},
			expected:   CCZeroURI,
		},
		{
			name:       "no family match falls back to first candidate",
			candidates: []string{"GFDL", "some-odd-token"},
			expected:   "GFDL",
		},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, strictest(test.candidates))
		})
	}
}
