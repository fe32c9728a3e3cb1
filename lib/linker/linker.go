// Package linker matches person names between two datasets, for example
// an ODIS export against an SVM crawl, so their records can be merged.
package linker

import (
	"vna-etl/lib/textutil"
	"vna-etl/lib/vna"

	"github.com/antzucaro/matchr"
)

type ImplicitLink struct {
	Left        string
	Right       string
	Correlation float64
}

// CreateImplicitLinks pairs up names from two lists. Exact matches are
// taken first with a correlation of 1, the remaining names are paired
// with their most similar unmatched counterpart by Jaro-Winkler
// distance. Each name is matched at most once.
func CreateImplicitLinks(leftList, rightList []string) []ImplicitLink {
	swapped := false
	if len(rightList) < len(leftList) {
		leftList, rightList = rightList, leftList
		swapped = true
	}

	var result []ImplicitLink
	matchedLeft := make(map[string]struct{})
	matchedRight := make(map[string]struct{})

	emit := func(left, right string, correlation float64) {
		link := ImplicitLink{Left: left, Right: right, Correlation: correlation}
		if swapped {
			link.Left, link.Right = link.Right, link.Left
		}
		result = append(result, link)
		matchedLeft[left] = struct{}{}
		matchedRight[right] = struct{}{}
	}

	for _, left := range leftList {
		for _, right := range rightList {
			_, isMatchedRight := matchedRight[right]
			if isMatchedRight {
				continue
			}
			if left == right {
				emit(left, right, 1)
				break
			}
		}
	}

	for _, left := range leftList {
		_, isMatchedLeft := matchedLeft[left]
		if isMatchedLeft {
			continue
		}

		var mostSimilarity float64
		var mostSimilarRight string
		for _, right := range rightList {
			_, isMatchedRight := matchedRight[right]
			if isMatchedRight {
				continue
			}

			similarity := matchr.JaroWinkler(left, right, false)
			if similarity > mostSimilarity {
				mostSimilarity = similarity
				mostSimilarRight = right
			}
		}

		if mostSimilarity > 0 {
			emit(left, mostSimilarRight, mostSimilarity)
		}
	}

	return result
}

// DisplayName renders the name a person is linked under, the full name
// when present, otherwise "First Last" collapsed.
func DisplayName(p vna.Person) string {
	if p.Name.Full != "" {
		return textutil.CollapseWhitespace(p.Name.Full)
	}
	return textutil.CollapseWhitespace(p.Name.First + " " + p.Name.Last)
}

// LinkPersons links two person datasets by display name, normalized
// before comparison so casing and stray whitespace do not break exact
// matches.
func LinkPersons(left, right []vna.Person) []ImplicitLink {
	leftNames := make([]string, 0, len(left))
	for _, p := range left {
		leftNames = append(leftNames, textutil.NormalizeName(DisplayName(p)))
	}
	rightNames := make([]string, 0, len(right))
	for _, p := range right {
		rightNames = append(rightNames, textutil.NormalizeName(DisplayName(p)))
	}
	return CreateImplicitLinks(leftNames, rightNames)
}
