// Package rights extracts a normalized author and license URI from the raw
// wikitext of a Wikimedia Commons file-description page. Resolution is a
// pure function of the input: malformed markup degrades to empty results,
// it never fails.
package rights

import (
	"slices"
	"strings"

	"vna-etl/lib/wikitext"
)

type Rights struct {
	Author  string
	License string
}

type Resolver struct {
	tables Tables
}

func NewResolver(tables Tables) *Resolver {
	return &Resolver{tables: tables}
}

var defaultResolver = NewResolver(DefaultTables())

// Resolve extracts rights with the default Commons tables.
func Resolve(text string) Rights {
	return defaultResolver.Resolve(text)
}

// Resolve walks every template in the document once. Information-like
// templates contribute the author and, as a fallback, a free-text
// permission note; all other templates contribute license candidates. The
// candidates are then reduced to a single license string.
func (r *Resolver) Resolve(text string) Rights {
	var (
		author         string
		authorResolved bool
		permissionNote string
		candidates     []string
		special        string
	)

	for _, tpl := range wikitext.Parse(text) {
		name := wikitext.NormalizeName(tpl.Name)

		if r.isInfoTemplate(name) {
			if !authorResolved {
				if raw, ok := wikitext.Param(tpl, r.tables.AuthorAliases); ok {
					author = r.simplifyAuthor(raw)
					authorResolved = true
				}
			}
			if permissionNote == "" {
				if raw, ok := wikitext.Param(tpl, r.tables.PermissionAliases); ok {
					permissionNote = wikitext.StripCode(raw)
				}
			}
			continue
		}

		if name == "self" {
			candidates = append(candidates, r.licensesFromSelf(tpl)...)
			continue
		}

		if name == "gfdl" {
			candidates = append(candidates, r.licenseFromGFDL(tpl))
		}

		if r.isLicenseTemplate(name) {
			candidates = append(candidates, r.licenseURI(name))
		}

		if uri := r.licenseFromSpecial(name); uri != "" {
			special = uri
		}
	}

	return Rights{
		Author:  author,
		License: r.reduce(candidates, permissionNote, special),
	}
}

func (r *Resolver) isInfoTemplate(name string) bool {
	if slices.Contains(r.tables.InfoTemplates, name) {
		return true
	}
	return strings.Contains(name, "information")
}
