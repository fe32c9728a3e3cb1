package rights

import (
	"slices"
	"strconv"
	"strings"

	"vna-etl/lib/wikitext"
)

func (r *Resolver) isLicenseTemplate(name string) bool {
	n := strings.TrimSpace(strings.ToLower(name))
	if slices.Contains(r.tables.LicenseExact, n) {
		return true
	}
	for _, prefix := range r.tables.LicensePrefixes {
		if strings.HasPrefix(n, prefix) {
			return true
		}
	}
	return false
}

// licensesFromSelf maps every parameter of a {{Self|...}} template to a
// license candidate. The literal "self" token is never a candidate.
func (r *Resolver) licensesFromSelf(tpl wikitext.Template) []string {
	var out []string
	for _, p := range tpl.Params {
		val := r.normalizeLicenseName(wikitext.StripCode(p.Value))
		if val != "" && val != "self" {
			out = append(out, val)
		}
	}
	return out
}

// licenseFromGFDL handles {{GFDL|migration=relicense}}: a relicensed GFDL
// file carries CC-BY-SA-3.0, anything else keeps the GFDL marker.
func (r *Resolver) licenseFromGFDL(tpl wikitext.Template) string {
	migration, ok := wikitext.Param(tpl, []string{"migration"})
	if ok && strings.EqualFold(wikitext.StripCode(migration), "relicense") {
		return CCBySa30URI
	}
	return GFDLMarker
}

// licenseFromSpecial recognizes institutional templates that imply a fixed
// license.
func (r *Resolver) licenseFromSpecial(name string) string {
	text := strings.TrimSpace(strings.ToLower(name))
	for prefix, uri := range r.tables.SpecialTemplates {
		if strings.HasPrefix(text, prefix) {
			return uri
		}
	}
	return ""
}

func (r *Resolver) normalizeLicenseName(name string) string {
	return r.licenseURI(wikitext.NormalizeName(name))
}

// licenseURI canonicalizes a license token. The substring checks run in a
// fixed order: "pd" is tested first, so a token containing "pd" anywhere is
// routed to the public-domain mark even when it is part of a longer CC
// code. This ordering is load-bearing for compatibility with the existing
// dataset and must not be rearranged.
func (r *Resolver) licenseURI(token string) string {
	text := strings.TrimSpace(strings.ToLower(token))

	switch {
	case strings.Contains(text, "pd"):
		return r.tables.LicenseURIs["pd"]
	case strings.Contains(text, "cc-zero"),
		strings.HasPrefix(text, "cc0"),
		strings.Contains(text, "gencat"):
		return r.tables.LicenseURIs["cc-zero"]
	case strings.Contains(text, "cc-"):
		return r.ccURI(text)
	case strings.Contains(text, "gfdl"):
		if uri, ok := r.tables.LicenseURIs[text]; ok {
			return uri
		}
		return GFDLMarker
	}
	return text
}

// reduce selects exactly one license string, in strict precedence order:
// strictest of many candidates, then the single candidate (with the GFDL
// marker substituted), then a license hidden in the permission note, then
// the special-template fallback, then empty.
func (r *Resolver) reduce(candidates []string, permissionNote, special string) string {
	uniq := dedup(candidates)

	var license string
	switch {
	case len(uniq) > 1:
		license = strictest(uniq)
	case len(uniq) == 1:
		license = uniq[0]
		if license == GFDLMarker {
			license = CCBySa30URI
		}
	}

	if license == "" && permissionNote != "" {
		license = r.licenseFromPermission(permissionNote)
	}
	if license == "" {
		license = special
	}
	return license
}

func dedup(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	var out []string
	for _, lic := range candidates {
		if lic == "" || lic == "self" {
			continue
		}
		if _, ok := seen[lic]; ok {
			continue
		}
		seen[lic] = struct{}{}
		out = append(out, lic)
	}
	return out
}

// strictest keeps the most restrictive candidate: CC-BY-SA over CC-BY over
// CC0/public domain, newer versions winning ties. Candidates outside those
// families are ignored; if none remain, the first candidate is returned so
// a row never loses its only signal.
func strictest(candidates []string) string {
	var family []string
	for _, lic := range candidates {
		l := strings.ToLower(lic)
		if strings.Contains(l, "by") || strings.Contains(l, "zero") || strings.Contains(l, "publicdomain") {
			family = append(family, lic)
		}
	}
	if len(family) == 0 {
		return candidates[0]
	}

	best := family[0]
	bestLevel, bestVersion := strictnessKey(best)
	for _, lic := range family[1:] {
		level, version := strictnessKey(lic)
		if level > bestLevel || (level == bestLevel && version > bestVersion) {
			best, bestLevel, bestVersion = lic, level, version
		}
	}
	return best
}

func strictnessKey(lic string) (int, float64) {
	l := strings.ToLower(lic)

	level := 0
	switch {
	case strings.Contains(l, "by-sa"):
		level = 3
	case strings.Contains(l, "by"):
		level = 2
	case strings.Contains(l, "zero"), strings.Contains(l, "publicdomain"):
		level = 1
	}

	// trailing version segment of the URI; tokens without one rank lowest
	version := 0.0
	segments := strings.Split(strings.TrimSuffix(lic, "/"), "/")
	if v, err := strconv.ParseFloat(segments[len(segments)-1], 64); err == nil {
		version = v
	}
	return level, version
}

// licenseFromPermission scans a free-text permission note for a known
// license token: lowercased, spaces to hyphens, truncated at the first
// slash, then matched against the license dictionary in scan order.
func (r *Resolver) licenseFromPermission(note string) string {
	perm := strings.ReplaceAll(strings.ToLower(note), " ", "-")
	perm, _, _ = strings.Cut(perm, "/")

	for _, key := range r.tables.LicenseScan {
		if strings.Contains(perm, strings.ToLower(key)) {
			return r.licenseURI(perm)
		}
	}
	return ""
}
