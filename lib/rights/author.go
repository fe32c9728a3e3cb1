package rights

import (
	"regexp"
	"strings"

	"vna-etl/lib/textutil"
	"vna-etl/lib/wikitext"
)

// simplifyAuthor reduces a raw author field to a display name. In order of
// precedence: a {{Creator:Name}} transclusion, the preferred language out
// of any language-wrapped values, the {{Unknown|author}} sentinel, and
// finally the field rendered to plain text.
func (r *Resolver) simplifyAuthor(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	templates := wikitext.Parse(value)

	if name := creatorName(templates); name != "" {
		return name
	}

	hits := languageHits(templates)
	if text := chooseLanguageText(hits, r.tables.PreferredLangs); text != "" {
		return text
	}

	if declaresUnknownAuthor(templates) {
		return r.tables.UnknownAuthor
	}

	return wikitext.StripCode(value)
}

// creatorName returns the text after the colon of the first template whose
// name starts with "creator:".
func creatorName(templates []wikitext.Template) string {
	for _, tpl := range templates {
		name := strings.TrimSpace(tpl.Name)
		if !strings.HasPrefix(strings.ToLower(name), "creator:") {
			continue
		}
		_, after, _ := strings.Cut(name, ":")
		return textutil.CollapseWhitespace(after)
	}
	return ""
}

// declaresUnknownAuthor reports whether an {{Unknown|author}} template is
// present.
func declaresUnknownAuthor(templates []wikitext.Template) bool {
	for _, tpl := range templates {
		if strings.ToLower(strings.TrimSpace(tpl.Name)) != "unknown" {
			continue
		}
		for _, p := range tpl.Params {
			if strings.EqualFold(wikitext.StripCode(p.Value), "author") {
				return true
			}
		}
	}
	return false
}

type languageHit struct {
	code string
	text string
}

var langCodeRegex = regexp.MustCompile(`^[a-z]{2,3}(?:-[a-z0-9]+)?$`)

// languageHits collects (language code, text) pairs from the language
// wrapper templates: {{en|...}}, {{nl|1=...}}, {{lang|nl|...}} and
// {{lang-nl|...}}.
func languageHits(templates []wikitext.Template) []languageHit {
	var hits []languageHit

	for _, tpl := range templates {
		name := wikitext.NormalizeName(tpl.Name)
		params := tpl.Params

		// {{en|...}} / {{nl|1=...}}, optionally region-suffixed like de-at
		if langCodeRegex.MatchString(name) {
			value, found := "", false
			for _, p := range params {
				pname := wikitext.StripCode(p.Name)
				if pname == "" || pname == "1" {
					value, found = p.Value, true
					break
				}
			}
			if !found && len(params) > 0 {
				value = params[0].Value
			}
			if value != "" {
				code, _, _ := strings.Cut(name, "-")
				hits = append(hits, languageHit{code: code, text: wikitext.StripCode(value)})
			}
			continue
		}

		if name == "lang" && len(params) >= 2 {
			code := strings.ToLower(wikitext.StripCode(params[0].Value))
			code, _, _ = strings.Cut(code, "-")
			hits = append(hits, languageHit{code: code, text: wikitext.StripCode(params[1].Value)})
			continue
		}

		if rest, ok := strings.CutPrefix(name, "lang-"); ok && len(params) > 0 {
			code, _, _ := strings.Cut(rest, "-")
			hits = append(hits, languageHit{code: code, text: wikitext.StripCode(params[0].Value)})
		}
	}

	return hits
}

// chooseLanguageText picks the first preferred language with text, falling
// back to the first non-empty hit in encounter order.
func chooseLanguageText(hits []languageHit, preferred []string) string {
	for _, pref := range preferred {
		for _, hit := range hits {
			if hit.code == pref && hit.text != "" {
				return hit.text
			}
		}
	}
	for _, hit := range hits {
		if hit.text != "" {
			return hit.text
		}
	}
	return ""
}
