// Package wikitext is a small recursive-descent scanner for MediaWiki
// template invocations. It is not a full wikitext parser: it only knows
// enough to enumerate {{...}} templates (including ones nested inside
// parameter values) and to render a fragment down to plain text.
package wikitext

import (
	"regexp"
	"strings"

	"vna-etl/lib/textutil"
)

// maxDepth bounds recursion into parameter values so degenerate or
// malicious input cannot blow the stack.
const maxDepth = 64

type Parameter struct {
	// Name is empty for positional parameters.
	Name  string
	Value string
}

type Template struct {
	Name   string
	Params []Parameter
}

// Parse enumerates every template invocation in the text in document order,
// outer templates before the templates nested in their parameter values.
// Malformed markup is skipped, never an error; empty input yields nil.
func Parse(text string) []Template {
	var out []Template
	collect(text, 0, &out)
	return out
}

func collect(text string, depth int, out *[]Template) {
	if depth >= maxDepth || text == "" {
		return
	}
	i := 0
	for {
		rel := strings.Index(text[i:], "{{")
		if rel < 0 {
			return
		}
		start := i + rel
		end, ok := matchBraces(text, start)
		if !ok {
			i = start + 2
			continue
		}
		if tpl, ok := parseInvocation(text[start+2 : end-2]); ok {
			*out = append(*out, tpl)
			for _, p := range tpl.Params {
				collect(p.Value, depth+1, out)
			}
		}
		i = end
	}
}

// matchBraces returns the index just past the "}}" closing the "{{" at
// start, accounting for nested pairs.
func matchBraces(text string, start int) (int, bool) {
	depth := 0
	i := start
	for i < len(text)-1 {
		switch {
		case text[i] == '{' && text[i+1] == '{':
			depth++
			i += 2
		case text[i] == '}' && text[i+1] == '}':
			depth--
			i += 2
			if depth == 0 {
				return i, true
			}
		default:
			i++
		}
	}
	return 0, false
}

func parseInvocation(body string) (Template, bool) {
	segments := splitTopLevel(body, '|')
	name := strings.TrimSpace(segments[0])
	// "{{{...}}}" arguments and "{{|..." fragments are not templates
	if name == "" || strings.HasPrefix(name, "{") {
		return Template{}, false
	}
	tpl := Template{Name: name}
	for _, seg := range segments[1:] {
		if eq := indexTopLevel(seg, '='); eq >= 0 {
			tpl.Params = append(tpl.Params, Parameter{
				Name:  strings.TrimSpace(seg[:eq]),
				Value: seg[eq+1:],
			})
			continue
		}
		tpl.Params = append(tpl.Params, Parameter{Value: seg})
	}
	return tpl, true
}

// splitTopLevel splits on sep, ignoring separators inside nested {{...}}
// and [[...]] pairs.
func splitTopLevel(body string, sep byte) []string {
	var parts []string
	var braces, brackets int
	last := 0
	for i := 0; i < len(body); i++ {
		switch {
		case i+1 < len(body) && body[i] == '{' && body[i+1] == '{':
			braces++
			i++
		case i+1 < len(body) && body[i] == '}' && body[i+1] == '}':
			braces--
			i++
		case i+1 < len(body) && body[i] == '[' && body[i+1] == '[':
			brackets++
			i++
		case i+1 < len(body) && body[i] == ']' && body[i+1] == ']':
			brackets--
			i++
		case body[i] == sep && braces == 0 && brackets == 0:
			parts = append(parts, body[last:i])
			last = i + 1
		}
	}
	return append(parts, body[last:])
}

func indexTopLevel(s string, sep byte) int {
	var braces, brackets int
	for i := 0; i < len(s); i++ {
		switch {
		case i+1 < len(s) && s[i] == '{' && s[i+1] == '{':
			braces++
			i++
		case i+1 < len(s) && s[i] == '}' && s[i+1] == '}':
			braces--
			i++
		case i+1 < len(s) && s[i] == '[' && s[i+1] == '[':
			brackets++
			i++
		case i+1 < len(s) && s[i] == ']' && s[i+1] == ']':
			brackets--
			i++
		case s[i] == sep && braces == 0 && brackets == 0:
			return i
		}
	}
	return -1
}

var (
	commentRegex  = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagRegex      = regexp.MustCompile(`(?s)<[^<>]+>`)
	wikiLinkRegex = regexp.MustCompile(`\[\[(?:[^\[\]|]*\|)?([^\[\]]*)\]\]`)
	extLinkRegex  = regexp.MustCompile(`\[\S+\s+([^\]]*)\]`)
)

// StripCode renders a markup fragment to plain text: comments, tags and
// template invocations are dropped, wiki links keep their label, bold and
// italic quotes are removed and whitespace is collapsed. Running it on
// already-plain text returns the text unchanged apart from whitespace
// normalization, so the function is idempotent.
func StripCode(text string) string {
	if text == "" {
		return ""
	}
	text = commentRegex.ReplaceAllString(text, "")
	text = stripTemplates(text)
	text = wikiLinkRegex.ReplaceAllString(text, "$1")
	text = extLinkRegex.ReplaceAllString(text, "$1")
	text = tagRegex.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "'''", "")
	text = strings.ReplaceAll(text, "''", "")
	return textutil.CollapseWhitespace(text)
}

func stripTemplates(text string) string {
	var b strings.Builder
	i := 0
	for i < len(text) {
		rel := strings.Index(text[i:], "{{")
		if rel < 0 {
			b.WriteString(text[i:])
			break
		}
		start := i + rel
		b.WriteString(text[i:start])
		end, ok := matchBraces(text, start)
		if !ok {
			// unbalanced braces stay literal
			b.WriteString(text[start : start+2])
			i = start + 2
			continue
		}
		i = end
	}
	return b.String()
}

var namespaceRegex = regexp.MustCompile(`^template\s*:\s*`)

// NormalizeName lowercases a template name and strips an optional
// "Template:" namespace prefix and surrounding whitespace.
func NormalizeName(raw string) string {
	name := strings.ToLower(StripCode(raw))
	return strings.TrimSpace(namespaceRegex.ReplaceAllString(name, ""))
}

// Param returns the raw value of the first parameter whose normalized name
// matches one of the aliases and whose value is non-empty after trimming.
// Parameters are scanned in declaration order.
func Param(t Template, aliases []string) (string, bool) {
	for _, p := range t.Params {
		name := strings.ToLower(StripCode(p.Name))
		for _, alias := range aliases {
			if name != alias {
				continue
			}
			if v := strings.TrimSpace(p.Value); v != "" {
				return v, true
			}
		}
	}
	return "", false
}
