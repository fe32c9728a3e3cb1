package rights

import (
	"regexp"
	"strconv"
	"strings"
)

var versionListRegex = regexp.MustCompile(`^\d+(?:\.\d+)?(?:,\d+(?:\.\d+)?)*$`)

// ccOptions are CC license option codes that must never be mistaken for a
// trailing jurisdiction suffix.
var ccOptions = map[string]bool{
	"by":   true,
	"sa":   true,
	"nc":   true,
	"nd":   true,
	"zero": true,
}

// ccURI builds a canonical Creative Commons URI from a hyphen-delimited
// code. Handles versionless codes (cc-by-sa, default 4.0), explicit
// versions (cc-by-sa-3.0), the old/all markers (1.0 and 4.0), version
// lists (cc-by-sa-3.0,4.0 picks the highest) and jurisdiction suffixes
// (cc-by-3.0-nl drops the nl).
func (r *Resolver) ccURI(text string) string {
	base := r.tables.LicenseURIs["cc-by"]
	if base == "" {
		base = CCBaseURI
	}

	parts := strings.Split(text, "-")

	last := parts[len(parts)-1]
	if len(parts) > 1 && !endsInDigit(last) && last != "old" && last != "all" && !ccOptions[last] {
		parts = parts[:len(parts)-1]
	}

	last = parts[len(parts)-1]
	version := "4.0"
	options := ""
	if len(parts) > 2 {
		options = strings.Join(parts[1:len(parts)-1], "-")
	}

	switch {
	case last == "old":
		version = "1.0"
	case last == "all":
		version = "4.0"
	case versionListRegex.MatchString(last):
		version = maxVersion(last)
	default:
		// no version segment, the tail belongs to the options path
		options = strings.Join(parts[1:], "-")
	}

	if options == "" {
		options = "by"
	}
	return base + options + "/" + version + "/"
}

func endsInDigit(s string) bool {
	return s != "" && s[len(s)-1] >= '0' && s[len(s)-1] <= '9'
}

// maxVersion picks the numerically highest version out of a
// comma-separated list like "3.0,2.5,4.0".
func maxVersion(list string) string {
	best := ""
	bestVal := -1.0
	for _, v := range strings.Split(list, ",") {
		val, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		if val > bestVal {
			bestVal = val
			best = v
		}
	}
	if best == "" {
		return "4.0"
	}
	return best
}
