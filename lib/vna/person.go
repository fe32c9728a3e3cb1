// Package vna holds the Visual Name Authority person schema: the value
// objects every parser and crawler maps into, and the fixed CSV column
// order the dataset is exchanged in.
package vna

import (
	"strings"
)

// Name groups the personal name fields.
type Name struct {
	First string
	Last  string
	Full  string
	Alias string
}

// Event is a place/date pair for a life event such as birth or death.
// Dates are ISO formatted (YYYY-MM-DD) or free text when unknown.
type Event struct {
	Place string
	Date  string
}

// Identifier carries the external authority identifiers used in VNA.
type Identifier struct {
	URI      string
	Wikidata string
	ODIS     string
	RKD      string
	DBNL     string
	VIAF     string
	ISNI     string
}

// Person is the aggregate record exported to the VNA CSV.
type Person struct {
	ID         string
	Name       Name
	Birth      Event
	Death      Event
	Occupation string
	// Picture is a comma-separated list of picture filenames or URIs.
	Picture    string
	Identifier Identifier
}

// Row returns the person's fields in the standard VNA column order,
// matching Header.
func (p Person) Row() []string {
	return []string{
		p.Identifier.URI, p.ID, p.Name.Full, p.Name.First,
		p.Name.Last, p.Name.Alias, p.Birth.Place, p.Birth.Date,
		p.Death.Place, p.Death.Date, p.Occupation, p.Identifier.DBNL,
		p.Identifier.ODIS, p.Identifier.Wikidata, p.Identifier.VIAF,
		p.Identifier.RKD, p.Identifier.ISNI, p.Picture,
	}
}

// Header is the VNA column order. The Dutch labels are part of the
// dataset's exchange format and must not be translated.
func Header() []string {
	return []string{
		"URI", "ID", "volledige naam", "voornaam", "achternaam", "alias",
		"geboorteplaats", "geboortedatum", "sterfplaats", "sterfdatum",
		"beroep", "DBNL ID", "ODIS ID", "Wikidata ID", "VIAF ID",
		"RKD ID", "ISNI ID", "foto",
	}
}

// WikidataID extracts the QID from a Wikidata entity URL, e.g.
// "https://www.wikidata.org/wiki/Q42" -> "Q42".
func WikidataID(url string) string {
	segments := strings.Split(url, "/")
	return segments[len(segments)-1]
}

// DBNLID extracts the author id from a DBNL URL's trailing "id=" query
// parameter, e.g. ".../auteur.php?id=mult002" -> "mult002".
func DBNLID(url string) string {
	segments := strings.Split(url, "=")
	return segments[len(segments)-1]
}

// VIAFID extracts the numeric id from a VIAF URL; anything non-numeric
// yields an empty string.
func VIAFID(url string) string {
	segments := strings.Split(strings.TrimRight(strings.TrimSpace(url), "/"), "/")
	id := strings.TrimSpace(segments[len(segments)-1])
	if id == "" {
		return ""
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return id
}
