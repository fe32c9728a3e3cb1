// Package letterenhuis converts Letterenhuis agent XML exports into
// person records. Only agent_person documents carry person data, other
// document kinds are skipped.
package letterenhuis

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"vna-etl/lib/textutil"
	"vna-etl/lib/vna"

	"github.com/beevik/etree"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("vna.lib.parsers.letterenhuis")

func findText(el *etree.Element, path string) string {
	found := el.FindElement(path)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.Text())
}

// parseNames fills in the person's name from the Names entries. The
// entry without a Qualifier is the primary name, a Suffix rides along
// with the first name. Qualified entries become comma-joined aliases.
func parseNames(person *vna.Person, root *etree.Element) {
	var aliases []string
	for _, name := range root.SelectElements("Names") {
		first := findText(name, "RestOfName")
		last := findText(name, "PrimaryName")
		suffix := findText(name, "Suffix")

		if findText(name, "Qualifier") == "" {
			person.Name.First = first
			person.Name.Last = last
			if suffix != "" {
				person.Name.First += " " + suffix
			}
			continue
		}

		alias := first
		if suffix != "" {
			alias += " " + suffix
		}
		if last != "" {
			alias += " " + last
		}
		alias = strings.TrimSpace(alias)
		if alias != "" {
			aliases = append(aliases, alias)
		}
	}
	person.Name.Alias = strings.Join(aliases, ",")
}

// parseDates reads DatesOfExistence, either a StructuredDateRange with
// begin/end or a StructuredDateSingle tagged with a begin or end role.
func parseDates(person *vna.Person, root *etree.Element) {
	dates := root.FindElement("DatesOfExistence")
	if dates == nil {
		return
	}

	if dateRange := dates.FindElement("StructuredDateRange"); dateRange != nil {
		if birth := findText(dateRange, "BeginDateStandardized"); birth != "" {
			person.Birth.Date = birth
		}
		if death := findText(dateRange, "EndDateStandardized"); death != "" {
			person.Death.Date = death
		}
		return
	}

	if single := dates.FindElement("StructuredDateSingle"); single != nil {
		date := findText(single, "DateStandardized")
		switch findText(single, "DateRole") {
		case "begin":
			person.Birth.Date = date
		case "end":
			person.Death.Date = date
		}
	}
}

func parsePlaces(person *vna.Person, root *etree.Element) {
	for _, place := range root.SelectElements("AgentPlaces") {
		ref := findText(place, "Subjects/Ref")
		switch findText(place, "PlaceRole") {
		case "place_of_birth":
			person.Birth.Place = ref
		case "place_of_death":
			person.Death.Place = ref
		}
	}
}

func parseOccupations(person *vna.Person, root *etree.Element) {
	var notes []string
	for _, occupation := range root.SelectElements("AgentOccupations") {
		note := findText(occupation, "Notes/Content/String")
		if note != "" {
			notes = append(notes, note)
		}
	}
	occupation := strings.Join(notes, ",")
	// exports embed literal \r\n escapes between multi-line notes
	person.Occupation = strings.ReplaceAll(occupation, `\r\n`, ",")
}

// findID pulls the external identifier out of a reference url, the
// query value for id= style links, the last path segment otherwise.
func findID(value string) string {
	if strings.Contains(value, "?") {
		return value[strings.LastIndex(value, "=")+1:]
	}
	return value[strings.LastIndex(value, "/")+1:]
}

func parseExternalDocuments(person *vna.Person, root *etree.Element) {
	for _, doc := range root.SelectElements("ExternalDocuments") {
		title := findText(doc, "Title")
		location := findText(doc, "Location")

		if strings.Contains(title, "dams.antwerpen.be") {
			person.Picture = location
			continue
		}

		id := findID(location)
		switch title {
		case "dbnl":
			person.Identifier.DBNL = id
		case "odis":
			person.Identifier.ODIS = id
		case "wikidata":
			person.Identifier.Wikidata = id
		case "viaf":
			person.Identifier.VIAF = id
		case "rkd":
			person.Identifier.RKD = id
		}
	}
}

// Parse reads one agent XML document. ok is false for documents that
// are not agent_person records.
func Parse(data []byte) (person vna.Person, ok bool, err error) {
	doc := etree.NewDocument()
	err = doc.ReadFromBytes(data)
	if err != nil {
		return vna.Person{}, false, err
	}
	root := doc.Root()
	if root == nil || findText(root, "JsonmodelType") != "agent_person" {
		return vna.Person{}, false, nil
	}

	parseNames(&person, root)
	parseDates(&person, root)
	parsePlaces(&person, root)
	parseOccupations(&person, root)
	person.Identifier.URI = findText(root, "URI")
	parseExternalDocuments(&person, root)

	person.Name.Alias = textutil.Beautify(person.Name.Alias)
	person.Occupation = textutil.Beautify(person.Occupation)
	return person, true, nil
}

// ParseDir parses every .xml file in a directory. Unreadable or
// malformed files are logged and skipped.
func ParseDir(ctx context.Context, dir string) ([]vna.Person, error) {
	_, span := tracer.Start(ctx, "ParseDir")
	defer span.End()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var persons []vna.Person
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".xml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		slog.InfoContext(ctx, "parsing agent file", "file", entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			slog.ErrorContext(ctx, "failed to read agent file", "file", path, "err", err)
			continue
		}
		person, ok, err := Parse(data)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse agent file", "file", path, "err", err)
			continue
		}
		if !ok {
			slog.DebugContext(ctx, "skipping non-person document", "file", path)
			continue
		}
		persons = append(persons, person)
	}
	return persons, nil
}
