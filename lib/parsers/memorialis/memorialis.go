// Package memorialis converts UGent Memorialis catalog documents (JSON,
// one file per professor) into person records.
package memorialis

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"vna-etl/lib/textutil"
	"vna-etl/lib/vna"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("vna.lib.parsers.memorialis")

const (
	catalogURL    = "https://www.ugentmemorialis.be/catalog/%s"
	authorityVIAF = "Virtual International Authority File"
)

type document struct {
	ID                string   `json:"_id"`
	Names             []string `json:"title_t"`
	Birth             []string `json:"birth_date_display"`
	Death             []string `json:"death_date_display"`
	Occupations       []string `json:"mandate_facet"`
	Thumbnails        []string `json:"thumbnail_display"`
	ThumbnailLinkURLs []string `json:"thumbnail_link_url_display"`
	ThumbnailURLs     []string `json:"thumbnail_url_display"`
	Links             []string `json:"link_display"`
}

type record struct {
	Response struct {
		Document document `json:"document"`
	} `json:"response"`
}

// parseNames maps the title entries onto the name fields. The first
// entry is the canonical "Last, First" form, the rest become aliases.
func parseNames(person *vna.Person, names []string) {
	if len(names) == 0 {
		return
	}
	parts := strings.Split(names[0], ",")
	if len(parts) > 1 {
		person.Name.First = strings.TrimSpace(parts[1])
	}
	person.Name.Last = strings.TrimSpace(parts[0])
	person.Name.Full = strings.TrimSpace(
		person.Name.First + " " + person.Name.Last)

	var aliases strings.Builder
	for _, name := range names[1:] {
		if parts := strings.Split(name, ","); len(parts) > 1 {
			aliases.WriteString(fmt.Sprintf(
				"%s %s, ", strings.TrimSpace(parts[1]), strings.TrimSpace(parts[0])))
		} else {
			aliases.WriteString(name + ", ")
		}
	}
	person.Name.Alias = textutil.Beautify(aliases.String())
}

// parseEvent splits entries like "Gent, 1884" into place and date. The
// catalog only records years, so a trailing all-digit segment is the
// date and everything before it the place.
func parseEvent(text string) vna.Event {
	if !strings.Contains(text, ",") {
		if isDigits(text) {
			return vna.Event{Date: text}
		}
		return vna.Event{Place: text}
	}

	parts := strings.Split(text, ",")
	last := strings.TrimSpace(parts[len(parts)-1])
	if isDigits(last) {
		return vna.Event{Date: last, Place: joinPlace(parts[:len(parts)-1])}
	}
	return vna.Event{Place: joinPlace(parts)}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func joinPlace(parts []string) string {
	var place strings.Builder
	for _, part := range parts {
		place.WriteString(strings.TrimSpace(part) + ", ")
	}
	return textutil.Beautify(place.String())
}

// parsePicture keeps the last plain jpg among the document's thumbnail
// fields. The link variants often point at pdf scans, those are noise.
func parsePicture(person *vna.Person, doc document) {
	var urls []string
	switch {
	case len(doc.Thumbnails) > 0:
		urls = doc.Thumbnails
	case len(doc.ThumbnailLinkURLs) > 0:
		urls = doc.ThumbnailLinkURLs
	case len(doc.ThumbnailURLs) > 0:
		urls = doc.ThumbnailURLs
	}
	for _, url := range urls {
		if strings.HasSuffix(url, ".jpg") && !strings.Contains(url, ".pdf") {
			person.Picture = url
		}
	}
}

func parseAuthorities(person *vna.Person, links []string) {
	for _, link := range links {
		parts := strings.Split(link, "]")
		if len(parts) > 1 && strings.Contains(parts[0], authorityVIAF) {
			person.Identifier.VIAF = vna.VIAFID(parts[1])
		}
	}
}

// Parse builds a person from a single catalog document. The qids map
// (see ReadQIDs) links catalog ids to Wikidata; a nil map is fine.
func Parse(data []byte, qids map[string]string) (vna.Person, error) {
	var rec record
	err := json.Unmarshal(data, &rec)
	if err != nil {
		return vna.Person{}, err
	}
	doc := rec.Response.Document

	person := vna.Person{ID: doc.ID}
	person.Identifier.URI = fmt.Sprintf(catalogURL, doc.ID)
	parseNames(&person, doc.Names)
	parsePicture(&person, doc)

	var occupations strings.Builder
	for _, occupation := range doc.Occupations {
		occupations.WriteString(strings.TrimSpace(occupation) + ", ")
	}
	person.Occupation = textutil.Beautify(occupations.String())

	if len(doc.Birth) > 0 {
		person.Birth = parseEvent(doc.Birth[0])
	}
	if len(doc.Death) > 0 {
		person.Death = parseEvent(doc.Death[0])
	}

	parseAuthorities(&person, doc.Links)

	if qid, ok := qids[person.ID]; ok {
		person.Identifier.Wikidata = qid
	}
	return person, nil
}

// ReadQIDs loads the id to Wikidata QID mapping, a CSV with "id" and
// "QID" columns.
func ReadQIDs(in io.Reader) (map[string]string, error) {
	rows, err := csv.NewReader(in).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("mapping is empty")
	}

	idColumn, qidColumn := -1, -1
	for i, name := range rows[0] {
		switch name {
		case "id":
			idColumn = i
		case "QID":
			qidColumn = i
		}
	}
	if idColumn < 0 || qidColumn < 0 {
		return nil, fmt.Errorf("mapping needs id and QID columns, got %v", rows[0])
	}

	qids := make(map[string]string, len(rows)-1)
	for _, row := range rows[1:] {
		qids[row[idColumn]] = row[qidColumn]
	}
	return qids, nil
}

// ParseDir parses every .json document in dir. Files that fail to
// parse are logged and skipped.
func ParseDir(ctx context.Context, dir string, qids map[string]string) ([]vna.Person, error) {
	ctx, span := tracer.Start(ctx, "ParseDir")
	defer span.End()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var persons []vna.Person
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		person, err := Parse(data, qids)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse document", "path", path, "err", err)
			continue
		}
		slog.DebugContext(ctx, "parsed document", "id", person.ID)
		persons = append(persons, person)
	}
	return persons, nil
}
