// Package avg converts the Archief voor Vrouwengeschiedenis (AVG) EAC
// export into person records. Dates in the export are written out in
// French ("17 août 1834"), birth and death separated by a hyphen.
package avg

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"vna-etl/lib/textutil"
	"vna-etl/lib/vna"

	"github.com/beevik/etree"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("vna.lib.parsers.avg")

const (
	personTag     = "eac-cpf"
	fullNamePath  = "./cpfDescription/identity/nameEntry"
	aliasPath     = "./cpfDescription/identity/nameEntryParallel"
	datePath      = "./cpfDescription/description/existDates/dateRange"
	picturePath   = "./cpfDescription/relations/resourceRelation"
	pictureIDAttr = "id_carhif"
)

var frenchMonths = map[string]string{
	"janvier":   "01",
	"février":   "02",
	"mars":      "03",
	"avril":     "04",
	"mai":       "05",
	"juin":      "06",
	"juillet":   "07",
	"août":      "08",
	"septembre": "09",
	"octobre":   "10",
	"novembre":  "11",
	"décembre":  "12",
}

// formatDate turns a French "17 août 1834" date into ISO form. The raw
// text comes back unchanged when it does not fit that shape, so odd
// rows stay visible in the output instead of vanishing.
func formatDate(date string) string {
	parts := strings.Fields(date)
	if len(parts) != 3 {
		return date
	}
	month, ok := frenchMonths[strings.ToLower(parts[1])]
	if !ok {
		return date
	}
	day := parts[0]
	if len(day) == 1 {
		day = "0" + day
	}
	return fmt.Sprintf("%s-%s-%s", parts[2], month, day)
}

// parseDates splits a "birth - death" range on the hyphen. A lone date
// is a birth date.
func parseDates(person *vna.Person, text string) {
	dates := strings.SplitN(text, "-", 2)
	person.Birth.Date = formatDate(strings.TrimSpace(dates[0]))
	if len(dates) > 1 {
		person.Death.Date = formatDate(strings.TrimSpace(dates[1]))
	}
}

// parseAlias reads the parallel name entry, flipping "Last, First" into
// "First Last".
func parseAlias(person *vna.Person, entry *etree.Element) {
	if entry == nil {
		return
	}
	parts := strings.Split(entry.Text(), ",")
	if len(parts) > 1 {
		person.Name.Alias = fmt.Sprintf(
			"%s %s", strings.TrimSpace(parts[1]), strings.TrimSpace(parts[0]))
		return
	}
	person.Name.Alias = strings.TrimSpace(parts[0])
}

func parsePictures(person *vna.Person, relations []*etree.Element) {
	var ids strings.Builder
	for _, relation := range relations {
		id := relation.SelectAttrValue(pictureIDAttr, "")
		if id == "" {
			continue
		}
		ids.WriteString(strings.ReplaceAll(id, "/", "") + ",")
	}
	person.Picture = textutil.Beautify(ids.String())
}

// Parse reads the AVG export, one eac-cpf element per person. Records
// without a name entry are logged and skipped.
func Parse(ctx context.Context, data []byte) ([]vna.Person, error) {
	ctx, span := tracer.Start(ctx, "Parse")
	defer span.End()

	doc := etree.NewDocument()
	err := doc.ReadFromBytes(data)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("export has no root element")
	}

	var persons []vna.Person
	for _, record := range root.SelectElements(personTag) {
		person := vna.Person{}

		nameEntry := record.FindElement(fullNamePath)
		if nameEntry == nil {
			slog.WarnContext(ctx, "record has no name entry, skipping")
			continue
		}
		names := strings.Split(nameEntry.Text(), ",")
		if len(names) > 1 {
			person.Name.First = strings.TrimSpace(names[1])
			person.Name.Last = strings.TrimSpace(names[0])
			person.Name.Full = person.Name.First + " " + person.Name.Last
		} else {
			person.Name.Full = strings.TrimSpace(names[0])
		}

		parseAlias(&person, record.FindElement(aliasPath))

		if dates := record.FindElement(datePath); dates != nil {
			parseDates(&person, dates.Text())
		}

		parsePictures(&person, record.FindElements(picturePath))
		persons = append(persons, person)
	}
	return persons, nil
}
