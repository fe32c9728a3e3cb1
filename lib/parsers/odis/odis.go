// Package odis converts ODIS agent exports (JSON) into person records.
package odis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"vna-etl/lib/textutil"
	"vna-etl/lib/vna"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("vna.lib.parsers.odis")

const (
	authorityVIAF     = "Virtual International Authority File (VIAF)"
	authorityWikidata = "Wikidata"
	authorityDBNL     = "Digitale Bibliotheek voor de Nederlandse Letteren"
)

type agentName struct {
	Kind string `json:"NAAMSOORT"`
	Name string `json:"NAAM"`
}

type agentIllustration struct {
	ID json.Number `json:"ID"`
}

type agentAttachment struct {
	LinkText string `json:"B_LINKTXT"`
	URL      string `json:"B_URL"`
}

type agentCard struct {
	Names         []agentName         `json:"PS_NAMEN"`
	BirthPlace    string              `json:"PS_GEBOORTEPLAATS"`
	BirthDate     string              `json:"PS_GEBOORTEDATUM"`
	DeathPlace    string              `json:"PS_OVERLIJDENSPLAATS"`
	DeathDate     string              `json:"PS_OVERLIJDENSDATUM"`
	Illustrations []agentIllustration `json:"PS_ILLUSTRATIES"`
	Attachments   []agentAttachment   `json:"PS_BIJLAGEN"`
}

type agent struct {
	URL         string      `json:"URL"`
	Rubriek     string      `json:"RUBRIEK"`
	ID          json.Number `json:"ID"`
	Description string      `json:"OMSCHRIJVING"`
	Cards       []agentCard `json:"STEEKKAART"`
}

// parseNames maps ODIS name parts onto the person's name fields. Name
// kinds containing "voornaam" build the first name, the first
// "familienaam" becomes the last name and everything else lands in the
// alias list.
func parseNames(person *vna.Person, names []agentName) {
	var lastnames []string
	for _, name := range names {
		value := strings.TrimRight(name.Name, " ")
		if value == "" {
			continue
		}
		switch {
		case strings.Contains(name.Kind, "voornaam"):
			person.Name.First += value + " "
		case strings.Contains(name.Kind, "familienaam"):
			lastnames = append(lastnames, value)
		default:
			person.Name.Alias += value + ", "
		}
	}

	if len(lastnames) > 0 {
		person.Name.Last = lastnames[0]
		for _, extra := range lastnames[1:] {
			person.Name.Alias += extra + ", "
		}
	}

	person.Name.First = textutil.Beautify(person.Name.First)
	person.Name.Alias = textutil.Beautify(person.Name.Alias)
}

func parseAuthorities(person *vna.Person, attachments []agentAttachment) {
	for _, attachment := range attachments {
		switch strings.TrimSpace(attachment.LinkText) {
		case authorityVIAF:
			person.Identifier.VIAF = vna.VIAFID(attachment.URL)
		case authorityWikidata:
			person.Identifier.Wikidata = vna.WikidataID(attachment.URL)
		case authorityDBNL:
			person.Identifier.DBNL = vna.DBNLID(attachment.URL)
		}
	}
}

// ParseAgent builds a person from a single ODIS agent record.
func ParseAgent(raw json.RawMessage) (vna.Person, error) {
	var a agent
	err := json.Unmarshal(raw, &a)
	if err != nil {
		return vna.Person{}, err
	}

	person := vna.Person{}
	person.Identifier.URI = a.URL
	person.Identifier.ODIS = fmt.Sprintf("%s_%s", a.Rubriek, a.ID)
	person.Name.Full = a.Description

	for _, card := range a.Cards {
		parseNames(&person, card.Names)

		person.Birth = vna.Event{Place: card.BirthPlace, Date: card.BirthDate}
		person.Death = vna.Event{Place: card.DeathPlace, Date: card.DeathDate}

		if len(card.Illustrations) > 0 {
			var pictures strings.Builder
			pictures.WriteString(person.Picture)
			for _, illustration := range card.Illustrations {
				pictures.WriteString(fmt.Sprintf("ID: %s, ", illustration.ID))
			}
			person.Picture = textutil.Beautify(pictures.String())
		}

		parseAuthorities(&person, card.Attachments)
	}

	return person, nil
}

// Parse reads a full ODIS export, a JSON array of agent records.
// Records that fail to parse are logged and skipped.
func Parse(ctx context.Context, in io.Reader) ([]vna.Person, error) {
	_, span := tracer.Start(ctx, "Parse")
	defer span.End()

	var records []json.RawMessage
	err := json.NewDecoder(in).Decode(&records)
	if err != nil {
		return nil, err
	}

	var persons []vna.Person
	for _, record := range records {
		person, err := ParseAgent(record)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse agent record", "err", err)
			continue
		}
		slog.DebugContext(ctx, "parsed agent", "odis", person.Identifier.ODIS)
		persons = append(persons, person)
	}
	return persons, nil
}
