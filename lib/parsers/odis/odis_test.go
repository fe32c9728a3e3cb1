package odis

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"vna-etl/lib/vna"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const agentJSON = `{
	"URL": "https://www.odis.be/lnk/PS_12345",
	"RUBRIEK": "PS",
	"ID": 12345,
	"OMSCHRIJVING": "Benoit, Peter",
	"STEEKKAART": [{
		"PS_NAMEN": [
			{"NAAMSOORT": "voornaam", "NAAM": "Peter "},
			{"NAAMSOORT": "voornaam", "NAAM": "Leonard"},
			{"NAAMSOORT": "familienaam", "NAAM": "Benoit"},
			{"NAAMSOORT": "familienaam", "NAAM": "Benoît"},
			{"NAAMSOORT": "pseudoniem", "NAAM": "De Vlaamse Meester"}
		],
		"PS_GEBOORTEPLAATS": "Harelbeke",
		"PS_GEBOORTEDATUM": "1834-08-17",
		"PS_OVERLIJDENSPLAATS": "Antwerpen",
		"PS_OVERLIJDENSDATUM": "1901-03-08",
		"PS_ILLUSTRATIES": [{"ID": 99}, {"ID": 100}],
		"PS_BIJLAGEN": [
			{"B_LINKTXT": "Virtual International Authority File (VIAF)", "B_URL": "https://viaf.org/viaf/61732497/"},
			{"B_LINKTXT": "Wikidata", "B_URL": "https://www.wikidata.org/wiki/Q380710"},
			{"B_LINKTXT": "Digitale Bibliotheek voor de Nederlandse Letteren ", "B_URL": "https://www.dbnl.org/auteurs/auteur.php?id=beno001"}
		]
	}]
}`

func TestParseAgent(t *testing.T) {
	person, err := ParseAgent(json.RawMessage(agentJSON))
	require.NoError(t, err)

	expected := vna.Person{
		Name: vna.Name{
			First: "Peter Leonard",
			Last:  "Benoit",
			Full:  "Benoit, Peter",
			Alias: "De Vlaamse Meester, Benoît",
		},
		Birth:   vna.Event{Place: "Harelbeke", Date: "1834-08-17"},
		Death:   vna.Event{Place: "Antwerpen", Date: "1901-03-08"},
		Picture: "ID: 99, ID: 100",
		Identifier: vna.Identifier{
			URI:      "https://www.odis.be/lnk/PS_12345",
			ODIS:     "PS_12345",
			VIAF:     "61732497",
			Wikidata: "Q380710",
			DBNL:     "beno001",
		},
	}
	require.Empty(t, cmp.Diff(expected, person))
}

func TestParseAgentNoNames(t *testing.T) {
	person, err := ParseAgent(json.RawMessage(`{
		"URL": "https://www.odis.be/lnk/PS_1",
		"RUBRIEK": "PS",
		"ID": 1,
		"OMSCHRIJVING": "Onbekend persoon",
		"STEEKKAART": [{"PS_NAMEN": []}]
	}`))
	require.NoError(t, err)
	require.Equal(t, "Onbekend persoon", person.Name.Full)
	require.Empty(t, person.Name.Last)
}

func TestParse(t *testing.T) {
	input := "[" + agentJSON + `, {"URL": "https://www.odis.be/lnk/PS_2", "RUBRIEK": "PS", "ID": 2, "OMSCHRIJVING": "X"}]`
	persons, err := Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, persons, 2)
	require.Equal(t, "PS_12345", persons[0].Identifier.ODIS)
	require.Equal(t, "PS_2", persons[1].Identifier.ODIS)
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse(context.Background(), strings.NewReader("{not json"))
	require.Error(t, err)
}
