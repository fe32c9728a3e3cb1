package letterenhuis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vna-etl/lib/vna"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const agentXML = `<?xml version="1.0" encoding="utf-8"?>
<Agent>
	<JsonmodelType>agent_person</JsonmodelType>
	<URI>/agents/people/123</URI>
	<Names>
		<Qualifier></Qualifier>
		<PrimaryName>Timmermans</PrimaryName>
		<RestOfName>Felix</RestOfName>
		<Suffix>sr.</Suffix>
	</Names>
	<Names>
		<Qualifier>pseudoniem</Qualifier>
		<PrimaryName>Polleke</PrimaryName>
		<RestOfName>Van Mierlo</RestOfName>
		<Suffix></Suffix>
	</Names>
	<DatesOfExistence>
		<StructuredDateRange>
			<BeginDateStandardized>1886-07-05</BeginDateStandardized>
			<EndDateStandardized>1947-01-24</EndDateStandardized>
		</StructuredDateRange>
	</DatesOfExistence>
	<AgentPlaces>
		<PlaceRole>place_of_birth</PlaceRole>
		<Subjects><Ref>Lier</Ref></Subjects>
	</AgentPlaces>
	<AgentPlaces>
		<PlaceRole>place_of_death</PlaceRole>
		<Subjects><Ref>Lier</Ref></Subjects>
	</AgentPlaces>
	<AgentOccupations>
		<Notes><Content><String>schrijver</String></Content></Notes>
	</AgentOccupations>
	<AgentOccupations>
		<Notes><Content><String>schilder</String></Content></Notes>
	</AgentOccupations>
	<ExternalDocuments>
		<Title>dbnl</Title>
		<Location>https://www.dbnl.org/auteurs/auteur.php?id=timm003</Location>
	</ExternalDocuments>
	<ExternalDocuments>
		<Title>viaf</Title>
		<Location>https://viaf.org/viaf/64057582</Location>
	</ExternalDocuments>
	<ExternalDocuments>
		<Title>foto dams.antwerpen.be</Title>
		<Location>https://dams.antwerpen.be/asset/abc.jpg</Location>
	</ExternalDocuments>
</Agent>`

func TestParse(t *testing.T) {
	person, ok, err := Parse([]byte(agentXML))
	require.NoError(t, err)
	require.True(t, ok)

	expected := vna.Person{
		Name: vna.Name{
			First: "Felix sr.",
			Last:  "Timmermans",
			Alias: "Van Mierlo Polleke",
		},
		Birth:      vna.Event{Place: "Lier", Date: "1886-07-05"},
		Death:      vna.Event{Place: "Lier", Date: "1947-01-24"},
		Occupation: "schrijver,schilder",
		Picture:    "https://dams.antwerpen.be/asset/abc.jpg",
		Identifier: vna.Identifier{
			URI:  "/agents/people/123",
			DBNL: "timm003",
			VIAF: "64057582",
		},
	}
	require.Empty(t, cmp.Diff(expected, person))
}

func TestParseSingleDate(t *testing.T) {
	person, ok, err := Parse([]byte(`<Agent>
		<JsonmodelType>agent_person</JsonmodelType>
		<DatesOfExistence>
			<StructuredDateSingle>
				<DateStandardized>1901-03-08</DateStandardized>
				<DateRole>end</DateRole>
			</StructuredDateSingle>
		</DatesOfExistence>
	</Agent>`))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1901-03-08", person.Death.Date)
	require.Empty(t, person.Birth.Date)
}

func TestParseNonPerson(t *testing.T) {
	_, ok, err := Parse([]byte(`<Agent><JsonmodelType>agent_corporate_entity</JsonmodelType></Agent>`))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestParseInvalidXML(t *testing.T) {
	_, _, err := Parse([]byte(`<unclosed`))
	require.Error(t, err)
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.xml"), []byte(agentXML), 0600))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "b.xml"),
		[]byte(`<Agent><JsonmodelType>agent_corporate_entity</JsonmodelType></Agent>`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0600))

	persons, err := ParseDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, persons, 1)
	require.Equal(t, "Timmermans", persons[0].Name.Last)
}
