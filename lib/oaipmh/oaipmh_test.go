package oaipmh

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestResumptionToken(t *testing.T) {
	require.Equal(t, "!!AUTHOR!300!492043!oai_dc", resumptionToken(300, 492043, "oai_dc"))
}

func TestIndentXML(t *testing.T) {
	out, err := indentXML([]byte(`<OAI-PMH><ListRecords><record>a</record></ListRecords></OAI-PMH>`))
	require.NoError(t, err)
	require.Contains(t, string(out), "\n  <ListRecords>")
}

func TestIndentXMLInvalid(t *testing.T) {
	_, err := indentXML([]byte(`<unclosed`))
	require.Error(t, err)
}

func TestHarvest(t *testing.T) {
	var tokens []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "ListRecords", r.URL.Query().Get("verb"))
		tokens = append(tokens, r.URL.Query().Get("resumptionToken"))
		fmt.Fprint(w, `<OAI-PMH><ListRecords><record>x</record></ListRecords></OAI-PMH>`)
	}))
	defer server.Close()

	dir := t.TempDir()
	harvester := NewHarvester(resty.New(), server.URL)
	err := harvester.Harvest(context.Background(), HarvestOptions{
		Total:     250,
		PageSize:  100,
		OutputDir: dir,
	})
	require.NoError(t, err)

	require.Equal(t, []string{
		"!!AUTHOR!0!250!oai_dc",
		"!!AUTHOR!100!250!oai_dc",
		"!!AUTHOR!200!250!oai_dc",
	}, tokens)

	for _, offset := range []int{0, 100, 200} {
		contents, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("kbr_oai_pmh_%d.xml", offset)))
		require.NoError(t, err)
		require.True(t, strings.Contains(string(contents), "<record>x</record>"))
	}
}

func TestHarvestServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	harvester := NewHarvester(resty.New(), server.URL)
	err := harvester.Harvest(context.Background(), HarvestOptions{
		Total:     100,
		OutputDir: t.TempDir(),
	})
	require.Error(t, err)
}
