package iiif

import (
	"bytes"
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

const manifestJSON = `{
	"items": [{
		"items": [{
			"items": [{
				"body": {"id": "https://iiif.example.org/image/abc/full/max/0/default.jpg"}
			}]
		}]
	}]
}`

func TestImageURLs(t *testing.T) {
	urls, err := ImageURLs([]byte(manifestJSON))
	require.NoError(t, err)
	require.Equal(t, []string{"https://iiif.example.org/image/abc/full/max/0/default.jpg"}, urls)
}

func TestImageURLsEmpty(t *testing.T) {
	urls, err := ImageURLs([]byte(`{"items": []}`))
	require.NoError(t, err)
	require.Empty(t, urls)
}

func TestFilename(t *testing.T) {
	testCases := []struct {
		url      string
		expected string
	}{
		{"https://example.org/iiif/abc123/manifest", "abc123.jpg"},
		{"https://example.org/iiif/abc123/manifest/", "abc123.jpg"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, Filename(tc.url))
	}
}

func TestFetchAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/manifest") {
			id := strings.Split(r.URL.Path, "/")[1]
			fmt.Fprintf(w, `{
				"items": [{"items": [{"items": [{
					"body": {"id": "http://%s/%s/image.jpg"}
				}]}]}]
			}`, r.Host, id)
			return
		}
		fmt.Fprint(w, "image-bytes")
	}))
	defer server.Close()

	input := strings.Join([]string{
		"volledige naam,manifest",
		fmt.Sprintf("Peter Benoit,%s/benoit/manifest", server.URL),
		"Geen Manifest,",
	}, "\n")

	dir := t.TempDir()
	var results bytes.Buffer
	downloader := NewDownloader(resty.New())
	err := downloader.FetchAll(context.Background(), strings.NewReader(input), "manifest", dir, &results)
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, "benoit.jpg"))
	require.NoError(t, err)
	require.Equal(t, "image-bytes", string(contents))

	lines := strings.Split(strings.TrimSpace(results.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "benoit.jpg")
	require.Equal(t, ",", lines[1])
}

func TestFetchAllFailedDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	input := "manifest\n" + server.URL + "/gone/manifest\n"
	var results bytes.Buffer
	downloader := NewDownloader(resty.New())
	err := downloader.FetchAll(context.Background(), strings.NewReader(input), "manifest", t.TempDir(), &results)
	require.NoError(t, err)
	require.Contains(t, results.String(), "FAILED!")
}

func TestFetchAllMissingColumn(t *testing.T) {
	downloader := NewDownloader(resty.New())
	err := downloader.FetchAll(
		context.Background(),
		strings.NewReader("naam\nx\n"),
		"manifest", t.TempDir(), &bytes.Buffer{},
	)
	require.Error(t, err)
}
