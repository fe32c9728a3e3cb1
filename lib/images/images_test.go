package images

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if strings.Contains(r.URL.Path, "broken") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "image-bytes")
	}))
	defer server.Close()

	dir := t.TempDir()
	existing := filepath.Join(dir, "p3.jpg")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0600))

	input := strings.Join([]string{
		"uri,foto",
		fmt.Sprintf("https://id.example.org/person/p1,%s/pics/a.jpg", server.URL),
		"https://id.example.org/person/p2,",
		fmt.Sprintf("https://id.example.org/person/p3,%s/pics/b.jpg", server.URL),
		fmt.Sprintf("https://id.example.org/person/p4,%s/broken.jpg", server.URL),
	}, "\n")

	opts := DefaultOptions(dir)
	opts.Delay = 0
	downloader := NewDownloader(resty.New(), opts)
	err := downloader.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, "p1.jpg"))
	require.NoError(t, err)
	require.Equal(t, "image-bytes", string(contents))

	// empty url and existing file are skipped without a request
	_, err = os.Stat(filepath.Join(dir, "p2.jpg"))
	require.True(t, os.IsNotExist(err))
	contents, err = os.ReadFile(existing)
	require.NoError(t, err)
	require.Equal(t, "old", string(contents))

	// failed download leaves no file behind
	_, err = os.Stat(filepath.Join(dir, "p4.jpg"))
	require.True(t, os.IsNotExist(err))

	require.Equal(t, int64(2), requests.Load())
}

func TestRunMissingColumns(t *testing.T) {
	downloader := NewDownloader(resty.New(), DefaultOptions(t.TempDir()))
	err := downloader.Run(context.Background(), strings.NewReader("naam\nx\n"))
	require.Error(t, err)
}

func TestRunEmptyInput(t *testing.T) {
	downloader := NewDownloader(resty.New(), DefaultOptions(t.TempDir()))
	err := downloader.Run(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
}
