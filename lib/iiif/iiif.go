// Package iiif resolves image URLs from IIIF Presentation API v3
// manifests and downloads the referenced images.
package iiif

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

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("vna.lib.iiif")

const failedMarker = "FAILED!"

type manifest struct {
	Items []struct {
		Items []struct {
			Items []struct {
				Body struct {
					ID string `json:"id"`
				} `json:"body"`
			} `json:"items"`
		} `json:"items"`
	} `json:"items"`
}

// ImageURLs walks items[].items[].items[].body.id through a decoded
// Presentation v3 manifest, the same path a painting annotation body
// sits at on single-image canvases.
func ImageURLs(manifestJSON []byte) ([]string, error) {
	var m manifest
	err := json.Unmarshal(manifestJSON, &m)
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, canvas := range m.Items {
		for _, page := range canvas.Items {
			for _, annotation := range page.Items {
				if annotation.Body.ID != "" {
					urls = append(urls, annotation.Body.ID)
				}
			}
		}
	}
	return urls, nil
}

// Filename derives the output filename from a manifest URL, the
// second-to-last path segment plus a jpg extension.
func Filename(manifestURL string) string {
	segments := strings.Split(strings.TrimRight(manifestURL, "/"), "/")
	if len(segments) < 2 {
		return failedMarker
	}
	return segments[len(segments)-2] + ".jpg"
}

type Downloader struct {
	http *resty.Client
}

func NewDownloader(http *resty.Client) Downloader {
	return Downloader{http: http}
}

// FetchImage resolves the first image body of a manifest and downloads
// it into dir under the derived filename.
func (d Downloader) FetchImage(ctx context.Context, manifestURL string, dir string) (string, error) {
	ctx, span := tracer.Start(ctx, "FetchImage")
	defer span.End()

	res, err := d.http.R().SetContext(ctx).Get(manifestURL)
	if err != nil {
		return "", err
	}
	if res.StatusCode() >= 400 {
		return "", fmt.Errorf("fetch manifest %s: status %d", manifestURL, res.StatusCode())
	}

	urls, err := ImageURLs(res.Body())
	if err != nil {
		return "", err
	}
	if len(urls) == 0 {
		return "", fmt.Errorf("manifest %s has no image bodies", manifestURL)
	}

	image, err := d.http.R().SetContext(ctx).Get(urls[0])
	if err != nil {
		return "", err
	}
	if image.StatusCode() >= 400 {
		return "", fmt.Errorf("fetch image %s: status %d", urls[0], image.StatusCode())
	}

	filename := Filename(manifestURL)
	err = os.WriteFile(filepath.Join(dir, filename), image.Body(), 0600)
	if err != nil {
		return "", err
	}
	return filename, nil
}

// FetchAll reads manifest URLs from the named column of a CSV and
// downloads each referenced image. The results CSV maps every manifest
// to the downloaded filename, or to FAILED! when the download did not
// succeed.
func (d Downloader) FetchAll(ctx context.Context, in io.Reader, manifestColumn string, dir string, results io.Writer) error {
	ctx, span := tracer.Start(ctx, "FetchAll")
	defer span.End()

	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return err
	}

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	column := -1
	for i, name := range header {
		if name == manifestColumn {
			column = i
			break
		}
	}
	if column < 0 {
		return fmt.Errorf("input is missing a %q column", manifestColumn)
	}

	writer := csv.NewWriter(results)
	defer writer.Flush()

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return writer.Error()
		}
		if err != nil {
			return err
		}
		if column >= len(row) || row[column] == "" {
			err = writer.Write([]string{"", ""})
			if err != nil {
				return err
			}
			continue
		}

		manifestURL := row[column]
		filename, err := d.FetchImage(ctx, manifestURL, dir)
		if err != nil {
			slog.ErrorContext(ctx, "failed to fetch image", "manifest", manifestURL, "err", err)
			filename = failedMarker
		}
		err = writer.Write([]string{manifestURL, filename})
		if err != nil {
			return err
		}
	}
}
