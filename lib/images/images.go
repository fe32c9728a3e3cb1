// Package images downloads images referenced by direct URL in a CSV,
// one file per row named after the row's URI.
package images

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("vna.lib.images")

type Options struct {
	// column that holds the direct image url
	PhotoColumn string
	// column whose last path segment names the output file
	URIColumn string
	OutputDir string
	// wait between successful downloads, 0 disables it
	Delay time.Duration
}

func DefaultOptions(outputDir string) Options {
	return Options{
		PhotoColumn: "foto",
		URIColumn:   "uri",
		OutputDir:   outputDir,
		Delay:       time.Second * 2,
	}
}

type Downloader struct {
	http *resty.Client
	opts Options
}

func NewDownloader(http *resty.Client, opts Options) Downloader {
	return Downloader{http: http, opts: opts}
}

func (d Downloader) fetch(ctx context.Context, url, filename string) error {
	res, err := d.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return err
	}
	if res.StatusCode() >= 400 {
		return fmt.Errorf("fetch %s: status %d", url, res.StatusCode())
	}
	return os.WriteFile(filename, res.Body(), 0600)
}

// Run walks the CSV row by row. Rows without a photo url and rows whose
// target file already exists are skipped, failed downloads are logged
// and the walk continues.
func (d Downloader) Run(ctx context.Context, in io.Reader) error {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	err := os.MkdirAll(d.opts.OutputDir, 0777)
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

	photoCol, uriCol := -1, -1
	for i, name := range header {
		switch name {
		case d.opts.PhotoColumn:
			photoCol = i
		case d.opts.URIColumn:
			uriCol = i
		}
	}
	if photoCol < 0 || uriCol < 0 {
		return fmt.Errorf(
			"input is missing a %q or %q column",
			d.opts.PhotoColumn, d.opts.URIColumn,
		)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if photoCol >= len(row) || uriCol >= len(row) {
			continue
		}

		uri := row[uriCol]
		imageID := uri[strings.LastIndex(uri, "/")+1:]
		url := row[photoCol]
		slog.InfoContext(ctx, "busy with image", "id", imageID)

		if url == "" {
			slog.InfoContext(ctx, "no picture", "id", imageID)
			continue
		}

		filename := filepath.Join(d.opts.OutputDir, imageID+".jpg")
		_, err = os.Stat(filename)
		if err == nil {
			slog.InfoContext(ctx, "image already exists", "filename", filename)
			continue
		}

		err = d.fetch(ctx, url, filename)
		if err != nil {
			slog.WarnContext(ctx, "download failed", "url", url, "err", err)
			continue
		}
		if d.opts.Delay > 0 {
			select {
			case <-time.After(d.opts.Delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
