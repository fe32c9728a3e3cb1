// Package commons talks to the Wikimedia Commons MediaWiki API to list
// category members, resolve file download URLs and fetch page wikitext.
package commons

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("vna.lib.scrapers.commons")

const DefaultEndpoint = "https://commons.wikimedia.org/w/api.php"

const filePrefix = "File:"

type Client struct {
	http     *resty.Client
	endpoint string
}

func NewClient(http *resty.Client) Client {
	return Client{http: http, endpoint: DefaultEndpoint}
}

func NewClientWithEndpoint(http *resty.Client, endpoint string) Client {
	return Client{http: http, endpoint: endpoint}
}

type categoryMembersResponse struct {
	Continue struct {
		CmContinue string `json:"cmcontinue"`
	} `json:"continue"`
	Query struct {
		CategoryMembers []struct {
			Title string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
}

// ListCategoryFiles returns the titles of all "File:" pages directly in
// a category, without the prefix. Subcategories are not traversed.
func (c Client) ListCategoryFiles(ctx context.Context, category string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "ListCategoryFiles")
	defer span.End()

	var titles []string
	cmcontinue := ""
	for {
		req := c.http.R().SetContext(ctx).
			SetQueryParams(map[string]string{
				"action":  "query",
				"format":  "json",
				"list":    "categorymembers",
				"cmtitle": "Category:" + category,
				"cmtype":  "file",
				"cmlimit": "500",
			})
		if cmcontinue != "" {
			req.SetQueryParam("cmcontinue", cmcontinue)
		}
		res, err := req.Get(c.endpoint)
		if err != nil {
			return nil, err
		}

		var body categoryMembersResponse
		err = json.Unmarshal(res.Body(), &body)
		if err != nil {
			return nil, err
		}
		for _, member := range body.Query.CategoryMembers {
			titles = append(titles, strings.TrimPrefix(member.Title, filePrefix))
		}

		cmcontinue = body.Continue.CmContinue
		if cmcontinue == "" {
			return titles, nil
		}
	}
}

type imageInfoResponse struct {
	Query struct {
		Pages map[string]struct {
			ImageInfo []struct {
				URL string `json:"url"`
			} `json:"imageinfo"`
		} `json:"pages"`
	} `json:"query"`
}

// FileURL resolves the direct download url for a Commons file title
// (without the "File:" prefix).
func (c Client) FileURL(ctx context.Context, title string) (string, error) {
	res, err := c.http.R().SetContext(ctx).
		SetQueryParams(map[string]string{
			"action": "query",
			"format": "json",
			"titles": filePrefix + title,
			"prop":   "imageinfo",
			"iiprop": "url",
		}).
		Get(c.endpoint)
	if err != nil {
		return "", err
	}

	var body imageInfoResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		return "", err
	}
	for _, page := range body.Query.Pages {
		if len(page.ImageInfo) > 0 {
			return page.ImageInfo[0].URL, nil
		}
	}
	return "", fmt.Errorf("no image info for %q", title)
}

type revisionsResponse struct {
	Query struct {
		Pages map[string]struct {
			Revisions []struct {
				Slots struct {
					Main struct {
						Content string `json:"*"`
					} `json:"main"`
				} `json:"slots"`
				Content string `json:"*"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// Wikitext fetches the current wikitext of a Commons file description
// page. The returned markup is what the rights resolver consumes.
func (c Client) Wikitext(ctx context.Context, title string) (string, error) {
	res, err := c.http.R().SetContext(ctx).
		SetQueryParams(map[string]string{
			"action":  "query",
			"format":  "json",
			"titles":  filePrefix + title,
			"prop":    "revisions",
			"rvprop":  "content",
			"rvslots": "main",
		}).
		Get(c.endpoint)
	if err != nil {
		return "", err
	}

	var body revisionsResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		return "", err
	}
	for _, page := range body.Query.Pages {
		if len(page.Revisions) == 0 {
			continue
		}
		rev := page.Revisions[0]
		if rev.Slots.Main.Content != "" {
			return rev.Slots.Main.Content, nil
		}
		return rev.Content, nil
	}
	return "", fmt.Errorf("no revisions for %q", title)
}

// DownloadFile saves a Commons file into dir under its own title.
func (c Client) DownloadFile(ctx context.Context, title string, dir string) error {
	url, err := c.FileURL(ctx, title)
	if err != nil {
		return err
	}
	res, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, title), res.Body(), 0600)
}

// DownloadCategory downloads every file in a category into dir.
// Individual failures are logged and skipped.
func (c Client) DownloadCategory(ctx context.Context, category string, dir string) error {
	ctx, span := tracer.Start(ctx, "DownloadCategory")
	defer span.End()

	titles, err := c.ListCategoryFiles(ctx, category)
	if err != nil {
		return err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return err
	}
	for _, title := range titles {
		slog.InfoContext(ctx, "downloading file", "title", title)
		err := c.DownloadFile(ctx, title, dir)
		if err != nil {
			slog.ErrorContext(ctx, "failed to download file", "title", title, "err", err)
		}
	}
	return nil
}
