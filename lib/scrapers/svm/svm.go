// Package svm scrapes composer detail pages from svm.be and turns them
// into person records with their portrait images.
package svm

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vna-etl/lib/htmlutil"
	"vna-etl/lib/textutil"
	"vna-etl/lib/vna"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("vna.lib.scrapers.svm")

const ErrorMessage = "FOUT!"
const photoFolder = "foto"

// SplitNames fills in the name fields from a "Last, First[, More...]"
// string. Without a comma the whole string becomes the full name.
func SplitNames(value string, name *vna.Name) {
	parts := strings.Split(value, ",")
	if len(parts) > 1 {
		name.Last = strings.TrimSpace(parts[0])
		name.First = strings.TrimSpace(parts[1])
		for _, part := range parts[2:] {
			name.First += part
		}
		return
	}
	name.Full = value
}

// SplitDatePlace splits a "° place, DD/MM/YYYY" fragment into an event.
// The leading marker rune and space are dropped from the place, the last
// comma-separated token is parsed as the date and any tokens in between
// stay part of the place. A missing or unparseable date yields the
// error token so bad rows stand out in the output.
func SplitDatePlace(text string) vna.Event {
	if text == "" {
		return vna.Event{}
	}
	parts := strings.Split(text, ",")

	// drop the leading "° " or "✝ " marker
	place := parts[0]
	if runes := []rune(place); len(runes) >= 2 {
		place = string(runes[2:])
	}

	if len(parts) == 1 {
		return vna.Event{Place: place, Date: ErrorMessage}
	}

	date := ErrorMessage
	parsed, err := time.Parse("2/1/2006", strings.TrimSpace(parts[len(parts)-1]))
	if err == nil {
		date = parsed.Format("2006-01-02")
	}
	for _, middle := range parts[1 : len(parts)-1] {
		place += "," + middle
	}
	return vna.Event{Place: place, Date: date}
}

// ParseLifeEvents parses a "birth — death" line like
// "° Gent, 01/02/1900 — ✝ Brussel, 31/12/1980" into the person's
// birth and death events. Either side may be absent.
func ParseLifeEvents(text string, person *vna.Person) {
	events := strings.Split(text, " — ")
	for i := range events {
		events[i] = strings.TrimSpace(events[i])
	}
	if len(events) > 0 && len(events[0]) > 2 {
		person.Birth = SplitDatePlace(events[0])
	}
	if len(events) > 1 && len(events[1]) > 2 {
		person.Death = SplitDatePlace(events[1])
	}
}

// ParsePage populates a person from an SVM composer detail page.
// Image downloads are left to the caller, the discovered image URLs
// are returned instead.
func ParsePage(ctx context.Context, doc *goquery.Document, person *vna.Person) []string {
	title := htmlutil.CleanText(doc.Find("title"))
	name, _, _ := strings.Cut(title, "|")
	SplitNames(strings.TrimSpace(name), &person.Name)

	lifeEvents := htmlutil.CleanText(doc.Find("div.text-xl").First())
	if lifeEvents != "" {
		ParseLifeEvents(lifeEvents, person)
	}

	anchors := htmlutil.GetAnchors(ctx, doc.Find("a.js-modal-image"))
	urls := make([]string, 0, len(anchors))
	for _, a := range anchors {
		if a.Href == "" {
			continue
		}
		urls = append(urls, a.Href)
	}
	return urls
}

type Scraper struct {
	http *resty.Client
	// directory that holds the url list, images go in a foto/ sibling
	rootDir string
}

func NewScraper(http *resty.Client, rootDir string) Scraper {
	return Scraper{http: http, rootDir: rootDir}
}

func (s Scraper) downloadImages(ctx context.Context, urls []string, person *vna.Person) error {
	identifier := lastSegment(person.Identifier.URI)
	dir := filepath.Join(s.rootDir, photoFolder, identifier)
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return err
	}

	var pictures strings.Builder
	for _, url := range urls {
		filename := lastSegment(url)
		output := filepath.Join(dir, filename)
		_, err := os.Stat(output)
		if os.IsNotExist(err) {
			slog.InfoContext(ctx, "downloading image", "url", url)
			res, err := s.http.R().SetContext(ctx).Get(url)
			if err != nil {
				return err
			}
			err = os.WriteFile(output, res.Body(), 0600)
			if err != nil {
				return err
			}
		}
		pictures.WriteString(filename + ",")
	}

	person.Picture = textutil.Beautify(pictures.String())
	return nil
}

// ScrapePerson fetches and parses a single composer page, downloading
// its portrait images along the way.
func (s Scraper) ScrapePerson(ctx context.Context, pageURL string) (vna.Person, error) {
	ctx, span := tracer.Start(ctx, "ScrapePerson")
	defer span.End()

	res, err := s.http.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return vna.Person{}, err
	}
	if res.StatusCode() >= 400 {
		return vna.Person{}, fmt.Errorf("fetch %s: status %d", pageURL, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return vna.Person{}, err
	}

	person := vna.Person{}
	person.Identifier.URI = pageURL
	imageURLs := ParsePage(ctx, doc, &person)
	if len(imageURLs) == 0 {
		slog.InfoContext(ctx, "person has no images",
			"first", person.Name.First, "last", person.Name.Last)
	} else {
		err = s.downloadImages(ctx, imageURLs, &person)
		if err != nil {
			return person, err
		}
	}
	return person, nil
}

// ScrapeAll walks a list of composer page URLs sequentially. Failed
// pages are logged and skipped. The crawl client's rate limit provides
// the politeness delay between requests.
func (s Scraper) ScrapeAll(ctx context.Context, urls []string) []vna.Person {
	var persons []vna.Person
	for _, pageURL := range urls {
		pageURL = strings.TrimSpace(pageURL)
		if pageURL == "" {
			continue
		}
		slog.InfoContext(ctx, "retrieving data", "url", pageURL)
		person, err := s.ScrapePerson(ctx, pageURL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to scrape person", "url", pageURL, "err", err)
			continue
		}
		persons = append(persons, person)
	}
	return persons
}

func lastSegment(s string) string {
	idx := strings.LastIndex(s, "/")
	return s[idx+1:]
}
