// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads wiki pages and parses them into document trees.
// Requests are sequential and separated by a fixed politeness pause; a page
// that fails to download or parse contributes no facts and the run moves on.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/pdiddy/trivia-engine/internal/extract"
	"github.com/pdiddy/trivia-engine/internal/httputil"
	"github.com/pdiddy/trivia-engine/internal/logger"
	"github.com/pdiddy/trivia-engine/pkg/types"
)

// ErrHTTPStatus is wrapped by Fetch when the server answers with a non-2xx status.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// Fetcher retrieves pages one at a time.
type Fetcher struct {
	client  *http.Client
	cfg     types.ScrapeConfig
	limiter *rate.Limiter
}

// New returns a Fetcher. Consecutive requests are spaced by cfg.RequestDelay;
// a zero delay disables the pause.
func New(client *http.Client, cfg types.ScrapeConfig) *Fetcher {
	limit := rate.Inf
	if cfg.RequestDelay > 0 {
		limit = rate.Every(cfg.RequestDelay)
	}
	return &Fetcher{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// PageURL joins a wiki base URL and a page name, replacing spaces with underscores.
func PageURL(baseURL, page string) string {
	return baseURL + strings.ReplaceAll(page, " ", "_")
}

// Fetch downloads page from baseURL and parses it.
func (f *Fetcher) Fetch(ctx context.Context, baseURL, page string) (*goquery.Document, error) {
	url := PageURL(baseURL, page)

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting to fetch %s: %w", url, err)
	}
	logger.Debug("GET %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := httputil.DoWithRetry(ctx, f.client, req, f.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrHTTPStatus, resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	return doc, nil
}

// HarvestResult holds the facts gathered for one universe.
type HarvestResult struct {
	Universe types.Universe
	Facts    []string
	Fetched  int
	Failed   int
}

// Total returns the number of pages attempted.
func (r HarvestResult) Total() int {
	return r.Fetched + r.Failed
}

// HasFailures reports whether any page failed.
func (r HarvestResult) HasFailures() bool {
	return r.Failed > 0
}

// Harvest fetches every page of src in order and concatenates their facts.
// Failed pages are reported to w and skipped.
func (f *Fetcher) Harvest(ctx context.Context, universe types.Universe, src types.UniverseSource, w io.Writer) HarvestResult {
	result := HarvestResult{Universe: universe}
	for _, page := range src.Pages {
		fmt.Fprintf(w, "fetching: %s\n", PageURL(src.BaseURL, page))
		doc, err := f.Fetch(ctx, src.BaseURL, page)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", page, err)
			result.Failed++
			continue
		}
		facts := extract.Facts(doc)
		fmt.Fprintf(w, "Extracted %d potential facts from %s\n", len(facts), page)
		result.Facts = append(result.Facts, facts...)
		result.Fetched++
	}
	fmt.Fprintf(w, "\n%s summary: %d fetched, %d failed, %d facts\n",
		universe, result.Fetched, result.Failed, len(result.Facts))
	return result
}
