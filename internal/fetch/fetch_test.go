// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/trivia-engine/internal/logger"
	"github.com/pdiddy/trivia-engine/pkg/types"
)

func init() {
	logger.SetOutput(io.Discard)
}

const mickeyPage = `<html><body>
<p>Mickey Mouse is a cartoon character created by Walt Disney.[1]</p>
<ul><li>He debuted in Steamboat Willie in 1928.</li></ul>
</body></html>`

const disneylandPage = `<html><body>
<p>Disneyland opened in Anaheim, California in 1955.</p>
</body></html>`

type recorder struct {
	mu     sync.Mutex
	agents []string
	paths  []string
	times  []time.Time
}

func newWikiServer(t *testing.T, rec *recorder) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.agents = append(rec.agents, r.Header.Get("User-Agent"))
		rec.paths = append(rec.paths, r.URL.Path)
		rec.times = append(rec.times, time.Now())
		rec.mu.Unlock()

		switch r.URL.Path {
		case "/wiki/Mickey_Mouse":
			fmt.Fprint(w, mickeyPage)
		case "/wiki/Disneyland":
			fmt.Fprint(w, disneylandPage)
		case "/wiki/Busy":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			http.NotFound(w, r)
		}
	}))
}

func testConfig(delay time.Duration) types.ScrapeConfig {
	return types.ScrapeConfig{
		HTTPConfig:   types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "trivia-test/1.0"},
		RequestDelay: delay,
	}
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "https://disney.fandom.com/wiki/Walt_Disney", PageURL("https://disney.fandom.com/wiki/", "Walt Disney"))
	assert.Equal(t, "https://disney.fandom.com/wiki/Mickey_Mouse", PageURL("https://disney.fandom.com/wiki/", "Mickey_Mouse"))
}

func TestFetch_ParsesDocumentAndSetsUserAgent(t *testing.T) {
	rec := &recorder{}
	ts := newWikiServer(t, rec)
	defer ts.Close()

	f := New(ts.Client(), testConfig(0))
	doc, err := f.Fetch(context.Background(), ts.URL+"/wiki/", "Mickey Mouse")
	require.NoError(t, err)

	assert.Contains(t, doc.Find("p").Text(), "Mickey Mouse")
	assert.Equal(t, []string{"trivia-test/1.0"}, rec.agents)
	assert.Equal(t, []string{"/wiki/Mickey_Mouse"}, rec.paths)
}

func TestFetch_NonOKStatus(t *testing.T) {
	ts := newWikiServer(t, &recorder{})
	defer ts.Close()

	f := New(ts.Client(), testConfig(0))

	_, err := f.Fetch(context.Background(), ts.URL+"/wiki/", "Missing_Page")
	assert.ErrorIs(t, err, ErrHTTPStatus)

	_, err = f.Fetch(context.Background(), ts.URL+"/wiki/", "Busy")
	assert.ErrorIs(t, err, ErrHTTPStatus)
}

func TestFetch_ConnectionError(t *testing.T) {
	ts := newWikiServer(t, &recorder{})
	base := ts.URL + "/wiki/"
	ts.Close()

	f := New(&http.Client{Timeout: time.Second}, testConfig(0))
	_, err := f.Fetch(context.Background(), base, "Mickey_Mouse")
	assert.Error(t, err)
}

func TestHarvest_SkipsFailedPages(t *testing.T) {
	ts := newWikiServer(t, &recorder{})
	defer ts.Close()

	f := New(ts.Client(), testConfig(0))
	src := types.UniverseSource{
		BaseURL: ts.URL + "/wiki/",
		Pages:   []string{"Mickey_Mouse", "Walt_Disney", "Disneyland"},
	}

	var out strings.Builder
	result := f.Harvest(context.Background(), types.UniverseDisney, src, &out)

	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())
	assert.Equal(t, []string{
		"Mickey Mouse is a cartoon character created by Walt Disney.",
		"He debuted in Steamboat Willie in 1928.",
		"Disneyland opened in Anaheim, California in 1955.",
	}, result.Facts)

	log := out.String()
	assert.Contains(t, log, "failed:  Walt_Disney")
	assert.Contains(t, log, "Extracted 2 potential facts from Mickey_Mouse")
	assert.Contains(t, log, "Disney summary: 2 fetched, 1 failed, 3 facts")
}

func TestHarvest_PausesBetweenRequests(t *testing.T) {
	rec := &recorder{}
	ts := newWikiServer(t, rec)
	defer ts.Close()

	const delay = 80 * time.Millisecond
	f := New(ts.Client(), testConfig(delay))
	src := types.UniverseSource{
		BaseURL: ts.URL + "/wiki/",
		Pages:   []string{"Mickey_Mouse", "Disneyland", "Mickey_Mouse"},
	}

	f.Harvest(context.Background(), types.UniverseDisney, src, io.Discard)

	require.Len(t, rec.times, 3)
	for i := 1; i < len(rec.times); i++ {
		gap := rec.times[i].Sub(rec.times[i-1])
		assert.GreaterOrEqual(t, gap, delay-10*time.Millisecond, "gap %d was %v", i, gap)
	}
}
