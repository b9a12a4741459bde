package shortlink

import (
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"zapnews/internal/cache"
)

func newTestTracker() *Tracker {
	return NewTracker(
		cache.New[string, string](500, time.Minute),
		cache.New[string, int64](1000, time.Minute),
		cache.New[string, int64](1000, time.Minute),
	)
}

func shortID(path string) string {
	return strings.TrimPrefix(path, "/r/")
}

func TestShortenReturnsShortPath(t *testing.T) {
	tr := newTestTracker()

	path := tr.Shorten("https://example.com/article")

	if !regexp.MustCompile(`^/r/[a-z0-9-]{8}$`).MatchString(path) {
		t.Errorf("Shorten returned %q, want /r/ followed by 8-char id", path)
	}
}

func TestShortenMintsFreshIDPerCall(t *testing.T) {
	tr := newTestTracker()

	first := tr.Shorten("https://example.com/article")
	second := tr.Shorten("https://example.com/article")

	if first == second {
		t.Errorf("two Shorten calls returned the same path %q", first)
	}
}

func TestResolveAppendsUTMParams(t *testing.T) {
	tr := newTestTracker()

	path := tr.Shorten("https://example.com/article?ref=home")

	dest, ok := tr.Resolve(shortID(path))
	if !ok {
		t.Fatal("Resolve reported not found for a freshly minted id")
	}

	u, err := url.Parse(dest)
	if err != nil {
		t.Fatalf("Resolve returned unparseable URL %q: %v", dest, err)
	}
	q := u.Query()
	if q.Get("utmSource") != "whatsapp" {
		t.Errorf("utmSource = %q, want whatsapp", q.Get("utmSource"))
	}
	if q.Get("utmMedium") != "news" {
		t.Errorf("utmMedium = %q, want news", q.Get("utmMedium"))
	}
	if q.Get("ref") != "home" {
		t.Errorf("pre-existing query param lost, ref = %q", q.Get("ref"))
	}
	if u.Host != "example.com" || u.Path != "/article" {
		t.Errorf("destination mangled: %q", dest)
	}
}

func TestResolveUnknownID(t *testing.T) {
	tr := newTestTracker()

	if _, ok := tr.Resolve("deadbeef"); ok {
		t.Error("Resolve reported found for an unknown id")
	}

	stats, totals := tr.Report()
	if len(stats) != 0 || totals.TotalClicks != 0 {
		t.Error("failed Resolve had side effects on metrics")
	}
}

func TestResolveCountsEachClick(t *testing.T) {
	tr := newTestTracker()

	id := shortID(tr.Shorten("https://example.com/a"))
	tr.Resolve(id)
	tr.Resolve(id)

	clicks, _ := tr.clicks.Get(id)
	if clicks != 2 {
		t.Errorf("clicks = %d after two resolves, want 2", clicks)
	}
}

func TestReportCTR(t *testing.T) {
	tr := newTestTracker()

	// 3 impressions, 1 click -> 33.33
	tr.links.Set("aaaa1111", "https://example.com/a")
	tr.impressions.Set("aaaa1111", 3)
	tr.clicks.Set("aaaa1111", 1)

	// never clicked -> 0
	tr.links.Set("bbbb2222", "https://example.com/b")
	tr.impressions.Set("bbbb2222", 5)
	tr.clicks.Set("bbbb2222", 0)

	stats, totals := tr.Report()
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}

	// sorted by CTR descending
	if stats[0].ShortID != "aaaa1111" {
		t.Errorf("stats[0].ShortID = %q, want aaaa1111", stats[0].ShortID)
	}
	if stats[0].CTR != 33.33 {
		t.Errorf("CTR = %v, want 33.33", stats[0].CTR)
	}
	if stats[1].CTR != 0 {
		t.Errorf("CTR with zero clicks = %v, want 0", stats[1].CTR)
	}

	if totals.TotalURLs != 2 || totals.TotalImpressions != 8 || totals.TotalClicks != 1 {
		t.Errorf("totals = %+v", totals)
	}
	// ratio of totals: 1/8 = 12.5
	if totals.OverallCTR != 12.5 {
		t.Errorf("OverallCTR = %v, want 12.5", totals.OverallCTR)
	}
}

func TestReportZeroImpressions(t *testing.T) {
	tr := newTestTracker()

	tr.impressions.Set("cccc3333", 0)
	tr.clicks.Set("cccc3333", 0)

	stats, totals := tr.Report()
	if len(stats) != 1 || stats[0].CTR != 0 {
		t.Errorf("CTR with zero impressions = %+v, want 0", stats)
	}
	if totals.OverallCTR != 0 {
		t.Errorf("OverallCTR = %v, want 0", totals.OverallCTR)
	}
}
