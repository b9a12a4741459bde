package shortlink

import (
	"math"
	"net/url"
	"sort"

	"github.com/google/uuid"

	"zapnews/internal/cache"
)

const (
	utmSource = "whatsapp"
	utmMedium = "news"
)

// Tracker mints opaque short ids for destination URLs and keeps
// impression/click counters for each id. Ids are never reverse-indexed
// by URL: every Shorten call mints a fresh id, so impressions count how
// many times a link was surfaced, not how many destinations exist.
type Tracker struct {
	links       *cache.Store[string, string]
	impressions *cache.Store[string, int64]
	clicks      *cache.Store[string, int64]
}

type LinkStats struct {
	ShortID     string
	ShortURL    string
	OriginalURL string
	Impressions int64
	Clicks      int64
	CTR         float64
}

type Totals struct {
	TotalURLs        int
	TotalImpressions int64
	TotalClicks      int64
	OverallCTR       float64
}

func NewTracker(links *cache.Store[string, string], impressions, clicks *cache.Store[string, int64]) *Tracker {
	return &Tracker{links: links, impressions: impressions, clicks: clicks}
}

// Shorten stores the destination under a new 8-character id and returns
// the short path. Collisions in the 8-char space are accepted as
// negligible, matching the id length to the tracking window.
func (t *Tracker) Shorten(destination string) string {
	id := uuid.NewString()[:8]

	t.links.Set(id, destination)
	t.impressions.Update(id, func(n int64, ok bool) int64 { return n + 1 })
	if _, ok := t.clicks.Get(id); !ok {
		t.clicks.Set(id, 0)
	}

	return "/r/" + id
}

// Resolve looks up the destination for a short id, records a click and
// returns the URL with the campaign parameters merged into its query
// string. ok is false when the id is unknown or expired; no click is
// recorded in that case.
func (t *Tracker) Resolve(shortID string) (destination string, ok bool) {
	destination, ok = t.links.Get(shortID)
	if !ok {
		return "", false
	}

	t.clicks.Update(shortID, func(n int64, ok bool) int64 { return n + 1 })

	return appendUTMParams(destination), true
}

// appendUTMParams merges the campaign parameters into the URL's query
// string, preserving pre-existing parameters.
func appendUTMParams(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("utmSource", utmSource)
	q.Set("utmMedium", utmMedium)
	u.RawQuery = q.Encode()
	return u.String()
}

// Report returns per-link stats sorted by CTR descending, plus totals.
// The overall CTR is the ratio of summed clicks to summed impressions,
// not the average of per-link ratios.
func (t *Tracker) Report() ([]LinkStats, Totals) {
	var (
		stats            []LinkStats
		totalImpressions int64
		totalClicks      int64
	)

	for _, id := range t.impressions.Keys() {
		impressions, _ := t.impressions.Get(id)
		clicks, _ := t.clicks.Get(id)
		destination, _ := t.links.Get(id)

		var ctr float64
		if impressions > 0 {
			ctr = round2(float64(clicks) / float64(impressions) * 100)
		}

		stats = append(stats, LinkStats{
			ShortID:     id,
			ShortURL:    "/r/" + id,
			OriginalURL: destination,
			Impressions: impressions,
			Clicks:      clicks,
			CTR:         ctr,
		})

		totalImpressions += impressions
		totalClicks += clicks
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].CTR > stats[j].CTR })

	var overallCTR float64
	if totalImpressions > 0 {
		overallCTR = round2(float64(totalClicks) / float64(totalImpressions) * 100)
	}

	return stats, Totals{
		TotalURLs:        len(stats),
		TotalImpressions: totalImpressions,
		TotalClicks:      totalClicks,
		OverallCTR:       overallCTR,
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
