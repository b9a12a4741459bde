package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zapnews/internal/shortlink"
)

type LinkTracker interface {
	Resolve(shortID string) (string, bool)
	Report() ([]shortlink.LinkStats, shortlink.Totals)
}

type LinkHandler struct {
	tracker LinkTracker
}

func NewLinkHandler(tracker LinkTracker) *LinkHandler {
	return &LinkHandler{tracker: tracker}
}

// Redirect resolves a short id and sends the visitor to the
// destination with campaign parameters appended.
func (h *LinkHandler) Redirect(c *gin.Context) {
	destination, ok := h.tracker.Resolve(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link expired or not found"})
		return
	}

	c.Redirect(http.StatusFound, destination)
}

func (h *LinkHandler) CTRStats(c *gin.Context) {
	stats, totals := h.tracker.Report()

	body := make([]LinkStatsBody, 0, len(stats))
	for _, s := range stats {
		body = append(body, LinkStatsBody{
			ShortID:     s.ShortID,
			ShortURL:    s.ShortURL,
			OriginalURL: s.OriginalURL,
			Impressions: s.Impressions,
			Clicks:      s.Clicks,
			CTR:         s.CTR,
		})
	}

	c.JSON(http.StatusOK, CTRStatsResponse{
		Success: true,
		Stats:   body,
		Totals: CTRTotalsBody{
			TotalURLs:        totals.TotalURLs,
			TotalImpressions: totals.TotalImpressions,
			TotalClicks:      totals.TotalClicks,
			OverallCTR:       totals.OverallCTR,
		},
	})
}
