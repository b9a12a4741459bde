package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"zapnews/internal/model"
	"zapnews/internal/search"
)

type SearchService interface {
	Search(ctx context.Context, query string, generateSummary bool, systemPrompt string) (*search.Response, error)
	Lookup(ctx context.Context, query string) (*search.Response, error)
	Stats(ctx context.Context) (*model.ArticleStats, error)
}

type SearchHandler struct {
	service SearchService
}

func NewSearchHandler(service SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	resp, err := h.service.Search(c.Request.Context(), req.Query, req.GenerateSummary, req.SystemPrompt)
	if errors.Is(err, search.ErrEmptyQuery) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}
	if err != nil {
		slog.Error("search failed", "error", err, "query", req.Query)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	if resp.Err != "" {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": resp.Err})
		return
	}

	c.JSON(http.StatusOK, toSearchResponse(resp))
}

func (h *SearchHandler) SearchArticles(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	resp, err := h.service.Lookup(c.Request.Context(), req.Query)
	if errors.Is(err, search.ErrEmptyQuery) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}
	if err != nil {
		slog.Error("article lookup failed", "error", err, "query", req.Query)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	if resp.Err != "" {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": resp.Err})
		return
	}

	c.JSON(http.StatusOK, toSearchResponse(resp))
}

func (h *SearchHandler) ArticleStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		slog.Error("error fetching article stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ArticleStatsResponse{
		Success: true,
		Stats: ArticleStatsBody{
			TotalCount: stats.TotalCount,
			OldestDate: formatDate(stats.OldestDate),
			NewestDate: formatDate(stats.NewestDate),
		},
	})
}

func (h *SearchHandler) GetHealth(c *gin.Context) {
	if _, err := h.service.Stats(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func toSearchResponse(resp *search.Response) SearchResponse {
	results := make([]ResultResponse, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, ResultResponse{
			ID:             r.ID,
			Title:          r.Title,
			URL:            r.URL,
			ShortURL:       r.ShortURL,
			PublishedDate:  formatDate(r.PublishedDate),
			Author:         r.Author,
			Description:    r.Description,
			Keywords:       r.Keywords,
			SummaryContent: r.SummaryContent,
			Similarity:     r.Similarity,
		})
	}

	return SearchResponse{
		Success: resp.Success,
		Results: results,
		Count:   resp.Count,
		Summary: resp.Summary,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
