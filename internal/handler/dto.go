package handler

type SearchRequest struct {
	Query           string `json:"query"`
	GenerateSummary bool   `json:"generate_summary"`
	SystemPrompt    string `json:"system_prompt"`
}

type LookupRequest struct {
	Query string `json:"query"`
}

type ResultResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	ShortURL       string  `json:"short_url"`
	PublishedDate  *string `json:"published_date"`
	Author         string  `json:"author"`
	Description    string  `json:"description"`
	Keywords       string  `json:"key_words"`
	SummaryContent string  `json:"summary_content,omitempty"`
	Similarity     float64 `json:"similarity"`
}

type SearchResponse struct {
	Success bool             `json:"success"`
	Results []ResultResponse `json:"results"`
	Count   int              `json:"count"`
	Summary string           `json:"summary,omitempty"`
}

type ArticleStatsResponse struct {
	Success bool             `json:"success"`
	Stats   ArticleStatsBody `json:"stats"`
}

type ArticleStatsBody struct {
	TotalCount int     `json:"total_count"`
	OldestDate *string `json:"oldest_date"`
	NewestDate *string `json:"newest_date"`
}

type CTRStatsResponse struct {
	Success bool            `json:"success"`
	Stats   []LinkStatsBody `json:"stats"`
	Totals  CTRTotalsBody   `json:"totals"`
}

type LinkStatsBody struct {
	ShortID     string  `json:"short_id"`
	ShortURL    string  `json:"short_url"`
	OriginalURL string  `json:"original_url"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
}

type CTRTotalsBody struct {
	TotalURLs        int     `json:"total_urls"`
	TotalImpressions int64   `json:"total_impressions"`
	TotalClicks      int64   `json:"total_clicks"`
	OverallCTR       float64 `json:"overall_ctr"`
}
