package model

import "time"

// ArticleRow is one row returned by the article store queries. The
// meaning of Similarity depends on the query that produced the row:
// cosine distance derived for vector search, ts_rank derived for
// full-text search, trigram similarity for title lookup.
type ArticleRow struct {
	ID             string
	Title          string
	Content        string
	URL            string
	PublishedDate  *time.Time
	Author         string
	Description    string
	Keywords       string
	SummaryContent string
	Similarity     float64
}

type ArticleStats struct {
	TotalCount int
	OldestDate *time.Time
	NewestDate *time.Time
}
