package repository

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"zapnews/internal/model"
)

// Title matches below this trigram similarity are discarded, vector
// matches below the distance-derived floor likewise. Both thresholds
// are tuned against the production corpus.
const (
	titleSimilarityThreshold  = 0.3
	vectorSimilarityThreshold = 0.84
)

const articleColumns = `id, title, content, url, published_date, author, description, keywords::text, summary_content`

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// SearchByTitle finds at most one article whose title fuzzily matches
// the query (pg_trgm similarity) or whose URL contains it, preferring
// whichever similarity signal is stronger.
func (r *ArticleRepository) SearchByTitle(ctx context.Context, query string) ([]model.ArticleRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+articleColumns+`,
			similarity(title, $1)::float AS similarity
		FROM articles
		WHERE similarity(title, $1) > `+strconv.FormatFloat(titleSimilarityThreshold, 'f', -1, 64)+`
			OR url ILIKE '%' || $1 || '%'
		ORDER BY greatest(similarity(title, $1), similarity(url, $1)) DESC
		LIMIT 1
	`, query)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanArticleRows(rows)
}

// SearchHybrid unions a pgvector cosine-similarity query with a
// full-text query over title and summary. Each branch yields its own
// similarity score and the union is ordered by score descending, so
// when an article appears in both branches its higher-scored row comes
// first.
func (r *ArticleRepository) SearchHybrid(ctx context.Context, query string, embedding []float64) ([]model.ArticleRow, error) {
	threshold := strconv.FormatFloat(vectorSimilarityThreshold, 'f', -1, 64)

	rows, err := r.db.QueryContext(ctx, `
		(SELECT `+articleColumns+`,
			(1 - (embedding <=> $2::vector))::float AS similarity
		FROM articles
		WHERE (1 - (embedding <=> $2::vector))::float > `+threshold+`)
		UNION
		(SELECT `+articleColumns+`,
			ts_rank_cd(to_tsvector(title || ' ' || summary_content), plainto_tsquery($1))::float AS similarity
		FROM articles
		WHERE to_tsvector(title || ' ' || summary_content) @@ plainto_tsquery($1))
		ORDER BY similarity DESC
	`, query, vectorLiteral(embedding))

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanArticleRows(rows)
}

func (r *ArticleRepository) Stats(ctx context.Context) (*model.ArticleStats, error) {
	var (
		stats          model.ArticleStats
		oldest, newest sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), MIN(published_date), MAX(published_date) FROM articles
	`).Scan(&stats.TotalCount, &oldest, &newest)

	if err != nil {
		return nil, err
	}

	if oldest.Valid {
		stats.OldestDate = &oldest.Time
	}
	if newest.Valid {
		stats.NewestDate = &newest.Time
	}

	return &stats, nil
}

func scanArticleRows(rows *sql.Rows) ([]model.ArticleRow, error) {
	var articles []model.ArticleRow
	for rows.Next() {
		var (
			a         model.ArticleRow
			published sql.NullTime
		)
		err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.URL, &published,
			&a.Author, &a.Description, &a.Keywords, &a.SummaryContent, &a.Similarity)
		if err != nil {
			return nil, err
		}
		if published.Valid {
			a.PublishedDate = &published.Time
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

// vectorLiteral renders an embedding in pgvector's input format.
func vectorLiteral(embedding []float64) string {
	parts := make([]string, len(embedding))
	for i, v := range embedding {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
