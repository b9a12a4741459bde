package llm

import "context"

// Client is the inference surface the search service depends on.
// Complete answers a query against retrieved context and returns text
// in the "<flag>|<answer>" protocol; the caller owns parsing it.
type Client interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Complete(ctx context.Context, query, contextText, systemPrompt string) (string, error)
	SummarizeArticle(ctx context.Context, title, content, link string) (string, error)
}
