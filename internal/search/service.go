package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"zapnews/internal/cache"
	"zapnews/internal/model"
	"zapnews/internal/shortlink"
	"zapnews/pkg/llm"
)

const (
	// Outbound calls (embedding, completion, article store) share one
	// deadline per request; expiry surfaces through the generic
	// retrieval-failure path.
	outboundTimeout = 15 * time.Second

	synthesisContextSize = 10
	sourcesInFooter      = 3

	summaryHeader = "📖 Aqui está o que descobrimos sobre o termo solicitado:\n\n"
	sourcesLabel  = "\n\n🔗 Fonte(s):"

	fallbackAnswer = `⚠️ Ops, não encontramos uma explicação completa para esse termo.

😕 Isso pode acontecer porque:
1️⃣ O termo é muito recente ou específico.
2️⃣ Não há consenso científico sobre o tema.
3️⃣ Não há informações detalhadas sobre o termo nas nossas fontes.

🔎 Nossa equipe irá investigar esse tema com mais profundidade. Obrigado por nos ajudar a entender o que nossa audiência tem interesse em consumir.
📌 Enquanto isso, você pode tentar reformular o termo ou buscar algo semelhante.
↩️ Voltando ao menu inicial...
`
)

var ErrEmptyQuery = errors.New("query is required")

type ArticleStore interface {
	SearchByTitle(ctx context.Context, query string) ([]model.ArticleRow, error)
	SearchHybrid(ctx context.Context, query string, embedding []float64) ([]model.ArticleRow, error)
	Stats(ctx context.Context) (*model.ArticleStats, error)
}

// Result is one ranked article match. URL and ShortURL both carry the
// short-link path; the raw destination is never exposed.
type Result struct {
	ID             string
	Title          string
	URL            string
	ShortURL       string
	PublishedDate  *time.Time
	Author         string
	Description    string
	Keywords       string
	SummaryContent string
	Similarity     float64
}

// Response is the final answer for one query. Err is set only on
// upstream failures; a low-confidence synthesis is not an error, it is
// the fallback Summary with an empty result list.
type Response struct {
	Success bool
	Results []Result
	Count   int
	Summary string
	Err     string
}

type Service struct {
	store ArticleStore
	llm   llm.Client
	links *shortlink.Tracker
	memo  *cache.Store[uint64, *Response]
}

func NewService(store ArticleStore, llmClient llm.Client, links *shortlink.Tracker, memo *cache.Store[uint64, *Response]) *Service {
	return &Service{store: store, llm: llmClient, links: links, memo: memo}
}

// Search answers a free-text query by fusing semantic and lexical
// retrieval, optionally synthesizing an answer over the top matches.
// Identical queries (by normalized text and options) are served from
// the memo store within its TTL, synthesis output included.
func (s *Service) Search(ctx context.Context, query string, generateSummary bool, systemPrompt string) (*Response, error) {
	normalized := normalizeQuery(query)
	if strings.TrimSpace(normalized) == "" {
		return nil, ErrEmptyQuery
	}

	key := memoKey("search", normalized, generateSummary, systemPrompt)
	if cached, ok := s.memo.Get(key); ok {
		return cached, nil
	}

	resp := s.runSearch(ctx, normalized, generateSummary, systemPrompt)
	s.memo.Set(key, resp)
	return resp, nil
}

func (s *Service) runSearch(ctx context.Context, query string, generateSummary bool, systemPrompt string) *Response {
	ctx, cancel := context.WithTimeout(ctx, outboundTimeout)
	defer cancel()

	embedding, err := s.llm.Embed(ctx, query)
	if err != nil {
		slog.Error("embedding query", "error", err, "query", query)
		return failure(err)
	}

	rows, err := s.store.SearchHybrid(ctx, query, embedding)
	if err != nil {
		slog.Error("hybrid article search", "error", err, "query", query)
		return failure(err)
	}

	rows = dedupeByID(rows)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Similarity > rows[j].Similarity })

	var (
		valid  bool
		answer string
	)
	if generateSummary {
		completion, err := s.llm.Complete(ctx, query, synthesisContext(rows), systemPrompt)
		if err != nil {
			slog.Error("generating answer", "error", err, "query", query)
			return failure(err)
		}
		valid, answer, err = parseCompletion(completion)
		if err != nil {
			slog.Error("parsing completion output", "error", err, "query", query)
			return failure(err)
		}
	}

	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, s.buildResult(row))
	}

	if !generateSummary {
		return &Response{Success: true, Results: results, Count: len(results)}
	}

	if !valid {
		// Low-confidence synthesis suppresses the raw result list for
		// this response shape.
		return &Response{Success: false, Results: []Result{}, Count: 0, Summary: fallbackAnswer}
	}

	return &Response{
		Success: true,
		Results: results,
		Count:   len(results),
		Summary: summaryHeader + answer + sourcesFooter(results),
	}
}

// Lookup finds at most one article by fuzzy title or URL substring and
// enriches it with a synthesized short summary.
func (s *Service) Lookup(ctx context.Context, query string) (*Response, error) {
	normalized := normalizeLookup(query)
	if strings.TrimSpace(normalized) == "" {
		return nil, ErrEmptyQuery
	}

	ctx, cancel := context.WithTimeout(ctx, outboundTimeout)
	defer cancel()

	rows, err := s.store.SearchByTitle(ctx, normalized)
	if err != nil {
		slog.Error("article title lookup", "error", err, "query", normalized)
		return failure(err), nil
	}

	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		result := s.buildResult(row)

		summary, err := s.llm.SummarizeArticle(ctx, row.Title, row.SummaryContent, result.ShortURL)
		if err != nil {
			slog.Error("summarizing article", "error", err, "article_id", row.ID)
			return failure(err), nil
		}
		result.SummaryContent = summary

		results = append(results, result)
	}

	return &Response{Success: true, Results: results, Count: len(results)}, nil
}

func (s *Service) Stats(ctx context.Context) (*model.ArticleStats, error) {
	ctx, cancel := context.WithTimeout(ctx, outboundTimeout)
	defer cancel()
	return s.store.Stats(ctx)
}

func (s *Service) buildResult(row model.ArticleRow) Result {
	shortURL := s.links.Shorten(row.URL)
	return Result{
		ID:            row.ID,
		Title:         row.Title,
		URL:           shortURL,
		ShortURL:      shortURL,
		PublishedDate: row.PublishedDate,
		Author:        row.Author,
		Description:   row.Description,
		Keywords:      row.Keywords,
		Similarity:    row.Similarity,
	}
}

// dedupeByID collapses rows sharing an article id, keeping the first
// occurrence. Rows arrive ordered by similarity descending, so the
// higher-ranked source wins when an article appears in both branches.
func dedupeByID(rows []model.ArticleRow) []model.ArticleRow {
	seen := make(map[string]bool, len(rows))
	deduped := rows[:0]
	for _, row := range rows {
		if seen[row.ID] {
			continue
		}
		seen[row.ID] = true
		deduped = append(deduped, row)
	}
	return deduped
}

func synthesisContext(rows []model.ArticleRow) string {
	n := min(len(rows), synthesisContextSize)
	parts := make([]string, 0, n)
	for _, row := range rows[:n] {
		parts = append(parts, fmt.Sprintf("Title: %s\nContent: %s...", row.Title, row.SummaryContent))
	}
	return strings.Join(parts, "\n\n")
}

func sourcesFooter(results []Result) string {
	var b strings.Builder
	b.WriteString(sourcesLabel)
	for _, r := range results[:min(len(results), sourcesInFooter)] {
		fmt.Fprintf(&b, "\n%s\n🔗 %s\n", r.Title, r.ShortURL)
	}
	return b.String()
}

func failure(err error) *Response {
	return &Response{Success: false, Err: err.Error()}
}
