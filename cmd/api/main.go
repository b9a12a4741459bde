package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"zapnews/db"
	"zapnews/internal/cache"
	"zapnews/internal/handler"
	"zapnews/internal/repository"
	"zapnews/internal/search"
	"zapnews/internal/shortlink"
	"zapnews/pkg/llm"
)

const (
	searchCacheSize = 100
	searchCacheTTL  = 5 * time.Minute

	linkCacheSize    = 500
	metricsCacheSize = 1000
	trackingWindow   = 30 * 24 * time.Hour
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	tracker := shortlink.NewTracker(
		cache.New[string, string](linkCacheSize, trackingWindow),
		cache.New[string, int64](metricsCacheSize, trackingWindow),
		cache.New[string, int64](metricsCacheSize, trackingWindow),
	)

	articleRepo := repository.NewArticleRepository(db.DB)
	llmClient := llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))
	searchMemo := cache.New[uint64, *search.Response](searchCacheSize, searchCacheTTL)
	searchService := search.NewService(articleRepo, llmClient, tracker, searchMemo)

	searchHandler := handler.NewSearchHandler(searchService)
	linkHandler := handler.NewLinkHandler(tracker)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/api/search", searchHandler.Search)
	r.POST("/api/search-articles", searchHandler.SearchArticles)
	r.GET("/api/article-stats", searchHandler.ArticleStats)
	r.GET("/api/ctr-stats", linkHandler.CTRStats)
	r.GET("/r/:id", linkHandler.Redirect)
	r.GET("/health", searchHandler.GetHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
