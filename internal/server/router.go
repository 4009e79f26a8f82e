package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"token-analysis-backend/internal/analysis"
	"token-analysis-backend/internal/config"
	"token-analysis-backend/internal/extraction"
	"token-analysis-backend/internal/jobs"
	"token-analysis-backend/internal/llm"
	"token-analysis-backend/internal/llm/openai"
	"token-analysis-backend/internal/services/health"
	"token-analysis-backend/internal/shared/metrics"
	"token-analysis-backend/internal/shared/server/middleware"
	"token-analysis-backend/internal/shared/server/respond"
	"token-analysis-backend/internal/shared/storage/uploads"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	llmClient := buildLLMClient(cfg)
	engine := &extraction.Engine{Client: llmClient}
	orchestrator := &analysis.Orchestrator{Engine: engine}
	jobSvc := &jobs.Service{
		Store:   jobs.NewMemoryStore(),
		Uploads: uploads.New(cfg.UploadDir),
		Runner:  orchestrator,
	}
	jobHandler := jobs.NewHandler(jobSvc)
	healthSvc := health.NewService()

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	jobHandler.RegisterRoutes(api)

	r.GET("/metrics", metrics.Handler())

	return r
}

func buildLLMClient(cfg config.Config) llm.Client {
	switch cfg.LLMProvider {
	case "openai":
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.OpenAIBaseURL)
		if err != nil {
			log.Printf("openai client unavailable, using placeholder: %v", err)
			return llm.PlaceholderClient{}
		}
		return client
	default:
		log.Printf("unknown LLM provider %q, using placeholder", cfg.LLMProvider)
		return llm.PlaceholderClient{}
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
