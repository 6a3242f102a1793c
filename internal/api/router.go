package api

import (
	"net/http"
	"time"

	"fantasy-draft/internal/api/handlers"
	"fantasy-draft/internal/api/middleware"
	"fantasy-draft/internal/cache"
	"fantasy-draft/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Options wires the router's dependencies.
type Options struct {
	LeagueDir    string
	CorsOrigins  []string
	Store        cache.Store
	Metrics      *metrics.Recorder
	SolveTimeout time.Duration
	MaxPlayers   int
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()

	// Apply middleware
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.CorsOrigins))
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics(opts.Metrics))

	// Initialize handlers
	leagueHandler := handlers.NewLeagueHandler(opts.LeagueDir)
	rosterHandler := handlers.NewRosterHandler(leagueHandler, opts.Store, opts.Metrics, handlers.RosterOptions{
		SolveTimeout: opts.SolveTimeout,
		MaxPlayers:   opts.MaxPlayers,
	})
	rankHandler := handlers.NewRankHandler(leagueHandler)
	scoringHandler := handlers.NewScoringHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/roster", rosterHandler.CreateRoster)
		v1.GET("/roster/:id", rosterHandler.GetRoster)

		v1.POST("/rank", rankHandler.RankPositions)

		v1.GET("/scoring", scoringHandler.GetScoring)
		v1.GET("/leagues", leagueHandler.ListLeagues)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
