package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/mgpai22/srtcheck/internal/config"
	"github.com/mgpai22/srtcheck/internal/logging"
)

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	cfg                *config.Config
	logger             *logging.Logger
	version            string
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once
}

// NewServer builds the engine, middleware and routes for cfg
func NewServer(cfg *config.Config, logger *logging.Logger, version string) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:       engine,
		cfg:          cfg,
		logger:       logger,
		version:      version,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
	}

	s.setupMiddleware()
	s.setupRoutes()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}).Handler(engine)

	s.httpServer = &http.Server{
		Addr:           cfg.Address(),
		Handler:        corsHandler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	return s
}

// Handler returns the full handler chain, CORS included
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) setupMiddleware() {
	s.engine.Use(RequestLogger(s.logger))
	s.engine.Use(RequestSizeLimitWithSize(s.cfg.Input.MaxBytes))
}

func (s *Server) setupRoutes() {
	s.engine.GET("/", VersionHandler(s.version))
	s.engine.GET("/health", HealthHandler())

	v1 := s.engine.Group("/v1")
	v1.Use(PerClientRateLimit(
		s.rateLimiters,
		s.cleanupStop,
		&s.cleanupInitialized,
		s.cfg.Server.RateLimit.RPS,
		s.cfg.Server.RateLimit.Burst,
	))
	v1.POST("/analyze", AnalyzeHandler(s.cfg.Input.MaxBytes, s.logger))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Infow("HTTP server listening", "address", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.cleanupStop) })
	return s.httpServer.Shutdown(ctx)
}
