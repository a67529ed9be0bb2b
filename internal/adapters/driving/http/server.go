package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	libraryService     driving.LibraryService
	insightsService    driving.InsightsService
	connectionsService driving.ConnectionsService
	podcastsService    driving.PodcastsService
	readerService      driving.ReaderService

	// Infrastructure
	store Pinger // persistence health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	libraryService driving.LibraryService,
	insightsService driving.InsightsService,
	connectionsService driving.ConnectionsService,
	podcastsService driving.PodcastsService,
	readerService driving.ReaderService,
	store Pinger, // can be nil
) *Server {
	s := &Server{
		router:             http.NewServeMux(),
		version:            cfg.Version,
		libraryService:     libraryService,
		insightsService:    insightsService,
		connectionsService: connectionsService,
		podcastsService:    podcastsService,
		readerService:      readerService,
		store:              store,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      CORS(Logging(s.router)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // audio synthesis responses are slow
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Library endpoints
	s.router.HandleFunc("GET /api/v1/library", s.handleGetLibrary)
	s.router.HandleFunc("POST /api/v1/documents", s.handleUpload)
	s.router.HandleFunc("POST /api/v1/documents/previous", s.handleAddPrevious)
	s.router.HandleFunc("POST /api/v1/documents/{id}/select", s.handleSelect)
	s.router.HandleFunc("POST /api/v1/documents/{id}/refresh", s.handleRefresh)
	s.router.HandleFunc("DELETE /api/v1/documents/current/{id}", s.handleRemoveCurrent)
	s.router.HandleFunc("DELETE /api/v1/documents/previous/{id}", s.handleRemovePrevious)

	// Setup and reset
	s.router.HandleFunc("POST /api/v1/setup/complete", s.handleCompleteSetup)
	s.router.HandleFunc("POST /api/v1/reset", s.handleFullReset)
	s.router.HandleFunc("POST /api/v1/reset/local", s.handleLocalReset)

	// Derived results, one GET/POST pair per cache
	s.router.HandleFunc("GET /api/v1/insights", s.handleGetInsights)
	s.router.HandleFunc("POST /api/v1/insights", s.handleGenerateInsights)
	s.router.HandleFunc("GET /api/v1/connections", s.handleGetConnections)
	s.router.HandleFunc("POST /api/v1/connections", s.handleGenerateConnections)
	s.router.HandleFunc("GET /api/v1/podcasts", s.handleGetPodcasts)
	s.router.HandleFunc("POST /api/v1/podcasts", s.handleGeneratePodcasts)

	// Selection-driven viewer operations
	s.router.HandleFunc("POST /api/v1/selection/insights", s.handleSelectionInsights)
	s.router.HandleFunc("POST /api/v1/selection/similar", s.handleSelectionSimilar)
	s.router.HandleFunc("POST /api/v1/selection/summary", s.handleSelectionSummary)
	s.router.HandleFunc("POST /api/v1/selection/connections", s.handleSelectionConnections)
	s.router.HandleFunc("POST /api/v1/selection/chat", s.handleSelectionChat)
	s.router.HandleFunc("POST /api/v1/selection/podcast", s.handleSelectionPodcast)
	s.router.HandleFunc("POST /api/v1/selection/podcast/audio", s.handleSelectionPodcastAudio)

	// Remote index introspection
	s.router.HandleFunc("GET /api/v1/index/stats", s.handleIndexStats)
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("HTTP server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Println("Shutting down HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("HTTP server stopped")
	return nil
}

// Handler returns the underlying handler, used by tests
func (s *Server) Handler() http.Handler {
	return CORS(s.router)
}
