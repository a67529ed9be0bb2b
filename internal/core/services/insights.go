package services

import (
	"context"
	"log/slog"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driven"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driving"
)

// Ensure the cache-backed services implement their driving interfaces
var (
	_ driving.InsightsService    = (*insightsService)(nil)
	_ driving.ConnectionsService = (*connectionsService)(nil)
	_ driving.PodcastsService    = (*podcastsService)(nil)
)

// insightsService caches library-wide insight reports.
type insightsService struct {
	cache *DerivedCache[domain.InsightReport]
}

// NewInsightsService creates the insights service. The returned cache
// must be registered with the library for revalidation.
func NewInsightsService(
	engine driven.InsightEngine,
	store driven.ResultCacheStore,
	library fingerprintSource,
	logger *slog.Logger,
) (driving.InsightsService, *DerivedCache[domain.InsightReport]) {
	cache := NewDerivedCache(SlotInsights, 1, store, library,
		func(ctx context.Context) (*domain.InsightReport, error) {
			return engine.GenerateInsights(ctx)
		}, logger)
	return &insightsService{cache: cache}, cache
}

func (s *insightsService) Current(ctx context.Context) (*domain.InsightReport, bool) {
	return s.cache.Current(ctx)
}

func (s *insightsService) Generate(ctx context.Context) (*domain.InsightReport, error) {
	return s.cache.Generate(ctx)
}

// connectionsService caches cross-document similarity reports. A single
// document cannot be compared to itself, so generation needs two.
type connectionsService struct {
	cache *DerivedCache[domain.SimilarityReport]
}

// NewConnectionsService creates the connections service.
func NewConnectionsService(
	engine driven.InsightEngine,
	store driven.ResultCacheStore,
	library fingerprintSource,
	logger *slog.Logger,
) (driving.ConnectionsService, *DerivedCache[domain.SimilarityReport]) {
	cache := NewDerivedCache(SlotConnections, 2, store, library,
		func(ctx context.Context) (*domain.SimilarityReport, error) {
			return engine.GenerateSimilarities(ctx)
		}, logger)
	return &connectionsService{cache: cache}, cache
}

func (s *connectionsService) Current(ctx context.Context) (*domain.SimilarityReport, bool) {
	return s.cache.Current(ctx)
}

func (s *connectionsService) Generate(ctx context.Context) (*domain.SimilarityReport, error) {
	return s.cache.Generate(ctx)
}

// podcastsService caches podcast recommendation reports.
type podcastsService struct {
	cache *DerivedCache[domain.PodcastReport]
}

// NewPodcastsService creates the podcasts service.
func NewPodcastsService(
	engine driven.InsightEngine,
	store driven.ResultCacheStore,
	library fingerprintSource,
	logger *slog.Logger,
) (driving.PodcastsService, *DerivedCache[domain.PodcastReport]) {
	cache := NewDerivedCache(SlotPodcasts, 1, store, library,
		func(ctx context.Context) (*domain.PodcastReport, error) {
			return engine.GeneratePodcastRecommendations(ctx)
		}, logger)
	return &podcastsService{cache: cache}, cache
}

func (s *podcastsService) Current(ctx context.Context) (*domain.PodcastReport, bool) {
	return s.cache.Current(ctx)
}

func (s *podcastsService) Generate(ctx context.Context) (*domain.PodcastReport, error) {
	return s.cache.Generate(ctx)
}
