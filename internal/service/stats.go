package service

import (
	"time"

	"wordfolder/internal/domain"
	"wordfolder/internal/repository"
	"wordfolder/internal/workspace"

	"go.uber.org/zap"
)

// StatsService handles statistics and cleanup
type StatsService struct {
	repo   repository.WorkspaceRepository
	logger *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(repo repository.WorkspaceRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		repo:   repo,
		logger: logger,
	}
}

// Summary returns vocabulary statistics of the user
func (s *StatsService) Summary(userID int64) (domain.Stats, error) {
	var stats domain.Stats
	err := s.repo.With(userID, func(ws *workspace.Workspace) error {
		stats = domain.NewStats(ws.Store.ListFolders())
		return nil
	})
	return stats, err
}

// CleanupIdleSessions drops workspaces idle for longer than ttl
func (s *StatsService) CleanupIdleSessions(ttl time.Duration) int {
	s.logger.Info("Starting cleanup of idle sessions", zap.Duration("idle_ttl", ttl))

	evicted := s.repo.EvictIdle(ttl)

	s.logger.Info("Cleanup completed",
		zap.Int("evicted", evicted),
		zap.Int("active", s.repo.Count()),
	)
	return evicted
}
