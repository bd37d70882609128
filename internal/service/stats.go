package service

import (
	"context"
	"fmt"

	"github.com/soulsync/orchestrator/internal/domain"
	"github.com/soulsync/orchestrator/internal/repository"
)

// CrisisStats aggregates a user's crisis log.
func (s *Service) CrisisStats(ctx context.Context, userID string) (*repository.CrisisStats, error) {
	stats, err := s.store.GetCrisisStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get crisis stats: %w", err)
	}
	return stats, nil
}

// EmotionHistory returns a user's tagged emotion events, newest first.
func (s *Service) EmotionHistory(ctx context.Context, userID string, limit int) ([]domain.EmotionEvent, error) {
	events, err := s.store.GetEmotionEvents(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get emotion events: %w", err)
	}
	return events, nil
}
