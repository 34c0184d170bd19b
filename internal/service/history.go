package service

import (
	"context"

	"sqlsplit/internal/domain"
)

// HistoryService reads recorded decompositions and executions.
type HistoryService struct {
	repo domain.HistoryRepository
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(repo domain.HistoryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// List returns a page of entries, newest first, and the total match count.
func (s *HistoryService) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, int64, error) {
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, 0, domain.ErrValidation("from must be before to")
	}
	return s.repo.List(ctx, filter)
}

// Get returns one entry by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrValidation("invalid history id %q", id)
	}
	return s.repo.Get(ctx, id)
}
