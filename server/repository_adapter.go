package server

import (
	"context"
	"fmt"

	"github.com/umputun/plaidfeed/pkg/domain"
	"github.com/umputun/plaidfeed/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Database interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// GetSources returns sources from repository
func (r *RepositoryAdapter) GetSources(ctx context.Context, enabledOnly bool) ([]domain.Source, error) {
	sources, err := r.repos.Source.GetSources(ctx, enabledOnly)
	if err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}
	return sources, nil
}

// CountItems returns stored item counts per source
func (r *RepositoryAdapter) CountItems(ctx context.Context) (map[string]int, error) {
	counts, err := r.repos.Item.CountItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	return counts, nil
}
