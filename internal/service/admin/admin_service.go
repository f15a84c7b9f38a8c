// Package admin provides the read-only dashboard rollups.
package admin

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type StatsUseCase interface {
	Stats(ctx context.Context) (*domain.Stats, error)
}

type AdminService struct {
	stats repository.StatsRepository
}

func NewAdminService(stats repository.StatsRepository) *AdminService {
	return &AdminService{stats: stats}
}

func (s *AdminService) Stats(ctx context.Context) (*domain.Stats, error) {
	return s.stats.Stats(ctx)
}

var _ StatsUseCase = (*AdminService)(nil)
