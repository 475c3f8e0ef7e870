package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/facilityworks/industrial-dashboard/internal/domain"
	"github.com/facilityworks/industrial-dashboard/internal/repository"
)

type Services struct {
	Repos     *repository.Repos
	Readings  *ReadingService
	Dashboard *DashboardService
}

func New(db *sqlx.DB) *Services {
	repos := repository.New(db)
	return &Services{
		Repos:     repos,
		Readings:  &ReadingService{repos: repos},
		Dashboard: &DashboardService{repos: repos},
	}
}

// FacilityDetails returns one facility with all assets linked to it.
func (s *Services) FacilityDetails(ctx context.Context, id int64) (*domain.FacilityDetails, error) {
	facility, err := s.Repos.GetFacility(ctx, id)
	if err != nil {
		return nil, err
	}
	assets, err := s.Repos.ListAssets(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.FacilityDetails{Facility: *facility, Assets: assets}, nil
}
