package service

import (
	"context"

	"github.com/facilityworks/industrial-dashboard/internal/domain"
	"github.com/facilityworks/industrial-dashboard/internal/repository"
)

type ReadingService struct {
	repos *repository.Repos
}

// Query validates the filter and runs the range scan. The limit is
// expected to be bounded by the caller already; range and cursor
// consistency are checked here.
func (s *ReadingService) Query(ctx context.Context, f domain.ReadingFilter) ([]domain.SensorReading, error) {
	if f.Start != nil && f.End != nil && f.Start.After(*f.End) {
		return nil, domain.ErrInvalidRange
	}
	if (f.AfterTs == nil) != (f.AfterID == nil) {
		return nil, domain.ErrInvalidCursor
	}
	return s.repos.QueryReadings(ctx, f)
}
