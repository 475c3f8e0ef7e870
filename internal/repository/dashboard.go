package repository

import (
	"context"
	"fmt"

	"github.com/facilityworks/industrial-dashboard/internal/domain"
)

// LatestReadings returns the single newest reading per (asset, metric)
// pair within a facility. The id column breaks ties between readings that
// share a timestamp, preserving insertion order.
func (r *Repos) LatestReadings(ctx context.Context, facilityID int64) ([]domain.LatestReading, error) {
	out := []domain.LatestReading{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT DISTINCT ON (sr.asset_id, sr.metric_id)
			sr.asset_id,
			sr.metric_id,
			m.name AS metric_name,
			m.unit,
			sr.ts,
			sr.value
		FROM sensor_readings sr
		JOIN metrics m ON m.id = sr.metric_id
		WHERE sr.facility_id = $1
		ORDER BY sr.asset_id, sr.metric_id, sr.ts DESC, sr.id DESC`,
		facilityID)
	if err != nil {
		return nil, fmt.Errorf("latest readings for facility %d: %w", facilityID, err)
	}
	return out, nil
}
