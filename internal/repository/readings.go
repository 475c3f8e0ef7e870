package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/facilityworks/industrial-dashboard/internal/domain"
)

// QueryReadings runs a filtered range scan over sensor readings joined with
// their asset and metric labels. Each supplied filter contributes exactly
// one clause to the WHERE conjunction; absent filters impose nothing.
//
// Ordering is always on the (ts, id) pair: ascending when a forward cursor
// is present (resumable paging), descending otherwise (latest-first
// snapshot). The filter's limit is assumed validated by the boundary.
func (r *Repos) QueryReadings(ctx context.Context, f domain.ReadingFilter) ([]domain.SensorReading, error) {
	var conds []string
	var args []interface{}

	if f.FacilityID != nil {
		args = append(args, *f.FacilityID)
		conds = append(conds, fmt.Sprintf("sr.facility_id = $%d", len(args)))
	}
	if f.AssetID != nil {
		args = append(args, *f.AssetID)
		conds = append(conds, fmt.Sprintf("sr.asset_id = $%d", len(args)))
	}
	if f.MetricName != "" {
		args = append(args, f.MetricName)
		conds = append(conds, fmt.Sprintf("m.name = $%d", len(args)))
	}
	if f.Start != nil {
		args = append(args, *f.Start)
		conds = append(conds, fmt.Sprintf("sr.ts >= $%d", len(args)))
	}
	if f.End != nil {
		args = append(args, *f.End)
		conds = append(conds, fmt.Sprintf("sr.ts <= $%d", len(args)))
	}
	if f.Cursor() {
		args = append(args, *f.AfterTs)
		tsArg := len(args)
		args = append(args, *f.AfterID)
		idArg := len(args)
		conds = append(conds, fmt.Sprintf("(sr.ts > $%d OR (sr.ts = $%d AND sr.id > $%d))",
			tsArg, tsArg, idArg))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	order := "ORDER BY sr.ts DESC, sr.id DESC"
	if f.Cursor() {
		order = "ORDER BY sr.ts ASC, sr.id ASC"
	}

	args = append(args, f.Limit)
	query := fmt.Sprintf(`
		SELECT
			sr.id,
			sr.facility_id,
			sr.asset_id,
			a.name AS asset_name,
			sr.metric_id,
			m.name AS metric_name,
			m.unit,
			sr.ts,
			sr.value
		FROM sensor_readings sr
		JOIN assets a ON a.id = sr.asset_id
		JOIN metrics m ON m.id = sr.metric_id
		%s
		%s
		LIMIT $%d`, where, order, len(args))

	out := []domain.SensorReading{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	return out, nil
}
