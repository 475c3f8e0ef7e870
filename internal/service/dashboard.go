package service

import (
	"context"
	"sort"
	"time"

	"github.com/facilityworks/industrial-dashboard/internal/domain"
	"github.com/facilityworks/industrial-dashboard/internal/repository"
)

// defaultAggregations picks the headline statistic per metric name.
// Additive quantities (total plant power draw, combined flow) sum across
// assets; anything unlisted falls back to the arithmetic mean.
var defaultAggregations = map[string]string{
	"power_kw":   "sum",
	"flow_l_min": "sum",
}

func defaultAggregation(metricName string) string {
	if agg, ok := defaultAggregations[metricName]; ok {
		return agg
	}
	return "avg"
}

type DashboardService struct {
	repos *repository.Repos
}

// metricFold accumulates the latest values of one metric across assets.
type metricFold struct {
	unit     *string
	sum      float64
	min      float64
	max      float64
	latestTs time.Time
	count    int
}

// Summary computes the per-facility dashboard: one latest reading per
// (asset, metric) pair, aggregated per metric across assets. Fails with
// domain.ErrFacilityNotFound before touching the readings table when the
// facility does not exist.
func (s *DashboardService) Summary(ctx context.Context, facilityID int64) (*domain.DashboardSummary, error) {
	if _, err := s.repos.GetFacility(ctx, facilityID); err != nil {
		return nil, err
	}

	latest, err := s.repos.LatestReadings(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	folds := map[string]*metricFold{}
	for _, lr := range latest {
		f, ok := folds[lr.MetricName]
		if !ok {
			f = &metricFold{unit: lr.Unit, min: lr.Value, max: lr.Value, latestTs: lr.Ts}
			folds[lr.MetricName] = f
		}
		f.sum += lr.Value
		if lr.Value < f.min {
			f.min = lr.Value
		}
		if lr.Value > f.max {
			f.max = lr.Value
		}
		if lr.Ts.After(f.latestTs) {
			f.latestTs = lr.Ts
		}
		f.count++
	}

	names := make([]string, 0, len(folds))
	for name := range folds {
		names = append(names, name)
	}
	sort.Strings(names)

	metrics := make([]domain.DashboardMetric, 0, len(names))
	for _, name := range names {
		f := folds[name]
		values := map[string]float64{
			"sum": f.sum,
			"avg": f.sum / float64(f.count),
			"min": f.min,
			"max": f.max,
		}
		agg := defaultAggregation(name)
		metrics = append(metrics, domain.DashboardMetric{
			MetricName:         name,
			Unit:               f.unit,
			Aggregation:        agg,
			AggregationValues:  values,
			LatestTs:           f.latestTs,
			AggregatedValue:    values[agg],
			ContributingAssets: f.count,
		})
	}

	return &domain.DashboardSummary{
		FacilityID:  facilityID,
		GeneratedAt: time.Now().UTC(),
		Metrics:     metrics,
	}, nil
}
