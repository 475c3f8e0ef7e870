package domain

import "time"

type Facility struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Location  *string   `db:"location" json:"location"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Asset struct {
	ID         int64     `db:"id" json:"id"`
	FacilityID int64     `db:"facility_id" json:"facility_id"`
	Name       string    `db:"name" json:"name"`
	AssetType  *string   `db:"asset_type" json:"asset_type"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// FacilityDetails is a facility payload enriched with its assets.
type FacilityDetails struct {
	Facility
	Assets []Asset `json:"assets"`
}

type Metric struct {
	ID   int64   `db:"id" json:"id"`
	Name string  `db:"name" json:"name"`
	Unit *string `db:"unit" json:"unit"`
}

// SensorReading is one stored reading joined with its asset and metric
// labels. Query responses never expose raw ids without the resolved names.
type SensorReading struct {
	ID         int64     `db:"id" json:"id"`
	FacilityID int64     `db:"facility_id" json:"facility_id"`
	AssetID    int64     `db:"asset_id" json:"asset_id"`
	AssetName  string    `db:"asset_name" json:"asset_name"`
	MetricID   int64     `db:"metric_id" json:"metric_id"`
	MetricName string    `db:"metric_name" json:"metric_name"`
	Unit       *string   `db:"unit" json:"unit"`
	Ts         time.Time `db:"ts" json:"ts"`
	Value      float64   `db:"value" json:"value"`
}

// ReadingFilter carries the optional predicates of a time-series query.
// AfterTs/AfterID form a forward cursor and must be set together.
type ReadingFilter struct {
	FacilityID *int64
	AssetID    *int64
	MetricName string
	Start      *time.Time
	End        *time.Time
	AfterTs    *time.Time
	AfterID    *int64
	Limit      int
}

// Cursor reports whether the filter resumes from a forward cursor, which
// flips the scan from latest-first snapshot to ascending page order.
func (f ReadingFilter) Cursor() bool {
	return f.AfterTs != nil && f.AfterID != nil
}

// LatestReading is the newest reading for one (asset, metric) pair,
// selected by the maximum (ts, id) within a facility.
type LatestReading struct {
	AssetID    int64     `db:"asset_id"`
	MetricID   int64     `db:"metric_id"`
	MetricName string    `db:"metric_name"`
	Unit       *string   `db:"unit"`
	Ts         time.Time `db:"ts"`
	Value      float64   `db:"value"`
}

type DashboardMetric struct {
	MetricName         string             `json:"metric_name"`
	Unit               *string            `json:"unit"`
	Aggregation        string             `json:"aggregation"`
	AggregationValues  map[string]float64 `json:"aggregation_values"`
	LatestTs           time.Time          `json:"latest_ts"`
	AggregatedValue    float64            `json:"aggregated_value"`
	ContributingAssets int                `json:"contributing_assets"`
}

type DashboardSummary struct {
	FacilityID  int64             `json:"facility_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Metrics     []DashboardMetric `json:"metrics"`
}
