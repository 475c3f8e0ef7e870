// Package etag derives content validators for dashboard summaries and
// evaluates If-None-Match style conditional requests against them.
package etag

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/facilityworks/industrial-dashboard/internal/domain"
)

// CacheControl is attached to every dashboard response, full or 304.
const CacheControl = "private, must-revalidate"

// canonicalMetric mirrors domain.DashboardMetric minus nothing; field order
// is fixed here and maps marshal with sorted keys, so two semantically
// equal metrics always serialize to the same bytes.
type canonicalMetric struct {
	MetricName         string             `json:"metric_name"`
	Unit               *string            `json:"unit"`
	Aggregation        string             `json:"aggregation"`
	AggregationValues  map[string]float64 `json:"aggregation_values"`
	LatestTs           time.Time          `json:"latest_ts"`
	AggregatedValue    float64            `json:"aggregated_value"`
	ContributingAssets int                `json:"contributing_assets"`
}

// canonicalSummary deliberately omits generated_at: wall-clock noise must
// not change the validator.
type canonicalSummary struct {
	FacilityID int64             `json:"facility_id"`
	Metrics    []canonicalMetric `json:"metrics"`
}

// Fingerprint hashes the canonical form of a summary into a quoted
// validator token. Identical content yields an identical token regardless
// of when the summary was generated.
func Fingerprint(s *domain.DashboardSummary) string {
	canon := canonicalSummary{
		FacilityID: s.FacilityID,
		Metrics:    make([]canonicalMetric, 0, len(s.Metrics)),
	}
	for _, m := range s.Metrics {
		canon.Metrics = append(canon.Metrics, canonicalMetric{
			MetricName:         m.MetricName,
			Unit:               m.Unit,
			Aggregation:        m.Aggregation,
			AggregationValues:  m.AggregationValues,
			LatestTs:           m.LatestTs,
			AggregatedValue:    m.AggregatedValue,
			ContributingAssets: m.ContributingAssets,
		})
	}

	// json.Marshal is deterministic here: struct fields keep declaration
	// order and map keys are sorted.
	payload, _ := json.Marshal(canon)
	return fmt.Sprintf("%q", fmt.Sprintf("%x", sha256.Sum256(payload)))
}

// Match evaluates a client validator list against the current token. Weak
// prefixes are stripped from both sides, so weak and strong comparison
// collapse to the same check; "*" matches any current token.
func Match(ifNoneMatch, current string) bool {
	current = strings.TrimPrefix(strings.TrimSpace(current), "W/")
	for _, tok := range strings.Split(ifNoneMatch, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if tok == "*" {
			return true
		}
		if strings.TrimPrefix(tok, "W/") == current {
			return true
		}
	}
	return false
}
