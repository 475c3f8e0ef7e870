package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/facilityworks/industrial-dashboard/internal/domain"
)

const (
	defaultLimit = 500
	maxLimit     = 5000
)

func int64Param(c *fiber.Ctx, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &v, nil
}

func timeParam(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an RFC3339 timestamp", name)
	}
	return &t, nil
}

func limitParam(c *fiber.Ctx) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > maxLimit {
		return 0, fmt.Errorf("limit must be an integer between 1 and %d", maxLimit)
	}
	return v, nil
}

// readingFilter assembles the query-engine filter from request params.
// Range/cursor consistency is the service's concern; this layer only
// rejects values it cannot parse and out-of-bound limits.
func readingFilter(c *fiber.Ctx) (domain.ReadingFilter, error) {
	var f domain.ReadingFilter
	var err error

	if f.FacilityID, err = int64Param(c, "facility_id"); err != nil {
		return f, err
	}
	if f.AssetID, err = int64Param(c, "asset_id"); err != nil {
		return f, err
	}
	f.MetricName = c.Query("metric_name")
	if f.Start, err = timeParam(c, "start"); err != nil {
		return f, err
	}
	if f.End, err = timeParam(c, "end"); err != nil {
		return f, err
	}
	if f.AfterTs, err = timeParam(c, "after_ts"); err != nil {
		return f, err
	}
	if f.AfterID, err = int64Param(c, "after_id"); err != nil {
		return f, err
	}
	if f.Limit, err = limitParam(c); err != nil {
		return f, err
	}
	return f, nil
}
