package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/facilityworks/industrial-dashboard/internal/domain"
)

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

func (r *Repos) GetFacility(ctx context.Context, id int64) (*domain.Facility, error) {
	var out domain.Facility
	err := r.db.GetContext(ctx, &out,
		`SELECT id, name, location, created_at FROM facilities WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get facility %d: %w", id, err)
	}
	return &out, nil
}

func (r *Repos) ListFacilities(ctx context.Context) ([]domain.Facility, error) {
	out := []domain.Facility{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, name, location, created_at FROM facilities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	return out, nil
}

func (r *Repos) ListAssets(ctx context.Context, facilityID int64) ([]domain.Asset, error) {
	out := []domain.Asset{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, facility_id, name, asset_type, created_at FROM assets WHERE facility_id = $1 ORDER BY id`,
		facilityID)
	if err != nil {
		return nil, fmt.Errorf("list assets for facility %d: %w", facilityID, err)
	}
	return out, nil
}
