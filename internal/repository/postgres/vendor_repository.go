// internal/repository/postgres/vendor_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/repository"
)

type vendorRepository struct {
	db *sqlx.DB
}

func NewVendorRepository(db *sqlx.DB) repository.VendorCatalogRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) ListActive(ctx context.Context) ([]domain.Vendor, error) {
	query := `
        SELECT
            vendor_id, name, unit_cost, lead_time_days, moq,
            reliability_score, quality_rating
        FROM vendors
        WHERE active = true
        ORDER BY vendor_id
    `

	var vendors []domain.Vendor
	if err := r.db.SelectContext(ctx, &vendors, query); err != nil {
		return nil, fmt.Errorf("error listing active vendors: %w", err)
	}

	return vendors, nil
}
