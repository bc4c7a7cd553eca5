// internal/repository/postgres/demand_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/repository"
)

type demandRepository struct {
	db *sqlx.DB
}

func NewDemandRepository(db *sqlx.DB) repository.HistoricalDemandRepository {
	return &demandRepository{db: db}
}

// truncUnit maps a granularity onto a date_trunc unit.
func truncUnit(g domain.Granularity) string {
	switch g {
	case domain.GranularityWeekly:
		return "week"
	case domain.GranularityMonthly:
		return "month"
	default:
		return "day"
	}
}

func (r *demandRepository) Query(ctx context.Context, filter repository.DemandFilter) (domain.TimeSeries, error) {
	query := fmt.Sprintf(`
        SELECT
            date_trunc('%s', sale_date) as date,
            SUM(quantity) as quantity,
            SUM(revenue) as revenue
        FROM demand_history
        WHERE sale_date >= $1 AND sale_date <= $2
    `, truncUnit(filter.Granularity))

	args := []interface{}{filter.StartDate, filter.EndDate}
	argCounter := 3

	var conditions []string

	if filter.ProductID != "" {
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", argCounter))
		args = append(args, filter.ProductID)
		argCounter++
	}

	if filter.CategoryID != "" {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argCounter))
		args = append(args, filter.CategoryID)
		argCounter++
	}

	if filter.WarehouseID != "" {
		conditions = append(conditions, fmt.Sprintf("warehouse_id = $%d", argCounter))
		args = append(args, filter.WarehouseID)
		argCounter++
	}

	if filter.RegionID != "" {
		conditions = append(conditions, fmt.Sprintf("region_id = $%d", argCounter))
		args = append(args, filter.RegionID)
		argCounter++
	}

	if filter.Channel != "" {
		conditions = append(conditions, fmt.Sprintf("channel = $%d", argCounter))
		args = append(args, filter.Channel)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += `
        GROUP BY 1
        ORDER BY 1
    `

	var series domain.TimeSeries
	if err := r.db.SelectContext(ctx, &series, query, args...); err != nil {
		return nil, fmt.Errorf("error querying demand history: %w", err)
	}

	return series, nil
}

func (r *demandRepository) RevenueRankPct(ctx context.Context, productID string, start, end time.Time) (float64, error) {
	query := `
        WITH product_revenue AS (
            SELECT
                product_id,
                SUM(revenue) as total_revenue
            FROM demand_history
            WHERE sale_date >= $1 AND sale_date <= $2
            GROUP BY product_id
        ),
        ranked AS (
            SELECT
                product_id,
                percent_rank() OVER (ORDER BY total_revenue DESC) * 100 as rank_pct
            FROM product_revenue
        )
        SELECT rank_pct FROM ranked WHERE product_id = $3
    `

	var rankPct float64
	err := r.db.GetContext(ctx, &rankPct, query, start, end, productID)
	if errors.Is(err, sql.ErrNoRows) {
		// The product sold nothing in the window.
		return 0, domain.NewNotFoundError("product revenue rank", productID)
	}
	if err != nil {
		return 0, fmt.Errorf("error ranking product revenue: %w", err)
	}

	return rankPct, nil
}
