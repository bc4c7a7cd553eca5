// internal/repository/postgres/forecast_repository.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/repository"
)

type forecastRepository struct {
	db *sqlx.DB
}

func NewForecastRepository(db *sqlx.DB) repository.ForecastRepository {
	return &forecastRepository{db: db}
}

// forecastRow mirrors the forecasts table; the result document is JSONB.
type forecastRow struct {
	ID          string         `db:"id"`
	ProductID   string         `db:"product_id"`
	WarehouseID string         `db:"warehouse_id"`
	Granularity string         `db:"granularity"`
	Horizon     int            `db:"horizon"`
	Result      []byte         `db:"result"`
	ParentID    sql.NullString `db:"parent_id"`
	Approved    bool           `db:"approved"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (row forecastRow) toDomain() (domain.ForecastRecord, error) {
	record := domain.ForecastRecord{
		ID:          row.ID,
		ProductID:   row.ProductID,
		WarehouseID: row.WarehouseID,
		Granularity: domain.Granularity(row.Granularity),
		Horizon:     row.Horizon,
		Approved:    row.Approved,
		CreatedAt:   row.CreatedAt,
	}
	if row.ParentID.Valid {
		record.ParentID = &row.ParentID.String
	}
	if err := json.Unmarshal(row.Result, &record.Result); err != nil {
		return domain.ForecastRecord{}, fmt.Errorf("error decoding forecast result: %w", err)
	}
	return record, nil
}

func (r *forecastRepository) Save(ctx context.Context, record *domain.ForecastRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	result, err := json.Marshal(record.Result)
	if err != nil {
		return "", fmt.Errorf("error encoding forecast result: %w", err)
	}

	query := `
        INSERT INTO forecasts (
            id, product_id, warehouse_id, granularity, horizon,
            result, parent_id, approved, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `

	_, err = r.db.ExecContext(ctx, query,
		record.ID, record.ProductID, record.WarehouseID, string(record.Granularity),
		record.Horizon, result, record.ParentID, record.Approved, record.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("error saving forecast: %w", err)
	}

	return record.ID, nil
}

const forecastColumns = `
    id, product_id, warehouse_id, granularity, horizon,
    result, parent_id, approved, created_at
`

func (r *forecastRepository) Get(ctx context.Context, id string) (domain.ForecastRecord, error) {
	query := `SELECT ` + forecastColumns + ` FROM forecasts WHERE id = $1`

	var row forecastRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ForecastRecord{}, domain.NewNotFoundError("forecast", id)
	}
	if err != nil {
		return domain.ForecastRecord{}, fmt.Errorf("error getting forecast: %w", err)
	}

	return row.toDomain()
}

func (r *forecastRepository) ListRecent(ctx context.Context, limit int) ([]domain.ForecastRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
        SELECT ` + forecastColumns + `
        FROM forecasts
        ORDER BY created_at DESC
        LIMIT $1
    `

	var rows []forecastRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("error listing recent forecasts: %w", err)
	}

	return rowsToDomain(rows)
}

func (r *forecastRepository) ListApproved(ctx context.Context, since time.Time) ([]domain.ForecastRecord, error) {
	query := `
        SELECT ` + forecastColumns + `
        FROM forecasts
        WHERE approved = true AND created_at >= $1
        ORDER BY created_at DESC
    `

	var rows []forecastRow
	if err := r.db.SelectContext(ctx, &rows, query, since); err != nil {
		return nil, fmt.Errorf("error listing approved forecasts: %w", err)
	}

	return rowsToDomain(rows)
}

func (r *forecastRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE forecasts SET approved = $1 WHERE id = $2`, approved, id)
	if err != nil {
		return fmt.Errorf("error updating forecast approval: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking forecast approval update: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("forecast", id)
	}

	return nil
}

func rowsToDomain(rows []forecastRow) ([]domain.ForecastRecord, error) {
	records := make([]domain.ForecastRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
