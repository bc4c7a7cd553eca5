// internal/repository/postgres/plan_repository.go
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

type planRepository struct {
	db *sqlx.DB
}

func NewPlanRepository(db *sqlx.DB) repository.SupplyPlanRepository {
	return &planRepository{db: db}
}

type planRow struct {
	ID          string    `db:"id"`
	ProductID   string    `db:"product_id"`
	ForecastID  string    `db:"forecast_id"`
	Constraints []byte    `db:"constraints"`
	Plan        []byte    `db:"plan"`
	CreatedAt   time.Time `db:"created_at"`
}

func (row planRow) toDomain() (domain.SupplyPlanRecord, error) {
	record := domain.SupplyPlanRecord{
		ID:         row.ID,
		ProductID:  row.ProductID,
		ForecastID: row.ForecastID,
		CreatedAt:  row.CreatedAt,
	}
	if err := json.Unmarshal(row.Constraints, &record.Constraints); err != nil {
		return domain.SupplyPlanRecord{}, fmt.Errorf("error decoding plan constraints: %w", err)
	}
	if err := json.Unmarshal(row.Plan, &record.Plan); err != nil {
		return domain.SupplyPlanRecord{}, fmt.Errorf("error decoding plan: %w", err)
	}
	return record, nil
}

func (r *planRepository) Save(ctx context.Context, record *domain.SupplyPlanRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	constraints, err := json.Marshal(record.Constraints)
	if err != nil {
		return "", fmt.Errorf("error encoding plan constraints: %w", err)
	}
	plan, err := json.Marshal(record.Plan)
	if err != nil {
		return "", fmt.Errorf("error encoding plan: %w", err)
	}

	query := `
        INSERT INTO supply_plans (id, product_id, forecast_id, constraints, plan, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	_, err = r.db.ExecContext(ctx, query,
		record.ID, record.ProductID, record.ForecastID, constraints, plan, record.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("error saving supply plan: %w", err)
	}

	return record.ID, nil
}

func (r *planRepository) Get(ctx context.Context, id string) (domain.SupplyPlanRecord, error) {
	query := `
        SELECT id, product_id, forecast_id, constraints, plan, created_at
        FROM supply_plans
        WHERE id = $1
    `

	var row planRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SupplyPlanRecord{}, domain.NewNotFoundError("supply plan", id)
	}
	if err != nil {
		return domain.SupplyPlanRecord{}, fmt.Errorf("error getting supply plan: %w", err)
	}

	return row.toDomain()
}

func (r *planRepository) ListByProduct(ctx context.Context, productID string, limit int) ([]domain.SupplyPlanRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
        SELECT id, product_id, forecast_id, constraints, plan, created_at
        FROM supply_plans
        WHERE product_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `

	var rows []planRow
	if err := r.db.SelectContext(ctx, &rows, query, productID, limit); err != nil {
		return nil, fmt.Errorf("error listing supply plans: %w", err)
	}

	records := make([]domain.SupplyPlanRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
