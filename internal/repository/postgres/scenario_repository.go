// internal/repository/postgres/scenario_repository.go
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

type scenarioRepository struct {
	db *sqlx.DB
}

func NewScenarioRepository(db *sqlx.DB) repository.ScenarioRepository {
	return &scenarioRepository{db: db}
}

type scenarioRow struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	ProductID      string         `db:"product_id"`
	HorizonDays    int            `db:"horizon_days"`
	Assumptions    []byte         `db:"assumptions"`
	BaseScenarioID sql.NullString `db:"base_scenario_id"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (row scenarioRow) toDomain() (domain.Scenario, error) {
	scenario := domain.Scenario{
		ID:          row.ID,
		Name:        row.Name,
		ProductID:   row.ProductID,
		HorizonDays: row.HorizonDays,
		CreatedAt:   row.CreatedAt,
	}
	if row.BaseScenarioID.Valid {
		scenario.BaseScenarioID = &row.BaseScenarioID.String
	}
	if err := json.Unmarshal(row.Assumptions, &scenario.Assumptions); err != nil {
		return domain.Scenario{}, fmt.Errorf("error decoding scenario assumptions: %w", err)
	}
	return scenario, nil
}

func (r *scenarioRepository) Save(ctx context.Context, scenario *domain.Scenario) (string, error) {
	if scenario.ID == "" {
		scenario.ID = uuid.New().String()
	}
	if scenario.CreatedAt.IsZero() {
		scenario.CreatedAt = time.Now()
	}

	assumptions, err := json.Marshal(scenario.Assumptions)
	if err != nil {
		return "", fmt.Errorf("error encoding scenario assumptions: %w", err)
	}

	query := `
        INSERT INTO scenarios (id, name, product_id, horizon_days, assumptions, base_scenario_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	_, err = r.db.ExecContext(ctx, query,
		scenario.ID, scenario.Name, scenario.ProductID, scenario.HorizonDays,
		assumptions, scenario.BaseScenarioID, scenario.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("error saving scenario: %w", err)
	}

	return scenario.ID, nil
}

func (r *scenarioRepository) Update(ctx context.Context, scenario *domain.Scenario) error {
	assumptions, err := json.Marshal(scenario.Assumptions)
	if err != nil {
		return fmt.Errorf("error encoding scenario assumptions: %w", err)
	}

	query := `
        UPDATE scenarios
        SET name = $1, product_id = $2, horizon_days = $3, assumptions = $4, base_scenario_id = $5
        WHERE id = $6
    `

	result, err := r.db.ExecContext(ctx, query,
		scenario.Name, scenario.ProductID, scenario.HorizonDays,
		assumptions, scenario.BaseScenarioID, scenario.ID)
	if err != nil {
		return fmt.Errorf("error updating scenario: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking scenario update: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("scenario", scenario.ID)
	}

	return nil
}

func (r *scenarioRepository) Get(ctx context.Context, id string) (domain.Scenario, error) {
	query := `
        SELECT id, name, product_id, horizon_days, assumptions, base_scenario_id, created_at
        FROM scenarios
        WHERE id = $1
    `

	var row scenarioRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Scenario{}, domain.NewNotFoundError("scenario", id)
	}
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("error getting scenario: %w", err)
	}

	return row.toDomain()
}

func (r *scenarioRepository) List(ctx context.Context) ([]domain.Scenario, error) {
	query := `
        SELECT id, name, product_id, horizon_days, assumptions, base_scenario_id, created_at
        FROM scenarios
        ORDER BY created_at
    `

	var rows []scenarioRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error listing scenarios: %w", err)
	}

	scenarios := make([]domain.Scenario, 0, len(rows))
	for _, row := range rows {
		scenario, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}
