// internal/repository/postgres/procurement_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/repository"
)

// procurementRepository writes requisitions into the host's procurement
// queue table. This is the engine's only outbound side effect.
type procurementRepository struct {
	db *sqlx.DB
}

func NewProcurementRepository(db *sqlx.DB) repository.ProcurementSystem {
	return &procurementRepository{db: db}
}

func (r *procurementRepository) CreateRequisition(ctx context.Context, suggestion domain.ReorderSuggestion) (string, error) {
	id := uuid.New().String()

	query := `
        INSERT INTO requisitions (
            id, product_id, warehouse_id, quantity, urgency,
            expected_delivery, status, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, 'pending', $7)
    `

	_, err := r.db.ExecContext(ctx, query,
		id, suggestion.ProductID, suggestion.WarehouseID, suggestion.SuggestedOrder,
		string(suggestion.Urgency), suggestion.ExpectedDelivery, time.Now())
	if err != nil {
		return "", fmt.Errorf("error creating requisition: %w", err)
	}

	return id, nil
}
