// internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/repository"
)

type inventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) repository.InventoryStateRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `
    product_id, warehouse_id, available_qty, on_order_qty,
    reorder_point, safety_stock, avg_daily_demand
`

func (r *inventoryRepository) Get(ctx context.Context, productID, warehouseID string) (domain.InventoryPosition, error) {
	query := `
        SELECT ` + inventoryColumns + `
        FROM inventory_positions
        WHERE product_id = $1 AND warehouse_id = $2
    `

	var pos domain.InventoryPosition
	err := r.db.GetContext(ctx, &pos, query, productID, warehouseID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.InventoryPosition{}, domain.NewNotFoundError("inventory position", productID)
	}
	if err != nil {
		return domain.InventoryPosition{}, fmt.Errorf("error getting inventory position: %w", err)
	}

	return pos, nil
}

func (r *inventoryRepository) ListBelowReorderPoint(ctx context.Context, warehouseID string) ([]domain.InventoryPosition, error) {
	query := `
        SELECT ` + inventoryColumns + `
        FROM inventory_positions
        WHERE available_qty <= reorder_point AND reorder_point > 0
    `

	var args []interface{}
	if warehouseID != "" {
		query += " AND warehouse_id = $1"
		args = append(args, warehouseID)
	}
	query += " ORDER BY available_qty / NULLIF(reorder_point, 0)"

	var positions []domain.InventoryPosition
	if err := r.db.SelectContext(ctx, &positions, query, args...); err != nil {
		return nil, fmt.Errorf("error listing items below reorder point: %w", err)
	}

	return positions, nil
}

func (r *inventoryRepository) ListAll(ctx context.Context, warehouseID string) ([]domain.InventoryPosition, error) {
	query := `
        SELECT ` + inventoryColumns + `
        FROM inventory_positions
    `

	var args []interface{}
	if warehouseID != "" {
		query += " WHERE warehouse_id = $1"
		args = append(args, warehouseID)
	}
	query += " ORDER BY product_id, warehouse_id"

	var positions []domain.InventoryPosition
	if err := r.db.SelectContext(ctx, &positions, query, args...); err != nil {
		return nil, fmt.Errorf("error listing inventory positions: %w", err)
	}

	return positions, nil
}
