// internal/repository/repository.go

// Package repository defines the data access boundaries of the planning
// engine. The engine owns no wire format or schema; these interfaces are
// how the host system feeds it history and reference data and persists
// its outputs.
package repository

import (
	"context"
	"time"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

// DemandFilter narrows a historical demand query. Empty fields match
// everything.
type DemandFilter struct {
	ProductID   string             `json:"product_id"`
	CategoryID  string             `json:"category_id"`
	WarehouseID string             `json:"warehouse_id"`
	RegionID    string             `json:"region_id"`
	Channel     string             `json:"channel"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
	Granularity domain.Granularity `json:"granularity"`
}

type HistoricalDemandRepository interface {
	Query(ctx context.Context, filter DemandFilter) (domain.TimeSeries, error)
	// RevenueRankPct returns the product's cumulative revenue-rank
	// percentile among its peers over the window, for ABC classification.
	RevenueRankPct(ctx context.Context, productID string, start, end time.Time) (float64, error)
}

type InventoryStateRepository interface {
	Get(ctx context.Context, productID, warehouseID string) (domain.InventoryPosition, error)
	ListBelowReorderPoint(ctx context.Context, warehouseID string) ([]domain.InventoryPosition, error)
	ListAll(ctx context.Context, warehouseID string) ([]domain.InventoryPosition, error)
}

type VendorCatalogRepository interface {
	ListActive(ctx context.Context) ([]domain.Vendor, error)
}

type ForecastRepository interface {
	Save(ctx context.Context, record *domain.ForecastRecord) (string, error)
	Get(ctx context.Context, id string) (domain.ForecastRecord, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ForecastRecord, error)
	ListApproved(ctx context.Context, since time.Time) ([]domain.ForecastRecord, error)
	SetApproved(ctx context.Context, id string, approved bool) error
}

type SupplyPlanRepository interface {
	Save(ctx context.Context, record *domain.SupplyPlanRecord) (string, error)
	Get(ctx context.Context, id string) (domain.SupplyPlanRecord, error)
	ListByProduct(ctx context.Context, productID string, limit int) ([]domain.SupplyPlanRecord, error)
}

type ScenarioRepository interface {
	Save(ctx context.Context, scenario *domain.Scenario) (string, error)
	Update(ctx context.Context, scenario *domain.Scenario) error
	Get(ctx context.Context, id string) (domain.Scenario, error)
	List(ctx context.Context) ([]domain.Scenario, error)
}

// ProcurementSystem is the single outbound integration point: an approved
// reorder suggestion becomes a requisition in the host's procurement
// workflow.
type ProcurementSystem interface {
	CreateRequisition(ctx context.Context, suggestion domain.ReorderSuggestion) (string, error)
}
