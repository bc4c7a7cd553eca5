// internal/storage/exporter.go
package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/pkg/logger"
)

// Exporter renders forecasts and supply plans as CSV and uploads them to
// object storage for downstream reporting tools.
type Exporter struct {
	store ObjectStorage
	log   zerolog.Logger
}

func NewExporter(store ObjectStorage) *Exporter {
	return &Exporter{
		store: store,
		log:   logger.With("exporter"),
	}
}

// ExportForecast writes one row per forecast point. Returns the object key.
func (e *Exporter) ExportForecast(ctx context.Context, record domain.ForecastRecord) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"date", "point_value", "lower_bound", "upper_bound"}); err != nil {
		return "", fmt.Errorf("csv write failed: %w", err)
	}
	for _, p := range record.Result.Points {
		row := []string{
			p.Date.Format("2006-01-02"),
			formatFloat(p.PointValue),
			formatFloat(p.LowerBound),
			formatFloat(p.UpperBound),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("csv write failed: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("csv flush failed: %w", err)
	}

	key := fmt.Sprintf("forecasts/%s/%s.csv", record.ProductID, exportStamp(record.ID))
	if err := e.store.UploadObject(ctx, key, buf.Bytes(), "text/csv"); err != nil {
		return "", err
	}

	e.log.Info().Str("key", key).Int("points", len(record.Result.Points)).Msg("forecast exported")
	return key, nil
}

// ExportPlan writes one row per schedule period. Returns the object key.
func (e *Exporter) ExportPlan(ctx context.Context, record domain.SupplyPlanRecord) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"date", "production_qty", "procurement_qty", "ending_inventory",
		"capacity_utilization_pct", "holding_cost", "stockout_cost",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("csv write failed: %w", err)
	}
	for _, entry := range record.Plan.Schedule {
		row := []string{
			entry.Date.Format("2006-01-02"),
			formatFloat(entry.ProductionQty),
			formatFloat(entry.ProcurementQty),
			formatFloat(entry.EndingInventory),
			formatFloat(entry.CapacityUtilPct),
			formatFloat(entry.HoldingCost),
			formatFloat(entry.StockoutCost),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("csv write failed: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("csv flush failed: %w", err)
	}

	key := fmt.Sprintf("plans/%s/%s.csv", record.ProductID, exportStamp(record.ID))
	if err := e.store.UploadObject(ctx, key, buf.Bytes(), "text/csv"); err != nil {
		return "", err
	}

	e.log.Info().Str("key", key).Int("periods", len(record.Plan.Schedule)).Msg("plan exported")
	return key, nil
}

func exportStamp(id string) string {
	return fmt.Sprintf("%s_%s", time.Now().Format("20060102T150405"), id)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
