// internal/agents/center.go
package agents

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/pkg/logger"
)

// Agent source tags.
const (
	SourceException = "exception_agent"
	SourceReorder   = "reorder_agent"
	SourceBias      = "forecast_bias_agent"
)

// ScanInput is the snapshot the alert center runs every agent over.
type ScanInput struct {
	Positions        []domain.InventoryPosition
	SupplyGaps       []SupplyGapInput
	Forecasts        []domain.ForecastRecord
	BaseLeadTimeDays float64
}

// Center fans a snapshot out to every agent, tags each alert with its
// source, ranks by severity then recency and truncates to a maximum.
type Center struct {
	exception *ExceptionAgent
	reorder   *ReorderAgent
	bias      *BiasAgent
	maxAlerts int
	log       zerolog.Logger
}

func NewCenter(cfg config.AgentConfig) *Center {
	return &Center{
		exception: NewExceptionAgent(cfg),
		reorder:   NewReorderAgent(cfg),
		bias:      NewBiasAgent(cfg),
		maxAlerts: cfg.MaxAlerts,
		log:       logger.With("alert_center"),
	}
}

// Reorder exposes the reorder agent for callers that hand suggestions to
// the procurement system.
func (c *Center) Reorder() *ReorderAgent { return c.reorder }

// Scan runs all agents over the snapshot. maxAlerts <= 0 falls back to
// the configured default. Breakdown counts cover the full alert set, not
// just the trimmed list.
func (c *Center) Scan(in ScanInput, maxAlerts int) domain.AlertScan {
	if maxAlerts <= 0 {
		maxAlerts = c.maxAlerts
	}

	var alerts []domain.Alert
	alerts = appendTagged(alerts, SourceException, c.exception.ScanInventory(in.Positions))
	alerts = appendTagged(alerts, SourceException, c.exception.ScanSupplyGaps(in.SupplyGaps))
	alerts = appendTagged(alerts, SourceReorder, c.reorder.Alerts(c.reorder.Suggest(in.Positions, in.BaseLeadTimeDays)))
	alerts = appendTagged(alerts, SourceBias, c.bias.Scan(in.Forecasts))

	sort.SliceStable(alerts, func(i, j int) bool {
		wi, wj := alerts[i].Severity.Weight(), alerts[j].Severity.Weight()
		if wi != wj {
			return wi < wj
		}
		return alerts[i].Timestamp.After(alerts[j].Timestamp)
	})

	scan := domain.AlertScan{
		TotalBefore: len(alerts),
		BySeverity:  make(map[domain.Severity]int),
		ByCategory:  make(map[domain.AlertCategory]int),
		ByAgent:     make(map[string]int),
		GeneratedAt: time.Now(),
	}
	for _, a := range alerts {
		scan.BySeverity[a.Severity]++
		scan.ByCategory[a.Category]++
		scan.ByAgent[a.AgentSource]++
	}

	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}
	scan.Alerts = alerts

	c.log.Info().
		Int("total", scan.TotalBefore).
		Int("returned", len(scan.Alerts)).
		Msg("alert scan complete")
	return scan
}

func appendTagged(dst []domain.Alert, source string, alerts []domain.Alert) []domain.Alert {
	for _, a := range alerts {
		a.AgentSource = source
		dst = append(dst, a)
	}
	return dst
}
