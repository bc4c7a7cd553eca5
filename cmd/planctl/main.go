// cmd/planctl/main.go

// planctl is the operations CLI: seed demand history from CSV, run
// forecasts, alert scans and scenario simulations from the terminal, and
// export stored results to object storage.
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/demand-planner/internal/cache"
	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/repository"
	"github.com/andresuchdata/demand-planner/internal/repository/postgres"
	"github.com/andresuchdata/demand-planner/internal/service"
	"github.com/andresuchdata/demand-planner/internal/storage"
	"github.com/andresuchdata/demand-planner/pkg/logger"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection string",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("no .env file loaded")
	}

	app := &cli.App{
		Name:  "planctl",
		Usage: "Demand planning operations toolkit",
		Commands: []*cli.Command{
			seedCommand(),
			forecastCommand(),
			alertsCommand(),
			simulateCommand(),
			exportCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("command failed")
	}
}

// seedCommand bulk-loads demand history from a CSV with columns
// date,product_id,warehouse_id,quantity,revenue.
func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load demand history from a CSV file",
		Flags: []cli.Flag{
			newDBURLFlag(),
			&cli.StringFlag{
				Name:     "file",
				Usage:    "Path to the CSV file",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			db, err := sql.Open("pgx", c.String("db-url"))
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			if err := db.Ping(); err != nil {
				return fmt.Errorf("failed to ping database: %w", err)
			}

			f, err := os.Open(c.String("file"))
			if err != nil {
				return fmt.Errorf("failed to open csv: %w", err)
			}
			defer f.Close()

			return seedDemand(c.Context, db, f)
		},
	}
}

func seedDemand(ctx context.Context, db *sql.DB, r io.Reader) error {
	reader := csv.NewReader(r)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return fmt.Errorf("failed to read csv header: %w", err)
	}

	const insert = `
        INSERT INTO demand_history (sale_date, product_id, warehouse_id, quantity, revenue)
        VALUES ($1, $2, $3, $4, $5)
    `

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read csv row: %w", err)
		}
		if len(record) < 5 {
			return fmt.Errorf("row %d: expected 5 columns, got %d", rows+1, len(record))
		}

		date, err := time.Parse("2006-01-02", record[0])
		if err != nil {
			return fmt.Errorf("row %d: invalid date %q", rows+1, record[0])
		}
		quantity, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return fmt.Errorf("row %d: invalid quantity %q", rows+1, record[3])
		}
		revenue, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return fmt.Errorf("row %d: invalid revenue %q", rows+1, record[4])
		}

		if _, err := db.ExecContext(ctx, insert, date, record[1], record[2], quantity, revenue); err != nil {
			return fmt.Errorf("row %d: insert failed: %w", rows+1, err)
		}
		rows++
	}

	logger.Log.Info().Int("rows", rows).Msg("demand history seeded")
	return nil
}

func forecastCommand() *cli.Command {
	return &cli.Command{
		Name:  "forecast",
		Usage: "Generate and print a forecast for a product",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "product", Usage: "Product id", Required: true},
			&cli.StringFlag{Name: "warehouse", Usage: "Warehouse id"},
			&cli.IntFlag{Name: "days", Usage: "History window in days", Value: 180},
			&cli.IntFlag{Name: "horizon", Usage: "Forecast horizon in periods", Value: 30},
			&cli.BoolFlag{Name: "save", Usage: "Persist the forecast"},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			db, err := postgres.NewDB(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			svc := service.NewForecastService(
				postgres.NewDemandRepository(db.DB),
				postgres.NewForecastRepository(db.DB),
				cache.NewNoopForecastCache(),
				cfg.Engine.Forecast,
			)

			end := time.Now()
			filter := repository.DemandFilter{
				ProductID:   c.String("product"),
				WarehouseID: c.String("warehouse"),
				StartDate:   end.AddDate(0, 0, -c.Int("days")),
				EndDate:     end,
				Granularity: domain.GranularityDaily,
			}

			if c.Bool("save") {
				record, err := svc.GenerateAndSave(c.Context, filter, c.Int("horizon"))
				if err != nil {
					return err
				}
				return printJSON(record)
			}

			result, err := svc.Generate(c.Context, filter, c.Int("horizon"))
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func alertsCommand() *cli.Command {
	return &cli.Command{
		Name:  "alerts",
		Usage: "Run an alert scan and print the ranked result",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "warehouse", Usage: "Warehouse id"},
			&cli.IntFlag{Name: "max", Usage: "Maximum alerts to return"},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			db, err := postgres.NewDB(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			svc := service.NewAlertService(
				postgres.NewInventoryRepository(db.DB),
				postgres.NewForecastRepository(db.DB),
				postgres.NewPlanRepository(db.DB),
				postgres.NewProcurementRepository(db.DB),
				cache.NewNoopAlertCache(),
				cfg.Engine.Agents,
			)

			scan, err := svc.Scan(c.Context, c.String("warehouse"), c.Int("max"))
			if err != nil {
				return err
			}
			return printJSON(scan)
		},
	}
}

func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "Run a Monte Carlo simulation for a stored scenario",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scenario", Usage: "Scenario id", Required: true},
			&cli.IntFlag{Name: "iterations", Usage: "Iteration count (0 uses the configured default)"},
			&cli.Int64Flag{Name: "seed", Usage: "Random seed (defaults to the current time)"},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			db, err := postgres.NewDB(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			svc := service.NewScenarioService(
				postgres.NewScenarioRepository(db.DB),
				postgres.NewDemandRepository(db.DB),
				cfg.Engine.Scenario,
			)

			seed := c.Int64("seed")
			if !c.IsSet("seed") {
				seed = time.Now().UnixNano()
			}

			result, err := svc.Simulate(c.Context, c.String("scenario"), c.Int("iterations"), seed)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a stored forecast or plan to object storage",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "forecast-id", Usage: "Forecast id to export"},
			&cli.StringFlag{Name: "plan-id", Usage: "Plan id to export"},
		},
		Action: func(c *cli.Context) error {
			forecastID := c.String("forecast-id")
			planID := c.String("plan-id")
			if forecastID == "" && planID == "" {
				return fmt.Errorf("one of --forecast-id or --plan-id is required")
			}

			cfg := config.Load()
			db, err := postgres.NewDB(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			store, err := storage.NewMinioStorage(cfg.Export)
			if err != nil {
				return err
			}
			exporter := storage.NewExporter(store)

			if forecastID != "" {
				record, err := postgres.NewForecastRepository(db.DB).Get(c.Context, forecastID)
				if err != nil {
					return err
				}
				key, err := exporter.ExportForecast(c.Context, record)
				if err != nil {
					return err
				}
				fmt.Println(key)
				return nil
			}

			record, err := postgres.NewPlanRepository(db.DB).Get(c.Context, planID)
			if err != nil {
				return err
			}
			key, err := exporter.ExportPlan(c.Context, record)
			if err != nil {
				return err
			}
			fmt.Println(key)
			return nil
		},
	}
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
