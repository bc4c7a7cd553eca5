// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Export   ExportConfig
	Engine   EngineConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled            bool
	RedisURL           string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	ForecastTTLSeconds int
	AlertTTLSeconds    int
}

type ExportConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// EngineConfig carries tuning knobs for the analytics engine. Everything here
// has a sane default; none of it is required at startup.
type EngineConfig struct {
	Forecast  ForecastConfig
	Optimizer OptimizerConfig
	Scenario  ScenarioConfig
	Agents    AgentConfig
}

type ForecastConfig struct {
	BatchWorkers    int
	HoldoutFraction float64
}

type OptimizerConfig struct {
	// EOQ economics used when vendor-specific costs are absent.
	DefaultUnitCost     float64
	DefaultOrderingCost float64
	HoldingCostRate     float64
}

type ScenarioConfig struct {
	DefaultSimulations int
	DemandCV           float64
	SupplyCV           float64
	PriceCV            float64
}

type AgentConfig struct {
	OverstockDaysThreshold float64
	SupplyGapThresholdPct  float64
	BiasThreshold          float64
	LeadTimeBufferPct      float64
	MaxAlerts              int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 30)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "demand_planner")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_FORECAST_TTL_SECONDS", 300)
		viper.SetDefault("CACHE_ALERT_TTL_SECONDS", 60)
		viper.SetDefault("EXPORT_ENABLED", false)
		viper.SetDefault("EXPORT_ENDPOINT", "")
		viper.SetDefault("EXPORT_ACCESS_KEY", "")
		viper.SetDefault("EXPORT_SECRET_KEY", "")
		viper.SetDefault("EXPORT_BUCKET", "planner-exports")
		viper.SetDefault("EXPORT_USE_SSL", true)
		viper.SetDefault("FORECAST_BATCH_WORKERS", 8)
		viper.SetDefault("FORECAST_HOLDOUT_FRACTION", 0.2)
		viper.SetDefault("PLANNING_DEFAULT_UNIT_COST", 1000.0)
		viper.SetDefault("PLANNING_DEFAULT_ORDERING_COST", 100.0)
		viper.SetDefault("PLANNING_HOLDING_COST_RATE", 0.2)
		viper.SetDefault("SCENARIO_DEFAULT_SIMULATIONS", 1000)
		viper.SetDefault("SCENARIO_DEMAND_CV", 0.15)
		viper.SetDefault("SCENARIO_SUPPLY_CV", 0.10)
		viper.SetDefault("SCENARIO_PRICE_CV", 0.05)
		viper.SetDefault("AGENT_OVERSTOCK_DAYS", 90.0)
		viper.SetDefault("AGENT_SUPPLY_GAP_PCT", 10.0)
		viper.SetDefault("AGENT_BIAS_THRESHOLD", 5.0)
		viper.SetDefault("AGENT_LEAD_TIME_BUFFER_PCT", 20.0)
		viper.SetDefault("AGENT_MAX_ALERTS", 100)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:            viper.GetBool("CACHE_ENABLED"),
				RedisURL:           viper.GetString("REDIS_URL"),
				RedisHost:          viper.GetString("REDIS_HOST"),
				RedisPort:          viper.GetString("REDIS_PORT"),
				RedisPassword:      viper.GetString("REDIS_PASSWORD"),
				RedisDB:            viper.GetInt("REDIS_DB"),
				ForecastTTLSeconds: viper.GetInt("CACHE_FORECAST_TTL_SECONDS"),
				AlertTTLSeconds:    viper.GetInt("CACHE_ALERT_TTL_SECONDS"),
			},
			Export: ExportConfig{
				Enabled:   viper.GetBool("EXPORT_ENABLED"),
				Endpoint:  viper.GetString("EXPORT_ENDPOINT"),
				AccessKey: viper.GetString("EXPORT_ACCESS_KEY"),
				SecretKey: viper.GetString("EXPORT_SECRET_KEY"),
				Bucket:    viper.GetString("EXPORT_BUCKET"),
				UseSSL:    viper.GetBool("EXPORT_USE_SSL"),
			},
			Engine: EngineConfig{
				Forecast: ForecastConfig{
					BatchWorkers:    viper.GetInt("FORECAST_BATCH_WORKERS"),
					HoldoutFraction: viper.GetFloat64("FORECAST_HOLDOUT_FRACTION"),
				},
				Optimizer: OptimizerConfig{
					DefaultUnitCost:     viper.GetFloat64("PLANNING_DEFAULT_UNIT_COST"),
					DefaultOrderingCost: viper.GetFloat64("PLANNING_DEFAULT_ORDERING_COST"),
					HoldingCostRate:     viper.GetFloat64("PLANNING_HOLDING_COST_RATE"),
				},
				Scenario: ScenarioConfig{
					DefaultSimulations: viper.GetInt("SCENARIO_DEFAULT_SIMULATIONS"),
					DemandCV:           viper.GetFloat64("SCENARIO_DEMAND_CV"),
					SupplyCV:           viper.GetFloat64("SCENARIO_SUPPLY_CV"),
					PriceCV:            viper.GetFloat64("SCENARIO_PRICE_CV"),
				},
				Agents: AgentConfig{
					OverstockDaysThreshold: viper.GetFloat64("AGENT_OVERSTOCK_DAYS"),
					SupplyGapThresholdPct:  viper.GetFloat64("AGENT_SUPPLY_GAP_PCT"),
					BiasThreshold:          viper.GetFloat64("AGENT_BIAS_THRESHOLD"),
					LeadTimeBufferPct:      viper.GetFloat64("AGENT_LEAD_TIME_BUFFER_PCT"),
					MaxAlerts:              viper.GetInt("AGENT_MAX_ALERTS"),
				},
			},
		}
	})

	return instance
}
