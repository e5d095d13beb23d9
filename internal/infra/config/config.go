package config

import (
	"time"

	"github.com/caarlos0/env"
	"github.com/slavakukuyev/elevator-go/internal/constants"
	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// Config represents the application configuration for the simulator and
// its test harness.
type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`

	// Default building/scenario parameters. They are parsed and validated
	// here; the harness does not read them, and TestSettings.Validate
	// requires floors, num_elevators and max_load to be set explicitly.
	DefaultFloors      int `env:"DEFAULT_FLOORS" envDefault:"9"`
	DefaultElevators   int `env:"DEFAULT_ELEVATOR_COUNT" envDefault:"1"`
	DefaultMaxLoad     int `env:"DEFAULT_MAX_LOAD" envDefault:"900"` // 15 * 60kg
	DefaultSpeed       float64 `env:"DEFAULT_SPEED" envDefault:"1.0"`
	DefaultAlgorithm   string  `env:"DEFAULT_ALGORITHM" envDefault:"Destination Dispatch"`
	NamePrefix         string  `env:"ELEVATOR_NAME_PREFIX" envDefault:"Elevator"`
	MaxElevators       int     `env:"MAX_ELEVATORS" envDefault:"100"`

	// Harness configuration
	MaxWorkerProcesses int           `env:"MAX_WORKER_PROCESSES" envDefault:"0"` // 0 = runtime.NumCPU()-1
	StallTicks         int           `env:"STALL_TICKS" envDefault:"500"`
	ResultsDir         string        `env:"RESULTS_DIR" envDefault:"results"`
	ExportsDir         string        `env:"EXPORTS_DIR" envDefault:"exports"`
	IncludeRawStats    bool          `env:"INCLUDE_RAW_STATS" envDefault:"false"`
	ExportArtifacts    bool          `env:"EXPORT_ARTIFACTS" envDefault:"false"`
	TickPaceInterval   time.Duration `env:"TICK_PACE_INTERVAL" envDefault:"0s"` // 0 = unpaced (speed = Infinity)

	// Observability
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
	TracingEnabled bool `env:"TRACING_ENABLED" envDefault:"true"`
}

// InitConfig initializes the configuration from environment variables, applies
// environment-specific defaults, and validates the result.
func InitConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, domain.NewInternalError("failed to parse environment variables", err)
	}

	applyEnvironmentDefaults(&cfg)

	if err := validateConfiguration(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvironmentDefaults(cfg *Config) {
	switch cfg.Environment {
	case "development", "dev":
		applyDevelopmentDefaults(cfg)
	case "testing", "test":
		applyTestingDefaults(cfg)
	case "production", "prod":
		applyProductionDefaults(cfg)
	default:
		// Keep parsed/default values for unknown environments.
	}
}

// applyDevelopmentDefaults favors visibility over throughput.
func applyDevelopmentDefaults(cfg *Config) {
	if cfg.LogLevel == "INFO" {
		cfg.LogLevel = "DEBUG"
	}
}

// applyTestingDefaults makes the harness run fast and deterministic, with
// tracing off and MetricsEnabled cleared (the metrics collectors register
// in their package's init() regardless of this flag).
func applyTestingDefaults(cfg *Config) {
	cfg.LogLevel = "WARN"
	cfg.MetricsEnabled = false
	cfg.TracingEnabled = false
	cfg.StallTicks = 500
	cfg.MaxWorkerProcesses = 2
}

// applyProductionDefaults favors throughput: quiet logging, full worker pool.
func applyProductionDefaults(cfg *Config) {
	cfg.LogLevel = "WARN"
	cfg.MaxWorkerProcesses = 0 // runtime.NumCPU()-1
}

func validateConfiguration(cfg *Config) error {
	if cfg.DefaultFloors < 1 {
		return domain.NewValidationError("default floors must be at least 1", nil).
			WithContext("default_floors", cfg.DefaultFloors)
	}

	if cfg.DefaultFloors > constants.MaxAllowedFloor {
		return domain.NewValidationError("default floors exceeds system maximum", nil).
			WithContext("default_floors", cfg.DefaultFloors).
			WithContext("system_maximum", constants.MaxAllowedFloor)
	}

	if cfg.DefaultElevators < 1 {
		return domain.NewValidationError("default elevator count must be at least 1", nil).
			WithContext("default_elevators", cfg.DefaultElevators)
	}

	if cfg.DefaultMaxLoad <= 0 {
		return domain.NewValidationError("default max load must be positive", nil).
			WithContext("default_max_load", cfg.DefaultMaxLoad)
	}

	if cfg.DefaultSpeed <= 0 {
		return domain.NewValidationError("default speed must be positive", nil).
			WithContext("default_speed", cfg.DefaultSpeed)
	}

	if cfg.MaxElevators <= 0 || cfg.MaxElevators > 1000 {
		return domain.NewValidationError("max elevators must be between 1 and 1000", nil).
			WithContext("max_elevators", cfg.MaxElevators)
	}

	if cfg.StallTicks <= 0 {
		return domain.NewValidationError("stall ticks must be positive", nil).
			WithContext("stall_ticks", cfg.StallTicks)
	}

	if cfg.MaxWorkerProcesses < 0 {
		return domain.NewValidationError("max worker processes cannot be negative", nil).
			WithContext("max_worker_processes", cfg.MaxWorkerProcesses)
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// IsTesting returns true if running in testing environment
func (c *Config) IsTesting() bool {
	return c.Environment == "testing" || c.Environment == "test"
}
