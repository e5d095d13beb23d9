package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "LOG_LEVEL", "DEFAULT_FLOORS", "DEFAULT_ELEVATOR_COUNT",
		"DEFAULT_MAX_LOAD", "DEFAULT_SPEED", "DEFAULT_ALGORITHM",
		"MAX_WORKER_PROCESSES", "STALL_TICKS", "METRICS_ENABLED", "TRACING_ENABLED",
	} {
		os.Unsetenv(key)
	}
}

func TestInitConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := InitConfig()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.DefaultFloors)
	assert.Equal(t, 1, cfg.DefaultElevators)
	assert.Equal(t, "Destination Dispatch", cfg.DefaultAlgorithm)
	assert.Equal(t, 500, cfg.StallTicks)
}

func TestInitConfig_TestingEnvironment(t *testing.T) {
	clearEnv(t)
	os.Setenv("ENV", "testing")
	defer clearEnv(t)

	cfg, err := InitConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsTesting())
	assert.False(t, cfg.MetricsEnabled)
	assert.False(t, cfg.TracingEnabled)
}

func TestInitConfig_ProductionEnvironment(t *testing.T) {
	clearEnv(t)
	os.Setenv("ENV", "production")
	defer clearEnv(t)

	cfg, err := InitConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "WARN", cfg.LogLevel)
}

func TestValidateConfiguration_InvalidFloors(t *testing.T) {
	cfg := &Config{DefaultFloors: 0, DefaultElevators: 1, DefaultMaxLoad: 1, DefaultSpeed: 1, MaxElevators: 1, StallTicks: 1}
	err := validateConfiguration(cfg)
	assert.Error(t, err)
}

func TestValidateConfiguration_InvalidElevatorCount(t *testing.T) {
	cfg := &Config{DefaultFloors: 5, DefaultElevators: 0, DefaultMaxLoad: 1, DefaultSpeed: 1, MaxElevators: 1, StallTicks: 1}
	err := validateConfiguration(cfg)
	assert.Error(t, err)
}

func TestValidateConfiguration_NegativeWorkerProcesses(t *testing.T) {
	cfg := &Config{
		DefaultFloors: 5, DefaultElevators: 1, DefaultMaxLoad: 1, DefaultSpeed: 1,
		MaxElevators: 1, StallTicks: 1, MaxWorkerProcesses: -1,
	}
	err := validateConfiguration(cfg)
	assert.Error(t, err)
}
