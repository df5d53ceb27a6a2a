package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the settings required for one analysis run.
type Config struct {
	Prometheus PrometheusConfig `yaml:"prometheus"`
	Grafana    GrafanaConfig    `yaml:"grafana"`
	Logging    LoggingConfig    `yaml:"logging"`
	Output     OutputConfig     `yaml:"output"`
	Rules      RulesConfig      `yaml:"rules"`
	Thresholds Thresholds       `yaml:"thresholds"`
}

// PrometheusConfig configures access to the time-series backend.
type PrometheusConfig struct {
	BaseURL      string        `yaml:"baseURL"`
	QueryTimeout time.Duration `yaml:"queryTimeout"`
	PingTimeout  time.Duration `yaml:"pingTimeout"`
	RangeStep    time.Duration `yaml:"rangeStep"`
}

// GrafanaConfig holds the dashboard URL printed in the report footer.
type GrafanaConfig struct {
	BaseURL string `yaml:"baseURL"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// OutputConfig selects the report renderer.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// RulesConfig controls rule-pack loading for the message-rate checks.
type RulesConfig struct {
	Path string `yaml:"path"`
}

// Thresholds is the fixed threshold table driving every analysis check.
// All comparisons against these values are strict greater-than. The
// defaults reproduce the hand-tuned constants the checks were written
// around; they live in configuration so operators can tune them without
// code changes.
type Thresholds struct {
	ActiveConnections      float64 `yaml:"activeConnections"`
	ConnectionErrorRate    float64 `yaml:"connectionErrorRate"`
	TotalMessageRate       float64 `yaml:"totalMessageRate"`
	PerConnectionKBps      float64 `yaml:"perConnectionKBps"`
	BandwidthCriticalMBps  float64 `yaml:"bandwidthCriticalMBps"`
	BandwidthHighKBps      float64 `yaml:"bandwidthHighKBps"`
	EffectiveBroadcastRate float64 `yaml:"effectiveBroadcastRate"`
	ProcessingP95Ms        float64 `yaml:"processingP95Ms"`
	GoroutinesCritical     float64 `yaml:"goroutinesCritical"`
	GoroutinesHigh         float64 `yaml:"goroutinesHigh"`
	HeapGrowthBytesPerSec  float64 `yaml:"heapGrowthBytesPerSec"`
	CPUUtilization         float64 `yaml:"cpuUtilization"`
	GCPerMinute            float64 `yaml:"gcPerMinute"`
}

// Load initialises Config from a YAML file and optional environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("GAMEWATCH_CONFIG")
	}

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		Prometheus: PrometheusConfig{
			BaseURL:      "http://localhost:9090",
			QueryTimeout: 5 * time.Second,
			PingTimeout:  2 * time.Second,
			RangeStep:    15 * time.Second,
		},
		Grafana: GrafanaConfig{BaseURL: "http://localhost:3000"},
		Logging: LoggingConfig{Level: "info", JSON: false},
		Output:  OutputConfig{Format: "text"},
		Rules:   RulesConfig{Path: "configs/rules/messages.yaml"},
		Thresholds: Thresholds{
			ActiveConnections:      50,
			ConnectionErrorRate:    0.1,
			TotalMessageRate:       100,
			PerConnectionKBps:      50,
			BandwidthCriticalMBps:  1,
			BandwidthHighKBps:      500,
			EffectiveBroadcastRate: 100,
			ProcessingP95Ms:        100,
			GoroutinesCritical:     5000,
			GoroutinesHigh:         1000,
			HeapGrowthBytesPerSec:  100000,
			CPUUtilization:         0.8,
			GCPerMinute:            20,
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GAMEWATCH_PROMETHEUS_URL"); v != "" {
		cfg.Prometheus.BaseURL = v
	}
	if v := os.Getenv("GAMEWATCH_GRAFANA_URL"); v != "" {
		cfg.Grafana.BaseURL = v
	}
	if v := os.Getenv("GAMEWATCH_QUERY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Prometheus.QueryTimeout = d
		}
	}
	if v := os.Getenv("GAMEWATCH_PING_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Prometheus.PingTimeout = d
		}
	}
	if v := os.Getenv("GAMEWATCH_RANGE_STEP"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Prometheus.RangeStep = d
		}
	}
	if v := os.Getenv("GAMEWATCH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("GAMEWATCH_LOG_FORMAT"); v == "json" {
		cfg.Logging.JSON = true
	}
	if v := os.Getenv("GAMEWATCH_OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("GAMEWATCH_RULES_PATH"); v != "" {
		cfg.Rules.Path = v
	}
}
