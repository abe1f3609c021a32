// Package config loads and validates the pipeline configuration from YAML,
// with ${VAR_NAME} environment interpolation for values that should not live
// in the file, such as the oracle endpoint in shared deployments.
package config

import (
	"time"
)

// Config is the root configuration for the decision pipeline.
type Config struct {
	Oracle   OracleConfig   `mapstructure:"oracle" yaml:"oracle" validate:"required"`
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`
	Audit    AuditConfig    `mapstructure:"audit" yaml:"audit"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// OracleConfig describes the LLM endpoint the pipeline consults.
type OracleConfig struct {
	BaseURL     string  `mapstructure:"base_url" yaml:"base_url" validate:"required,url"`
	Model       string  `mapstructure:"model" yaml:"model" validate:"required"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature" validate:"min=0,max=2"`
}

// PipelineConfig holds the per-tier budgets and the batch worker limit.
type PipelineConfig struct {
	PrimaryTimeout  time.Duration `mapstructure:"primary_timeout" yaml:"primary_timeout" validate:"min=1s"`
	FallbackTimeout time.Duration `mapstructure:"fallback_timeout" yaml:"fallback_timeout" validate:"min=1s"`
	BatchWorkers    int           `mapstructure:"batch_workers" yaml:"batch_workers" validate:"min=1,max=64"`
	// GuidelineOverrides points at an optional YAML file adjusting the
	// prompt guidelines of registered decision types.
	GuidelineOverrides string `mapstructure:"guideline_overrides" yaml:"guideline_overrides,omitempty"`
}

// AuditConfig controls the JSONL audit trail.
type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path" validate:"required_if=Enabled true"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=json text"`
}
