package config

import "time"

// DefaultConfig returns a configuration suitable for a local Ollama
// deployment with the stock budgets.
func DefaultConfig() *Config {
	return &Config{
		Oracle: OracleConfig{
			BaseURL:     "http://localhost:11434",
			Model:       "llama3.1:8b",
			Temperature: 0.2,
		},
		Pipeline: PipelineConfig{
			PrimaryTimeout:  90 * time.Second,
			FallbackTimeout: 30 * time.Second,
			BatchWorkers:    2,
		},
		Audit: AuditConfig{
			Enabled: true,
			Path:    "hugo-audit.jsonl",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
