package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugo-ops/hugo/internal/audit"
	"github.com/hugo-ops/hugo/internal/decision"
	"github.com/hugo-ops/hugo/internal/observability"
	"github.com/hugo-ops/hugo/internal/oracle"
	"github.com/hugo-ops/hugo/internal/pipeline"
)

var (
	inputPath    string
	batchMode    bool
	batchWorkers int
)

var decideCmd = &cobra.Command{
	Use:   "decide <type>",
	Short: "Produce a decision for the given context",
	Long: `Reads a decision context as JSON and produces a decision.

Supported types:
  alert_decision            change event + operational context
  risk_assessment           change event + operational context
  inventory_recommendation  part demand/cost profile

With --batch the input is a JSON array of contexts, processed through a
bounded worker pool. Output is one JSON result (or an array of them) on
stdout; the pipeline degrades internally, so a result is produced even
when the oracle is down.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecide,
}

func init() {
	decideCmd.Flags().StringVarP(&inputPath, "input", "i", "-", "Context JSON file, or - for stdin")
	decideCmd.Flags().BoolVar(&batchMode, "batch", false, "Treat the input as a JSON array of contexts")
	decideCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Batch worker limit (default from config)")
}

func runDecide(cmd *cobra.Command, args []string) error {
	decisionType := strings.TrimSpace(args[0])

	data, err := readInput(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	contexts, err := parseContexts(decisionType, data, batchMode)
	if err != nil {
		return err
	}

	client, err := oracle.NewOllamaClient(oracle.Config{
		BaseURL:     cfg.Oracle.BaseURL,
		Model:       cfg.Oracle.Model,
		Temperature: cfg.Oracle.Temperature,
	})
	if err != nil {
		return err
	}

	registry := decision.DefaultRegistry()
	if cfg.Pipeline.GuidelineOverrides != "" {
		if err := registry.LoadGuidelineOverrides(cfg.Pipeline.GuidelineOverrides); err != nil {
			return err
		}
	}

	var recorder audit.Recorder = audit.NopRecorder{}
	if cfg.Audit.Enabled {
		jsonl, err := audit.NewJSONLRecorder(cfg.Audit.Path, logger)
		if err != nil {
			return err
		}
		defer jsonl.Close()
		recorder = jsonl
	}

	orch := pipeline.New(
		registry,
		client,
		pipeline.WithRecorder(recorder),
		pipeline.WithTracer(observability.Tracer()),
		pipeline.WithLogger(logger),
		pipeline.WithTimeouts(cfg.Pipeline.PrimaryTimeout, cfg.Pipeline.FallbackTimeout),
	)

	if batchMode {
		workers := batchWorkers
		if workers < 1 {
			workers = cfg.Pipeline.BatchWorkers
		}
		results, err := orch.DecideAll(cmd.Context(), contexts, workers)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), results)
	}

	result, err := orch.Decide(cmd.Context(), contexts[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), result)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// parseContexts decodes the input JSON into one or more typed decision
// contexts. Unknown fields are rejected so input mistakes surface here
// rather than as silently thin prompts.
func parseContexts(decisionType string, data []byte, batch bool) ([]decision.Context, error) {
	var raws []json.RawMessage
	if batch {
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("batch input must be a JSON array: %w", err)
		}
		if len(raws) == 0 {
			return nil, fmt.Errorf("batch input is empty")
		}
	} else {
		raws = []json.RawMessage{data}
	}

	contexts := make([]decision.Context, 0, len(raws))
	for i, raw := range raws {
		dc, err := parseContext(decisionType, raw)
		if err != nil {
			if batch {
				return nil, fmt.Errorf("context %d: %w", i, err)
			}
			return nil, err
		}
		contexts = append(contexts, dc)
	}
	return contexts, nil
}

func parseContext(decisionType string, raw json.RawMessage) (decision.Context, error) {
	decode := func(target any) error {
		dec := json.NewDecoder(strings.NewReader(string(raw)))
		dec.DisallowUnknownFields()
		return dec.Decode(target)
	}

	switch decisionType {
	case decision.TypeAlertDecision:
		var dc decision.AlertContext
		if err := decode(&dc); err != nil {
			return nil, fmt.Errorf("invalid alert context: %w", err)
		}
		return dc, nil
	case decision.TypeRiskAssessment:
		var dc decision.RiskContext
		if err := decode(&dc); err != nil {
			return nil, fmt.Errorf("invalid risk context: %w", err)
		}
		return dc, nil
	case decision.TypeInventoryRecommendation:
		var dc decision.PartData
		if err := decode(&dc); err != nil {
			return nil, fmt.Errorf("invalid part data: %w", err)
		}
		return dc, nil
	default:
		return nil, fmt.Errorf("unknown decision type %q (expected one of: %s)",
			decisionType, strings.Join(decision.DefaultRegistry().Types(), ", "))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
