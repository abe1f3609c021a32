// Package decision defines the decision types the pipeline can produce:
// their input contexts, response schemas, prompt specifications, and
// conservative default providers, plus the typed results handed back to
// callers.
package decision

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/hugo-ops/hugo/internal/prompt"
	"github.com/hugo-ops/hugo/internal/types"
)

// Decision type identifiers for the built-in decision types.
const (
	TypeAlertDecision           = "alert_decision"
	TypeRiskAssessment          = "risk_assessment"
	TypeInventoryRecommendation = "inventory_recommendation"
)

// Tier identifies which attempt level produced a decision.
type Tier string

const (
	// TierPrimarySuccess means the full prompt succeeded on the first attempt.
	TierPrimarySuccess Tier = "primary_success"

	// TierFallbackSuccess means the simplified prompt succeeded after the
	// primary attempt failed.
	TierFallbackSuccess Tier = "fallback_success"

	// TierConservativeDefault means both oracle attempts failed and the
	// deterministic default provider produced the decision.
	TierConservativeDefault Tier = "conservative_default"
)

// String returns the string representation of the Tier
func (t Tier) String() string {
	return string(t)
}

// IsValid checks if the tier is a valid value
func (t Tier) IsValid() bool {
	switch t {
	case TierPrimarySuccess, TierFallbackSuccess, TierConservativeDefault:
		return true
	default:
		return false
	}
}

// FromOracle reports whether the tier's decision came from an oracle call.
func (t Tier) FromOracle() bool {
	return t == TierPrimarySuccess || t == TierFallbackSuccess
}

// Context is the input payload describing the situation being decided on.
// Implementations are immutable value types owned by the caller; the
// pipeline never mutates them.
type Context interface {
	// DecisionType returns the decision type identifier this context feeds.
	DecisionType() string

	// Sections returns the labeled context blocks for the full prompt.
	Sections() []prompt.Section

	// SimplifiedSections returns the reduced context blocks for the
	// fallback prompt.
	SimplifiedSections() []prompt.Section
}

// Parsed is a validated decision: a mapping from field name to value,
// tagged by decision type. It is constructed only by a zero-violation
// validation pass or by a conservative default provider, never partially.
type Parsed struct {
	Type   string         `json:"type"`
	Fields map[string]any `json:"fields"`
}

// Result is what every Decide call returns. It is always well formed:
// RawResponse is set only for oracle tiers, and Err is set only when the
// pipeline escalated past the primary tier.
type Result struct {
	ID          uuid.UUID
	Decision    Parsed
	Tier        Tier
	RawResponse string
	Err         error
	Latency     time.Duration
}

// Escalated reports whether the pipeline had to move past the primary tier.
func (r Result) Escalated() bool {
	return r.Tier != TierPrimarySuccess
}

// MarshalJSON flattens the decision fields alongside tier and diagnostic
// metadata, the shape downstream consumers (alerting, inventory,
// dashboards) ingest.
func (r Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Decision.Fields)+6)
	for k, v := range r.Decision.Fields {
		out[k] = v
	}

	out["id"] = r.ID.String()
	out["decision_type"] = r.Decision.Type
	out["tier"] = r.Tier.String()
	out["latency_ms"] = r.Latency.Milliseconds()

	if r.Tier.FromOracle() {
		out["raw_response"] = r.RawResponse
	} else {
		out["raw_response"] = nil
	}

	if r.Err != nil {
		out["error"] = r.Err.Error()
	} else {
		out["error"] = nil
	}

	return json.Marshal(out)
}

// decode maps validated fields into a typed struct via mapstructure,
// guarding against accessor/type mismatches.
func (p Parsed) decode(expectedType string, out any) error {
	if p.Type != expectedType {
		return types.NewError(types.DECISION_TYPE_NOT_REGISTERED,
			"parsed decision has type "+p.Type+", want "+expectedType)
	}
	if err := mapstructure.Decode(p.Fields, out); err != nil {
		return types.WrapError(types.RESPONSE_SCHEMA_VIOLATION,
			"validated fields do not fit typed decision", err)
	}
	return nil
}

// AlertDecision is the typed view of an alert_decision result.
type AlertDecision struct {
	TriggerAlert       bool     `mapstructure:"trigger_alert" json:"trigger_alert"`
	Urgency            string   `mapstructure:"urgency" json:"urgency"`
	Reason             string   `mapstructure:"reason" json:"reason"`
	ShouldEscalate     bool     `mapstructure:"should_escalate" json:"should_escalate"`
	RecommendedActions []string `mapstructure:"recommended_actions" json:"recommended_actions"`
}

// AsAlertDecision decodes the parsed fields into an AlertDecision.
func (p Parsed) AsAlertDecision() (AlertDecision, error) {
	var out AlertDecision
	err := p.decode(TypeAlertDecision, &out)
	return out, err
}

// RiskAssessment is the typed view of a risk_assessment result.
type RiskAssessment struct {
	RiskLevel          string   `mapstructure:"risk_level" json:"risk_level"`
	RiskScore          float64  `mapstructure:"risk_score" json:"risk_score"`
	Drivers            []string `mapstructure:"drivers" json:"drivers"`
	RecommendedActions []string `mapstructure:"recommended_actions" json:"recommended_actions"`
}

// AsRiskAssessment decodes the parsed fields into a RiskAssessment.
func (p Parsed) AsRiskAssessment() (RiskAssessment, error) {
	var out RiskAssessment
	err := p.decode(TypeRiskAssessment, &out)
	return out, err
}

// InventoryRecommendation is the typed view of an inventory_recommendation result.
type InventoryRecommendation struct {
	ReorderPoint             float64  `mapstructure:"reorder_point" json:"reorder_point"`
	SafetyStock              float64  `mapstructure:"safety_stock" json:"safety_stock"`
	LotSize                  float64  `mapstructure:"lot_size" json:"lot_size"`
	ExpectedFillRate         float64  `mapstructure:"expected_fill_rate" json:"expected_fill_rate"`
	ExpectedStockoutsPerYear float64  `mapstructure:"expected_stockouts_per_year" json:"expected_stockouts_per_year"`
	Rationale                string   `mapstructure:"rationale" json:"rationale"`
	TradeOffs                string   `mapstructure:"trade_offs" json:"trade_offs"`
	KeyFactors               []string `mapstructure:"key_factors" json:"key_factors"`
}

// AsInventoryRecommendation decodes the parsed fields into an InventoryRecommendation.
func (p Parsed) AsInventoryRecommendation() (InventoryRecommendation, error) {
	var out InventoryRecommendation
	err := p.decode(TypeInventoryRecommendation, &out)
	return out, err
}
