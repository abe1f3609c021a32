package decision

import (
	"github.com/hugo-ops/hugo/internal/schema"
)

// extremeDelayDays is the conservative-default trigger: a delay magnitude
// beyond this marks the change as high risk without oracle input.
const extremeDelayDays = 21

// RiskSchema is the response contract for risk_assessment.
func RiskSchema() schema.Schema {
	return schema.NewSchema(
		schema.NewEnumField("risk_level", UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical),
		schema.NewNumberField("risk_score").WithRange(0, 1),
		schema.NewArrayField("drivers", schema.NewStringField("")),
		schema.NewArrayField("recommended_actions", schema.NewStringField("")),
	)
}

// RiskDefinition builds the risk_assessment definition: grade the
// operational risk of a detected delivery change.
func RiskDefinition() Definition {
	return Definition{
		Type:   TypeRiskAssessment,
		Schema: RiskSchema(),
		Full: PromptVariant{
			Task: "You are a supply chain risk assessment system. Grade the operational " +
				"risk this delivery change poses to production and fulfillment. " +
				"Weigh delay magnitude, order priority, inventory buffer, supplier " +
				"reliability, and time until the parts are needed. Name the concrete " +
				"drivers behind the grade and the actions that would reduce the risk.",
			Guidelines: []string{
				"risk_score reflects likelihood and severity combined, 0 = negligible, 1 = certain severe impact",
				"risk_level must be consistent with risk_score",
				"Delays on critical orders with thin inventory are high risk even when short",
				"Early deliveries are rarely more than low risk unless storage is constrained",
			},
		},
		Simplified: PromptVariant{
			Task: "Quick risk grade. Rate the operational risk of this delivery change.",
			Guidelines: []string{
				"When uncertain, grade one level higher rather than lower",
			},
		},
		Conservative: ConservativeRisk,
	}
}

// ConservativeRisk is the oracle-free default for risk_assessment: medium
// risk at 0.55, raised to high only by extreme deterministic triggers
// (delay magnitude beyond 21 days, or a full cancellation). Critical order
// priority bumps the score without changing the level on its own.
func ConservativeRisk(c Context) Parsed {
	var event ChangeEvent
	if rc, ok := c.(RiskContext); ok {
		event = rc.Event
	}

	score := 0.55
	level := UrgencyMedium
	drivers := []any{}

	delay := event.DelayDays
	if delay < 0 {
		delay = -delay
	}
	if delay > extremeDelayDays {
		score = 0.8
		level = UrgencyHigh
		drivers = append(drivers, "extreme delivery delay")
	}
	if event.ChangeType == "cancellation" {
		if score < 0.7 {
			score = 0.7
		}
		level = UrgencyHigh
		drivers = append(drivers, "order cancellation")
	}
	if event.POPriority == "critical" {
		score += 0.15
		if score > 1.0 {
			score = 1.0
		}
		drivers = append(drivers, "critical order priority")
	}
	if len(drivers) == 0 {
		drivers = append(drivers, "insufficient data for assessment")
	}

	return Parsed{
		Type: TypeRiskAssessment,
		Fields: map[string]any{
			"risk_level": level,
			"risk_score": score,
			"drivers":    drivers,
			"recommended_actions": []any{
				"Manual review required - oracle unavailable",
				"Contact supplier immediately",
			},
		},
	}
}
