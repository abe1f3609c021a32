package decision

import (
	"github.com/hugo-ops/hugo/internal/schema"
)

// Urgency levels shared by alert and risk decisions.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// AlertSchema is the response contract for alert_decision.
func AlertSchema() schema.Schema {
	return schema.NewSchema(
		schema.NewBoolField("trigger_alert"),
		schema.NewEnumField("urgency", UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical),
		schema.NewStringField("reason"),
		schema.NewBoolField("should_escalate"),
		schema.NewArrayField("recommended_actions", schema.NewStringField("")).AsNullable(),
	)
}

// AlertDefinition builds the alert_decision definition: evaluate whether a
// supplier change event warrants an operational alert.
func AlertDefinition() Definition {
	return Definition{
		Type:   TypeAlertDecision,
		Schema: AlertSchema(),
		Full: PromptVariant{
			Task: "You are an operations alert intelligence system. Evaluate whether this " +
				"supplier change event warrants an operational alert. Consider: " +
				"impact on production (can we still build products?), inventory buffer " +
				"(do we have enough stock?), order priority (is this for a critical order?), " +
				"supplier reliability (is this expected behavior?), timeline (how urgent is this?), " +
				"and alternatives (can we switch suppliers?).",
			Guidelines: []string{
				"Base decision on operational impact, not just delay duration",
				"A 2-day early delivery with adequate inventory may not warrant an alert",
				"A critical order with unknown delay may warrant a high urgency alert",
				"Escalate if production risk is high or supplier is unreliable",
			},
		},
		Simplified: PromptVariant{
			Task: "Quick alert decision. Decide whether this supplier change needs an " +
				"operational alert and rate the urgency.",
			Guidelines: []string{
				"Err on the side of alerting when impact is unclear",
			},
		},
		Conservative: ConservativeAlert,
	}
}

// ConservativeAlert is the oracle-free default for alert_decision. It is
// fail-safe biased: always alert, with urgency raised for critical orders
// and cancellations. Pure function of the context; cannot fail.
func ConservativeAlert(c Context) Parsed {
	var event ChangeEvent
	if ac, ok := c.(AlertContext); ok {
		event = ac.Event
	}

	urgency := UrgencyMedium
	if event.POPriority == "critical" || event.ChangeType == "cancellation" {
		urgency = UrgencyHigh
	}

	return Parsed{
		Type: TypeAlertDecision,
		Fields: map[string]any{
			"trigger_alert":   true,
			"urgency":         urgency,
			"reason":          "Oracle unavailable; defaulting to alert for safety.",
			"should_escalate": urgency == UrgencyHigh || urgency == UrgencyCritical,
			"recommended_actions": []any{
				"Manual review required - oracle unavailable",
				"Contact supplier",
			},
		},
	}
}
