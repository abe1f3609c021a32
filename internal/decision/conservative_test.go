package decision

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-ops/hugo/internal/schema"
)

func TestConservativeAlert_FailSafeBias(t *testing.T) {
	tests := []struct {
		name             string
		event            ChangeEvent
		expectedUrgency  string
		expectedEscalate bool
	}{
		{
			name:             "plain delay",
			event:            ChangeEvent{ChangeType: "delay", DelayDays: 3},
			expectedUrgency:  UrgencyMedium,
			expectedEscalate: false,
		},
		{
			name:             "critical priority",
			event:            ChangeEvent{ChangeType: "delay", DelayDays: 3, POPriority: "critical"},
			expectedUrgency:  UrgencyHigh,
			expectedEscalate: true,
		},
		{
			name:             "cancellation",
			event:            ChangeEvent{ChangeType: "cancellation"},
			expectedUrgency:  UrgencyHigh,
			expectedEscalate: true,
		},
		{
			name:             "cancellation of critical order",
			event:            ChangeEvent{ChangeType: "cancellation", POPriority: "critical"},
			expectedUrgency:  UrgencyHigh,
			expectedEscalate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ConservativeAlert(AlertContext{Event: tt.event})

			alert, err := parsed.AsAlertDecision()
			require.NoError(t, err)

			// Fail-safe bias: always alert when the oracle cannot be consulted.
			assert.True(t, alert.TriggerAlert)
			assert.Equal(t, tt.expectedUrgency, alert.Urgency)
			assert.Equal(t, tt.expectedEscalate, alert.ShouldEscalate)
			assert.NotEmpty(t, alert.RecommendedActions)
		})
	}
}

func TestConservativeRisk_Defaults(t *testing.T) {
	tests := []struct {
		name          string
		event         ChangeEvent
		expectedLevel string
		expectedScore float64
	}{
		{
			name:          "no extreme trigger stays medium",
			event:         ChangeEvent{ChangeType: "delay", DelayDays: 10},
			expectedLevel: UrgencyMedium,
			expectedScore: 0.55,
		},
		{
			name:          "boundary delay stays medium",
			event:         ChangeEvent{ChangeType: "delay", DelayDays: 21},
			expectedLevel: UrgencyMedium,
			expectedScore: 0.55,
		},
		{
			name:          "extreme delay escalates to high",
			event:         ChangeEvent{ChangeType: "delay", DelayDays: 22},
			expectedLevel: UrgencyHigh,
			expectedScore: 0.8,
		},
		{
			name:          "extreme early delivery escalates too",
			event:         ChangeEvent{ChangeType: "early", DelayDays: -30},
			expectedLevel: UrgencyHigh,
			expectedScore: 0.8,
		},
		{
			name:          "cancellation escalates to high",
			event:         ChangeEvent{ChangeType: "cancellation"},
			expectedLevel: UrgencyHigh,
			expectedScore: 0.7,
		},
		{
			name:          "critical priority bumps score without changing level",
			event:         ChangeEvent{ChangeType: "delay", DelayDays: 5, POPriority: "critical"},
			expectedLevel: UrgencyMedium,
			expectedScore: 0.7,
		},
		{
			name:          "extreme delay on critical order",
			event:         ChangeEvent{ChangeType: "delay", DelayDays: 40, POPriority: "critical"},
			expectedLevel: UrgencyHigh,
			expectedScore: 0.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ConservativeRisk(RiskContext{Event: tt.event})

			risk, err := parsed.AsRiskAssessment()
			require.NoError(t, err)

			assert.Equal(t, tt.expectedLevel, risk.RiskLevel)
			assert.InDelta(t, tt.expectedScore, risk.RiskScore, 1e-9)
			assert.NotEmpty(t, risk.Drivers)
			assert.NotEmpty(t, risk.RecommendedActions)
		})
	}
}

func TestConservativeRisk_ScoreCapped(t *testing.T) {
	// Even stacked triggers never push the score above 1.0.
	parsed := ConservativeRisk(RiskContext{Event: ChangeEvent{
		ChangeType: "cancellation",
		DelayDays:  60,
		POPriority: "critical",
	}})

	risk, err := parsed.AsRiskAssessment()
	require.NoError(t, err)
	assert.LessOrEqual(t, risk.RiskScore, 1.0)
}

func TestConservativeInventory_ProportionalIncrease(t *testing.T) {
	part := PartData{
		SKU:                 "SKU-001",
		CurrentReorderPoint: 100,
		CurrentSafetyStock:  50,
		CurrentLotSize:      200,
	}

	parsed := ConservativeInventory(part)

	rec, err := parsed.AsInventoryRecommendation()
	require.NoError(t, err)

	assert.InDelta(t, 120, rec.ReorderPoint, 1e-9)
	assert.InDelta(t, 65, rec.SafetyStock, 1e-9)
	assert.InDelta(t, 220, rec.LotSize, 1e-9)
	assert.InDelta(t, 0.90, rec.ExpectedFillRate, 1e-9)
	assert.InDelta(t, 2, rec.ExpectedStockoutsPerYear, 1e-9)
	assert.Contains(t, rec.Rationale, "SKU-001")
	assert.NotEmpty(t, rec.TradeOffs)
}

func TestConservativeInventory_ZeroSettingsUseDefaults(t *testing.T) {
	parsed := ConservativeInventory(PartData{SKU: "SKU-EMPTY"})

	rec, err := parsed.AsInventoryRecommendation()
	require.NoError(t, err)

	assert.InDelta(t, 120, rec.ReorderPoint, 1e-9) // 100 * 1.2
	assert.InDelta(t, 65, rec.SafetyStock, 1e-9)   // 50 * 1.3
	assert.InDelta(t, 220, rec.LotSize, 1e-9)      // 200 * 1.1
}

func TestConservativeProviders_Deterministic(t *testing.T) {
	alertCtx := AlertContext{Event: ChangeEvent{ChangeType: "cancellation", POPriority: "critical"}}
	riskCtx := RiskContext{Event: ChangeEvent{ChangeType: "delay", DelayDays: 30}}
	part := PartData{SKU: "SKU-1", CurrentReorderPoint: 10, CurrentSafetyStock: 5, CurrentLotSize: 20}

	assert.Equal(t, ConservativeAlert(alertCtx), ConservativeAlert(alertCtx))
	assert.Equal(t, ConservativeRisk(riskCtx), ConservativeRisk(riskCtx))
	assert.Equal(t, ConservativeInventory(part), ConservativeInventory(part))
}

// Conservative outputs must satisfy the same schema the oracle is held to.
func TestConservativeProviders_SatisfyOwnSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema schema.Schema
		parsed Parsed
	}{
		{
			name:   "alert",
			schema: AlertSchema(),
			parsed: ConservativeAlert(AlertContext{Event: ChangeEvent{ChangeType: "delay"}}),
		},
		{
			name:   "risk",
			schema: RiskSchema(),
			parsed: ConservativeRisk(RiskContext{Event: ChangeEvent{ChangeType: "cancellation", POPriority: "critical"}}),
		},
		{
			name:   "inventory",
			schema: InventorySchema(),
			parsed: ConservativeInventory(PartData{SKU: "SKU-9"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.parsed.Fields)
			require.NoError(t, err)

			_, err = schema.Validate(tt.schema, string(raw))
			assert.NoError(t, err)
		})
	}
}
