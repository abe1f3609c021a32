package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-ops/hugo/internal/decision"
)

func TestParseContext_Alert(t *testing.T) {
	raw := []byte(`{
		"change_event": {
			"change_type": "delay",
			"delay_days": 14,
			"po_priority": "critical",
			"supplier_name": "Acme Metals"
		},
		"operational_context": {
			"production_capacity": 500,
			"alternate_suppliers": false
		}
	}`)

	dc, err := parseContext(decision.TypeAlertDecision, raw)
	require.NoError(t, err)

	alert, ok := dc.(decision.AlertContext)
	require.True(t, ok)
	assert.Equal(t, "delay", alert.Event.ChangeType)
	assert.Equal(t, 14, alert.Event.DelayDays)
	require.NotNil(t, alert.Operational)
	require.NotNil(t, alert.Operational.ProductionCapacity)
	assert.Equal(t, 500, *alert.Operational.ProductionCapacity)
}

func TestParseContext_Inventory(t *testing.T) {
	raw := []byte(`{
		"sku": "SKU-001",
		"annual_demand": 1200,
		"lead_time_days": 30,
		"current_reorder_point": 100
	}`)

	dc, err := parseContext(decision.TypeInventoryRecommendation, raw)
	require.NoError(t, err)

	part, ok := dc.(decision.PartData)
	require.True(t, ok)
	assert.Equal(t, "SKU-001", part.SKU)
	assert.Equal(t, 1200.0, part.AnnualDemand)
}

func TestParseContext_RejectsUnknownFields(t *testing.T) {
	raw := []byte(`{"change_event": {"change_type": "delay"}, "unexpected": 1}`)

	_, err := parseContext(decision.TypeRiskAssessment, raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected")
}

func TestParseContext_UnknownType(t *testing.T) {
	_, err := parseContext("approval_decision", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "approval_decision")
	assert.Contains(t, err.Error(), decision.TypeAlertDecision)
}

func TestParseContexts_Batch(t *testing.T) {
	raw := []byte(`[
		{"change_event": {"change_type": "delay", "delay_days": 3}},
		{"change_event": {"change_type": "cancellation"}}
	]`)

	contexts, err := parseContexts(decision.TypeRiskAssessment, raw, true)
	require.NoError(t, err)
	require.Len(t, contexts, 2)
	assert.Equal(t, decision.TypeRiskAssessment, contexts[0].DecisionType())
}

func TestParseContexts_BatchErrors(t *testing.T) {
	_, err := parseContexts(decision.TypeRiskAssessment, []byte(`{}`), true)
	require.Error(t, err)

	_, err = parseContexts(decision.TypeRiskAssessment, []byte(`[]`), true)
	require.Error(t, err)

	_, err = parseContexts(decision.TypeRiskAssessment, []byte(`[{"bogus": true}]`), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context 0")
}
