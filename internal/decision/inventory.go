package decision

import (
	"fmt"

	"github.com/hugo-ops/hugo/internal/schema"
)

// Conservative inventory bumps applied when the oracle cannot be consulted.
// Availability is favored over carrying cost.
const (
	conservativeROPFactor = 1.2
	conservativeSSFactor  = 1.3
	conservativeLotFactor = 1.1
)

// InventorySchema is the response contract for inventory_recommendation.
func InventorySchema() schema.Schema {
	return schema.NewSchema(
		schema.NewNumberField("reorder_point").WithMin(0),
		schema.NewNumberField("safety_stock").WithMin(0),
		schema.NewNumberField("lot_size").WithMin(0),
		schema.NewNumberField("expected_fill_rate").WithRange(0, 1),
		schema.NewNumberField("expected_stockouts_per_year").WithMin(0),
		schema.NewStringField("rationale"),
		schema.NewStringField("trade_offs"),
		schema.NewArrayField("key_factors", schema.NewStringField("")).AsNullable(),
	)
}

// InventoryDefinition builds the inventory_recommendation definition:
// optimize reorder point, safety stock, and lot size for one part.
func InventoryDefinition() Definition {
	return Definition{
		Type:   TypeInventoryRecommendation,
		Schema: InventorySchema(),
		Full: PromptVariant{
			Task: "Optimize inventory settings for this part using trade-off analysis. " +
				"Recommend settings that balance holding costs (minimize excess inventory), " +
				"ordering costs (minimize small frequent orders), stockout risk (maintain " +
				"the service level), and warehouse constraints (stay within the space " +
				"allocation). Explicitly explain ALL trade-offs between these competing " +
				"objectives in the trade_offs field.",
			Guidelines: []string{
				"ROP = (Daily Demand x Lead Time) + Safety Stock",
				"Safety Stock = Z-score x Std Dev of Demand x Sqrt(Lead Time)",
				"Consider service level vs cost trade-offs explicitly",
				"If costs are very high, recommend a lower service level with a clear trade-off",
				"If demand or lead time is very variable, recommend higher safety stock",
				"If the supplier is unreliable, pad lead time and increase safety stock",
				"Always mention specific cost and service level changes in the trade_offs field",
			},
		},
		Simplified: PromptVariant{
			Task: "Quick inventory recommendation. Suggest a reorder point, safety stock, " +
				"and lot size for this part.",
			Guidelines: []string{
				"Prefer availability over cost reduction when data is incomplete",
			},
		},
		Conservative: ConservativeInventory,
	}
}

// ConservativeInventory is the oracle-free default for
// inventory_recommendation: a proportional increase over current settings
// (+20% reorder point, +30% safety stock, +10% lot size), trading carrying
// cost for stockout protection. Pure function of the context; cannot fail.
func ConservativeInventory(c Context) Parsed {
	var part PartData
	if pd, ok := c.(PartData); ok {
		part = pd
	}

	currentROP := orDefault(part.CurrentReorderPoint, defaultReorderPoint)
	currentSS := orDefault(part.CurrentSafetyStock, defaultSafetyStock)
	currentLot := orDefault(part.CurrentLotSize, defaultLotSize)

	return Parsed{
		Type: TypeInventoryRecommendation,
		Fields: map[string]any{
			"reorder_point":               currentROP * conservativeROPFactor,
			"safety_stock":                currentSS * conservativeSSFactor,
			"lot_size":                    currentLot * conservativeLotFactor,
			"expected_fill_rate":          0.90,
			"expected_stockouts_per_year": 2.0,
			"rationale": fmt.Sprintf(
				"Oracle unavailable; applying conservative increases over current settings for %s.",
				part.SKU),
			"trade_offs": "Conservative approach prioritizes availability (stockout prevention) " +
				"over cost reduction. Increases carrying costs but reduces stockout risk.",
			"key_factors": []any{
				"oracle unavailable on all attempts",
				"conservative fallback favors availability",
				"re-run optimization when the oracle is reachable",
			},
		},
	}
}
