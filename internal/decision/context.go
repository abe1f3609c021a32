package decision

import (
	"fmt"
	"strings"

	"github.com/hugo-ops/hugo/internal/prompt"
)

// ChangeEvent is a supplier change event from the detection pipeline.
// Zero values mean "unknown" and are omitted from prompts.
type ChangeEvent struct {
	ChangeType     string   `json:"change_type"` // delay, early, partial_shipment, cancellation, ...
	DelayDays      int      `json:"delay_days"`  // positive = delay, negative = early
	AffectedItems  []string `json:"affected_items,omitempty"`
	SupplierName   string   `json:"supplier_name,omitempty"`
	PONumber       string   `json:"po_number,omitempty"`
	POPriority     string   `json:"po_priority,omitempty"` // low, normal, high, critical
	OrderValue     float64  `json:"order_value,omitempty"`
	SupplierReason string   `json:"supplier_reason,omitempty"`
	Confidence     float64  `json:"confidence,omitempty"` // detection confidence, 0-1
}

// sectionLines renders the change event as prompt lines, skipping unknowns.
func (e ChangeEvent) sectionLines() []string {
	lines := []string{prompt.Line("Change Type", strings.ToUpper(e.ChangeType))}

	if e.DelayDays > 0 {
		lines = append(lines, prompt.Line("Delay", fmt.Sprintf("%d days", e.DelayDays)))
	} else if e.DelayDays < 0 {
		lines = append(lines, prompt.Line("Early", fmt.Sprintf("%d days", -e.DelayDays)))
	}

	if len(e.AffectedItems) > 0 {
		items := e.AffectedItems
		if len(items) > 5 {
			items = items[:5]
		}
		lines = append(lines, prompt.Line("Affected Items", strings.Join(items, ", ")))
	}
	if e.SupplierName != "" {
		lines = append(lines, prompt.Line("Supplier", e.SupplierName))
	}
	if e.PONumber != "" {
		lines = append(lines, prompt.Line("PO", e.PONumber))
	}
	if e.POPriority != "" {
		lines = append(lines, prompt.Line("Priority", e.POPriority))
	}
	if e.OrderValue > 0 {
		lines = append(lines, prompt.Line("Value", fmt.Sprintf("$%.0f", e.OrderValue)))
	}
	if e.SupplierReason != "" {
		lines = append(lines, prompt.Line("Reason", e.SupplierReason))
	}
	if e.Confidence > 0 {
		lines = append(lines, prompt.Line("Detection Confidence", fmt.Sprintf("%.0f%%", e.Confidence*100)))
	}

	return lines
}

// simplifiedLines is the minimal change summary used by fallback prompts.
func (e ChangeEvent) simplifiedLines() []string {
	delay := "none"
	if e.DelayDays != 0 {
		delay = fmt.Sprintf("%d days", e.DelayDays)
	}
	priority := e.POPriority
	if priority == "" {
		priority = "normal"
	}
	return []string{
		prompt.Line("Change", e.ChangeType),
		prompt.Line("Delay", delay),
		prompt.Line("Priority", priority),
	}
}

// OperationalContext captures the operational state informing a decision.
// Pointer fields distinguish "unknown" from a legitimate zero.
type OperationalContext struct {
	ProductionCapacity    *int     `json:"production_capacity,omitempty"`     // units/week
	CurrentProductionRate *int     `json:"current_production_rate,omitempty"` // units/week
	ActiveOrdersCount     *int     `json:"active_orders_count,omitempty"`
	OrdersAtRisk          *int     `json:"orders_at_risk,omitempty"`
	InventoryLevel        *float64 `json:"inventory_level,omitempty"`     // days of supply
	MinInventoryLevel     *float64 `json:"min_inventory_level,omitempty"` // days of supply
	SupplierReliability   *float64 `json:"supplier_reliability,omitempty"` // 0-1
	SupplierPastIssues    *int     `json:"supplier_past_issues,omitempty"`
	AlternateSuppliers    *bool    `json:"alternate_suppliers,omitempty"`
	DaysUntilDelivery     *int     `json:"days_until_delivery,omitempty"`
	DaysUntilDeadline     *int     `json:"days_until_deadline,omitempty"`
}

func (c *OperationalContext) sectionLines() []string {
	if c == nil {
		return nil
	}

	var lines []string
	if c.ProductionCapacity != nil {
		lines = append(lines, prompt.Line("Production Capacity", fmt.Sprintf("%d units/week", *c.ProductionCapacity)))
	}
	if c.CurrentProductionRate != nil {
		lines = append(lines, prompt.Line("Current Rate", fmt.Sprintf("%d units/week", *c.CurrentProductionRate)))
	}
	if c.ActiveOrdersCount != nil {
		lines = append(lines, prompt.Line("Active Orders", *c.ActiveOrdersCount))
	}
	if c.OrdersAtRisk != nil {
		lines = append(lines, prompt.Line("Orders At Risk", *c.OrdersAtRisk))
	}
	if c.InventoryLevel != nil {
		lines = append(lines, prompt.Line("Inventory Level", fmt.Sprintf("%.1f days of supply", *c.InventoryLevel)))
	}
	if c.MinInventoryLevel != nil {
		lines = append(lines, prompt.Line("Min Inventory", fmt.Sprintf("%.1f days", *c.MinInventoryLevel)))
	}
	if c.SupplierReliability != nil {
		lines = append(lines, prompt.Line("Supplier Reliability", fmt.Sprintf("%.0f%%", *c.SupplierReliability*100)))
	}
	if c.SupplierPastIssues != nil {
		lines = append(lines, prompt.Line("Past Issues", *c.SupplierPastIssues))
	}
	if c.AlternateSuppliers != nil {
		alt := "No"
		if *c.AlternateSuppliers {
			alt = "Yes"
		}
		lines = append(lines, prompt.Line("Alternate Suppliers", alt))
	}
	if c.DaysUntilDelivery != nil {
		lines = append(lines, prompt.Line("Days Until Delivery", *c.DaysUntilDelivery))
	}
	if c.DaysUntilDeadline != nil {
		lines = append(lines, prompt.Line("Days Until Needed", *c.DaysUntilDeadline))
	}
	return lines
}

// AlertContext feeds an alert_decision: a change event plus the operational
// state it lands on.
type AlertContext struct {
	Event       ChangeEvent         `json:"change_event"`
	Operational *OperationalContext `json:"operational_context,omitempty"`
}

// DecisionType returns the decision type identifier this context feeds.
func (c AlertContext) DecisionType() string {
	return TypeAlertDecision
}

// Sections returns the labeled context blocks for the full prompt.
func (c AlertContext) Sections() []prompt.Section {
	return []prompt.Section{
		{Title: "Supplier Change Event", Lines: c.Event.sectionLines()},
		{Title: "Operational Context", Lines: c.Operational.sectionLines()},
	}
}

// SimplifiedSections returns the reduced context for the fallback prompt.
func (c AlertContext) SimplifiedSections() []prompt.Section {
	return []prompt.Section{
		{Title: "Change Summary", Lines: c.Event.simplifiedLines()},
	}
}

// RiskContext feeds a risk_assessment for a detected delivery change.
type RiskContext struct {
	Event       ChangeEvent         `json:"change_event"`
	Operational *OperationalContext `json:"operational_context,omitempty"`
}

// DecisionType returns the decision type identifier this context feeds.
func (c RiskContext) DecisionType() string {
	return TypeRiskAssessment
}

// Sections returns the labeled context blocks for the full prompt.
func (c RiskContext) Sections() []prompt.Section {
	return []prompt.Section{
		{Title: "Delivery Change", Lines: c.Event.sectionLines()},
		{Title: "Operational Context", Lines: c.Operational.sectionLines()},
	}
}

// SimplifiedSections returns the reduced context for the fallback prompt.
func (c RiskContext) SimplifiedSections() []prompt.Section {
	return []prompt.Section{
		{Title: "Change Summary", Lines: c.Event.simplifiedLines()},
	}
}

// PartData is the demand/cost profile of one part, feeding an
// inventory_recommendation. Zero values fall back to the documented
// defaults when rendered or used by the conservative provider.
type PartData struct {
	SKU                 string  `json:"sku"`
	PartName            string  `json:"part_name,omitempty"`
	AnnualDemand        float64 `json:"annual_demand,omitempty"`
	LeadTimeDays        int     `json:"lead_time_days,omitempty"`
	LeadTimeVariability float64 `json:"lead_time_variability,omitempty"` // 0-1
	DemandVariability   float64 `json:"demand_variability,omitempty"`   // 0-1
	CurrentInventory    float64 `json:"current_inventory,omitempty"`
	CurrentReorderPoint float64 `json:"current_reorder_point,omitempty"`
	CurrentSafetyStock  float64 `json:"current_safety_stock,omitempty"`
	CurrentLotSize      float64 `json:"current_lot_size,omitempty"`
	CarryingCostPerUnit float64 `json:"carrying_cost_per_unit,omitempty"` // per unit per year
	OrderingCostPerUO   float64 `json:"ordering_cost_per_order,omitempty"`
	StockoutCostPerUnit float64 `json:"stockout_cost_per_unit,omitempty"`
	ServiceLevelTarget  float64 `json:"service_level_target,omitempty"` // 0-1, e.g. 0.95
	MaxWarehouseSpace   float64 `json:"max_warehouse_space,omitempty"`  // 0 = unlimited
	SupplierReliability float64 `json:"supplier_reliability,omitempty"` // 0-1
	RecentStockouts     int     `json:"recent_stockouts,omitempty"`     // last 12 months
	ForecastAccuracy    float64 `json:"forecast_accuracy,omitempty"`    // 0-1
}

// Defaults used when part data is incomplete, matching the pipeline's
// conservative bias toward modest, plausible settings.
const (
	defaultReorderPoint = 100.0
	defaultSafetyStock  = 50.0
	defaultLotSize      = 200.0
)

func orDefault(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

// DecisionType returns the decision type identifier this context feeds.
func (p PartData) DecisionType() string {
	return TypeInventoryRecommendation
}

// Sections returns the labeled context blocks for the full prompt.
func (p PartData) Sections() []prompt.Section {
	name := p.PartName
	if name == "" {
		name = "Unknown Part"
	}
	space := "unlimited"
	if p.MaxWarehouseSpace > 0 {
		space = fmt.Sprintf("%.0f", p.MaxWarehouseSpace)
	}

	return []prompt.Section{
		{
			Title: "Part Data",
			Lines: []string{
				prompt.Line("SKU", p.SKU),
				prompt.Line("Part Name", name),
				prompt.Line("Annual Demand", fmt.Sprintf("%.0f units", p.AnnualDemand)),
				prompt.Line("Lead Time", fmt.Sprintf("%d days (variability: %.2f)", p.LeadTimeDays, p.LeadTimeVariability)),
				prompt.Line("Demand Variability", fmt.Sprintf("%.2f (0=stable, 1=highly variable)", p.DemandVariability)),
				prompt.Line("Current Inventory", fmt.Sprintf("%.0f units", p.CurrentInventory)),
				prompt.Line("Current Reorder Point", fmt.Sprintf("%.0f units", orDefault(p.CurrentReorderPoint, defaultReorderPoint))),
				prompt.Line("Current Safety Stock", fmt.Sprintf("%.0f units", orDefault(p.CurrentSafetyStock, defaultSafetyStock))),
				prompt.Line("Current Lot Size", fmt.Sprintf("%.0f units", orDefault(p.CurrentLotSize, defaultLotSize))),
				prompt.Line("Service Level Target", fmt.Sprintf("%.0f%%", orDefault(p.ServiceLevelTarget, 0.95)*100)),
			},
		},
		{
			Title: "Costs",
			Lines: []string{
				prompt.Line("Carrying Cost", fmt.Sprintf("$%.2f/unit/year (warehouse, capital, obsolescence)", p.CarryingCostPerUnit)),
				prompt.Line("Ordering Cost", fmt.Sprintf("$%.2f/order (procurement overhead)", p.OrderingCostPerUO)),
				prompt.Line("Stockout Cost", fmt.Sprintf("$%.2f per unit (lost sales, production delay)", p.StockoutCostPerUnit)),
			},
		},
		{
			Title: "Constraints",
			Lines: []string{
				prompt.Line("Max Warehouse Space", space),
				prompt.Line("Supplier Reliability", fmt.Sprintf("%.2f (0=unreliable, 1=perfect)", p.SupplierReliability)),
				prompt.Line("Recent Stockouts", fmt.Sprintf("%d (last 12 months)", p.RecentStockouts)),
				prompt.Line("Forecast Accuracy", fmt.Sprintf("%.2f (0=inaccurate, 1=very accurate)", p.ForecastAccuracy)),
			},
		},
	}
}

// SimplifiedSections returns the reduced context for the fallback prompt.
func (p PartData) SimplifiedSections() []prompt.Section {
	return []prompt.Section{
		{
			Title: "Part Summary",
			Lines: []string{
				prompt.Line("SKU", p.SKU),
				prompt.Line("Annual Demand", fmt.Sprintf("%.0f units", p.AnnualDemand)),
				prompt.Line("Lead Time", fmt.Sprintf("%d days", p.LeadTimeDays)),
				prompt.Line("Current Reorder Point", fmt.Sprintf("%.0f", orDefault(p.CurrentReorderPoint, defaultReorderPoint))),
				prompt.Line("Current Safety Stock", fmt.Sprintf("%.0f", orDefault(p.CurrentSafetyStock, defaultSafetyStock))),
				prompt.Line("Current Lot Size", fmt.Sprintf("%.0f", orDefault(p.CurrentLotSize, defaultLotSize))),
			},
		},
	}
}
