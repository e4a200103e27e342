package simulation

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"stocksim/internal/models"
)

type ShippingMode string

const (
	ModeSea     ShippingMode = "Sea"
	ModeAir     ShippingMode = "Air"
	ModeExpress ShippingMode = "Express"
)

// Transit weeks per shipping mode. Express is door-to-door in roughly half a
// week; deltas are truncated to whole weeks when shifting arrival weeks.
var shippingTransitWeeks = map[ShippingMode]float64{
	ModeSea:     5,
	ModeAir:     1,
	ModeExpress: 0.5,
}

func (m ShippingMode) Valid() bool {
	_, ok := shippingTransitWeeks[m]
	return ok
}

type StockStatus string

const (
	StatusOK       StockStatus = "OK"
	StatusRisk     StockStatus = "Risk"
	StatusStockout StockStatus = "Stockout"
)

type Severity string

const (
	SeverityCritical   Severity = "Critical"
	SeverityAcceptable Severity = "Acceptable"
)

type CapitalPeriod string

const (
	PeriodMonthly   CapitalPeriod = "monthly"
	PeriodQuarterly CapitalPeriod = "quarterly"
)

type ActionType string

const (
	ActionCreatePO           ActionType = "CREATE_PO"
	ActionDeferPO            ActionType = "DEFER_PO"
	ActionUpdateShipmentMode ActionType = "UPDATE_SHIPMENT_MODE"
)

type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

const TierHero = "HERO"

// ScenarioParameters is the complete input for one simulation run.
type ScenarioParameters struct {
	SalesLiftPercent              int              `json:"sales_lift_percent"`
	SkuScope                      []string         `json:"sku_scope"`
	ProductionLeadAdjustmentWeeks int              `json:"production_lead_adjustment_weeks"`
	ShippingModeOverride          *ShippingMode    `json:"shipping_mode_override"`
	CapitalConstraintEnabled      bool             `json:"capital_constraint_enabled"`
	CapitalCapUSD                 *decimal.Decimal `json:"capital_cap_usd"`
	CapitalPeriod                 CapitalPeriod    `json:"capital_period"`
	SkuFilter                     []string         `json:"sku_filter"`
	TimeHorizonWeeks              int              `json:"time_horizon_weeks"`
}

func DefaultParameters() ScenarioParameters {
	return ScenarioParameters{
		SalesLiftPercent:              0,
		SkuScope:                      []string{"HERO", "STANDARD", "ACCESSORY"},
		ProductionLeadAdjustmentWeeks: 0,
		ShippingModeOverride:          nil,
		CapitalConstraintEnabled:      false,
		CapitalCapUSD:                 nil,
		CapitalPeriod:                 PeriodMonthly,
		SkuFilter:                     nil,
		TimeHorizonWeeks:              12,
	}
}

// Validate rejects parameter combinations the engine cannot run.
func (p ScenarioParameters) Validate() error {
	switch p.TimeHorizonWeeks {
	case 12, 26, 52:
	default:
		return fmt.Errorf("time_horizon_weeks must be 12, 26 or 52, got %d", p.TimeHorizonWeeks)
	}
	if len(p.SkuScope) == 0 {
		return fmt.Errorf("sku_scope must not be empty")
	}
	if p.ShippingModeOverride != nil && !p.ShippingModeOverride.Valid() {
		return fmt.Errorf("unknown shipping mode %q", *p.ShippingModeOverride)
	}
	if p.CapitalConstraintEnabled && p.CapitalCapUSD != nil && p.CapitalCapUSD.Sign() <= 0 {
		return fmt.Errorf("capital_cap_usd must be positive")
	}
	switch p.CapitalPeriod {
	case PeriodMonthly, PeriodQuarterly:
	default:
		return fmt.Errorf("capital_period must be monthly or quarterly, got %q", p.CapitalPeriod)
	}
	return nil
}

// Modifiers are the per-run knobs. The baseline run uses the zero value.
type Modifiers struct {
	SalesLiftPercent              int
	ProductionLeadAdjustmentWeeks int
	ShippingModeOverride          *ShippingMode
}

// BaselineData is the immutable snapshot one simulation runs against.
// SKUs and Weeks carry deterministic iteration order; the maps are never
// mutated after the loader returns.
type BaselineData struct {
	Weeks []string
	SKUs  []string

	Products  map[string]models.Product
	Tiers     map[string]models.SkuTier
	Forecasts map[string]map[string]int
	Actuals   map[string]map[string]int
	Inventory map[string]int

	PendingShipments []models.Shipment
	PendingPOItems   []models.POItem

	CapitalConstraints map[string]decimal.Decimal
}

// ShipmentReference ties an arrival in a projection back to its shipment.
type ShipmentReference struct {
	ShipmentID     string       `json:"shipment_id"`
	TrackingNumber string       `json:"tracking_number"`
	ArrivingQty    int          `json:"arriving_qty"`
	ShippingMode   ShippingMode `json:"shipping_mode"`
}

type SKUProjection struct {
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	SkuTier     string `json:"sku_tier"`

	OpeningStock int `json:"opening_stock"`
	ArrivalQty   int `json:"arrival_qty"`
	SalesQty     int `json:"sales_qty"`
	ClosingStock int `json:"closing_stock"`

	StockStatus     StockStatus `json:"stock_status"`
	SafetyThreshold float64     `json:"safety_threshold"`
	DaysOfStock     *int        `json:"days_of_stock"`

	ArrivingShipments []ShipmentReference `json:"arriving_shipments"`
}

type WeeklyProjection struct {
	WeekISO       string `json:"week_iso"`
	WeekStartDate string `json:"week_start_date"`
	WeekEndDate   string `json:"week_end_date"`

	Projections []SKUProjection `json:"projections"`

	TotalStock           int     `json:"total_stock"`
	TotalSafetyThreshold float64 `json:"total_safety_threshold"`
	StockoutSkuCount     int     `json:"stockout_sku_count"`
	RiskSkuCount         int     `json:"risk_sku_count"`
}

type StockoutEvent struct {
	SKU                string   `json:"sku"`
	ProductName        string   `json:"product_name"`
	SkuTier            string   `json:"sku_tier"`
	StockoutWeek       string   `json:"stockout_week"`
	DurationWeeks      int      `json:"duration_weeks"`
	Severity           Severity `json:"severity"`
	WithinTolerance    bool     `json:"within_tolerance"`
	ProjectedLostSales int      `json:"projected_lost_sales"`
	RecoveryWeek       *string  `json:"recovery_week"`
}

// ActionPayload is the type-specific body of a recommended action. Exactly
// one concrete payload type exists per ActionType.
type ActionPayload interface {
	isActionPayload()
}

type CreatePOPayload struct {
	SKU                  string          `json:"sku"`
	SuggestedQty         int             `json:"suggested_qty"`
	UnitPriceUSD         decimal.Decimal `json:"unit_price_usd"`
	OrderDeadline        string          `json:"order_deadline"`
	ExpectedDeliveryWeek string          `json:"expected_delivery_week"`
}

func (CreatePOPayload) isActionPayload() {}

type DeferPOPayload struct {
	POID             string `json:"po_id"`
	CurrentOrderDate string `json:"current_order_date"`
	NewOrderDate     string `json:"new_order_date"`
	DeferToPeriod    string `json:"defer_to_period"`
}

func (DeferPOPayload) isActionPayload() {}

type UpdateShipmentModePayload struct {
	ShipmentID     string          `json:"shipment_id"`
	CurrentMode    ShippingMode    `json:"current_mode"`
	NewMode        ShippingMode    `json:"new_mode"`
	CostDelta      decimal.Decimal `json:"cost_delta"`
	TimeSavedWeeks float64         `json:"time_saved_weeks"`
}

func (UpdateShipmentModePayload) isActionPayload() {}

type RecommendedAction struct {
	ActionID   string     `json:"action_id"`
	ActionType ActionType `json:"action_type"`
	Priority   Priority   `json:"priority"`

	Description string `json:"description"`
	Rationale   string `json:"rationale"`

	TargetType string  `json:"target_type"`
	TargetID   *string `json:"target_id"`

	Payload ActionPayload `json:"payload"`

	CashImpact         decimal.Decimal  `json:"cash_impact"`
	StockoutPrevention bool             `json:"stockout_prevention"`
	EstimatedSavings   *decimal.Decimal `json:"estimated_savings"`
}

// UnmarshalJSON decodes the payload into the concrete type selected by
// action_type.
func (a *RecommendedAction) UnmarshalJSON(data []byte) error {
	type alias RecommendedAction
	tmp := struct {
		*alias
		Payload json.RawMessage `json:"payload"`
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if len(tmp.Payload) == 0 || string(tmp.Payload) == "null" {
		a.Payload = nil
		return nil
	}
	switch a.ActionType {
	case ActionCreatePO:
		var p CreatePOPayload
		if err := json.Unmarshal(tmp.Payload, &p); err != nil {
			return err
		}
		a.Payload = p
	case ActionDeferPO:
		var p DeferPOPayload
		if err := json.Unmarshal(tmp.Payload, &p); err != nil {
			return err
		}
		a.Payload = p
	case ActionUpdateShipmentMode:
		var p UpdateShipmentModePayload
		if err := json.Unmarshal(tmp.Payload, &p); err != nil {
			return err
		}
		a.Payload = p
	default:
		return fmt.Errorf("unknown action type %q", a.ActionType)
	}
	return nil
}

// BudgetedAction is one action as seen by the capital evaluator.
type BudgetedAction struct {
	ActionID           string          `json:"action_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	SkuTier            string          `json:"sku_tier"`
	PriorityWeight     int             `json:"priority_weight"`
	AmountUSD          decimal.Decimal `json:"amount_usd"`
	OrderDeadline      string          `json:"order_deadline"`
	StockoutPrevention bool            `json:"stockout_prevention"`
}

type CapitalConstraintResult struct {
	Period          string          `json:"period"`
	PeriodType      CapitalPeriod   `json:"period_type"`
	BudgetCap       decimal.Decimal `json:"budget_cap"`
	PlannedSpend    decimal.Decimal `json:"planned_spend"`
	ExceedsCap      bool            `json:"exceeds_cap"`
	ExcessAmount    decimal.Decimal `json:"excess_amount"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`

	IncludedActions []BudgetedAction `json:"included_actions"`
	DeferredActions []BudgetedAction `json:"deferred_actions"`
}

type ValidationError struct {
	ActionID     string `json:"action_id"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// ConfirmationTokenData binds a one-time execution token to a scenario and
// the exact set of actions it covers.
type ConfirmationTokenData struct {
	ScenarioHash string    `json:"scenario_hash"`
	ActionIDs    []string  `json:"action_ids"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type SimulationResult struct {
	Baseline []WeeklyProjection `json:"baseline"`
	Scenario []WeeklyProjection `json:"scenario"`

	CashImpactTotal    decimal.Decimal `json:"cash_impact_total"`
	StockoutCountDelta int             `json:"stockout_count_delta"`
	DaysOfStockDelta   float64         `json:"days_of_stock_delta"`

	CriticalStockouts []StockoutEvent `json:"critical_stockouts"`
	AcceptableGaps    []StockoutEvent `json:"acceptable_gaps"`

	RecommendedActions []RecommendedAction      `json:"recommended_actions"`
	CapitalAnalysis    *CapitalConstraintResult `json:"capital_analysis"`

	CalculatedAt    time.Time `json:"calculated_at"`
	ParametersHash  string    `json:"parameters_hash"`
	ExecutionTimeMS float64   `json:"execution_time_ms"`
}

// ExecutionPlan is the pre-commit summary handed to the execution step,
// together with its single-use confirmation token.
type ExecutionPlan struct {
	ScenarioHash     string              `json:"scenario_hash"`
	Actions          []RecommendedAction `json:"actions"`
	AllValid         bool                `json:"all_valid"`
	ValidationErrors []ValidationError   `json:"validation_errors"`

	TotalPOsToCreate       int             `json:"total_pos_to_create"`
	TotalPOsToDefer        int             `json:"total_pos_to_defer"`
	TotalShipmentsToUpdate int             `json:"total_shipments_to_update"`
	TotalCashImpact        decimal.Decimal `json:"total_cash_impact"`

	ConfirmationToken string    `json:"confirmation_token"`
	TokenExpiresAt    time.Time `json:"token_expires_at"`
}
