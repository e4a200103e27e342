package simulation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestGenerateRecommendations_CreatePOPerStockoutWeek(t *testing.T) {
	weeks := testWeeks(4)
	base := newTestBaseline(weeks)
	addProduct(base, "SKU-H", "HERO", 0, 4, 6, 25)
	base.Forecasts["SKU-H"] = flatForecast(weeks, 10)

	scenario := []WeeklyProjection{
		{WeekISO: weeks[0], WeekStartDate: WeekStartDate(weeks[0]), Projections: []SKUProjection{
			{SKU: "SKU-H", SkuTier: "HERO", StockStatus: StatusOK, ClosingStock: 20},
		}},
		{WeekISO: weeks[1], WeekStartDate: WeekStartDate(weeks[1]), Projections: []SKUProjection{
			{SKU: "SKU-H", SkuTier: "HERO", StockStatus: StatusStockout, ClosingStock: -5},
		}},
		{WeekISO: weeks[2], WeekStartDate: WeekStartDate(weeks[2]), Projections: []SKUProjection{
			{SKU: "SKU-H", SkuTier: "HERO", StockStatus: StatusStockout, ClosingStock: -15},
		}},
		{WeekISO: weeks[3], WeekStartDate: WeekStartDate(weeks[3]), Projections: []SKUProjection{
			{SKU: "SKU-H", SkuTier: "HERO", StockStatus: StatusOK, ClosingStock: 40},
		}},
	}

	actions := GenerateRecommendations(scenario, base, Modifiers{})
	if len(actions) != 2 {
		t.Fatalf("actions=%d want=2 (one per stockout week)", len(actions))
	}

	action := actions[0]
	if action.ActionType != ActionCreatePO {
		t.Fatalf("type=%s want=CREATE_PO", action.ActionType)
	}
	if action.Priority != PriorityCritical {
		t.Fatalf("priority=%s want=Critical for HERO", action.Priority)
	}
	if !action.StockoutPrevention {
		t.Fatalf("stockout_prevention=false want=true")
	}
	if action.ActionID == "" || action.ActionID == actions[1].ActionID {
		t.Fatalf("action ids must be unique and non-empty: %q %q", action.ActionID, actions[1].ActionID)
	}

	payload, ok := action.Payload.(CreatePOPayload)
	if !ok {
		t.Fatalf("payload type %T want CreatePOPayload", action.Payload)
	}
	// round(10 avg weekly * 4 safety weeks * 1.5 cover)
	if payload.SuggestedQty != 60 {
		t.Fatalf("suggested_qty=%d want=60", payload.SuggestedQty)
	}
	if payload.OrderDeadline != WeekStartDate(weeks[1]) {
		t.Fatalf("order_deadline=%s want=%s", payload.OrderDeadline, WeekStartDate(weeks[1]))
	}
	// 6 production + 5 downstream logistics weeks from the stockout week.
	wantDelivery, err := AddWeeksISO(weeks[1], 11)
	if err != nil {
		t.Fatalf("add weeks: %v", err)
	}
	if payload.ExpectedDeliveryWeek != wantDelivery {
		t.Fatalf("delivery_week=%s want=%s", payload.ExpectedDeliveryWeek, wantDelivery)
	}

	wantImpact := decimal.NewFromInt(-60 * 25)
	if !action.CashImpact.Equal(wantImpact) {
		t.Fatalf("cash_impact=%s want=%s", action.CashImpact, wantImpact)
	}
}

func TestGenerateRecommendations_LeadAdjustmentShiftsDelivery(t *testing.T) {
	weeks := testWeeks(2)
	base := newTestBaseline(weeks)
	addProduct(base, "SKU-S", "STANDARD", 0, 4, 6, 10)
	base.Forecasts["SKU-S"] = flatForecast(weeks, 10)

	scenario := []WeeklyProjection{
		{WeekISO: weeks[0], WeekStartDate: WeekStartDate(weeks[0]), Projections: []SKUProjection{
			{SKU: "SKU-S", SkuTier: "STANDARD", StockStatus: StatusStockout, ClosingStock: -1},
		}},
	}

	actions := GenerateRecommendations(scenario, base, Modifiers{ProductionLeadAdjustmentWeeks: 2})
	if len(actions) != 1 {
		t.Fatalf("actions=%d want=1", len(actions))
	}
	if actions[0].Priority != PriorityHigh {
		t.Fatalf("priority=%s want=High for non-HERO", actions[0].Priority)
	}
	payload := actions[0].Payload.(CreatePOPayload)
	wantDelivery, err := AddWeeksISO(weeks[0], 13) // 6 + 2 + 5
	if err != nil {
		t.Fatalf("add weeks: %v", err)
	}
	if payload.ExpectedDeliveryWeek != wantDelivery {
		t.Fatalf("delivery_week=%s want=%s", payload.ExpectedDeliveryWeek, wantDelivery)
	}
}

func TestGenerateRecommendations_NoStockoutsNoActions(t *testing.T) {
	weeks := testWeeks(1)
	base := newTestBaseline(weeks)
	addProduct(base, "SKU-S", "STANDARD", 100, 4, 6, 10)
	base.Forecasts["SKU-S"] = flatForecast(weeks, 10)

	scenario := CalculateProjections(base, base.SKUs, Modifiers{})
	if actions := GenerateRecommendations(scenario, base, Modifiers{}); len(actions) != 0 {
		t.Fatalf("actions=%d want=0", len(actions))
	}
}
