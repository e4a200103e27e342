package simulation

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// downstreamLogisticsWeeks covers shipping and inbound handling after
// production completes.
const downstreamLogisticsWeeks = 5

// replenishmentCoverFactor sizes an emergency order at 1.5x the safety-stock
// cover.
const replenishmentCoverFactor = 1.5

// GenerateRecommendations emits one CREATE_PO action for every stockout week
// in the scenario projection. A multi-week stockout therefore yields one
// action per week; callers that want per-episode deduplication do it
// downstream.
func GenerateRecommendations(scenario []WeeklyProjection, base *BaselineData, mods Modifiers) []RecommendedAction {
	var actions []RecommendedAction

	for _, week := range scenario {
		for _, proj := range week.Projections {
			if proj.StockStatus != StatusStockout {
				continue
			}
			product, ok := base.Products[proj.SKU]
			if !ok {
				continue
			}

			avgWeekly := averageWeeklyForecast(base.Forecasts[proj.SKU])
			suggestedQty := roundHalfUp(avgWeekly * float64(product.SafetyStockWeeks) * replenishmentCoverFactor)
			cashImpact := decimal.NewFromInt(int64(suggestedQty)).Mul(product.UnitCostUSD).Neg()

			priority := PriorityHigh
			if proj.SkuTier == TierHero {
				priority = PriorityCritical
			}

			leadWeeks := product.ProductionLeadWeeks + mods.ProductionLeadAdjustmentWeeks + downstreamLogisticsWeeks
			deliveryWeek, err := AddWeeksISO(week.WeekISO, leadWeeks)
			if err != nil {
				deliveryWeek = week.WeekISO
			}

			actions = append(actions, RecommendedAction{
				ActionID:    uuid.NewString(),
				ActionType:  ActionCreatePO,
				Priority:    priority,
				Description: fmt.Sprintf("Create emergency order for %s", proj.SKU),
				Rationale: fmt.Sprintf("Projected stockout in %s. Current closing stock: %d",
					week.WeekISO, proj.ClosingStock),
				TargetType: "po_item",
				TargetID:   nil,
				Payload: CreatePOPayload{
					SKU:                  proj.SKU,
					SuggestedQty:         suggestedQty,
					UnitPriceUSD:         product.UnitCostUSD,
					OrderDeadline:        week.WeekStartDate,
					ExpectedDeliveryWeek: deliveryWeek,
				},
				CashImpact:         cashImpact,
				StockoutPrevention: true,
				EstimatedSavings:   nil,
			})
		}
	}

	return actions
}
