package simulation

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilterSKUs narrows the snapshot's SKU list to the scenario's tier scope
// and optional explicit SKU filter, preserving the snapshot's order.
func FilterSKUs(base *BaselineData, params ScenarioParameters) []string {
	scope := make(map[string]struct{}, len(params.SkuScope))
	for _, tier := range params.SkuScope {
		scope[tier] = struct{}{}
	}
	var filter map[string]struct{}
	if params.SkuFilter != nil {
		filter = make(map[string]struct{}, len(params.SkuFilter))
		for _, sku := range params.SkuFilter {
			filter[sku] = struct{}{}
		}
	}

	var skus []string
	for _, sku := range base.SKUs {
		product := base.Products[sku]
		if _, ok := scope[product.SkuTier]; !ok {
			continue
		}
		if filter != nil {
			if _, ok := filter[sku]; !ok {
				continue
			}
		}
		skus = append(skus, sku)
	}
	return skus
}

// Run executes the full scenario pipeline over a prepared baseline snapshot:
// two projection passes (unmodified and with the scenario modifiers),
// stockout detection on the scenario run, recommendations, and the optional
// capital evaluation. Deterministic for identical (snapshot, params, now).
// ExecutionTimeMS is left for the caller to fill.
func Run(base *BaselineData, params ScenarioParameters, now time.Time) *SimulationResult {
	skus := FilterSKUs(base, params)

	baselineProjections := CalculateProjections(base, skus, Modifiers{})

	scenarioMods := Modifiers{
		SalesLiftPercent:              params.SalesLiftPercent,
		ProductionLeadAdjustmentWeeks: params.ProductionLeadAdjustmentWeeks,
		ShippingModeOverride:          params.ShippingModeOverride,
	}
	scenarioProjections := CalculateProjections(base, skus, scenarioMods)

	critical, acceptable := IdentifyStockoutEvents(scenarioProjections, base)

	actions := GenerateRecommendations(scenarioProjections, base, scenarioMods)

	var capital *CapitalConstraintResult
	if params.CapitalConstraintEnabled && params.CapitalCapUSD != nil {
		capital = EvaluateCapitalConstraints(actions, *params.CapitalCapUSD, params.CapitalPeriod, base, now)
	}

	baselineTotals := summarize(baselineProjections)
	scenarioTotals := summarize(scenarioProjections)

	cashImpact := decimal.Zero
	for _, action := range actions {
		cashImpact = cashImpact.Add(action.CashImpact)
	}

	return &SimulationResult{
		Baseline:           baselineProjections,
		Scenario:           scenarioProjections,
		CashImpactTotal:    cashImpact,
		StockoutCountDelta: scenarioTotals.stockoutCount - baselineTotals.stockoutCount,
		DaysOfStockDelta:   scenarioTotals.avgDaysOfStock - baselineTotals.avgDaysOfStock,
		CriticalStockouts:  critical,
		AcceptableGaps:     acceptable,
		RecommendedActions: actions,
		CapitalAnalysis:    capital,
		CalculatedAt:       now.UTC(),
		ParametersHash:     ScenarioHash(params),
	}
}

type projectionTotals struct {
	stockoutCount  int
	avgDaysOfStock float64
}

func summarize(projections []WeeklyProjection) projectionTotals {
	totals := projectionTotals{}
	daysSum := 0
	daysCount := 0
	for _, week := range projections {
		totals.stockoutCount += week.StockoutSkuCount
		for _, proj := range week.Projections {
			if proj.DaysOfStock != nil {
				daysSum += *proj.DaysOfStock
				daysCount++
			}
		}
	}
	if daysCount > 0 {
		totals.avgDaysOfStock = float64(daysSum) / float64(daysCount)
	}
	return totals
}
