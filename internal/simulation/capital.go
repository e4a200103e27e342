package simulation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// EvaluateCapitalConstraints runs a greedy single-pass allocation of the
// recommended actions against a budget cap. Actions are visited in
// descending tier priority weight (stable, so ties keep input order) and
// included iff their cost still fits the remaining budget; a skipped action
// is never reconsidered, so the result is not a globally optimal packing.
// PlannedSpend always counts every action, included or deferred.
func EvaluateCapitalConstraints(
	actions []RecommendedAction,
	budgetCap decimal.Decimal,
	periodType CapitalPeriod,
	base *BaselineData,
	now time.Time,
) *CapitalConstraintResult {
	sorted := make([]RecommendedAction, len(actions))
	copy(sorted, actions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return actionPriorityWeight(sorted[i], base) > actionPriorityWeight(sorted[j], base)
	})

	var included, deferred []BudgetedAction
	remaining := budgetCap
	plannedSpend := decimal.Zero

	for _, action := range sorted {
		cost := action.CashImpact.Abs()
		plannedSpend = plannedSpend.Add(cost)

		payload, ok := action.Payload.(CreatePOPayload)
		if !ok {
			continue
		}

		product := base.Products[payload.SKU]
		item := BudgetedAction{
			ActionID:           action.ActionID,
			SKU:                payload.SKU,
			ProductName:        product.ProductName,
			SkuTier:            product.SkuTier,
			PriorityWeight:     tierPriorityWeight(product.SkuTier, base),
			AmountUSD:          cost,
			OrderDeadline:      payload.OrderDeadline,
			StockoutPrevention: action.StockoutPrevention,
		}

		if cost.LessThanOrEqual(remaining) {
			included = append(included, item)
			remaining = remaining.Sub(cost)
		} else {
			deferred = append(deferred, item)
		}
	}

	excess := plannedSpend.Sub(budgetCap)
	if excess.Sign() < 0 {
		excess = decimal.Zero
	}

	return &CapitalConstraintResult{
		Period:          PeriodKey(now, periodType),
		PeriodType:      periodType,
		BudgetCap:       budgetCap,
		PlannedSpend:    plannedSpend,
		ExceedsCap:      plannedSpend.GreaterThan(budgetCap),
		ExcessAmount:    excess,
		RemainingBudget: remaining,
		IncludedActions: included,
		DeferredActions: deferred,
	}
}

func actionPriorityWeight(action RecommendedAction, base *BaselineData) int {
	payload, ok := action.Payload.(CreatePOPayload)
	if !ok {
		return 0
	}
	product, ok := base.Products[payload.SKU]
	if !ok {
		return 0
	}
	return tierPriorityWeight(product.SkuTier, base)
}

func tierPriorityWeight(tierCode string, base *BaselineData) int {
	if tier, ok := base.Tiers[tierCode]; ok {
		return tier.PriorityWeight
	}
	return 0
}
