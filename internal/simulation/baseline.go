package simulation

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stocksim/internal/models"
	"stocksim/internal/repository"
)

// Loader assembles the immutable baseline snapshot a simulation runs against.
// Store errors are returned to the caller unmodified; retry policy belongs to
// the storage layer, not here.
type Loader struct {
	Repo   repository.BaselineRepository
	Logger *zap.Logger
}

func (l *Loader) Fetch(ctx context.Context, now time.Time, horizonWeeks int) (*BaselineData, error) {
	weeks := WeekRange(now, horizonWeeks)

	products, err := l.Repo.ListActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	tiers, err := l.Repo.ListSkuTiers(ctx)
	if err != nil {
		return nil, err
	}
	forecasts, err := l.Repo.ListForecastsByWeeks(ctx, weeks)
	if err != nil {
		return nil, err
	}
	actuals, err := l.Repo.ListActuals(ctx)
	if err != nil {
		return nil, err
	}
	shipments, err := l.Repo.ListPendingShipments(ctx)
	if err != nil {
		return nil, err
	}
	poItems, err := l.Repo.ListPendingPOItems(ctx)
	if err != nil {
		return nil, err
	}
	constraints, err := l.Repo.ListActiveCapitalConstraints(ctx)
	if err != nil {
		return nil, err
	}

	data := &BaselineData{
		Weeks:              weeks,
		Forecasts:          map[string]map[string]int{},
		Actuals:            map[string]map[string]int{},
		Inventory:          map[string]int{},
		CapitalConstraints: map[string]decimal.Decimal{},
		PendingShipments:   shipments,
		PendingPOItems:     poItems,
	}

	data.Products = make(map[string]models.Product, len(products))
	for _, p := range products {
		data.Products[p.SKU] = p
		data.Inventory[p.SKU] = p.CurrentStock
		data.SKUs = append(data.SKUs, p.SKU)
	}
	sort.Strings(data.SKUs)

	data.Tiers = make(map[string]models.SkuTier, len(tiers))
	for _, t := range tiers {
		data.Tiers[t.TierCode] = t
	}

	for _, f := range forecasts {
		m := data.Forecasts[f.SKU]
		if m == nil {
			m = map[string]int{}
			data.Forecasts[f.SKU] = m
		}
		m[f.WeekISO] = f.Qty
	}
	for _, a := range actuals {
		m := data.Actuals[a.SKU]
		if m == nil {
			m = map[string]int{}
			data.Actuals[a.SKU] = m
		}
		m[a.WeekISO] = a.Qty
	}

	for _, c := range constraints {
		data.CapitalConstraints[c.PeriodKey] = c.BudgetCapUSD
	}

	l.applyForecastFallback(data)

	return data, nil
}

// applyForecastFallback synthesizes a flat forecast for SKUs with no forecast
// rows at all: the mean of the last four recorded actual weeks, rounded.
// SKUs with at least one forecast row are left untouched.
func (l *Loader) applyForecastFallback(data *BaselineData) {
	for _, sku := range data.SKUs {
		if len(data.Forecasts[sku]) > 0 {
			continue
		}

		avg := trailingAverage(data.Actuals[sku], 4)
		if avg <= 0 {
			continue
		}

		synth := make(map[string]int, len(data.Weeks))
		for _, week := range data.Weeks {
			synth[week] = avg
		}
		data.Forecasts[sku] = synth

		if l.Logger != nil {
			l.Logger.Debug("synthesized fallback forecast",
				zap.String("sku", sku),
				zap.Int("weekly_qty", avg),
			)
		}
	}
}

// trailingAverage is the rounded mean over the last n weeks present in the
// actuals map; zero when there are no actuals.
func trailingAverage(actuals map[string]int, n int) int {
	if len(actuals) == 0 {
		return 0
	}
	weeks := make([]string, 0, len(actuals))
	for week := range actuals {
		weeks = append(weeks, week)
	}
	sort.Strings(weeks)
	if len(weeks) > n {
		weeks = weeks[len(weeks)-n:]
	}
	total := 0
	for _, week := range weeks {
		total += actuals[week]
	}
	return roundHalfUp(float64(total) / float64(len(weeks)))
}
