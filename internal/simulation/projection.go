package simulation

import (
	"math"

	"stocksim/internal/models"
)

// closingStockFloor bounds how far negative a projected closing stock may go.
// A reporting floor, not a physical constraint: the deficit is capped per
// week before it feeds lost-sales totals.
const closingStockFloor = -1000

// CalculateProjections runs the week-by-week stock simulation for the given
// SKUs under one modifier set. SKU order in every weekly projection matches
// the skus argument, and week N+1 opens with week N's closing stock.
func CalculateProjections(base *BaselineData, skus []string, mods Modifiers) []WeeklyProjection {
	projections := make([]WeeklyProjection, 0, len(base.Weeks))

	runningStock := make(map[string]int, len(skus))
	for _, sku := range skus {
		runningStock[sku] = base.Inventory[sku]
	}

	for _, week := range base.Weeks {
		skuProjections := make([]SKUProjection, 0, len(skus))
		totalStock := 0
		totalSafetyThreshold := 0.0
		stockoutCount := 0
		riskCount := 0

		for _, sku := range skus {
			product := base.Products[sku]
			openingStock := runningStock[sku]

			baseForecast := base.Forecasts[sku][week]
			salesQty := roundHalfUp(float64(baseForecast) * (1 + float64(mods.SalesLiftPercent)/100))

			arrivalQty := calculateArrivals(sku, week, base.PendingShipments, mods.ShippingModeOverride)

			closingStock := openingStock + arrivalQty - salesQty
			if closingStock < closingStockFloor {
				closingStock = closingStockFloor
			}

			avgWeekly := averageWeeklyForecast(base.Forecasts[sku])
			safetyThreshold := avgWeekly * float64(product.SafetyStockWeeks)

			var status StockStatus
			switch {
			case closingStock < 0:
				status = StatusStockout
				stockoutCount++
			case float64(closingStock) < safetyThreshold:
				status = StatusRisk
				riskCount++
			default:
				status = StatusOK
			}

			var daysOfStock *int
			if daily := avgWeekly / 7; daily > 0 {
				d := roundHalfUp(float64(closingStock) / daily)
				daysOfStock = &d
			}

			skuProjections = append(skuProjections, SKUProjection{
				SKU:               sku,
				ProductName:       product.ProductName,
				SkuTier:           product.SkuTier,
				OpeningStock:      openingStock,
				ArrivalQty:        arrivalQty,
				SalesQty:          salesQty,
				ClosingStock:      closingStock,
				StockStatus:       status,
				SafetyThreshold:   safetyThreshold,
				DaysOfStock:       daysOfStock,
				ArrivingShipments: arrivingShipments(sku, week, base.PendingShipments),
			})

			runningStock[sku] = closingStock

			if closingStock > 0 {
				totalStock += closingStock
			}
			totalSafetyThreshold += safetyThreshold
		}

		projections = append(projections, WeeklyProjection{
			WeekISO:              week,
			WeekStartDate:        WeekStartDate(week),
			WeekEndDate:          WeekEndDate(week),
			Projections:          skuProjections,
			TotalStock:           totalStock,
			TotalSafetyThreshold: totalSafetyThreshold,
			StockoutSkuCount:     stockoutCount,
			RiskSkuCount:         riskCount,
		})
	}

	return projections
}

// calculateArrivals sums shipped quantities of pending shipments whose
// effective arrival week equals the given week. A shipping-mode override
// shifts a shipment's recorded arrival week backward by the transit-time
// difference between its recorded mode and the override.
func calculateArrivals(sku, week string, shipments []models.Shipment, override *ShippingMode) int {
	total := 0
	for _, sh := range shipments {
		if sh.SKU != sku {
			continue
		}
		if effectiveArrivalWeek(sh, override) == week {
			total += sh.ShippedQty
		}
	}
	return total
}

func effectiveArrivalWeek(sh models.Shipment, override *ShippingMode) string {
	if sh.ArrivalWeek == nil {
		return ""
	}
	arrival := *sh.ArrivalWeek

	if override == nil {
		return arrival
	}
	current := shipmentMode(sh)
	if current == *override {
		return arrival
	}

	currentTransit, ok := shippingTransitWeeks[current]
	if !ok {
		currentTransit = shippingTransitWeeks[ModeSea]
	}
	overrideTransit, ok := shippingTransitWeeks[*override]
	if !ok {
		overrideTransit = shippingTransitWeeks[ModeSea]
	}
	weeksDelta := currentTransit - overrideTransit
	if weeksDelta == 0 {
		return arrival
	}
	start, err := ParseWeek(arrival)
	if err != nil {
		return arrival
	}
	// Shift at day granularity: a half-week transit gain can push the
	// arrival's Monday across an ISO-week boundary, so Sea to Express lands
	// five buckets earlier, not four.
	days := int(-weeksDelta * 7)
	return FormatWeek(start.AddDate(0, 0, days))
}

func shipmentMode(sh models.Shipment) ShippingMode {
	if sh.ShippingMode == nil {
		return ModeSea
	}
	mode := ShippingMode(*sh.ShippingMode)
	if !mode.Valid() {
		return ModeSea
	}
	return mode
}

// arrivingShipments lists references for shipments recorded to arrive in the
// given week. References always reflect the recorded schedule, not a mode
// override.
func arrivingShipments(sku, week string, shipments []models.Shipment) []ShipmentReference {
	var refs []ShipmentReference
	for _, sh := range shipments {
		if sh.SKU != sku || sh.ArrivalWeek == nil || *sh.ArrivalWeek != week {
			continue
		}
		refs = append(refs, ShipmentReference{
			ShipmentID:     sh.ID,
			TrackingNumber: sh.TrackingNumber,
			ArrivingQty:    sh.ShippedQty,
			ShippingMode:   shipmentMode(sh),
		})
	}
	return refs
}

// roundHalfUp rounds halves toward positive infinity (-2.5 becomes -2),
// unlike math.Round which rounds them away from zero.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// averageWeeklyForecast is the mean over all forecast values for one SKU
// across the horizon; zero when the SKU has no forecast.
func averageWeeklyForecast(forecasts map[string]int) float64 {
	if len(forecasts) == 0 {
		return 0
	}
	total := 0
	for _, qty := range forecasts {
		total += qty
	}
	return float64(total) / float64(len(forecasts))
}
