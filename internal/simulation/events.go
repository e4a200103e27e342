package simulation

// stockoutTracker carries one in-progress stockout through the week scan.
type stockoutTracker struct {
	startWeek string
	duration  int
	lostSales int
}

// IdentifyStockoutEvents converts week-over-week status transitions into
// discrete events. An event opens on the first Stockout week for a SKU and
// closes on the first following week that is not Stockout; events still open
// at the end of the horizon are emitted with a nil recovery week. Output
// order is insertion order: week-major, then SKU order as encountered.
func IdentifyStockoutEvents(projections []WeeklyProjection, base *BaselineData) (critical, acceptable []StockoutEvent) {
	open := map[string]*stockoutTracker{}
	var openOrder []string

	emit := func(event StockoutEvent) {
		if event.WithinTolerance {
			acceptable = append(acceptable, event)
		} else {
			critical = append(critical, event)
		}
	}

	for _, week := range projections {
		for _, proj := range week.Projections {
			if proj.StockStatus == StatusStockout {
				tracker := open[proj.SKU]
				if tracker == nil {
					open[proj.SKU] = &stockoutTracker{
						startWeek: week.WeekISO,
						duration:  1,
						lostSales: lostSales(proj.ClosingStock),
					}
					openOrder = append(openOrder, proj.SKU)
				} else {
					tracker.duration++
					tracker.lostSales += lostSales(proj.ClosingStock)
				}
				continue
			}

			tracker := open[proj.SKU]
			if tracker == nil {
				continue
			}
			recovery := week.WeekISO
			emit(buildEvent(proj.SKU, tracker, &recovery, base))
			delete(open, proj.SKU)
			openOrder = removeSKU(openOrder, proj.SKU)
		}
	}

	// Still below zero at the end of the horizon.
	for _, sku := range openOrder {
		emit(buildEvent(sku, open[sku], nil, base))
	}

	return critical, acceptable
}

func buildEvent(sku string, tracker *stockoutTracker, recoveryWeek *string, base *BaselineData) StockoutEvent {
	product := base.Products[sku]
	toleranceDays := 0
	if tier, ok := base.Tiers[product.SkuTier]; ok {
		toleranceDays = tier.StockoutToleranceDays
	}
	durationDays := tracker.duration * 7
	withinTolerance := durationDays <= toleranceDays

	severity := SeverityCritical
	if withinTolerance {
		severity = SeverityAcceptable
	}

	return StockoutEvent{
		SKU:                sku,
		ProductName:        product.ProductName,
		SkuTier:            product.SkuTier,
		StockoutWeek:       tracker.startWeek,
		DurationWeeks:      tracker.duration,
		Severity:           severity,
		WithinTolerance:    withinTolerance,
		ProjectedLostSales: tracker.lostSales,
		RecoveryWeek:       recoveryWeek,
	}
}

func lostSales(closingStock int) int {
	if closingStock >= 0 {
		return 0
	}
	return -closingStock
}

func removeSKU(order []string, sku string) []string {
	for i, s := range order {
		if s == sku {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
