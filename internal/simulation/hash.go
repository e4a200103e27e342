package simulation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// ScenarioHash digests the normalized scenario parameters into a stable
// 16-hex-char cache key. List fields are sorted first, so parameter sets that
// differ only in element order hash identically.
func ScenarioHash(p ScenarioParameters) string {
	mode := ""
	if p.ShippingModeOverride != nil {
		mode = string(*p.ShippingModeOverride)
	}

	cap := ""
	if p.CapitalConstraintEnabled && p.CapitalCapUSD != nil {
		cap = p.CapitalCapUSD.String()
	}

	skus := "ALL"
	if p.SkuFilter != nil {
		sorted := make([]string, len(p.SkuFilter))
		copy(sorted, p.SkuFilter)
		sort.Strings(sorted)
		skus = strings.Join(sorted, ",")
	}

	tiers := make([]string, len(p.SkuScope))
	copy(tiers, p.SkuScope)
	sort.Strings(tiers)

	normalized := struct {
		SalesLift int    `json:"sales_lift"`
		Mode      string `json:"mode"`
		LeadAdj   int    `json:"lead_adj"`
		Cap       string `json:"cap"`
		CapPeriod string `json:"cap_period"`
		SKUs      string `json:"skus"`
		Tiers     string `json:"tiers"`
		Horizon   int    `json:"horizon"`
	}{
		SalesLift: p.SalesLiftPercent,
		Mode:      mode,
		LeadAdj:   p.ProductionLeadAdjustmentWeeks,
		Cap:       cap,
		CapPeriod: string(p.CapitalPeriod),
		SKUs:      skus,
		Tiers:     strings.Join(tiers, ","),
		Horizon:   p.TimeHorizonWeeks,
	}

	raw, _ := json.Marshal(normalized)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])[:16]
}
