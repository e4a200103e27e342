package simulation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestScenarioHash_OrderInsensitive(t *testing.T) {
	a := DefaultParameters()
	a.SkuFilter = []string{"SKU-B", "SKU-A"}
	a.SkuScope = []string{"STANDARD", "HERO"}

	b := DefaultParameters()
	b.SkuFilter = []string{"SKU-A", "SKU-B"}
	b.SkuScope = []string{"HERO", "STANDARD"}

	if ScenarioHash(a) != ScenarioHash(b) {
		t.Fatalf("hashes differ for reordered lists: %s vs %s", ScenarioHash(a), ScenarioHash(b))
	}
}

func TestScenarioHash_SensitiveToParameters(t *testing.T) {
	a := DefaultParameters()
	b := DefaultParameters()
	b.SalesLiftPercent = 20
	if ScenarioHash(a) == ScenarioHash(b) {
		t.Fatalf("hash unchanged after sales lift change")
	}

	c := DefaultParameters()
	mode := ModeAir
	c.ShippingModeOverride = &mode
	if ScenarioHash(a) == ScenarioHash(c) {
		t.Fatalf("hash unchanged after mode override change")
	}

	d := DefaultParameters()
	d.SkuFilter = []string{}
	if ScenarioHash(a) == ScenarioHash(d) {
		t.Fatalf("nil filter and empty filter must hash differently")
	}
}

func TestScenarioHash_CapOnlyCountsWhenEnabled(t *testing.T) {
	cap := decimal.NewFromInt(50000)

	a := DefaultParameters()
	a.CapitalCapUSD = &cap // disabled, so the cap is ignored

	b := DefaultParameters()

	if ScenarioHash(a) != ScenarioHash(b) {
		t.Fatalf("disabled cap changed the hash")
	}

	c := DefaultParameters()
	c.CapitalConstraintEnabled = true
	c.CapitalCapUSD = &cap
	if ScenarioHash(a) == ScenarioHash(c) {
		t.Fatalf("enabled cap did not change the hash")
	}
}

func TestScenarioHash_Shape(t *testing.T) {
	hash := ScenarioHash(DefaultParameters())
	if len(hash) != 16 {
		t.Fatalf("len=%d want=16", len(hash))
	}
	if hash != ScenarioHash(DefaultParameters()) {
		t.Fatalf("hash not stable across calls")
	}
}
