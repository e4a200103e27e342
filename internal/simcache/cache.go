// Package simcache holds the only shared mutable state of the simulation
// engine: the scenario result cache and the confirmation token store. Both
// are injected into the service so the engine itself stays free of globals
// and testable against a fake store.
package simcache

import (
	"context"

	"stocksim/internal/simulation"
)

// ResultCache memoizes simulation results keyed by scenario hash. Get
// returns nil for absent or expired entries; Set overwrites any existing
// entry with a fresh TTL.
type ResultCache interface {
	Get(ctx context.Context, hash string) (*simulation.SimulationResult, error)
	Set(ctx context.Context, hash string, result *simulation.SimulationResult) error
	Invalidate(ctx context.Context) error
}

// TokenStore keeps single-use confirmation tokens. Validate succeeds at most
// once per token: it requires the scenario hash to match and the action id
// set to be exactly equal to the bound set, deletes the token on success,
// and reports mismatches and expiry as false rather than an error.
type TokenStore interface {
	Put(ctx context.Context, token string, data simulation.ConfirmationTokenData) error
	Validate(ctx context.Context, token, scenarioHash string, actionIDs []string) (bool, error)
}

// sameIDSet compares two id lists as sets: same cardinality, same members.
func sameIDSet(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, id := range a {
		setA[id] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, id := range b {
		setB[id] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for id := range setB {
		if _, ok := setA[id]; !ok {
			return false
		}
	}
	return true
}
