package simcache

import (
	"context"
	"testing"
	"time"

	"stocksim/internal/simulation"
)

func newTestMemory() (*Memory, *time.Time) {
	m := NewMemory(5*time.Minute, 5*time.Minute)
	now := time.Date(2025, 8, 4, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestMemory_ResultTTL(t *testing.T) {
	m, now := newTestMemory()
	ctx := context.Background()
	result := &simulation.SimulationResult{ParametersHash: "abc"}

	if err := m.Set(ctx, "abc", result); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := m.Get(ctx, "abc")
	if err != nil || got == nil {
		t.Fatalf("get=%v err=%v want hit", got, err)
	}

	*now = now.Add(5*time.Minute + time.Second)
	got, err = m.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected expired entry to be gone")
	}
}

func TestMemory_SetRefreshesTTL(t *testing.T) {
	m, now := newTestMemory()
	ctx := context.Background()
	result := &simulation.SimulationResult{ParametersHash: "abc"}

	if err := m.Set(ctx, "abc", result); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	*now = now.Add(4 * time.Minute)
	if err := m.Set(ctx, "abc", result); err != nil {
		t.Fatalf("re-set failed: %v", err)
	}

	// 4 minutes after the rewrite the original TTL would have lapsed.
	*now = now.Add(4 * time.Minute)
	got, err := m.Get(ctx, "abc")
	if err != nil || got == nil {
		t.Fatalf("get=%v err=%v want hit after TTL refresh", got, err)
	}
}

func TestMemory_Invalidate(t *testing.T) {
	m, _ := newTestMemory()
	ctx := context.Background()

	_ = m.Set(ctx, "a", &simulation.SimulationResult{})
	_ = m.Set(ctx, "b", &simulation.SimulationResult{})
	if err := m.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if got, _ := m.Get(ctx, "a"); got != nil {
		t.Fatalf("entry survived invalidation")
	}
}

func TestMemory_TokenSingleUse(t *testing.T) {
	m, _ := newTestMemory()
	ctx := context.Background()

	data := simulation.ConfirmationTokenData{
		ScenarioHash: "abc",
		ActionIDs:    []string{"a-1", "a-2"},
	}
	if err := m.Put(ctx, "tok", data); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	ok, err := m.Validate(ctx, "tok", "abc", []string{"a-2", "a-1"})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !ok {
		t.Fatalf("first validation failed; id order must not matter")
	}

	ok, err = m.Validate(ctx, "tok", "abc", []string{"a-1", "a-2"})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if ok {
		t.Fatalf("token valid twice; must be single-use")
	}
}

func TestMemory_TokenMismatches(t *testing.T) {
	m, _ := newTestMemory()
	ctx := context.Background()

	data := simulation.ConfirmationTokenData{
		ScenarioHash: "abc",
		ActionIDs:    []string{"a-1", "a-2"},
	}

	_ = m.Put(ctx, "tok", data)
	if ok, _ := m.Validate(ctx, "tok", "other", []string{"a-1", "a-2"}); ok {
		t.Fatalf("wrong scenario hash accepted")
	}
	// Mismatch must not burn the token.
	if ok, _ := m.Validate(ctx, "tok", "abc", []string{"a-1"}); ok {
		t.Fatalf("subset of action ids accepted")
	}
	if ok, _ := m.Validate(ctx, "tok", "abc", []string{"a-1", "a-2", "a-3"}); ok {
		t.Fatalf("superset of action ids accepted")
	}
	if ok, _ := m.Validate(ctx, "tok", "abc", []string{"a-1", "a-2"}); !ok {
		t.Fatalf("exact match rejected after mismatched attempts")
	}
}

func TestMemory_TokenExpiry(t *testing.T) {
	m, now := newTestMemory()
	ctx := context.Background()

	_ = m.Put(ctx, "tok", simulation.ConfirmationTokenData{
		ScenarioHash: "abc",
		ActionIDs:    []string{"a-1"},
	})
	*now = now.Add(5*time.Minute + time.Second)
	if ok, _ := m.Validate(ctx, "tok", "abc", []string{"a-1"}); ok {
		t.Fatalf("expired token accepted")
	}
}

func TestMemory_SweepExpired(t *testing.T) {
	m, now := newTestMemory()
	ctx := context.Background()

	_ = m.Set(ctx, "old", &simulation.SimulationResult{})
	_ = m.Put(ctx, "old-tok", simulation.ConfirmationTokenData{ScenarioHash: "x", ActionIDs: []string{"a"}})

	*now = now.Add(3 * time.Minute)
	_ = m.Set(ctx, "fresh", &simulation.SimulationResult{})

	*now = now.Add(2*time.Minute + time.Second)
	results, tokens := m.SweepExpired()
	if results != 1 || tokens != 1 {
		t.Fatalf("swept results=%d tokens=%d want=1/1", results, tokens)
	}
	if got, _ := m.Get(ctx, "fresh"); got == nil {
		t.Fatalf("fresh entry swept")
	}
}
