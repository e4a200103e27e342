package simcache

import (
	"context"
	"sync"
	"time"

	"stocksim/internal/simulation"
)

type resultEntry struct {
	result  *simulation.SimulationResult
	expires time.Time
}

// Memory is the in-process implementation of ResultCache and TokenStore.
// Expired entries are discarded lazily on read; SweepExpired exists for a
// periodic cleanup job so abandoned entries do not accumulate.
type Memory struct {
	mu      sync.Mutex
	results map[string]resultEntry
	tokens  map[string]simulation.ConfirmationTokenData

	resultTTL time.Duration
	tokenTTL  time.Duration

	now func() time.Time
}

func NewMemory(resultTTL, tokenTTL time.Duration) *Memory {
	return &Memory{
		results:   map[string]resultEntry{},
		tokens:    map[string]simulation.ConfirmationTokenData{},
		resultTTL: resultTTL,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (m *Memory) Get(_ context.Context, hash string) (*simulation.SimulationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.results[hash]
	if !ok {
		return nil, nil
	}
	if !m.now().Before(entry.expires) {
		delete(m.results, hash)
		return nil, nil
	}
	return entry.result, nil
}

func (m *Memory) Set(_ context.Context, hash string, result *simulation.SimulationResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results[hash] = resultEntry{
		result:  result,
		expires: m.now().Add(m.resultTTL),
	}
	return nil
}

func (m *Memory) Invalidate(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results = map[string]resultEntry{}
	return nil
}

func (m *Memory) Put(_ context.Context, token string, data simulation.ConfirmationTokenData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if data.ExpiresAt.IsZero() {
		data.ExpiresAt = m.now().Add(m.tokenTTL)
	}
	m.tokens[token] = data
	return nil
}

func (m *Memory) Validate(_ context.Context, token, scenarioHash string, actionIDs []string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.tokens[token]
	if !ok {
		return false, nil
	}
	if !m.now().Before(data.ExpiresAt) {
		delete(m.tokens, token)
		return false, nil
	}
	if data.ScenarioHash != scenarioHash {
		return false, nil
	}
	if !sameIDSet(data.ActionIDs, actionIDs) {
		return false, nil
	}

	// Single use.
	delete(m.tokens, token)
	return true, nil
}

// SweepExpired drops expired results and tokens, returning how many of each
// were removed.
func (m *Memory) SweepExpired() (results, tokens int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for hash, entry := range m.results {
		if !now.Before(entry.expires) {
			delete(m.results, hash)
			results++
		}
	}
	for token, data := range m.tokens {
		if !now.Before(data.ExpiresAt) {
			delete(m.tokens, token)
			tokens++
		}
	}
	return results, tokens
}
