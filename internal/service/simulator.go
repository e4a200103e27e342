package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stocksim/internal/repository"
	"stocksim/internal/simcache"
	"stocksim/internal/simulation"
)

var (
	// ErrResultExpired means the cached scenario result backing a request is
	// gone; the caller must re-run the simulation.
	ErrResultExpired = errors.New("simulation result not found or expired")
	// ErrNoActionsSelected means an execution plan was requested without any
	// matching recommended action.
	ErrNoActionsSelected = errors.New("no actions selected for execution")
)

// SimulatorService drives the scenario-simulation pipeline: fetch baseline,
// run the engine twice, cache the result, and manage the pre-commit surface
// (validation, execution plans, confirmation tokens). All computation is
// stateless; the cache and token store are the only shared state and are
// injected.
type SimulatorService struct {
	Repo   repository.Repository
	Cache  simcache.ResultCache
	Tokens simcache.TokenStore
	Logger *zap.Logger

	// Clock is overridable in tests; nil means time.Now.
	Clock func() time.Time

	TokenTTL time.Duration
}

func (s *SimulatorService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// FetchBaseline loads the immutable snapshot for a horizon. Store errors
// are propagated unmodified.
func (s *SimulatorService) FetchBaseline(ctx context.Context, horizonWeeks int) (*simulation.BaselineData, error) {
	loader := &simulation.Loader{Repo: s.Repo, Logger: s.Logger}
	return loader.Fetch(ctx, s.now(), horizonWeeks)
}

// RunSimulation fetches a fresh baseline and runs the full pipeline. The
// result is deterministic for an identical (snapshot, params) pair.
func (s *SimulatorService) RunSimulation(ctx context.Context, params simulation.ScenarioParameters) (*simulation.SimulationResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	base, err := s.FetchBaseline(ctx, params.TimeHorizonWeeks)
	if err != nil {
		return nil, err
	}

	result := simulation.Run(base, params, s.now())
	result.ExecutionTimeMS = float64(time.Since(start).Microseconds()) / 1000

	if s.Logger != nil {
		s.Logger.Info("simulation complete",
			zap.String("hash", result.ParametersHash),
			zap.Int("horizon_weeks", params.TimeHorizonWeeks),
			zap.Int("skus", len(base.SKUs)),
			zap.Int("recommended_actions", len(result.RecommendedActions)),
			zap.Float64("execution_time_ms", result.ExecutionTimeMS),
		)
	}

	return result, nil
}

// GetCachedResult returns the memoized result for the given parameters, or
// nil when absent or expired.
func (s *SimulatorService) GetCachedResult(ctx context.Context, params simulation.ScenarioParameters) (*simulation.SimulationResult, error) {
	return s.Cache.Get(ctx, simulation.ScenarioHash(params))
}

func (s *SimulatorService) GetCachedResultByHash(ctx context.Context, hash string) (*simulation.SimulationResult, error) {
	return s.Cache.Get(ctx, hash)
}

func (s *SimulatorService) CacheResult(ctx context.Context, params simulation.ScenarioParameters, result *simulation.SimulationResult) error {
	return s.Cache.Set(ctx, simulation.ScenarioHash(params), result)
}

func (s *SimulatorService) InvalidateCache(ctx context.Context) error {
	return s.Cache.Invalidate(ctx)
}

// ValidateActions runs the pre-commit checks for a batch of actions;
// violations are accumulated, never thrown.
func (s *SimulatorService) ValidateActions(ctx context.Context, actions []simulation.RecommendedAction) ([]simulation.ValidationError, error) {
	validator := &simulation.ActionValidator{Repo: s.Repo}
	return validator.ValidateActions(ctx, actions)
}

// BuildExecutionPlan selects actions from a cached result, validates them,
// and issues a single-use confirmation token bound to the scenario hash and
// the requested action id set. The token is issued even when validation
// errors exist; AllValid tells the caller whether committing is sensible.
func (s *SimulatorService) BuildExecutionPlan(ctx context.Context, scenarioHash string, actionIDs []string) (*simulation.ExecutionPlan, error) {
	result, err := s.Cache.Get(ctx, scenarioHash)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrResultExpired
	}

	selectedIDs := make(map[string]struct{}, len(actionIDs))
	for _, id := range actionIDs {
		selectedIDs[id] = struct{}{}
	}
	var selected []simulation.RecommendedAction
	for _, action := range result.RecommendedActions {
		if _, ok := selectedIDs[action.ActionID]; ok {
			selected = append(selected, action)
		}
	}
	if len(selected) == 0 {
		return nil, ErrNoActionsSelected
	}

	violations, err := s.ValidateActions(ctx, selected)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	expiresAt := s.now().UTC().Add(s.tokenTTL())
	if err := s.Tokens.Put(ctx, token, simulation.ConfirmationTokenData{
		ScenarioHash: scenarioHash,
		ActionIDs:    actionIDs,
		ExpiresAt:    expiresAt,
	}); err != nil {
		return nil, err
	}

	plan := &simulation.ExecutionPlan{
		ScenarioHash:      scenarioHash,
		Actions:           selected,
		AllValid:          len(violations) == 0,
		ValidationErrors:  violations,
		ConfirmationToken: token,
		TokenExpiresAt:    expiresAt,
	}
	plan.TotalCashImpact = decimal.Zero
	for _, action := range selected {
		switch action.ActionType {
		case simulation.ActionCreatePO:
			plan.TotalPOsToCreate++
		case simulation.ActionDeferPO:
			plan.TotalPOsToDefer++
		case simulation.ActionUpdateShipmentMode:
			plan.TotalShipmentsToUpdate++
		}
		plan.TotalCashImpact = plan.TotalCashImpact.Add(action.CashImpact)
	}

	return plan, nil
}

func (s *SimulatorService) StoreConfirmationToken(ctx context.Context, token string, data simulation.ConfirmationTokenData) error {
	return s.Tokens.Put(ctx, token, data)
}

// ValidateConfirmationToken resolves to false on any mismatch or expiry and
// consumes the token on success.
func (s *SimulatorService) ValidateConfirmationToken(ctx context.Context, token, scenarioHash string, actionIDs []string) bool {
	ok, err := s.Tokens.Validate(ctx, token, scenarioHash, actionIDs)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("token validation failed", zap.Error(err))
		}
		return false
	}
	return ok
}

func (s *SimulatorService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return 5 * time.Minute
}
