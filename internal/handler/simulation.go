package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stocksim/internal/service"
	"stocksim/internal/simulation"
)

type SimulationHandler struct {
	Service *service.SimulatorService
	Logger  *zap.Logger
}

func (h *SimulationHandler) Register(r *gin.Engine) {
	sim := r.Group("/api/v1/simulations")
	sim.POST("/run", h.run)
	sim.GET("/cached/:hash", h.cached)
	sim.DELETE("/cache", h.invalidate)
	sim.POST("/validate", h.validate)
	sim.POST("/plan", h.plan)
	sim.POST("/confirm", h.confirm)
}

// run executes a scenario simulation, consulting the result cache first.
// ?refresh=true forces a recomputation.
func (h *SimulationHandler) run(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}

	params := simulation.DefaultParameters()
	if err := c.ShouldBindJSON(&params); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := params.Validate(); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	refresh := strings.EqualFold(c.Query("refresh"), "true")
	if !refresh {
		cached, err := h.Service.GetCachedResult(c.Request.Context(), params)
		if err != nil && h.Logger != nil {
			h.Logger.Warn("cache read failed", zap.Error(err))
		}
		if cached != nil {
			Ok(c, cached, map[string]any{"cache_hit": true})
			return
		}
	}

	result, err := h.Service.RunSimulation(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if err := h.Service.CacheResult(c.Request.Context(), params, result); err != nil && h.Logger != nil {
		h.Logger.Warn("cache write failed", zap.Error(err))
	}

	Ok(c, result, map[string]any{"cache_hit": false})
}

func (h *SimulationHandler) cached(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	hash := strings.TrimSpace(c.Param("hash"))
	if hash == "" {
		Error(c, http.StatusBadRequest, "invalid hash", nil)
		return
	}
	result, err := h.Service.GetCachedResultByHash(c.Request.Context(), hash)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if result == nil {
		Error(c, http.StatusNotFound, "result not found or expired", nil)
		return
	}
	Ok(c, result, nil)
}

func (h *SimulationHandler) invalidate(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	if err := h.Service.InvalidateCache(c.Request.Context()); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"invalidated": true}, nil)
}

type validateRequest struct {
	Actions []simulation.RecommendedAction `json:"actions"`
}

func (h *SimulationHandler) validate(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	violations, err := h.Service.ValidateActions(c.Request.Context(), req.Actions)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{
		"all_valid":         len(violations) == 0,
		"validation_errors": violations,
	}, nil)
}

type planRequest struct {
	ScenarioHash string   `json:"scenario_hash"`
	ActionIDs    []string `json:"action_ids"`
}

func (h *SimulationHandler) plan(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if strings.TrimSpace(req.ScenarioHash) == "" {
		Error(c, http.StatusBadRequest, "scenario_hash required", nil)
		return
	}

	plan, err := h.Service.BuildExecutionPlan(c.Request.Context(), req.ScenarioHash, req.ActionIDs)
	if errors.Is(err, service.ErrResultExpired) {
		Error(c, http.StatusNotFound, err.Error(), nil)
		return
	}
	if errors.Is(err, service.ErrNoActionsSelected) {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, plan, nil)
}

type confirmRequest struct {
	ConfirmationToken string   `json:"confirmation_token"`
	ScenarioHash      string   `json:"scenario_hash"`
	ActionIDs         []string `json:"action_ids"`
}

// confirm burns a confirmation token. The commit step that actually writes
// accepted actions back to storage lives outside this service and calls this
// endpoint first.
func (h *SimulationHandler) confirm(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	valid := h.Service.ValidateConfirmationToken(c.Request.Context(), req.ConfirmationToken, req.ScenarioHash, req.ActionIDs)
	Ok(c, gin.H{"valid": valid}, nil)
}
