package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"stocksim/internal/models"
	"stocksim/internal/repository"
)

type PresetHandler struct {
	Repo repository.PresetRepository
}

func (h *PresetHandler) Register(r *gin.Engine) {
	p := r.Group("/api/v1/presets")
	p.GET("", h.list)
	p.GET("/:name", h.get)
	p.PUT("/:name", h.put)
	p.DELETE("/:name", h.delete)
}

func (h *PresetHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListScenarioPresets(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

func (h *PresetHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	name := strings.TrimSpace(c.Param("name"))
	item, err := h.Repo.GetScenarioPresetByName(c.Request.Context(), name)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "preset not found", nil)
		return
	}
	Ok(c, item, nil)
}

type presetRequest struct {
	Description string         `json:"description"`
	Params      map[string]any `json:"params"`
}

func (h *PresetHandler) put(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		Error(c, http.StatusBadRequest, "invalid name", nil)
		return
	}
	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	params, err := json.Marshal(req.Params)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item := &models.ScenarioPreset{
		Name:        name,
		Description: req.Description,
		Params:      datatypes.JSON(params),
	}
	if err := h.Repo.UpsertScenarioPreset(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

func (h *PresetHandler) delete(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		Error(c, http.StatusBadRequest, "invalid name", nil)
		return
	}
	if err := h.Repo.DeleteScenarioPresetByName(c.Request.Context(), name); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"deleted": name}, nil)
}
