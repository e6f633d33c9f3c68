package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"president-insights/internal/insights"
	"president-insights/internal/repository"
	"president-insights/internal/service"
	"president-insights/internal/twitter"
	"president-insights/internal/watson"
)

// PoliticianHandler expone el analisis de personalidad por handle.
type PoliticianHandler struct {
	logger   *zap.Logger
	analysis *service.AnalysisService
}

func NewPoliticianHandler(logger *zap.Logger, analysis *service.AnalysisService) *PoliticianHandler {
	return &PoliticianHandler{
		logger:   logger,
		analysis: analysis,
	}
}

// ListPoliticians maneja GET /politicians.
func (h *PoliticianHandler) ListPoliticians(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"politicians": h.analysis.Politicians()})
}

// GetPersonality maneja GET /politicians/:handle/personality.
func (h *PoliticianHandler) GetPersonality(c *gin.Context) {
	profile, err := h.analysis.Analyze(c.Request.Context(), c.Param("handle"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GetTraits maneja GET /politicians/:handle/traits y devuelve solo el mapa aplanado.
func (h *PoliticianHandler) GetTraits(c *gin.Context) {
	profile, err := h.analysis.Analyze(c.Request.Context(), c.Param("handle"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"handle": profile.Handle,
		"traits": profile.Flattened,
	})
}

// Refresh maneja POST /politicians/:handle/refresh (requiere token de operador).
func (h *PoliticianHandler) Refresh(c *gin.Context) {
	profile, err := h.analysis.Refresh(c.Request.Context(), c.Param("handle"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if claims, ok := GetAuthClaims(c); ok {
		h.logger.Info("forced reanalysis", zap.String("handle", profile.Handle), zap.String("operator", claims.Operator))
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GetHistory maneja GET /politicians/:handle/history.
func (h *PoliticianHandler) GetHistory(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 10)
	if !ok {
		return
	}
	history, err := h.analysis.History(c.Request.Context(), c.Param("handle"), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": history})
}

// GetSimilar maneja GET /politicians/:handle/similar.
func (h *PoliticianHandler) GetSimilar(c *gin.Context) {
	k, ok := queryInt(c, "k", 5)
	if !ok {
		return
	}
	similar, err := h.analysis.Similar(c.Request.Context(), c.Param("handle"), k)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"similar": similar})
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 || v > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": key + " must be between 1 and 100"})
		return 0, false
	}
	return v, true
}

func (h *PoliticianHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownHandle):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown politician"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no analyses stored"})
	case errors.Is(err, service.ErrPersistenceDisabled):
		c.JSON(http.StatusNotImplemented, gin.H{"error": "persistence not configured"})
	case errors.Is(err, insights.ErrTraitNotFound),
		errors.Is(err, twitter.ErrNoStatuses),
		errors.Is(err, watson.ErrEmptyText):
		h.logger.Warn("incomplete analysis", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "not enough data to analyze"})
	case errors.Is(err, insights.ErrMalformedTree):
		h.logger.Error("malformed personality tree", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "invalid response from analysis service"})
	default:
		h.logger.Error("analysis failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not analyze politician"})
	}
}
