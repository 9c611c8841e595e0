package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"traits-matcher/internal/domain"
	"traits-matcher/internal/repository"
)

// TraitHandler mantiene dependencias para los endpoints de rasgos.
type TraitHandler struct {
	logger *zap.Logger
	traits repository.TraitRepository
}

// NewTraitHandler crea una instancia de TraitHandler con sus dependencias.
func NewTraitHandler(logger *zap.Logger, traits repository.TraitRepository) *TraitHandler {
	return &TraitHandler{logger: logger, traits: traits}
}

// CreateTrait maneja POST /traits. Los puntajes llegan como punteros para
// distinguir un cero explícito de un campo ausente.
func (h *TraitHandler) CreateTrait(c *gin.Context) {
	var req struct {
		Name         string   `json:"name" binding:"required"`
		Friendliness *float64 `json:"friendliness" binding:"required"`
		Dominance    *float64 `json:"dominance" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create trait request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if !domain.ValidScore(*req.Friendliness) || !domain.ValidScore(*req.Dominance) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("scores must be between %g and %g", domain.ScoreMin, domain.ScoreMax)})
		return
	}

	trait := domain.Trait{
		Name:         req.Name,
		Friendliness: *req.Friendliness,
		Dominance:    *req.Dominance,
	}
	if err := h.traits.Create(c.Request.Context(), trait); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("trait with name '%s' already exists", trait.Name)})
			return
		}
		h.logger.Error("create trait failed", zap.Error(err), zap.String("trait", trait.Name))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create trait"})
		return
	}

	h.logger.Info("trait created", zap.String("trait", trait.Name))
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Trait '%s' created with friendliness: %g, dominance: %g.", trait.Name, trait.Friendliness, trait.Dominance),
	})
}

// ListTraits maneja GET /traits y devuelve el arreglo completo.
func (h *TraitHandler) ListTraits(c *gin.Context) {
	traits, err := h.traits.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list traits failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch traits"})
		return
	}

	if traits == nil {
		traits = []domain.Trait{}
	}
	c.JSON(http.StatusOK, traits)
}
