package http

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"traits-matcher/internal/domain"
	"traits-matcher/internal/service"
)

// MatchHandler mantiene dependencias para el endpoint de matching.
type MatchHandler struct {
	logger  *zap.Logger
	matcher *service.MatchService
}

// NewMatchHandler crea una instancia de MatchHandler con sus dependencias.
func NewMatchHandler(logger *zap.Logger, matcher *service.MatchService) *MatchHandler {
	return &MatchHandler{logger: logger, matcher: matcher}
}

// FindMatches maneja POST /matches.
func (h *MatchHandler) FindMatches(c *gin.Context) {
	var req struct {
		CompanyName    string `json:"company_name" binding:"required"`
		JobDescription string `json:"job_description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid find matches request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if utf8.RuneCountInString(req.JobDescription) > domain.MaxTextLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("job description too long (max %d characters)", domain.MaxTextLen)})
		return
	}

	matches, err := h.matcher.FindMatches(c.Request.Context(), req.CompanyName, req.JobDescription)
	if err != nil {
		h.logger.Error("find matches failed", zap.Error(err), zap.String("company", req.CompanyName))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not find matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
