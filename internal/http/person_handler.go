package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"traits-matcher/internal/domain"
	"traits-matcher/internal/repository"
	"traits-matcher/internal/service"
)

// personResource es la vista pública de una persona: los contadores de
// observación no se exponen.
type personResource struct {
	Name         string  `json:"name"`
	Friendliness float64 `json:"friendliness"`
	Dominance    float64 `json:"dominance"`
}

// PersonHandler mantiene dependencias para los endpoints de personas.
type PersonHandler struct {
	logger      *zap.Logger
	persons     repository.PersonRepository
	personality *service.PersonalityService
}

// NewPersonHandler crea una instancia de PersonHandler con sus dependencias.
func NewPersonHandler(
	logger *zap.Logger,
	persons repository.PersonRepository,
	personality *service.PersonalityService,
) *PersonHandler {
	return &PersonHandler{
		logger:      logger,
		persons:     persons,
		personality: personality,
	}
}

// CreatePerson maneja POST /persons.
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create person request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "person name cannot be empty"})
		return
	}
	if utf8.RuneCountInString(req.Name) > domain.MaxNameLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("person name too long (max %d characters)", domain.MaxNameLen)})
		return
	}

	if err := h.persons.Create(c.Request.Context(), req.Name); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("person '%s' already exists", req.Name)})
			return
		}
		h.logger.Error("create person failed", zap.Error(err), zap.String("person", req.Name))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create person"})
		return
	}

	h.logger.Info("person created", zap.String("person", req.Name))
	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("Person '%s' created.", req.Name)})
}

// AddDescription maneja POST /persons/:name/description.
func (h *PersonHandler) AddDescription(c *gin.Context) {
	name := c.Param("name")

	var req struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add description request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if utf8.RuneCountInString(req.Description) > domain.MaxTextLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("description too long (max %d characters)", domain.MaxTextLen)})
		return
	}

	if err := h.personality.AddDescription(c.Request.Context(), name, req.Description); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("person '%s' not found", name)})
			return
		}
		h.logger.Error("add description failed", zap.Error(err), zap.String("person", name))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add description"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Description added to person '%s'.", name)})
}

// ListPersons maneja GET /persons y devuelve el arreglo completo.
func (h *PersonHandler) ListPersons(c *gin.Context) {
	persons, err := h.persons.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list persons failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch persons"})
		return
	}

	resources := make([]personResource, 0, len(persons))
	for _, p := range persons {
		resources = append(resources, personResource{
			Name:         p.Name,
			Friendliness: p.Friendliness,
			Dominance:    p.Dominance,
		})
	}
	c.JSON(http.StatusOK, resources)
}

// GetPerson maneja GET /persons/:name. Devuelve un arreglo de un elemento o
// un objeto de error; la superficie de lectura nunca lanza.
func (h *PersonHandler) GetPerson(c *gin.Context) {
	name := c.Param("name")

	person, err := h.persons.GetByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("person '%s' not found", name)})
			return
		}
		h.logger.Error("get person failed", zap.Error(err), zap.String("person", name))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch person"})
		return
	}

	c.JSON(http.StatusOK, []personResource{{
		Name:         person.Name,
		Friendliness: person.Friendliness,
		Dominance:    person.Dominance,
	}})
}
