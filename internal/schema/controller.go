package schema

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type RegistryController struct {
	Registry RegistryAPI
}

type schemaResponse struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	IsActive bool           `json:"is_active"`
	Fields   []fieldPayload `json:"fields"`
}

type fieldPayload struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
}

func toResponse(s *Schema) schemaResponse {
	fields := make([]fieldPayload, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, fieldPayload{
			Name:        f.Name,
			Kind:        f.Kind.String(),
			Label:       f.Label,
			Description: f.Description,
			Required:    f.Required,
			Options:     f.Options,
		})
	}
	return schemaResponse{ID: s.ID, Name: s.Name, IsActive: s.IsActive, Fields: fields}
}

// GET /api/types
func (rc *RegistryController) ListActive(c *gin.Context) {
	schemas, err := rc.Registry.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list service types"})
		return
	}

	out := make([]schemaResponse, 0, len(schemas))
	for i := range schemas {
		out = append(out, toResponse(&schemas[i]))
	}
	c.JSON(http.StatusOK, gin.H{"types": out})
}

// GET /api/types/:id
func (rc *RegistryController) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid type id is required"})
		return
	}

	s, err := rc.Registry.Lookup(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "service type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load service type"})
		return
	}

	c.JSON(http.StatusOK, toResponse(s))
}

// POST /api/types/:id/deactivate  (admin only)
func (rc *RegistryController) Deactivate(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid type id is required"})
		return
	}

	found, err := rc.Registry.Deactivate(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deactivate service type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deactivated": found})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
