package handlers

import (
	"errors"
	"net/http"

	"chambers/services/content"
	"chambers/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PublicHandler serves the read-only site views: pure read-through over the
// content repositories, no side effects.
type PublicHandler struct {
	Workflow *content.Workflow
	types    map[string]content.Type
}

// NewPublicHandler creates a new PublicHandler over the given content types.
func NewPublicHandler(workflow *content.Workflow, types []content.Type) *PublicHandler {
	byName := make(map[string]content.Type, len(types))
	for _, t := range types {
		byName[t.Name] = t
	}
	return &PublicHandler{Workflow: workflow, types: byName}
}

// HomeHandler renders the home view with current notices.
func (h *PublicHandler) HomeHandler(c *gin.Context) {
	docs, err := h.Workflow.List(c.Request.Context(), h.types["notices"])
	if err != nil {
		utils.GetLogger().Error("failed to load notices", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"notices": []any{}, "error": "Failed to load notices", "flash": orNil(utils.PopFlash(c))})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notices": docs, "error": nil, "flash": orNil(utils.PopFlash(c))})
}

// ListHandler renders the public list view for one content type.
func (h *PublicHandler) ListHandler(typeName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		t := h.types[typeName]
		docs, err := h.Workflow.List(c.Request.Context(), t)
		if err != nil {
			utils.GetLogger().Error("failed to load records",
				zap.String("type", t.Name), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"records": []any{}, "error": "Failed to load " + t.Name})
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": docs, "error": nil})
	}
}

// DetailHandler renders the detail view for one record; an unknown id is a
// not-found state, not an error page.
func (h *PublicHandler) DetailHandler(typeName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		t := h.types[typeName]
		doc, err := h.Workflow.Get(c.Request.Context(), t, c.Param("id"))
		if err != nil {
			if errors.Is(err, content.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"record": nil, "error": "Not found"})
				return
			}
			utils.GetLogger().Error("failed to load record",
				zap.String("type", t.Name), zap.Error(err))
			c.JSON(http.StatusNotFound, gin.H{"record": nil, "error": "Not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"record": doc, "error": nil})
	}
}
