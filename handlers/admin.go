package handlers

import (
	"errors"
	"net/http"
	"strings"

	"chambers/services/content"
	"chambers/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the content management routes. One handler covers
// every content type; the :type route parameter resolves to a descriptor.
type AdminHandler struct {
	Workflow *content.Workflow
	types    map[string]content.Type
}

// NewAdminHandler creates a new AdminHandler over the given content types.
func NewAdminHandler(workflow *content.Workflow, types []content.Type) *AdminHandler {
	byName := make(map[string]content.Type, len(types))
	for _, t := range types {
		byName[t.Name] = t
	}
	return &AdminHandler{Workflow: workflow, types: byName}
}

func (h *AdminHandler) resolve(c *gin.Context) (content.Type, bool) {
	t, ok := h.types[c.Param("type")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown content type"})
	}
	return t, ok
}

// ListHandler renders the admin list view for a content type.
func (h *AdminHandler) ListHandler(c *gin.Context) {
	t, ok := h.resolve(c)
	if !ok {
		return
	}
	h.renderList(c, t, utils.PopFlash(c))
}

// CreateHandler processes a create form post. Success redirects to the list
// view; any failure re-renders the list with an inline message and the
// unchanged records.
func (h *AdminHandler) CreateHandler(c *gin.Context) {
	t, ok := h.resolve(c)
	if !ok {
		return
	}

	sub, cleanup, err := parseSubmission(c, t)
	if err != nil {
		h.renderList(c, t, "Invalid form submission")
		return
	}
	defer cleanup()

	if _, err := h.Workflow.Create(c.Request.Context(), t, sub); err != nil {
		var vErr *content.ValidationError
		if errors.As(err, &vErr) {
			h.renderList(c, t, "Invalid input: "+vErr.Error())
			return
		}
		utils.GetLogger().Error("failed to save record",
			zap.String("type", t.Name), zap.Error(err))
		h.renderList(c, t, "Failed to save "+t.Name+" entry. Try again.")
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/"+t.Name)
}

// DeleteHandler removes a record and every attachment it owns.
func (h *AdminHandler) DeleteHandler(c *gin.Context) {
	t, ok := h.resolve(c)
	if !ok {
		return
	}
	id := c.Param("id")

	if err := h.Workflow.Delete(c.Request.Context(), t, id); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			utils.SetFlash(c, "Entry not found; it may already have been deleted.")
			c.Redirect(http.StatusSeeOther, "/admin/"+t.Name)
			return
		}
		utils.GetLogger().Error("failed to delete record",
			zap.String("type", t.Name), zap.String("id", id), zap.Error(err))
		h.renderList(c, t, "Failed to delete "+t.Name+" entry. Try again.")
		return
	}

	utils.SetFlash(c, "Entry deleted.")
	c.Redirect(http.StatusSeeOther, "/admin/"+t.Name)
}

// EditPageHandler renders the edit view for one record.
func (h *AdminHandler) EditPageHandler(c *gin.Context) {
	t, ok := h.resolve(c)
	if !ok {
		return
	}
	id := c.Param("id")

	doc, err := h.Workflow.Get(c.Request.Context(), t, id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"record": nil, "error": "Entry not found"})
			return
		}
		utils.GetLogger().Error("failed to load record",
			zap.String("type", t.Name), zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"record": nil, "error": "Failed to load entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": doc, "error": nil})
}

// UpdateHandler processes an edit form post. A slot without a new file keeps
// its current attachment.
func (h *AdminHandler) UpdateHandler(c *gin.Context) {
	t, ok := h.resolve(c)
	if !ok {
		return
	}
	id := c.Param("id")

	sub, cleanup, err := parseSubmission(c, t)
	if err != nil {
		h.renderEdit(c, t, id, "Invalid form submission")
		return
	}
	defer cleanup()

	if err := h.Workflow.Update(c.Request.Context(), t, id, sub); err != nil {
		var vErr *content.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.renderEdit(c, t, id, "Invalid input: "+vErr.Error())
		case errors.Is(err, content.ErrNotFound):
			c.JSON(http.StatusOK, gin.H{"record": nil, "error": "Entry not found"})
		default:
			utils.GetLogger().Error("failed to update record",
				zap.String("type", t.Name), zap.String("id", id), zap.Error(err))
			h.renderEdit(c, t, id, "Failed to update "+t.Name+" entry. Try again.")
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/"+t.Name)
}

// renderList answers with the current records plus an optional inline
// message. Load failures surface as a message with an empty list; the admin
// never lands on a crashed page.
func (h *AdminHandler) renderList(c *gin.Context, t content.Type, message string) {
	docs, err := h.Workflow.List(c.Request.Context(), t)
	if err != nil {
		utils.GetLogger().Error("failed to list records",
			zap.String("type", t.Name), zap.Error(err))
		if message == "" {
			message = "Failed to load " + t.Name
		}
		docs = nil
	}
	c.JSON(http.StatusOK, gin.H{"records": docs, "error": orNil(message)})
}

func (h *AdminHandler) renderEdit(c *gin.Context, t content.Type, id, message string) {
	doc, err := h.Workflow.Get(c.Request.Context(), t, id)
	if err != nil {
		doc = nil
	}
	c.JSON(http.StatusOK, gin.H{"record": doc, "error": orNil(message)})
}

func orNil(message string) any {
	if strings.TrimSpace(message) == "" {
		return nil
	}
	return message
}
