package handlers

import (
	"errors"
	"net/http"

	"chambers/services/storage"
	"chambers/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileHandler streams stored attachments by reference.
type FileHandler struct {
	Store *storage.Store
}

// NewFileHandler creates a new FileHandler instance.
func NewFileHandler(store *storage.Store) *FileHandler {
	return &FileHandler{Store: store}
}

// GetFileHandler serves GET /file/:id. Malformed references are a 400,
// missing objects a 404; everything else streams with the stored content
// type.
func (h *FileHandler) GetFileHandler(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed file reference"})
		return
	}

	att, reader, err := h.Store.Open(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		utils.GetLogger().Error("failed to open attachment", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	defer reader.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": `inline; filename="` + att.Filename + `"`,
	}
	c.DataFromReader(http.StatusOK, att.Size, att.ContentType, reader, extraHeaders)
}
