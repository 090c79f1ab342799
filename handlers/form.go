package handlers

import (
	"fmt"
	"io"
	"strings"

	"chambers/services/content"

	"github.com/gin-gonic/gin"
)

// parseSubmission turns a form post into a workflow submission. Only fields
// and attachment slots declared by the descriptor are read. The returned
// cleanup closes any opened file parts and must run after the workflow.
func parseSubmission(c *gin.Context, t content.Type) (content.Submission, func(), error) {
	sub := content.Submission{
		Values: make(map[string]string),
		Files:  make(map[string][]content.FileUpload),
	}
	cleanup := func() {}

	var closers []io.Closer
	if len(t.Slots) > 0 && strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			return sub, cleanup, fmt.Errorf("failed to parse multipart form: %w", err)
		}
		for _, slot := range t.Slots {
			for _, header := range form.File[slot.Field] {
				file, err := header.Open()
				if err != nil {
					closeAll(closers)
					return sub, func() {}, fmt.Errorf("failed to open file part %s: %w", slot.Field, err)
				}
				closers = append(closers, file)
				sub.Files[slot.Field] = append(sub.Files[slot.Field], content.FileUpload{
					Data:        file,
					Filename:    header.Filename,
					ContentType: header.Header.Get("Content-Type"),
					Size:        header.Size,
				})
			}
		}
		cleanup = func() { closeAll(closers) }
	}

	for _, field := range t.Fields {
		sub.Values[field.Name] = c.PostForm(field.Name)
	}
	for _, slot := range t.Slots {
		if slot.CaptionsField != "" {
			sub.Values[slot.CaptionsField] = c.PostForm(slot.CaptionsField)
		}
	}
	return sub, cleanup, nil
}

func closeAll(closers []io.Closer) {
	for _, closer := range closers {
		closer.Close()
	}
}
