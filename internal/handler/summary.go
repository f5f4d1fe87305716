package handler

import (
	"net/http"
	"path/filepath"

	"fernledger/internal/service"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct{ svc service.SummaryService }

func NewSummaryHandler(svc service.SummaryService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

func (h *SummaryHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Report streams the generated portfolio PDF as a download.
func (h *SummaryHandler) Report(c *gin.Context) {
	path, err := h.svc.Report(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
