package handler

import (
	"net/http"

	"fernledger/internal/apierror"
	"fernledger/internal/dto"
	"fernledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BatchesHandler struct{ svc service.BatchService }

func NewBatchesHandler(svc service.BatchService) *BatchesHandler {
	return &BatchesHandler{svc: svc}
}

// photoFromForm extracts the optional "photo" multipart file. A missing file
// is not an error; an unreadable one is reported so the client can retry.
func photoFromForm(c *gin.Context) (*service.PhotoUpload, bool) {
	fh, err := c.FormFile("photo")
	if err != nil {
		return nil, true // no photo attached
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cannot read photo upload"))
		return nil, false
	}
	return &service.PhotoUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Reader:      f,
	}, true
}

func (h *BatchesHandler) Create(c *gin.Context) {
	var req dto.CreateBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	photo, ok := photoFromForm(c)
	if !ok {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req, photo)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BatchesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BatchesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid batch id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BatchesHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid batch id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
