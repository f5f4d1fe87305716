package handler

import (
	"net/http"

	"fernledger/internal/apierror"
	"fernledger/internal/dto"
	"fernledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GrowthHandler struct{ svc service.GrowthService }

func NewGrowthHandler(svc service.GrowthService) *GrowthHandler {
	return &GrowthHandler{svc: svc}
}

func (h *GrowthHandler) Add(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid batch id"))
		return
	}
	var req dto.AddGrowthRecordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	photo, ok := photoFromForm(c)
	if !ok {
		return
	}
	resp, err := h.svc.Add(c.Request.Context(), batchID, req, photo)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *GrowthHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid growth record id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
