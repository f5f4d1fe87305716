package handler

import (
	"net/http"

	"fernledger/internal/apierror"
	"fernledger/internal/dto"
	"fernledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShipmentsHandler struct{ svc service.LedgerService }

func NewShipmentsHandler(svc service.LedgerService) *ShipmentsHandler {
	return &ShipmentsHandler{svc: svc}
}

func (h *ShipmentsHandler) Record(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid batch id"))
		return
	}
	var req dto.RecordShipmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordShipment(c.Request.Context(), batchID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ShipmentsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid shipment id"))
		return
	}
	if err := h.svc.DeleteShipment(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
