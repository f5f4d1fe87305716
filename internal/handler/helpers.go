package handler

import (
	"net/http"

	"fernledger/internal/apierror"
	"fernledger/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// bindAndValidate binds the request body (JSON or multipart form, chosen by
// content type) and runs go-playground/validator tags. Returns false and
// writes the error response if validation fails — the caller should return
// immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request body: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeError maps the domain error taxonomy onto HTTP responses. Storage
// errors are logged with full context and surfaced as an opaque 500 — clients
// never see internal storage detail.
func writeError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	default:
		if stock, ok := apperr.AsInsufficientStock(err); ok {
			c.JSON(http.StatusConflict, apierror.NewStock(stock.Error(), stock.Available))
			return
		}
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
	}
}
