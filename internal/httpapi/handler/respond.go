package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"cinelog/internal/httpapi/dto"
	"cinelog/internal/httpapi/validation"
)

func sendError(c *gin.Context, status int, reason string, fields ...validation.FieldError) {
	c.JSON(status, dto.NewError(status, reason, fields...))
}

// bindJSON decodes the request body into dst. An empty body is not an error:
// it decodes to the zero value and the validators report the missing fields,
// which keeps bodyless requests on the 422 path instead of 400.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
