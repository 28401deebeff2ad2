package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"cinelog/internal/httpapi/validation"
)

// MovieSearcher is the slice of the OMDb client the handler needs.
type MovieSearcher interface {
	Search(ctx context.Context, query string) ([]byte, error)
}

// SearchHandler proxies the external movie-lookup API, read-only.
type SearchHandler struct {
	client MovieSearcher
}

func NewSearchHandler(client MovieSearcher) *SearchHandler {
	return &SearchHandler{client: client}
}

func (h *SearchHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/omdb", h.Search)
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		sendError(c, http.StatusBadRequest, "Bad Request",
			validation.FieldError{Field: "q", Code: "REQUIRED", Message: "Query parameter q is required"})
		return
	}

	// upstream failures stay generic: nothing about the provider leaks out
	body, err := h.client.Search(c.Request.Context(), query)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}
