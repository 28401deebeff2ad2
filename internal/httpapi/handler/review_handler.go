package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cinelog/internal/httpapi/dto"
	"cinelog/internal/httpapi/middleware"
	"cinelog/internal/httpapi/models"
	"cinelog/internal/httpapi/service"
	"cinelog/internal/httpapi/validation"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers the review endpoints. POST /:id/edit is a legacy
// alias kept for older clients; it shares the PUT code path.
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/reviews")
	{
		reviews.GET("", h.List)
		reviews.POST("", middleware.RequireAuth(), h.Create)
		reviews.PUT("/:id", middleware.RequireAuth(), h.Update)
		reviews.POST("/:id/edit", middleware.RequireAuth(), h.Update)
		reviews.DELETE("/:id", h.Delete)
	}
}

// List returns all reviews, newest first. No auth required.
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.reviewService.List()
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Server Error")
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	username := c.GetString(middleware.UsernameKey)
	if username == "" {
		sendError(c, http.StatusUnauthorized, "Unauthorized",
			validation.FieldError{Field: "auth", Code: "NO_SESSION", Message: "You must be logged in"})
		return
	}

	var payload validation.ReviewPayload
	if err := bindJSON(c, &payload); err != nil {
		sendError(c, http.StatusBadRequest, "Bad Request")
		return
	}

	if fieldErrors := validation.ValidateReview(payload); len(fieldErrors) > 0 {
		sendError(c, http.StatusUnprocessableEntity, "Unprocessable Entity", fieldErrors...)
		return
	}

	if err := h.reviewService.Create(username, payload); err != nil {
		sendError(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusOK, dto.AckResponse{OK: true})
}

// Update applies a partial update to an owned review. The id and identity are
// checked before any lookup; existence before ownership.
func (h *ReviewHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	username := c.GetString(middleware.UsernameKey)
	if err != nil || id == 0 || username == "" {
		sendError(c, http.StatusBadRequest, "Bad Request",
			validation.FieldError{Field: "id", Code: "INVALID_OR_MISSING", Message: "Malformed request"})
		return
	}

	var patch validation.ReviewPatch
	if err := bindJSON(c, &patch); err != nil {
		sendError(c, http.StatusBadRequest, "Bad Request")
		return
	}

	err = h.reviewService.Update(id, username, patch)
	var verr *validation.Error
	switch {
	case errors.Is(err, service.ErrReviewNotFound):
		sendError(c, http.StatusNotFound, "Not Found",
			validation.FieldError{Field: "id", Code: "NOT_FOUND", Message: "Review not found"})
	case errors.Is(err, service.ErrNotOwner):
		sendError(c, http.StatusForbidden, "Forbidden",
			validation.FieldError{Field: "auth", Code: "NOT_OWNER", Message: "You do not own this review"})
	case errors.As(err, &verr):
		sendError(c, http.StatusUnprocessableEntity, "Unprocessable Entity", verr.Fields...)
	case err != nil:
		sendError(c, http.StatusInternalServerError, "Server Error")
	default:
		c.JSON(http.StatusOK, dto.AckResponse{OK: true})
	}
}

// Delete removes a review by id.
// TODO: require ownership here once anonymous deletes are retired; today any
// caller may delete any review, unlike the update path.
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Bad Request",
			validation.FieldError{Field: "id", Code: "INVALID_ID", Message: "Malformed id"})
		return
	}

	if err := h.reviewService.Delete(id); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			sendError(c, http.StatusNotFound, "Not Found",
				validation.FieldError{Field: "id", Code: "NOT_FOUND", Message: "Review not found"})
			return
		}
		sendError(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.Status(http.StatusNoContent)
}
