package service

import (
	"errors"
	"strings"

	"cinelog/internal/httpapi/models"
	"cinelog/internal/httpapi/repository"
	"cinelog/internal/httpapi/validation"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrNotOwner       = errors.New("not the review owner")
)

type ReviewService interface {
	List() ([]models.Review, error)
	Create(username string, payload validation.ReviewPayload) error
	Update(id int64, username string, patch validation.ReviewPatch) error
	Delete(id int64) error
}

type reviewService struct {
	reviews repository.ReviewRepository
}

func NewReviewService(reviews repository.ReviewRepository) ReviewService {
	return &reviewService{reviews: reviews}
}

// List returns all reviews, newest first.
func (s *reviewService) List() ([]models.Review, error) {
	return s.reviews.ListAll()
}

// Create inserts a review stamped with the acting username. The payload must
// already have passed ValidateReview; Create only maps it onto the row.
func (s *reviewService) Create(username string, payload validation.ReviewPayload) error {
	review := &models.Review{
		Title:  strings.TrimSpace(payload.Title.Value()),
		Kind:   payload.Kind.Value(),
		Rating: payload.Rating.Value(),
	}
	if !payload.Year.Missing() {
		y := int(payload.Year.Value())
		review.Year = &y
	}
	if g := payload.Genre.Value(); g != "" {
		review.Genre = &g
	}
	if r := payload.Review.Value(); r != "" {
		review.Review = &r
	}
	if username != "" {
		review.Username = &username
	}
	return s.reviews.Create(review)
}

// Update applies a partial update (rating and/or review) after the ownership
// gate. Existence is checked before ownership, so probing a missing id yields
// ErrReviewNotFound even for non-owners. The stored record overlaid with the
// supplied values is revalidated before anything is committed; a validation
// failure surfaces as *validation.Error.
func (s *reviewService) Update(id int64, username string, patch validation.ReviewPatch) error {
	stored, err := s.reviews.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if stored.Username == nil || *stored.Username != username {
		return ErrNotOwner
	}

	merged := validation.ReviewPayload{
		Title:  validation.StringValue(stored.Title),
		Kind:   validation.StringValue(stored.Kind),
		Rating: validation.NumberValue(stored.Rating),
	}
	if stored.Year != nil {
		merged.Year = validation.NumberValue(float64(*stored.Year))
	}
	if stored.Genre != nil {
		merged.Genre = validation.StringValue(*stored.Genre)
	}
	if stored.Review != nil {
		merged.Review = validation.StringValue(*stored.Review)
	}
	if patch.Rating.Present() {
		merged.Rating = patch.Rating
	}
	if patch.Review.Present() {
		merged.Review = patch.Review
	}

	if errs := validation.ValidateReview(merged); len(errs) > 0 {
		return &validation.Error{Fields: errs}
	}

	updates := map[string]any{}
	if patch.Rating.Present() {
		updates["rating"] = patch.Rating.Value()
	}
	if patch.Review.Present() {
		updates["review"] = patch.Review.Value()
	}
	return s.reviews.UpdateFields(id, updates)
}

// Delete removes a review by id. A non-existent id is reported, never
// silently ignored, so a repeated delete stays 404.
func (s *reviewService) Delete(id int64) error {
	if err := s.reviews.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}
