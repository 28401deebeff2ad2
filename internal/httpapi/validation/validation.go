// Package validation holds the pure field validators guarding the mutation
// endpoints. Validators never return Go errors: they produce an ordered list
// of field errors that handlers translate into a 422 response.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// Codes reported in field errors.
const (
	CodeRequired      = "REQUIRED"
	CodeInvalidLength = "INVALID_LENGTH"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeInvalidValue  = "INVALID_VALUE"
	CodeOutOfRange    = "OUT_OF_RANGE"
)

// FieldError describes one validation failure; several may accompany a request.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error carries a full field-error list across a service boundary, for the
// cases where validation needs stored state (partial review updates).
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Credentials is the register/login payload.
type Credentials struct {
	Username String `json:"username"`
	Password String `json:"password"`
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ReviewKinds is the closed set of values accepted for a review's kind.
var ReviewKinds = []string{"Film", "Serial", "Anime"}

// ValidateCredentials checks username/password shape rules. Every violated
// rule is reported, not just the first.
func ValidateCredentials(c Credentials) []FieldError {
	var errs []FieldError

	if !c.Username.Valid() || c.Username.Value() == "" {
		errs = append(errs, FieldError{Field: "username", Code: CodeRequired, Message: "Username is required"})
	} else {
		u := c.Username.Value()
		if n := utf8.RuneCountInString(u); n < 3 || n > 20 {
			errs = append(errs, FieldError{Field: "username", Code: CodeInvalidLength, Message: "Username must be 3-20 characters"})
		}
		if !usernamePattern.MatchString(u) {
			errs = append(errs, FieldError{Field: "username", Code: CodeInvalidFormat, Message: "Only letters, digits, _ and - are allowed"})
		}
	}

	if !c.Password.Valid() || c.Password.Value() == "" {
		errs = append(errs, FieldError{Field: "password", Code: CodeRequired, Message: "Password is required"})
	} else if n := utf8.RuneCountInString(c.Password.Value()); n < 4 || n > 50 {
		errs = append(errs, FieldError{Field: "password", Code: CodeInvalidLength, Message: "Password must be 4-50 characters"})
	}

	return errs
}

// ReviewPayload is a full review as submitted for creation, or the stored
// record overlaid with updates for revalidation.
type ReviewPayload struct {
	Title  String `json:"title"`
	Year   Number `json:"year"`
	Genre  String `json:"genre"`
	Kind   String `json:"kind"`
	Rating Number `json:"rating"`
	Review String `json:"review"`
}

// ReviewPatch is the partial update payload; only rating and review may
// change after creation.
type ReviewPatch struct {
	Rating Number `json:"rating"`
	Review String `json:"review"`
}

// ValidateReview checks review field shape and range rules. The year upper
// bound follows the current calendar year.
func ValidateReview(p ReviewPayload) []FieldError {
	var errs []FieldError

	if !p.Title.Valid() || strings.TrimSpace(p.Title.Value()) == "" {
		errs = append(errs, FieldError{Field: "title", Code: CodeRequired, Message: "Title is required"})
	} else if n := utf8.RuneCountInString(strings.TrimSpace(p.Title.Value())); n < 2 || n > 100 {
		errs = append(errs, FieldError{Field: "title", Code: CodeInvalidLength, Message: "Title must be 2-100 characters"})
	}

	if !p.Kind.Valid() || p.Kind.Value() == "" {
		errs = append(errs, FieldError{Field: "kind", Code: CodeRequired, Message: "Kind (Film/Serial/Anime) is required"})
	} else if !slices.Contains(ReviewKinds, p.Kind.Value()) {
		errs = append(errs, FieldError{Field: "kind", Code: CodeInvalidValue, Message: "Unknown kind"})
	}

	switch {
	case p.Rating.Missing():
		errs = append(errs, FieldError{Field: "rating", Code: CodeRequired, Message: "Rating 0-10 is required"})
	case !p.Rating.Parsed():
		errs = append(errs, FieldError{Field: "rating", Code: CodeInvalidFormat, Message: "Rating must be a number"})
	case p.Rating.Value() < 0 || p.Rating.Value() > 10:
		errs = append(errs, FieldError{Field: "rating", Code: CodeOutOfRange, Message: "Rating must be between 0 and 10"})
	}

	if !p.Year.Missing() {
		currentYear := time.Now().Year()
		y := p.Year.Value()
		if !p.Year.Parsed() || y != math.Trunc(y) || y < 1900 || y > float64(currentYear) {
			errs = append(errs, FieldError{Field: "year", Code: CodeOutOfRange, Message: fmt.Sprintf("Year must be 1900-%d", currentYear)})
		}
	}

	if p.Genre.Present() && (!p.Genre.Valid() || p.Genre.Value() != "") {
		if !p.Genre.Valid() || utf8.RuneCountInString(p.Genre.Value()) > 30 {
			errs = append(errs, FieldError{Field: "genre", Code: CodeInvalidLength, Message: "Genre must be at most 30 characters"})
		}
	}

	if p.Review.Present() && (!p.Review.Valid() || p.Review.Value() != "") {
		if !p.Review.Valid() || utf8.RuneCountInString(p.Review.Value()) > 1000 {
			errs = append(errs, FieldError{Field: "review", Code: CodeInvalidLength, Message: "Review must be at most 1000 characters"})
		}
	}

	return errs
}
