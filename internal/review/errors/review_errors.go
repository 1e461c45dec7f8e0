package reviewerrors

import (
	"net/http"

	"github.com/mathewsajan/truplace/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidReviewID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid review id",
		http.StatusBadRequest,
	)
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"company not found",
		http.StatusNotFound,
	)
	ErrReviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"review not found",
		http.StatusNotFound,
	)
	ErrInvalidRecommendation = apperror.New(
		apperror.CodeInvalidInput,
		"recommendation must be highly-recommend, maybe or not-recommended",
		http.StatusBadRequest,
	)
	ErrInvalidRating = apperror.New(
		apperror.CodeInvalidInput,
		"ratings must be between 1 and 5",
		http.StatusBadRequest,
	)
	ErrNonCorporateEmail = apperror.New(
		apperror.CodeForbidden,
		"a corporate email matching the company's domains is required to review",
		http.StatusForbidden,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeUnauthorized,
		"invalid user identity",
		http.StatusUnauthorized,
	)
)
