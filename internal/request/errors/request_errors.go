package requesterrors

import (
	"net/http"

	"github.com/mathewsajan/truplace/internal/shared/apperror"
)

var (
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"request id must be a valid uuid",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"company request not found",
		http.StatusNotFound,
	)
	ErrInvalidCompanySize = apperror.New(
		apperror.CodeInvalidInput,
		"company size must be one of the supported buckets",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"status filter must be pending, approved or rejected",
		http.StatusBadRequest,
	)
	ErrRejectionReasonTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"rejection reason must be at least 20 characters",
		http.StatusBadRequest,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"company request has already been decided",
		http.StatusConflict,
	)
	ErrInvalidAdminID = apperror.New(
		apperror.CodeUnauthorized,
		"admin identity is missing or invalid",
		http.StatusUnauthorized,
	)
	ErrRequesterEmailMissing = apperror.New(
		apperror.CodeUnauthorized,
		"requester email is missing from the session",
		http.StatusUnauthorized,
	)
)
