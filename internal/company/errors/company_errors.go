package companyerrors

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
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"company not found",
		http.StatusNotFound,
	)
	ErrInvalidCompanySize = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company size bucket",
		http.StatusBadRequest,
	)
	ErrLogoFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"logo file is required",
		http.StatusBadRequest,
	)
	ErrLogoUploadFailed = apperror.New(
		apperror.CodeServiceUnavailable,
		"logo upload failed",
		http.StatusServiceUnavailable,
	)
)
