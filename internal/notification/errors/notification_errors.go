package notificationerrors

import (
	"net/http"

	"github.com/mathewsajan/truplace/internal/shared/apperror"
)

var (
	ErrInvalidToken = apperror.New(
		apperror.CodeInvalidInput,
		"notification token is required",
		http.StatusBadRequest,
	)
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
)
