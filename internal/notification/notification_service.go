package notification

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	notificationerrors "github.com/mathewsajan/truplace/internal/notification/errors"
	"github.com/mathewsajan/truplace/internal/shared/apperror"
)

type Service interface {
	GetByToken(ctx context.Context, token string) (*NotificationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l, now: time.Now}
}

// GetByToken resolves a notification by its opaque token and marks it
// read. Expired notifications are indistinguishable from missing ones.
func (s *service) GetByToken(ctx context.Context, token string) (*NotificationResponse, error) {
	if token == "" {
		return nil, notificationerrors.ErrInvalidToken
	}

	n, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notificationerrors.ErrNotificationNotFound
		}
		s.logger.Error("failed to look up notification", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to look up notification", http.StatusInternalServerError)
	}

	if n.Expired(s.now()) {
		return nil, notificationerrors.ErrNotificationNotFound
	}

	// Marking read is idempotent and best-effort; a failure here never
	// blocks the recipient from seeing the notification.
	if !n.Read {
		if err := s.repo.MarkRead(ctx, token); err != nil {
			s.logger.Warn("failed to mark notification read", zap.Error(err))
		} else {
			n.Read = true
		}
	}

	return &NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data.Data(),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
		ExpiresAt: n.ExpiresAt,
	}, nil
}
