package notification_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mathewsajan/truplace/internal/notification"
	notificationerrors "github.com/mathewsajan/truplace/internal/notification/errors"
	"github.com/mathewsajan/truplace/internal/shared/apperror"
)

type fakeNotificationRepository struct {
	withTxFn      func(tx *gorm.DB) notification.Repository
	createFn      func(ctx context.Context, n *notification.Notification) error
	findByTokenFn func(ctx context.Context, token string) (*notification.Notification, error)
	markReadFn    func(ctx context.Context, token string) error
}

func (f *fakeNotificationRepository) WithTx(tx *gorm.DB) notification.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeNotificationRepository) FindByToken(ctx context.Context, token string) (*notification.Notification, error) {
	if f.findByTokenFn != nil {
		return f.findByTokenFn(ctx, token)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, token string) error {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, token)
	}
	return nil
}

func liveNotification(token string) *notification.Notification {
	now := time.Now().UTC()
	return &notification.Notification{
		ID:            uuid.New(),
		RecipientHash: "a3f5",
		Type:          notification.TypeCompanyApproved,
		Title:         "Company Request Approved!",
		Message:       `Your request to add "Acme Robotics" has been approved. You can now submit your review.`,
		Data: datatypes.NewJSONType(notification.Payload{
			CompanyName: "Acme Robotics",
		}),
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(notification.TTL),
	}
}

func TestNotificationService_GetByToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success marks the notification read", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		svc := notification.NewService(repo)

		token := notification.NewToken()
		repo.findByTokenFn = func(ctx context.Context, tok string) (*notification.Notification, error) {
			assert.Equal(t, token, tok)
			return liveNotification(token), nil
		}

		marked := false
		repo.markReadFn = func(ctx context.Context, tok string) error {
			assert.Equal(t, token, tok)
			marked = true
			return nil
		}

		resp, err := svc.GetByToken(ctx, token)

		assert.NoError(t, err)
		assert.True(t, marked)
		assert.True(t, resp.Read)
		assert.Equal(t, notification.TypeCompanyApproved, resp.Type)
		assert.Equal(t, "Acme Robotics", resp.Data.CompanyName)
	})

	t.Run("already read skips the update", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		svc := notification.NewService(repo)

		token := notification.NewToken()
		repo.findByTokenFn = func(ctx context.Context, tok string) (*notification.Notification, error) {
			n := liveNotification(token)
			n.Read = true
			return n, nil
		}

		marked := false
		repo.markReadFn = func(ctx context.Context, tok string) error {
			marked = true
			return nil
		}

		resp, err := svc.GetByToken(ctx, token)

		assert.NoError(t, err)
		assert.False(t, marked)
		assert.True(t, resp.Read)
	})

	t.Run("mark read failure still returns the notification", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		svc := notification.NewService(repo)

		token := notification.NewToken()
		repo.findByTokenFn = func(ctx context.Context, tok string) (*notification.Notification, error) {
			return liveNotification(token), nil
		}
		repo.markReadFn = func(ctx context.Context, tok string) error {
			return errors.New("connection reset")
		}

		resp, err := svc.GetByToken(ctx, token)

		assert.NoError(t, err)
		assert.False(t, resp.Read)
	})

	t.Run("negative expired looks like missing", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		svc := notification.NewService(repo)

		token := notification.NewToken()
		repo.findByTokenFn = func(ctx context.Context, tok string) (*notification.Notification, error) {
			n := liveNotification(token)
			n.ExpiresAt = time.Now().UTC().Add(-time.Hour)
			return n, nil
		}

		marked := false
		repo.markReadFn = func(ctx context.Context, tok string) error {
			marked = true
			return nil
		}

		_, err := svc.GetByToken(ctx, token)

		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
		assert.False(t, marked)
	})

	t.Run("negative unknown token", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		svc := notification.NewService(repo)

		_, err := svc.GetByToken(ctx, notification.NewToken())

		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})

	t.Run("negative lookup failure surfaces an internal error", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		svc := notification.NewService(repo)

		cause := errors.New("connection refused")
		repo.findByTokenFn = func(ctx context.Context, tok string) (*notification.Notification, error) {
			return nil, cause
		}

		resp, err := svc.GetByToken(ctx, notification.NewToken())

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, cause)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInternalError, appErr.Code)
		assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	})

	t.Run("negative empty token", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		svc := notification.NewService(repo)

		_, err := svc.GetByToken(ctx, "")

		assert.ErrorIs(t, err, notificationerrors.ErrInvalidToken)
	})
}

func TestNewToken(t *testing.T) {
	a := notification.NewToken()
	b := notification.NewToken()

	assert.Len(t, a, 64)
	assert.Len(t, b, 64)
	assert.NotEqual(t, a, b)
}
