package admin

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// IsAdmin satisfies the admin gate used by the middleware layer.
	IsAdmin(ctx context.Context, userID string) (bool, error)
	Stats(ctx context.Context) (*StatsResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("admin.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("admin.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return false, nil
	}
	return s.repo.IsAdmin(ctx, uid)
}

func (s *service) Stats(ctx context.Context) (*StatsResponse, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.Error("load admin stats failed", zap.Error(err))
		return nil, err
	}
	return stats, nil
}
