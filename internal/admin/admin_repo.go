package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mathewsajan/truplace/internal/company"
	"github.com/mathewsajan/truplace/internal/request"
	"github.com/mathewsajan/truplace/internal/review"
)

type Repository interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	Stats(ctx context.Context) (*StatsResponse, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var a AdminUser
	err := r.db.WithContext(ctx).First(&a, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *repository) Stats(ctx context.Context) (*StatsResponse, error) {
	var stats StatsResponse

	byStatus := map[string]*int64{
		request.StatusPending:  &stats.PendingRequests,
		request.StatusApproved: &stats.ApprovedRequests,
		request.StatusRejected: &stats.RejectedRequests,
	}
	for status, dest := range byStatus {
		err := r.db.WithContext(ctx).
			Model(&request.CompanyRequest{}).
			Where("status = ?", status).
			Count(dest).Error
		if err != nil {
			return nil, err
		}
	}

	if err := r.db.WithContext(ctx).Model(&company.Company{}).Count(&stats.TotalCompanies).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&review.Review{}).Count(&stats.TotalReviews).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
