package review

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, r *Review) error
	FindByCompany(ctx context.Context, companyID uuid.UUID, filters ListFilters) ([]Review, int64, error)
	IncrementHelpful(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rev *Review) error {
	return r.db.WithContext(ctx).Create(rev).Error
}

func (r *repository) FindByCompany(ctx context.Context, companyID uuid.UUID, filters ListFilters) ([]Review, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("company_id = ?", companyID)

	if filters.MinRating > 0 {
		db = db.Where("overall_rating >= ?", filters.MinRating)
	}
	if filters.Recommendation != "" {
		db = db.Where("recommendation = ?", filters.Recommendation)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filters.SortBy {
	case SortRatingHigh:
		db = db.Order("overall_rating DESC")
	case SortRatingLow:
		db = db.Order("overall_rating ASC")
	case SortHelpful:
		db = db.Order("helpful_count DESC")
	default:
		db = db.Order("created_at DESC")
	}

	if filters.Limit > 0 {
		db = db.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		db = db.Offset(filters.Offset)
	}

	var reviews []Review
	err := db.Find(&reviews).Error
	return reviews, total, err
}

// IncrementHelpful bumps helpful_count atomically in the database; the
// returned row count distinguishes a missing review from an applied vote.
func (r *repository) IncrementHelpful(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("id = ?", id).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1"))
	return res.RowsAffected, res.Error
}
