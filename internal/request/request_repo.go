package request

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mathewsajan/truplace/internal/company"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, req *CompanyRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*CompanyRequest, error)
	FindAll(ctx context.Context, filters ListFilters) ([]CompanyRequest, int64, error)
	TransitionFromPending(ctx context.Context, id uuid.UUID, update DecisionUpdate) (int64, error)
	FindDuplicateCandidates(ctx context.Context, name, websiteHost string, limit int) ([]company.Company, error)
}

// DecisionUpdate is the column set applied when a pending request is
// decided.
type DecisionUpdate struct {
	Status          string
	AdminNotes      *string
	RejectionReason *string
	ReviewedAt      time.Time
	ReviewedBy      uuid.UUID
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

func (r *repository) Create(ctx context.Context, req *CompanyRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*CompanyRequest, error) {
	var req CompanyRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindAll(ctx context.Context, filters ListFilters) ([]CompanyRequest, int64, error) {
	db := r.db.WithContext(ctx).Model(&CompanyRequest{})
	if filters.Status != "" {
		db = db.Where("status = ?", filters.Status)
	}
	if filters.Industry != "" {
		db = db.Where("industry = ?", filters.Industry)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []CompanyRequest
	err := db.Order("created_at DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// TransitionFromPending applies a decision only while the request is
// still pending. The returned row count is zero when another admin got
// there first.
func (r *repository) TransitionFromPending(ctx context.Context, id uuid.UUID, update DecisionUpdate) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&CompanyRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":           update.Status,
			"admin_notes":      update.AdminNotes,
			"rejection_reason": update.RejectionReason,
			"reviewed_at":      update.ReviewedAt,
			"reviewed_by":      update.ReviewedBy,
			"updated_at":       gorm.Expr("NOW()"),
		})
	return res.RowsAffected, res.Error
}

// FindDuplicateCandidates pulls catalog companies whose name or website
// host loosely matches the proposed one. Ranking happens in the service.
func (r *repository) FindDuplicateCandidates(ctx context.Context, name, websiteHost string, limit int) ([]company.Company, error) {
	db := r.db.WithContext(ctx).Model(&company.Company{})

	pattern := "%" + strings.ToLower(name) + "%"
	if websiteHost != "" {
		db = db.Where("name ILIKE ? OR name ILIKE ?", pattern, "%"+websiteHost+"%")
	} else {
		db = db.Where("name ILIKE ?", pattern)
	}

	var companies []company.Company
	err := db.Limit(limit).Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}
