package company

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	Update(ctx context.Context, c *Company) error
	Search(ctx context.Context, query string, limit int) ([]Company, error)
	ListStats(ctx context.Context) ([]Stats, error)
	GetStatsByID(ctx context.Context, id uuid.UUID) (*Stats, error)
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

func (r *repository) Create(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) Update(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Search(ctx context.Context, query string, limit int) ([]Company, error) {
	var companies []Company
	db := r.db.WithContext(ctx).Order("name")
	if query != "" {
		db = db.Where("name ILIKE ?", "%"+query+"%")
	}
	err := db.Limit(limit).Find(&companies).Error
	return companies, err
}

func (r *repository) ListStats(ctx context.Context) ([]Stats, error) {
	var stats []Stats
	err := r.db.WithContext(ctx).
		Order("review_count DESC").
		Find(&stats).Error
	return stats, err
}

func (r *repository) GetStatsByID(ctx context.Context, id uuid.UUID) (*Stats, error) {
	var s Stats
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}
