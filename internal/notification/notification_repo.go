package notification

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, n *Notification) error
	FindByToken(ctx context.Context, token string) (*Notification, error)
	MarkRead(ctx context.Context, token string) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{db: tx}
}

func (r *gormRepository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *gormRepository) FindByToken(ctx context.Context, token string) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *gormRepository) MarkRead(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("token = ?", token).
		Update("read", true).Error
}
