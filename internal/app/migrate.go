package app

import (
	"gorm.io/gorm"

	"github.com/mathewsajan/truplace/internal/admin"
	"github.com/mathewsajan/truplace/internal/company"
	"github.com/mathewsajan/truplace/internal/messaging/kafka"
	"github.com/mathewsajan/truplace/internal/notification"
	"github.com/mathewsajan/truplace/internal/request"
	"github.com/mathewsajan/truplace/internal/review"
)

// companyStatsView aggregates reviews per company. Reading through a
// view keeps the rating math in one place and out of application code.
const companyStatsView = `
CREATE OR REPLACE VIEW company_stats AS
SELECT
	c.id,
	c.name,
	c.industry,
	c.size,
	c.logo_url,
	COALESCE(AVG(r.overall_rating), 0)::float8                                   AS overall_rating,
	COUNT(r.id)                                                                  AS review_count,
	COALESCE(AVG(CASE WHEN r.recommendation = 'highly-recommend' THEN 1.0 ELSE 0.0 END), 0)::float8 AS recommendation_rate,
	jsonb_build_object(
		'compensation',    COALESCE(AVG((r.dimensions->>'compensation')::numeric), 0),
		'management',      COALESCE(AVG((r.dimensions->>'management')::numeric), 0),
		'culture',         COALESCE(AVG((r.dimensions->>'culture')::numeric), 0),
		'career',          COALESCE(AVG((r.dimensions->>'career')::numeric), 0),
		'recognition',     COALESCE(AVG((r.dimensions->>'recognition')::numeric), 0),
		'environment',     COALESCE(AVG((r.dimensions->>'environment')::numeric), 0),
		'worklife',        COALESCE(AVG((r.dimensions->>'worklife')::numeric), 0),
		'cooperation',     COALESCE(AVG((r.dimensions->>'cooperation')::numeric), 0),
		'business_health', COALESCE(AVG((r.dimensions->>'business_health')::numeric), 0)
	) AS dimensions,
	c.created_at,
	c.updated_at
FROM companies c
LEFT JOIN reviews r ON r.company_id = c.id
GROUP BY c.id
`

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&admin.AdminUser{},
		&company.Company{},
		&review.Review{},
		&request.CompanyRequest{},
		&notification.Notification{},
		&kafka.OutboxEvent{},
	)
	if err != nil {
		return err
	}

	return db.Exec(companyStatsView).Error
}
