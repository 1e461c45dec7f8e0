package review_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mathewsajan/truplace/internal/company"
	"github.com/mathewsajan/truplace/internal/review"
	reviewerrors "github.com/mathewsajan/truplace/internal/review/errors"
)

type fakeReviewRepository struct {
	withTxFn           func(tx *gorm.DB) review.Repository
	createFn           func(ctx context.Context, rev *review.Review) error
	findByCompanyFn    func(ctx context.Context, companyID uuid.UUID, filters review.ListFilters) ([]review.Review, int64, error)
	incrementHelpfulFn func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (f *fakeReviewRepository) WithTx(tx *gorm.DB) review.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	if f.createFn != nil {
		return f.createFn(ctx, rev)
	}
	return nil
}

func (f *fakeReviewRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, filters review.ListFilters) ([]review.Review, int64, error) {
	if f.findByCompanyFn != nil {
		return f.findByCompanyFn(ctx, companyID, filters)
	}
	return nil, 0, nil
}

func (f *fakeReviewRepository) IncrementHelpful(ctx context.Context, id uuid.UUID) (int64, error) {
	if f.incrementHelpfulFn != nil {
		return f.incrementHelpfulFn(ctx, id)
	}
	return 1, nil
}

type fakeCompanyRepository struct {
	company.Repository

	getByIDFn func(ctx context.Context, id uuid.UUID) (*company.Company, error)
}

func (f *fakeCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func acmeCompany(id uuid.UUID) *company.Company {
	return &company.Company{
		ID:           id,
		Name:         "Acme Robotics",
		Industry:     "Manufacturing",
		Size:         company.SizeMedium,
		EmailDomains: datatypes.NewJSONSlice([]string{"acme.dev"}),
	}
}

func validSubmitRequest(companyID uuid.UUID) review.SubmitReviewRequest {
	return review.SubmitReviewRequest{
		CompanyID:      companyID.String(),
		OverallRating:  4,
		Recommendation: review.RecommendationHigh,
		Role:           "Software Engineer",
		Period:         "2023-2025",
		Pros:           []string{"strong team"},
		Cons:           []string{"slow reviews"},
		Dimensions: review.Dimensions{
			Compensation:   4,
			Management:     3,
			Culture:        5,
			Career:         4,
			Recognition:    3,
			Environment:    4,
			Worklife:       5,
			Cooperation:    4,
			BusinessHealth: 4,
		},
	}
}

func TestReviewService_Submit(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	userID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		repo := &fakeReviewRepository{}
		companyRepo := &fakeCompanyRepository{}
		svc := review.NewService(repo, companyRepo, false)

		companyRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*company.Company, error) {
			assert.Equal(t, companyID, id)
			return acmeCompany(companyID), nil
		}

		var created *review.Review
		repo.createFn = func(ctx context.Context, rev *review.Review) error {
			created = rev
			return nil
		}

		resp, err := svc.Submit(ctx, userID, "pat@acme.dev", validSubmitRequest(companyID))

		assert.NoError(t, err)
		assert.Equal(t, 4, resp.OverallRating)
		assert.Equal(t, review.RecommendationHigh, resp.Recommendation)
		assert.Equal(t, companyID, created.CompanyID)
		assert.Equal(t, uuid.MustParse(userID), created.UserID)
	})

	t.Run("negative personal email blocked", func(t *testing.T) {
		repo := &fakeReviewRepository{}
		companyRepo := &fakeCompanyRepository{}
		svc := review.NewService(repo, companyRepo, false)

		companyRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*company.Company, error) {
			return acmeCompany(companyID), nil
		}

		_, err := svc.Submit(ctx, userID, "pat@gmail.com", validSubmitRequest(companyID))

		assert.ErrorIs(t, err, reviewerrors.ErrNonCorporateEmail)
	})

	t.Run("personal email allowed when the switch is on", func(t *testing.T) {
		repo := &fakeReviewRepository{}
		companyRepo := &fakeCompanyRepository{}
		svc := review.NewService(repo, companyRepo, true)

		companyRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*company.Company, error) {
			return acmeCompany(companyID), nil
		}

		_, err := svc.Submit(ctx, userID, "pat@gmail.com", validSubmitRequest(companyID))

		assert.NoError(t, err)
	})

	t.Run("negative rating out of range", func(t *testing.T) {
		repo := &fakeReviewRepository{}
		companyRepo := &fakeCompanyRepository{}
		svc := review.NewService(repo, companyRepo, false)

		req := validSubmitRequest(companyID)
		req.Dimensions.Culture = 6

		_, err := svc.Submit(ctx, userID, "pat@acme.dev", req)

		assert.ErrorIs(t, err, reviewerrors.ErrInvalidRating)
	})

	t.Run("negative unknown recommendation", func(t *testing.T) {
		repo := &fakeReviewRepository{}
		companyRepo := &fakeCompanyRepository{}
		svc := review.NewService(repo, companyRepo, false)

		req := validSubmitRequest(companyID)
		req.Recommendation = "strongly-endorse"

		_, err := svc.Submit(ctx, userID, "pat@acme.dev", req)

		assert.ErrorIs(t, err, reviewerrors.ErrInvalidRecommendation)
	})

	t.Run("negative company missing", func(t *testing.T) {
		repo := &fakeReviewRepository{}
		companyRepo := &fakeCompanyRepository{}
		svc := review.NewService(repo, companyRepo, false)

		companyRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*company.Company, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := svc.Submit(ctx, userID, "pat@acme.dev", validSubmitRequest(companyID))

		assert.ErrorIs(t, err, reviewerrors.ErrCompanyNotFound)
	})
}

func TestReviewService_MarkHelpful(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeReviewRepository{}
		svc := review.NewService(repo, &fakeCompanyRepository{}, false)

		reviewID := uuid.New()
		repo.incrementHelpfulFn = func(ctx context.Context, id uuid.UUID) (int64, error) {
			assert.Equal(t, reviewID, id)
			return 1, nil
		}

		assert.NoError(t, svc.MarkHelpful(ctx, reviewID.String()))
	})

	t.Run("negative unknown review", func(t *testing.T) {
		repo := &fakeReviewRepository{}
		svc := review.NewService(repo, &fakeCompanyRepository{}, false)

		repo.incrementHelpfulFn = func(ctx context.Context, id uuid.UUID) (int64, error) {
			return 0, nil
		}

		err := svc.MarkHelpful(ctx, uuid.New().String())

		assert.ErrorIs(t, err, reviewerrors.ErrReviewNotFound)
	})
}

func TestReviewService_ListByCompany(t *testing.T) {
	ctx := context.Background()

	t.Run("caps the page size", func(t *testing.T) {
		repo := &fakeReviewRepository{}
		svc := review.NewService(repo, &fakeCompanyRepository{}, false)

		companyID := uuid.New()
		repo.findByCompanyFn = func(ctx context.Context, cid uuid.UUID, filters review.ListFilters) ([]review.Review, int64, error) {
			assert.Equal(t, 10, filters.Limit)
			return nil, 0, nil
		}

		_, _, err := svc.ListByCompany(ctx, companyID.String(), review.ListFilters{Limit: 500})

		assert.NoError(t, err)
	})

	t.Run("negative invalid company id", func(t *testing.T) {
		svc := review.NewService(&fakeReviewRepository{}, &fakeCompanyRepository{}, false)

		_, _, err := svc.ListByCompany(ctx, "not-a-uuid", review.ListFilters{})

		assert.ErrorIs(t, err, reviewerrors.ErrInvalidCompanyID)
	})
}
