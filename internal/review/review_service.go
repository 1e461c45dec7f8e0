package review

import (
	"context"
	"errors"
	"strings"

	"github.com/mathewsajan/truplace/internal/company"
	reviewerrors "github.com/mathewsajan/truplace/internal/review/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service interface {
	Submit(ctx context.Context, userID, userEmail string, req SubmitReviewRequest) (*ReviewResponse, error)
	ListByCompany(ctx context.Context, companyID string, filters ListFilters) ([]ReviewResponse, int64, error)
	MarkHelpful(ctx context.Context, reviewID string) error
}

type service struct {
	repo                Repository
	companyRepo         company.Repository
	allowPersonalEmails bool
	logger              *zap.Logger
}

func NewService(repo Repository, companyRepo company.Repository, allowPersonalEmails bool, logger ...*zap.Logger) Service {
	l := zap.L().Named("review.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("review.service")
	}
	return &service{
		repo:                repo,
		companyRepo:         companyRepo,
		allowPersonalEmails: allowPersonalEmails,
		logger:              l,
	}
}

func (s *service) Submit(ctx context.Context, userID, userEmail string, req SubmitReviewRequest) (*ReviewResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, reviewerrors.ErrInvalidUserID
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return nil, reviewerrors.ErrInvalidCompanyID
	}

	if !ValidRecommendation(req.Recommendation) {
		return nil, reviewerrors.ErrInvalidRecommendation
	}
	if err := validateRatings(req); err != nil {
		return nil, err
	}

	comp, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reviewerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	if !s.allowPersonalEmails && !emailMatchesDomains(userEmail, comp.EmailDomains) {
		s.logger.Warn("review blocked by domain check",
			zap.String("company_id", req.CompanyID),
		)
		return nil, reviewerrors.ErrNonCorporateEmail
	}

	rev := &Review{
		ID:             uuid.New(),
		CompanyID:      companyID,
		UserID:         uid,
		OverallRating:  req.OverallRating,
		Recommendation: req.Recommendation,
		Role:           strings.TrimSpace(req.Role),
		Period:         strings.TrimSpace(req.Period),
		Pros:           req.Pros,
		Cons:           req.Cons,
		Advice:         strings.TrimSpace(req.Advice),
		Dimensions:     datatypes.NewJSONType(req.Dimensions),
	}

	if err := s.repo.Create(ctx, rev); err != nil {
		s.logger.Error("submit review persist failed",
			zap.String("company_id", req.CompanyID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("review submitted",
		zap.String("review_id", rev.ID.String()),
		zap.String("company_id", req.CompanyID),
	)

	resp := mapToResponse(*rev)
	return &resp, nil
}

func (s *service) ListByCompany(ctx context.Context, companyID string, filters ListFilters) ([]ReviewResponse, int64, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return nil, 0, reviewerrors.ErrInvalidCompanyID
	}

	if filters.Limit <= 0 || filters.Limit > 50 {
		filters.Limit = 10
	}

	reviews, total, err := s.repo.FindByCompany(ctx, cid, filters)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]ReviewResponse, 0, len(reviews))
	for _, rev := range reviews {
		resp = append(resp, mapToResponse(rev))
	}
	return resp, total, nil
}

func (s *service) MarkHelpful(ctx context.Context, reviewID string) error {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return reviewerrors.ErrInvalidReviewID
	}

	rows, err := s.repo.IncrementHelpful(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return reviewerrors.ErrReviewNotFound
	}
	return nil
}

func validateRatings(req SubmitReviewRequest) error {
	ratings := []int{
		req.OverallRating,
		req.Dimensions.Compensation,
		req.Dimensions.Management,
		req.Dimensions.Culture,
		req.Dimensions.Career,
		req.Dimensions.Recognition,
		req.Dimensions.Environment,
		req.Dimensions.Worklife,
		req.Dimensions.Cooperation,
		req.Dimensions.BusinessHealth,
	}
	for _, r := range ratings {
		if r < 1 || r > 5 {
			return reviewerrors.ErrInvalidRating
		}
	}
	return nil
}

func emailMatchesDomains(email string, domains []string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	emailDomain := strings.ToLower(email[at+1:])

	for _, d := range domains {
		if strings.EqualFold(d, emailDomain) {
			return true
		}
	}
	return false
}

func mapToResponse(rev Review) ReviewResponse {
	return ReviewResponse{
		ID:             rev.ID.String(),
		CompanyID:      rev.CompanyID.String(),
		OverallRating:  rev.OverallRating,
		Recommendation: rev.Recommendation,
		Role:           rev.Role,
		Period:         rev.Period,
		Pros:           rev.Pros,
		Cons:           rev.Cons,
		Advice:         rev.Advice,
		Dimensions:     rev.Dimensions.Data(),
		HelpfulCount:   rev.HelpfulCount,
		CreatedAt:      rev.CreatedAt,
	}
}
