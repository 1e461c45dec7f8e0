package company

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	companyerrors "github.com/mathewsajan/truplace/internal/company/errors"
	"github.com/mathewsajan/truplace/internal/media"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	statsCacheKey = "truplace:company_stats"
	statsCacheTTL = 5 * time.Minute
)

type Service interface {
	ListStats(ctx context.Context) ([]StatsResponse, error)
	GetStatsByID(ctx context.Context, id string) (*StatsResponse, error)
	Search(ctx context.Context, query string) ([]SearchResult, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error)
	UploadLogo(ctx context.Context, id string, file io.Reader) (*LogoUploadResponse, error)
}

type service struct {
	repo     Repository
	rdb      *redis.Client
	uploader media.Uploader
	logger   *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, uploader media.Uploader, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, rdb: rdb, uploader: uploader, logger: l}
}

// ListStats serves the popular-companies listing, most reviewed first.
// The redis cache is best effort: any cache failure falls through to the
// database, and a database failure degrades to an empty listing rather
// than surfacing an error.
func (s *service) ListStats(ctx context.Context) ([]StatsResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, statsCacheKey).Bytes()
		if err == nil {
			var resp []StatsResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("company stats cache read failed", zap.Error(err))
		}
	}

	stats, err := s.repo.ListStats(ctx)
	if err != nil {
		s.logger.Error("failed to load company stats", zap.Error(err))
		return []StatsResponse{}, nil
	}

	resp := make([]StatsResponse, 0, len(stats))
	for _, st := range stats {
		resp = append(resp, mapStatsToResponse(st))
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				s.logger.Warn("company stats cache write failed", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *service) GetStatsByID(ctx context.Context, id string) (*StatsResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	st, err := s.repo.GetStatsByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	resp := mapStatsToResponse(*st)
	return &resp, nil
}

func (s *service) Search(ctx context.Context, query string) ([]SearchResult, error) {
	companies, err := s.repo.Search(ctx, strings.TrimSpace(query), 10)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(companies))
	for _, c := range companies {
		results = append(results, SearchResult{
			ID:       c.ID.String(),
			Name:     c.Name,
			Industry: c.Industry,
			Size:     c.Size,
		})
	}
	return results, nil
}

// Update mutates descriptive fields only; identity and provenance are
// immutable.
func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	c, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		c.Name = strings.TrimSpace(req.Name)
	}
	if req.Industry != "" {
		c.Industry = req.Industry
	}
	if req.Size != "" {
		if !ValidSize(req.Size) {
			return nil, companyerrors.ErrInvalidCompanySize
		}
		c.Size = req.Size
	}
	if req.Website != "" {
		c.Website = req.Website
	}
	if len(req.EmailDomains) > 0 {
		c.EmailDomains = req.EmailDomains
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.invalidateStatsCache(ctx)
	return mapToResponse(c), nil
}

func (s *service) UploadLogo(ctx context.Context, id string, file io.Reader) (*LogoUploadResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	c, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	publicID := "logo_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, err := s.uploader.UploadImage(ctx, file, "truplace/logos/"+c.ID.String(), publicID)
	if err != nil {
		s.logger.Error("logo upload failed", zap.String("company_id", id), zap.Error(err))
		return nil, companyerrors.ErrLogoUploadFailed
	}

	c.LogoURL = url
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.invalidateStatsCache(ctx)
	return &LogoUploadResponse{LogoURL: url}, nil
}

func (s *service) invalidateStatsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.Warn("company stats cache invalidation failed", zap.Error(err))
	}
}

func mapToResponse(c *Company) *CompanyResponse {
	resp := &CompanyResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Industry:     c.Industry,
		Size:         c.Size,
		Website:      c.Website,
		LogoURL:      c.LogoURL,
		EmailDomains: c.EmailDomains,
		Source:       c.Source,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.RequestID != nil {
		resp.RequestID = c.RequestID.String()
	}
	return resp
}

func mapStatsToResponse(st Stats) StatsResponse {
	return StatsResponse{
		ID:                 st.ID.String(),
		Name:               st.Name,
		Industry:           st.Industry,
		Size:               st.Size,
		LogoURL:            st.LogoURL,
		OverallRating:      st.OverallRating,
		ReviewCount:        st.ReviewCount,
		RecommendationRate: st.RecommendationRate,
		Dimensions:         st.Dimensions.Data(),
		CreatedAt:          st.CreatedAt,
		UpdatedAt:          st.UpdatedAt,
	}
}
