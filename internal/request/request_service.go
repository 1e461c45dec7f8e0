package request

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mathewsajan/truplace/internal/company"
	"github.com/mathewsajan/truplace/internal/email"
	"github.com/mathewsajan/truplace/internal/messaging/kafka"
	"github.com/mathewsajan/truplace/internal/notification"
	requesterrors "github.com/mathewsajan/truplace/internal/request/errors"
	"github.com/mathewsajan/truplace/internal/similarity"
)

const (
	duplicateNameMinLength = 3
	duplicateThreshold     = 0.6
	duplicateTopMatches    = 3
	duplicateCandidateCap  = 50

	minRejectionReasonLength = 20
)

type Service interface {
	Submit(ctx context.Context, userEmail string, req SubmitRequest) (*RequestResponse, error)
	List(ctx context.Context, filters ListFilters) ([]RequestResponse, int64, error)
	GetByID(ctx context.Context, id string) (*RequestResponse, error)
	CheckDuplicates(ctx context.Context, req CheckDuplicatesRequest) (*CheckDuplicatesResponse, error)
	Approve(ctx context.Context, requestID, adminID string, req ApproveRequest) (*ApproveResponse, error)
	Reject(ctx context.Context, requestID, adminID string, req RejectRequest) (*RequestResponse, error)
}

type service struct {
	db               *gorm.DB
	repo             Repository
	companyRepo      company.Repository
	notificationRepo notification.Repository
	outboxRepo       kafka.OutboxRepository
	logger           *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	companyRepo company.Repository,
	notificationRepo notification.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{
		db:               db,
		repo:             repo,
		companyRepo:      companyRepo,
		notificationRepo: notificationRepo,
		outboxRepo:       outboxRepo,
		logger:           l,
	}
}

func (s *service) Submit(ctx context.Context, userEmail string, req SubmitRequest) (*RequestResponse, error) {
	if strings.TrimSpace(userEmail) == "" {
		return nil, requesterrors.ErrRequesterEmailMissing
	}
	if !company.ValidSize(req.Size) {
		return nil, requesterrors.ErrInvalidCompanySize
	}

	cr := &CompanyRequest{
		ID:             uuid.New(),
		RequesterHash:  HashEmail(userEmail),
		RequesterEmail: strings.ToLower(strings.TrimSpace(userEmail)),
		Name:           strings.TrimSpace(req.Name),
		Industry:       strings.TrimSpace(req.Industry),
		Size:           req.Size,
		Website:        strings.TrimSpace(req.Website),
		EmailDomains:   datatypes.NewJSONSlice(normalizeDomains(req.EmailDomains)),
		Description:    strings.TrimSpace(req.Description),
		Justification:  strings.TrimSpace(req.Justification),
		Status:         StatusPending,
	}

	if err := s.repo.Create(ctx, cr); err != nil {
		s.logger.Error("submit company request persist failed",
			zap.String("company_name", cr.Name),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("company request submitted",
		zap.String("request_id", cr.ID.String()),
		zap.String("company_name", cr.Name),
	)

	resp := mapToResponse(*cr)
	return &resp, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]RequestResponse, int64, error) {
	if filters.Status != "" && !ValidStatus(filters.Status) {
		return nil, 0, requesterrors.ErrInvalidStatusFilter
	}
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}

	requests, total, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]RequestResponse, 0, len(requests))
	for _, cr := range requests {
		resp = append(resp, mapToResponse(cr))
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*RequestResponse, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, requesterrors.ErrInvalidRequestID
	}

	cr, err := s.repo.FindByID(ctx, rid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, requesterrors.ErrRequestNotFound
		}
		return nil, err
	}

	resp := mapToResponse(*cr)
	return &resp, nil
}

// CheckDuplicates surfaces existing companies that look like the
// proposed one. It is advisory only: lookup failures degrade to an
// empty result rather than blocking the form.
func (s *service) CheckDuplicates(ctx context.Context, req CheckDuplicatesRequest) (*CheckDuplicatesResponse, error) {
	name := strings.TrimSpace(req.Name)
	if len([]rune(name)) < duplicateNameMinLength {
		return &CheckDuplicatesResponse{Matches: []DuplicateCompany{}}, nil
	}

	candidates, err := s.repo.FindDuplicateCandidates(ctx, name, websiteHost(req.Website), duplicateCandidateCap)
	if err != nil {
		s.logger.Warn("duplicate candidate lookup failed", zap.Error(err))
		return &CheckDuplicatesResponse{Matches: []DuplicateCompany{}}, nil
	}

	matches := make([]DuplicateCompany, 0, len(candidates))
	for _, c := range candidates {
		score := similarity.Score(name, c.Name)
		if score > duplicateThreshold {
			matches = append(matches, DuplicateCompany{
				ID:         c.ID.String(),
				Name:       c.Name,
				Industry:   c.Industry,
				Similarity: score,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	resp := &CheckDuplicatesResponse{Matches: matches}
	if len(matches) > duplicateTopMatches {
		resp.MoreCount = len(matches) - duplicateTopMatches
		resp.Matches = matches[:duplicateTopMatches]
	}
	return resp, nil
}

// Approve decides a pending request, creates the catalog company and
// queues the requester's notification and email in the same
// transaction. Concurrent decisions lose on the conditional update.
func (s *service) Approve(ctx context.Context, requestID, adminID string, req ApproveRequest) (*ApproveResponse, error) {
	rid, err := uuid.Parse(requestID)
	if err != nil {
		return nil, requesterrors.ErrInvalidRequestID
	}
	aid, err := uuid.Parse(adminID)
	if err != nil {
		return nil, requesterrors.ErrInvalidAdminID
	}
	if req.Size != "" && !company.ValidSize(req.Size) {
		return nil, requesterrors.ErrInvalidCompanySize
	}

	var (
		decided CompanyRequest
		created company.Company
	)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cr, err := repo.FindByID(ctx, rid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return requesterrors.ErrRequestNotFound
			}
			return err
		}

		now := time.Now().UTC()
		update := DecisionUpdate{
			Status:     StatusApproved,
			ReviewedAt: now,
			ReviewedBy: aid,
		}
		if notes := strings.TrimSpace(req.AdminNotes); notes != "" {
			update.AdminNotes = &notes
		}

		rows, err := repo.TransitionFromPending(ctx, rid, update)
		if err != nil {
			return err
		}
		if rows == 0 {
			return requesterrors.ErrAlreadyDecided
		}

		comp := companyFromRequest(cr, req)
		if err := s.companyRepo.WithTx(tx).Create(ctx, comp); err != nil {
			return err
		}

		n := notification.NewCompanyApproved(cr.RequesterHash, comp.ID.String(), comp.Name, rid.String())
		if err := s.notificationRepo.WithTx(tx).Create(ctx, n); err != nil {
			return err
		}

		event, err := emailOutboxEvent(rid, email.EmailRequest{
			RecipientEmail:    cr.RequesterEmail,
			EmailType:         email.TypeCompanyApproved,
			CompanyName:       comp.Name,
			NotificationToken: n.Token,
		})
		if err != nil {
			return err
		}
		if err := s.outboxRepo.WithTx(tx).Create(ctx, event); err != nil {
			return err
		}

		decided = *cr
		decided.Status = StatusApproved
		decided.AdminNotes = update.AdminNotes
		decided.ReviewedAt = &now
		decided.ReviewedBy = &aid
		created = *comp
		return nil
	})
	if err != nil {
		s.logger.Warn("approve company request failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("company request approved",
		zap.String("request_id", requestID),
		zap.String("company_id", created.ID.String()),
		zap.String("reviewed_by", adminID),
	)

	return &ApproveResponse{
		Request:   mapToResponse(decided),
		CompanyID: created.ID.String(),
	}, nil
}

// Reject decides a pending request with a substantive reason and queues
// the requester's notification and email.
func (s *service) Reject(ctx context.Context, requestID, adminID string, req RejectRequest) (*RequestResponse, error) {
	rid, err := uuid.Parse(requestID)
	if err != nil {
		return nil, requesterrors.ErrInvalidRequestID
	}
	aid, err := uuid.Parse(adminID)
	if err != nil {
		return nil, requesterrors.ErrInvalidAdminID
	}

	reason := strings.TrimSpace(req.Reason)
	if len([]rune(reason)) < minRejectionReasonLength {
		return nil, requesterrors.ErrRejectionReasonTooShort
	}

	var decided CompanyRequest

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cr, err := repo.FindByID(ctx, rid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return requesterrors.ErrRequestNotFound
			}
			return err
		}

		now := time.Now().UTC()
		update := DecisionUpdate{
			Status:          StatusRejected,
			RejectionReason: &reason,
			ReviewedAt:      now,
			ReviewedBy:      aid,
		}
		if notes := strings.TrimSpace(req.AdminNotes); notes != "" {
			update.AdminNotes = &notes
		}

		rows, err := repo.TransitionFromPending(ctx, rid, update)
		if err != nil {
			return err
		}
		if rows == 0 {
			return requesterrors.ErrAlreadyDecided
		}

		n := notification.NewCompanyRejected(cr.RequesterHash, cr.Name, reason, rid.String())
		if err := s.notificationRepo.WithTx(tx).Create(ctx, n); err != nil {
			return err
		}

		event, err := emailOutboxEvent(rid, email.EmailRequest{
			RecipientEmail:    cr.RequesterEmail,
			EmailType:         email.TypeCompanyRejected,
			CompanyName:       cr.Name,
			NotificationToken: n.Token,
			RejectionReason:   reason,
		})
		if err != nil {
			return err
		}
		if err := s.outboxRepo.WithTx(tx).Create(ctx, event); err != nil {
			return err
		}

		decided = *cr
		decided.Status = StatusRejected
		decided.AdminNotes = update.AdminNotes
		decided.RejectionReason = &reason
		decided.ReviewedAt = &now
		decided.ReviewedBy = &aid
		return nil
	})
	if err != nil {
		s.logger.Warn("reject company request failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("company request rejected",
		zap.String("request_id", requestID),
		zap.String("reviewed_by", adminID),
	)

	resp := mapToResponse(decided)
	return &resp, nil
}

// companyFromRequest builds the catalog entry for an approved request,
// preferring the admin's overrides over the proposed values.
func companyFromRequest(cr *CompanyRequest, req ApproveRequest) *company.Company {
	rid := cr.ID
	comp := &company.Company{
		ID:           uuid.New(),
		Name:         cr.Name,
		Industry:     cr.Industry,
		Size:         cr.Size,
		Website:      cr.Website,
		EmailDomains: cr.EmailDomains,
		Source:       company.SourceUserRequest,
		RequestID:    &rid,
	}
	if req.Name != "" {
		comp.Name = strings.TrimSpace(req.Name)
	}
	if req.Industry != "" {
		comp.Industry = strings.TrimSpace(req.Industry)
	}
	if req.Size != "" {
		comp.Size = req.Size
	}
	if req.Website != "" {
		comp.Website = strings.TrimSpace(req.Website)
	}
	if len(req.EmailDomains) > 0 {
		comp.EmailDomains = datatypes.NewJSONSlice(normalizeDomains(req.EmailDomains))
	}
	return comp
}

func emailOutboxEvent(requestID uuid.UUID, req email.EmailRequest) (*kafka.OutboxEvent, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return &kafka.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "company_request",
		AggregateID:   requestID.String(),
		EventType:     req.EmailType,
		Topic:         email.Topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}, nil
}

func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		out = append(out, d)
	}
	return out
}

// websiteHost strips the scheme and a leading www. so the duplicate
// query can match catalog names against a bare host.
func websiteHost(website string) string {
	host := strings.TrimSpace(website)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimPrefix(host, "www.")
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	return strings.ToLower(host)
}

func mapToResponse(cr CompanyRequest) RequestResponse {
	return RequestResponse{
		ID:              cr.ID.String(),
		Name:            cr.Name,
		Industry:        cr.Industry,
		Size:            cr.Size,
		Website:         cr.Website,
		EmailDomains:    cr.EmailDomains,
		Description:     cr.Description,
		Justification:   cr.Justification,
		Status:          cr.Status,
		AdminNotes:      cr.AdminNotes,
		RejectionReason: cr.RejectionReason,
		ReviewedAt:      cr.ReviewedAt,
		CreatedAt:       cr.CreatedAt,
	}
}
