package request_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mathewsajan/truplace/internal/company"
	"github.com/mathewsajan/truplace/internal/email"
	"github.com/mathewsajan/truplace/internal/messaging/kafka"
	"github.com/mathewsajan/truplace/internal/notification"
	"github.com/mathewsajan/truplace/internal/request"
	requesterrors "github.com/mathewsajan/truplace/internal/request/errors"
)

type fakeRequestRepository struct {
	withTxFn                  func(tx *gorm.DB) request.Repository
	createFn                  func(ctx context.Context, cr *request.CompanyRequest) error
	findByIDFn                func(ctx context.Context, id uuid.UUID) (*request.CompanyRequest, error)
	findAllFn                 func(ctx context.Context, filters request.ListFilters) ([]request.CompanyRequest, int64, error)
	transitionFromPendingFn   func(ctx context.Context, id uuid.UUID, update request.DecisionUpdate) (int64, error)
	findDuplicateCandidatesFn func(ctx context.Context, name, websiteHost string, limit int) ([]company.Company, error)
}

func (f *fakeRequestRepository) WithTx(tx *gorm.DB) request.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRequestRepository) Create(ctx context.Context, cr *request.CompanyRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, cr)
	}
	return nil
}

func (f *fakeRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*request.CompanyRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRequestRepository) FindAll(ctx context.Context, filters request.ListFilters) ([]request.CompanyRequest, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filters)
	}
	return nil, 0, nil
}

func (f *fakeRequestRepository) TransitionFromPending(ctx context.Context, id uuid.UUID, update request.DecisionUpdate) (int64, error) {
	if f.transitionFromPendingFn != nil {
		return f.transitionFromPendingFn(ctx, id, update)
	}
	return 1, nil
}

func (f *fakeRequestRepository) FindDuplicateCandidates(ctx context.Context, name, websiteHost string, limit int) ([]company.Company, error) {
	if f.findDuplicateCandidatesFn != nil {
		return f.findDuplicateCandidatesFn(ctx, name, websiteHost, limit)
	}
	return nil, nil
}

type fakeCompanyRepository struct {
	company.Repository

	withTxFn func(tx *gorm.DB) company.Repository
	createFn func(ctx context.Context, c *company.Company) error
}

func (f *fakeCompanyRepository) WithTx(tx *gorm.DB) company.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

type fakeNotificationRepository struct {
	withTxFn      func(tx *gorm.DB) notification.Repository
	createFn      func(ctx context.Context, n *notification.Notification) error
	findByTokenFn func(ctx context.Context, token string) (*notification.Notification, error)
	markReadFn    func(ctx context.Context, token string) error
}

func (f *fakeNotificationRepository) WithTx(tx *gorm.DB) notification.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeNotificationRepository) FindByToken(ctx context.Context, token string) (*notification.Notification, error) {
	if f.findByTokenFn != nil {
		return f.findByTokenFn(ctx, token)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, token string) error {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, token)
	}
	return nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *gorm.DB) kafka.OutboxRepository
	createFn func(ctx context.Context, event *kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *gorm.DB) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event *kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return nil
}

type requestServiceDeps struct {
	sqlMock          sqlmock.Sqlmock
	service          request.Service
	repo             *fakeRequestRepository
	companyRepo      *fakeCompanyRepository
	notificationRepo *fakeNotificationRepository
	outboxRepo       *fakeOutboxRepository
	close            func()
}

func setupRequestServiceTest(t *testing.T) *requestServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakeRequestRepository{}
	companyRepo := &fakeCompanyRepository{}
	notificationRepo := &fakeNotificationRepository{}
	outboxRepo := &fakeOutboxRepository{}

	svc := request.NewService(gormDB, repo, companyRepo, notificationRepo, outboxRepo)

	return &requestServiceDeps{
		sqlMock:          sqlMock,
		service:          svc,
		repo:             repo,
		companyRepo:      companyRepo,
		notificationRepo: notificationRepo,
		outboxRepo:       outboxRepo,
		close:            func() { db.Close() },
	}
}

func pendingRequest(id uuid.UUID) *request.CompanyRequest {
	return &request.CompanyRequest{
		ID:             id,
		RequesterHash:  request.HashEmail("jordan@acme.dev"),
		RequesterEmail: "jordan@acme.dev",
		Name:           "Acme Robotics",
		Industry:       "Manufacturing",
		Size:           company.SizeMedium,
		Website:        "https://acme.dev",
		Status:         request.StatusPending,
	}
}

func TestRequestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.close()

		var created *request.CompanyRequest
		deps.repo.createFn = func(ctx context.Context, cr *request.CompanyRequest) error {
			created = cr
			return nil
		}

		resp, err := deps.service.Submit(ctx, "Jordan@Acme.dev", request.SubmitRequest{
			Name:         "  Acme Robotics ",
			Industry:     "Manufacturing",
			Size:         company.SizeMedium,
			Website:      "https://acme.dev",
			EmailDomains: []string{"Acme.dev"},
		})

		assert.NoError(t, err)
		assert.Equal(t, request.StatusPending, resp.Status)
		assert.Equal(t, "Acme Robotics", resp.Name)
		assert.Equal(t, request.HashEmail("jordan@acme.dev"), created.RequesterHash)
		assert.Equal(t, "jordan@acme.dev", created.RequesterEmail)
		assert.Equal(t, []string{"acme.dev"}, []string(created.EmailDomains))
	})

	t.Run("negative missing requester email", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.close()

		_, err := deps.service.Submit(ctx, "  ", request.SubmitRequest{
			Name:     "Acme Robotics",
			Industry: "Manufacturing",
			Size:     company.SizeMedium,
		})

		assert.ErrorIs(t, err, requesterrors.ErrRequesterEmailMissing)
	})

	t.Run("negative unknown size bucket", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.close()

		_, err := deps.service.Submit(ctx, "jordan@acme.dev", request.SubmitRequest{
			Name:     "Acme Robotics",
			Industry: "Manufacturing",
			Size:     "11-49 employees",
		})

		assert.ErrorIs(t, err, requesterrors.ErrInvalidCompanySize)
	})
}

func TestRequestService_CheckDuplicates(t *testing.T) {
	ctx := context.Background()

	t.Run("short names skip the lookup", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.close()

		called := false
		deps.repo.findDuplicateCandidatesFn = func(ctx context.Context, name, websiteHost string, limit int) ([]company.Company, error) {
			called = true
			return nil, nil
		}

		resp, err := deps.service.CheckDuplicates(ctx, request.CheckDuplicatesRequest{Name: "Go"})

		assert.NoError(t, err)
		assert.False(t, called)
		assert.Empty(t, resp.Matches)
	})

	t.Run("scores candidates and keeps the closest three", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.close()

		deps.repo.findDuplicateCandidatesFn = func(ctx context.Context, name, websiteHost string, limit int) ([]company.Company, error) {
			assert.Equal(t, "Google", name)
			assert.Equal(t, "google.com", websiteHost)
			return []company.Company{
				{ID: uuid.New(), Name: "Google", Industry: "Technology"},
				{ID: uuid.New(), Name: "Googlr", Industry: "Technology"},
				{ID: uuid.New(), Name: "Gogle", Industry: "Technology"},
				{ID: uuid.New(), Name: "Googol", Industry: "Technology"},
				{ID: uuid.New(), Name: "Gray Goose Logistics", Industry: "Transport"},
			}, nil
		}

		resp, err := deps.service.CheckDuplicates(ctx, request.CheckDuplicatesRequest{
			Name:    "Google",
			Website: "https://www.google.com/about",
		})

		assert.NoError(t, err)
		assert.Len(t, resp.Matches, 3)
		assert.Equal(t, 1, resp.MoreCount)
		assert.Equal(t, "Google", resp.Matches[0].Name)
		assert.Equal(t, 1.0, resp.Matches[0].Similarity)
		for _, m := range resp.Matches {
			assert.Greater(t, m.Similarity, 0.6)
		}
		assert.GreaterOrEqual(t, resp.Matches[0].Similarity, resp.Matches[1].Similarity)
		assert.GreaterOrEqual(t, resp.Matches[1].Similarity, resp.Matches[2].Similarity)
	})

	t.Run("lookup failure degrades to an empty result", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.close()

		deps.repo.findDuplicateCandidatesFn = func(ctx context.Context, name, websiteHost string, limit int) ([]company.Company, error) {
			return nil, errors.New("connection refused")
		}

		resp, err := deps.service.CheckDuplicates(ctx, request.CheckDuplicatesRequest{Name: "Google"})

		assert.NoError(t, err)
		assert.Empty(t, resp.Matches)
		assert.Zero(t, resp.MoreCount)
	})
}

func TestRequestService_Approve(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	adminID := uuid.New()

	t.Run("success creates company, notification and outbox event", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*request.CompanyRequest, error) {
			assert.Equal(t, requestID, id)
			return pendingRequest(requestID), nil
		}
		deps.repo.transitionFromPendingFn = func(ctx context.Context, id uuid.UUID, update request.DecisionUpdate) (int64, error) {
			assert.Equal(t, request.StatusApproved, update.Status)
			assert.Equal(t, adminID, update.ReviewedBy)
			return 1, nil
		}

		var createdCompany *company.Company
		deps.companyRepo.createFn = func(ctx context.Context, c *company.Company) error {
			createdCompany = c
			return nil
		}

		var createdNotification *notification.Notification
		deps.notificationRepo.createFn = func(ctx context.Context, n *notification.Notification) error {
			createdNotification = n
			return nil
		}

		var outboxEvent *kafka.OutboxEvent
		deps.outboxRepo.createFn = func(ctx context.Context, event *kafka.OutboxEvent) error {
			outboxEvent = event
			return nil
		}

		resp, err := deps.service.Approve(ctx, requestID.String(), adminID.String(), request.ApproveRequest{
			AdminNotes: "verified against the registry",
		})

		assert.NoError(t, err)
		assert.Equal(t, request.StatusApproved, resp.Request.Status)
		assert.Equal(t, createdCompany.ID.String(), resp.CompanyID)

		assert.Equal(t, "Acme Robotics", createdCompany.Name)
		assert.Equal(t, company.SourceUserRequest, createdCompany.Source)
		assert.Equal(t, requestID, *createdCompany.RequestID)

		assert.Equal(t, notification.TypeCompanyApproved, createdNotification.Type)
		assert.Equal(t, request.HashEmail("jordan@acme.dev"), createdNotification.RecipientHash)
		assert.NotEmpty(t, createdNotification.Token)

		assert.Equal(t, email.Topic, outboxEvent.Topic)
		assert.Equal(t, kafka.OutboxStatusPending, outboxEvent.Status)
		var payload email.EmailRequest
		assert.NoError(t, json.Unmarshal(outboxEvent.Payload, &payload))
		assert.Equal(t, email.TypeCompanyApproved, payload.EmailType)
		assert.Equal(t, "jordan@acme.dev", payload.RecipientEmail)
		assert.Equal(t, createdNotification.Token, payload.NotificationToken)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("admin overrides replace proposed values", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*request.CompanyRequest, error) {
			return pendingRequest(requestID), nil
		}

		var createdCompany *company.Company
		deps.companyRepo.createFn = func(ctx context.Context, c *company.Company) error {
			createdCompany = c
			return nil
		}

		_, err := deps.service.Approve(ctx, requestID.String(), adminID.String(), request.ApproveRequest{
			Name: "Acme Robotics Inc.",
			Size: company.SizeLarge,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Acme Robotics Inc.", createdCompany.Name)
		assert.Equal(t, company.SizeLarge, createdCompany.Size)
		assert.Equal(t, "Manufacturing", createdCompany.Industry)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already decided rolls back", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*request.CompanyRequest, error) {
			return pendingRequest(requestID), nil
		}
		deps.repo.transitionFromPendingFn = func(ctx context.Context, id uuid.UUID, update request.DecisionUpdate) (int64, error) {
			return 0, nil
		}

		companyCreated := false
		deps.companyRepo.createFn = func(ctx context.Context, c *company.Company) error {
			companyCreated = true
			return nil
		}

		_, err := deps.service.Approve(ctx, requestID.String(), adminID.String(), request.ApproveRequest{})

		assert.ErrorIs(t, err, requesterrors.ErrAlreadyDecided)
		assert.False(t, companyCreated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid request id", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.close()

		_, err := deps.service.Approve(ctx, "not-a-uuid", adminID.String(), request.ApproveRequest{})

		assert.ErrorIs(t, err, requesterrors.ErrInvalidRequestID)
	})
}

func TestRequestService_Reject(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	adminID := uuid.New()

	t.Run("success stores reason and queues rejection email", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*request.CompanyRequest, error) {
			return pendingRequest(requestID), nil
		}

		var createdNotification *notification.Notification
		deps.notificationRepo.createFn = func(ctx context.Context, n *notification.Notification) error {
			createdNotification = n
			return nil
		}

		var outboxEvent *kafka.OutboxEvent
		deps.outboxRepo.createFn = func(ctx context.Context, event *kafka.OutboxEvent) error {
			outboxEvent = event
			return nil
		}

		reason := "The company could not be verified in any public registry."
		resp, err := deps.service.Reject(ctx, requestID.String(), adminID.String(), request.RejectRequest{
			Reason: reason,
		})

		assert.NoError(t, err)
		assert.Equal(t, request.StatusRejected, resp.Status)
		assert.Equal(t, reason, *resp.RejectionReason)

		assert.Equal(t, notification.TypeCompanyRejected, createdNotification.Type)

		var payload email.EmailRequest
		assert.NoError(t, json.Unmarshal(outboxEvent.Payload, &payload))
		assert.Equal(t, email.TypeCompanyRejected, payload.EmailType)
		assert.Equal(t, reason, payload.RejectionReason)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative short reason blocks before any write", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.close()

		findCalled := false
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*request.CompanyRequest, error) {
			findCalled = true
			return pendingRequest(requestID), nil
		}

		_, err := deps.service.Reject(ctx, requestID.String(), adminID.String(), request.RejectRequest{
			Reason: "  too short  ",
		})

		assert.ErrorIs(t, err, requesterrors.ErrRejectionReasonTooShort)
		assert.False(t, findCalled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already decided", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*request.CompanyRequest, error) {
			decided := pendingRequest(requestID)
			decided.Status = request.StatusRejected
			return decided, nil
		}
		deps.repo.transitionFromPendingFn = func(ctx context.Context, id uuid.UUID, update request.DecisionUpdate) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.Reject(ctx, requestID.String(), adminID.String(), request.RejectRequest{
			Reason: "The company could not be verified in any public registry.",
		})

		assert.ErrorIs(t, err, requesterrors.ErrAlreadyDecided)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
