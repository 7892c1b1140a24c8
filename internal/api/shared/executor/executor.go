package executor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/keystone-cre/leaseledger/internal/adapter"
	"github.com/keystone-cre/leaseledger/internal/api/shared/dto"
	apierrors "github.com/keystone-cre/leaseledger/internal/api/shared/errors"
	"github.com/keystone-cre/leaseledger/internal/domain"
	"github.com/keystone-cre/leaseledger/internal/logger"
	"github.com/keystone-cre/leaseledger/internal/messaging"
	"github.com/keystone-cre/leaseledger/internal/store"
)

// Executor handles API business logic between the HTTP layer and the store.
// All write operations validate at the boundary, translate store errors into
// API errors, and publish change events after the write commits.
type Executor interface {
	// Reference entities
	CreateProperty(ctx context.Context, req dto.CreatePropertyRequest) (*dto.PropertyResponse, error)
	GetProperty(ctx context.Context, id uint64) (*dto.PropertyResponse, error)
	UpdateProperty(ctx context.Context, id uint64, req dto.UpdatePropertyRequest) (*dto.PropertyResponse, error)
	DeleteProperty(ctx context.Context, id uint64) error
	CreateSuite(ctx context.Context, req dto.CreateSuiteRequest) (*dto.SuiteResponse, error)
	GetSuite(ctx context.Context, id uint64) (*dto.SuiteResponse, error)
	ListSuites(ctx context.Context, propertyID uint64) ([]dto.SuiteResponse, error)
	UpdateSuite(ctx context.Context, id uint64, req dto.UpdateSuiteRequest) (*dto.SuiteResponse, error)
	DeleteSuite(ctx context.Context, id uint64) error
	CreateParty(ctx context.Context, req dto.CreatePartyRequest) (*dto.PartyResponse, error)
	GetParty(ctx context.Context, id uint64) (*dto.PartyResponse, error)
	UpdateParty(ctx context.Context, id uint64, req dto.UpdatePartyRequest) (*dto.PartyResponse, error)
	DeleteParty(ctx context.Context, id uint64) error

	// Lease shell and version ledger
	CreateLease(ctx context.Context, req dto.CreateLeaseRequest) (*dto.LeaseResponse, error)
	GetLease(ctx context.Context, id uint64) (*dto.LeaseResponse, error)
	ListLeases(ctx context.Context, filter store.LeaseQueryFilter) (*dto.LeaseListResponse, error)
	UpdateLease(ctx context.Context, id uint64, req dto.UpdateLeaseRequest) (*dto.LeaseResponse, error)
	DeleteLease(ctx context.Context, id uint64) error
	CreateVersion(ctx context.Context, leaseID uint64, req dto.CreateVersionRequest) (*dto.VersionResponse, error)
	GetCurrentVersion(ctx context.Context, leaseID uint64) (*dto.VersionResponse, error)
	ListVersions(ctx context.Context, leaseID uint64) (*dto.VersionListResponse, error)

	// Fact attachments
	CreateRentPeriod(ctx context.Context, versionID uint64, req dto.CreateRentPeriodRequest) (*dto.RentPeriodResponse, error)
	ListRentPeriods(ctx context.Context, versionID uint64) ([]dto.RentPeriodResponse, error)
	DeleteRentPeriod(ctx context.Context, id uint64) error
	CreateOptionWindow(ctx context.Context, versionID uint64, req dto.CreateOptionWindowRequest) (*dto.OptionWindowResponse, error)
	GetOptionWindow(ctx context.Context, id uint64) (*dto.OptionWindowResponse, error)
	ListOptionWindows(ctx context.Context, versionID uint64) ([]dto.OptionWindowResponse, error)
	UpdateOptionWindow(ctx context.Context, id uint64, req dto.UpdateOptionWindowRequest) (*dto.OptionWindowResponse, error)
	DeleteOptionWindow(ctx context.Context, id uint64) error
	CreateConcession(ctx context.Context, versionID uint64, req dto.CreateConcessionRequest) (*dto.ConcessionResponse, error)
	GetConcession(ctx context.Context, id uint64) (*dto.ConcessionResponse, error)
	ListConcessions(ctx context.Context, versionID uint64) ([]dto.ConcessionResponse, error)
	UpdateConcession(ctx context.Context, id uint64, req dto.UpdateConcessionRequest) (*dto.ConcessionResponse, error)
	DeleteConcession(ctx context.Context, id uint64) error
	CreateMilestone(ctx context.Context, leaseID uint64, req dto.CreateMilestoneRequest) (*dto.MilestoneResponse, error)
	ListMilestones(ctx context.Context, leaseID uint64) ([]dto.MilestoneResponse, error)
	UpdateMilestone(ctx context.Context, id uint64, req dto.UpdateMilestoneRequest) (*dto.MilestoneResponse, error)
	DeleteMilestone(ctx context.Context, id uint64) error
	CreateDocumentLink(ctx context.Context, leaseID uint64, req dto.CreateDocumentLinkRequest) (*dto.DocumentLinkResponse, error)
	ListDocumentLinks(ctx context.Context, leaseID uint64) ([]dto.DocumentLinkResponse, error)
	UpdateDocumentLink(ctx context.Context, id uint64, req dto.UpdateDocumentLinkRequest) (*dto.DocumentLinkResponse, error)
	DeleteDocumentLink(ctx context.Context, id uint64) error

	// Derived-metric queries. asOf empty means "now".
	GetLeaseMetrics(ctx context.Context, leaseID uint64, asOf string) (*dto.LeaseMetricsResponse, error)
	GetRentRoll(ctx context.Context, asOf string, filter store.LeaseQueryFilter) (*dto.RentRollResponse, error)
	GetExpirations(ctx context.Context, asOf string, lookahead time.Duration, filter store.LeaseQueryFilter) (*dto.ExpirationsResponse, error)
	GetOpenNoticeWindows(ctx context.Context, asOf string, filter store.LeaseQueryFilter) (*dto.NoticeWindowsResponse, error)
	GetFreeRent(ctx context.Context, asOf string, filter store.LeaseQueryFilter) (*dto.FreeRentResponse, error)
	GetAllowances(ctx context.Context, filter store.LeaseQueryFilter) (*dto.AllowancesResponse, error)
}

type executorImpl struct {
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
}

// New creates an Executor backed by the given store and event publisher
func New(s store.Store, publisher messaging.Publisher, clock adapter.Clock) Executor {
	if publisher == nil {
		publisher = messaging.NewNoopPublisher()
	}
	if clock == nil {
		clock = adapter.NewClock()
	}
	return &executorImpl{
		store:     s,
		publisher: publisher,
		clock:     clock,
	}
}

// mapStoreError translates store sentinel errors into API errors. notFound is
// the message used when the underlying record does not exist.
func mapStoreError(err error, notFound string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apierrors.NewNotFoundError(notFound)
	case errors.Is(err, domain.ErrValidation):
		return apierrors.NewValidationError(err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		return apierrors.NewDuplicateError(err.Error())
	case errors.Is(err, domain.ErrReferenceInUse):
		return apierrors.NewReferenceInUseError(err.Error())
	case errors.Is(err, domain.ErrOverlapConflict):
		return apierrors.NewOverlapConflictError(err.Error())
	case errors.Is(err, domain.ErrCurrentVersionConflict):
		return apierrors.NewVersionConflictError(err.Error())
	default:
		return apierrors.NewDatabaseError("database operation failed", err.Error())
	}
}

// parseDate parses a YYYY-MM-DD boundary value into a UTC midnight instant
func parseDate(field, value string) (time.Time, error) {
	t, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, apierrors.NewValidationError(field + " must be a YYYY-MM-DD date")
	}
	return t, nil
}

func parseDatePtr(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// resolveAsOf resolves an optional as_of query value, defaulting to the
// current time so projections answer "as of now" when unqualified
func (e *executorImpl) resolveAsOf(asOf string) (time.Time, error) {
	if asOf == "" {
		return e.clock.Now().UTC(), nil
	}
	return parseDate("as_of", asOf)
}

// publishEvent publishes a change event after a committed write. Failures are
// logged and swallowed: the write already happened and must not be reported
// as failed because the event bus is unavailable.
func (e *executorImpl) publishEvent(ctx context.Context, eventType domain.LeaseEventType, leaseID uint64, versionID *uint64, subject string, subjectID *uint64) {
	event := &domain.LeaseEvent{
		EventID:    uuid.New().String(),
		EventType:  eventType,
		LeaseID:    leaseID,
		VersionID:  versionID,
		Subject:    subject,
		SubjectID:  subjectID,
		OccurredAt: e.clock.Now().UTC(),
	}
	if err := e.publisher.PublishLeaseEvent(ctx, event); err != nil {
		logger.Warn("failed to publish lease event",
			zap.String("event_type", string(eventType)),
			zap.Uint64("lease_id", leaseID),
			zap.Error(err))
	}
}
