package executor

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/datatypes"

	"github.com/keystone-cre/leaseledger/internal/api/shared/dto"
	apierrors "github.com/keystone-cre/leaseledger/internal/api/shared/errors"
	"github.com/keystone-cre/leaseledger/internal/domain"
	"github.com/keystone-cre/leaseledger/internal/metrics"
	"github.com/keystone-cre/leaseledger/internal/store"
	"github.com/keystone-cre/leaseledger/internal/store/schema"
)

// versionConflictRetries bounds the automatic rebase attempts when a
// concurrent amendment moves the current version pointer mid-flight. The
// conflict surfaces to the caller once the attempts are exhausted.
const versionConflictRetries = 3

func (e *executorImpl) CreateLease(ctx context.Context, req dto.CreateLeaseRequest) (*dto.LeaseResponse, error) {
	executionDate, err := parseDate("execution_date", req.ExecutionDate)
	if err != nil {
		return nil, err
	}
	leaseInput := store.CreateLeaseInput{
		PropertyID:     req.PropertyID,
		LandlordID:     req.LandlordID,
		TenantID:       req.TenantID,
		ExternalNumber: req.ExternalNumber,
		ExecutionDate:  executionDate,
	}

	// Shell and sequence-0 version commit together, so a rejected initial
	// version never leaves a version-less shell behind.
	if req.InitialVersion != nil {
		versionInput, err := buildVersionInput(*req.InitialVersion)
		if err != nil {
			return nil, err
		}
		lease, version, err := e.store.CreateLeaseWithVersion(ctx, leaseInput, versionInput)
		if err != nil {
			return nil, mapStoreError(err, "referenced property or party not found")
		}
		e.publishEvent(ctx, domain.LeaseEventCreated, lease.ID, nil, "", nil)
		e.publishEvent(ctx, domain.LeaseEventVersionCreated, lease.ID, &version.ID, "", nil)
		resp := dto.MapLease(lease)
		return &resp, nil
	}

	lease, err := e.store.CreateLease(ctx, leaseInput)
	if err != nil {
		return nil, mapStoreError(err, "referenced property or party not found")
	}
	e.publishEvent(ctx, domain.LeaseEventCreated, lease.ID, nil, "", nil)
	resp := dto.MapLease(lease)
	return &resp, nil
}

func (e *executorImpl) GetLease(ctx context.Context, id uint64) (*dto.LeaseResponse, error) {
	lease, err := e.store.GetLease(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "lease not found")
	}
	if lease == nil {
		return nil, apierrors.NewNotFoundError("lease not found")
	}
	resp := dto.MapLease(lease)
	return &resp, nil
}

func (e *executorImpl) ListLeases(ctx context.Context, filter store.LeaseQueryFilter) (*dto.LeaseListResponse, error) {
	leases, total, err := e.store.ListLeases(ctx, filter)
	if err != nil {
		return nil, mapStoreError(err, "lease not found")
	}
	resp := &dto.LeaseListResponse{
		Leases: make([]dto.LeaseResponse, 0, len(leases)),
		Total:  int(total),
	}
	for i := range leases {
		resp.Leases = append(resp.Leases, dto.MapLease(&leases[i]))
	}
	return resp, nil
}

func (e *executorImpl) UpdateLease(ctx context.Context, id uint64, req dto.UpdateLeaseRequest) (*dto.LeaseResponse, error) {
	lease, err := e.store.GetLease(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "lease not found")
	}
	if lease == nil {
		return nil, apierrors.NewNotFoundError("lease not found")
	}
	if req.ExternalNumber != nil {
		if *req.ExternalNumber == "" {
			return nil, apierrors.NewValidationError("external_number must not be empty")
		}
		lease.ExternalNumber = *req.ExternalNumber
	}
	if req.ExecutionDate != nil {
		executionDate, err := parseDate("execution_date", *req.ExecutionDate)
		if err != nil {
			return nil, err
		}
		lease.ExecutionDate = executionDate
	}
	if err := e.store.UpdateLease(ctx, lease); err != nil {
		return nil, mapStoreError(err, "lease not found")
	}
	resp := dto.MapLease(lease)
	return &resp, nil
}

func (e *executorImpl) DeleteLease(ctx context.Context, id uint64) error {
	if err := e.store.DeleteLease(ctx, id); err != nil {
		return mapStoreError(err, "lease not found")
	}
	return nil
}

func (e *executorImpl) CreateVersion(ctx context.Context, leaseID uint64, req dto.CreateVersionRequest) (*dto.VersionResponse, error) {
	input, err := buildVersionInput(req)
	if err != nil {
		return nil, err
	}

	// Each attempt re-reads the current version and amends against it, so a
	// conflict means another amendment landed between the read and the write.
	var created *schema.LeaseVersion
	operation := func() error {
		current, err := e.store.GetCurrentVersion(ctx, leaseID)
		if err != nil {
			return backoff.Permanent(err)
		}
		input.PriorVersionID = nil
		if current != nil {
			priorID := current.ID
			input.PriorVersionID = &priorID
		}
		version, err := e.store.CreateVersion(ctx, leaseID, input)
		if err != nil {
			if errors.Is(err, domain.ErrCurrentVersionConflict) {
				return err
			}
			return backoff.Permanent(err)
		}
		created = version
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), versionConflictRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, mapStoreError(err, "lease not found")
	}

	e.publishEvent(ctx, domain.LeaseEventVersionCreated, leaseID, &created.ID, "", nil)
	resp := dto.MapVersion(created, &created.ID)
	return &resp, nil
}

func (e *executorImpl) GetCurrentVersion(ctx context.Context, leaseID uint64) (*dto.VersionResponse, error) {
	version, err := e.store.GetCurrentVersion(ctx, leaseID)
	if err != nil {
		return nil, mapStoreError(err, "lease not found")
	}
	if version == nil {
		return nil, apierrors.NewNotFoundError("lease has no current version")
	}
	resp := dto.MapVersion(version, &version.ID)
	return &resp, nil
}

func (e *executorImpl) ListVersions(ctx context.Context, leaseID uint64) (*dto.VersionListResponse, error) {
	lease, err := e.store.GetLease(ctx, leaseID)
	if err != nil {
		return nil, mapStoreError(err, "lease not found")
	}
	if lease == nil {
		return nil, apierrors.NewNotFoundError("lease not found")
	}
	versions, err := e.store.ListVersions(ctx, leaseID)
	if err != nil {
		return nil, mapStoreError(err, "lease not found")
	}
	resp := &dto.VersionListResponse{
		Versions: make([]dto.VersionResponse, 0, len(versions)),
		Total:    len(versions),
	}
	for entry := range metrics.History(versions, lease.CurrentVersionID) {
		mapped := dto.MapVersion(&entry.Version, lease.CurrentVersionID)
		mapped.Current = entry.Current
		resp.Versions = append(resp.Versions, mapped)
	}
	return resp, nil
}

// buildVersionInput validates a version request and converts it, along with
// any embedded facts, into the store's amendment input
func buildVersionInput(req dto.CreateVersionRequest) (store.CreateVersionInput, error) {
	var input store.CreateVersionInput

	start, err := parseDate("effective_start", req.EffectiveStart)
	if err != nil {
		return input, err
	}
	end, err := parseDate("effective_end", req.EffectiveEnd)
	if err != nil {
		return input, err
	}
	effective := domain.NewDateRange(start, end)
	if !effective.Valid() {
		return input, apierrors.NewValidationError("effective_start must be before effective_end")
	}
	if req.Area <= 0 {
		return input, apierrors.NewValidationError("area must be positive")
	}
	if req.TermMonths <= 0 {
		return input, apierrors.NewValidationError("term_months must be positive")
	}
	method := domain.EscalationMethod(req.EscalationMethod)
	if !domain.IsValidEscalationMethod(method) {
		return input, apierrors.NewValidationError("invalid escalation method: " + req.EscalationMethod)
	}

	input = store.CreateVersionInput{
		Effective:        effective,
		SuiteID:          req.SuiteID,
		Area:             req.Area,
		TermMonths:       req.TermMonths,
		EscalationMethod: method,
	}
	for _, rp := range req.RentPeriods {
		converted, err := buildRentPeriodInput(rp)
		if err != nil {
			return input, err
		}
		input.RentPeriods = append(input.RentPeriods, converted)
	}
	for _, ow := range req.OptionWindows {
		converted, err := buildOptionWindowInput(ow)
		if err != nil {
			return input, err
		}
		input.OptionWindows = append(input.OptionWindows, converted)
	}
	for _, c := range req.Concessions {
		converted, err := buildConcessionInput(c)
		if err != nil {
			return input, err
		}
		input.Concessions = append(input.Concessions, converted)
	}
	return input, nil
}

func buildRentPeriodInput(req dto.CreateRentPeriodRequest) (store.CreateRentPeriodInput, error) {
	var input store.CreateRentPeriodInput

	start, err := parseDate("period_start", req.PeriodStart)
	if err != nil {
		return input, err
	}
	end, err := parseDate("period_end", req.PeriodEnd)
	if err != nil {
		return input, err
	}
	period := domain.NewDateRange(start, end)
	if !period.Valid() {
		return input, apierrors.NewValidationError("period_start must be before period_end")
	}
	if req.Amount < 0 {
		return input, apierrors.NewValidationError("amount must be non-negative")
	}
	basis := domain.RentBasis(req.Basis)
	if !domain.IsValidRentBasis(basis) {
		return input, apierrors.NewValidationError("invalid rent basis: " + req.Basis)
	}
	return store.CreateRentPeriodInput{
		Period: period,
		Amount: req.Amount,
		Basis:  basis,
	}, nil
}

func buildOptionWindowInput(req dto.CreateOptionWindowRequest) (store.CreateOptionWindowInput, error) {
	var input store.CreateOptionWindowInput

	kind := domain.OptionKind(req.Kind)
	if !domain.IsValidOptionKind(kind) {
		return input, apierrors.NewValidationError("invalid option kind: " + req.Kind)
	}
	start, err := parseDate("window_start", req.WindowStart)
	if err != nil {
		return input, err
	}
	end, err := parseDate("window_end", req.WindowEnd)
	if err != nil {
		return input, err
	}
	window := domain.NewDateRange(start, end)
	if !window.Valid() {
		return input, apierrors.NewValidationError("window_start must be before window_end")
	}
	exercisedDate, err := parseDatePtr("exercised_date", req.ExercisedDate)
	if err != nil {
		return input, err
	}
	if exercisedDate != nil && !req.Exercised {
		return input, apierrors.NewValidationError("exercised_date requires exercised to be true")
	}
	return store.CreateOptionWindowInput{
		Kind:          kind,
		Window:        window,
		Terms:         datatypes.JSON(req.Terms),
		Exercised:     req.Exercised,
		ExercisedDate: exercisedDate,
	}, nil
}

func buildOptionWindowUpdate(req dto.UpdateOptionWindowRequest) (store.UpdateOptionWindowInput, error) {
	var input store.UpdateOptionWindowInput

	exercisedDate, err := parseDatePtr("exercised_date", req.ExercisedDate)
	if err != nil {
		return input, err
	}
	if exercisedDate != nil && (req.Exercised == nil || !*req.Exercised) {
		return input, apierrors.NewValidationError("exercised_date requires exercised to be true")
	}
	var terms *datatypes.JSON
	if req.Terms != nil {
		converted := datatypes.JSON(*req.Terms)
		terms = &converted
	}
	return store.UpdateOptionWindowInput{
		Terms:         terms,
		Exercised:     req.Exercised,
		ExercisedDate: exercisedDate,
	}, nil
}

func buildConcessionInput(req dto.CreateConcessionRequest) (store.CreateConcessionInput, error) {
	var input store.CreateConcessionInput

	kind := domain.ConcessionKind(req.Kind)
	if !domain.IsValidConcessionKind(kind) {
		return input, apierrors.NewValidationError("invalid concession kind: " + req.Kind)
	}
	basis := domain.ConcessionBasis(req.ValueBasis)
	if !domain.IsValidConcessionBasis(basis) {
		return input, apierrors.NewValidationError("invalid concession basis: " + req.ValueBasis)
	}
	if req.ValueAmount < 0 {
		return input, apierrors.NewValidationError("value_amount must be non-negative")
	}
	if (req.AppliesStart == nil) != (req.AppliesEnd == nil) {
		return input, apierrors.NewValidationError("applies_start and applies_end must be set together")
	}
	var applies *domain.DateRange
	if req.AppliesStart != nil {
		start, err := parseDate("applies_start", *req.AppliesStart)
		if err != nil {
			return input, err
		}
		end, err := parseDate("applies_end", *req.AppliesEnd)
		if err != nil {
			return input, err
		}
		r := domain.NewDateRange(start, end)
		if !r.Valid() {
			return input, apierrors.NewValidationError("applies_start must be before applies_end")
		}
		applies = &r
	}
	if kind == domain.ConcessionKindFreeRent && applies == nil {
		return input, apierrors.NewValidationError("free_rent concessions require an applies interval")
	}
	return store.CreateConcessionInput{
		Kind:        kind,
		ValueAmount: req.ValueAmount,
		ValueBasis:  basis,
		Applies:     applies,
	}, nil
}
