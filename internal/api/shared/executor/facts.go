package executor

import (
	"context"

	"github.com/keystone-cre/leaseledger/internal/api/shared/dto"
	apierrors "github.com/keystone-cre/leaseledger/internal/api/shared/errors"
	"github.com/keystone-cre/leaseledger/internal/domain"
	"github.com/keystone-cre/leaseledger/internal/store"
	"github.com/keystone-cre/leaseledger/internal/store/schema"
)

// requireVersion resolves a version or returns a not-found API error. Fact
// writes go through it so change events carry the owning lease's id.
func (e *executorImpl) requireVersion(ctx context.Context, versionID uint64) (*schema.LeaseVersion, error) {
	version, err := e.store.GetVersion(ctx, versionID)
	if err != nil {
		return nil, mapStoreError(err, "version not found")
	}
	if version == nil {
		return nil, apierrors.NewNotFoundError("version not found")
	}
	return version, nil
}

func (e *executorImpl) CreateRentPeriod(ctx context.Context, versionID uint64, req dto.CreateRentPeriodRequest) (*dto.RentPeriodResponse, error) {
	version, err := e.requireVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}
	input, err := buildRentPeriodInput(req)
	if err != nil {
		return nil, err
	}
	record, err := e.store.CreateRentPeriod(ctx, versionID, input)
	if err != nil {
		return nil, mapStoreError(err, "version not found")
	}
	e.publishEvent(ctx, domain.LeaseEventFactChanged, version.LeaseID, &versionID, "rent_period", &record.ID)
	resp := dto.MapRentPeriod(record)
	return &resp, nil
}

func (e *executorImpl) ListRentPeriods(ctx context.Context, versionID uint64) ([]dto.RentPeriodResponse, error) {
	if _, err := e.requireVersion(ctx, versionID); err != nil {
		return nil, err
	}
	records, err := e.store.ListRentPeriods(ctx, versionID)
	if err != nil {
		return nil, mapStoreError(err, "version not found")
	}
	resp := make([]dto.RentPeriodResponse, 0, len(records))
	for i := range records {
		resp = append(resp, dto.MapRentPeriod(&records[i]))
	}
	return resp, nil
}

func (e *executorImpl) DeleteRentPeriod(ctx context.Context, id uint64) error {
	if err := e.store.DeleteRentPeriod(ctx, id); err != nil {
		return mapStoreError(err, "rent period not found")
	}
	return nil
}

func (e *executorImpl) CreateOptionWindow(ctx context.Context, versionID uint64, req dto.CreateOptionWindowRequest) (*dto.OptionWindowResponse, error) {
	version, err := e.requireVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}
	input, err := buildOptionWindowInput(req)
	if err != nil {
		return nil, err
	}
	record, err := e.store.CreateOptionWindow(ctx, versionID, input)
	if err != nil {
		return nil, mapStoreError(err, "version not found")
	}
	e.publishEvent(ctx, domain.LeaseEventFactChanged, version.LeaseID, &versionID, "option_window", &record.ID)
	resp := dto.MapOptionWindow(record)
	return &resp, nil
}

func (e *executorImpl) GetOptionWindow(ctx context.Context, id uint64) (*dto.OptionWindowResponse, error) {
	record, err := e.store.GetOptionWindow(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "option window not found")
	}
	if record == nil {
		return nil, apierrors.NewNotFoundError("option window not found")
	}
	resp := dto.MapOptionWindow(record)
	return &resp, nil
}

func (e *executorImpl) ListOptionWindows(ctx context.Context, versionID uint64) ([]dto.OptionWindowResponse, error) {
	if _, err := e.requireVersion(ctx, versionID); err != nil {
		return nil, err
	}
	records, err := e.store.ListOptionWindows(ctx, versionID)
	if err != nil {
		return nil, mapStoreError(err, "version not found")
	}
	resp := make([]dto.OptionWindowResponse, 0, len(records))
	for i := range records {
		resp = append(resp, dto.MapOptionWindow(&records[i]))
	}
	return resp, nil
}

func (e *executorImpl) UpdateOptionWindow(ctx context.Context, id uint64, req dto.UpdateOptionWindowRequest) (*dto.OptionWindowResponse, error) {
	input, err := buildOptionWindowUpdate(req)
	if err != nil {
		return nil, err
	}
	record, err := e.store.UpdateOptionWindow(ctx, id, input)
	if err != nil {
		return nil, mapStoreError(err, "option window not found")
	}
	version, err := e.requireVersion(ctx, record.VersionID)
	if err == nil {
		e.publishEvent(ctx, domain.LeaseEventFactChanged, version.LeaseID, &record.VersionID, "option_window", &record.ID)
	}
	resp := dto.MapOptionWindow(record)
	return &resp, nil
}

func (e *executorImpl) DeleteOptionWindow(ctx context.Context, id uint64) error {
	if err := e.store.DeleteOptionWindow(ctx, id); err != nil {
		return mapStoreError(err, "option window not found")
	}
	return nil
}

func (e *executorImpl) CreateConcession(ctx context.Context, versionID uint64, req dto.CreateConcessionRequest) (*dto.ConcessionResponse, error) {
	version, err := e.requireVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}
	input, err := buildConcessionInput(req)
	if err != nil {
		return nil, err
	}
	record, err := e.store.CreateConcession(ctx, versionID, input)
	if err != nil {
		return nil, mapStoreError(err, "version not found")
	}
	e.publishEvent(ctx, domain.LeaseEventFactChanged, version.LeaseID, &versionID, "concession", &record.ID)
	resp := dto.MapConcession(record)
	return &resp, nil
}

func (e *executorImpl) ListConcessions(ctx context.Context, versionID uint64) ([]dto.ConcessionResponse, error) {
	if _, err := e.requireVersion(ctx, versionID); err != nil {
		return nil, err
	}
	records, err := e.store.ListConcessions(ctx, versionID)
	if err != nil {
		return nil, mapStoreError(err, "version not found")
	}
	resp := make([]dto.ConcessionResponse, 0, len(records))
	for i := range records {
		resp = append(resp, dto.MapConcession(&records[i]))
	}
	return resp, nil
}

func (e *executorImpl) GetConcession(ctx context.Context, id uint64) (*dto.ConcessionResponse, error) {
	record, err := e.store.GetConcession(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "concession not found")
	}
	if record == nil {
		return nil, apierrors.NewNotFoundError("concession not found")
	}
	resp := dto.MapConcession(record)
	return &resp, nil
}

func (e *executorImpl) UpdateConcession(ctx context.Context, id uint64, req dto.UpdateConcessionRequest) (*dto.ConcessionResponse, error) {
	record, err := e.store.GetConcession(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "concession not found")
	}
	if record == nil {
		return nil, apierrors.NewNotFoundError("concession not found")
	}

	input := store.UpdateConcessionInput{ValueAmount: req.ValueAmount}
	if req.ValueAmount != nil && *req.ValueAmount < 0 {
		return nil, apierrors.NewValidationError("value_amount must not be negative")
	}
	if req.ValueBasis != nil {
		basis := domain.ConcessionBasis(*req.ValueBasis)
		if !domain.IsValidConcessionBasis(basis) {
			return nil, apierrors.NewValidationError("invalid concession basis: " + *req.ValueBasis)
		}
		input.ValueBasis = &basis
	}
	if (req.AppliesStart == nil) != (req.AppliesEnd == nil) {
		return nil, apierrors.NewValidationError("applies_start and applies_end must be set together")
	}
	if req.AppliesStart != nil {
		start, err := parseDate("applies_start", *req.AppliesStart)
		if err != nil {
			return nil, err
		}
		end, err := parseDate("applies_end", *req.AppliesEnd)
		if err != nil {
			return nil, err
		}
		applies := domain.NewDateRange(start, end)
		if !applies.Valid() {
			return nil, apierrors.NewValidationError("applies_start must be before applies_end")
		}
		input.Applies = &applies
	}

	record, err = e.store.UpdateConcession(ctx, id, input)
	if err != nil {
		return nil, mapStoreError(err, "concession not found")
	}
	version, err := e.requireVersion(ctx, record.VersionID)
	if err == nil {
		e.publishEvent(ctx, domain.LeaseEventFactChanged, version.LeaseID, &record.VersionID, "concession", &record.ID)
	}
	resp := dto.MapConcession(record)
	return &resp, nil
}

func (e *executorImpl) DeleteConcession(ctx context.Context, id uint64) error {
	if err := e.store.DeleteConcession(ctx, id); err != nil {
		return mapStoreError(err, "concession not found")
	}
	return nil
}

func (e *executorImpl) CreateMilestone(ctx context.Context, leaseID uint64, req dto.CreateMilestoneRequest) (*dto.MilestoneResponse, error) {
	kind := domain.MilestoneKind(req.Kind)
	if !domain.IsValidMilestoneKind(kind) {
		return nil, apierrors.NewValidationError("invalid milestone kind: " + req.Kind)
	}
	dateValue, err := parseDate("date_value", req.DateValue)
	if err != nil {
		return nil, err
	}
	record := &schema.MilestoneDate{
		LeaseID:   leaseID,
		Kind:      kind,
		DateValue: dateValue,
	}
	if err := e.store.CreateMilestone(ctx, record); err != nil {
		return nil, mapStoreError(err, "lease not found")
	}
	e.publishEvent(ctx, domain.LeaseEventFactChanged, leaseID, nil, "milestone", &record.ID)
	resp := dto.MapMilestone(record)
	return &resp, nil
}

func (e *executorImpl) ListMilestones(ctx context.Context, leaseID uint64) ([]dto.MilestoneResponse, error) {
	records, err := e.store.ListMilestones(ctx, leaseID)
	if err != nil {
		return nil, mapStoreError(err, "lease not found")
	}
	resp := make([]dto.MilestoneResponse, 0, len(records))
	for i := range records {
		resp = append(resp, dto.MapMilestone(&records[i]))
	}
	return resp, nil
}

func (e *executorImpl) UpdateMilestone(ctx context.Context, id uint64, req dto.UpdateMilestoneRequest) (*dto.MilestoneResponse, error) {
	record, err := e.store.GetMilestone(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "milestone not found")
	}
	if record == nil {
		return nil, apierrors.NewNotFoundError("milestone not found")
	}
	if req.Kind != nil {
		kind := domain.MilestoneKind(*req.Kind)
		if !domain.IsValidMilestoneKind(kind) {
			return nil, apierrors.NewValidationError("invalid milestone kind: " + *req.Kind)
		}
		record.Kind = kind
	}
	if req.DateValue != nil {
		dateValue, err := parseDate("date_value", *req.DateValue)
		if err != nil {
			return nil, err
		}
		record.DateValue = dateValue
	}
	if err := e.store.UpdateMilestone(ctx, record); err != nil {
		return nil, mapStoreError(err, "milestone not found")
	}
	e.publishEvent(ctx, domain.LeaseEventFactChanged, record.LeaseID, nil, "milestone", &record.ID)
	resp := dto.MapMilestone(record)
	return &resp, nil
}

func (e *executorImpl) DeleteMilestone(ctx context.Context, id uint64) error {
	if err := e.store.DeleteMilestone(ctx, id); err != nil {
		return mapStoreError(err, "milestone not found")
	}
	return nil
}

func (e *executorImpl) CreateDocumentLink(ctx context.Context, leaseID uint64, req dto.CreateDocumentLinkRequest) (*dto.DocumentLinkResponse, error) {
	record := &schema.DocumentLink{
		LeaseID:     leaseID,
		Label:       req.Label,
		ExternalRef: req.ExternalRef,
	}
	if err := e.store.CreateDocumentLink(ctx, record); err != nil {
		return nil, mapStoreError(err, "lease not found")
	}
	e.publishEvent(ctx, domain.LeaseEventFactChanged, leaseID, nil, "document_link", &record.ID)
	resp := dto.MapDocumentLink(record)
	return &resp, nil
}

func (e *executorImpl) ListDocumentLinks(ctx context.Context, leaseID uint64) ([]dto.DocumentLinkResponse, error) {
	records, err := e.store.ListDocumentLinks(ctx, leaseID)
	if err != nil {
		return nil, mapStoreError(err, "lease not found")
	}
	resp := make([]dto.DocumentLinkResponse, 0, len(records))
	for i := range records {
		resp = append(resp, dto.MapDocumentLink(&records[i]))
	}
	return resp, nil
}

func (e *executorImpl) UpdateDocumentLink(ctx context.Context, id uint64, req dto.UpdateDocumentLinkRequest) (*dto.DocumentLinkResponse, error) {
	record, err := e.store.GetDocumentLink(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "document link not found")
	}
	if record == nil {
		return nil, apierrors.NewNotFoundError("document link not found")
	}
	if req.Label != nil {
		if *req.Label == "" {
			return nil, apierrors.NewValidationError("label must not be empty")
		}
		record.Label = *req.Label
	}
	if req.ExternalRef != nil {
		if *req.ExternalRef == "" {
			return nil, apierrors.NewValidationError("external_ref must not be empty")
		}
		record.ExternalRef = *req.ExternalRef
	}
	if err := e.store.UpdateDocumentLink(ctx, record); err != nil {
		return nil, mapStoreError(err, "document link not found")
	}
	e.publishEvent(ctx, domain.LeaseEventFactChanged, record.LeaseID, nil, "document_link", &record.ID)
	resp := dto.MapDocumentLink(record)
	return &resp, nil
}

func (e *executorImpl) DeleteDocumentLink(ctx context.Context, id uint64) error {
	if err := e.store.DeleteDocumentLink(ctx, id); err != nil {
		return mapStoreError(err, "document link not found")
	}
	return nil
}
