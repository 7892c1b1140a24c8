package executor

import (
	"context"

	"github.com/keystone-cre/leaseledger/internal/api/shared/dto"
	apierrors "github.com/keystone-cre/leaseledger/internal/api/shared/errors"
	"github.com/keystone-cre/leaseledger/internal/domain"
	"github.com/keystone-cre/leaseledger/internal/store/schema"
)

func (e *executorImpl) CreateProperty(ctx context.Context, req dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	if req.TotalArea <= 0 {
		return nil, apierrors.NewValidationError("total_area must be positive")
	}
	p := &schema.Property{
		Name:      req.Name,
		TotalArea: req.TotalArea,
		Active:    true,
	}
	if err := e.store.CreateProperty(ctx, p); err != nil {
		return nil, mapStoreError(err, "property not found")
	}
	resp := dto.MapProperty(p)
	return &resp, nil
}

func (e *executorImpl) GetProperty(ctx context.Context, id uint64) (*dto.PropertyResponse, error) {
	p, err := e.store.GetProperty(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "property not found")
	}
	if p == nil {
		return nil, apierrors.NewNotFoundError("property not found")
	}
	resp := dto.MapProperty(p)
	return &resp, nil
}

func (e *executorImpl) UpdateProperty(ctx context.Context, id uint64, req dto.UpdatePropertyRequest) (*dto.PropertyResponse, error) {
	p, err := e.store.GetProperty(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "property not found")
	}
	if p == nil {
		return nil, apierrors.NewNotFoundError("property not found")
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.TotalArea != nil {
		if *req.TotalArea <= 0 {
			return nil, apierrors.NewValidationError("total_area must be positive")
		}
		p.TotalArea = *req.TotalArea
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := e.store.UpdateProperty(ctx, p); err != nil {
		return nil, mapStoreError(err, "property not found")
	}
	resp := dto.MapProperty(p)
	return &resp, nil
}

func (e *executorImpl) DeleteProperty(ctx context.Context, id uint64) error {
	if err := e.store.DeleteProperty(ctx, id); err != nil {
		return mapStoreError(err, "property not found")
	}
	return nil
}

func (e *executorImpl) CreateSuite(ctx context.Context, req dto.CreateSuiteRequest) (*dto.SuiteResponse, error) {
	if req.Area <= 0 {
		return nil, apierrors.NewValidationError("area must be positive")
	}
	s := &schema.Suite{
		PropertyID: req.PropertyID,
		Code:       req.Code,
		Area:       req.Area,
	}
	if err := e.store.CreateSuite(ctx, s); err != nil {
		return nil, mapStoreError(err, "property not found")
	}
	resp := dto.MapSuite(s)
	return &resp, nil
}

func (e *executorImpl) GetSuite(ctx context.Context, id uint64) (*dto.SuiteResponse, error) {
	s, err := e.store.GetSuite(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "suite not found")
	}
	if s == nil {
		return nil, apierrors.NewNotFoundError("suite not found")
	}
	resp := dto.MapSuite(s)
	return &resp, nil
}

func (e *executorImpl) ListSuites(ctx context.Context, propertyID uint64) ([]dto.SuiteResponse, error) {
	suites, err := e.store.ListSuitesByProperty(ctx, propertyID)
	if err != nil {
		return nil, mapStoreError(err, "property not found")
	}
	resp := make([]dto.SuiteResponse, 0, len(suites))
	for i := range suites {
		resp = append(resp, dto.MapSuite(&suites[i]))
	}
	return resp, nil
}

func (e *executorImpl) UpdateSuite(ctx context.Context, id uint64, req dto.UpdateSuiteRequest) (*dto.SuiteResponse, error) {
	s, err := e.store.GetSuite(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "suite not found")
	}
	if s == nil {
		return nil, apierrors.NewNotFoundError("suite not found")
	}
	if req.Code != nil {
		s.Code = *req.Code
	}
	if req.Area != nil {
		if *req.Area <= 0 {
			return nil, apierrors.NewValidationError("area must be positive")
		}
		s.Area = *req.Area
	}
	if err := e.store.UpdateSuite(ctx, s); err != nil {
		return nil, mapStoreError(err, "suite not found")
	}
	resp := dto.MapSuite(s)
	return &resp, nil
}

func (e *executorImpl) DeleteSuite(ctx context.Context, id uint64) error {
	if err := e.store.DeleteSuite(ctx, id); err != nil {
		return mapStoreError(err, "suite not found")
	}
	return nil
}

func (e *executorImpl) CreateParty(ctx context.Context, req dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	role := domain.PartyRole(req.Role)
	if !domain.IsValidPartyRole(role) {
		return nil, apierrors.NewValidationError("invalid party role: " + req.Role)
	}
	p := &schema.Party{
		LegalName: req.LegalName,
		Role:      role,
		Active:    true,
	}
	if err := e.store.CreateParty(ctx, p); err != nil {
		return nil, mapStoreError(err, "party not found")
	}
	resp := dto.MapParty(p)
	return &resp, nil
}

func (e *executorImpl) GetParty(ctx context.Context, id uint64) (*dto.PartyResponse, error) {
	p, err := e.store.GetParty(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "party not found")
	}
	if p == nil {
		return nil, apierrors.NewNotFoundError("party not found")
	}
	resp := dto.MapParty(p)
	return &resp, nil
}

func (e *executorImpl) UpdateParty(ctx context.Context, id uint64, req dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	p, err := e.store.GetParty(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "party not found")
	}
	if p == nil {
		return nil, apierrors.NewNotFoundError("party not found")
	}
	if req.LegalName != nil {
		p.LegalName = *req.LegalName
	}
	if req.Role != nil {
		role := domain.PartyRole(*req.Role)
		if !domain.IsValidPartyRole(role) {
			return nil, apierrors.NewValidationError("invalid party role: " + *req.Role)
		}
		p.Role = role
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := e.store.UpdateParty(ctx, p); err != nil {
		return nil, mapStoreError(err, "party not found")
	}
	resp := dto.MapParty(p)
	return &resp, nil
}

func (e *executorImpl) DeleteParty(ctx context.Context, id uint64) error {
	if err := e.store.DeleteParty(ctx, id); err != nil {
		return mapStoreError(err, "party not found")
	}
	return nil
}
