package dto

import (
	"encoding/json"
	"time"

	"github.com/keystone-cre/leaseledger/internal/domain"
	"github.com/keystone-cre/leaseledger/internal/store/schema"
)

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

// MapProperty converts a property model to its API representation
func MapProperty(p *schema.Property) PropertyResponse {
	return PropertyResponse{
		ID:        p.ID,
		Name:      p.Name,
		TotalArea: p.TotalArea,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// MapSuite converts a suite model to its API representation
func MapSuite(s *schema.Suite) SuiteResponse {
	return SuiteResponse{
		ID:         s.ID,
		PropertyID: s.PropertyID,
		Code:       s.Code,
		Area:       s.Area,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// MapParty converts a party model to its API representation
func MapParty(p *schema.Party) PartyResponse {
	return PartyResponse{
		ID:        p.ID,
		LegalName: p.LegalName,
		Role:      string(p.Role),
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// MapLease converts a lease model to its API representation
func MapLease(l *schema.Lease) LeaseResponse {
	return LeaseResponse{
		ID:               l.ID,
		PropertyID:       l.PropertyID,
		LandlordID:       l.LandlordID,
		TenantID:         l.TenantID,
		ExternalNumber:   l.ExternalNumber,
		ExecutionDate:    formatDate(l.ExecutionDate),
		CurrentVersionID: l.CurrentVersionID,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// MapVersion converts a version model to its API representation. currentID is
// the owning lease's current version pointer, used to flag the current row.
func MapVersion(v *schema.LeaseVersion, currentID *uint64) VersionResponse {
	return VersionResponse{
		ID:               v.ID,
		LeaseID:          v.LeaseID,
		SequenceNum:      v.SequenceNum,
		EffectiveStart:   formatDate(v.EffectiveStart),
		EffectiveEnd:     formatDate(v.EffectiveEnd),
		SuiteID:          v.SuiteID,
		Area:             v.Area,
		TermMonths:       v.TermMonths,
		EscalationMethod: string(v.EscalationMethod),
		Current:          currentID != nil && *currentID == v.ID,
		CreatedAt:        v.CreatedAt,
	}
}

// MapRentPeriod converts a rent period model to its API representation
func MapRentPeriod(rp *schema.RentPeriod) RentPeriodResponse {
	return RentPeriodResponse{
		ID:          rp.ID,
		VersionID:   rp.VersionID,
		PeriodStart: formatDate(rp.PeriodStart),
		PeriodEnd:   formatDate(rp.PeriodEnd),
		Amount:      rp.Amount,
		Basis:       string(rp.Basis),
	}
}

// MapOptionWindow converts an option window model to its API representation
func MapOptionWindow(ow *schema.OptionWindow) OptionWindowResponse {
	return OptionWindowResponse{
		ID:            ow.ID,
		VersionID:     ow.VersionID,
		Kind:          string(ow.Kind),
		WindowStart:   formatDate(ow.WindowStart),
		WindowEnd:     formatDate(ow.WindowEnd),
		Terms:         json.RawMessage(ow.Terms),
		Exercised:     ow.Exercised,
		ExercisedDate: formatDatePtr(ow.ExercisedDate),
	}
}

// MapConcession converts a concession model to its API representation
func MapConcession(c *schema.Concession) ConcessionResponse {
	return ConcessionResponse{
		ID:           c.ID,
		VersionID:    c.VersionID,
		Kind:         string(c.Kind),
		ValueAmount:  c.ValueAmount,
		ValueBasis:   string(c.ValueBasis),
		AppliesStart: formatDatePtr(c.AppliesStart),
		AppliesEnd:   formatDatePtr(c.AppliesEnd),
	}
}

// MapMilestone converts a milestone model to its API representation
func MapMilestone(m *schema.MilestoneDate) MilestoneResponse {
	return MilestoneResponse{
		ID:        m.ID,
		LeaseID:   m.LeaseID,
		Kind:      string(m.Kind),
		DateValue: formatDate(m.DateValue),
	}
}

// MapDocumentLink converts a document link model to its API representation
func MapDocumentLink(d *schema.DocumentLink) DocumentLinkResponse {
	return DocumentLinkResponse{
		ID:          d.ID,
		LeaseID:     d.LeaseID,
		Label:       d.Label,
		ExternalRef: d.ExternalRef,
		CreatedAt:   d.CreatedAt,
	}
}
