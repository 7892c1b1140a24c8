package domain

import (
	"fmt"
	"time"
)

// PartyRole represents the role a party plays on a lease
type PartyRole string

const (
	PartyRoleTenant      PartyRole = "tenant"
	PartyRoleLandlord    PartyRole = "landlord"
	PartyRoleSublandlord PartyRole = "sublandlord"
	PartyRoleGuarantor   PartyRole = "guarantor"
)

// IsValidPartyRole checks if a party role is valid
func IsValidPartyRole(role PartyRole) bool {
	switch role {
	case PartyRoleTenant, PartyRoleLandlord, PartyRoleSublandlord, PartyRoleGuarantor:
		return true
	}
	return false
}

// RentBasis represents the unit a rent amount is quoted in
type RentBasis string

const (
	RentBasisMonth RentBasis = "month"
	RentBasisYear  RentBasis = "year"
)

// IsValidRentBasis checks if a rent basis is valid
func IsValidRentBasis(basis RentBasis) bool {
	return basis == RentBasisMonth || basis == RentBasisYear
}

// OptionKind represents the kind of lease option a window belongs to
type OptionKind string

const (
	OptionKindRenewal     OptionKind = "renewal"
	OptionKindTermination OptionKind = "termination"
	OptionKindExpansion   OptionKind = "expansion"
	OptionKindROFR        OptionKind = "rofr"
	OptionKindOther       OptionKind = "other"
)

// IsValidOptionKind checks if an option kind is valid
func IsValidOptionKind(kind OptionKind) bool {
	switch kind {
	case OptionKindRenewal, OptionKindTermination, OptionKindExpansion, OptionKindROFR, OptionKindOther:
		return true
	}
	return false
}

// ConcessionKind represents the kind of concession granted on a version
type ConcessionKind string

const (
	ConcessionKindTIAllowance ConcessionKind = "ti_allowance"
	ConcessionKindFreeRent    ConcessionKind = "free_rent"
	ConcessionKindOther       ConcessionKind = "other"
)

// IsValidConcessionKind checks if a concession kind is valid
func IsValidConcessionKind(kind ConcessionKind) bool {
	switch kind {
	case ConcessionKindTIAllowance, ConcessionKindFreeRent, ConcessionKindOther:
		return true
	}
	return false
}

// ConcessionBasis represents the unit system of a concession value
type ConcessionBasis string

const (
	ConcessionBasisTotal ConcessionBasis = "total"
	ConcessionBasisPerSF ConcessionBasis = "per_sf"
)

// IsValidConcessionBasis checks if a concession basis is valid
func IsValidConcessionBasis(basis ConcessionBasis) bool {
	return basis == ConcessionBasisTotal || basis == ConcessionBasisPerSF
}

// MilestoneKind represents the kind of lease-level milestone date
type MilestoneKind string

const (
	MilestoneKindCommencement MilestoneKind = "commencement"
	MilestoneKindRentStart    MilestoneKind = "rent_start"
	MilestoneKindExpiration   MilestoneKind = "expiration"
	MilestoneKindNotice       MilestoneKind = "notice"
	MilestoneKindOther        MilestoneKind = "other"
)

// IsValidMilestoneKind checks if a milestone kind is valid
func IsValidMilestoneKind(kind MilestoneKind) bool {
	switch kind {
	case MilestoneKindCommencement, MilestoneKindRentStart, MilestoneKindExpiration, MilestoneKindNotice, MilestoneKindOther:
		return true
	}
	return false
}

// EscalationMethod represents how rent escalates across a version's term
type EscalationMethod string

const (
	EscalationNone       EscalationMethod = "none"
	EscalationFixedSteps EscalationMethod = "fixed_steps"
	EscalationCPI        EscalationMethod = "cpi"
	EscalationFairMarket EscalationMethod = "fair_market"
)

// IsValidEscalationMethod checks if an escalation method is valid
func IsValidEscalationMethod(method EscalationMethod) bool {
	switch method {
	case EscalationNone, EscalationFixedSteps, EscalationCPI, EscalationFairMarket:
		return true
	}
	return false
}

// DateLayout is the wire format for date-valued fields
const DateLayout = "2006-01-02"

// DateRange is a half-open date interval [Start, End).
// Both bounds are UTC midnight instants; End is exclusive.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange constructs a DateRange, normalizing both bounds to UTC midnight
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Midnight(start), End: Midnight(end)}
}

// Valid reports whether the range is non-empty (Start < End)
func (r DateRange) Valid() bool {
	return r.Start.Before(r.End)
}

// Contains reports whether d falls inside the half-open interval (Start <= d < End)
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && d.Before(r.End)
}

// Overlaps reports whether two half-open intervals share any instant
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}

// Midnight truncates t to UTC midnight of the same calendar day
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date string into a UTC midnight instant
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}
