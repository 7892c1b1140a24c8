package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsValidPartyRole(t *testing.T) {
	tests := []struct {
		name     string
		role     PartyRole
		expected bool
	}{
		{name: "tenant", role: PartyRoleTenant, expected: true},
		{name: "landlord", role: PartyRoleLandlord, expected: true},
		{name: "sublandlord", role: PartyRoleSublandlord, expected: true},
		{name: "guarantor", role: PartyRoleGuarantor, expected: true},
		{name: "empty", role: PartyRole(""), expected: false},
		{name: "unknown", role: PartyRole("broker"), expected: false},
		{name: "wrong case", role: PartyRole("TENANT"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidPartyRole(tt.role))
		})
	}
}

func TestEnumValidators(t *testing.T) {
	assert.True(t, IsValidRentBasis(RentBasisMonth))
	assert.True(t, IsValidRentBasis(RentBasisYear))
	assert.False(t, IsValidRentBasis(RentBasis("weekly")))

	assert.True(t, IsValidOptionKind(OptionKindROFR))
	assert.False(t, IsValidOptionKind(OptionKind("purchase")))

	assert.True(t, IsValidConcessionKind(ConcessionKindFreeRent))
	assert.False(t, IsValidConcessionKind(ConcessionKind("")))

	assert.True(t, IsValidConcessionBasis(ConcessionBasisPerSF))
	assert.False(t, IsValidConcessionBasis(ConcessionBasis("per_unit")))

	assert.True(t, IsValidMilestoneKind(MilestoneKindRentStart))
	assert.False(t, IsValidMilestoneKind(MilestoneKind("delivery")))

	assert.True(t, IsValidEscalationMethod(EscalationCPI))
	assert.False(t, IsValidEscalationMethod(EscalationMethod("stepped")))
}

func TestDateRangeContains(t *testing.T) {
	r := NewDateRange(day(2024, 2, 1), day(2025, 2, 1))

	tests := []struct {
		name     string
		d        time.Time
		expected bool
	}{
		{name: "inclusive start", d: day(2024, 2, 1), expected: true},
		{name: "mid interval", d: day(2024, 8, 15), expected: true},
		{name: "exclusive end", d: day(2025, 2, 1), expected: false},
		{name: "before start", d: day(2024, 1, 31), expected: false},
		{name: "after end", d: day(2025, 2, 2), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Contains(tt.d))
		})
	}
}

func TestDateRangeOverlaps(t *testing.T) {
	base := NewDateRange(day(2024, 2, 1), day(2025, 2, 1))

	tests := []struct {
		name     string
		other    DateRange
		expected bool
	}{
		{name: "identical", other: base, expected: true},
		{name: "contained", other: NewDateRange(day(2024, 6, 1), day(2024, 9, 1)), expected: true},
		{name: "straddles start", other: NewDateRange(day(2023, 8, 1), day(2024, 8, 1)), expected: true},
		{name: "straddles end", other: NewDateRange(day(2024, 8, 1), day(2025, 8, 1)), expected: true},
		{name: "adjacent before", other: NewDateRange(day(2023, 2, 1), day(2024, 2, 1)), expected: false},
		{name: "adjacent after", other: NewDateRange(day(2025, 2, 1), day(2026, 2, 1)), expected: false},
		{name: "disjoint", other: NewDateRange(day(2026, 1, 1), day(2027, 1, 1)), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base.Overlaps(tt.other))
			assert.Equal(t, tt.expected, tt.other.Overlaps(base))
		})
	}
}

func TestDateRangeValid(t *testing.T) {
	assert.True(t, NewDateRange(day(2024, 1, 1), day(2024, 1, 2)).Valid())
	assert.False(t, NewDateRange(day(2024, 1, 1), day(2024, 1, 1)).Valid())
	assert.False(t, NewDateRange(day(2024, 1, 2), day(2024, 1, 1)).Valid())
}

func TestMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2024, 3, 15, 2, 30, 0, 0, loc) // 2024-03-14T21:30Z
	assert.Equal(t, day(2024, 3, 14), Midnight(in))

	assert.Equal(t, day(2024, 3, 15), Midnight(day(2024, 3, 15)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, day(2024, 2, 1), d)

	_, err = ParseDate("02/01/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrOverlapConflict))
	assert.True(t, IsRetryable(ErrCurrentVersionConflict))
	assert.False(t, IsRetryable(ErrNotFound))
	assert.False(t, IsRetryable(ErrDuplicate))
	assert.False(t, IsRetryable(nil))
}
