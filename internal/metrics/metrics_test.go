package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone-cre/leaseledger/internal/domain"
	"github.com/keystone-cre/leaseledger/internal/store/schema"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveExpiration(t *testing.T) {
	current := &schema.LeaseVersion{
		ID:             1,
		EffectiveStart: date(2024, 2, 1),
		EffectiveEnd:   date(2029, 2, 1),
	}

	tests := []struct {
		name       string
		milestones []schema.MilestoneDate
		current    *schema.LeaseVersion
		expected   *time.Time
	}{
		{
			name: "expiration milestone wins over version interval",
			milestones: []schema.MilestoneDate{
				{Kind: domain.MilestoneKindCommencement, DateValue: date(2024, 2, 1)},
				{Kind: domain.MilestoneKindExpiration, DateValue: date(2030, 6, 30)},
			},
			current:  current,
			expected: timePtr(date(2030, 6, 30)),
		},
		{
			name:       "falls back to day before effective end",
			milestones: []schema.MilestoneDate{{Kind: domain.MilestoneKindCommencement, DateValue: date(2024, 2, 1)}},
			current:    current,
			expected:   timePtr(date(2029, 1, 31)),
		},
		{
			name:       "no milestone and no version",
			milestones: nil,
			current:    nil,
			expected:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResolveExpiration(tt.milestones, tt.current)
			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.True(t, tt.expected.Equal(*result), "expected %s, got %s", tt.expected, result)
		})
	}
}

func TestResolveExpirationDeterministic(t *testing.T) {
	milestones := []schema.MilestoneDate{{Kind: domain.MilestoneKindExpiration, DateValue: date(2030, 6, 30)}}
	current := &schema.LeaseVersion{EffectiveStart: date(2024, 2, 1), EffectiveEnd: date(2029, 2, 1)}

	first := ResolveExpiration(milestones, current)
	for range 5 {
		again := ResolveExpiration(milestones, current)
		require.NotNil(t, again)
		assert.True(t, first.Equal(*again))
	}
}

func TestCurrentRent(t *testing.T) {
	periods := []schema.RentPeriod{
		{ID: 1, PeriodStart: date(2024, 2, 1), PeriodEnd: date(2025, 2, 1), Amount: 5000, Basis: domain.RentBasisMonth},
		{ID: 2, PeriodStart: date(2025, 2, 1), PeriodEnd: date(2026, 2, 1), Amount: 66000, Basis: domain.RentBasisYear},
	}

	tests := []struct {
		name            string
		asOf            time.Time
		expectedID      uint64
		expectedMonthly float64
		expectedAnnual  float64
		none            bool
	}{
		{
			name:            "month basis period",
			asOf:            date(2024, 6, 15),
			expectedID:      1,
			expectedMonthly: 5000,
			expectedAnnual:  60000,
		},
		{
			name:            "year basis period",
			asOf:            date(2025, 6, 15),
			expectedID:      2,
			expectedMonthly: 5500,
			expectedAnnual:  66000,
		},
		{
			name:            "boundary day belongs to the later period",
			asOf:            date(2025, 2, 1),
			expectedID:      2,
			expectedMonthly: 5500,
			expectedAnnual:  66000,
		},
		{
			name: "no containing period",
			asOf: date(2027, 1, 1),
			none: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CurrentRent(periods, tt.asOf)
			if tt.none {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.Equal(t, tt.expectedID, result.Period.ID)
			assert.InDelta(t, tt.expectedMonthly, result.Monthly, 1e-9)
			assert.InDelta(t, tt.expectedAnnual, result.Annual, 1e-9)
		})
	}
}

func TestRentEquivalenceRoundTrip(t *testing.T) {
	// YEAR amount A converted to monthly and back to annual recovers A
	annual := 87654.0
	periods := []schema.RentPeriod{
		{PeriodStart: date(2024, 1, 1), PeriodEnd: date(2025, 1, 1), Amount: annual, Basis: domain.RentBasisYear},
	}
	eq := CurrentRent(periods, date(2024, 7, 1))
	require.NotNil(t, eq)
	assert.InDelta(t, annual, eq.Monthly*12, 1e-9)
	assert.InDelta(t, annual, eq.Annual, 1e-9)
}

func TestNoticeWindowOpen(t *testing.T) {
	window := schema.OptionWindow{
		Kind:        domain.OptionKindRenewal,
		WindowStart: date(2028, 7, 1),
		WindowEnd:   date(2028, 12, 31),
	}

	tests := []struct {
		name     string
		asOf     time.Time
		expected bool
	}{
		{name: "inside window", asOf: date(2028, 9, 1), expected: true},
		{name: "after window", asOf: date(2029, 1, 1), expected: false},
		{name: "on start day", asOf: date(2028, 7, 1), expected: true},
		{name: "on exclusive end day", asOf: date(2028, 12, 31), expected: false},
		{name: "before window", asOf: date(2028, 6, 30), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NoticeWindowOpen(window, tt.asOf))
		})
	}
}

func TestFreeRentRemaining(t *testing.T) {
	freeRent := schema.Concession{
		Kind:         domain.ConcessionKindFreeRent,
		AppliesStart: timePtr(date(2024, 2, 1)),
		AppliesEnd:   timePtr(date(2024, 5, 1)),
	}

	tests := []struct {
		name       string
		concession schema.Concession
		asOf       time.Time
		expected   *float64
	}{
		{
			name:       "mid interval",
			concession: freeRent,
			asOf:       date(2024, 4, 16),
			expected:   floatPtr(14.0 / 30),
		},
		{
			name:       "interval exhausted",
			concession: freeRent,
			asOf:       date(2024, 6, 1),
			expected:   nil,
		},
		{
			name:       "as-of on exclusive upper bound",
			concession: freeRent,
			asOf:       date(2024, 5, 1),
			expected:   nil,
		},
		{
			name: "no applies interval",
			concession: schema.Concession{
				Kind: domain.ConcessionKindFreeRent,
			},
			asOf:     date(2024, 3, 1),
			expected: nil,
		},
		{
			name: "not free rent",
			concession: schema.Concession{
				Kind:         domain.ConcessionKindTIAllowance,
				AppliesStart: timePtr(date(2024, 2, 1)),
				AppliesEnd:   timePtr(date(2024, 5, 1)),
			},
			asOf:     date(2024, 3, 1),
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FreeRentRemaining(tt.concession, tt.asOf)
			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.InDelta(t, *tt.expected, *result, 1e-9)
		})
	}
}

func TestFreeRentRemainingScenarioValue(t *testing.T) {
	// [2024-02-01, 2024-05-01) as of 2024-04-16 leaves roughly 0.47 months
	c := schema.Concession{
		Kind:         domain.ConcessionKindFreeRent,
		AppliesStart: timePtr(date(2024, 2, 1)),
		AppliesEnd:   timePtr(date(2024, 5, 1)),
	}
	remaining := FreeRentRemaining(c, date(2024, 4, 16))
	require.NotNil(t, remaining)
	assert.InDelta(t, 0.47, *remaining, 0.01)
}

func TestAllowanceTotal(t *testing.T) {
	concessions := []schema.Concession{
		{Kind: domain.ConcessionKindTIAllowance, ValueAmount: 100000, ValueBasis: domain.ConcessionBasisTotal},
		{Kind: domain.ConcessionKindTIAllowance, ValueAmount: 25, ValueBasis: domain.ConcessionBasisPerSF},
		{Kind: domain.ConcessionKindFreeRent, ValueAmount: 5000, ValueBasis: domain.ConcessionBasisTotal},
		{Kind: domain.ConcessionKindOther, ValueAmount: 999, ValueBasis: domain.ConcessionBasisPerSF},
	}

	summary := AllowanceTotal(concessions, 4000)

	assert.InDelta(t, 100000.0, summary.Flat, 1e-9)
	assert.InDelta(t, 100000.0, summary.PerSFApplied, 1e-9) // 25/sf over 4,000 sf
	assert.InDelta(t, 200000.0, summary.Total, 1e-9)
}

func TestAllowanceTotalEmpty(t *testing.T) {
	summary := AllowanceTotal(nil, 4000)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Flat)
	assert.Zero(t, summary.PerSFApplied)
}

func TestHistory(t *testing.T) {
	currentID := uint64(12)
	versions := []schema.LeaseVersion{
		{ID: 10, SequenceNum: 0, EffectiveStart: date(2024, 2, 1), EffectiveEnd: date(2029, 2, 1)},
		{ID: 11, SequenceNum: 1, EffectiveStart: date(2029, 2, 1), EffectiveEnd: date(2032, 2, 1)},
		{ID: 12, SequenceNum: 2, EffectiveStart: date(2032, 2, 1), EffectiveEnd: date(2035, 2, 1)},
	}

	var entries []HistoryEntry
	for entry := range History(versions, &currentID) {
		entries = append(entries, entry)
	}

	require.Len(t, entries, 3)
	for i, entry := range entries {
		assert.Equal(t, i, entry.Version.SequenceNum)
		assert.Equal(t, versions[i].EffectiveStart, entry.Effective.Start)
		assert.Equal(t, versions[i].EffectiveEnd, entry.Effective.End)
		assert.Equal(t, entry.Version.ID == currentID, entry.Current)
	}

	// Restartable: a second pass replays from the first version
	seq := History(versions, &currentID)
	var first *HistoryEntry
	for entry := range seq {
		first = &entry
		break
	}
	require.NotNil(t, first)
	assert.Equal(t, uint64(10), first.Version.ID)

	count := 0
	for range seq {
		count++
	}
	assert.Equal(t, 3, count)
}

func TestHistoryEarlyStop(t *testing.T) {
	versions := []schema.LeaseVersion{
		{ID: 1, SequenceNum: 0},
		{ID: 2, SequenceNum: 1},
	}

	visited := 0
	for range History(versions, nil) {
		visited++
		break
	}
	assert.Equal(t, 1, visited)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func floatPtr(f float64) *float64 {
	return &f
}
