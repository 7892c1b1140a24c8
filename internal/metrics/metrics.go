// Package metrics computes point-in-time projections over lease state.
// Every function is pure: it takes loaded facts plus an explicit as-of date
// and derives its result on each call, so nothing here can go stale.
package metrics

import (
	"iter"
	"time"

	"github.com/keystone-cre/leaseledger/internal/domain"
	"github.com/keystone-cre/leaseledger/internal/store/schema"
)

// ResolveExpiration returns the lease's resolved expiration date: an explicit
// expiration milestone wins; otherwise the last day inside the current
// version's effective interval. Nil when the lease has neither.
// This is a fallback policy, recomputed on every read, not a cached field.
func ResolveExpiration(milestones []schema.MilestoneDate, current *schema.LeaseVersion) *time.Time {
	for _, m := range milestones {
		if m.Kind == domain.MilestoneKindExpiration {
			d := m.DateValue
			return &d
		}
	}
	if current == nil {
		return nil
	}
	d := current.EffectiveEnd.AddDate(0, 0, -1)
	return &d
}

// RentEquivalence is a rent period normalized to both monthly and annual terms
type RentEquivalence struct {
	Period  schema.RentPeriod
	Monthly float64
	Annual  float64
}

// CurrentRent returns the rent equivalence for the period containing asOf,
// or nil when no period contains it. A lease without current rent is simply
// omitted from rent-roll projections; that is not an error.
func CurrentRent(periods []schema.RentPeriod, asOf time.Time) *RentEquivalence {
	for _, p := range periods {
		if !p.PeriodRange().Contains(asOf) {
			continue
		}
		eq := RentEquivalence{Period: p}
		switch p.Basis {
		case domain.RentBasisYear:
			eq.Monthly = p.Amount / 12
			eq.Annual = p.Amount
		default:
			eq.Monthly = p.Amount
			eq.Annual = p.Amount * 12
		}
		return &eq
	}
	return nil
}

// NoticeWindowOpen reports whether the option's exercise window contains asOf,
// using half-open containment: start <= asOf < end.
func NoticeWindowOpen(w schema.OptionWindow, asOf time.Time) bool {
	return w.WindowRange().Contains(asOf)
}

// FreeRentRemaining returns the free rent remaining in months, or nil when the
// metric is undefined: the concession is not free rent, has no applies
// interval, or the interval has already run out as of asOf.
//
// The as-of day itself counts as consumed, so the remaining span runs from the
// day after asOf to the interval's exclusive upper bound, at 30 days per month.
func FreeRentRemaining(c schema.Concession, asOf time.Time) *float64 {
	if c.Kind != domain.ConcessionKindFreeRent {
		return nil
	}
	applies := c.AppliesRange()
	if applies == nil {
		return nil
	}
	if !applies.End.After(asOf) {
		return nil
	}

	days := applies.End.Sub(domain.Midnight(asOf).AddDate(0, 0, 1)).Hours() / 24
	if days < 0 {
		days = 0
	}
	months := days / 30
	return &months
}

// AllowanceSummary aggregates TI allowance concessions on a version.
//
// Flat holds the sum of total-basis entries. PerSFApplied holds per-square-foot
// entries multiplied by the version's demised area, bringing them into the same
// unit system before Total sums the two. The subtotals are reported so callers
// can see the composition rather than a single opaque number.
type AllowanceSummary struct {
	Total        float64 `json:"total"`
	Flat         float64 `json:"flat"`
	PerSFApplied float64 `json:"per_sf_applied"`
}

// AllowanceTotal aggregates TI allowance concessions scoped to a version
func AllowanceTotal(concessions []schema.Concession, versionArea float64) AllowanceSummary {
	var summary AllowanceSummary
	for _, c := range concessions {
		if c.Kind != domain.ConcessionKindTIAllowance {
			continue
		}
		if c.ValueBasis == domain.ConcessionBasisPerSF {
			summary.PerSFApplied += c.ValueAmount * versionArea
		} else {
			summary.Flat += c.ValueAmount
		}
	}
	summary.Total = summary.Flat + summary.PerSFApplied
	return summary
}

// HistoryEntry is one version in a lease's amendment history
type HistoryEntry struct {
	Version   schema.LeaseVersion
	Effective domain.DateRange
	Current   bool
}

// History yields a lease's versions in sequence order, each tagged with its
// resolved effective interval and whether it is the current version. The
// sequence is finite and restartable: ranging over it again replays from the
// first version.
func History(versions []schema.LeaseVersion, currentVersionID *uint64) iter.Seq[HistoryEntry] {
	return func(yield func(HistoryEntry) bool) {
		for _, v := range versions {
			entry := HistoryEntry{
				Version:   v,
				Effective: v.EffectiveRange(),
				Current:   currentVersionID != nil && *currentVersionID == v.ID,
			}
			if !yield(entry) {
				return
			}
		}
	}
}
