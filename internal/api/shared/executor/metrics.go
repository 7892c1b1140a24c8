package executor

import (
	"context"
	"time"

	"github.com/keystone-cre/leaseledger/internal/api/shared/dto"
	"github.com/keystone-cre/leaseledger/internal/domain"
	"github.com/keystone-cre/leaseledger/internal/metrics"
	"github.com/keystone-cre/leaseledger/internal/store"
)

// rentRollEntry projects one snapshot onto the rent roll, or nil when no rent
// period contains asOf
func rentRollEntry(snapshot *store.LeaseSnapshot, asOf time.Time) *dto.RentRollEntry {
	if snapshot.CurrentVersion == nil {
		return nil
	}
	eq := metrics.CurrentRent(snapshot.RentPeriods, asOf)
	if eq == nil {
		return nil
	}
	return &dto.RentRollEntry{
		LeaseID:        snapshot.Lease.ID,
		ExternalNumber: snapshot.Lease.ExternalNumber,
		PropertyID:     snapshot.Lease.PropertyID,
		VersionID:      snapshot.CurrentVersion.ID,
		RentPeriodID:   eq.Period.ID,
		Amount:         eq.Period.Amount,
		Basis:          string(eq.Period.Basis),
		Monthly:        eq.Monthly,
		Annual:         eq.Annual,
	}
}

// forEachSnapshot streams current-state snapshots for every lease matching the
// filter. Portfolio metrics are computed lease by lease rather than by joining
// in SQL so they share the same pure projection functions the single-lease
// endpoint uses.
func (e *executorImpl) forEachSnapshot(ctx context.Context, filter store.LeaseQueryFilter, visit func(*store.LeaseSnapshot)) error {
	leases, _, err := e.store.ListLeases(ctx, filter)
	if err != nil {
		return mapStoreError(err, "lease not found")
	}
	for i := range leases {
		snapshot, err := e.store.GetLeaseSnapshot(ctx, leases[i].ID)
		if err != nil {
			return mapStoreError(err, "lease not found")
		}
		visit(snapshot)
	}
	return nil
}

func (e *executorImpl) GetRentRoll(ctx context.Context, asOf string, filter store.LeaseQueryFilter) (*dto.RentRollResponse, error) {
	at, err := e.resolveAsOf(asOf)
	if err != nil {
		return nil, err
	}
	resp := &dto.RentRollResponse{
		AsOf:    at.Format(domain.DateLayout),
		Entries: []dto.RentRollEntry{},
	}
	err = e.forEachSnapshot(ctx, filter, func(snapshot *store.LeaseSnapshot) {
		if entry := rentRollEntry(snapshot, at); entry != nil {
			resp.Entries = append(resp.Entries, *entry)
		}
	})
	if err != nil {
		return nil, err
	}
	resp.Total = len(resp.Entries)
	return resp, nil
}

func (e *executorImpl) GetExpirations(ctx context.Context, asOf string, lookahead time.Duration, filter store.LeaseQueryFilter) (*dto.ExpirationsResponse, error) {
	at, err := e.resolveAsOf(asOf)
	if err != nil {
		return nil, err
	}
	until := at.Add(lookahead)
	resp := &dto.ExpirationsResponse{
		AsOf:    at.Format(domain.DateLayout),
		Until:   until.Format(domain.DateLayout),
		Entries: []dto.ExpirationEntry{},
	}
	err = e.forEachSnapshot(ctx, filter, func(snapshot *store.LeaseSnapshot) {
		expiration := metrics.ResolveExpiration(snapshot.Milestones, snapshot.CurrentVersion)
		if expiration == nil || expiration.Before(at) || !expiration.Before(until) {
			return
		}
		source := "version"
		for _, m := range snapshot.Milestones {
			if m.Kind == domain.MilestoneKindExpiration {
				source = "milestone"
				break
			}
		}
		var versionID uint64
		if snapshot.CurrentVersion != nil {
			versionID = snapshot.CurrentVersion.ID
		}
		resp.Entries = append(resp.Entries, dto.ExpirationEntry{
			LeaseID:        snapshot.Lease.ID,
			ExternalNumber: snapshot.Lease.ExternalNumber,
			VersionID:      versionID,
			ExpirationDate: expiration.Format(domain.DateLayout),
			Source:         source,
		})
	})
	if err != nil {
		return nil, err
	}
	resp.Total = len(resp.Entries)
	return resp, nil
}

func (e *executorImpl) GetOpenNoticeWindows(ctx context.Context, asOf string, filter store.LeaseQueryFilter) (*dto.NoticeWindowsResponse, error) {
	at, err := e.resolveAsOf(asOf)
	if err != nil {
		return nil, err
	}
	resp := &dto.NoticeWindowsResponse{
		AsOf:    at.Format(domain.DateLayout),
		Entries: []dto.NoticeWindowEntry{},
	}
	err = e.forEachSnapshot(ctx, filter, func(snapshot *store.LeaseSnapshot) {
		for _, w := range snapshot.OptionWindows {
			if w.Exercised || !metrics.NoticeWindowOpen(w, at) {
				continue
			}
			resp.Entries = append(resp.Entries, dto.NoticeWindowEntry{
				LeaseID:        snapshot.Lease.ID,
				ExternalNumber: snapshot.Lease.ExternalNumber,
				VersionID:      w.VersionID,
				OptionWindowID: w.ID,
				Kind:           string(w.Kind),
				WindowStart:    w.WindowStart.Format(domain.DateLayout),
				WindowEnd:      w.WindowEnd.Format(domain.DateLayout),
			})
		}
	})
	if err != nil {
		return nil, err
	}
	resp.Total = len(resp.Entries)
	return resp, nil
}

func (e *executorImpl) GetFreeRent(ctx context.Context, asOf string, filter store.LeaseQueryFilter) (*dto.FreeRentResponse, error) {
	at, err := e.resolveAsOf(asOf)
	if err != nil {
		return nil, err
	}
	resp := &dto.FreeRentResponse{
		AsOf:    at.Format(domain.DateLayout),
		Entries: []dto.FreeRentEntry{},
	}
	err = e.forEachSnapshot(ctx, filter, func(snapshot *store.LeaseSnapshot) {
		for _, c := range snapshot.Concessions {
			remaining := metrics.FreeRentRemaining(c, at)
			if remaining == nil {
				continue
			}
			resp.Entries = append(resp.Entries, dto.FreeRentEntry{
				LeaseID:         snapshot.Lease.ID,
				ExternalNumber:  snapshot.Lease.ExternalNumber,
				VersionID:       c.VersionID,
				ConcessionID:    c.ID,
				RemainingMonths: *remaining,
			})
		}
	})
	if err != nil {
		return nil, err
	}
	resp.Total = len(resp.Entries)
	return resp, nil
}

func (e *executorImpl) GetAllowances(ctx context.Context, filter store.LeaseQueryFilter) (*dto.AllowancesResponse, error) {
	resp := &dto.AllowancesResponse{Entries: []dto.AllowanceEntry{}}
	err := e.forEachSnapshot(ctx, filter, func(snapshot *store.LeaseSnapshot) {
		if snapshot.CurrentVersion == nil {
			return
		}
		summary := metrics.AllowanceTotal(snapshot.Concessions, snapshot.CurrentVersion.Area)
		if summary.Total == 0 {
			return
		}
		resp.Entries = append(resp.Entries, dto.AllowanceEntry{
			LeaseID:        snapshot.Lease.ID,
			ExternalNumber: snapshot.Lease.ExternalNumber,
			VersionID:      snapshot.CurrentVersion.ID,
			Total:          summary.Total,
			Flat:           summary.Flat,
			PerSFApplied:   summary.PerSFApplied,
		})
	})
	if err != nil {
		return nil, err
	}
	resp.Total = len(resp.Entries)
	return resp, nil
}

func (e *executorImpl) GetLeaseMetrics(ctx context.Context, leaseID uint64, asOf string) (*dto.LeaseMetricsResponse, error) {
	at, err := e.resolveAsOf(asOf)
	if err != nil {
		return nil, err
	}
	snapshot, err := e.store.GetLeaseSnapshot(ctx, leaseID)
	if err != nil {
		return nil, mapStoreError(err, "lease not found")
	}

	resp := &dto.LeaseMetricsResponse{
		LeaseID:     leaseID,
		AsOf:        at.Format(domain.DateLayout),
		FreeRent:    []dto.FreeRentEntry{},
		OpenWindows: []dto.NoticeWindowEntry{},
	}
	if expiration := metrics.ResolveExpiration(snapshot.Milestones, snapshot.CurrentVersion); expiration != nil {
		formatted := expiration.Format(domain.DateLayout)
		resp.ExpirationDate = &formatted
	}
	resp.CurrentRent = rentRollEntry(snapshot, at)
	for _, c := range snapshot.Concessions {
		if remaining := metrics.FreeRentRemaining(c, at); remaining != nil {
			resp.FreeRent = append(resp.FreeRent, dto.FreeRentEntry{
				LeaseID:         leaseID,
				ExternalNumber:  snapshot.Lease.ExternalNumber,
				VersionID:       c.VersionID,
				ConcessionID:    c.ID,
				RemainingMonths: *remaining,
			})
		}
	}
	for _, w := range snapshot.OptionWindows {
		if w.Exercised || !metrics.NoticeWindowOpen(w, at) {
			continue
		}
		resp.OpenWindows = append(resp.OpenWindows, dto.NoticeWindowEntry{
			LeaseID:        leaseID,
			ExternalNumber: snapshot.Lease.ExternalNumber,
			VersionID:      w.VersionID,
			OptionWindowID: w.ID,
			Kind:           string(w.Kind),
			WindowStart:    w.WindowStart.Format(domain.DateLayout),
			WindowEnd:      w.WindowEnd.Format(domain.DateLayout),
		})
	}
	if snapshot.CurrentVersion != nil {
		versionID := snapshot.CurrentVersion.ID
		resp.VersionID = &versionID
		summary := metrics.AllowanceTotal(snapshot.Concessions, snapshot.CurrentVersion.Area)
		if summary.Total > 0 {
			resp.Allowances = &dto.AllowanceEntry{
				LeaseID:        leaseID,
				ExternalNumber: snapshot.Lease.ExternalNumber,
				VersionID:      versionID,
				Total:          summary.Total,
				Flat:           summary.Flat,
				PerSFApplied:   summary.PerSFApplied,
			}
		}
	}
	return resp, nil
}
