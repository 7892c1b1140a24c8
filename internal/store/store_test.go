package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/keystone-cre/leaseledger/internal/domain"
	"github.com/keystone-cre/leaseledger/internal/store/schema"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return d
}

func rangeOf(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	return domain.NewDateRange(date(t, start), date(t, end))
}

// leaseFixture holds the reference records a lease test needs
type leaseFixture struct {
	Property *schema.Property
	Suite    *schema.Suite
	Landlord *schema.Party
	Tenant   *schema.Party
}

func createLeaseFixture(t *testing.T, s Store) *leaseFixture {
	t.Helper()
	ctx := context.Background()

	property := &schema.Property{Name: "Keystone Plaza", TotalArea: 250000, Active: true}
	require.NoError(t, s.CreateProperty(ctx, property))

	suite := &schema.Suite{PropertyID: property.ID, Code: "1200", Area: 4000}
	require.NoError(t, s.CreateSuite(ctx, suite))

	landlord := &schema.Party{LegalName: "Keystone Holdings LLC", Role: domain.PartyRoleLandlord, Active: true}
	require.NoError(t, s.CreateParty(ctx, landlord))

	tenant := &schema.Party{LegalName: "Meridian Analytics Inc", Role: domain.PartyRoleTenant, Active: true}
	require.NoError(t, s.CreateParty(ctx, tenant))

	return &leaseFixture{Property: property, Suite: suite, Landlord: landlord, Tenant: tenant}
}

func createTestLease(t *testing.T, s Store, f *leaseFixture, externalNumber string) *schema.Lease {
	t.Helper()
	lease, err := s.CreateLease(context.Background(), CreateLeaseInput{
		PropertyID:     f.Property.ID,
		LandlordID:     f.Landlord.ID,
		TenantID:       f.Tenant.ID,
		ExternalNumber: externalNumber,
		ExecutionDate:  date(t, "2026-01-15"),
	})
	require.NoError(t, err)
	return lease
}

func buildTestVersion(t *testing.T, f *leaseFixture, start, end string) CreateVersionInput {
	t.Helper()
	return CreateVersionInput{
		Effective:        rangeOf(t, start, end),
		SuiteID:          f.Suite.ID,
		Area:             4000,
		TermMonths:       60,
		EscalationMethod: domain.EscalationFixedSteps,
	}
}

func testProperties(t *testing.T, s Store) {
	ctx := context.Background()

	property := &schema.Property{Name: "Harbor Point", TotalArea: 90000, Active: true}
	require.NoError(t, s.CreateProperty(ctx, property))
	require.NotZero(t, property.ID)

	got, err := s.GetProperty(ctx, property.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Harbor Point", got.Name)
	assert.Equal(t, 90000.0, got.TotalArea)

	got.TotalArea = 95000
	require.NoError(t, s.UpdateProperty(ctx, got))
	got, err = s.GetProperty(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, 95000.0, got.TotalArea)

	// Missing records read as nil, not as an error
	missing, err := s.GetProperty(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, s.DeleteProperty(ctx, property.ID))
	gone, err := s.GetProperty(ctx, property.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, s.DeleteProperty(ctx, property.ID), domain.ErrNotFound)
}

func testSuites(t *testing.T, s Store) {
	ctx := context.Background()

	property := &schema.Property{Name: "Gateway Center", TotalArea: 120000, Active: true}
	require.NoError(t, s.CreateProperty(ctx, property))

	suite := &schema.Suite{PropertyID: property.ID, Code: "400", Area: 2500}
	require.NoError(t, s.CreateSuite(ctx, suite))

	// (property_id, code) is unique
	duplicate := &schema.Suite{PropertyID: property.ID, Code: "400", Area: 1800}
	assert.ErrorIs(t, s.CreateSuite(ctx, duplicate), domain.ErrDuplicate)

	// Same code under another property is fine
	other := &schema.Property{Name: "Gateway Annex", TotalArea: 40000, Active: true}
	require.NoError(t, s.CreateProperty(ctx, other))
	require.NoError(t, s.CreateSuite(ctx, &schema.Suite{PropertyID: other.ID, Code: "400", Area: 900}))

	suites, err := s.ListSuitesByProperty(ctx, property.ID)
	require.NoError(t, err)
	assert.Len(t, suites, 1)

	// A property with suites cannot be deleted
	assert.ErrorIs(t, s.DeleteProperty(ctx, property.ID), domain.ErrReferenceInUse)

	require.NoError(t, s.DeleteSuite(ctx, suite.ID))
	require.NoError(t, s.DeleteProperty(ctx, property.ID))
}

func testParties(t *testing.T, s Store) {
	ctx := context.Background()

	party := &schema.Party{LegalName: "Beacon Retail Group", Role: domain.PartyRoleTenant, Active: true}
	require.NoError(t, s.CreateParty(ctx, party))

	got, err := s.GetParty(ctx, party.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.PartyRoleTenant, got.Role)

	got.Active = false
	require.NoError(t, s.UpdateParty(ctx, got))
	got, err = s.GetParty(ctx, party.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	require.NoError(t, s.DeleteParty(ctx, party.ID))
}

func testCreateLease(t *testing.T, s Store) {
	ctx := context.Background()
	f := createLeaseFixture(t, s)

	lease := createTestLease(t, s, f, "KP-2026-001")
	assert.Nil(t, lease.CurrentVersionID)
	assert.Equal(t, date(t, "2026-01-15"), lease.ExecutionDate.UTC())

	// (property_id, external_number) is unique
	_, err := s.CreateLease(ctx, CreateLeaseInput{
		PropertyID:     f.Property.ID,
		LandlordID:     f.Landlord.ID,
		TenantID:       f.Tenant.ID,
		ExternalNumber: "KP-2026-001",
		ExecutionDate:  date(t, "2026-02-01"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Dangling references fail as not found
	_, err = s.CreateLease(ctx, CreateLeaseInput{
		PropertyID:     999999,
		LandlordID:     f.Landlord.ID,
		TenantID:       f.Tenant.ID,
		ExternalNumber: "KP-2026-002",
		ExecutionDate:  date(t, "2026-02-01"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// A referenced party cannot be deleted
	assert.ErrorIs(t, s.DeleteParty(ctx, f.Tenant.ID), domain.ErrReferenceInUse)

	// Administrative edits to the shell
	lease.ExternalNumber = "KP-2026-001R"
	lease.ExecutionDate = date(t, "2026-01-20")
	require.NoError(t, s.UpdateLease(ctx, lease))
	updated, err := s.GetLease(ctx, lease.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "KP-2026-001R", updated.ExternalNumber)

	// Renumbering onto an existing lease number collides
	other := createTestLease(t, s, f, "KP-2026-003")
	other.ExternalNumber = "KP-2026-001R"
	assert.ErrorIs(t, s.UpdateLease(ctx, other), domain.ErrDuplicate)
	require.NoError(t, s.DeleteLease(ctx, other.ID))

	// A lease without versions can be deleted
	require.NoError(t, s.DeleteLease(ctx, lease.ID))
	got, err := s.GetLease(ctx, lease.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func testCreateLeaseWithVersion(t *testing.T, s Store) {
	ctx := context.Background()
	f := createLeaseFixture(t, s)

	leaseInput := CreateLeaseInput{
		PropertyID:     f.Property.ID,
		LandlordID:     f.Landlord.ID,
		TenantID:       f.Tenant.ID,
		ExternalNumber: "KP-2026-020",
		ExecutionDate:  date(t, "2026-01-15"),
	}

	// Shell and sequence-0 version land together
	versionInput := buildTestVersion(t, f, "2026-02-01", "2031-02-01")
	versionInput.RentPeriods = []CreateRentPeriodInput{
		{Period: rangeOf(t, "2026-02-01", "2031-02-01"), Amount: 12000, Basis: domain.RentBasisMonth},
	}
	lease, version, err := s.CreateLeaseWithVersion(ctx, leaseInput, versionInput)
	require.NoError(t, err)
	require.NotNil(t, lease.CurrentVersionID)
	assert.Equal(t, version.ID, *lease.CurrentVersionID)
	assert.Equal(t, 0, version.SequenceNum)
	periods, err := s.ListRentPeriods(ctx, version.ID)
	require.NoError(t, err)
	assert.Len(t, periods, 1)

	// A rejected initial version rolls the shell back too: no orphaned
	// lease, and the same external number remains free for a retry.
	badInput := buildTestVersion(t, f, "2026-02-01", "2031-02-01")
	badInput.RentPeriods = []CreateRentPeriodInput{
		{Period: rangeOf(t, "2026-02-01", "2027-02-01"), Amount: 12000, Basis: domain.RentBasisMonth},
		{Period: rangeOf(t, "2026-08-01", "2027-08-01"), Amount: 13000, Basis: domain.RentBasisMonth},
	}
	retryInput := leaseInput
	retryInput.ExternalNumber = "KP-2026-021"
	_, _, err = s.CreateLeaseWithVersion(ctx, retryInput, badInput)
	assert.ErrorIs(t, err, domain.ErrOverlapConflict)

	leases, total, err := s.ListLeases(ctx, LeaseQueryFilter{PropertyID: &f.Property.ID})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, leases, 1)
	assert.Equal(t, "KP-2026-020", leases[0].ExternalNumber)

	// The retry with a correct version succeeds
	goodRetry := buildTestVersion(t, f, "2026-02-01", "2031-02-01")
	lease2, version2, err := s.CreateLeaseWithVersion(ctx, retryInput, goodRetry)
	require.NoError(t, err)
	require.NotNil(t, lease2.CurrentVersionID)
	assert.Equal(t, version2.ID, *lease2.CurrentVersionID)
}

func testListLeases(t *testing.T, s Store) {
	ctx := context.Background()
	f := createLeaseFixture(t, s)

	createTestLease(t, s, f, "KP-2026-010")
	createTestLease(t, s, f, "KP-2026-011")

	otherTenant := &schema.Party{LegalName: "Solstice Labs", Role: domain.PartyRoleTenant, Active: true}
	require.NoError(t, s.CreateParty(ctx, otherTenant))
	_, err := s.CreateLease(ctx, CreateLeaseInput{
		PropertyID:     f.Property.ID,
		LandlordID:     f.Landlord.ID,
		TenantID:       otherTenant.ID,
		ExternalNumber: "KP-2026-012",
		ExecutionDate:  date(t, "2026-03-01"),
	})
	require.NoError(t, err)

	leases, total, err := s.ListLeases(ctx, LeaseQueryFilter{PropertyID: &f.Property.ID})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	assert.Len(t, leases, 3)

	leases, total, err = s.ListLeases(ctx, LeaseQueryFilter{PartyID: &otherTenant.ID})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, leases, 1)
	assert.Equal(t, "KP-2026-012", leases[0].ExternalNumber)

	// Pagination caps the page but reports the full count
	leases, total, err = s.ListLeases(ctx, LeaseQueryFilter{PropertyID: &f.Property.ID, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	assert.Len(t, leases, 2)
}

func testAmendmentProtocol(t *testing.T, s Store) {
	ctx := context.Background()
	f := createLeaseFixture(t, s)
	lease := createTestLease(t, s, f, "KP-2026-100")

	// No versions yet
	current, err := s.GetCurrentVersion(ctx, lease.ID)
	require.NoError(t, err)
	assert.Nil(t, current)

	// Original agreement: sequence 0, becomes current
	v0, err := s.CreateVersion(ctx, lease.ID, buildTestVersion(t, f, "2026-02-01", "2031-02-01"))
	require.NoError(t, err)
	assert.Equal(t, 0, v0.SequenceNum)

	current, err = s.GetCurrentVersion(ctx, lease.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, v0.ID, current.ID)

	// First amendment based on v0: sequence 1, repoints current
	input := buildTestVersion(t, f, "2027-02-01", "2032-02-01")
	input.PriorVersionID = &v0.ID
	input.Area = 5200
	v1, err := s.CreateVersion(ctx, lease.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 1, v1.SequenceNum)

	current, err = s.GetCurrentVersion(ctx, lease.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, v1.ID, current.ID)
	assert.Equal(t, 5200.0, current.Area)

	// An amendment based on a superseded version loses
	stale := buildTestVersion(t, f, "2027-06-01", "2032-06-01")
	stale.PriorVersionID = &v0.ID
	_, err = s.CreateVersion(ctx, lease.ID, stale)
	assert.ErrorIs(t, err, domain.ErrCurrentVersionConflict)
	assert.True(t, domain.IsRetryable(err))

	// So does one that observed no version at all
	_, err = s.CreateVersion(ctx, lease.ID, buildTestVersion(t, f, "2027-06-01", "2032-06-01"))
	assert.ErrorIs(t, err, domain.ErrCurrentVersionConflict)

	// The ledger holds exactly the committed versions, in sequence order
	versions, err := s.ListVersions(ctx, lease.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 0, versions[0].SequenceNum)
	assert.Equal(t, 1, versions[1].SequenceNum)

	// A lease with versions cannot be deleted
	assert.ErrorIs(t, s.DeleteLease(ctx, lease.ID), domain.ErrReferenceInUse)

	// Unknown lease
	_, err = s.CreateVersion(ctx, 999999, buildTestVersion(t, f, "2026-02-01", "2031-02-01"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GetCurrentVersion(ctx, 999999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testCreateVersionWithFacts(t *testing.T, s Store) {
	ctx := context.Background()
	f := createLeaseFixture(t, s)
	lease := createTestLease(t, s, f, "KP-2026-110")

	input := buildTestVersion(t, f, "2026-02-01", "2031-02-01")
	input.RentPeriods = []CreateRentPeriodInput{
		{Period: rangeOf(t, "2026-02-01", "2027-02-01"), Amount: 12000, Basis: domain.RentBasisMonth},
		{Period: rangeOf(t, "2027-02-01", "2031-02-01"), Amount: 150000, Basis: domain.RentBasisYear},
	}
	input.OptionWindows = []CreateOptionWindowInput{
		{Kind: domain.OptionKindRenewal, Window: rangeOf(t, "2030-02-01", "2030-08-01"), Terms: datatypes.JSON(`{"notice_months":6}`)},
	}
	applies := rangeOf(t, "2026-02-01", "2026-05-01")
	input.Concessions = []CreateConcessionInput{
		{Kind: domain.ConcessionKindFreeRent, ValueAmount: 12000, ValueBasis: domain.ConcessionBasisTotal, Applies: &applies},
	}

	version, err := s.CreateVersion(ctx, lease.ID, input)
	require.NoError(t, err)

	periods, err := s.ListRentPeriods(ctx, version.ID)
	require.NoError(t, err)
	assert.Len(t, periods, 2)
	windows, err := s.ListOptionWindows(ctx, version.ID)
	require.NoError(t, err)
	assert.Len(t, windows, 1)
	concessions, err := s.ListConcessions(ctx, version.ID)
	require.NoError(t, err)
	require.Len(t, concessions, 1)
	require.NotNil(t, concessions[0].AppliesStart)

	got, err := s.GetConcession(ctx, concessions[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.ConcessionKindFreeRent, got.Kind)

	newAmount := 15000.0
	newApplies := rangeOf(t, "2026-02-01", "2026-06-01")
	updatedConcession, err := s.UpdateConcession(ctx, got.ID, UpdateConcessionInput{
		ValueAmount: &newAmount,
		Applies:     &newApplies,
	})
	require.NoError(t, err)
	assert.Equal(t, 15000.0, updatedConcession.ValueAmount)
	require.NotNil(t, updatedConcession.AppliesEnd)
	assert.Equal(t, date(t, "2026-06-01"), updatedConcession.AppliesEnd.UTC())

	_, err = s.UpdateConcession(ctx, 999999, UpdateConcessionInput{ValueAmount: &newAmount})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Overlapping initial rent periods abort the whole amendment: no version,
	// no facts, current pointer unchanged.
	bad := buildTestVersion(t, f, "2027-02-01", "2032-02-01")
	bad.PriorVersionID = &version.ID
	bad.RentPeriods = []CreateRentPeriodInput{
		{Period: rangeOf(t, "2027-02-01", "2028-02-01"), Amount: 13000, Basis: domain.RentBasisMonth},
		{Period: rangeOf(t, "2027-08-01", "2028-08-01"), Amount: 14000, Basis: domain.RentBasisMonth},
	}
	_, err = s.CreateVersion(ctx, lease.ID, bad)
	assert.ErrorIs(t, err, domain.ErrOverlapConflict)

	versions, err := s.ListVersions(ctx, lease.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 1)
	current, err := s.GetCurrentVersion(ctx, lease.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, version.ID, current.ID)
}

func testRentPeriodNonOverlap(t *testing.T, s Store) {
	ctx := context.Background()
	f := createLeaseFixture(t, s)
	lease := createTestLease(t, s, f, "KP-2026-120")
	version, err := s.CreateVersion(ctx, lease.ID, buildTestVersion(t, f, "2026-01-01", "2031-01-01"))
	require.NoError(t, err)

	_, err = s.CreateRentPeriod(ctx, version.ID, CreateRentPeriodInput{
		Period: rangeOf(t, "2026-01-01", "2027-01-01"), Amount: 10000, Basis: domain.RentBasisMonth,
	})
	require.NoError(t, err)

	// Contained interval collides
	_, err = s.CreateRentPeriod(ctx, version.ID, CreateRentPeriodInput{
		Period: rangeOf(t, "2026-06-01", "2026-09-01"), Amount: 11000, Basis: domain.RentBasisMonth,
	})
	assert.ErrorIs(t, err, domain.ErrOverlapConflict)

	// Half-open adjacency does not: [a,b) then [b,c)
	_, err = s.CreateRentPeriod(ctx, version.ID, CreateRentPeriodInput{
		Period: rangeOf(t, "2027-01-01", "2027-07-01"), Amount: 10500, Basis: domain.RentBasisMonth,
	})
	require.NoError(t, err)

	// The failed insert changed nothing
	periods, err := s.ListRentPeriods(ctx, version.ID)
	require.NoError(t, err)
	assert.Len(t, periods, 2)

	// Empty interval is a validation error
	_, err = s.CreateRentPeriod(ctx, version.ID, CreateRentPeriodInput{
		Period: rangeOf(t, "2028-01-01", "2028-01-01"), Amount: 9000, Basis: domain.RentBasisMonth,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.CreateRentPeriod(ctx, 999999, CreateRentPeriodInput{
		Period: rangeOf(t, "2028-01-01", "2029-01-01"), Amount: 9000, Basis: domain.RentBasisMonth,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.DeleteRentPeriod(ctx, periods[0].ID))
	remaining, err := s.ListRentPeriods(ctx, version.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func testOptionWindows(t *testing.T, s Store) {
	ctx := context.Background()
	f := createLeaseFixture(t, s)
	lease := createTestLease(t, s, f, "KP-2026-130")
	version, err := s.CreateVersion(ctx, lease.ID, buildTestVersion(t, f, "2026-01-01", "2031-01-01"))
	require.NoError(t, err)

	window, err := s.CreateOptionWindow(ctx, version.ID, CreateOptionWindowInput{
		Kind:   domain.OptionKindRenewal,
		Window: rangeOf(t, "2030-01-01", "2030-07-01"),
		Terms:  datatypes.JSON(`{"term_months":60}`),
	})
	require.NoError(t, err)
	assert.False(t, window.Exercised)

	exercised := true
	exercisedDate := date(t, "2030-03-15")
	updated, err := s.UpdateOptionWindow(ctx, window.ID, UpdateOptionWindowInput{
		Exercised:     &exercised,
		ExercisedDate: &exercisedDate,
	})
	require.NoError(t, err)
	assert.True(t, updated.Exercised)
	require.NotNil(t, updated.ExercisedDate)

	// Un-exercising clears the stored exercise date along with the flag
	unexercised := false
	updated, err = s.UpdateOptionWindow(ctx, window.ID, UpdateOptionWindowInput{Exercised: &unexercised})
	require.NoError(t, err)
	assert.False(t, updated.Exercised)
	assert.Nil(t, updated.ExercisedDate)

	// Re-exercise for the sweep-scan assertions below
	updated, err = s.UpdateOptionWindow(ctx, window.ID, UpdateOptionWindowInput{
		Exercised:     &exercised,
		ExercisedDate: &exercisedDate,
	})
	require.NoError(t, err)
	require.True(t, updated.Exercised)

	// Exercised windows are excluded from the sweep scan
	touching, err := s.ListOptionWindowsTouching(ctx, date(t, "2030-01-01"), date(t, "2030-12-01"))
	require.NoError(t, err)
	for _, w := range touching {
		assert.NotEqual(t, window.ID, w.ID)
	}

	// An unexercised window overlapping the scan range is returned with its
	// version preloaded
	open, err := s.CreateOptionWindow(ctx, version.ID, CreateOptionWindowInput{
		Kind:   domain.OptionKindTermination,
		Window: rangeOf(t, "2029-06-01", "2029-12-01"),
	})
	require.NoError(t, err)
	touching, err = s.ListOptionWindowsTouching(ctx, date(t, "2029-11-01"), date(t, "2030-02-01"))
	require.NoError(t, err)
	found := false
	for _, w := range touching {
		if w.ID == open.ID {
			found = true
			assert.Equal(t, lease.ID, w.Version.LeaseID)
		}
	}
	assert.True(t, found)

	// Disjoint scan range returns nothing for this window
	touching, err = s.ListOptionWindowsTouching(ctx, date(t, "2029-12-01"), date(t, "2030-01-01"))
	require.NoError(t, err)
	for _, w := range touching {
		assert.NotEqual(t, open.ID, w.ID)
	}

	require.NoError(t, s.DeleteOptionWindow(ctx, open.ID))
	assert.ErrorIs(t, s.DeleteOptionWindow(ctx, open.ID), domain.ErrNotFound)
}

func testMilestonesAndDocuments(t *testing.T, s Store) {
	ctx := context.Background()
	f := createLeaseFixture(t, s)
	lease := createTestLease(t, s, f, "KP-2026-140")

	milestone := &schema.MilestoneDate{LeaseID: lease.ID, Kind: domain.MilestoneKindCommencement, DateValue: date(t, "2026-02-01")}
	require.NoError(t, s.CreateMilestone(ctx, milestone))
	expiration := &schema.MilestoneDate{LeaseID: lease.ID, Kind: domain.MilestoneKindExpiration, DateValue: date(t, "2031-01-31")}
	require.NoError(t, s.CreateMilestone(ctx, expiration))

	milestones, err := s.ListMilestones(ctx, lease.ID)
	require.NoError(t, err)
	assert.Len(t, milestones, 2)

	expiration.DateValue = date(t, "2032-01-31")
	require.NoError(t, s.UpdateMilestone(ctx, expiration))
	got, err := s.GetMilestone(ctx, expiration.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, date(t, "2032-01-31"), got.DateValue.UTC())

	require.NoError(t, s.DeleteMilestone(ctx, milestone.ID))

	doc := &schema.DocumentLink{LeaseID: lease.ID, Label: "Second Amendment", ExternalRef: "dms://leases/KP-2026-140/amend-2.pdf"}
	require.NoError(t, s.CreateDocumentLink(ctx, doc))
	docs, err := s.ListDocumentLinks(ctx, lease.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	doc.Label = "Second Amendment (executed)"
	require.NoError(t, s.UpdateDocumentLink(ctx, doc))
	gotDoc, err := s.GetDocumentLink(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, gotDoc)
	assert.Equal(t, "Second Amendment (executed)", gotDoc.Label)

	require.NoError(t, s.DeleteDocumentLink(ctx, doc.ID))
}

func testGetLeaseSnapshot(t *testing.T, s Store) {
	ctx := context.Background()
	f := createLeaseFixture(t, s)
	lease := createTestLease(t, s, f, "KP-2026-150")

	// Snapshot of a version-less lease has no current state
	snapshot, err := s.GetLeaseSnapshot(ctx, lease.ID)
	require.NoError(t, err)
	assert.Nil(t, snapshot.CurrentVersion)

	input := buildTestVersion(t, f, "2026-02-01", "2031-02-01")
	input.RentPeriods = []CreateRentPeriodInput{
		{Period: rangeOf(t, "2026-02-01", "2031-02-01"), Amount: 12000, Basis: domain.RentBasisMonth},
	}
	version, err := s.CreateVersion(ctx, lease.ID, input)
	require.NoError(t, err)

	require.NoError(t, s.CreateMilestone(ctx, &schema.MilestoneDate{
		LeaseID: lease.ID, Kind: domain.MilestoneKindExpiration, DateValue: date(t, "2031-01-31"),
	}))

	snapshot, err = s.GetLeaseSnapshot(ctx, lease.ID)
	require.NoError(t, err)
	require.NotNil(t, snapshot.CurrentVersion)
	assert.Equal(t, version.ID, snapshot.CurrentVersion.ID)
	assert.Len(t, snapshot.RentPeriods, 1)
	assert.Len(t, snapshot.Milestones, 1)

	_, err = s.GetLeaseSnapshot(ctx, 999999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// RunStoreTests runs the store test suite against a fresh store per test
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s Store)
	}{
		{"Properties", testProperties},
		{"Suites", testSuites},
		{"Parties", testParties},
		{"CreateLease", testCreateLease},
		{"CreateLeaseWithVersion", testCreateLeaseWithVersion},
		{"ListLeases", testListLeases},
		{"AmendmentProtocol", testAmendmentProtocol},
		{"CreateVersionWithFacts", testCreateVersionWithFacts},
		{"RentPeriodNonOverlap", testRentPeriodNonOverlap},
		{"OptionWindows", testOptionWindows},
		{"MilestonesAndDocuments", testMilestonesAndDocuments},
		{"GetLeaseSnapshot", testGetLeaseSnapshot},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, initDB(t))
		})
	}
}
