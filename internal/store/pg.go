package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/keystone-cre/leaseledger/internal/domain"
	"github.com/keystone-cre/leaseledger/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the engine's tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Property{},
		&schema.Suite{},
		&schema.Party{},
		&schema.Lease{},
		&schema.LeaseVersion{},
		&schema.RentPeriod{},
		&schema.OptionWindow{},
		&schema.Concession{},
		&schema.MilestoneDate{},
		&schema.DocumentLink{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults: 20 open, 5 idle,
// 5m lifetime, 10m idle time.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateWriteError maps Postgres constraint violations on inserts/updates to
// domain errors: unique collisions to ErrDuplicate, foreign-key failures to
// ErrNotFound (the referenced parent is absent).
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, pgErr.ConstraintName)
		}
	}
	return err
}

// translateDeleteError maps foreign-key violations on deletes to
// ErrReferenceInUse: a dependent record blocks the delete.
func translateDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return fmt.Errorf("%w: %s", domain.ErrReferenceInUse, pgErr.ConstraintName)
	}
	return err
}

// =============================================================================
// Reference store: Property
// =============================================================================

func (s *pgStore) CreateProperty(ctx context.Context, p *schema.Property) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", translateWriteError(err))
	}
	return nil
}

func (s *pgStore) GetProperty(ctx context.Context, id uint64) (*schema.Property, error) {
	var p schema.Property
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &p, nil
}

func (s *pgStore) UpdateProperty(ctx context.Context, p *schema.Property) error {
	res := s.db.WithContext(ctx).Model(&schema.Property{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{"name": p.Name, "total_area": p.TotalArea, "active": p.Active})
	if res.Error != nil {
		return fmt.Errorf("failed to update property: %w", translateWriteError(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *pgStore) DeleteProperty(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&schema.Property{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete property: %w", translateDeleteError(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// =============================================================================
// Reference store: Suite
// =============================================================================

func (s *pgStore) CreateSuite(ctx context.Context, suite *schema.Suite) error {
	if err := s.db.WithContext(ctx).Create(suite).Error; err != nil {
		return fmt.Errorf("failed to create suite: %w", translateWriteError(err))
	}
	return nil
}

func (s *pgStore) GetSuite(ctx context.Context, id uint64) (*schema.Suite, error) {
	var suite schema.Suite
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&suite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get suite: %w", err)
	}
	return &suite, nil
}

func (s *pgStore) ListSuitesByProperty(ctx context.Context, propertyID uint64) ([]schema.Suite, error) {
	var suites []schema.Suite
	err := s.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("code ASC").
		Find(&suites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list suites: %w", err)
	}
	return suites, nil
}

func (s *pgStore) UpdateSuite(ctx context.Context, suite *schema.Suite) error {
	res := s.db.WithContext(ctx).Model(&schema.Suite{}).
		Where("id = ?", suite.ID).
		Updates(map[string]any{"code": suite.Code, "area": suite.Area})
	if res.Error != nil {
		return fmt.Errorf("failed to update suite: %w", translateWriteError(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *pgStore) DeleteSuite(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&schema.Suite{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete suite: %w", translateDeleteError(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// =============================================================================
// Reference store: Party
// =============================================================================

func (s *pgStore) CreateParty(ctx context.Context, p *schema.Party) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create party: %w", translateWriteError(err))
	}
	return nil
}

func (s *pgStore) GetParty(ctx context.Context, id uint64) (*schema.Party, error) {
	var p schema.Party
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get party: %w", err)
	}
	return &p, nil
}

func (s *pgStore) UpdateParty(ctx context.Context, p *schema.Party) error {
	res := s.db.WithContext(ctx).Model(&schema.Party{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{"legal_name": p.LegalName, "role": p.Role, "active": p.Active})
	if res.Error != nil {
		return fmt.Errorf("failed to update party: %w", translateWriteError(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *pgStore) DeleteParty(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&schema.Party{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete party: %w", translateDeleteError(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// =============================================================================
// Lease shell
// =============================================================================

func (s *pgStore) CreateLease(ctx context.Context, input CreateLeaseInput) (*schema.Lease, error) {
	lease := schema.Lease{
		PropertyID:     input.PropertyID,
		LandlordID:     input.LandlordID,
		TenantID:       input.TenantID,
		ExternalNumber: input.ExternalNumber,
		ExecutionDate:  domain.Midnight(input.ExecutionDate),
	}
	if err := s.db.WithContext(ctx).Create(&lease).Error; err != nil {
		return nil, fmt.Errorf("failed to create lease: %w", translateWriteError(err))
	}
	return &lease, nil
}

// CreateLeaseWithVersion creates a lease shell and its sequence-0 version in
// one transaction, so a rejected initial version (overlapping rent periods,
// dangling suite) leaves no orphaned shell behind.
func (s *pgStore) CreateLeaseWithVersion(ctx context.Context, input CreateLeaseInput, versionInput CreateVersionInput) (*schema.Lease, *schema.LeaseVersion, error) {
	if !versionInput.Effective.Valid() {
		return nil, nil, fmt.Errorf("%w: effective interval %s is empty", domain.ErrValidation, versionInput.Effective)
	}

	lease := schema.Lease{
		PropertyID:     input.PropertyID,
		LandlordID:     input.LandlordID,
		TenantID:       input.TenantID,
		ExternalNumber: input.ExternalNumber,
		ExecutionDate:  domain.Midnight(input.ExecutionDate),
	}
	var version schema.LeaseVersion
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lease).Error; err != nil {
			return fmt.Errorf("failed to create lease: %w", translateWriteError(err))
		}
		var err error
		version, err = createVersionInTx(tx, lease.ID, versionInput)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	lease.CurrentVersionID = &version.ID
	return &lease, &version, nil
}

func (s *pgStore) GetLease(ctx context.Context, id uint64) (*schema.Lease, error) {
	var lease schema.Lease
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&lease).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lease: %w", err)
	}
	return &lease, nil
}

func (s *pgStore) ListLeases(ctx context.Context, filter LeaseQueryFilter) ([]schema.Lease, uint64, error) {
	q := s.db.WithContext(ctx).Model(&schema.Lease{})
	if filter.PropertyID != nil {
		q = q.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.PartyID != nil {
		q = q.Where("landlord_id = ? OR tenant_id = ?", *filter.PartyID, *filter.PartyID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count leases: %w", err)
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var leases []schema.Lease
	if err := q.Order("id ASC").Find(&leases).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list leases: %w", err)
	}
	return leases, uint64(total), nil //nolint:gosec,G115
}

func (s *pgStore) UpdateLease(ctx context.Context, l *schema.Lease) error {
	res := s.db.WithContext(ctx).Model(&schema.Lease{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{"external_number": l.ExternalNumber, "execution_date": domain.Midnight(l.ExecutionDate)})
	if res.Error != nil {
		return fmt.Errorf("failed to update lease: %w", translateWriteError(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLease removes a lease shell. A lease that has versions cannot be
// deleted; history is corrected by superseding versions, never by removal.
func (s *pgStore) DeleteLease(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&schema.LeaseVersion{}).Where("lease_id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count versions: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: lease %d has %d versions", domain.ErrReferenceInUse, id, count)
		}

		res := tx.Delete(&schema.Lease{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete lease: %w", translateDeleteError(res.Error))
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// =============================================================================
// Version ledger
// =============================================================================

// CreateVersion runs the amendment protocol in a single transaction:
// lock the lease row, verify the caller's observed current version, compute
// the next sequence number, insert the version with its initial facts, and
// repoint the lease's current-version association. Any failure rolls the
// whole amendment back.
func (s *pgStore) CreateVersion(ctx context.Context, leaseID uint64, input CreateVersionInput) (*schema.LeaseVersion, error) {
	if !input.Effective.Valid() {
		return nil, fmt.Errorf("%w: effective interval %s is empty", domain.ErrValidation, input.Effective)
	}

	var version schema.LeaseVersion
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		version, err = createVersionInTx(tx, leaseID, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// createVersionInTx is the amendment protocol body, shared by CreateVersion
// and CreateLeaseWithVersion. It must run inside a transaction.
func createVersionInTx(tx *gorm.DB, leaseID uint64, input CreateVersionInput) (schema.LeaseVersion, error) {
	var version schema.LeaseVersion

	var lease schema.Lease
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", leaseID).
		First(&lease).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return version, fmt.Errorf("%w: lease %d", domain.ErrNotFound, leaseID)
		}
		return version, fmt.Errorf("failed to lock lease: %w", err)
	}

	// Optimistic precondition: the amendment must be based on the current
	// version the caller observed. A concurrent amendment that commits
	// first moves the pointer and loses us the race.
	if !versionPointerEqual(lease.CurrentVersionID, input.PriorVersionID) {
		return version, fmt.Errorf("%w: lease %d current version moved", domain.ErrCurrentVersionConflict, leaseID)
	}

	nextSeq := 0
	if lease.CurrentVersionID != nil {
		var maxSeq int
		err := tx.Model(&schema.LeaseVersion{}).
			Where("lease_id = ?", leaseID).
			Select("COALESCE(MAX(sequence_num), -1)").
			Scan(&maxSeq).Error
		if err != nil {
			return version, fmt.Errorf("failed to read max sequence: %w", err)
		}
		nextSeq = maxSeq + 1
	}

	version = schema.LeaseVersion{
		LeaseID:          leaseID,
		SequenceNum:      nextSeq,
		EffectiveStart:   input.Effective.Start,
		EffectiveEnd:     input.Effective.End,
		SuiteID:          input.SuiteID,
		Area:             input.Area,
		TermMonths:       input.TermMonths,
		EscalationMethod: input.EscalationMethod,
	}
	if err := tx.Create(&version).Error; err != nil {
		return version, fmt.Errorf("failed to create version: %w", translateWriteError(err))
	}

	// Initial rent periods are overlap-checked against each other; the
	// version is new, so there are no stored siblings to collide with.
	for i, rp := range input.RentPeriods {
		if !rp.Period.Valid() {
			return version, fmt.Errorf("%w: rent period interval %s is empty", domain.ErrValidation, rp.Period)
		}
		for j := 0; j < i; j++ {
			if rp.Period.Overlaps(input.RentPeriods[j].Period) {
				return version, fmt.Errorf("%w: rent period %s overlaps %s",
					domain.ErrOverlapConflict, rp.Period, input.RentPeriods[j].Period)
			}
		}
		record := schema.RentPeriod{
			VersionID:   version.ID,
			PeriodStart: rp.Period.Start,
			PeriodEnd:   rp.Period.End,
			Amount:      rp.Amount,
			Basis:       rp.Basis,
		}
		if err := tx.Create(&record).Error; err != nil {
			return version, fmt.Errorf("failed to create rent period: %w", translateWriteError(err))
		}
	}

	for _, ow := range input.OptionWindows {
		record := schema.OptionWindow{
			VersionID:     version.ID,
			Kind:          ow.Kind,
			WindowStart:   ow.Window.Start,
			WindowEnd:     ow.Window.End,
			Terms:         ow.Terms,
			Exercised:     ow.Exercised,
			ExercisedDate: ow.ExercisedDate,
		}
		if err := tx.Create(&record).Error; err != nil {
			return version, fmt.Errorf("failed to create option window: %w", translateWriteError(err))
		}
	}

	for _, con := range input.Concessions {
		record := schema.Concession{
			VersionID:   version.ID,
			Kind:        con.Kind,
			ValueAmount: con.ValueAmount,
			ValueBasis:  con.ValueBasis,
		}
		if con.Applies != nil {
			start, end := con.Applies.Start, con.Applies.End
			record.AppliesStart = &start
			record.AppliesEnd = &end
		}
		if err := tx.Create(&record).Error; err != nil {
			return version, fmt.Errorf("failed to create concession: %w", translateWriteError(err))
		}
	}

	// Repoint the single-valued current-version association.
	res := tx.Model(&schema.Lease{}).
		Where("id = ?", leaseID).
		Update("current_version_id", version.ID)
	if res.Error != nil {
		return version, fmt.Errorf("failed to repoint current version: %w", res.Error)
	}
	return version, nil
}

func versionPointerEqual(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *pgStore) GetVersion(ctx context.Context, id uint64) (*schema.LeaseVersion, error) {
	var version schema.LeaseVersion
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get version: %w", err)
	}
	return &version, nil
}

func (s *pgStore) GetCurrentVersion(ctx context.Context, leaseID uint64) (*schema.LeaseVersion, error) {
	lease, err := s.GetLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, fmt.Errorf("%w: lease %d", domain.ErrNotFound, leaseID)
	}
	if lease.CurrentVersionID == nil {
		return nil, nil
	}

	var version schema.LeaseVersion
	err = s.db.WithContext(ctx).Where("id = ?", *lease.CurrentVersionID).First(&version).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get current version: %w", err)
	}
	return &version, nil
}

func (s *pgStore) ListVersions(ctx context.Context, leaseID uint64) ([]schema.LeaseVersion, error) {
	var versions []schema.LeaseVersion
	err := s.db.WithContext(ctx).
		Where("lease_id = ?", leaseID).
		Order("sequence_num ASC").
		Find(&versions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	return versions, nil
}

// =============================================================================
// Fact attachments: rent periods
// =============================================================================

// CreateRentPeriod inserts a rent period after checking the non-overlap
// invariant against stored siblings. The check and the insert share one
// transaction with the version row locked, so two concurrent inserts cannot
// both pass the check.
func (s *pgStore) CreateRentPeriod(ctx context.Context, versionID uint64, input CreateRentPeriodInput) (*schema.RentPeriod, error) {
	if !input.Period.Valid() {
		return nil, fmt.Errorf("%w: period interval %s is empty", domain.ErrValidation, input.Period)
	}

	var record schema.RentPeriod
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var version schema.LeaseVersion
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", versionID).
			First(&version).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: version %d", domain.ErrNotFound, versionID)
			}
			return fmt.Errorf("failed to lock version: %w", err)
		}

		var colliding schema.RentPeriod
		err = tx.Where("version_id = ? AND period_start < ? AND ? < period_end",
			versionID, input.Period.End, input.Period.Start).
			First(&colliding).Error
		if err == nil {
			return fmt.Errorf("%w: rent period %d (%s)", domain.ErrOverlapConflict,
				colliding.ID, colliding.PeriodRange())
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check overlap: %w", err)
		}

		record = schema.RentPeriod{
			VersionID:   versionID,
			PeriodStart: input.Period.Start,
			PeriodEnd:   input.Period.End,
			Amount:      input.Amount,
			Basis:       input.Basis,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create rent period: %w", translateWriteError(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *pgStore) ListRentPeriods(ctx context.Context, versionID uint64) ([]schema.RentPeriod, error) {
	var periods []schema.RentPeriod
	err := s.db.WithContext(ctx).
		Where("version_id = ?", versionID).
		Order("period_start ASC").
		Find(&periods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rent periods: %w", err)
	}
	return periods, nil
}

func (s *pgStore) DeleteRentPeriod(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&schema.RentPeriod{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete rent period: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// =============================================================================
// Fact attachments: option windows
// =============================================================================

func (s *pgStore) CreateOptionWindow(ctx context.Context, versionID uint64, input CreateOptionWindowInput) (*schema.OptionWindow, error) {
	record := schema.OptionWindow{
		VersionID:     versionID,
		Kind:          input.Kind,
		WindowStart:   input.Window.Start,
		WindowEnd:     input.Window.End,
		Terms:         input.Terms,
		Exercised:     input.Exercised,
		ExercisedDate: input.ExercisedDate,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create option window: %w", translateWriteError(err))
	}
	return &record, nil
}

func (s *pgStore) GetOptionWindow(ctx context.Context, id uint64) (*schema.OptionWindow, error) {
	var record schema.OptionWindow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get option window: %w", err)
	}
	return &record, nil
}

func (s *pgStore) ListOptionWindows(ctx context.Context, versionID uint64) ([]schema.OptionWindow, error) {
	var records []schema.OptionWindow
	err := s.db.WithContext(ctx).
		Where("version_id = ?", versionID).
		Order("window_start ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list option windows: %w", err)
	}
	return records, nil
}

func (s *pgStore) UpdateOptionWindow(ctx context.Context, id uint64, input UpdateOptionWindowInput) (*schema.OptionWindow, error) {
	updates := map[string]any{}
	if input.Terms != nil {
		updates["terms"] = *input.Terms
	}
	if input.ExercisedDate != nil {
		updates["exercised_date"] = *input.ExercisedDate
	}
	if input.Exercised != nil {
		updates["exercised"] = *input.Exercised
		// An exercise date only exists on an exercised window, so
		// un-exercising clears whatever date was stored.
		if !*input.Exercised {
			updates["exercised_date"] = nil
		}
	}

	var record schema.OptionWindow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			res := tx.Model(&schema.OptionWindow{}).Where("id = ?", id).Updates(updates)
			if res.Error != nil {
				return fmt.Errorf("failed to update option window: %w", translateWriteError(res.Error))
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: option window %d", domain.ErrNotFound, id)
			}
		}
		if err := tx.Where("id = ?", id).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: option window %d", domain.ErrNotFound, id)
			}
			return fmt.Errorf("failed to reload option window: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *pgStore) DeleteOptionWindow(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&schema.OptionWindow{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete option window: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// =============================================================================
// Fact attachments: concessions
// =============================================================================

func (s *pgStore) CreateConcession(ctx context.Context, versionID uint64, input CreateConcessionInput) (*schema.Concession, error) {
	record := schema.Concession{
		VersionID:   versionID,
		Kind:        input.Kind,
		ValueAmount: input.ValueAmount,
		ValueBasis:  input.ValueBasis,
	}
	if input.Applies != nil {
		start, end := input.Applies.Start, input.Applies.End
		record.AppliesStart = &start
		record.AppliesEnd = &end
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create concession: %w", translateWriteError(err))
	}
	return &record, nil
}

func (s *pgStore) ListConcessions(ctx context.Context, versionID uint64) ([]schema.Concession, error) {
	var records []schema.Concession
	err := s.db.WithContext(ctx).
		Where("version_id = ?", versionID).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list concessions: %w", err)
	}
	return records, nil
}

func (s *pgStore) GetConcession(ctx context.Context, id uint64) (*schema.Concession, error) {
	var record schema.Concession
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get concession: %w", err)
	}
	return &record, nil
}

func (s *pgStore) UpdateConcession(ctx context.Context, id uint64, input UpdateConcessionInput) (*schema.Concession, error) {
	updates := map[string]any{}
	if input.ValueAmount != nil {
		updates["value_amount"] = *input.ValueAmount
	}
	if input.ValueBasis != nil {
		updates["value_basis"] = *input.ValueBasis
	}
	if input.Applies != nil {
		updates["applies_start"] = input.Applies.Start
		updates["applies_end"] = input.Applies.End
	}

	var record schema.Concession
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			res := tx.Model(&schema.Concession{}).Where("id = ?", id).Updates(updates)
			if res.Error != nil {
				return fmt.Errorf("failed to update concession: %w", translateWriteError(res.Error))
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: concession %d", domain.ErrNotFound, id)
			}
		}
		if err := tx.Where("id = ?", id).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: concession %d", domain.ErrNotFound, id)
			}
			return fmt.Errorf("failed to reload concession: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *pgStore) DeleteConcession(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&schema.Concession{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete concession: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// =============================================================================
// Fact attachments: milestones
// =============================================================================

func (s *pgStore) CreateMilestone(ctx context.Context, m *schema.MilestoneDate) error {
	m.DateValue = domain.Midnight(m.DateValue)
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create milestone: %w", translateWriteError(err))
	}
	return nil
}

func (s *pgStore) GetMilestone(ctx context.Context, id uint64) (*schema.MilestoneDate, error) {
	var record schema.MilestoneDate
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}
	return &record, nil
}

func (s *pgStore) ListMilestones(ctx context.Context, leaseID uint64) ([]schema.MilestoneDate, error) {
	var records []schema.MilestoneDate
	err := s.db.WithContext(ctx).
		Where("lease_id = ?", leaseID).
		Order("date_value ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	return records, nil
}

func (s *pgStore) UpdateMilestone(ctx context.Context, m *schema.MilestoneDate) error {
	res := s.db.WithContext(ctx).Model(&schema.MilestoneDate{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{"kind": m.Kind, "date_value": domain.Midnight(m.DateValue)})
	if res.Error != nil {
		return fmt.Errorf("failed to update milestone: %w", translateWriteError(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *pgStore) DeleteMilestone(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&schema.MilestoneDate{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete milestone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// =============================================================================
// Fact attachments: document links
// =============================================================================

func (s *pgStore) CreateDocumentLink(ctx context.Context, d *schema.DocumentLink) error {
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("failed to create document link: %w", translateWriteError(err))
	}
	return nil
}

func (s *pgStore) ListDocumentLinks(ctx context.Context, leaseID uint64) ([]schema.DocumentLink, error) {
	var records []schema.DocumentLink
	err := s.db.WithContext(ctx).
		Where("lease_id = ?", leaseID).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list document links: %w", err)
	}
	return records, nil
}

func (s *pgStore) GetDocumentLink(ctx context.Context, id uint64) (*schema.DocumentLink, error) {
	var record schema.DocumentLink
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document link: %w", err)
	}
	return &record, nil
}

func (s *pgStore) UpdateDocumentLink(ctx context.Context, d *schema.DocumentLink) error {
	res := s.db.WithContext(ctx).Model(&schema.DocumentLink{}).
		Where("id = ?", d.ID).
		Updates(map[string]any{"label": d.Label, "external_ref": d.ExternalRef})
	if res.Error != nil {
		return fmt.Errorf("failed to update document link: %w", translateWriteError(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *pgStore) DeleteDocumentLink(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&schema.DocumentLink{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete document link: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// =============================================================================
// Derived-metric reads
// =============================================================================

// GetLeaseSnapshot loads the lease, its current version, and the facts the
// derived-metric functions consume. Reads are plain snapshot reads; no locks.
func (s *pgStore) GetLeaseSnapshot(ctx context.Context, leaseID uint64) (*LeaseSnapshot, error) {
	lease, err := s.GetLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, fmt.Errorf("%w: lease %d", domain.ErrNotFound, leaseID)
	}

	snapshot := LeaseSnapshot{Lease: *lease}

	snapshot.Milestones, err = s.ListMilestones(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	if lease.CurrentVersionID == nil {
		return &snapshot, nil
	}

	var version schema.LeaseVersion
	if err := s.db.WithContext(ctx).Where("id = ?", *lease.CurrentVersionID).First(&version).Error; err != nil {
		return nil, fmt.Errorf("failed to get current version: %w", err)
	}
	snapshot.CurrentVersion = &version

	if snapshot.RentPeriods, err = s.ListRentPeriods(ctx, version.ID); err != nil {
		return nil, err
	}
	if snapshot.OptionWindows, err = s.ListOptionWindows(ctx, version.ID); err != nil {
		return nil, err
	}
	if snapshot.Concessions, err = s.ListConcessions(ctx, version.ID); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *pgStore) ListOptionWindowsTouching(ctx context.Context, from, to time.Time) ([]schema.OptionWindow, error) {
	var records []schema.OptionWindow
	err := s.db.WithContext(ctx).
		Preload("Version").
		Where("exercised = ? AND window_start < ? AND ? < window_end", false, to, from).
		Order("window_start ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list option windows in range: %w", err)
	}
	return records, nil
}
