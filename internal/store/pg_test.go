package store

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/keystone-cre/leaseledger/internal/domain"
	"github.com/keystone-cre/leaseledger/internal/store/schema"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	// Check if we should use an external database (for CI or local development)
	dbHost := os.Getenv("TEST_DB_HOST")
	dbPort := os.Getenv("TEST_DB_PORT")
	dbUser := os.Getenv("TEST_DB_USER")
	dbPassword := os.Getenv("TEST_DB_PASSWORD")
	dbName := os.Getenv("TEST_DB_NAME")

	var dsn string
	var err error

	if dbHost != "" {
		// Use external database
		if dbPort == "" {
			dbPort = "5432"
		}
		if dbUser == "" {
			dbUser = "postgres"
		}
		if dbPassword == "" {
			dbPassword = "postgres"
		}
		if dbName == "" {
			dbName = "test_db"
		}

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)

		fmt.Printf("Using external database: %s:%s/%s\n", dbHost, dbPort, dbName)
	} else {
		// Start a PostgreSQL container for testing
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			terminateContainer(ctx)
			os.Exit(1)
		}

		fmt.Printf("Started PostgreSQL container\n")
	}

	// Connect to the database
	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	// Initialize the database schema
	if err := AutoMigrate(testDB); err != nil {
		fmt.Printf("Failed to migrate database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	// Run tests
	code := m.Run()

	terminateContainer(ctx)
	os.Exit(code)
}

func terminateContainer(ctx context.Context) {
	if pgContainer != nil {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}
}

// initPGTestDB initializes a test store for each test. Each test runs in a
// transaction that is rolled back on cleanup, so tests never see each other's
// rows.
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	RunStoreTests(t, initPGTestDB)
}

// TestConcurrentAmendment races two amendments based on the same observed
// current version. Exactly one must win; the loser must see a current version
// conflict, not a second seat in the ledger. This test uses the shared pool
// rather than a per-test transaction because the race needs two connections.
func TestConcurrentAmendment(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	ctx := context.Background()
	s := NewPGStore(testDB)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())

	property := &schema.Property{Name: "Race Tower " + suffix, TotalArea: 100000, Active: true}
	require.NoError(t, s.CreateProperty(ctx, property))
	suite := &schema.Suite{PropertyID: property.ID, Code: "R-" + suffix, Area: 4000}
	require.NoError(t, s.CreateSuite(ctx, suite))
	landlord := &schema.Party{LegalName: "Race Landlord LLC", Role: domain.PartyRoleLandlord, Active: true}
	require.NoError(t, s.CreateParty(ctx, landlord))
	tenant := &schema.Party{LegalName: "Race Tenant Inc", Role: domain.PartyRoleTenant, Active: true}
	require.NoError(t, s.CreateParty(ctx, tenant))

	lease, err := s.CreateLease(ctx, CreateLeaseInput{
		PropertyID:     property.ID,
		LandlordID:     landlord.ID,
		TenantID:       tenant.ID,
		ExternalNumber: "RACE-" + suffix,
		ExecutionDate:  date(t, "2026-01-15"),
	})
	require.NoError(t, err)

	original, err := s.CreateVersion(ctx, lease.ID, CreateVersionInput{
		Effective:        rangeOf(t, "2026-02-01", "2031-02-01"),
		SuiteID:          suite.ID,
		Area:             4000,
		TermMonths:       60,
		EscalationMethod: domain.EscalationFixedSteps,
	})
	require.NoError(t, err)

	// Both racers observed the original as current.
	amend := func() error {
		priorID := original.ID
		_, err := s.CreateVersion(ctx, lease.ID, CreateVersionInput{
			PriorVersionID:   &priorID,
			Effective:        rangeOf(t, "2026-02-01", "2033-02-01"),
			SuiteID:          suite.ID,
			Area:             5200,
			TermMonths:       84,
			EscalationMethod: domain.EscalationFixedSteps,
		})
		return err
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = amend()
		}()
	}
	wg.Wait()

	winners := 0
	losers := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrCurrentVersionConflict)
		losers++
	}
	assert.Equal(t, 1, winners, "exactly one amendment must win")
	assert.Equal(t, 1, losers, "exactly one amendment must lose")

	versions, err := s.ListVersions(ctx, lease.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 2)
	assert.Equal(t, []int{0, 1}, []int{versions[0].SequenceNum, versions[1].SequenceNum})
}
