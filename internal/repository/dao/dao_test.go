package dao

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB spins up a disposable Postgres container and migrates the
// schema. Tests that need it are skipped under -short.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, pool.Client.Ping())

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_USER=test",
			"POSTGRES_DB=expertise_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	dsn := fmt.Sprintf("host=localhost port=%v user=test password=secret dbname=expertise_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	var db *gorm.DB
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}

		sqlDB, pingErr := db.DB()
		if pingErr != nil {
			return pingErr
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

func TestSequenceDAO_Next(t *testing.T) {
	db := setupTestDB(t)
	dao := NewSequenceDAO(db)
	ctx := context.Background()

	first, err := dao.Next(ctx, "sample", "event:1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := dao.Next(ctx, "sample", "event:1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)

	// A different scope counts independently.
	other, err := dao.Next(ctx, "document", "event:1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}

func TestSequenceDAO_Next_Concurrent(t *testing.T) {
	db := setupTestDB(t)
	dao := NewSequenceDAO(db)
	ctx := context.Background()

	const workers = 20

	var wg sync.WaitGroup
	values := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := dao.Next(ctx, "sample", "event:7")
			assert.NoError(t, err)
			values <- v
		}()
	}
	wg.Wait()
	close(values)

	seen := make(map[int64]bool, workers)
	for v := range values {
		assert.False(t, seen[v], "duplicate sequence value %d", v)
		seen[v] = true
	}
	assert.Len(t, seen, workers)
}

func TestSampleDAO_Insert_UniqueViolations(t *testing.T) {
	db := setupTestDB(t)
	dao := NewSampleDAO(db)
	ctx := context.Background()

	sample := ProductSample{
		EventID:     1,
		CategoryID:  1,
		ApplicantID: 1,
		Name:        "Gouda",
		Number:      1,
		Code:        "E1-S0001",
		Mode:        "final_score",
		Status:      "draft",
	}

	_, err := dao.Insert(ctx, sample)
	require.NoError(t, err)

	dupNumber := sample
	dupNumber.Code = "E1-S0002"
	_, err = dao.Insert(ctx, dupNumber)
	assert.ErrorIs(t, err, ErrSampleNumberTaken)

	dupCode := sample
	dupCode.Number = 2
	_, err = dao.Insert(ctx, dupCode)
	assert.ErrorIs(t, err, ErrSampleCodeExists)

	// Same number under another event is fine.
	otherEvent := sample
	otherEvent.EventID = 2
	otherEvent.Code = "E2-S0001"
	_, err = dao.Insert(ctx, otherEvent)
	assert.NoError(t, err)
}

func TestSessionDAO_InsertActive_SingleActivePerSample(t *testing.T) {
	db := setupTestDB(t)
	dao := NewSessionDAO(db)
	ctx := context.Background()

	session := EvaluationSession{
		SampleID:      1,
		CommissionID:  1,
		ActivatedByID: 1,
		Status:        "active",
		ActivatedAt:   time.Now(),
	}

	created, err := dao.InsertActive(ctx, session)
	require.NoError(t, err)

	_, err = dao.InsertActive(ctx, session)
	assert.ErrorIs(t, err, ErrSessionAlreadyActive)

	// Closing the session frees the slot.
	created.Status = "cancelled"
	_, err = dao.Update(ctx, created)
	require.NoError(t, err)

	_, err = dao.InsertActive(ctx, session)
	assert.NoError(t, err)
}

func TestEvaluationDAO_Insert_DuplicatePerSessionAndMember(t *testing.T) {
	db := setupTestDB(t)
	dao := NewEvaluationDAO(db)
	ctx := context.Background()

	evaluation := ExpertEvaluation{
		SessionID: 1,
		SampleID:  1,
		MemberID:  1,
	}

	_, err := dao.Insert(ctx, evaluation)
	require.NoError(t, err)

	_, err = dao.Insert(ctx, evaluation)
	assert.ErrorIs(t, err, ErrDuplicateEvaluation)

	otherMember := evaluation
	otherMember.MemberID = 2
	_, err = dao.Insert(ctx, otherMember)
	assert.NoError(t, err)
}

func TestDocumentDAO_Insert_DuplicateVersion(t *testing.T) {
	db := setupTestDB(t)
	dao := NewDocumentDAO(db)
	ctx := context.Background()

	document := ResultDocument{
		Kind:        "protocol",
		SampleID:    1,
		ApplicantID: 1,
		EventID:     1,
		Number:      "P-1-0001",
		Version:     1,
		FinalScore:  7.5,
		Status:      "draft",
		CreatedByID: 1,
	}

	first, err := dao.Insert(ctx, document)
	require.NoError(t, err)

	_, err = dao.Insert(ctx, document)
	assert.ErrorIs(t, err, ErrDuplicateVersion)

	next := document
	next.Version = 2
	next.PreviousVersionID = &first.ID
	_, err = dao.Insert(ctx, next)
	assert.NoError(t, err)

	latest, err := dao.FindLatestByNumber(ctx, "P-1-0001")
	require.NoError(t, err)
	assert.Equal(t, 2, latest.Version)
}
