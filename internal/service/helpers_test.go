package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"mentora_backend/internal/util"
	"mentora_backend/pkg/database"
	"mentora_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens an isolated in-memory database, migrated and seeded the
// same way the real one is. Each call gets its own named memory database so
// connection pooling cannot split state across tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Log = zap.NewNop()

	dsn := fmt.Sprintf("file:mentora_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))
	return db
}

func createParticipant(t *testing.T, db *gorm.DB) *model.Participant {
	t.Helper()
	p := &model.Participant{
		Name:  "Ana",
		Email: fmt.Sprintf("ana%d@example.com", atomic.AddInt64(&testDBSeq, 1)),
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// createApprovedCarta builds a carta with one goal holding the given
// actions, ready for generation.
func createApprovedCarta(t *testing.T, db *gorm.DB, participantID uint, category model.LifeArea, actions ...model.Action) *model.Carta {
	t.Helper()
	carta := &model.Carta{
		ParticipantID: participantID,
		Status:        model.CartaApproved,
		Goals: []model.Goal{
			{
				Category: category,
				Title:    "Test goal",
				Actions:  actions,
			},
		},
	}
	require.NoError(t, db.Create(carta).Error)
	return carta
}

func newCycleService(db *gorm.DB) *CycleService {
	return NewCycleService(
		repository.NewParticipantRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewTaskRepository(db),
	)
}

func newGenerator(db *gorm.DB) *TaskGeneratorService {
	return NewTaskGeneratorService(
		repository.NewCartaRepository(db),
		repository.NewTaskRepository(db),
		newCycleService(db),
		nil,
	)
}

func newRewardSvc(db *gorm.DB) *RewardService {
	return NewRewardService(
		db,
		repository.NewEvidenceRepository(db),
		repository.NewRewardRepository(db),
	)
}

func newCollectionSvc(db *gorm.DB) *CollectionService {
	return NewCollectionService(
		db,
		repository.NewCollectionRepository(db),
		repository.NewParticipantRepository(db),
		repository.NewEvidenceRepository(db),
	)
}

// countExpected iterates the same inclusive window the generator walks and
// counts the dates the rule accepts, so expectations stay correct no matter
// what today's date is.
func countExpected(action *model.Action, start, end time.Time) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if OccursOn(action, d) {
			count++
		}
	}
	return count
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.Local)
}

func soloWindow(start time.Time) (time.Time, time.Time) {
	start = util.StartOfDay(start)
	return start, start.AddDate(0, 0, util.SoloCycleDays)
}
