package service

import (
	"sync/atomic"
	"testing"
	"time"

	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"mentora_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPerfectDaySvc(db *gorm.DB) *PerfectDayService {
	return NewPerfectDayService(
		db,
		repository.NewTaskRepository(db),
		repository.NewRewardRepository(db),
	)
}

func seedDayTasks(t *testing.T, db *gorm.DB, participantID uint, dueDate time.Time, completed, pending int) {
	t.Helper()
	add := func(status model.TaskStatus, n int) {
		for i := 0; i < n; i++ {
			task := &model.TaskOccurrence{
				ParticipantID: participantID,
				ActionID:      uint(atomic.AddInt64(&testDBSeq, 1)),
				DueDate:       dueDate,
				Status:        status,
			}
			require.NoError(t, db.Create(task).Error)
		}
	}
	add(model.TaskCompleted, completed)
	add(model.TaskPending, pending)
}

func TestEvaluatePerfectDayGrantsBonus(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	target := day(2026, time.March, 2)
	seedDayTasks(t, db, p.ID, target, 5, 0)

	result, err := newPerfectDaySvc(db).Evaluate(p.ID, target)
	require.NoError(t, err)

	assert.True(t, result.Granted)
	assert.Equal(t, util.PerfectDayCoinBonus, result.CoinsGained)
	assert.Equal(t, 5, result.Scheduled)
	assert.Equal(t, 5, result.Completed)

	var reloaded model.Participant
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, util.PerfectDayCoinBonus, reloaded.Coins)
}

func TestEvaluatePerfectDayIdempotent(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	target := day(2026, time.March, 2)
	seedDayTasks(t, db, p.ID, target, 3, 0)
	svc := newPerfectDaySvc(db)

	first, err := svc.Evaluate(p.ID, target)
	require.NoError(t, err)
	require.True(t, first.Granted)

	// Re-evaluating the same day, even at a different time of day, pays
	// nothing again.
	second, err := svc.Evaluate(p.ID, target.Add(22*time.Hour))
	require.NoError(t, err)
	assert.False(t, second.Granted)
	assert.Zero(t, second.CoinsGained)

	var reloaded model.Participant
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, util.PerfectDayCoinBonus, reloaded.Coins)

	var entries int64
	db.Model(&model.RewardEntry{}).
		Where("participant_id = ? AND source_type = ?", p.ID, model.RewardSourcePerfectDay).
		Count(&entries)
	assert.Equal(t, int64(1), entries)
}

func TestEvaluatePerfectDayIncomplete(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	target := day(2026, time.March, 2)
	seedDayTasks(t, db, p.ID, target, 4, 1)

	result, err := newPerfectDaySvc(db).Evaluate(p.ID, target)
	require.NoError(t, err)

	assert.False(t, result.Granted)
	assert.Equal(t, 5, result.Scheduled)
	assert.Equal(t, 4, result.Completed)
}

// An empty day is not a perfect day.
func TestEvaluatePerfectDayNothingScheduled(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)

	result, err := newPerfectDaySvc(db).Evaluate(p.ID, day(2026, time.March, 2))
	require.NoError(t, err)

	assert.False(t, result.Granted)
	assert.Zero(t, result.Scheduled)
}

func TestEvaluatePerfectDayDistinctDays(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	svc := newPerfectDaySvc(db)

	dayOne := day(2026, time.March, 2)
	dayTwo := day(2026, time.March, 3)
	seedDayTasks(t, db, p.ID, dayOne, 2, 0)
	seedDayTasks(t, db, p.ID, dayTwo, 2, 0)

	first, err := svc.Evaluate(p.ID, dayOne)
	require.NoError(t, err)
	second, err := svc.Evaluate(p.ID, dayTwo)
	require.NoError(t, err)

	assert.True(t, first.Granted)
	assert.True(t, second.Granted)

	var reloaded model.Participant
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, 2*util.PerfectDayCoinBonus, reloaded.Coins)
}

func TestPerfectDayReasonEmbedsDate(t *testing.T) {
	reason := PerfectDayReason(day(2026, time.March, 2))
	assert.Equal(t, "perfect day bonus 2026-03-02", reason)
}
