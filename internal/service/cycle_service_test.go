package service

import (
	"testing"
	"time"

	"mentora_backend/internal/model"
	"mentora_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCycleDatesSolo(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	svc := newCycleService(db)

	start := day(2026, time.March, 1)
	dates, err := svc.CalculateCycleDates(p.ID, model.CycleSolo, &start)
	require.NoError(t, err)

	assert.Equal(t, day(2026, time.March, 1), dates.StartDate)
	assert.Equal(t, day(2026, time.June, 9), dates.EndDate)
	assert.Equal(t, util.SoloCycleTotalDays, dates.TotalDays)
	assert.Equal(t, model.CycleSolo, dates.CycleType)

	// Both boundary days count.
	assert.Equal(t, util.SoloCycleDays, util.DaysBetween(dates.StartDate, dates.EndDate))
}

func TestCalculateCycleDatesDefaultsToToday(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	svc := newCycleService(db)

	dates, err := svc.CalculateCycleDates(p.ID, "", nil)
	require.NoError(t, err)

	assert.Equal(t, util.StartOfDay(time.Now()), dates.StartDate)
	assert.Equal(t, model.CycleSolo, dates.CycleType)
}

func TestCalculateCycleDatesGroupRejected(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	svc := newCycleService(db)

	_, err := svc.CalculateCycleDates(p.ID, model.CycleGroup, nil)
	assert.ErrorIs(t, err, util.ErrGroupCycleNotSupported)
}

func TestCalculateCycleDatesUnknownType(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	svc := newCycleService(db)

	_, err := svc.CalculateCycleDates(p.ID, "duo", nil)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, util.ErrGroupCycleNotSupported)
}

func TestCalculateCycleDatesUnknownParticipant(t *testing.T) {
	db := newTestDB(t)
	svc := newCycleService(db)

	_, err := svc.CalculateCycleDates(9999, model.CycleSolo, nil)
	assert.ErrorIs(t, err, util.ErrParticipantNotFound)
}

func TestCanStartNewCycle(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	svc := newCycleService(db)

	canStart, reason, err := svc.CanStartNewCycle(p.ID)
	require.NoError(t, err)
	assert.True(t, canStart)
	assert.Empty(t, reason)

	start := day(2026, time.March, 1)
	dates, err := svc.CalculateCycleDates(p.ID, model.CycleSolo, &start)
	require.NoError(t, err)
	_, err = svc.CreateEnrollment(p.ID, dates)
	require.NoError(t, err)

	canStart, reason, err = svc.CanStartNewCycle(p.ID)
	require.NoError(t, err)
	assert.False(t, canStart)
	assert.Contains(t, reason, "2026-03-01")
}

func TestCalculateRemainingDays(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	svc := newCycleService(db)

	start := day(2026, time.March, 1)
	dates, err := svc.CalculateCycleDates(p.ID, model.CycleSolo, &start)
	require.NoError(t, err)
	_, err = svc.CreateEnrollment(p.ID, dates)
	require.NoError(t, err)

	remaining, err := svc.CalculateRemainingDays(p.ID, start)
	require.NoError(t, err)
	assert.Equal(t, util.SoloCycleDays, remaining)

	remaining, err = svc.CalculateRemainingDays(p.ID, start.AddDate(0, 0, 40))
	require.NoError(t, err)
	assert.Equal(t, 60, remaining)

	// Past the end the count clamps at zero instead of going negative.
	remaining, err = svc.CalculateRemainingDays(p.ID, start.AddDate(0, 0, 300))
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestCalculateRemainingDaysWithoutEnrollment(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	svc := newCycleService(db)

	_, err := svc.CalculateRemainingDays(p.ID, time.Now())
	assert.ErrorIs(t, err, util.ErrEnrollmentNotFound)
}

func TestGetLastTaskDate(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	svc := newCycleService(db)

	last, err := svc.GetLastTaskDate(p.ID)
	require.NoError(t, err)
	assert.Nil(t, last)

	carta := createApprovedCarta(t, db, p.ID, model.AreaHealth, model.Action{
		Title:     "Stretch",
		Frequency: model.FrequencyDaily,
	})
	result := newGenerator(db).GenerateTasksForCarta(carta.ID)
	require.True(t, result.Success)

	last, err = svc.GetLastTaskDate(p.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	_, end := soloWindow(time.Now())
	assert.Equal(t, end.Format(util.DateFormat), last.Format(util.DateFormat))
}

func TestValidateExtensionDate(t *testing.T) {
	svc := newCycleService(newTestDB(t))

	current := day(2026, time.June, 9)

	valid := svc.ValidateExtensionDate(current, day(2026, time.June, 19))
	assert.True(t, valid.Valid)
	assert.Equal(t, 10, valid.AddedDays)

	sameDay := svc.ValidateExtensionDate(current, current)
	assert.False(t, sameDay.Valid)
	assert.NotEmpty(t, sameDay.Reason)

	earlier := svc.ValidateExtensionDate(current, day(2026, time.June, 1))
	assert.False(t, earlier.Valid)
}

func TestGetCycleStats(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	svc := newCycleService(db)

	// A cycle that started 10 days ago.
	start := util.StartOfDay(time.Now()).AddDate(0, 0, -10)
	dates, err := svc.CalculateCycleDates(p.ID, model.CycleSolo, &start)
	require.NoError(t, err)
	_, err = svc.CreateEnrollment(p.ID, dates)
	require.NoError(t, err)

	stats, err := svc.GetCycleStats(p.ID)
	require.NoError(t, err)

	assert.Equal(t, util.SoloCycleTotalDays, stats.TotalDays)
	assert.Equal(t, 11, stats.ElapsedDays)
	assert.Equal(t, 90, stats.RemainingDays)
	assert.InDelta(t, 11.0/101.0*100, stats.ProgressPercentage, 0.01)
	assert.Equal(t, string(model.EnrollmentActive), stats.Status)
}
