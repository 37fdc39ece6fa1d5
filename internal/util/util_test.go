package util

import (
	"testing"
	"time"

	"mentora_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local)

	assert.Equal(t, 0, DaysBetween(a, a))
	assert.Equal(t, 1, DaysBetween(a, a.AddDate(0, 0, 1)))
	assert.Equal(t, -1, DaysBetween(a.AddDate(0, 0, 1), a))
	assert.Equal(t, 100, DaysBetween(a, a.AddDate(0, 0, 100)))

	// Time of day is irrelevant.
	lateEvening := time.Date(2026, time.March, 1, 23, 59, 0, 0, time.Local)
	nextMorning := time.Date(2026, time.March, 2, 0, 1, 0, 0, time.Local)
	assert.Equal(t, 1, DaysBetween(lateEvening, nextMorning))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2026, time.March, 1, 17, 45, 12, 999, time.Local)
	start := StartOfDay(ts)

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, ts.Year(), start.Year())
	assert.Equal(t, ts.Month(), start.Month())
	assert.Equal(t, ts.Day(), start.Day())
}

func TestJWTRoundTrip(t *testing.T) {
	p := &model.Participant{
		BaseModel: model.BaseModel{ID: 7},
		Email:     "ana@example.com",
		Role:      model.RoleMentor,
	}

	token, err := GenerateJWT(p, "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.ParticipantID)
	assert.Equal(t, model.RoleMentor, claims.Role)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestJWTWrongSecret(t *testing.T) {
	p := &model.Participant{BaseModel: model.BaseModel{ID: 7}}

	token, err := GenerateJWT(p, "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	p := &model.Participant{BaseModel: model.BaseModel{ID: 7}}

	token, err := GenerateJWT(p, "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "test-secret")
	assert.Error(t, err)
}
