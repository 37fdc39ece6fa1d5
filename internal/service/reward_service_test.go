package service

import (
	"testing"
	"time"

	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"mentora_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createApprovedEvidence(t *testing.T, db *gorm.DB, participantID, actionID uint) *model.Evidence {
	t.Helper()
	evidence := &model.Evidence{
		ParticipantID: participantID,
		ActionID:      actionID,
		Status:        model.EvidenceReviewApproved,
		SubmittedAt:   time.Now(),
	}
	require.NoError(t, db.Create(evidence).Error)
	return evidence
}

func firstAction(t *testing.T, db *gorm.DB, cartaID uint) *model.Action {
	t.Helper()
	var action model.Action
	require.NoError(t, db.Where("goal_id IN (SELECT id FROM goals WHERE carta_id = ?)", cartaID).
		First(&action).Error)
	return &action
}

func TestAwardByEvidenceDailyPayout(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	carta := createApprovedCarta(t, db, p.ID, model.AreaHealth, model.Action{
		Title:     "Run",
		Frequency: model.FrequencyDaily,
	})
	action := firstAction(t, db, carta.ID)
	evidence := createApprovedEvidence(t, db, p.ID, action.ID)

	result, err := newRewardSvc(db).AwardByEvidence(p.ID, evidence.ID, action.ID)
	require.NoError(t, err)

	assert.Equal(t, model.RarityCommon, result.Rarity)
	assert.Equal(t, 10, result.XPGained)
	assert.Equal(t, 5, result.CoinsGained)
	assert.Equal(t, 1, result.Streak)
	assert.False(t, result.LeveledUp)
	assert.NotEmpty(t, result.Message)

	var reloaded model.Participant
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, 10, reloaded.XP)
	assert.Equal(t, 5, reloaded.Coins)
	assert.Equal(t, 1, reloaded.CompletionStreak)
	require.NotNil(t, reloaded.LastCompletionDate)
}

func TestAwardByEvidenceRarityOverride(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	carta := createApprovedCarta(t, db, p.ID, model.AreaHealth, model.Action{
		Title:     "Run",
		Frequency: model.FrequencyDaily,
		Rarity:    model.RarityEpic,
	})
	action := firstAction(t, db, carta.ID)
	evidence := createApprovedEvidence(t, db, p.ID, action.ID)

	result, err := newRewardSvc(db).AwardByEvidence(p.ID, evidence.ID, action.ID)
	require.NoError(t, err)

	assert.Equal(t, model.RarityEpic, result.Rarity)
	assert.Equal(t, 60, result.XPGained)
	assert.Equal(t, 35, result.CoinsGained)
}

func TestAwardByEvidenceRarityByFrequency(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	carta := createApprovedCarta(t, db, p.ID, model.AreaLearning, model.Action{
		Title:     "Finish the course",
		Frequency: model.FrequencyOneTime,
	})
	action := firstAction(t, db, carta.ID)
	evidence := createApprovedEvidence(t, db, p.ID, action.ID)

	result, err := newRewardSvc(db).AwardByEvidence(p.ID, evidence.ID, action.ID)
	require.NoError(t, err)

	assert.Equal(t, model.RarityLegendary, result.Rarity)
	assert.Equal(t, 100, result.XPGained)
	assert.Equal(t, 75, result.CoinsGained)
}

func TestAwardByEvidenceRejectsPending(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	carta := createApprovedCarta(t, db, p.ID, model.AreaHealth, model.Action{
		Title:     "Run",
		Frequency: model.FrequencyDaily,
	})
	action := firstAction(t, db, carta.ID)

	evidence := &model.Evidence{
		ParticipantID: p.ID,
		ActionID:      action.ID,
		Status:        model.EvidenceReviewPending,
		SubmittedAt:   time.Now(),
	}
	require.NoError(t, db.Create(evidence).Error)

	_, err := newRewardSvc(db).AwardByEvidence(p.ID, evidence.ID, action.ID)
	assert.ErrorIs(t, err, util.ErrEvidenceNotApproved)
}

func TestAwardByEvidenceRejectsForeignEvidence(t *testing.T) {
	db := newTestDB(t)
	owner := createParticipant(t, db)
	other := createParticipant(t, db)
	carta := createApprovedCarta(t, db, owner.ID, model.AreaHealth, model.Action{
		Title:     "Run",
		Frequency: model.FrequencyDaily,
	})
	action := firstAction(t, db, carta.ID)
	evidence := createApprovedEvidence(t, db, owner.ID, action.ID)

	_, err := newRewardSvc(db).AwardByEvidence(other.ID, evidence.ID, action.ID)
	assert.ErrorIs(t, err, util.ErrEvidenceNotFound)
}

func TestAwardByEvidenceUnknownEvidence(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)

	_, err := newRewardSvc(db).AwardByEvidence(p.ID, 9999, 1)
	assert.ErrorIs(t, err, util.ErrEvidenceNotFound)
}

func TestAwardLevelUp(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	p.XP = 95
	require.NoError(t, db.Save(p).Error)

	carta := createApprovedCarta(t, db, p.ID, model.AreaHealth, model.Action{
		Title:     "Run",
		Frequency: model.FrequencyDaily,
	})
	action := firstAction(t, db, carta.ID)
	evidence := createApprovedEvidence(t, db, p.ID, action.ID)

	result, err := newRewardSvc(db).AwardByEvidence(p.ID, evidence.ID, action.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.PreviousLevel)
	assert.Equal(t, 2, result.NewLevel)
	assert.True(t, result.LeveledUp)
}

func TestAwardSpecialTask(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)

	result, err := newRewardSvc(db).AwardSpecialTask(p.ID, 42, 0)
	require.NoError(t, err)

	assert.Equal(t, model.RarityLegendary, result.Rarity)
	assert.Equal(t, 100, result.XPGained)
	assert.Equal(t, 75, result.CoinsGained)
}

func TestAwardSpecialTaskCoinOverride(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)

	result, err := newRewardSvc(db).AwardSpecialTask(p.ID, 42, 500)
	require.NoError(t, err)

	assert.Equal(t, 100, result.XPGained)
	assert.Equal(t, 500, result.CoinsGained)
}

func TestAwardSpecialTaskUnknownParticipant(t *testing.T) {
	db := newTestDB(t)

	_, err := newRewardSvc(db).AwardSpecialTask(9999, 42, 0)
	assert.ErrorIs(t, err, util.ErrParticipantNotFound)
}

// The coin ledger must always reconcile with the stored balance.
func TestLedgerReconciliation(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	carta := createApprovedCarta(t, db, p.ID, model.AreaHealth, model.Action{
		Title:     "Run",
		Frequency: model.FrequencyDaily,
	})
	action := firstAction(t, db, carta.ID)
	svc := newRewardSvc(db)

	for i := 0; i < 3; i++ {
		evidence := createApprovedEvidence(t, db, p.ID, action.ID)
		_, err := svc.AwardByEvidence(p.ID, evidence.ID, action.ID)
		require.NoError(t, err)
	}
	_, err := svc.AwardSpecialTask(p.ID, 42, 0)
	require.NoError(t, err)

	var reloaded model.Participant
	require.NoError(t, db.First(&reloaded, p.ID).Error)

	rewardRepo := repository.NewRewardRepository(db)
	coinTotal, err := rewardRepo.SumByType(p.ID, model.RewardCoins)
	require.NoError(t, err)
	xpTotal, err := rewardRepo.SumByType(p.ID, model.RewardXP)
	require.NoError(t, err)

	assert.Equal(t, int64(reloaded.Coins), coinTotal)
	assert.Equal(t, int64(reloaded.XP), xpTotal)
	assert.Equal(t, 3*5+75, reloaded.Coins)
	assert.Equal(t, 3*10+100, reloaded.XP)
}

func TestAwardWritesBothLedgerEntries(t *testing.T) {
	db := newTestDB(t)
	p := createParticipant(t, db)
	carta := createApprovedCarta(t, db, p.ID, model.AreaHealth, model.Action{
		Title:     "Run",
		Frequency: model.FrequencyDaily,
	})
	action := firstAction(t, db, carta.ID)
	evidence := createApprovedEvidence(t, db, p.ID, action.ID)

	_, err := newRewardSvc(db).AwardByEvidence(p.ID, evidence.ID, action.ID)
	require.NoError(t, err)

	entries, err := repository.NewRewardRepository(db).ListByParticipant(p.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, model.RewardSourceEvidence, entry.SourceType)
		assert.Equal(t, evidence.ID, entry.SourceID)
		assert.Equal(t, model.RarityCommon, entry.Rarity)
	}
}
