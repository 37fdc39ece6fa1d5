package service

import (
	"errors"
	"fmt"
	"time"

	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"mentora_backend/internal/util"
	"mentora_backend/pkg/logger"
	"mentora_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RewardResult reports the outcome of one completion award.
type RewardResult struct {
	XPGained      int          `json:"xpGained"`
	CoinsGained   int          `json:"coinsGained"`
	PreviousLevel int          `json:"previousLevel"`
	NewLevel      int          `json:"newLevel"`
	LeveledUp     bool         `json:"leveledUp"`
	Rarity        model.Rarity `json:"rarity"`
	Streak        int          `json:"streak"`
	Message       string       `json:"message"`
}

var rarityMessages = map[model.Rarity]string{
	model.RarityCommon:    "Well done! Another brick in the wall.",
	model.RarityUncommon:  "Nice work! Your week is taking shape.",
	model.RarityRare:      "Impressive! That one took real commitment.",
	model.RarityEpic:      "Outstanding! A whole month of follow-through.",
	model.RarityLegendary: "Legendary! You just did something remarkable.",
}

// RewardService reacts to completion events: payout by rarity, streak and
// level updates, and the append-only audit ledger.
type RewardService struct {
	DB           *gorm.DB
	EvidenceRepo *repository.EvidenceRepository
	RewardRepo   *repository.RewardRepository
}

func NewRewardService(
	db *gorm.DB,
	evidenceRepo *repository.EvidenceRepository,
	rewardRepo *repository.RewardRepository,
) *RewardService {
	return &RewardService{
		DB:           db,
		EvidenceRepo: evidenceRepo,
		RewardRepo:   rewardRepo,
	}
}

// AwardByEvidence grants the payout for an approved evidence of the given
// action. The participant row is locked for the duration of the
// read-apply-write, so concurrent awards for the same participant cannot
// lose updates.
func (s *RewardService) AwardByEvidence(participantID, evidenceID, actionID uint) (*RewardResult, error) {
	evidence, err := s.EvidenceRepo.FindByID(evidenceID)
	if err != nil {
		return nil, err
	}
	if evidence.ParticipantID != participantID {
		return nil, util.ErrEvidenceNotFound
	}
	if evidence.Status != model.EvidenceReviewApproved {
		return nil, util.ErrEvidenceNotApproved
	}

	var action model.Action
	if err := s.DB.First(&action, actionID).Error; err != nil {
		return nil, fmt.Errorf("loading action %d: %w", actionID, err)
	}

	rarity := resolveRarity(&action)
	payout := model.PayoutByRarity[rarity]

	return s.applyPayout(participantID, payout.XP, payout.Coins, rarity,
		fmt.Sprintf("completion of %q", action.Title),
		model.RewardSourceEvidence, evidenceID)
}

// AwardSpecialTask grants an admin-assigned special task at the highest
// tier, with an optional coin override replacing the table default.
func (s *RewardService) AwardSpecialTask(participantID, submissionID uint, assignedCoins int) (*RewardResult, error) {
	rarity := model.RarityLegendary
	payout := model.PayoutByRarity[rarity]
	coins := payout.Coins
	if assignedCoins > 0 {
		coins = assignedCoins
	}

	return s.applyPayout(participantID, payout.XP, coins, rarity,
		"special task completion",
		model.RewardSourceSpecialTask, submissionID)
}

// applyPayout runs the full reward transition in one transaction: lock the
// participant row, apply the completion event to the progress aggregate,
// persist the new state, and append the two ledger entries.
func (s *RewardService) applyPayout(participantID uint, xp, coins int, rarity model.Rarity, reason, sourceType string, sourceID uint) (*RewardResult, error) {
	var result *RewardResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// SQLite serializes writers on its own and rejects FOR UPDATE.
		read := tx
		if tx.Dialector.Name() == "mysql" {
			read = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var participant model.Participant
		err := read.First(&participant, participantID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrParticipantNotFound
		}
		if err != nil {
			return err
		}

		before := ProgressAggregate{
			XP:                 participant.XP,
			Coins:              participant.Coins,
			CompletionStreak:   participant.CompletionStreak,
			LastCompletionDate: participant.LastCompletionDate,
		}
		after := before.Apply(CompletionEvent{
			XP:          xp,
			Coins:       coins,
			CompletedAt: time.Now(),
		})

		participant.XP = after.XP
		participant.Coins = after.Coins
		participant.CompletionStreak = after.CompletionStreak
		participant.LastCompletionDate = after.LastCompletionDate
		if err := tx.Save(&participant).Error; err != nil {
			return err
		}

		entries := []model.RewardEntry{
			{
				ParticipantID: participantID,
				Type:          model.RewardXP,
				Amount:        xp,
				Reason:        reason,
				SourceType:    sourceType,
				SourceID:      sourceID,
				Rarity:        rarity,
			},
			{
				ParticipantID: participantID,
				Type:          model.RewardCoins,
				Amount:        coins,
				Reason:        reason,
				SourceType:    sourceType,
				SourceID:      sourceID,
				Rarity:        rarity,
			},
		}
		if err := tx.Create(&entries).Error; err != nil {
			return err
		}

		previousLevel := LevelForXP(before.XP)
		newLevel := LevelForXP(after.XP)
		result = &RewardResult{
			XPGained:      xp,
			CoinsGained:   coins,
			PreviousLevel: previousLevel,
			NewLevel:      newLevel,
			LeveledUp:     newLevel > previousLevel,
			Rarity:        rarity,
			Streak:        after.CompletionStreak,
			Message:       rarityMessages[rarity],
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.RewardsGranted.WithLabelValues(string(rarity)).Inc()
	logger.Log.Info("reward granted",
		zap.Uint("participantID", participantID),
		zap.String("rarity", string(rarity)),
		zap.Int("xp", result.XPGained),
		zap.Int("coins", result.CoinsGained),
		zap.Bool("leveledUp", result.LeveledUp))

	return result, nil
}

// resolveRarity prefers the action's explicit override and falls back to
// the frequency mapping.
func resolveRarity(action *model.Action) model.Rarity {
	if action.Rarity != "" {
		return action.Rarity
	}
	if rarity, ok := model.RarityByFrequency[action.Frequency]; ok {
		return rarity
	}
	return model.RarityCommon
}
