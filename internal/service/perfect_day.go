package service

import (
	"fmt"
	"time"

	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"mentora_backend/internal/util"
	"mentora_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PerfectDayResult reports whether the bonus was granted for the day.
type PerfectDayResult struct {
	Granted     bool `json:"granted"`
	CoinsGained int  `json:"coinsGained"`
	Scheduled   int  `json:"scheduled"`
	Completed   int  `json:"completed"`
}

// PerfectDayService grants a one-time coin bonus for calendar days where
// every scheduled occurrence was completed.
type PerfectDayService struct {
	DB         *gorm.DB
	TaskRepo   *repository.TaskRepository
	RewardRepo *repository.RewardRepository
}

func NewPerfectDayService(
	db *gorm.DB,
	taskRepo *repository.TaskRepository,
	rewardRepo *repository.RewardRepository,
) *PerfectDayService {
	return &PerfectDayService{
		DB:         db,
		TaskRepo:   taskRepo,
		RewardRepo: rewardRepo,
	}
}

// Evaluate checks the participant's scheduled vs completed occurrences for
// the calendar day containing date. A day with nothing scheduled earns
// nothing; a day already rewarded earns nothing again. The reason string
// embeds the day, which is what makes re-evaluation idempotent.
func (s *PerfectDayService) Evaluate(participantID uint, date time.Time) (*PerfectDayResult, error) {
	dayStart := util.StartOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	tasks, err := s.TaskRepo.FindByParticipantAndDay(participantID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	scheduled := len(tasks)
	completed := 0
	for _, t := range tasks {
		if t.Status == model.TaskCompleted {
			completed++
		}
	}

	result := &PerfectDayResult{Scheduled: scheduled, Completed: completed}
	if scheduled == 0 || completed < scheduled {
		return result, nil
	}

	reason := PerfectDayReason(dayStart)
	alreadyGranted, err := s.RewardRepo.EntryExistsByReason(participantID, reason)
	if err != nil {
		return nil, err
	}
	if alreadyGranted {
		return result, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Participant{}).
			Where("id = ?", participantID).
			Update("coins", gorm.Expr("coins + ?", util.PerfectDayCoinBonus)).Error
		if err != nil {
			return err
		}

		entry := model.RewardEntry{
			ParticipantID: participantID,
			Type:          model.RewardCoins,
			Amount:        util.PerfectDayCoinBonus,
			Reason:        reason,
			SourceType:    model.RewardSourcePerfectDay,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	result.Granted = true
	result.CoinsGained = util.PerfectDayCoinBonus

	logger.Log.Info("perfect day bonus granted",
		zap.Uint("participantID", participantID),
		zap.Time("day", dayStart),
		zap.Int("scheduled", scheduled))

	return result, nil
}

// PerfectDayReason builds the ledger reason for one calendar day.
func PerfectDayReason(day time.Time) string {
	return fmt.Sprintf("%s %s", util.PerfectDayReason, day.Format(util.DateFormat))
}
