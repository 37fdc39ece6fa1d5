package service

import (
	"fmt"

	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"mentora_backend/pkg/logger"
	"mentora_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CollectionProgress is one collection's state for a participant.
type CollectionProgress struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Current       int64  `json:"current"`
	Required      int64  `json:"required"`
	Completed     bool   `json:"completed"`
	JustCompleted bool   `json:"justCompleted"`
	CoinReward    int    `json:"coinReward"`
}

// CollectionService evaluates the achievement catalog's predicates against
// a participant's history and progression state.
type CollectionService struct {
	DB              *gorm.DB
	CollectionRepo  *repository.CollectionRepository
	ParticipantRepo *repository.ParticipantRepository
	EvidenceRepo    *repository.EvidenceRepository
}

func NewCollectionService(
	db *gorm.DB,
	collectionRepo *repository.CollectionRepository,
	participantRepo *repository.ParticipantRepository,
	evidenceRepo *repository.EvidenceRepository,
) *CollectionService {
	return &CollectionService{
		DB:              db,
		CollectionRepo:  collectionRepo,
		ParticipantRepo: participantRepo,
		EvidenceRepo:    evidenceRepo,
	}
}

// CheckAll evaluates every collection the participant has not yet earned
// and grants the satisfied ones: completion row, coin payout, ledger
// entry. Returns the collections granted by this call.
func (s *CollectionService) CheckAll(participantID uint) ([]CollectionProgress, error) {
	participant, err := s.ParticipantRepo.FindByID(participantID)
	if err != nil {
		return nil, err
	}

	collections, err := s.CollectionRepo.ListAll()
	if err != nil {
		return nil, err
	}
	completed, err := s.CollectionRepo.CompletedCodes(participantID)
	if err != nil {
		return nil, err
	}

	var justCompleted []CollectionProgress
	for _, collection := range collections {
		if completed[collection.Code] {
			continue
		}

		current, err := s.measure(participant, &collection)
		if err != nil {
			return nil, err
		}
		if current < int64(collection.RequirementValue) {
			continue
		}

		granted, err := s.grant(participant.ID, &collection)
		if err != nil {
			return nil, err
		}
		if !granted {
			// Lost a race to a concurrent check; the other call paid out.
			continue
		}

		justCompleted = append(justCompleted, CollectionProgress{
			Code:          collection.Code,
			Name:          collection.Name,
			Description:   collection.Description,
			Current:       current,
			Required:      int64(collection.RequirementValue),
			Completed:     true,
			JustCompleted: true,
			CoinReward:    collection.CoinReward,
		})
	}

	return justCompleted, nil
}

// ProgressAll computes progress numbers for every collection without
// granting anything; the display counterpart of CheckAll.
func (s *CollectionService) ProgressAll(participantID uint) ([]CollectionProgress, error) {
	participant, err := s.ParticipantRepo.FindByID(participantID)
	if err != nil {
		return nil, err
	}

	collections, err := s.CollectionRepo.ListAll()
	if err != nil {
		return nil, err
	}
	completed, err := s.CollectionRepo.CompletedCodes(participantID)
	if err != nil {
		return nil, err
	}

	progress := make([]CollectionProgress, 0, len(collections))
	for _, collection := range collections {
		current, err := s.measure(participant, &collection)
		if err != nil {
			return nil, err
		}
		required := int64(collection.RequirementValue)
		if current > required {
			current = required
		}
		progress = append(progress, CollectionProgress{
			Code:        collection.Code,
			Name:        collection.Name,
			Description: collection.Description,
			Current:     current,
			Required:    required,
			Completed:   completed[collection.Code],
			CoinReward:  collection.CoinReward,
		})
	}

	return progress, nil
}

// measure evaluates the collection's single predicate source: approved
// evidence history (optionally filtered by hour window, category, or
// keyword), the current streak, or the derived level.
func (s *CollectionService) measure(participant *model.Participant, collection *model.Collection) (int64, error) {
	switch collection.RequirementType {
	case model.RequireTotalCount:
		return s.EvidenceRepo.CountApproved(participant.ID)
	case model.RequireTimeOfDay:
		return s.EvidenceRepo.CountApprovedInHours(participant.ID, collection.HourFrom, collection.HourTo)
	case model.RequireCategoryCount:
		return s.EvidenceRepo.CountApprovedByCategory(participant.ID, collection.Category)
	case model.RequireKeywordCount:
		return s.EvidenceRepo.CountApprovedByKeyword(participant.ID, collection.Keyword)
	case model.RequireStreak:
		return int64(participant.CompletionStreak), nil
	case model.RequireLevel:
		return int64(LevelForXP(participant.XP)), nil
	default:
		return 0, fmt.Errorf("unknown requirement type %q for collection %s", collection.RequirementType, collection.Code)
	}
}

func (s *CollectionService) grant(participantID uint, collection *model.Collection) (bool, error) {
	granted := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		txRepo := repository.NewCollectionRepository(tx)
		inserted, err := txRepo.CreateCompletion(participantID, collection.Code)
		if err != nil {
			return err
		}
		if !inserted {
			return nil
		}

		err = tx.Model(&model.Participant{}).
			Where("id = ?", participantID).
			Update("coins", gorm.Expr("coins + ?", collection.CoinReward)).Error
		if err != nil {
			return err
		}

		entry := model.RewardEntry{
			ParticipantID: participantID,
			Type:          model.RewardCoins,
			Amount:        collection.CoinReward,
			Reason:        fmt.Sprintf("collection completed: %s", collection.Code),
			SourceType:    model.RewardSourceCollection,
			SourceID:      collection.ID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		granted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if granted {
		monitoring.CollectionsCompleted.Inc()
		logger.Log.Info("collection granted",
			zap.Uint("participantID", participantID),
			zap.String("collection", collection.Code),
			zap.Int("coins", collection.CoinReward))
	}
	return granted, nil
}
