package repository

import (
	"mentora_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CollectionRepository struct {
	DB *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{DB: db}
}

func (r *CollectionRepository) ListAll() ([]model.Collection, error) {
	var collections []model.Collection
	err := r.DB.Order("id").Find(&collections).Error
	return collections, err
}

// CompletedCodes returns the set of collection codes the participant has
// already earned.
func (r *CollectionRepository) CompletedCodes(participantID uint) (map[string]bool, error) {
	var completions []model.CollectionCompletion
	err := r.DB.Where("participant_id = ?", participantID).Find(&completions).Error
	if err != nil {
		return nil, err
	}
	codes := make(map[string]bool, len(completions))
	for _, c := range completions {
		codes[c.CollectionCode] = true
	}
	return codes, nil
}

// CreateCompletion records a grant. The unique (participant, code) index
// rejects double grants; a conflict is reported as zero rows affected.
func (r *CollectionRepository) CreateCompletion(participantID uint, code string) (bool, error) {
	completion := model.CollectionCompletion{
		ParticipantID:  participantID,
		CollectionCode: code,
	}
	result := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
