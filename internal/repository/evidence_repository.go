package repository

import (
	"errors"

	"mentora_backend/internal/model"
	"mentora_backend/internal/util"

	"gorm.io/gorm"
)

// EvidenceRepository reads the evidence-review workflow's records. This
// core never mutates them.
type EvidenceRepository struct {
	DB *gorm.DB
}

func NewEvidenceRepository(db *gorm.DB) *EvidenceRepository {
	return &EvidenceRepository{DB: db}
}

func (r *EvidenceRepository) FindByID(id uint) (*model.Evidence, error) {
	var evidence model.Evidence
	err := r.DB.First(&evidence, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEvidenceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &evidence, nil
}

func (r *EvidenceRepository) CountApproved(participantID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Evidence{}).
		Where("participant_id = ? AND status = ?", participantID, model.EvidenceReviewApproved).
		Count(&count).Error
	return count, err
}

// CountApprovedInHours counts approved evidences submitted within the
// [hourFrom, hourTo) local-hour window.
func (r *EvidenceRepository) CountApprovedInHours(participantID uint, hourFrom, hourTo int) (int64, error) {
	evidences, err := r.listApproved(participantID)
	if err != nil {
		return 0, err
	}
	var count int64
	for _, e := range evidences {
		hour := e.SubmittedAt.Hour()
		if hour >= hourFrom && hour < hourTo {
			count++
		}
	}
	return count, nil
}

// CountApprovedByCategory counts approved evidences whose action belongs to
// a goal in the given life area.
func (r *EvidenceRepository) CountApprovedByCategory(participantID uint, category model.LifeArea) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Evidence{}).
		Joins("JOIN actions ON actions.id = evidences.action_id").
		Joins("JOIN goals ON goals.id = actions.goal_id").
		Where("evidences.participant_id = ? AND evidences.status = ? AND goals.category = ?",
			participantID, model.EvidenceReviewApproved, category).
		Count(&count).Error
	return count, err
}

// CountApprovedByKeyword counts approved evidences whose action title or
// description matches the keyword.
func (r *EvidenceRepository) CountApprovedByKeyword(participantID uint, keyword string) (int64, error) {
	pattern := "%" + keyword + "%"
	var count int64
	err := r.DB.Model(&model.Evidence{}).
		Joins("JOIN actions ON actions.id = evidences.action_id").
		Where("evidences.participant_id = ? AND evidences.status = ? AND (actions.title LIKE ? OR actions.description LIKE ?)",
			participantID, model.EvidenceReviewApproved, pattern, pattern).
		Count(&count).Error
	return count, err
}

func (r *EvidenceRepository) listApproved(participantID uint) ([]model.Evidence, error) {
	var evidences []model.Evidence
	err := r.DB.Where("participant_id = ? AND status = ?", participantID, model.EvidenceReviewApproved).
		Find(&evidences).Error
	return evidences, err
}
