package repository

import (
	"errors"

	"mentora_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

// FindActiveByParticipant returns the participant's active enrollment, or
// nil without error when there is none.
func (r *EnrollmentRepository) FindActiveByParticipant(participantID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("participant_id = ? AND status = ?", participantID, model.EnrollmentActive).
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) UpdateStatus(enrollmentID uint, status model.EnrollmentStatus) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("id = ?", enrollmentID).
		Update("status", status).Error
}
