package repository

import (
	"errors"

	"mentora_backend/internal/model"
	"mentora_backend/internal/util"

	"gorm.io/gorm"
)

type ParticipantRepository struct {
	DB *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{DB: db}
}

func (r *ParticipantRepository) Create(p *model.Participant) error {
	return r.DB.Create(p).Error
}

func (r *ParticipantRepository) FindByID(id uint) (*model.Participant, error) {
	var p model.Participant
	err := r.DB.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrParticipantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParticipantRepository) Update(p *model.Participant) error {
	return r.DB.Save(p).Error
}

func (r *ParticipantRepository) FindTopByXP(limit int) ([]model.Participant, error) {
	var participants []model.Participant
	err := r.DB.Where("disabled = ?", false).Order("xp DESC").Limit(limit).Find(&participants).Error
	return participants, err
}
