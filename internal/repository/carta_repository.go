package repository

import (
	"errors"
	"time"

	"mentora_backend/internal/model"
	"mentora_backend/internal/util"

	"gorm.io/gorm"
)

type CartaRepository struct {
	DB *gorm.DB
}

func NewCartaRepository(db *gorm.DB) *CartaRepository {
	return &CartaRepository{DB: db}
}

func (r *CartaRepository) Create(carta *model.Carta) error {
	return r.DB.Create(carta).Error
}

// FindByID loads the carta with its full goal/action tree, which is what
// the generator expands.
func (r *CartaRepository) FindByID(id uint) (*model.Carta, error) {
	var carta model.Carta
	err := r.DB.Preload("Goals.Actions").First(&carta, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCartaNotFound
	}
	if err != nil {
		return nil, err
	}
	return &carta, nil
}

// FindApprovedByParticipant returns the participant's most recent approved
// carta, goals and actions included.
func (r *CartaRepository) FindApprovedByParticipant(participantID uint) (*model.Carta, error) {
	var carta model.Carta
	err := r.DB.Preload("Goals.Actions").
		Where("participant_id = ? AND status = ?", participantID, model.CartaApproved).
		Order("created_at DESC").
		First(&carta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCartaNotFound
	}
	if err != nil {
		return nil, err
	}
	return &carta, nil
}

// MarkTasksGenerated stamps the carta with the generation time and the
// resolved cycle window.
func (r *CartaRepository) MarkTasksGenerated(cartaID uint, generatedAt, cycleStart, cycleEnd time.Time) error {
	return r.DB.Model(&model.Carta{}).
		Where("id = ?", cartaID).
		Updates(map[string]interface{}{
			"tasks_generated_at": generatedAt,
			"cycle_start_date":   cycleStart,
			"cycle_end_date":     cycleEnd,
		}).Error
}
