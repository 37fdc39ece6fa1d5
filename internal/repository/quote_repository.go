package repository

import (
	"mentora_backend/internal/model"

	"gorm.io/gorm"
)

type QuoteRepository struct {
	DB *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{DB: db}
}

func (r *QuoteRepository) ListEnabled() ([]model.Quote, error) {
	var quotes []model.Quote
	err := r.DB.Where("is_enabled = ?", true).Find(&quotes).Error
	return quotes, err
}
