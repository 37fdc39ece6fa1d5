package repository

import (
	"mentora_backend/internal/model"

	"gorm.io/gorm"
)

type RewardRepository struct {
	DB *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{DB: db}
}

func (r *RewardRepository) Create(entry *model.RewardEntry) error {
	return r.DB.Create(entry).Error
}

func (r *RewardRepository) ListByParticipant(participantID uint, limit int) ([]model.RewardEntry, error) {
	var entries []model.RewardEntry
	query := r.DB.Where("participant_id = ?", participantID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&entries).Error
	return entries, err
}

// SumByType totals the ledger for one reward type; used by the
// reconciliation invariant between ledger and balances.
func (r *RewardRepository) SumByType(participantID uint, rewardType model.RewardType) (int64, error) {
	var total int64
	err := r.DB.Model(&model.RewardEntry{}).
		Where("participant_id = ? AND type = ?", participantID, rewardType).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// EntryExistsByReason reports whether an entry with the exact reason string
// already exists. Perfect-day reasons embed the evaluated calendar day, so
// this check stays correct even when the sweep runs the morning after.
func (r *RewardRepository) EntryExistsByReason(participantID uint, reason string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.RewardEntry{}).
		Where("participant_id = ? AND reason = ?", participantID, reason).
		Count(&count).Error
	return count > 0, err
}
