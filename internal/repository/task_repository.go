package repository

import (
	"errors"
	"time"

	"mentora_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

// CountByCarta is the generator's fast-path duplicate check. The unique
// index enforced in BulkCreateSkipDuplicates is the actual safety net.
func (r *TaskRepository) CountByCarta(cartaID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TaskOccurrence{}).Where("carta_id = ?", cartaID).Count(&count).Error
	return count, err
}

// BulkCreateSkipDuplicates inserts occurrences in one statement, silently
// skipping rows that collide with the (participant, action, due_date)
// unique index. Returns how many rows were actually inserted.
func (r *TaskRepository) BulkCreateSkipDuplicates(tasks []model.TaskOccurrence) (int64, error) {
	if len(tasks) == 0 {
		return 0, nil
	}
	result := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&tasks)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *TaskRepository) FindByID(id uint) (*model.TaskOccurrence, error) {
	var task model.TaskOccurrence
	err := r.DB.First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Update(task *model.TaskOccurrence) error {
	return r.DB.Save(task).Error
}

// FindByParticipantAndDay returns every occurrence due within the calendar
// day containing date.
func (r *TaskRepository) FindByParticipantAndDay(participantID uint, dayStart, dayEnd time.Time) ([]model.TaskOccurrence, error) {
	var tasks []model.TaskOccurrence
	err := r.DB.Where("participant_id = ? AND due_date >= ? AND due_date < ?", participantID, dayStart, dayEnd).
		Find(&tasks).Error
	return tasks, err
}

// LastDueDate returns the latest due date among the participant's
// occurrences, or nil when none exist.
func (r *TaskRepository) LastDueDate(participantID uint) (*time.Time, error) {
	var task model.TaskOccurrence
	err := r.DB.Where("participant_id = ?", participantID).
		Order("due_date DESC").
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task.DueDate, nil
}

// ActionOccurrenceExists reports whether any occurrence exists for the
// given action, regardless of date.
func (r *TaskRepository) ActionOccurrenceExists(participantID, actionID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.TaskOccurrence{}).
		Where("participant_id = ? AND action_id = ?", participantID, actionID).
		Count(&count).Error
	return count > 0, err
}

// CartaTaskStats aggregates occurrence totals for one carta.
type CartaTaskStats struct {
	Total       int64                     `json:"total"`
	Pending     int64                     `json:"pending"`
	Completed   int64                     `json:"completed"`
	ByCategory  map[model.LifeArea]int64  `json:"byCategory"`
	ByFrequency map[model.Frequency]int64 `json:"byFrequency"`
}

func (r *TaskRepository) StatsByCarta(cartaID uint) (*CartaTaskStats, error) {
	stats := &CartaTaskStats{
		ByCategory:  make(map[model.LifeArea]int64),
		ByFrequency: make(map[model.Frequency]int64),
	}

	base := r.DB.Model(&model.TaskOccurrence{}).Where("carta_id = ?", cartaID)
	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", model.TaskPending).Count(&stats.Pending).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", model.TaskCompleted).Count(&stats.Completed).Error; err != nil {
		return nil, err
	}

	type categoryRow struct {
		Category model.LifeArea
		Count    int64
	}
	var categoryRows []categoryRow
	err := r.DB.Model(&model.TaskOccurrence{}).
		Select("goals.category AS category, COUNT(task_occurrences.id) AS count").
		Joins("JOIN actions ON actions.id = task_occurrences.action_id").
		Joins("JOIN goals ON goals.id = actions.goal_id").
		Where("task_occurrences.carta_id = ?", cartaID).
		Group("goals.category").
		Scan(&categoryRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range categoryRows {
		stats.ByCategory[row.Category] = row.Count
	}

	type frequencyRow struct {
		Frequency model.Frequency
		Count     int64
	}
	var frequencyRows []frequencyRow
	err = r.DB.Model(&model.TaskOccurrence{}).
		Select("actions.frequency AS frequency, COUNT(task_occurrences.id) AS count").
		Joins("JOIN actions ON actions.id = task_occurrences.action_id").
		Where("task_occurrences.carta_id = ?", cartaID).
		Group("actions.frequency").
		Scan(&frequencyRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range frequencyRows {
		stats.ByFrequency[row.Frequency] = row.Count
	}

	return stats, nil
}
