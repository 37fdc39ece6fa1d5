package service

import (
	"context"
	"fmt"
	"time"

	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"mentora_backend/internal/util"
	"mentora_backend/pkg/logger"
	"mentora_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// GenerationResult is the non-throwing outcome of a bulk generation run.
// Expected failure modes land in Errors with Success=false; callers must
// check the flag rather than rely on an error return.
type GenerationResult struct {
	Success      bool     `json:"success"`
	TasksCreated int      `json:"tasksCreated"`
	Errors       []string `json:"errors,omitempty"`
}

// ValidationResult lists every precondition problem at once so a caller
// can display all of them together.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

const generationLockTTL = 30 * time.Second

// TaskGeneratorService expands an approved carta's actions into dated task
// occurrences over the cycle window.
type TaskGeneratorService struct {
	CartaRepo *repository.CartaRepository
	TaskRepo  *repository.TaskRepository
	Cycle     *CycleService
	Redis     *redis.Client
}

func NewTaskGeneratorService(
	cartaRepo *repository.CartaRepository,
	taskRepo *repository.TaskRepository,
	cycleService *CycleService,
	rdb *redis.Client,
) *TaskGeneratorService {
	return &TaskGeneratorService{
		CartaRepo: cartaRepo,
		TaskRepo:  taskRepo,
		Cycle:     cycleService,
		Redis:     rdb,
	}
}

// GenerateTasksForCarta expands every usable action of the approved carta
// across the full cycle window and persists the occurrences in one bulk
// insert. Duplicate protection is layered: a pre-count short-circuit here,
// and the (participant, action, due_date) unique index at the storage
// layer. On success the carta is stamped and an enrollment is created if
// the participant has none active.
func (s *TaskGeneratorService) GenerateTasksForCarta(cartaID uint) *GenerationResult {
	unlock, ok := s.acquireLock(fmt.Sprintf("mentora:generate:carta:%d", cartaID))
	if !ok {
		return failure("task generation is already in progress for this carta")
	}
	defer unlock()

	carta, err := s.CartaRepo.FindByID(cartaID)
	if err != nil {
		return failure(err.Error())
	}

	if validation := s.validate(carta); !validation.Valid {
		return &GenerationResult{Success: false, Errors: validation.Errors}
	}

	existing, err := s.TaskRepo.CountByCarta(cartaID)
	if err != nil {
		return s.unexpected("counting existing tasks", cartaID, err)
	}
	if existing > 0 {
		return failure(util.ErrTasksAlreadyGenerated.Error())
	}

	dates, err := s.Cycle.CalculateCycleDates(carta.ParticipantID, model.CycleSolo, nil)
	if err != nil {
		return failure(err.Error())
	}

	var tasks []model.TaskOccurrence
	for _, goal := range carta.Goals {
		for _, action := range goal.Actions {
			if !action.HasUsableRecurrence() {
				continue
			}
			tasks = append(tasks, expandAction(&action, carta.ParticipantID, carta.ID, dates.StartDate, dates.EndDate)...)
		}
	}

	created, err := s.TaskRepo.BulkCreateSkipDuplicates(tasks)
	if err != nil {
		return s.unexpected("bulk inserting tasks", cartaID, err)
	}
	monitoring.TasksGenerated.Add(float64(created))

	now := time.Now()
	if err := s.CartaRepo.MarkTasksGenerated(cartaID, now, dates.StartDate, dates.EndDate); err != nil {
		return s.unexpected("stamping carta", cartaID, err)
	}

	canStart, _, err := s.Cycle.CanStartNewCycle(carta.ParticipantID)
	if err != nil {
		return s.unexpected("checking enrollment", cartaID, err)
	}
	if canStart {
		if _, err := s.Cycle.CreateEnrollment(carta.ParticipantID, dates); err != nil {
			return s.unexpected("creating enrollment", cartaID, err)
		}
	}

	logger.Log.Info("tasks generated for carta",
		zap.Uint("cartaID", cartaID),
		zap.Uint("participantID", carta.ParticipantID),
		zap.Int64("tasksCreated", created))

	return &GenerationResult{Success: true, TasksCreated: int(created)}
}

// GenerateAdditionalTasks expands the participant's approved carta over an
// arbitrary sub-window, used to extend a cycle after a deadline extension.
// It does not re-check the carta's generation state, only that an approved
// carta exists. One-time actions that already have an occurrence anywhere
// in the cycle are not duplicated into the new window.
func (s *TaskGeneratorService) GenerateAdditionalTasks(participantID uint, fromDate, toDate time.Time) *GenerationResult {
	carta, err := s.CartaRepo.FindApprovedByParticipant(participantID)
	if err != nil {
		return failure(err.Error())
	}

	from := util.StartOfDay(fromDate)
	to := util.StartOfDay(toDate)
	if to.Before(from) {
		return failure("toDate must not be before fromDate")
	}

	var tasks []model.TaskOccurrence
	for _, goal := range carta.Goals {
		for _, action := range goal.Actions {
			if !action.HasUsableRecurrence() {
				continue
			}
			if action.Frequency == model.FrequencyOneTime {
				exists, err := s.TaskRepo.ActionOccurrenceExists(participantID, action.ID)
				if err != nil {
					return s.unexpected("checking one-time occurrence", carta.ID, err)
				}
				if exists {
					continue
				}
			}
			tasks = append(tasks, expandAction(&action, participantID, carta.ID, from, to)...)
		}
	}

	created, err := s.TaskRepo.BulkCreateSkipDuplicates(tasks)
	if err != nil {
		return s.unexpected("bulk inserting additional tasks", carta.ID, err)
	}
	monitoring.TasksGenerated.Add(float64(created))

	logger.Log.Info("additional tasks generated",
		zap.Uint("participantID", participantID),
		zap.Time("fromDate", from),
		zap.Time("toDate", to),
		zap.Int64("tasksCreated", created))

	return &GenerationResult{Success: true, TasksCreated: int(created)}
}

// ValidateCartaForGeneration reports every generation precondition problem
// for the carta without generating anything.
func (s *TaskGeneratorService) ValidateCartaForGeneration(cartaID uint) (*ValidationResult, error) {
	carta, err := s.CartaRepo.FindByID(cartaID)
	if err != nil {
		return nil, err
	}

	validation := s.validate(carta)

	existing, err := s.TaskRepo.CountByCarta(cartaID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		validation.Valid = false
		validation.Errors = append(validation.Errors, util.ErrTasksAlreadyGenerated.Error())
	}

	return validation, nil
}

// GetTaskStats aggregates the carta's occurrence totals by category and
// frequency, plus pending/completed counts.
func (s *TaskGeneratorService) GetTaskStats(cartaID uint) (*repository.CartaTaskStats, error) {
	if _, err := s.CartaRepo.FindByID(cartaID); err != nil {
		return nil, err
	}
	return s.TaskRepo.StatsByCarta(cartaID)
}

func (s *TaskGeneratorService) validate(carta *model.Carta) *ValidationResult {
	var errs []string

	if carta.Status != model.CartaApproved {
		errs = append(errs, util.ErrCartaNotApproved.Error())
	}

	usable := 0
	for _, goal := range carta.Goals {
		for _, action := range goal.Actions {
			if action.HasUsableRecurrence() {
				usable++
			}
		}
	}
	if usable == 0 {
		errs = append(errs, util.ErrNoConfiguredActions.Error())
	}

	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// expandAction walks the inclusive [start, end] window and collects one
// occurrence per date the recurrence rule accepts. One-time actions
// short-circuit to a single occurrence on the window start.
func expandAction(action *model.Action, participantID, cartaID uint, start, end time.Time) []model.TaskOccurrence {
	if action.Frequency == model.FrequencyOneTime {
		return []model.TaskOccurrence{newOccurrence(action, participantID, cartaID, start)}
	}

	var tasks []model.TaskOccurrence
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if OccursOn(action, d) {
			tasks = append(tasks, newOccurrence(action, participantID, cartaID, d))
		}
	}
	return tasks
}

func newOccurrence(action *model.Action, participantID, cartaID uint, dueDate time.Time) model.TaskOccurrence {
	task := model.TaskOccurrence{
		ParticipantID: participantID,
		ActionID:      action.ID,
		CartaID:       cartaID,
		DueDate:       dueDate,
		Status:        model.TaskPending,
	}
	if action.RequiresEvidence {
		task.EvidenceStatus = model.EvidenceNone
	}
	return task
}

// acquireLock serializes concurrent generation per carta through redis.
// Without a redis client (tests, single-node deployments) the storage
// unique index alone upholds the no-duplicates invariant.
func (s *TaskGeneratorService) acquireLock(key string) (func(), bool) {
	if s.Redis == nil {
		return func() {}, true
	}

	ctx := context.Background()
	ok, err := s.Redis.SetNX(ctx, key, 1, generationLockTTL).Result()
	if err != nil {
		logger.Log.Warn("generation lock unavailable", zap.String("key", key), zap.Error(err))
		return func() {}, true
	}
	if !ok {
		return nil, false
	}
	return func() { s.Redis.Del(ctx, key) }, true
}

func failure(messages ...string) *GenerationResult {
	return &GenerationResult{Success: false, Errors: messages}
}

func (s *TaskGeneratorService) unexpected(step string, cartaID uint, err error) *GenerationResult {
	logger.Log.Error("task generation failed",
		zap.String("step", step),
		zap.Uint("cartaID", cartaID),
		zap.Error(err))
	return failure(fmt.Sprintf("unexpected failure while %s", step))
}
