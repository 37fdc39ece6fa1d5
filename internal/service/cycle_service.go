package service

import (
	"fmt"
	"time"

	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"mentora_backend/internal/util"
	"mentora_backend/pkg/logger"

	"go.uber.org/zap"
)

// CycleDates is the resolved generation window for one cycle. Both
// boundary days count: TotalDays = (end - start in days) + 1.
type CycleDates struct {
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	CycleType model.CycleType `json:"cycleType"`
	TotalDays int             `json:"totalDays"`
}

// CycleStats is the read-only progress snapshot of an active cycle.
type CycleStats struct {
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	TotalDays          int       `json:"totalDays"`
	ElapsedDays        int       `json:"elapsedDays"`
	RemainingDays      int       `json:"remainingDays"`
	ProgressPercentage float64   `json:"progressPercentage"`
	Status             string    `json:"status"`
}

// ExtensionValidation is the result of checking a proposed cycle end date.
type ExtensionValidation struct {
	Valid     bool   `json:"valid"`
	AddedDays int    `json:"addedDays"`
	Reason    string `json:"reason,omitempty"`
}

// CycleService computes cycle windows and manages enrollments.
type CycleService struct {
	ParticipantRepo *repository.ParticipantRepository
	EnrollmentRepo  *repository.EnrollmentRepository
	TaskRepo        *repository.TaskRepository
}

func NewCycleService(
	participantRepo *repository.ParticipantRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	taskRepo *repository.TaskRepository,
) *CycleService {
	return &CycleService{
		ParticipantRepo: participantRepo,
		EnrollmentRepo:  enrollmentRepo,
		TaskRepo:        taskRepo,
	}
}

// CalculateCycleDates resolves the cycle window for a participant. A nil
// start defaults to today. Only the solo variant is supported; requesting a
// group cycle fails explicitly instead of falling back to solo dates.
func (s *CycleService) CalculateCycleDates(participantID uint, cycleType model.CycleType, start *time.Time) (*CycleDates, error) {
	if _, err := s.ParticipantRepo.FindByID(participantID); err != nil {
		return nil, err
	}

	startDate := time.Now()
	if start != nil {
		startDate = *start
	}
	startDate = util.StartOfDay(startDate)

	switch cycleType {
	case model.CycleSolo, "":
		endDate := startDate.AddDate(0, 0, util.SoloCycleDays)
		return &CycleDates{
			StartDate: startDate,
			EndDate:   endDate,
			CycleType: model.CycleSolo,
			TotalDays: util.SoloCycleTotalDays,
		}, nil
	case model.CycleGroup:
		// Group cycles share an administrator-set end date. Declared but
		// not implemented yet.
		return nil, util.ErrGroupCycleNotSupported
	default:
		return nil, fmt.Errorf("unknown cycle type %q", cycleType)
	}
}

// CanStartNewCycle reports whether the participant may begin a cycle, with
// a human-readable reason when they may not.
func (s *CycleService) CanStartNewCycle(participantID uint) (bool, string, error) {
	if _, err := s.ParticipantRepo.FindByID(participantID); err != nil {
		return false, "", err
	}

	active, err := s.EnrollmentRepo.FindActiveByParticipant(participantID)
	if err != nil {
		return false, "", err
	}
	if active != nil {
		reason := fmt.Sprintf("an active cycle already exists (started %s, ends %s)",
			active.CycleStartDate.Format(util.DateFormat),
			active.CycleEndDate.Format(util.DateFormat))
		return false, reason, nil
	}

	return true, "", nil
}

// CreateEnrollment records an active cycle. Callers are expected to have
// checked CanStartNewCycle first; a lost race between the check and this
// insert is tolerated and logged rather than rejected.
func (s *CycleService) CreateEnrollment(participantID uint, dates *CycleDates) (*model.Enrollment, error) {
	active, err := s.EnrollmentRepo.FindActiveByParticipant(participantID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		logger.Log.Warn("creating enrollment while another is still active",
			zap.Uint("participantID", participantID),
			zap.Uint("activeEnrollmentID", active.ID))
	}

	enrollment := &model.Enrollment{
		ParticipantID:  participantID,
		CycleType:      dates.CycleType,
		CycleStartDate: dates.StartDate,
		CycleEndDate:   dates.EndDate,
		Status:         model.EnrollmentActive,
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// CalculateRemainingDays returns how many days of the active cycle remain
// after fromDate, never negative.
func (s *CycleService) CalculateRemainingDays(participantID uint, fromDate time.Time) (int, error) {
	enrollment, err := s.activeEnrollment(participantID)
	if err != nil {
		return 0, err
	}

	remaining := util.DaysBetween(fromDate, enrollment.CycleEndDate)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// GetLastTaskDate returns the latest generated due date for the
// participant, or nil when no tasks exist yet.
func (s *CycleService) GetLastTaskDate(participantID uint) (*time.Time, error) {
	if _, err := s.ParticipantRepo.FindByID(participantID); err != nil {
		return nil, err
	}
	return s.TaskRepo.LastDueDate(participantID)
}

// ValidateExtensionDate checks a proposed new end date for an existing
// cycle. The proposal must fall strictly after the current end.
func (s *CycleService) ValidateExtensionDate(currentEnd, proposedEnd time.Time) ExtensionValidation {
	added := util.DaysBetween(currentEnd, proposedEnd)
	if added <= 0 {
		return ExtensionValidation{
			Valid:  false,
			Reason: util.ErrInvalidExtensionDate.Error(),
		}
	}
	return ExtensionValidation{Valid: true, AddedDays: added}
}

// GetCycleStats summarizes the participant's active cycle.
func (s *CycleService) GetCycleStats(participantID uint) (*CycleStats, error) {
	enrollment, err := s.activeEnrollment(participantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	total := util.DaysBetween(enrollment.CycleStartDate, enrollment.CycleEndDate) + 1

	elapsed := util.DaysBetween(enrollment.CycleStartDate, now) + 1
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > total {
		elapsed = total
	}

	remaining := util.DaysBetween(now, enrollment.CycleEndDate)
	if remaining < 0 {
		remaining = 0
	}

	progress := float64(elapsed) / float64(total) * 100

	return &CycleStats{
		StartDate:          enrollment.CycleStartDate,
		EndDate:            enrollment.CycleEndDate,
		TotalDays:          total,
		ElapsedDays:        elapsed,
		RemainingDays:      remaining,
		ProgressPercentage: progress,
		Status:             string(enrollment.Status),
	}, nil
}

func (s *CycleService) activeEnrollment(participantID uint) (*model.Enrollment, error) {
	if _, err := s.ParticipantRepo.FindByID(participantID); err != nil {
		return nil, err
	}
	enrollment, err := s.EnrollmentRepo.FindActiveByParticipant(participantID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, util.ErrEnrollmentNotFound
	}
	return enrollment, nil
}
