package model

import "time"

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskSubmitted TaskStatus = "submitted"
	TaskCompleted TaskStatus = "completed"
	TaskRejected  TaskStatus = "rejected"
	TaskSkipped   TaskStatus = "skipped"
	TaskExpired   TaskStatus = "expired"
)

type EvidenceState string

const (
	EvidenceNone     EvidenceState = "none"
	EvidencePending  EvidenceState = "pending"
	EvidenceApproved EvidenceState = "approved"
	EvidenceRejected EvidenceState = "rejected"
)

// TaskOccurrence is one concrete, dated instance of an action. Occurrences
// are created in bulk by the task generator and only ever transition status
// afterwards; they are never deleted.
//
// The composite unique index is the storage-level half of the duplicate
// protection contract: the generator's pre-count is only a fast path.
type TaskOccurrence struct {
	BaseModel
	ParticipantID  uint          `gorm:"not null;uniqueIndex:idx_participant_action_due" json:"participantId"`
	ActionID       uint          `gorm:"not null;uniqueIndex:idx_participant_action_due" json:"actionId"`
	CartaID        uint          `gorm:"index;not null" json:"cartaId"`
	DueDate        time.Time     `gorm:"not null;uniqueIndex:idx_participant_action_due" json:"dueDate"`
	Status         TaskStatus    `gorm:"size:20;default:'pending'" json:"status"`
	PostponeCount  int           `gorm:"default:0" json:"postponeCount"`
	EvidenceStatus EvidenceState `gorm:"size:20" json:"evidenceStatus,omitempty"`
}

func (TaskOccurrence) TableName() string {
	return "task_occurrences"
}
