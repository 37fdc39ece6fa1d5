package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EvidenceReviewStatus string

const (
	EvidenceReviewPending  EvidenceReviewStatus = "pending"
	EvidenceReviewApproved EvidenceReviewStatus = "approved"
	EvidenceReviewRejected EvidenceReviewStatus = "rejected"
)

// Evidence is the read model of the external evidence-review workflow.
// This core consumes approved evidence history for rewards and collection
// predicates; it never creates or reviews evidence itself.
type Evidence struct {
	BaseModel
	ParticipantID    uint                 `gorm:"index;not null" json:"participantId"`
	TaskOccurrenceID uint                 `gorm:"index;not null" json:"taskOccurrenceId"`
	ActionID         uint                 `gorm:"index;not null" json:"actionId"`
	Status           EvidenceReviewStatus `gorm:"size:20;index;default:'pending'" json:"status"`
	SubmittedAt      time.Time            `gorm:"not null" json:"submittedAt"`
	ReviewedAt       *time.Time           `json:"reviewedAt,omitempty"`
	ReviewRef        string               `gorm:"size:36" json:"reviewRef"`
}

func (Evidence) TableName() string {
	return "evidences"
}

func (e *Evidence) BeforeCreate(tx *gorm.DB) error {
	if e.ReviewRef == "" {
		e.ReviewRef = uuid.New().String()
	}
	return nil
}
