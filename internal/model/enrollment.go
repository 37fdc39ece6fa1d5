package model

import "time"

type CycleType string

const (
	CycleSolo  CycleType = "solo"
	CycleGroup CycleType = "group"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// Enrollment records a participant's cycle. A participant has at most one
// active enrollment at a time.
type Enrollment struct {
	BaseModel
	ParticipantID  uint             `gorm:"index;not null" json:"participantId"`
	CycleType      CycleType        `gorm:"size:10;default:'solo'" json:"cycleType"`
	CycleStartDate time.Time        `gorm:"not null" json:"cycleStartDate"`
	CycleEndDate   time.Time        `gorm:"not null" json:"cycleEndDate"`
	Status         EnrollmentStatus `gorm:"size:20;index;default:'active'" json:"status"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
