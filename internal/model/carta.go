package model

import "time"

type CartaStatus string

const (
	CartaDraft     CartaStatus = "draft"
	CartaSubmitted CartaStatus = "submitted"
	CartaApproved  CartaStatus = "approved"
	CartaRejected  CartaStatus = "rejected"
)

// Carta is the participant's declaration letter: the approved plan that
// groups goals and actions. The task generator only ever touches its
// TasksGeneratedAt stamp and the resolved cycle dates.
type Carta struct {
	BaseModel
	ParticipantID     uint        `gorm:"index;not null" json:"participantId"`
	Status            CartaStatus `gorm:"size:20;default:'draft'" json:"status"`
	IdentityStatement string      `gorm:"type:text" json:"identityStatement"`
	TasksGeneratedAt  *time.Time  `json:"tasksGeneratedAt,omitempty"`
	CycleStartDate    *time.Time  `json:"cycleStartDate,omitempty"`
	CycleEndDate      *time.Time  `json:"cycleEndDate,omitempty"`
	Goals             []Goal      `gorm:"foreignKey:CartaID" json:"goals,omitempty"`
}

func (Carta) TableName() string {
	return "cartas"
}
