package model

import (
	"time"
)

type ParticipantRole string

const (
	RoleParticipant ParticipantRole = "participant"
	RoleMentor      ParticipantRole = "mentor"
	RoleAdmin       ParticipantRole = "admin"
)

// Participant carries the progression state mutated by the reward engine.
// Level is intentionally NOT a column: it is always derived from XP through
// the threshold table, so it can never drift from the ledger.
type Participant struct {
	BaseModel
	Name               string          `gorm:"size:100;not null" json:"name"`
	Email              string          `gorm:"size:100;unique;not null" json:"email"`
	Role               ParticipantRole `gorm:"size:20;default:'participant'" json:"role"`
	XP                 int             `gorm:"default:0" json:"xp"`
	Coins              int             `gorm:"default:0" json:"coins"`
	CompletionStreak   int             `gorm:"default:0" json:"completionStreak"`
	LastCompletionDate *time.Time      `json:"lastCompletionDate,omitempty"`
	Disabled           bool            `gorm:"default:false" json:"disabled"`
	LastSeen           time.Time       `gorm:"autoUpdateTime" json:"lastSeen"`
}

func (Participant) TableName() string {
	return "participants"
}
