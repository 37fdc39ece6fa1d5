package model

type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyOneTime  Frequency = "one_time"
)

// LastDayOfMonth is the assigned-day sentinel for monthly actions that fall
// on the last calendar day of each month. It is decoded into a tagged rule
// at the recurrence boundary and never compared against directly elsewhere.
const LastDayOfMonth = -1

// Action is a recurring or one-off commitment inside a goal.
//
// AssignedDays depends on Frequency: weekday indices 0-6 (Sunday = 0) for
// weekly/biweekly, a single day-of-month (1-31 or LastDayOfMonth) for
// monthly, empty for daily/one_time.
type Action struct {
	BaseModel
	GoalID           uint      `gorm:"index;not null" json:"goalId"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	Description      string    `gorm:"type:text" json:"description"`
	Frequency        Frequency `gorm:"size:20;not null" json:"frequency"`
	AssignedDays     []int     `gorm:"serializer:json" json:"assignedDays"`
	Rarity           Rarity    `gorm:"size:20" json:"rarity,omitempty"`
	RequiresEvidence bool      `gorm:"default:false" json:"requiresEvidence"`
}

func (Action) TableName() string {
	return "actions"
}

// HasUsableRecurrence reports whether the generator can expand this action:
// day-based frequencies need at least one assigned day, daily and one-time
// actions need none.
func (a *Action) HasUsableRecurrence() bool {
	switch a.Frequency {
	case FrequencyDaily, FrequencyOneTime:
		return true
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return len(a.AssignedDays) > 0
	default:
		return false
	}
}
