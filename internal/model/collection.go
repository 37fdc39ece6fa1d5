package model

type RequirementType string

const (
	RequireTotalCount    RequirementType = "total_count"
	RequireTimeOfDay     RequirementType = "time_of_day"
	RequireCategoryCount RequirementType = "category_count"
	RequireKeywordCount  RequirementType = "keyword_count"
	RequireStreak        RequirementType = "streak"
	RequireLevel         RequirementType = "level"
)

// Collection is a named achievement from the seeded catalog. Each one
// specifies exactly one requirement predicate and a fixed coin payout,
// granted at most once per participant.
type Collection struct {
	BaseModel
	Code             string          `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name             string          `gorm:"size:100;not null" json:"name"`
	Description      string          `gorm:"size:255" json:"description"`
	RequirementType  RequirementType `gorm:"size:30;not null" json:"requirementType"`
	RequirementValue int             `gorm:"not null" json:"requirementValue"`
	// Predicate parameters, meaningful per requirement type.
	HourFrom   int      `json:"hourFrom,omitempty"` // time_of_day: inclusive start hour
	HourTo     int      `json:"hourTo,omitempty"`   // time_of_day: exclusive end hour
	Category   LifeArea `gorm:"size:30" json:"category,omitempty"`
	Keyword    string   `gorm:"size:100" json:"keyword,omitempty"`
	CoinReward int      `gorm:"not null" json:"coinReward"`
	Icon       string   `gorm:"size:255" json:"icon,omitempty"`
}

func (Collection) TableName() string {
	return "collections"
}

// CollectionCompletion marks a collection as earned. Append-only; the
// unique pair makes grants idempotent at the storage layer.
type CollectionCompletion struct {
	BaseModel
	ParticipantID  uint   `gorm:"not null;uniqueIndex:idx_participant_collection" json:"participantId"`
	CollectionCode string `gorm:"size:50;not null;uniqueIndex:idx_participant_collection" json:"collectionCode"`
}

func (CollectionCompletion) TableName() string {
	return "collection_completions"
}
