package model

// Rarity classifies how much a completion pays out. Five ordered tiers.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// RarityByFrequency is the fallback mapping used when an action carries no
// explicit rarity override: the less frequent the cadence, the higher the
// tier. One-time and admin-assigned special tasks sit at the top.
var RarityByFrequency = map[Frequency]Rarity{
	FrequencyDaily:    RarityCommon,
	FrequencyWeekly:   RarityUncommon,
	FrequencyBiweekly: RarityRare,
	FrequencyMonthly:  RarityEpic,
	FrequencyOneTime:  RarityLegendary,
}

// Payout is the fixed (XP, coins) pair granted for one completion.
type Payout struct {
	XP    int
	Coins int
}

var PayoutByRarity = map[Rarity]Payout{
	RarityCommon:    {XP: 10, Coins: 5},
	RarityUncommon:  {XP: 20, Coins: 10},
	RarityRare:      {XP: 35, Coins: 20},
	RarityEpic:      {XP: 60, Coins: 35},
	RarityLegendary: {XP: 100, Coins: 75},
}

type RewardType string

const (
	RewardXP    RewardType = "xp"
	RewardCoins RewardType = "coins"
)

// Source types referenced by ledger entries.
const (
	RewardSourceEvidence    = "evidence"
	RewardSourceSpecialTask = "special_task"
	RewardSourcePerfectDay  = "perfect_day"
	RewardSourceCollection  = "collection"
)

// RewardEntry is one row of the append-only audit ledger. The sum of coin
// entries for a participant must reconcile with their balance; the ledger
// is never updated or deleted.
type RewardEntry struct {
	BaseModel
	ParticipantID uint       `gorm:"index;not null" json:"participantId"`
	Type          RewardType `gorm:"size:10;not null" json:"type"`
	Amount        int        `gorm:"not null" json:"amount"`
	Reason        string     `gorm:"size:255;not null" json:"reason"`
	SourceType    string     `gorm:"size:30;index" json:"sourceType"`
	SourceID      uint       `gorm:"index" json:"sourceId"`
	Rarity        Rarity     `gorm:"size:20" json:"rarity,omitempty"`
}

func (RewardEntry) TableName() string {
	return "reward_entries"
}
