package model

type LifeArea string

const (
	AreaHealth        LifeArea = "health"
	AreaRelationships LifeArea = "relationships"
	AreaCareer        LifeArea = "career"
	AreaFinances      LifeArea = "finances"
	AreaSpirituality  LifeArea = "spirituality"
	AreaLearning      LifeArea = "learning"
	AreaRecreation    LifeArea = "recreation"
)

// LifeAreas is the fixed set of categories a goal can belong to.
var LifeAreas = []LifeArea{
	AreaHealth, AreaRelationships, AreaCareer, AreaFinances,
	AreaSpirituality, AreaLearning, AreaRecreation,
}

type Goal struct {
	BaseModel
	CartaID           uint     `gorm:"index;not null" json:"cartaId"`
	Category          LifeArea `gorm:"size:30;not null" json:"category"`
	Title             string   `gorm:"size:255;not null" json:"title"`
	IdentityStatement string   `gorm:"type:text" json:"identityStatement"`
	Actions           []Action `gorm:"foreignKey:GoalID" json:"actions,omitempty"`
}

func (Goal) TableName() string {
	return "goals"
}
