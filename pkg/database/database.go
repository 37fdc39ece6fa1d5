package database

import (
	"fmt"
	"log"

	"mentora_backend/internal/config"
	"mentora_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// Release deployments migrate explicitly via the -migrate flag so that
	// restarts never race schema changes.
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")

		if err := Seed(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Migrate runs AutoMigrate for every model this core owns. The composite
// unique indexes on task occurrences and collection completions are part of
// the duplicate-protection contract and must exist before any generation.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Participant{},
		&model.Carta{},
		&model.Goal{},
		&model.Action{},
		&model.TaskOccurrence{},
		&model.Enrollment{},
		&model.RewardEntry{},
		&model.Collection{},
		&model.CollectionCompletion{},
		&model.Evidence{},
		&model.Quote{},
	)
}

// Seed inserts the default collection catalog and motivational quotes when
// the tables are empty.
func Seed(db *gorm.DB) error {
	var count int64
	db.Model(&model.Collection{}).Count(&count)
	if count == 0 {
		for _, c := range DefaultCollections() {
			if err := db.Create(&c).Error; err != nil {
				return err
			}
		}
	}

	var quoteCount int64
	db.Model(&model.Quote{}).Count(&quoteCount)
	if quoteCount == 0 {
		defaultQuotes := []string{
			"Every action you complete is a vote for the person you want to become.",
			"Discipline is choosing between what you want now and what you want most.",
			"Small daily wins compound into a different life.",
			"You don't rise to your goals, you fall to your systems.",
		}
		for _, content := range defaultQuotes {
			quote := &model.Quote{
				Content:   content,
				IsEnabled: true,
			}
			if err := db.Create(quote).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// DefaultCollections is the built-in achievement catalog. Codes are stable
// identifiers referenced by completion rows; do not rename them.
func DefaultCollections() []model.Collection {
	return []model.Collection{
		{
			Code:             "el-curador",
			Name:             "El Curador",
			Description:      "Get 100 evidences approved",
			RequirementType:  model.RequireTotalCount,
			RequirementValue: 100,
			CoinReward:       500,
		},
		{
			Code:             "primeros-pasos",
			Name:             "Primeros Pasos",
			Description:      "Get your first 10 evidences approved",
			RequirementType:  model.RequireTotalCount,
			RequirementValue: 10,
			CoinReward:       50,
		},
		{
			Code:             "madrugador",
			Name:             "Madrugador",
			Description:      "Submit 20 approved evidences before 8am",
			RequirementType:  model.RequireTimeOfDay,
			RequirementValue: 20,
			HourFrom:         4,
			HourTo:           8,
			CoinReward:       200,
		},
		{
			Code:             "noctambulo",
			Name:             "Noctámbulo",
			Description:      "Submit 20 approved evidences after 10pm",
			RequirementType:  model.RequireTimeOfDay,
			RequirementValue: 20,
			HourFrom:         22,
			HourTo:           24,
			CoinReward:       200,
		},
		{
			Code:             "cuerpo-sano",
			Name:             "Cuerpo Sano",
			Description:      "Complete 50 approved health actions",
			RequirementType:  model.RequireCategoryCount,
			RequirementValue: 50,
			Category:         model.AreaHealth,
			CoinReward:       300,
		},
		{
			Code:             "lector-voraz",
			Name:             "Lector Voraz",
			Description:      "Complete 30 approved reading actions",
			RequirementType:  model.RequireKeywordCount,
			RequirementValue: 30,
			Keyword:          "read",
			CoinReward:       250,
		},
		{
			Code:             "constancia",
			Name:             "Constancia",
			Description:      "Reach a 30 day completion streak",
			RequirementType:  model.RequireStreak,
			RequirementValue: 30,
			CoinReward:       400,
		},
		{
			Code:             "veterano",
			Name:             "Veterano",
			Description:      "Reach level 10",
			RequirementType:  model.RequireLevel,
			RequirementValue: 10,
			CoinReward:       350,
		},
	}
}
