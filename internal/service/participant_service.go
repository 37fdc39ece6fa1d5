package service

import (
	"context"
	"fmt"
	"time"

	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"mentora_backend/internal/util"

	"github.com/go-redis/redis/v8"
)

// ProgressSnapshot is the participant-facing progression summary.
type ProgressSnapshot struct {
	XP                 int                 `json:"xp"`
	Coins              int                 `json:"coins"`
	Level              int                 `json:"level"`
	NextLevelXP        int                 `json:"nextLevelXp"`
	CompletionStreak   int                 `json:"completionStreak"`
	LastCompletionDate *time.Time          `json:"lastCompletionDate,omitempty"`
	Collections        []string            `json:"collections"`
	RecentRewards      []model.RewardEntry `json:"recentRewards"`
}

type LeaderboardEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	XP    int    `json:"xp"`
	Level int    `json:"level"`
}

// ParticipantService serves read-only progression views.
type ParticipantService struct {
	ParticipantRepo *repository.ParticipantRepository
	CollectionRepo  *repository.CollectionRepository
	RewardRepo      *repository.RewardRepository
	QuoteRepo       *repository.QuoteRepository
	Redis           *redis.Client
}

func NewParticipantService(
	participantRepo *repository.ParticipantRepository,
	collectionRepo *repository.CollectionRepository,
	rewardRepo *repository.RewardRepository,
	quoteRepo *repository.QuoteRepository,
	rdb *redis.Client,
) *ParticipantService {
	return &ParticipantService{
		ParticipantRepo: participantRepo,
		CollectionRepo:  collectionRepo,
		RewardRepo:      rewardRepo,
		QuoteRepo:       quoteRepo,
		Redis:           rdb,
	}
}

func (s *ParticipantService) GetProgress(participantID uint) (*ProgressSnapshot, error) {
	participant, err := s.ParticipantRepo.FindByID(participantID)
	if err != nil {
		return nil, err
	}

	completed, err := s.CollectionRepo.CompletedCodes(participantID)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(completed))
	for code := range completed {
		codes = append(codes, code)
	}

	recent, err := s.RewardRepo.ListByParticipant(participantID, 20)
	if err != nil {
		return nil, err
	}

	return &ProgressSnapshot{
		XP:                 participant.XP,
		Coins:              participant.Coins,
		Level:              LevelForXP(participant.XP),
		NextLevelXP:        NextLevelXP(participant.XP),
		CompletionStreak:   participant.CompletionStreak,
		LastCompletionDate: participant.LastCompletionDate,
		Collections:        codes,
		RecentRewards:      recent,
	}, nil
}

func (s *ParticipantService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	participants, err := s.ParticipantRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	leaderboard := make([]LeaderboardEntry, len(participants))
	for i, p := range participants {
		leaderboard[i] = LeaderboardEntry{
			Rank:  i + 1,
			Name:  p.Name,
			XP:    p.XP,
			Level: LevelForXP(p.XP),
		}
	}

	return leaderboard, nil
}

// GetDailyQuote returns the day's motivational quote. The pick rotates
// with the date and is cached in redis until midnight.
func (s *ParticipantService) GetDailyQuote() (string, error) {
	today := time.Now().Format(util.DateFormat)
	cacheKey := fmt.Sprintf("mentora:quote:%s", today)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(context.Background(), cacheKey).Result(); err == nil {
			return cached, nil
		}
	}

	quotes, err := s.QuoteRepo.ListEnabled()
	if err != nil {
		return "", err
	}
	if len(quotes) == 0 {
		return "", nil
	}

	quote := quotes[time.Now().YearDay()%len(quotes)].Content

	if s.Redis != nil {
		ttl := time.Until(util.StartOfDay(time.Now()).AddDate(0, 0, 1))
		s.Redis.Set(context.Background(), cacheKey, quote, ttl)
	}

	return quote, nil
}
