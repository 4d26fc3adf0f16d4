package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quizroom_backend/internal/repository"
	"quizroom_backend/internal/util"
	"quizroom_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 最终榜缓存的是不带 isCurrentUser 标记的中性结果，标记在读取后按请求者补上
const finalLeaderboardTTL = 30 * time.Second

type LeaderboardService struct {
	RoomRepo     *repository.RoomRepository
	QuestionRepo *repository.QuestionRepository
	AttemptRepo  *repository.AttemptRepository
	Redis        *redis.Client
}

func NewLeaderboardService(
	roomRepo *repository.RoomRepository,
	questionRepo *repository.QuestionRepository,
	attemptRepo *repository.AttemptRepository,
	rdb *redis.Client,
) *LeaderboardService {
	return &LeaderboardService{
		RoomRepo:     roomRepo,
		QuestionRepo: questionRepo,
		AttemptRepo:  attemptRepo,
		Redis:        rdb,
	}
}

type CurrentLeaderboard struct {
	Entries         []CurrentEntry `json:"leaderboard"`
	CurrentQuestion int            `json:"currentQuestion"`
}

type RoomInfo struct {
	RoomName       string `json:"roomName"`
	TotalQuestions int    `json:"totalQuestions"`
}

type FinalLeaderboard struct {
	Entries         []FinalEntry `json:"leaderboard"`
	UserPerformance *FinalEntry  `json:"userPerformance,omitempty"`
	RoomInfo        RoomInfo     `json:"roomInfo"`
}

// Current 进行中的排行榜，按题号截断
func (s *LeaderboardService) Current(roomCode string, cutoff int, currentUserID uint) (*CurrentLeaderboard, error) {
	room, err := s.RoomRepo.FindByCode(roomCode)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrRoomNotFound
		}
		return nil, err
	}

	attempts, err := s.AttemptRepo.FindByRoom(room.ID)
	if err != nil {
		return nil, err
	}

	return &CurrentLeaderboard{
		Entries:         BuildCurrentLeaderboard(attempts, cutoff, currentUserID),
		CurrentQuestion: cutoff,
	}, nil
}

// Final 最终排行榜，结果短暂缓存在 redis
func (s *LeaderboardService) Final(ctx context.Context, roomCode string, currentUserID uint) (*FinalLeaderboard, error) {
	room, err := s.RoomRepo.FindByCode(roomCode)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrRoomNotFound
		}
		return nil, err
	}

	questionCount, err := s.QuestionRepo.CountByRoom(room.ID)
	if err != nil {
		return nil, err
	}

	entries, ok := s.cachedFinalEntries(ctx, roomCode)
	if !ok {
		attempts, err := s.AttemptRepo.FindTerminalByRoom(room.ID)
		if err != nil {
			return nil, err
		}
		// currentUserID=0 生成中性条目供缓存
		entries = BuildFinalLeaderboard(attempts, int(questionCount), 0)
		s.cacheFinalEntries(ctx, roomCode, entries)
	}

	result := &FinalLeaderboard{
		Entries: entries,
		RoomInfo: RoomInfo{
			RoomName:       room.Name,
			TotalQuestions: int(questionCount),
		},
	}
	for i := range result.Entries {
		if result.Entries[i].UserID == currentUserID {
			result.Entries[i].IsCurrentUser = true
			entry := result.Entries[i]
			result.UserPerformance = &entry
		}
	}
	return result, nil
}

// InvalidateFinal 答题完成或被清理任务扫到后让缓存失效
func (s *LeaderboardService) InvalidateFinal(ctx context.Context, roomCode string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, finalLeaderboardKey(roomCode)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate final leaderboard cache",
			zap.String("roomCode", roomCode), zap.Error(err))
	}
}

func finalLeaderboardKey(roomCode string) string {
	return fmt.Sprintf("leaderboard:final:%s", roomCode)
}

func (s *LeaderboardService) cachedFinalEntries(ctx context.Context, roomCode string) ([]FinalEntry, bool) {
	if s.Redis == nil {
		return nil, false
	}
	data, err := s.Redis.Get(ctx, finalLeaderboardKey(roomCode)).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []FinalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (s *LeaderboardService) cacheFinalEntries(ctx context.Context, roomCode string, entries []FinalEntry) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, finalLeaderboardKey(roomCode), data, finalLeaderboardTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache final leaderboard",
			zap.String("roomCode", roomCode), zap.Error(err))
	}
}
