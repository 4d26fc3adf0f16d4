package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"quizroom_backend/internal/config"
	"quizroom_backend/internal/model"
	"quizroom_backend/internal/repository"
	"quizroom_backend/internal/util"
	"quizroom_backend/pkg/logger"
	"quizroom_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	AttemptRepo  *repository.AttemptRepository
	RoomRepo     *repository.RoomRepository
	QuestionRepo *repository.QuestionRepository
	Leaderboard  *LeaderboardService
	Cfg          *config.Config
	DB           *gorm.DB
}

func NewQuizService(
	attemptRepo *repository.AttemptRepository,
	roomRepo *repository.RoomRepository,
	questionRepo *repository.QuestionRepository,
	leaderboard *LeaderboardService,
	cfg *config.Config,
	db *gorm.DB,
) *QuizService {
	return &QuizService{
		AttemptRepo:  attemptRepo,
		RoomRepo:     roomRepo,
		QuestionRepo: questionRepo,
		Leaderboard:  leaderboard,
		Cfg:          cfg,
		DB:           db,
	}
}

// QuestionView 下发给答题端的题目，不含正确答案
type QuestionView struct {
	ID         uint     `json:"questionId"`
	Type       string   `json:"type"`
	Difficulty string   `json:"difficulty"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Order      int      `json:"order"`
}

func toQuestionViews(questions []model.Question) []QuestionView {
	views := make([]QuestionView, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		views = append(views, QuestionView{
			ID:         q.ID,
			Type:       q.Type,
			Difficulty: q.Difficulty,
			Question:   q.Prompt,
			Options:    q.OptionList(),
			Order:      q.Order,
		})
	}
	return views
}

type AttemptStatusInfo struct {
	HasAttempted  bool   `json:"hasAttempted"`
	AttemptStatus string `json:"attemptStatus,omitempty"`
}

// CheckAttempt 查询用户在该房间是否已有答题记录
func (s *QuizService) CheckAttempt(userID uint, roomCode string) (*AttemptStatusInfo, error) {
	room, err := s.RoomRepo.FindByCode(roomCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoomNotFound
		}
		return nil, err
	}

	attempt, err := s.AttemptRepo.FindByUserAndRoom(userID, room.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &AttemptStatusInfo{HasAttempted: false}, nil
		}
		return nil, err
	}
	return &AttemptStatusInfo{HasAttempted: true, AttemptStatus: attempt.Status}, nil
}

type StartResult struct {
	AttemptID            uint           `json:"attemptId"`
	CurrentQuestionIndex int            `json:"currentQuestionIndex"`
	TotalQuestions       int            `json:"totalQuestions"`
	Resumed              bool           `json:"resumed"`
	HeartbeatSeconds     int            `json:"heartbeatSeconds"`
	Questions            []QuestionView `json:"questions"`
}

// Start 开始（或恢复）一次答题。
// 已有终态记录返回 ErrQuizAlreadyTaken，调用方据此跳转最终排行榜；
// 已有 in-progress 记录从存储的游标继续，重复开始是幂等的。
func (s *QuizService) Start(userID uint, roomCode string) (*StartResult, error) {
	room, err := s.RoomRepo.FindByCodeWithQuestions(roomCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoomNotFound
		}
		return nil, err
	}

	result := &StartResult{
		TotalQuestions:   len(room.Questions),
		HeartbeatSeconds: s.Cfg.Quiz.HeartbeatSeconds,
		Questions:        toQuestionViews(room.Questions),
	}

	attempt, err := s.AttemptRepo.FindByUserAndRoom(userID, room.ID)
	if err == nil {
		if attempt.IsTerminal() {
			return nil, util.ErrQuizAlreadyTaken
		}
		result.AttemptID = attempt.ID
		result.CurrentQuestionIndex = attempt.CurrentQuestionIndex
		result.Resumed = true
		return result, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	attempt = &model.QuizAttempt{
		UserID:        userID,
		RoomID:        room.ID,
		Status:        model.AttemptStatusInProgress,
		StartedAt:     now,
		LastHeartbeat: now,
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		// 并发重复开始时由 (user_id, room_id) 唯一索引挡下，改走恢复路径
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.Start(userID, roomCode)
		}
		return nil, err
	}

	monitoring.AttemptsStarted.Inc()
	logger.Log.Info("quiz started",
		zap.String("roomCode", roomCode), zap.Uint("userId", userID))

	result.AttemptID = attempt.ID
	return result, nil
}

type SubmitAnswerInput struct {
	AttemptID      uint    `json:"attemptId" binding:"required"`
	QuestionID     uint    `json:"questionId" binding:"required"`
	SelectedAnswer string  `json:"selectedAnswer" binding:"required"`
	TimeSpent      float64 `json:"timeSpent"`
}

type AnswerResult struct {
	IsCorrect            bool `json:"isCorrect"`
	PointsEarned         int  `json:"pointsEarned"`
	TimeBonus            int  `json:"timeBonus"`
	CurrentQuestionIndex int  `json:"currentQuestionIndex"`
	TotalScore           int  `json:"totalScore"`
}

// SubmitAnswer 提交单题答案。
// 重复提交由 attempt_answers 的唯一索引在写入时原子拒绝；
// 累加总分与清理任务的竞争由 status 条件更新兜底——极端情况下
// 最后一刻的答案会被拒绝，这是文档化的取舍而非缺陷。
func (s *QuizService) SubmitAnswer(userID uint, input SubmitAnswerInput) (*AnswerResult, error) {
	attempt, err := s.AttemptRepo.FindByID(input.AttemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.IsTerminal() {
		return nil, util.ErrAttemptNotInProgress
	}

	question, err := s.QuestionRepo.FindByID(input.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if question.RoomID != attempt.RoomID {
		return nil, util.ErrQuestionNotFound
	}

	timeSpent := ClampTimeSpent(input.TimeSpent)
	isCorrect := strings.TrimSpace(input.SelectedAnswer) == strings.TrimSpace(question.CorrectAnswer)
	points := CalculatePoints(question.Difficulty, timeSpent, isCorrect)

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		answer := &model.AttemptAnswer{
			AttemptID:      attempt.ID,
			QuestionID:     question.ID,
			SelectedAnswer: input.SelectedAnswer,
			IsCorrect:      isCorrect,
			TimeSpent:      timeSpent,
			PointsEarned:   points,
			AnsweredAt:     now,
		}
		if err := s.AttemptRepo.CreateAnswer(tx, answer); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrQuestionAlreadyAnswered
			}
			return err
		}

		rows, err := s.AttemptRepo.ApplyAnswer(tx, attempt.ID, points, timeSpent, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			return util.ErrAttemptNotInProgress
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.AnswersSubmitted.WithLabelValues(strconv.FormatBool(isCorrect)).Inc()

	bonus := 0
	if isCorrect {
		bonus = TimeBonus(timeSpent)
	}
	return &AnswerResult{
		IsCorrect:            isCorrect,
		PointsEarned:         points,
		TimeBonus:            bonus,
		CurrentQuestionIndex: attempt.CurrentQuestionIndex + 1,
		TotalScore:           attempt.TotalScore + points,
	}, nil
}

func (s *QuizService) findOwnedAttempt(userID, attemptID uint) (*model.QuizAttempt, error) {
	attempt, err := s.AttemptRepo.FindOwned(attemptID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	return attempt, nil
}

// Heartbeat 客户端周期性的存活信号，只刷新 last_heartbeat。
// 终态记录直接应答，不报错。
func (s *QuizService) Heartbeat(userID, attemptID uint) error {
	attempt, err := s.findOwnedAttempt(userID, attemptID)
	if err != nil {
		return err
	}
	if attempt.IsTerminal() {
		return nil
	}
	_, err = s.AttemptRepo.Touch(attempt.ID, time.Now())
	return err
}

type CompleteResult struct {
	TotalScore int     `json:"totalScore"`
	TotalTime  float64 `json:"totalTime"`
}

// Complete 客户端显式结束答题：in-progress → completed，
// 并把用户加入房间参与者集合
func (s *QuizService) Complete(ctx context.Context, userID, attemptID uint) (*CompleteResult, error) {
	attempt, err := s.findOwnedAttempt(userID, attemptID)
	if err != nil {
		return nil, err
	}

	rows, err := s.AttemptRepo.MarkCompleted(attempt.ID, time.Now())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, util.ErrAttemptNotInProgress
	}

	if err := s.RoomRepo.AddParticipant(attempt.RoomID, attempt.UserID); err != nil {
		logger.Log.Error("failed to add participant on completion",
			zap.Uint("roomId", attempt.RoomID), zap.Uint("userId", attempt.UserID), zap.Error(err))
	}

	monitoring.AttemptsCompleted.Inc()
	s.invalidateFinalByRoomID(ctx, attempt.RoomID)

	logger.Log.Info("quiz completed",
		zap.Uint("attemptId", attempt.ID), zap.Uint("userId", userID))

	// 条件更新后重读拿到最终累计值
	fresh, err := s.AttemptRepo.FindByID(attempt.ID)
	if err != nil {
		return nil, err
	}
	return &CompleteResult{TotalScore: fresh.TotalScore, TotalTime: fresh.TotalTime}, nil
}

// SweepAbandoned 后台周期任务：把心跳超时的 in-progress 记录扫成 abandoned。
// 被扫到的用户同样计入房间参与者，最终排行榜会包含他们。
func (s *QuizService) SweepAbandoned(ctx context.Context) (int, error) {
	threshold := s.Cfg.Quiz.AbandonThreshold()
	now := time.Now()

	stale, err := s.AttemptRepo.FindStale(now.Add(-threshold))
	if err != nil {
		return 0, err
	}

	swept := 0
	for i := range stale {
		attempt := &stale[i]
		if !IsAbandonable(attempt, now, threshold) {
			continue
		}

		rows, err := s.AttemptRepo.MarkAbandoned(attempt.ID, now)
		if err != nil {
			logger.Log.Error("failed to mark attempt abandoned",
				zap.Uint("attemptId", attempt.ID), zap.Error(err))
			continue
		}
		if rows == 0 {
			continue
		}

		if err := s.RoomRepo.AddParticipant(attempt.RoomID, attempt.UserID); err != nil {
			logger.Log.Error("failed to add participant on abandonment",
				zap.Uint("roomId", attempt.RoomID), zap.Uint("userId", attempt.UserID), zap.Error(err))
		}

		monitoring.AttemptsAbandoned.Inc()
		s.invalidateFinalByRoomID(ctx, attempt.RoomID)
		swept++

		logger.Log.Warn("quiz abandoned",
			zap.Uint("attemptId", attempt.ID), zap.Uint("userId", attempt.UserID))
	}
	return swept, nil
}

// IsAbandonable 心跳早于 now-threshold 且仍 in-progress
func IsAbandonable(a *model.QuizAttempt, now time.Time, threshold time.Duration) bool {
	return a.Status == model.AttemptStatusInProgress && a.LastHeartbeat.Before(now.Add(-threshold))
}

func (s *QuizService) invalidateFinalByRoomID(ctx context.Context, roomID uint) {
	room, err := s.RoomRepo.FindByID(roomID)
	if err != nil {
		return
	}
	s.Leaderboard.InvalidateFinal(ctx, room.Code)
}
