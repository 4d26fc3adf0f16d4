package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"quizroom_backend/internal/model"
	"quizroom_backend/internal/repository"
	"quizroom_backend/internal/util"
	"quizroom_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MinRoomQuestions 创建房间至少 5 道题
const MinRoomQuestions = 5

// 房间码撞唯一索引后的重试次数
const roomCodeRetries = 5

type RoomService struct {
	RoomRepo     *repository.RoomRepository
	QuestionRepo *repository.QuestionRepository
	DB           *gorm.DB
}

func NewRoomService(roomRepo *repository.RoomRepository, questionRepo *repository.QuestionRepository, db *gorm.DB) *RoomService {
	return &RoomService{RoomRepo: roomRepo, QuestionRepo: questionRepo, DB: db}
}

type QuestionInput struct {
	Type          string   `json:"type" binding:"required"`
	Difficulty    string   `json:"difficulty" binding:"required"`
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
}

type CreateRoomInput struct {
	RoomName    string          `json:"roomName" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions" binding:"required"`
}

type RoomSummary struct {
	RoomID           string    `json:"roomId"`
	RoomName         string    `json:"roomName"`
	Category         string    `json:"category"`
	Description      string    `json:"description"`
	CreatedBy        string    `json:"createdBy,omitempty"`
	QuestionCount    int       `json:"questionCount"`
	ParticipantCount int       `json:"participantCount"`
	CreatedAt        time.Time `json:"createdAt"`
}

type RoomDetail struct {
	RoomSummary
	Questions []QuestionView `json:"questions"`
}

// ValidateQuestionInput 单题校验：选择题固定 4 个选项且正确答案必须是其中之一，
// 真假题无选项且答案为 True/False
func ValidateQuestionInput(q QuestionInput) error {
	if q.Type != model.QuestionTypeMCQ && q.Type != model.QuestionTypeTrueFalse {
		return fmt.Errorf("invalid question type %q", q.Type)
	}
	if !model.IsValidDifficulty(q.Difficulty) {
		return fmt.Errorf("invalid difficulty %q", q.Difficulty)
	}
	if strings.TrimSpace(q.Question) == "" {
		return errors.New("question text is required")
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return errors.New("correct answer is required")
	}

	switch q.Type {
	case model.QuestionTypeMCQ:
		if len(q.Options) != model.MCQOptionCount {
			return fmt.Errorf("MCQ questions must have exactly %d options", model.MCQOptionCount)
		}
		found := false
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == strings.TrimSpace(q.CorrectAnswer) {
				found = true
				break
			}
		}
		if !found {
			return errors.New("correct answer must be one of the options")
		}
	case model.QuestionTypeTrueFalse:
		if len(q.Options) != 0 {
			return errors.New("true/false questions must not have options")
		}
		if q.CorrectAnswer != "True" && q.CorrectAnswer != "False" {
			return errors.New(`true/false answer must be "True" or "False"`)
		}
	}
	return nil
}

func validateCreateRoomInput(input CreateRoomInput) error {
	if strings.TrimSpace(input.RoomName) == "" || strings.TrimSpace(input.Category) == "" {
		return errors.New("room name and category are required")
	}
	if !model.IsValidCategory(input.Category) {
		return fmt.Errorf("invalid category %q", input.Category)
	}
	if len(input.RoomName) > 100 {
		return errors.New("room name cannot exceed 100 characters")
	}
	if len(input.Description) > 500 {
		return errors.New("description cannot exceed 500 characters")
	}
	if len(input.Questions) < MinRoomQuestions {
		return fmt.Errorf("at least %d questions are required to create a room", MinRoomQuestions)
	}
	for i, q := range input.Questions {
		if err := ValidateQuestionInput(q); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// Create 创建房间及其题目（同一事务），房间码撞唯一索引时换码重试
func (s *RoomService) Create(userID uint, input CreateRoomInput) (*RoomSummary, error) {
	if err := validateCreateRoomInput(input); err != nil {
		return nil, err
	}

	var room *model.Room
	var err error
	for attempt := 0; attempt < roomCodeRetries; attempt++ {
		room, err = s.createWithCode(userID, input, util.GenerateRoomCode())
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to allocate a unique room code: %w", err)
	}

	logger.Log.Info("room created",
		zap.String("roomCode", room.Code), zap.Uint("userId", userID))

	return &RoomSummary{
		RoomID:        room.Code,
		RoomName:      room.Name,
		Category:      room.Category,
		Description:   room.Description,
		QuestionCount: len(input.Questions),
		CreatedAt:     room.CreatedAt,
	}, nil
}

func (s *RoomService) createWithCode(userID uint, input CreateRoomInput, code string) (*model.Room, error) {
	room := &model.Room{
		Code:        code,
		Name:        strings.TrimSpace(input.RoomName),
		Category:    input.Category,
		Description: strings.TrimSpace(input.Description),
		CreatedByID: userID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.RoomRepo.Create(tx, room); err != nil {
			return err
		}

		questions := make([]model.Question, 0, len(input.Questions))
		for i, q := range input.Questions {
			question := model.Question{
				RoomID:        room.ID,
				Type:          q.Type,
				Difficulty:    q.Difficulty,
				Prompt:        strings.TrimSpace(q.Question),
				CorrectAnswer: strings.TrimSpace(q.CorrectAnswer),
				Order:         i + 1,
			}
			if q.Type == model.QuestionTypeMCQ {
				if err := question.SetOptions(q.Options); err != nil {
					return err
				}
			}
			questions = append(questions, question)
		}
		return s.QuestionRepo.CreateBatch(tx, questions)
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// MyRooms 当前用户创建的房间列表
func (s *RoomService) MyRooms(userID uint) ([]RoomSummary, error) {
	rooms, err := s.RoomRepo.FindByCreator(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]RoomSummary, 0, len(rooms))
	for i := range rooms {
		room := &rooms[i]
		summaries = append(summaries, RoomSummary{
			RoomID:           room.Code,
			RoomName:         room.Name,
			Category:         room.Category,
			Description:      room.Description,
			QuestionCount:    len(room.Questions),
			ParticipantCount: len(room.Participants),
			CreatedAt:        room.CreatedAt,
		})
	}
	return summaries, nil
}

// Search 按房间码查找，返回概要
func (s *RoomService) Search(code string) (*RoomSummary, error) {
	if len(code) != util.RoomCodeLength {
		return nil, util.ErrInvalidRoomCode
	}

	room, err := s.RoomRepo.FindByCodeWithQuestions(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoomNotFound
		}
		return nil, err
	}

	participantCount, err := s.RoomRepo.CountParticipants(room.ID)
	if err != nil {
		return nil, err
	}

	summary := &RoomSummary{
		RoomID:           room.Code,
		RoomName:         room.Name,
		Category:         room.Category,
		Description:      room.Description,
		QuestionCount:    len(room.Questions),
		ParticipantCount: int(participantCount),
		CreatedAt:        room.CreatedAt,
	}
	if room.CreatedBy != nil {
		summary.CreatedBy = room.CreatedBy.Username
	}
	return summary, nil
}

// Details 房间详情，题目按 order 排序且不含正确答案
func (s *RoomService) Details(code string) (*RoomDetail, error) {
	summary, err := s.Search(code)
	if err != nil {
		return nil, err
	}

	room, err := s.RoomRepo.FindByCodeWithQuestions(code)
	if err != nil {
		return nil, err
	}

	return &RoomDetail{
		RoomSummary: *summary,
		Questions:   toQuestionViews(room.Questions),
	}, nil
}
