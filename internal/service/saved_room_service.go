package service

import (
	"errors"
	"time"

	"quizroom_backend/internal/model"
	"quizroom_backend/internal/repository"
	"quizroom_backend/internal/util"

	"gorm.io/gorm"
)

type SavedRoomService struct {
	SavedRepo *repository.SavedRoomRepository
	RoomRepo  *repository.RoomRepository
}

func NewSavedRoomService(savedRepo *repository.SavedRoomRepository, roomRepo *repository.RoomRepository) *SavedRoomService {
	return &SavedRoomService{SavedRepo: savedRepo, RoomRepo: roomRepo}
}

type SavedRoomEntry struct {
	RoomSummary
	SavedAt time.Time `json:"savedAt"`
}

// Add 收藏房间：房间必须存在，不能收藏自己的房间，重复收藏交给唯一索引兜底
func (s *SavedRoomService) Add(userID uint, code string) error {
	room, err := s.findRoom(code)
	if err != nil {
		return err
	}
	if room.CreatedByID == userID {
		return util.ErrCannotSaveOwnRoom
	}

	if _, err := s.SavedRepo.FindByUserAndRoom(userID, room.ID); err == nil {
		return util.ErrRoomAlreadySaved
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	err = s.SavedRepo.Create(&model.SavedRoom{UserID: userID, RoomID: room.ID})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrRoomAlreadySaved
	}
	return err
}

func (s *SavedRoomService) Remove(userID uint, code string) error {
	room, err := s.findRoom(code)
	if err != nil {
		return err
	}

	rows, err := s.SavedRepo.Delete(userID, room.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return util.ErrSavedRoomNotFound
	}
	return nil
}

// IsSaved 查询某房间是否已被当前用户收藏
func (s *SavedRoomService) IsSaved(userID uint, code string) (bool, error) {
	room, err := s.findRoom(code)
	if err != nil {
		return false, err
	}

	if _, err := s.SavedRepo.FindByUserAndRoom(userID, room.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List 当前用户收藏的房间概要，按收藏时间倒序
func (s *SavedRoomService) List(userID uint) ([]SavedRoomEntry, error) {
	saved, err := s.SavedRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]SavedRoomEntry, 0, len(saved))
	for i := range saved {
		room := saved[i].Room
		if room == nil {
			continue
		}

		questionCount, err := s.RoomRepo.CountQuestions(room.ID)
		if err != nil {
			return nil, err
		}
		participantCount, err := s.RoomRepo.CountParticipants(room.ID)
		if err != nil {
			return nil, err
		}

		entry := SavedRoomEntry{
			RoomSummary: RoomSummary{
				RoomID:           room.Code,
				RoomName:         room.Name,
				Category:         room.Category,
				Description:      room.Description,
				QuestionCount:    int(questionCount),
				ParticipantCount: int(participantCount),
				CreatedAt:        room.CreatedAt,
			},
			SavedAt: saved[i].CreatedAt,
		}
		if room.CreatedBy != nil {
			entry.CreatedBy = room.CreatedBy.Username
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *SavedRoomService) findRoom(code string) (*model.Room, error) {
	if len(code) != util.RoomCodeLength {
		return nil, util.ErrInvalidRoomCode
	}
	room, err := s.RoomRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}
