package repository

import (
	"quizroom_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository struct {
	DB *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{DB: db}
}

func (r *RoomRepository) Create(tx *gorm.DB, room *model.Room) error {
	return tx.Create(room).Error
}

func (r *RoomRepository) FindByID(id uint) (*model.Room, error) {
	var room model.Room
	if err := r.DB.First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) FindByCode(code string) (*model.Room, error) {
	var room model.Room
	if err := r.DB.Where("code = ?", code).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByCodeWithQuestions 带按 order 排好序的题目列表
func (r *RoomRepository) FindByCodeWithQuestions(code string) (*model.Room, error) {
	var room model.Room
	err := r.DB.Where("code = ?", code).
		Preload("CreatedBy").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.`order` ASC")
		}).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) FindByCreator(userID uint) ([]model.Room, error) {
	var rooms []model.Room
	err := r.DB.Where("created_by_id = ?", userID).
		Preload("Questions").
		Preload("Participants").
		Order("created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

// AddParticipant 幂等加入参与者集合，依赖 (room_id, user_id) 唯一索引
func (r *RoomRepository) AddParticipant(roomID, userID uint) error {
	participant := model.RoomParticipant{RoomID: roomID, UserID: userID}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&participant).Error
}

func (r *RoomRepository) CountParticipants(roomID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.RoomParticipant{}).Where("room_id = ?", roomID).Count(&count).Error
	return count, err
}

func (r *RoomRepository) CountQuestions(roomID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("room_id = ?", roomID).Count(&count).Error
	return count, err
}
