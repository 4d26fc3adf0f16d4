package repository

import (
	"quizroom_backend/internal/model"

	"gorm.io/gorm"
)

type SavedRoomRepository struct {
	DB *gorm.DB
}

func NewSavedRoomRepository(db *gorm.DB) *SavedRoomRepository {
	return &SavedRoomRepository{DB: db}
}

func (r *SavedRoomRepository) Create(saved *model.SavedRoom) error {
	return r.DB.Create(saved).Error
}

func (r *SavedRoomRepository) FindByUserAndRoom(userID, roomID uint) (*model.SavedRoom, error) {
	var s model.SavedRoom
	err := r.DB.Where("user_id = ? AND room_id = ?", userID, roomID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SavedRoomRepository) FindByUser(userID uint) ([]model.SavedRoom, error) {
	var saved []model.SavedRoom
	err := r.DB.Where("user_id = ?", userID).
		Preload("Room").
		Preload("Room.CreatedBy").
		Order("created_at DESC").
		Find(&saved).Error
	return saved, err
}

func (r *SavedRoomRepository) Delete(userID, roomID uint) (int64, error) {
	res := r.DB.Where("user_id = ? AND room_id = ?", userID, roomID).Delete(&model.SavedRoom{})
	return res.RowsAffected, res.Error
}
