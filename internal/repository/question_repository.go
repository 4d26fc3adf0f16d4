package repository

import (
	"quizroom_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) CreateBatch(tx *gorm.DB, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return tx.Create(&questions).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) CountByRoom(roomID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("room_id = ?", roomID).Count(&count).Error
	return count, err
}
