package repository

import (
	"quizroom_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	err := r.DB.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("attempt_answers.answered_at ASC")
	}).First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindOwned 按 ID 取归属于指定用户的记录
func (r *AttemptRepository) FindOwned(attemptID, userID uint) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	err := r.DB.Where("id = ? AND user_id = ?", attemptID, userID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) FindByUserAndRoom(userID, roomID uint) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	err := r.DB.Where("user_id = ? AND room_id = ?", userID, roomID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByRoom 当前排行榜用：房间内所有记录，不区分状态
func (r *AttemptRepository) FindByRoom(roomID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("room_id = ?", roomID).
		Preload("User").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("attempt_answers.answered_at ASC")
		}).
		Find(&attempts).Error
	return attempts, err
}

// FindTerminalByRoom 最终排行榜用：只取 completed / abandoned
func (r *AttemptRepository) FindTerminalByRoom(roomID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("room_id = ? AND status IN ?", roomID,
		[]string{model.AttemptStatusCompleted, model.AttemptStatusAbandoned}).
		Preload("User").
		Preload("Answers").
		Find(&attempts).Error
	return attempts, err
}

// CreateAnswer 在事务中插入答案，重复提交由 (attempt_id, question_id) 唯一索引拒绝
func (r *AttemptRepository) CreateAnswer(tx *gorm.DB, answer *model.AttemptAnswer) error {
	return tx.Create(answer).Error
}

// ApplyAnswer 条件更新累加总分、总耗时并推进游标，仅作用于 in-progress 的记录。
// 返回受影响行数为 0 说明答题已进入终态（可能刚被清理任务扫成 abandoned）。
func (r *AttemptRepository) ApplyAnswer(tx *gorm.DB, attemptID uint, points int, timeSpent float64, now time.Time) (int64, error) {
	res := tx.Model(&model.QuizAttempt{}).
		Where("id = ? AND status = ?", attemptID, model.AttemptStatusInProgress).
		Updates(map[string]interface{}{
			"total_score":            gorm.Expr("total_score + ?", points),
			"total_time":             gorm.Expr("total_time + ?", timeSpent),
			"current_question_index": gorm.Expr("current_question_index + 1"),
			"last_heartbeat":         now,
		})
	return res.RowsAffected, res.Error
}

// Touch 心跳只刷新 last_heartbeat，终态记录不受影响
func (r *AttemptRepository) Touch(attemptID uint, now time.Time) (int64, error) {
	res := r.DB.Model(&model.QuizAttempt{}).
		Where("id = ? AND status = ?", attemptID, model.AttemptStatusInProgress).
		Update("last_heartbeat", now)
	return res.RowsAffected, res.Error
}

// MarkCompleted in-progress → completed，条件更新防止覆盖清理任务的结果
func (r *AttemptRepository) MarkCompleted(attemptID uint, now time.Time) (int64, error) {
	res := r.DB.Model(&model.QuizAttempt{}).
		Where("id = ? AND status = ?", attemptID, model.AttemptStatusInProgress).
		Updates(map[string]interface{}{
			"status":       model.AttemptStatusCompleted,
			"completed_at": now,
		})
	return res.RowsAffected, res.Error
}

// FindStale 清理任务用：心跳早于 cutoff 且仍 in-progress 的记录
func (r *AttemptRepository) FindStale(cutoff time.Time) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("status = ? AND last_heartbeat < ?", model.AttemptStatusInProgress, cutoff).
		Find(&attempts).Error
	return attempts, err
}

// MarkAbandoned in-progress → abandoned
func (r *AttemptRepository) MarkAbandoned(attemptID uint, now time.Time) (int64, error) {
	res := r.DB.Model(&model.QuizAttempt{}).
		Where("id = ? AND status = ?", attemptID, model.AttemptStatusInProgress).
		Updates(map[string]interface{}{
			"status":       model.AttemptStatusAbandoned,
			"completed_at": now,
		})
	return res.RowsAffected, res.Error
}
