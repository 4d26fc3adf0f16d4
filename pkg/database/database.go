package database

import (
	"fmt"
	"log"
	"quizroom_backend/internal/config"
	"quizroom_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// 唯一索引同时承担业务约束：
	// quiz_attempts(user_id, room_id) 一人一房一次
	// attempt_answers(attempt_id, question_id) 一题一答
	err = db.AutoMigrate(
		&model.User{},
		&model.Room{},
		&model.RoomParticipant{},
		&model.Question{},
		&model.QuizAttempt{},
		&model.AttemptAnswer{},
		&model.SavedRoom{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
