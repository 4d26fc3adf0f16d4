package model

import "time"

// 答题记录状态机：in-progress → completed（正常结束）
// in-progress → abandoned（心跳超时，由后台清理任务转移）
// completed / abandoned 均为终态
const (
	AttemptStatusInProgress = "in-progress"
	AttemptStatusCompleted  = "completed"
	AttemptStatusAbandoned  = "abandoned"
)

// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel

	UserID               uint       `gorm:"uniqueIndex:idx_user_room;type:bigint unsigned" json:"userId"`
	RoomID               uint       `gorm:"uniqueIndex:idx_user_room;index:idx_room_score;type:bigint unsigned" json:"roomId"`
	TotalScore           int        `gorm:"default:0;index:idx_room_score" json:"totalScore"`
	TotalTime            float64    `gorm:"default:0" json:"totalTime"`
	CurrentQuestionIndex int        `gorm:"default:0" json:"currentQuestionIndex"`
	Status               string     `gorm:"size:20;default:'in-progress'" json:"status"`
	StartedAt            time.Time  `json:"startedAt"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
	LastHeartbeat        time.Time  `json:"lastHeartbeat"`

	User    *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Answers []AttemptAnswer `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// IsTerminal 终态不再接受任何答案
func (a *QuizAttempt) IsTerminal() bool {
	return a.Status != AttemptStatusInProgress
}

// swagger:model AttemptAnswer
type AttemptAnswer struct {
	BaseModel

	AttemptID      uint      `gorm:"uniqueIndex:idx_attempt_question;type:bigint unsigned" json:"attemptId"`
	QuestionID     uint      `gorm:"uniqueIndex:idx_attempt_question;type:bigint unsigned" json:"questionId"`
	SelectedAnswer string    `gorm:"size:255" json:"selectedAnswer"`
	IsCorrect      bool      `json:"isCorrect"`
	TimeSpent      float64   `json:"timeSpent"`
	PointsEarned   int       `json:"pointsEarned"`
	AnsweredAt     time.Time `json:"answeredAt"`
}

func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}
