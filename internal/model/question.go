package model

import "encoding/json"

const (
	QuestionTypeMCQ       = "MCQ"
	QuestionTypeTrueFalse = "TRUE_FALSE"
)

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

func IsValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// MCQOptionCount 选择题固定 4 个选项
const MCQOptionCount = 4

// swagger:model Question
type Question struct {
	BaseModel

	RoomID        uint   `gorm:"index:idx_room_order;type:bigint unsigned" json:"roomId"`
	Type          string `gorm:"size:20" json:"type"`
	Difficulty    string `gorm:"size:20" json:"difficulty"`
	Prompt        string `gorm:"type:text" json:"question"`
	Options       string `gorm:"type:json" json:"-"`
	CorrectAnswer string `gorm:"size:255" json:"-"`
	Order         int    `gorm:"index:idx_room_order;default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}

// OptionList 反序列化 Options 列，真假题返回空切片
func (q *Question) OptionList() []string {
	if q.Options == "" {
		return nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(q.Options), &opts); err != nil {
		return nil
	}
	return opts
}

func (q *Question) SetOptions(opts []string) error {
	if len(opts) == 0 {
		q.Options = ""
		return nil
	}
	data, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	q.Options = string(data)
	return nil
}
