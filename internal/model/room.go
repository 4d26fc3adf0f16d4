package model

// 房间分类
const (
	CategoryTech              = "Tech"
	CategoryScience           = "Science"
	CategoryLanguageLearning  = "Language-learning"
	CategoryProfessional      = "Professional"
	CategoryCareerDevelopment = "Career-Development"
	CategoryGeneral           = "General"
	CategoryStudyRoom         = "Study-Room"
	CategoryHobbies           = "Hobbies"
)

var RoomCategories = []string{
	CategoryTech,
	CategoryScience,
	CategoryLanguageLearning,
	CategoryProfessional,
	CategoryCareerDevelopment,
	CategoryGeneral,
	CategoryStudyRoom,
	CategoryHobbies,
}

func IsValidCategory(category string) bool {
	for _, c := range RoomCategories {
		if c == category {
			return true
		}
	}
	return false
}

// swagger:model Room
type Room struct {
	BaseModel

	Code        string `gorm:"size:5;uniqueIndex" json:"roomId"`
	Name        string `gorm:"size:100" json:"roomName"`
	Category    string `gorm:"size:50" json:"category"`
	Description string `gorm:"size:500" json:"description"`
	CreatedByID uint   `gorm:"index;type:bigint unsigned" json:"createdById"`

	CreatedBy    *User             `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	Questions    []Question        `gorm:"foreignKey:RoomID" json:"questions,omitempty"`
	Participants []RoomParticipant `gorm:"foreignKey:RoomID" json:"-"`
}

func (Room) TableName() string {
	return "rooms"
}

// RoomParticipant 房间参与者集合，(room, user) 唯一
type RoomParticipant struct {
	BaseModel

	RoomID uint `gorm:"uniqueIndex:idx_room_user;type:bigint unsigned" json:"roomId"`
	UserID uint `gorm:"uniqueIndex:idx_room_user;type:bigint unsigned" json:"userId"`
}

func (RoomParticipant) TableName() string {
	return "room_participants"
}
