package model

// SavedRoom 用户收藏（探索过）的房间，(user, room) 唯一
// swagger:model SavedRoom
type SavedRoom struct {
	BaseModel

	UserID uint `gorm:"uniqueIndex:idx_user_saved_room;type:bigint unsigned" json:"userId"`
	RoomID uint `gorm:"uniqueIndex:idx_user_saved_room;type:bigint unsigned" json:"roomId"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (SavedRoom) TableName() string {
	return "saved_rooms"
}
