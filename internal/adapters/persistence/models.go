package persistence

import (
	"time"
)

// GameSessionModel represents the game_sessions table. The engine state is
// serialized whole into state_json; day and game_over are denormalized for
// listing queries only.
type GameSessionModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id;index;not null"`
	LevelID   string    `gorm:"column:level_id;not null"`
	Day       int       `gorm:"column:day;not null"`
	GameOver  bool      `gorm:"column:game_over;not null;default:false"`
	StateJSON string    `gorm:"column:state_json;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (GameSessionModel) TableName() string {
	return "game_sessions"
}
