package users

import "time"

type User struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TelegramID  string    `json:"telegram_id" gorm:"type:text;not null;uniqueIndex"`
	FullName    string    `json:"full_name" gorm:"type:text;not null;default:''"`
	NumberPhone string    `json:"number_phone" gorm:"type:text;not null;default:''"`
	IsSeller    bool      `json:"is_seller" gorm:"not null;default:false"`
	IsAdmin     bool      `json:"is_admin" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

// BannedUser is a block-list row keyed by telegram id. Bans survive
// account deletion, so the telegram id is stored directly rather than as
// a foreign key.
type BannedUser struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TelegramID string    `json:"telegram_id" gorm:"type:text;not null;uniqueIndex"`
	Reason     string    `json:"reason" gorm:"type:text;not null;default:''"`
	BannedByID int64     `json:"banned_by_id" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
}

func (BannedUser) TableName() string { return "banned_users" }
