package support

import "time"

// Question is one support exchange: the user's question and the answer
// that was sent back.
type Question struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Answer    string    `json:"answer" gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
}

func (Question) TableName() string { return "support_questions" }
