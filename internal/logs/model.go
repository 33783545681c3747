package logs

import (
	"time"

	"github.com/lib/pq"
)

type SystemLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Level     string         `gorm:"size:20;not null" json:"level"`
	Service   string         `gorm:"size:100;not null" json:"service"`
	UserID    *int64         `gorm:"index" json:"user_id,omitempty"`
	Action    string         `gorm:"size:255;not null" json:"action"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags"`
	Metadata  *string        `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (SystemLog) TableName() string { return "logs" }

type LogFilterInput struct {
	UserID  *int64  `form:"user_id"`
	Level   *string `form:"level"`
	Service *string `form:"service"`
	Action  *string `form:"action"`
	Search  *string `form:"search"`

	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}
