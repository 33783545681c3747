package listing

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"
)

type Service struct {
	ID            int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID        int64          `json:"user_id" gorm:"not null;index"`
	ServiceTypeID int64          `json:"service_type_id" gorm:"not null;index"`
	Title         string         `json:"title" gorm:"type:text;not null;default:''"`
	PhotoID       string         `json:"photo_id" gorm:"type:text;not null;default:''"`
	City          string         `json:"city" gorm:"type:text;not null;default:''"`
	District      string         `json:"district" gorm:"type:text;not null;default:''"`
	Street        string         `json:"street" gorm:"type:text;not null;default:''"`
	House         string         `json:"house" gorm:"type:text;not null;default:''"`
	NumberPhone   string         `json:"number_phone" gorm:"type:text;not null;default:''"`
	Price         string         `json:"price" gorm:"type:text;not null;default:''"`
	CustomFields  datatypes.JSON `json:"custom_fields" gorm:"type:jsonb"`
	Status        string         `json:"status" gorm:"size:20;not null;default:active"`
	Views         int64          `json:"views" gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt     time.Time      `json:"updated_at" gorm:"not null;autoUpdateTime"`
}

func (Service) TableName() string { return "services" }
