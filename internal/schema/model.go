package schema

import (
	"time"

	"gorm.io/datatypes"
)

type ServiceType struct {
	ID             int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string         `json:"name" gorm:"type:text;not null;uniqueIndex"`
	CreatedByID    string         `json:"created_by_id" gorm:"type:text;not null"`
	IsActive       bool           `json:"is_active" gorm:"not null;default:true"`
	RequiredFields datatypes.JSON `json:"required_fields" gorm:"type:jsonb;not null"`
	CreatedAt      time.Time      `json:"created_at" gorm:"not null;autoCreateTime"`
}

func (ServiceType) TableName() string { return "service_types" }

// Schema is the decoded view of a ServiceType row: the JSON field blob is
// parsed exactly once, at load time, into typed SchemaField values.
type Schema struct {
	ID          int64
	Name        string
	CreatedByID string
	IsActive    bool
	Fields      FieldSet
}

func decodeServiceType(row *ServiceType) (*Schema, error) {
	var fields FieldSet
	if err := fields.UnmarshalJSON(row.RequiredFields); err != nil {
		return nil, err
	}
	return &Schema{
		ID:          row.ID,
		Name:        row.Name,
		CreatedByID: row.CreatedByID,
		IsActive:    row.IsActive,
		Fields:      fields,
	}, nil
}
