package logs

import (
	"encoding/json"

	"gorm.io/gorm"
)

type LogService struct {
	DB *gorm.DB
}

// Log persists one system log row. Metadata (map/struct) is stored as a
// JSON string when provided. Logging must never break the caller: errors
// are returned but callers typically ignore them.
func (ls *LogService) Log(entry SystemLog, metadata interface{}) error {
	var metaStr *string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			str := string(b)
			metaStr = &str
		}
	}

	row := SystemLog{
		Level:    entry.Level,
		Service:  entry.Service,
		UserID:   entry.UserID,
		Action:   entry.Action,
		Message:  entry.Message,
		Tags:     entry.Tags,
		Metadata: metaStr,
	}

	return ls.DB.Create(&row).Error
}

// List returns log rows newest-first, filtered and paged.
func (ls *LogService) List(filter LogFilterInput) ([]SystemLog, int64, error) {
	q := ls.DB.Model(&SystemLog{})

	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Level != nil && *filter.Level != "" {
		q = q.Where("level = ?", *filter.Level)
	}
	if filter.Service != nil && *filter.Service != "" {
		q = q.Where("service = ?", *filter.Service)
	}
	if filter.Action != nil && *filter.Action != "" {
		q = q.Where("action = ?", *filter.Action)
	}
	if filter.Search != nil && *filter.Search != "" {
		q = q.Where("message LIKE ?", "%"+*filter.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	var rows []SystemLog
	err := q.Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
