package listing

import (
	"encoding/json"
	"errors"

	"github.com/iancoleman/orderedmap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("listing not found")
	ErrInvalidStatus = errors.New("invalid listing status")
)

// updatableColumns is the allow-list for Update. Unknown keys are
// ignored, not rejected.
var updatableColumns = map[string]bool{
	"title":        true,
	"photo_id":     true,
	"city":         true,
	"district":     true,
	"street":       true,
	"house":        true,
	"number_phone": true,
	"price":        true,
	"status":       true,
}

type ListingService struct {
	DB *gorm.DB
}

type CreateInput struct {
	OwnerID     int64
	SchemaID    int64
	Title       string
	City        string
	District    string
	Street      string
	House       string
	NumberPhone string
	Price       string
	PhotoRef    string
	// Custom holds the non-baseline values in schema-declared order;
	// the order is preserved in the stored JSON.
	Custom *orderedmap.OrderedMap
}

func (s *ListingService) Create(in CreateInput) (int64, error) {
	if in.OwnerID <= 0 {
		return 0, errors.New("owner id is required")
	}
	if in.SchemaID <= 0 {
		return 0, errors.New("service type id is required")
	}

	custom := in.Custom
	if custom == nil {
		custom = orderedmap.New()
	}
	raw, err := json.Marshal(custom)
	if err != nil {
		return 0, err
	}

	row := Service{
		UserID:        in.OwnerID,
		ServiceTypeID: in.SchemaID,
		Title:         in.Title,
		PhotoID:       in.PhotoRef,
		City:          in.City,
		District:      in.District,
		Street:        in.Street,
		House:         in.House,
		NumberPhone:   in.NumberPhone,
		Price:         in.Price,
		CustomFields:  datatypes.JSON(raw),
		Status:        StatusActive,
	}

	if err := s.DB.Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

// GetByID resolves one listing. Soft-deleted rows are hidden unless
// explicitly requested.
func (s *ListingService) GetByID(id int64, includeDeleted bool) (*Service, error) {
	q := s.DB.Where("id = ?", id)
	if !includeDeleted {
		q = q.Where("status <> ?", StatusDeleted)
	}

	var row Service
	if err := q.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// ListByOwner returns the owner's listings, newest first. An empty
// statusFilter means every status except deleted.
func (s *ListingService) ListByOwner(ownerID int64, statusFilter string) ([]Service, error) {
	q := s.DB.Where("user_id = ?", ownerID)
	if statusFilter == "" {
		q = q.Where("status <> ?", StatusDeleted)
	} else {
		q = q.Where("status = ?", statusFilter)
	}

	var rows []Service
	if err := q.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update overwrites the allow-listed columns present in fields. The
// custom_fields key is treated specially: its entries are merged into the
// stored map (existing keys keep their position, new keys are appended).
func (s *ListingService) Update(id int64, fields map[string]interface{}) error {
	row, err := s.GetByID(id, false)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	for key, value := range fields {
		if updatableColumns[key] {
			updates[key] = value
		}
	}

	if rawCustom, ok := fields["custom_fields"]; ok {
		merged, err := mergeCustomFields(row.CustomFields, rawCustom)
		if err != nil {
			return err
		}
		updates["custom_fields"] = merged
	}

	if len(updates) == 0 {
		return nil
	}

	return s.DB.Model(&Service{}).Where("id = ?", id).Updates(updates).Error
}

func (s *ListingService) SetStatus(id int64, status string) error {
	switch status {
	case StatusActive, StatusInactive, StatusDeleted:
	default:
		return ErrInvalidStatus
	}

	res := s.DB.Model(&Service{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete flips the status to deleted; the row is retained.
func (s *ListingService) SoftDelete(id int64) error {
	return s.SetStatus(id, StatusDeleted)
}

func (s *ListingService) IncrementViews(id int64) error {
	res := s.DB.Model(&Service{}).
		Where("id = ? AND status <> ?", id, StatusDeleted).
		Update("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecodeCustomFields parses the stored custom_fields blob preserving the
// stored key order.
func DecodeCustomFields(raw datatypes.JSON) (*orderedmap.OrderedMap, error) {
	om := orderedmap.New()
	if len(raw) == 0 {
		return om, nil
	}
	if err := json.Unmarshal(raw, om); err != nil {
		return nil, err
	}
	return om, nil
}

func mergeCustomFields(existing datatypes.JSON, incoming interface{}) (datatypes.JSON, error) {
	merged, err := DecodeCustomFields(existing)
	if err != nil {
		return nil, err
	}

	switch vals := incoming.(type) {
	case map[string]string:
		for k, v := range vals {
			merged.Set(k, v)
		}
	case map[string]interface{}:
		for k, v := range vals {
			merged.Set(k, v)
		}
	case *orderedmap.OrderedMap:
		for _, k := range vals.Keys() {
			v, _ := vals.Get(k)
			merged.Set(k, v)
		}
	default:
		return nil, errors.New("custom_fields must be an object")
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
