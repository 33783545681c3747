package schema

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrDuplicateName = errors.New("service type with this name already exists")
	ErrNotFound      = errors.New("service type not found")
)

// RegistryService owns the catalog of service types. Writes are
// serialized by the database; name uniqueness is enforced by the unique
// index on service_types.name, so two concurrent Define calls with the
// same name cannot both succeed.
type RegistryService struct {
	DB *gorm.DB
}

// Define persists a new service type whose field set is the baseline
// merged with adminFields (baseline wins on name collisions).
func (s *RegistryService) Define(name, createdBy string, adminFields FieldSet) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("name is required")
	}

	merged := MergeWithBaseline(adminFields)
	raw, err := merged.MarshalJSON()
	if err != nil {
		return 0, err
	}

	row := ServiceType{
		Name:           name,
		CreatedByID:    createdBy,
		IsActive:       true,
		RequiredFields: raw,
	}

	if err := s.DB.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateName
		}
		return 0, err
	}

	return row.ID, nil
}

func (s *RegistryService) Lookup(id int64) (*Schema, error) {
	var row ServiceType
	err := s.DB.First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeServiceType(&row)
}

func (s *RegistryService) ListActive() ([]Schema, error) {
	var rows []ServiceType
	err := s.DB.
		Where("is_active = ?", true).
		Order("name asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]Schema, 0, len(rows))
	for i := range rows {
		decoded, err := decodeServiceType(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *decoded)
	}
	return out, nil
}

// Deactivate soft-deletes a service type. Idempotent: deactivating an
// already inactive type is not an error. Returns whether a row matched.
func (s *RegistryService) Deactivate(id int64) (bool, error) {
	res := s.DB.Model(&ServiceType{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
