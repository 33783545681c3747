package admin

import (
	"fmt"
	"strings"

	"service-market-api/internal/listing"
	"service-market-api/internal/schema"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type AdminService struct {
	DB       *gorm.DB
	Registry schema.RegistryAPI
}

// Stats is the admin dashboard summary.
type Stats struct {
	Users           int64 `json:"users"`
	Sellers         int64 `json:"sellers"`
	ServiceTypes    int64 `json:"service_types"`
	ActiveListings  int64 `json:"active_listings"`
	DeletedListings int64 `json:"deleted_listings"`
}

func (as *AdminService) CollectStats() (*Stats, error) {
	var st Stats

	if err := as.DB.Table("users").Count(&st.Users).Error; err != nil {
		return nil, err
	}
	if err := as.DB.Table("users").Where("is_seller = ?", true).Count(&st.Sellers).Error; err != nil {
		return nil, err
	}
	if err := as.DB.Table("service_types").Where("is_active = ?", true).Count(&st.ServiceTypes).Error; err != nil {
		return nil, err
	}
	if err := as.DB.Table("services").Where("status = ?", listing.StatusActive).Count(&st.ActiveListings).Error; err != nil {
		return nil, err
	}
	if err := as.DB.Table("services").Where("status = ?", listing.StatusDeleted).Count(&st.DeletedListings).Error; err != nil {
		return nil, err
	}

	return &st, nil
}

// fixedExportColumns lead every export sheet; the schema's custom field
// labels follow in declared order.
var fixedExportColumns = []string{
	"id", "user_id", "title", "city", "district", "street", "house",
	"number_phone", "price", "status", "views", "created_at",
}

// ExportListings builds an XLSX workbook with every non-deleted listing
// of one service type, one column per schema-declared custom field.
func (as *AdminService) ExportListings(typeID int64) ([]byte, string, error) {
	s, err := as.Registry.Lookup(typeID)
	if err != nil {
		return nil, "", err
	}

	var rows []listing.Service
	err = as.DB.Where("service_type_id = ? AND status <> ?", typeID, listing.StatusDeleted).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, "", err
	}

	customFields := make([]schema.SchemaField, 0, len(s.Fields))
	for _, f := range s.Fields {
		if schema.IsBaselineName(f.Name) {
			continue
		}
		customFields = append(customFields, f)
	}

	f := excelize.NewFile()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2E8F0"}},
	})

	sheet := safeSheetName(s.Name)
	if sheet == "" {
		sheet = fmt.Sprintf("Type_%d", typeID)
	}
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := make([]interface{}, 0, len(fixedExportColumns)+len(customFields))
	for _, c := range fixedExportColumns {
		header = append(header, excelize.Cell{Value: c, StyleID: headerStyle})
	}
	for _, cf := range customFields {
		header = append(header, excelize.Cell{Value: cf.Label, StyleID: headerStyle})
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, "", err
	}
	_ = sw.SetRow("A1", header)

	for i, r := range rows {
		custom, err := listing.DecodeCustomFields(r.CustomFields)
		if err != nil {
			return nil, "", err
		}

		values := []interface{}{
			r.ID, r.UserID, r.Title, r.City, r.District, r.Street, r.House,
			r.NumberPhone, r.Price, r.Status, r.Views,
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
		for _, cf := range customFields {
			v, ok := custom.Get(cf.Name)
			if !ok || v == nil {
				values = append(values, "")
				continue
			}
			values = append(values, fmt.Sprintf("%v", v))
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = sw.SetRow(cell, values)
	}

	if err := sw.Flush(); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_listings.xlsx", sheet)
	return buf.Bytes(), filename, nil
}

func safeSheetName(name string) string {
	n := strings.TrimSpace(name)
	n = strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_").Replace(n)
	if len(n) > 31 {
		n = n[:31]
	}
	return n
}
