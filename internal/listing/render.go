package listing

import (
	"fmt"
	"strconv"
	"strings"

	"service-market-api/internal/schema"
)

const captionSeparator = "━━━━━━━━━━━━━━━"

// nbsp groups thousands in rendered prices.
const nbsp = " "

// Render assembles the display caption for a listing: a fixed header
// followed by one line per custom field that the schema still declares.
// Custom keys unknown to the schema are silently skipped.
func Render(rec *Service, s *schema.Schema) string {
	statusEmoji := "🔴"
	if rec.Status == StatusActive {
		statusEmoji = "🟢"
	}

	title := rec.Title
	if title == "" {
		title = "Без названия"
	}

	phone := rec.NumberPhone
	if phone == "" {
		phone = "Не указан"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", statusEmoji, title)
	b.WriteString(captionSeparator + "\n")
	fmt.Fprintf(&b, "📍 %s\n", renderAddress(rec))
	fmt.Fprintf(&b, "📱 %s\n", phone)
	fmt.Fprintf(&b, "💰 %s₽\n", FormatPrice(rec.Price))
	fmt.Fprintf(&b, "👁 Просмотров: %d\n", rec.Views)
	fmt.Fprintf(&b, "📅 Создано: %s\n", rec.CreatedAt.Format("2006-01-02 15:04"))
	b.WriteString(captionSeparator + "\n")

	custom, err := DecodeCustomFields(rec.CustomFields)
	if err != nil {
		return b.String()
	}

	for _, name := range custom.Keys() {
		field, ok := s.Fields.Get(name)
		if !ok {
			continue
		}
		value, _ := custom.Get(name)
		text := strings.TrimSpace(fmt.Sprint(value))
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "📌 %s: %s\n", field.Label, text)
	}

	return b.String()
}

func renderAddress(rec *Service) string {
	parts := make([]string, 0, 4)
	if rec.City != "" {
		parts = append(parts, "г. "+rec.City)
	}
	if rec.District != "" {
		parts = append(parts, rec.District)
	}
	if rec.Street != "" {
		parts = append(parts, "ул. "+rec.Street)
	}
	if rec.House != "" {
		parts = append(parts, "д. "+rec.House)
	}
	return strings.Join(parts, ", ")
}

// FormatPrice renders the integer part of a price grouped with
// non-breaking spaces. A value that does not parse renders as "0".
func FormatPrice(raw string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "0"
	}

	n := int64(f)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return sign + strings.Join(groups, nbsp)
}
