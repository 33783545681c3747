// Package formurl translates service type schemas into web-app form URLs
// and decodes the form's JSON submission back into a flat field map.
package formurl

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"service-market-api/internal/schema"
)

// ErrDecode marks a malformed web-app submission payload.
var ErrDecode = errors.New("malformed form payload")

// Codec builds form URLs against the configured web-app endpoints.
type Codec struct {
	CreateBaseURL string
	EditBaseURL   string
}

// Prefill carries a record's current values for edit-mode URLs. Address
// parts are kept separate; the codec joins them into the single "adress"
// form value.
type Prefill struct {
	City   string
	Street string
	House  string
	Values map[string]string
}

// EncodeCreateForm produces the create-mode URL: one name=label query
// parameter per schema field, photo excluded (it travels through the
// transport, not the form).
func (c Codec) EncodeCreateForm(s *schema.Schema) string {
	params := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "photo" {
			continue
		}
		params = append(params, url.QueryEscape(f.Name)+"="+url.QueryEscape(f.Label))
	}
	return c.CreateBaseURL + "?" + strings.Join(params, "&")
}

// EncodeEditForm produces the edit-mode URL: one name=value query
// parameter per schema field, carrying the record's current values so the
// form opens prefilled.
func (c Codec) EncodeEditForm(s *schema.Schema, p Prefill) string {
	params := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "photo" {
			continue
		}

		var value string
		if f.Name == "adress" {
			value = JoinAddress(p.City, p.Street, p.House)
		} else {
			value = p.Values[f.Name]
		}

		params = append(params, url.QueryEscape(f.Name)+"="+url.QueryEscape(value))
	}
	return c.EditBaseURL + "?" + strings.Join(params, "&")
}

// Decode parses the web-app's JSON submission into a flat name→value map.
// Non-string JSON values are stringified; null becomes the empty string.
func Decode(raw []byte) (map[string]string, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	out := make(map[string]string, len(payload))
	for name, v := range payload {
		out[name] = stringify(v)
	}
	return out, nil
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// JoinAddress assembles the single free-text address value from its
// stored parts, reinserting the language prefixes the form expects.
func JoinAddress(city, street, house string) string {
	parts := make([]string, 0, 3)
	if city != "" {
		parts = append(parts, "г "+city)
	}
	if street != "" {
		parts = append(parts, "ул "+street)
	}
	if house != "" {
		parts = append(parts, "д "+house)
	}
	return strings.Join(parts, ", ")
}

// SplitAddress is the inverse of JoinAddress: the free-text value is
// split on commas into up to three ordered parts, each stripped of its
// prefix token.
func SplitAddress(adress string) (city, street, house string) {
	parts := strings.Split(adress, ",")
	if len(parts) >= 1 {
		city = strings.TrimSpace(strings.Replace(parts[0], "г ", "", 1))
	}
	if len(parts) >= 2 {
		street = strings.TrimSpace(strings.Replace(parts[1], "ул ", "", 1))
	}
	if len(parts) >= 3 {
		house = strings.TrimSpace(strings.Replace(parts[2], "д ", "", 1))
	}
	return city, street, house
}
