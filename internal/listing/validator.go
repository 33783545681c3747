package listing

import (
	"fmt"
	"strconv"
	"strings"

	"service-market-api/internal/schema"
)

// Validator checks a decoded form submission against a schema. The
// default contract is fail-fast: the first violation is returned alone.
// CollectAll switches to reporting every violation.
type Validator struct {
	CollectAll bool
}

// Validate walks the schema's fields in declared order. The photo field
// is excluded: it travels outside the form payload. Fields absent from
// the schema pass through unvalidated. A nil result means the submission
// is valid.
func (v Validator) Validate(values map[string]string, s *schema.Schema) []string {
	var violations []string

	for _, f := range s.Fields {
		if f.Name == "photo" {
			continue
		}

		value, present := values[f.Name]
		value = strings.TrimSpace(value)

		if f.Required && (!present || value == "") {
			violations = append(violations, fmt.Sprintf("Поле '%s' обязательно для заполнения", f.Label))
			if !v.CollectAll {
				return violations
			}
			continue
		}

		if f.Kind == schema.KindNumber && present && value != "" {
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				violations = append(violations, fmt.Sprintf("Поле '%s' должно быть числом", f.Label))
				if !v.CollectAll {
					return violations
				}
			}
		}
	}

	return violations
}
