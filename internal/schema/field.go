package schema

import (
	"encoding/json"
	"fmt"
)

// FieldKind is the closed set of form field types. The stored JSON keeps
// the historical string tags ("text", "number", ...); everything else in
// the process works with the decoded kind.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindSelect
	KindImage
	KindAddress
)

var kindNames = map[FieldKind]string{
	KindText:    "text",
	KindNumber:  "number",
	KindSelect:  "select",
	KindImage:   "image",
	KindAddress: "address",
}

func (k FieldKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "text"
}

func ParseFieldKind(s string) (FieldKind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindText, fmt.Errorf("unknown field kind: %q", s)
}

// SchemaField describes one form field of a service type.
type SchemaField struct {
	Name        string
	Kind        FieldKind
	Label       string
	Description string
	Required    bool
	Options     []string // select kind only, at least two entries
}

// FieldSet is an ordered collection of fields with unique names. Order is
// the declared order: it drives form generation, validation and rendering.
type FieldSet []SchemaField

func (fs FieldSet) Get(name string) (SchemaField, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f, true
		}
	}
	return SchemaField{}, false
}

func (fs FieldSet) Has(name string) bool {
	_, ok := fs.Get(name)
	return ok
}

// fieldWire is the persisted JSON shape of one field.
type fieldWire struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
}

func (fs FieldSet) MarshalJSON() ([]byte, error) {
	wire := make([]fieldWire, 0, len(fs))
	for _, f := range fs {
		wire = append(wire, fieldWire{
			Name:        f.Name,
			Type:        f.Kind.String(),
			Label:       f.Label,
			Description: f.Description,
			Required:    f.Required,
			Options:     f.Options,
		})
	}
	return json.Marshal(wire)
}

func (fs *FieldSet) UnmarshalJSON(data []byte) error {
	var wire []fieldWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	out := make(FieldSet, 0, len(wire))
	for _, w := range wire {
		kind, err := ParseFieldKind(w.Type)
		if err != nil {
			return err
		}
		out = append(out, SchemaField{
			Name:        w.Name,
			Kind:        kind,
			Label:       w.Label,
			Description: w.Description,
			Required:    w.Required,
			Options:     w.Options,
		})
	}
	*fs = out
	return nil
}

// Baseline returns a fresh copy of the field set every service type
// carries regardless of what the administrator adds. The "adress"
// spelling is part of the wire contract with the web-app form.
func Baseline() FieldSet {
	return FieldSet{
		{Name: "photo", Kind: KindImage, Label: "Фото", Description: "Фотография услуги", Required: true},
		{Name: "title", Kind: KindText, Label: "Название", Description: "Название услуги", Required: true},
		{Name: "adress", Kind: KindAddress, Label: "Адрес", Description: "Например: г Москва, ул Ленина, д 5", Required: true},
		{Name: "district", Kind: KindText, Label: "Район", Description: "Район города", Required: false},
		{Name: "number_phone", Kind: KindText, Label: "Номер телефона", Description: "Контактный номер", Required: true},
		{Name: "price", Kind: KindNumber, Label: "Цена", Description: "Цена в рублях", Required: true},
	}
}

// IsBaselineName reports whether name belongs to the baseline field set.
func IsBaselineName(name string) bool {
	return Baseline().Has(name)
}

// MergeWithBaseline lays admin fields after the baseline set. Admin
// fields whose names collide with baseline names are shadowed: the
// baseline definition wins.
func MergeWithBaseline(adminFields FieldSet) FieldSet {
	merged := Baseline()
	for _, f := range adminFields {
		if merged.Has(f.Name) {
			continue
		}
		merged = append(merged, f)
	}
	return merged
}
