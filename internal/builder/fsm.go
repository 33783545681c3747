// Package builder drives the guided authoring dialog an administrator
// walks through to define a new service type, one field at a time.
package builder

import (
	"regexp"
	"strings"

	"service-market-api/internal/schema"
	"service-market-api/internal/util"
)

// State is the position inside the authoring dialog.
type State int

const (
	StateAwaitingTypeName State = iota
	StateAwaitingFieldName
	StateAwaitingFieldKind
	StateAwaitingFieldLabel
	StateAwaitingFieldDescription
	StateAwaitingFieldRequired
	StateAwaitingSelectOptions
	StateAwaitingMoreFields
	// StateCommit is terminal: the accumulated type is handed to the
	// registry and the session is discarded whatever the outcome.
	StateCommit
)

// PartialField is the field currently being assembled.
type PartialField struct {
	Name        string
	Kind        schema.FieldKind
	Label       string
	Description string
	Required    bool
}

// Accumulator is the working state of one authoring session.
type Accumulator struct {
	TypeName string
	Fields   schema.FieldSet
	Current  PartialField
}

// Input is one decoded user event: free text or a button press.
type Input struct {
	Text   string `json:"text"`
	Choice string `json:"choice"`
}

type Choice struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// Effect is the reply instruction the gateway relays to the user.
type Effect struct {
	Prompt  string   `json:"prompt"`
	Choices []Choice `json:"choices,omitempty"`
}

var fieldNameRe = regexp.MustCompile(`^[a-z0-9_]+$`)

const (
	choiceKindPrefix  = "field_type:"
	choiceRequiredYes = "required_true"
	choiceRequiredNo  = "required_false"
	choiceAddField    = "add_field"
	choiceFinish      = "finish"
)

func promptTypeName() Effect {
	return Effect{Prompt: "📝 Введите название нового типа услуги\n\nНапример: Репетитор, Мастер маникюра, Фотограф"}
}

func promptFieldName() Effect {
	return Effect{Prompt: "🔑 Введите техническое название поля (на английском)\n\nПримеры:\n- experience\n- education\n- skills\n\nИспользуйте только английские буквы, цифры или _"}
}

func promptFieldKind() Effect {
	return Effect{
		Prompt: "📊 Выберите тип данных для поля:",
		Choices: []Choice{
			{Label: "📝 Текст", Data: choiceKindPrefix + "text"},
			{Label: "🔢 Число", Data: choiceKindPrefix + "number"},
			{Label: "📋 Список", Data: choiceKindPrefix + "select"},
		},
	}
}

func promptFieldLabel() Effect {
	return Effect{Prompt: "💭 Введите название поля для пользователей\n\nНапример: Опыт работы, Образование, Навыки"}
}

func promptFieldDescription() Effect {
	return Effect{Prompt: "📝 Введите описание поля\n\nЭто подсказка для пользователей о том, что нужно ввести"}
}

func promptFieldRequired() Effect {
	return Effect{
		Prompt: "❓ Поле обязательно для заполнения?",
		Choices: []Choice{
			{Label: "✅ Да", Data: choiceRequiredYes},
			{Label: "❌ Нет", Data: choiceRequiredNo},
		},
	}
}

func promptSelectOptions() Effect {
	return Effect{Prompt: "📝 Введите варианты для выбора через запятую\n\nПример: Начинающий, Продвинутый, Эксперт"}
}

func promptMoreFields() Effect {
	return Effect{
		Prompt: "✅ Поле добавлено! Что дальше?",
		Choices: []Choice{
			{Label: "➕ Добавить поле", Data: choiceAddField},
			{Label: "✅ Завершить", Data: choiceFinish},
		},
	}
}

func withWarning(warning string, e Effect) Effect {
	e.Prompt = warning + "\n\n" + e.Prompt
	return e
}

// Advance applies one input to the dialog. It is a pure function: invalid
// input re-prompts in the same state without touching the accumulator.
func Advance(st State, acc Accumulator, in Input) (State, Accumulator, Effect) {
	switch st {
	case StateAwaitingTypeName:
		name := strings.TrimSpace(in.Text)
		if name == "" {
			return st, acc, promptTypeName()
		}
		acc.TypeName = name
		return StateAwaitingFieldName, acc, promptFieldName()

	case StateAwaitingFieldName:
		name := strings.ToLower(strings.TrimSpace(in.Text))
		if !fieldNameRe.MatchString(name) {
			return st, acc, withWarning("❌ Некорректное название. Попробуйте еще раз", promptFieldName())
		}
		if acc.Fields.Has(name) {
			return st, acc, withWarning("❌ Поле с таким названием уже добавлено. Введите другое", promptFieldName())
		}
		acc.Current = PartialField{Name: name}
		return StateAwaitingFieldKind, acc, promptFieldKind()

	case StateAwaitingFieldKind:
		raw := strings.TrimPrefix(in.Choice, choiceKindPrefix)
		if raw == in.Choice {
			return st, acc, promptFieldKind()
		}
		kind, err := schema.ParseFieldKind(raw)
		if err != nil || (kind != schema.KindText && kind != schema.KindNumber && kind != schema.KindSelect) {
			return st, acc, promptFieldKind()
		}
		acc.Current.Kind = kind
		return StateAwaitingFieldLabel, acc, promptFieldLabel()

	case StateAwaitingFieldLabel:
		label := strings.TrimSpace(in.Text)
		if label == "" {
			return st, acc, promptFieldLabel()
		}
		acc.Current.Label = label
		return StateAwaitingFieldDescription, acc, promptFieldDescription()

	case StateAwaitingFieldDescription:
		desc := strings.TrimSpace(in.Text)
		if desc == "" {
			return st, acc, promptFieldDescription()
		}
		acc.Current.Description = desc
		return StateAwaitingFieldRequired, acc, promptFieldRequired()

	case StateAwaitingFieldRequired:
		switch in.Choice {
		case choiceRequiredYes:
			acc.Current.Required = true
		case choiceRequiredNo:
			acc.Current.Required = false
		default:
			return st, acc, promptFieldRequired()
		}
		if acc.Current.Kind == schema.KindSelect {
			return StateAwaitingSelectOptions, acc, promptSelectOptions()
		}
		acc = appendCurrentField(acc, nil)
		return StateAwaitingMoreFields, acc, promptMoreFields()

	case StateAwaitingSelectOptions:
		options := util.ParseCommaList(in.Text)
		if len(options) < 2 {
			return st, acc, withWarning("❌ Укажите минимум 2 варианта", promptSelectOptions())
		}
		// select fields are always required
		acc.Current.Required = true
		acc = appendCurrentField(acc, options)
		return StateAwaitingMoreFields, acc, promptMoreFields()

	case StateAwaitingMoreFields:
		switch in.Choice {
		case choiceAddField:
			return StateAwaitingFieldName, acc, promptFieldName()
		case choiceFinish:
			if len(acc.Fields) == 0 {
				return StateAwaitingFieldName, acc, withWarning("❌ Добавьте хотя бы одно поле!", promptFieldName())
			}
			return StateCommit, acc, Effect{}
		default:
			return st, acc, promptMoreFields()
		}
	}

	return st, acc, promptTypeName()
}

func appendCurrentField(acc Accumulator, options []string) Accumulator {
	acc.Fields = append(acc.Fields, schema.SchemaField{
		Name:        acc.Current.Name,
		Kind:        acc.Current.Kind,
		Label:       acc.Current.Label,
		Description: acc.Current.Description,
		Required:    acc.Current.Required,
		Options:     options,
	})
	acc.Current = PartialField{}
	return acc
}
