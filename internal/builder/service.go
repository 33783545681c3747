package builder

import (
	"errors"
	"strconv"

	"service-market-api/internal/schema"
)

var (
	ErrNotAdmin  = errors.New("administrator privilege required")
	ErrNoSession = errors.New("no authoring session in progress")
)

// BuilderService owns the per-conversation authoring sessions and commits
// finished accumulators to the schema registry.
type BuilderService struct {
	Registry schema.RegistryAPI
	Sessions *SessionStore
}

// Reply is what the gateway relays back after each input.
type Reply struct {
	Effect   Effect `json:"effect"`
	Done     bool   `json:"done"`
	SchemaID int64  `json:"schema_id,omitempty"`
}

// Start opens a fresh authoring session for the conversation. Only
// administrators may author service types.
func (s *BuilderService) Start(conversationID int64, isAdmin bool) (*Reply, error) {
	if !isAdmin {
		return nil, ErrNotAdmin
	}

	s.Sessions.Put(conversationID, StateAwaitingTypeName, Accumulator{})
	return &Reply{Effect: promptTypeName()}, nil
}

// HandleInput advances the session by one input. A non-administrator
// interaction is rejected without touching the session.
func (s *BuilderService) HandleInput(conversationID int64, isAdmin bool, in Input) (*Reply, error) {
	if !isAdmin {
		return nil, ErrNotAdmin
	}

	st, acc, ok := s.Sessions.Get(conversationID)
	if !ok {
		return nil, ErrNoSession
	}

	next, nextAcc, effect := Advance(st, acc, in)

	if next != StateCommit {
		s.Sessions.Put(conversationID, next, nextAcc)
		return &Reply{Effect: effect}, nil
	}

	// Success or failure, the accumulation is not retained past commit.
	s.Sessions.Delete(conversationID)

	createdBy := strconv.FormatInt(conversationID, 10)
	id, err := s.Registry.Define(nextAcc.TypeName, createdBy, nextAcc.Fields)
	if err != nil {
		if errors.Is(err, schema.ErrDuplicateName) {
			return &Reply{
				Effect: Effect{Prompt: "❌ Тип услуги с таким названием уже существует"},
				Done:   true,
			}, nil
		}
		return nil, err
	}

	return &Reply{
		Effect:   Effect{Prompt: "✅ Новый тип услуги успешно создан!"},
		Done:     true,
		SchemaID: id,
	}, nil
}
