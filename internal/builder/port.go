package builder

type BuilderAPI interface {
	Start(conversationID int64, isAdmin bool) (*Reply, error)
	HandleInput(conversationID int64, isAdmin bool, in Input) (*Reply, error)
}
