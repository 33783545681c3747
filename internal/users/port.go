package users

type UserAPI interface {
	Start(in StartInput) (*User, error)
	GetByTelegramID(telegramID string) (*User, error)
	GetByID(id int64) (*User, error)
	SetSeller(id int64, isSeller bool) error
	IsBanned(telegramID string) (bool, error)
	Ban(telegramID, reason string, bannedByID int64) error
	Unban(telegramID string) error
	IssueGatewayToken(gatewayKey, telegramID string) (string, *User, error)
}
