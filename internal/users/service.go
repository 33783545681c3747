package users

import (
	"errors"
	"strings"
	"time"

	"service-market-api/config"
	"service-market-api/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrBanned        = errors.New("user is banned")
	ErrBadGatewayKey = errors.New("invalid gateway key")
)

type UserService struct {
	DB  *gorm.DB
	Cfg config.Config
}

type StartInput struct {
	TelegramID  string
	FullName    string
	NumberPhone string
}

// Start registers the user on first contact and refreshes the profile
// fields on every later one. Banned users are rejected before any write.
func (us *UserService) Start(in StartInput) (*User, error) {
	telegramID := strings.TrimSpace(in.TelegramID)
	if telegramID == "" {
		return nil, errors.New("telegram id is required")
	}

	banned, err := us.IsBanned(telegramID)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, ErrBanned
	}

	row := User{
		TelegramID:  telegramID,
		FullName:    in.FullName,
		NumberPhone: in.NumberPhone,
	}
	err = us.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "telegram_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "number_phone", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	return us.GetByTelegramID(telegramID)
}

func (us *UserService) GetByTelegramID(telegramID string) (*User, error) {
	var row User
	if err := us.DB.Where("telegram_id = ?", telegramID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (us *UserService) GetByID(id int64) (*User, error) {
	var row User
	if err := us.DB.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// SetSeller flips the seller flag; first listing creation turns it on.
func (us *UserService) SetSeller(id int64, isSeller bool) error {
	res := us.DB.Model(&User{}).Where("id = ?", id).Update("is_seller", isSeller)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (us *UserService) IsBanned(telegramID string) (bool, error) {
	var count int64
	err := us.DB.Model(&BannedUser{}).Where("telegram_id = ?", telegramID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ban is idempotent: banning an already-banned user keeps the original
// row.
func (us *UserService) Ban(telegramID, reason string, bannedByID int64) error {
	row := BannedUser{
		TelegramID: telegramID,
		Reason:     reason,
		BannedByID: bannedByID,
	}
	return us.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "telegram_id"}},
		DoNothing: true,
	}).Create(&row).Error
}

func (us *UserService) Unban(telegramID string) error {
	return us.DB.Where("telegram_id = ?", telegramID).Delete(&BannedUser{}).Error
}

// IssueGatewayToken exchanges the gateway's shared key for a short-lived
// user JWT. The gateway authenticates itself with the plain key, which is
// checked against the stored bcrypt hash.
func (us *UserService) IssueGatewayToken(gatewayKey, telegramID string) (string, *User, error) {
	if err := util.VerifyPassword(gatewayKey, us.Cfg.GatewayKeyHash); err != nil {
		return "", nil, ErrBadGatewayKey
	}

	user, err := us.GetByTelegramID(telegramID)
	if err != nil {
		return "", nil, err
	}

	banned, err := us.IsBanned(telegramID)
	if err != nil {
		return "", nil, err
	}
	if banned {
		return "", nil, ErrBanned
	}

	claims := jwt.MapClaims{
		"user_id":     user.ID,
		"telegram_id": user.TelegramID,
		"is_admin":    user.IsAdmin,
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(us.Cfg.JWTSecret))
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
