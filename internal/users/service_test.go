package users

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"service-market-api/config"
	"service-market-api/internal/util"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq uint64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	id := atomic.AddUint64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:users_test_%d?mode=memory&cache=shared", id)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&User{}, &BannedUser{}); err != nil {
		t.Fatalf("migrate db: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newTestUserService(t *testing.T) *UserService {
	t.Helper()

	hash, err := util.HashPassword("gateway-key")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	return &UserService{
		DB: newTestDB(t),
		Cfg: config.Config{
			JWTSecret:      "test-secret",
			GatewayKeyHash: hash,
		},
	}
}

func TestUsers_Start_UpsertsProfile(t *testing.T) {
	svc := newTestUserService(t)

	first, err := svc.Start(StartInput{TelegramID: "100500", FullName: "Иван"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if first.ID <= 0 || first.IsSeller || first.IsAdmin {
		t.Fatalf("user = %+v", first)
	}

	second, err := svc.Start(StartInput{TelegramID: "100500", FullName: "Иван Петров", NumberPhone: "+79991234567"})
	if err != nil {
		t.Fatalf("repeat start: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a new row: %d != %d", second.ID, first.ID)
	}
	if second.FullName != "Иван Петров" || second.NumberPhone != "+79991234567" {
		t.Fatalf("profile not refreshed: %+v", second)
	}
}

func TestUsers_Start_RequiresTelegramID(t *testing.T) {
	svc := newTestUserService(t)

	if _, err := svc.Start(StartInput{}); err == nil {
		t.Fatal("expected error for blank telegram id")
	}
}

func TestUsers_Start_RejectsBanned(t *testing.T) {
	svc := newTestUserService(t)

	if err := svc.Ban("100500", "спам", 1); err != nil {
		t.Fatalf("ban: %v", err)
	}

	_, err := svc.Start(StartInput{TelegramID: "100500"})
	if !errors.Is(err, ErrBanned) {
		t.Fatalf("err = %v, want ErrBanned", err)
	}
}

func TestUsers_SetSeller(t *testing.T) {
	svc := newTestUserService(t)

	user, _ := svc.Start(StartInput{TelegramID: "100500"})

	if err := svc.SetSeller(user.ID, true); err != nil {
		t.Fatalf("set seller: %v", err)
	}

	got, _ := svc.GetByID(user.ID)
	if !got.IsSeller {
		t.Fatal("expected is_seller=true")
	}

	if err := svc.SetSeller(777, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUsers_BanUnban_Idempotent(t *testing.T) {
	svc := newTestUserService(t)

	if err := svc.Ban("100500", "спам", 1); err != nil {
		t.Fatalf("ban: %v", err)
	}
	if err := svc.Ban("100500", "другая причина", 2); err != nil {
		t.Fatalf("repeat ban: %v", err)
	}

	var row BannedUser
	if err := svc.DB.Where("telegram_id = ?", "100500").First(&row).Error; err != nil {
		t.Fatalf("load ban: %v", err)
	}
	if row.Reason != "спам" || row.BannedByID != 1 {
		t.Fatalf("original ban row overwritten: %+v", row)
	}

	if err := svc.Unban("100500"); err != nil {
		t.Fatalf("unban: %v", err)
	}
	banned, _ := svc.IsBanned("100500")
	if banned {
		t.Fatal("expected unbanned")
	}
}

func TestUsers_IssueGatewayToken(t *testing.T) {
	svc := newTestUserService(t)

	user, _ := svc.Start(StartInput{TelegramID: "100500", FullName: "Иван"})
	svc.DB.Model(&User{}).Where("id = ?", user.ID).Update("is_admin", true)

	token, got, err := svc.IssueGatewayToken("gateway-key", "100500")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("user = %+v", got)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse token: %v", err)
	}

	claims := parsed.Claims.(jwt.MapClaims)
	if int64(claims["user_id"].(float64)) != user.ID {
		t.Fatalf("user_id claim = %v", claims["user_id"])
	}
	if claims["telegram_id"] != "100500" {
		t.Fatalf("telegram_id claim = %v", claims["telegram_id"])
	}
	if claims["is_admin"] != true {
		t.Fatalf("is_admin claim = %v", claims["is_admin"])
	}
}

func TestUsers_IssueGatewayToken_WrongKey(t *testing.T) {
	svc := newTestUserService(t)
	svc.Start(StartInput{TelegramID: "100500"})

	_, _, err := svc.IssueGatewayToken("wrong-key", "100500")
	if !errors.Is(err, ErrBadGatewayKey) {
		t.Fatalf("err = %v, want ErrBadGatewayKey", err)
	}
}

func TestUsers_IssueGatewayToken_BannedAfterRegistration(t *testing.T) {
	svc := newTestUserService(t)
	svc.Start(StartInput{TelegramID: "100500"})

	if err := svc.Ban("100500", "спам", 1); err != nil {
		t.Fatalf("ban: %v", err)
	}

	_, _, err := svc.IssueGatewayToken("gateway-key", "100500")
	if !errors.Is(err, ErrBanned) {
		t.Fatalf("err = %v, want ErrBanned", err)
	}
}

func TestUsers_IssueGatewayToken_UnknownUser(t *testing.T) {
	svc := newTestUserService(t)

	_, _, err := svc.IssueGatewayToken("gateway-key", "404404")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
