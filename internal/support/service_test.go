package support

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"google.golang.org/genai"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq uint64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	id := atomic.AddUint64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:support_test_%d?mode=memory&cache=shared", id)

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

	if err := db.AutoMigrate(&Question{}); err != nil {
		t.Fatalf("migrate db: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func stubAnswer(t *testing.T, answer string, err error) *string {
	t.Helper()

	var gotPrompt string
	orig := generateAnswerHook
	generateAnswerHook = func(client *genai.Client, prompt string) (string, error) {
		gotPrompt = prompt
		if err != nil {
			return "", err
		}
		return answer, nil
	}
	t.Cleanup(func() { generateAnswerHook = orig })
	return &gotPrompt
}

func TestSupport_Ask_RecordsExchange(t *testing.T) {
	prompt := stubAnswer(t, "Нажмите кнопку «Создать услугу».", nil)

	svc := &SupportService{DB: newTestDB(t), FAQ: "Услуги создаются через кнопку «Создать услугу»."}

	q, err := svc.Ask(42, "Как создать услугу?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if q.ID <= 0 || q.UserID != 42 {
		t.Fatalf("question = %+v", q)
	}
	if q.Answer != "Нажмите кнопку «Создать услугу»." {
		t.Fatalf("answer = %q", q.Answer)
	}

	if !strings.Contains(*prompt, "Как создать услугу?") {
		t.Fatalf("prompt missing question: %q", *prompt)
	}
	if !strings.Contains(*prompt, svc.FAQ) {
		t.Fatalf("prompt missing FAQ: %q", *prompt)
	}

	var count int64
	svc.DB.Model(&Question{}).Count(&count)
	if count != 1 {
		t.Fatalf("rows = %d", count)
	}
}

func TestSupport_Ask_BlankQuestion(t *testing.T) {
	stubAnswer(t, "ответ", nil)

	svc := &SupportService{DB: newTestDB(t)}
	if _, err := svc.Ask(42, "   "); err == nil {
		t.Fatal("expected error for blank question")
	}
}

func TestSupport_Ask_GenerationFailureNotRecorded(t *testing.T) {
	stubAnswer(t, "", errors.New("gemini down"))

	svc := &SupportService{DB: newTestDB(t)}
	if _, err := svc.Ask(42, "Как удалить услугу?"); err == nil {
		t.Fatal("expected generation error")
	}

	var count int64
	svc.DB.Model(&Question{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed exchange persisted, rows = %d", count)
	}
}

func TestSupport_Get_ScopedToOwner(t *testing.T) {
	stubAnswer(t, "ответ", nil)

	svc := &SupportService{DB: newTestDB(t)}
	q, err := svc.Ask(42, "Как изменить цену?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}

	got, err := svc.Get(q.ID, 42)
	if err != nil || got.Text != "Как изменить цену?" {
		t.Fatalf("get: %+v, %v", got, err)
	}

	if _, err := svc.Get(q.ID, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for foreign user", err)
	}
}

func TestSupport_History_NewestFirstAndScoped(t *testing.T) {
	stubAnswer(t, "ответ", nil)

	svc := &SupportService{DB: newTestDB(t)}
	for i := 0; i < 3; i++ {
		if _, err := svc.Ask(42, fmt.Sprintf("вопрос %d", i)); err != nil {
			t.Fatalf("ask: %v", err)
		}
	}
	if _, err := svc.Ask(99, "чужой вопрос"); err != nil {
		t.Fatalf("ask: %v", err)
	}

	rows, err := svc.History(42, 2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d want 2", len(rows))
	}
	for _, row := range rows {
		if row.UserID != 42 {
			t.Fatalf("foreign row leaked: %+v", row)
		}
	}
}
