package builder

import (
	"errors"
	"testing"
	"time"

	"service-market-api/internal/schema"
)

type fakeRegistry struct {
	defineErr   error
	definedID   int64
	gotName     string
	gotBy       string
	gotFields   schema.FieldSet
	defineCalls int
}

func (f *fakeRegistry) Define(name, createdBy string, adminFields schema.FieldSet) (int64, error) {
	f.defineCalls++
	f.gotName = name
	f.gotBy = createdBy
	f.gotFields = adminFields
	if f.defineErr != nil {
		return 0, f.defineErr
	}
	return f.definedID, nil
}

func (f *fakeRegistry) Lookup(id int64) (*schema.Schema, error) { return nil, schema.ErrNotFound }
func (f *fakeRegistry) ListActive() ([]schema.Schema, error)    { return nil, nil }
func (f *fakeRegistry) Deactivate(id int64) (bool, error)       { return false, nil }

func newService(reg *fakeRegistry) *BuilderService {
	return &BuilderService{
		Registry: reg,
		Sessions: NewSessionStore(time.Minute),
	}
}

func TestBuilder_NonAdminRejected_NoStateChange(t *testing.T) {
	svc := newService(&fakeRegistry{definedID: 1})

	if _, err := svc.Start(7, false); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("Start err = %v", err)
	}

	if _, err := svc.Start(7, true); err != nil {
		t.Fatalf("admin start: %v", err)
	}

	// non-admin input on an existing session leaves it untouched
	if _, err := svc.HandleInput(7, false, text("Тренер")); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("HandleInput err = %v", err)
	}
	st, acc, ok := svc.Sessions.Get(7)
	if !ok || st != StateAwaitingTypeName || acc.TypeName != "" {
		t.Fatalf("session changed by rejected input: st=%d acc=%+v", st, acc)
	}
}

func TestBuilder_NoSession(t *testing.T) {
	svc := newService(&fakeRegistry{})

	if _, err := svc.HandleInput(7, true, text("x")); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v", err)
	}
}

func runFullDialog(t *testing.T, svc *BuilderService) *Reply {
	t.Helper()

	if _, err := svc.Start(7, true); err != nil {
		t.Fatalf("start: %v", err)
	}

	steps := []Input{
		text("Тренер"),
		text("experience"),
		choice("field_type:text"),
		text("Опыт работы"),
		text("Сколько лет вы тренируете"),
		choice("required_true"),
	}
	for _, in := range steps {
		if _, err := svc.HandleInput(7, true, in); err != nil {
			t.Fatalf("input %+v: %v", in, err)
		}
	}

	reply, err := svc.HandleInput(7, true, choice("finish"))
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	return reply
}

func TestBuilder_FullDialog_Commits(t *testing.T) {
	reg := &fakeRegistry{definedID: 11}
	svc := newService(reg)

	reply := runFullDialog(t, svc)

	if !reply.Done || reply.SchemaID != 11 {
		t.Fatalf("reply = %+v", reply)
	}
	if reg.gotName != "Тренер" || reg.gotBy != "7" {
		t.Fatalf("define args: %q by %q", reg.gotName, reg.gotBy)
	}
	if len(reg.gotFields) != 1 || reg.gotFields[0].Name != "experience" {
		t.Fatalf("fields = %+v", reg.gotFields)
	}

	// session is discarded after commit
	if _, _, ok := svc.Sessions.Get(7); ok {
		t.Fatal("session retained after commit")
	}
}

func TestBuilder_DuplicateName_SessionDiscarded(t *testing.T) {
	reg := &fakeRegistry{defineErr: schema.ErrDuplicateName}
	svc := newService(reg)

	reply := runFullDialog(t, svc)

	if !reply.Done {
		t.Fatalf("reply = %+v", reply)
	}
	if reply.SchemaID != 0 {
		t.Fatalf("schema id = %d", reply.SchemaID)
	}
	if _, _, ok := svc.Sessions.Get(7); ok {
		t.Fatal("session retained after failed commit")
	}
}

func TestBuilder_StorageFailure_SurfacedAsError(t *testing.T) {
	reg := &fakeRegistry{defineErr: errors.New("connection refused")}
	svc := newService(reg)

	if _, err := svc.Start(7, true); err != nil {
		t.Fatalf("start: %v", err)
	}
	steps := []Input{
		text("Тренер"),
		text("experience"),
		choice("field_type:text"),
		text("Опыт работы"),
		text("Описание"),
		choice("required_false"),
	}
	for _, in := range steps {
		if _, err := svc.HandleInput(7, true, in); err != nil {
			t.Fatalf("input: %v", err)
		}
	}

	_, err := svc.HandleInput(7, true, choice("finish"))
	if err == nil {
		t.Fatal("expected storage error to surface")
	}
	if _, _, ok := svc.Sessions.Get(7); ok {
		t.Fatal("session retained after failed commit")
	}
}

func TestBuilder_ReentryAfterInvalidInput(t *testing.T) {
	reg := &fakeRegistry{definedID: 3}
	svc := newService(reg)

	if _, err := svc.Start(7, true); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.HandleInput(7, true, text("Тренер")); err != nil {
		t.Fatalf("name: %v", err)
	}

	// invalid field name: state survives, next valid input continues
	if _, err := svc.HandleInput(7, true, text("Неправильное Имя")); err != nil {
		t.Fatalf("invalid field name: %v", err)
	}
	st, _, _ := svc.Sessions.Get(7)
	if st != StateAwaitingFieldName {
		t.Fatalf("state = %d", st)
	}

	if _, err := svc.HandleInput(7, true, text("skills")); err != nil {
		t.Fatalf("valid field name: %v", err)
	}
	st, acc, _ := svc.Sessions.Get(7)
	if st != StateAwaitingFieldKind || acc.Current.Name != "skills" {
		t.Fatalf("state=%d acc=%+v", st, acc.Current)
	}
}
