package teacher_test

import (
	"context"
	"strings"
	"testing"

	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/teacher"
	emailsvc "github.com/trezcool/walimu/services/email"
	inmemstore "github.com/trezcool/walimu/storage/store/inmem"
	testutil "github.com/trezcool/walimu/tests"
)

func setup() (*teacher.Service, core.RecordStore) {
	store := inmemstore.Open()
	svc := teacher.NewService(store, emailsvc.NewConsoleServiceMock(), testutil.NopLogger{})
	return svc, store
}

func TestService_Create(t *testing.T) {
	svc, _ := setup()
	sent := len(emailsvc.SentMessages)

	nt := teacher.NewTeacher{Name: "Jane Doe", Email: "JANE@test.cd ", Department: "CSE", Password: "s3cret"}
	if err := nt.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if nt.Email != "jane@test.cd" {
		t.Errorf("Validate() email = %q, want cleaned lowercase", nt.Email)
	}

	tch, err := svc.Create(context.Background(), nt)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if tch.ID == "" {
		t.Error("Create() assigned no id")
	}
	if tch.JoinDate == "" {
		t.Error("Create() stamped no join date")
	}

	// welcome email
	if len(emailsvc.SentMessages) != sent+1 {
		t.Fatalf("Create() sent %d emails, want 1", len(emailsvc.SentMessages)-sent)
	}
	msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	if msg.To[0].Address != "jane@test.cd" || !strings.HasPrefix(msg.Subject, "Welcome") {
		t.Errorf("Create() welcome email = %+v", msg)
	}
}

func TestService_Validation(t *testing.T) {
	tests := []struct {
		name    string
		nt      teacher.NewTeacher
		wantErr bool
	}{
		{name: "ok", nt: teacher.NewTeacher{Name: "Jane", Email: "jane@test.cd", Department: "CSE"}},
		{name: "ok without password", nt: teacher.NewTeacher{Name: "Jane", Email: "jane@test.cd", Department: "IT"}},
		{name: "missing name", nt: teacher.NewTeacher{Email: "jane@test.cd", Department: "CSE"}, wantErr: true},
		{name: "bad email", nt: teacher.NewTeacher{Name: "Jane", Email: "lol", Department: "CSE"}, wantErr: true},
		{name: "missing department", nt: teacher.NewTeacher{Name: "Jane", Email: "jane@test.cd"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.nt.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	svc, store := setup()
	ctx := context.Background()

	tch := testutil.CreateTeacher(t, svc, "Jane Doe", "jane@test.cd", "CSE", "s3cret")

	got, err := svc.Update(ctx, tch.ID, teacher.UpdateTeacher{Name: "Jane B Doe", Email: "jane@test.cd", Department: "IT"})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got.Name != "Jane B Doe" || got.Department != "IT" {
		t.Errorf("Update() = %+v", got)
	}
	if got.JoinDate != tch.JoinDate {
		t.Errorf("Update() clobbered join date: %q != %q", got.JoinDate, tch.JoinDate)
	}

	// the stored password survives an admin update
	fields, err := store.Get(ctx, teacher.Collection, tch.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if pwd, _ := fields["password"].(string); pwd != "s3cret" {
		t.Errorf("Update() clobbered password: %q", pwd)
	}

	if _, err = svc.Update(ctx, "nope", teacher.UpdateTeacher{Name: "X", Email: "x@test.cd", Department: "IT"}); err != teacher.ErrNotFound {
		t.Errorf("Update() error = %v, want %v", err, teacher.ErrNotFound)
	}
}

func TestService_UpdateProfile(t *testing.T) {
	svc, store := setup()
	ctx := context.Background()

	tch := testutil.CreateTeacher(t, svc, "Jane Doe", "jane@test.cd", "CSE", "s3cret")

	// without a new password, the old one stays
	got, err := svc.UpdateProfile(ctx, tch.ID, teacher.UpdateProfile{
		Name: "Jane Doe", Email: "jane@test.cd", Department: "CSE", ProfileImage: "https://cdn.test.cd/jane.png",
	})
	if err != nil {
		t.Fatalf("UpdateProfile() failed: %v", err)
	}
	if got.ProfileImage != "https://cdn.test.cd/jane.png" {
		t.Errorf("UpdateProfile() = %+v", got)
	}
	fields, _ := store.Get(ctx, teacher.Collection, tch.ID)
	if pwd, _ := fields["password"].(string); pwd != "s3cret" {
		t.Errorf("UpdateProfile() clobbered password: %q", pwd)
	}

	// with a new password
	if _, err = svc.UpdateProfile(ctx, tch.ID, teacher.UpdateProfile{
		Name: "Jane Doe", Email: "jane@test.cd", Department: "CSE", Password: "n3w",
	}); err != nil {
		t.Fatalf("UpdateProfile() failed: %v", err)
	}
	fields, _ = store.Get(ctx, teacher.Collection, tch.ID)
	if pwd, _ := fields["password"].(string); pwd != "n3w" {
		t.Errorf("UpdateProfile() password = %q, want n3w", pwd)
	}
}

func TestService_GetByEmailAndDelete(t *testing.T) {
	svc, _ := setup()
	ctx := context.Background()

	tch := testutil.CreateTeacher(t, svc, "Jane Doe", "jane@test.cd", "CSE", "s3cret")

	got, err := svc.GetByEmail(ctx, "jane@test.cd")
	if err != nil {
		t.Fatalf("GetByEmail() failed: %v", err)
	}
	if got.ID != tch.ID {
		t.Errorf("GetByEmail() = %+v, want id %s", got, tch.ID)
	}

	if _, err = svc.GetByEmail(ctx, "nope@test.cd"); err != teacher.ErrNotFound {
		t.Errorf("GetByEmail() error = %v, want %v", err, teacher.ErrNotFound)
	}

	if err = svc.Delete(ctx, tch.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err = svc.Delete(ctx, tch.ID); err != nil {
		t.Errorf("second Delete() = %v, want nil", err)
	}
	if _, err = svc.GetByID(ctx, tch.ID); err != teacher.ErrNotFound {
		t.Errorf("GetByID() error = %v, want %v", err, teacher.ErrNotFound)
	}
}
