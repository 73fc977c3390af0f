package testutil

import (
	"context"
	"testing"

	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/teacher"
)

// CreateTeacher adds a roster record directly through the service.
func CreateTeacher(t *testing.T, svc *teacher.Service, name, email, department, pwd string) teacher.Teacher {
	t.Helper()

	nt := teacher.NewTeacher{Name: name, Email: email, Department: department, Password: pwd}
	if err := nt.Validate(); err != nil {
		t.Fatalf("CreateTeacher() validation failed: %v", err)
	}
	tch, err := svc.Create(context.Background(), nt)
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return tch
}

// InsertRecord seeds a raw document into a collection.
func InsertRecord(t *testing.T, store core.RecordStore, collection string, fields core.Fields) string {
	t.Helper()

	id, err := store.Insert(context.Background(), collection, fields)
	if err != nil {
		t.Fatalf("InsertRecord() failed: %v", err)
	}
	return id
}
