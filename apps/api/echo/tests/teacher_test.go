package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/walimu/core/teacher"
	testutil "github.com/trezcool/walimu/tests"
)

func Test_teacherApi_rosterCRUD(t *testing.T) {
	f := setup(t)
	token := f.login(t, "admin@test.cd", "adminpwd", "admin")

	// empty roster
	req, rec := newAuthRequest(http.MethodGet, "/v1/teachers", token)
	f.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte(`[]`)}, rec)

	// create
	body := marchallObj(t, teacher.NewTeacher{Name: "Jane Doe", Email: "jane@test.cd", Department: "CSE", Password: "s3cret"})
	req, rec = newAuthRequest(http.MethodPost, "/v1/teachers", token, body)
	f.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: code = %d, body = %s", rec.Code, rec.Body.String())
	}
	var tch teacher.Teacher
	if err := json.Unmarshal(rec.Body.Bytes(), &tch); err != nil {
		t.Fatalf("decoding teacher: %v", err)
	}
	if tch.ID == "" || tch.JoinDate == "" {
		t.Errorf("create: teacher = %+v, want id and joinDate", tch)
	}

	// retrieve
	req, rec = newAuthRequest(http.MethodGet, "/v1/teachers/"+tch.ID, token)
	f.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, tch)}, rec)

	// update
	body = marchallObj(t, teacher.UpdateTeacher{Name: "Jane B Doe", Email: "jane@test.cd", Department: "IT"})
	req, rec = newAuthRequest(http.MethodPut, "/v1/teachers/"+tch.ID, token, body)
	f.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: code = %d, body = %s", rec.Code, rec.Body.String())
	}
	var updated teacher.Teacher
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decoding teacher: %v", err)
	}
	if updated.Name != "Jane B Doe" || updated.Department != "IT" {
		t.Errorf("update = %+v", updated)
	}

	// validation
	req, rec = newAuthRequest(http.MethodPost, "/v1/teachers", token, []byte(`{"name":"X"}`))
	f.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("create invalid: code = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	// unknown id
	req, rec = newAuthRequest(http.MethodGet, "/v1/teachers/nope", token)
	f.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)

	// delete, twice
	req, rec = newAuthRequest(http.MethodDelete, "/v1/teachers/"+tch.ID, token)
	f.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: code = %d", rec.Code)
	}
	req, rec = newAuthRequest(http.MethodDelete, "/v1/teachers/"+tch.ID, token)
	f.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("second delete: code = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func Test_teacherApi_rosterRequiresAdmin(t *testing.T) {
	f := setup(t)
	testutil.CreateTeacher(t, f.teacherSvc, "Jane Doe", "jane@test.cd", "CSE", "s3cret")
	token := f.login(t, "jane@test.cd", "s3cret", "teacher")

	req, rec := newAuthRequest(http.MethodGet, "/v1/teachers", token)
	f.app.ServeHTTP(rec, req)
	checkRedirect(t, rec, "/v1/dashboard")
}

func Test_teacherApi_profile(t *testing.T) {
	f := setup(t)
	tch := testutil.CreateTeacher(t, f.teacherSvc, "Jane Doe", "jane@test.cd", "CSE", "s3cret")
	token := f.login(t, "jane@test.cd", "s3cret", "teacher")

	// own record
	req, rec := newAuthRequest(http.MethodGet, "/v1/profile", token)
	f.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, tch)}, rec)

	// self-service update
	body := marchallObj(t, teacher.UpdateProfile{
		Name: "Jane B Doe", Email: "jane@test.cd", Department: "CSE", ProfileImage: "https://cdn.test.cd/jane.png",
	})
	req, rec = newAuthRequest(http.MethodPut, "/v1/profile", token, body)
	f.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile: code = %d, body = %s", rec.Code, rec.Body.String())
	}
	var updated teacher.Teacher
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decoding teacher: %v", err)
	}
	if updated.Name != "Jane B Doe" || updated.ProfileImage != "https://cdn.test.cd/jane.png" {
		t.Errorf("update profile = %+v", updated)
	}

	// admin has no profile
	adminToken := f.login(t, "admin@test.cd", "adminpwd", "admin")
	req, rec = newAuthRequest(http.MethodGet, "/v1/profile", adminToken)
	f.app.ServeHTTP(rec, req)
	checkRedirect(t, rec, "/v1/dashboard")
}
