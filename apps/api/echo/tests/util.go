package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/walimu/apps/api/echo"
	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/class"
	"github.com/trezcool/walimu/core/dashboard"
	"github.com/trezcool/walimu/core/document"
	"github.com/trezcool/walimu/core/identity"
	"github.com/trezcool/walimu/core/publication"
	"github.com/trezcool/walimu/core/syllabus"
	"github.com/trezcool/walimu/core/teacher"
	"github.com/trezcool/walimu/core/timetable"
	emailsvc "github.com/trezcool/walimu/services/email"
	inmemstore "github.com/trezcool/walimu/storage/store/inmem"
	testutil "github.com/trezcool/walimu/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type fixture struct {
	app        Server
	store      core.RecordStore
	session    *identity.Session
	teacherSvc *teacher.Service
}

func setup(t *testing.T) *fixture {
	t.Helper()

	core.Conf.TestMode = true
	core.Conf.Debug = false // debug rewrites error bodies to bare strings
	core.Conf.Admin.Email = "admin@test.cd"
	core.Conf.Admin.Password = "adminpwd"

	store := inmemstore.Open()
	session := identity.NewSession()
	logger := testutil.NopLogger{}
	mailSvc := emailsvc.NewConsoleServiceMock()

	f := &fixture{
		store:      store,
		session:    session,
		teacherSvc: teacher.NewService(store, mailSvc, logger),
	}
	f.app = NewServer(
		&Options{
			DisableReqLogs: true,
			Session:        session,
			Resolver:       identity.NewResolver(store, nil),
			Scope:          identity.NewScopeResolver(store, logger),
			TeacherSvc:     f.teacherSvc,
			ClassSvc:       class.NewService(store),
			DocumentSvc:    document.NewService(store),
			SyllabusSvc:    syllabus.NewService(store),
			PublicationSvc: publication.NewService(store),
			TimetableSvc:   timetable.NewService(store),
			DashboardSvc:   dashboard.NewService(store, logger),
			Logger:         logger,
		},
		nil, /* shutdown */
	)
	return f
}

// login runs a real login request and returns the minted token.
func (f *fixture) login(t *testing.T, email, pwd, role string) string {
	t.Helper()

	body := marchallObj(t, identity.Credentials{Email: email, Password: pwd, Role: role})
	req, rec := newRequest(http.MethodPost, "/v1/auth/login", body)
	f.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login() failed: code = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("login() failed to decode response: %v", err)
	}
	return resp.Token
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, ident identity.Identity) string {
	t.Helper()

	token, err := GenerateToken(GetIdentityClaims(ident))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

// nolint
func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func checkRedirect(t *testing.T, rec *httptest.ResponseRecorder, wantLocation string) {
	t.Helper()

	if rec.Code != http.StatusFound {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != wantLocation {
		t.Errorf("failed! location = %v; want %v", loc, wantLocation)
	}
}
