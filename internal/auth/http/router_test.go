package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkravets/huddle-auth/internal/auth/domain"
	"github.com/pkravets/huddle-auth/internal/auth/repository"
	"github.com/pkravets/huddle-auth/internal/auth/service"
	commoncrypto "github.com/pkravets/huddle-auth/internal/common/crypto"
	"github.com/pkravets/huddle-auth/internal/common/logger"
)

type fakeUserRepo struct {
	users      map[string]domain.User
	createErr  error
	lookupErr  error
	existsErr  error
	nextUserID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}, nextUserID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email || existing.Handle == user.Handle {
			return domain.User{}, errors.New(`duplicate key value violates unique constraint "users_username_key"`)
		}
	}
	created := user
	created.ID = f.nextUserID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.nextUserID++
	f.users[user.Username] = created
	return created, nil
}

func (f *fakeUserRepo) FindByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	if f.lookupErr != nil {
		return domain.User{}, f.lookupErr
	}
	for _, user := range f.users {
		if user.Username == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Exists(ctx context.Context, field domain.Field, value string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, user := range f.users {
		switch field {
		case domain.FieldUsername:
			if user.Username == value {
				return true, nil
			}
		case domain.FieldEmail:
			if user.Email == value {
				return true, nil
			}
		case domain.FieldHandle:
			if user.Handle == value {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	for key, user := range f.users {
		if user.ID == id {
			delete(f.users, key)
		}
	}
	return nil
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(ctx context.Context) error {
	return f.err
}

func setupHandler(t *testing.T, repo *fakeUserRepo, pinger *fakePinger) http.Handler {
	t.Helper()
	log := logger.GetInstance()
	hasher := &commoncrypto.BcryptHasher{}
	issuer := service.NewTokenIssuer("router-test-secret-0123456789abcd")
	auth := service.NewAuthService(repo, hasher, issuer, log)
	checker := service.NewAvailabilityChecker(repo, log)
	return NewHandler(auth, checker, pinger, 5*time.Second, log)
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response %q: %v", rec.Body.String(), err)
	}
	return body
}

const registerAlice = `{"username":"alice","email":"alice@x.com","password":"Secret123!","handle":"@alice"}`

func TestRegisterEndpoint_Created(t *testing.T) {
	handler := setupHandler(t, newFakeUserRepo(), &fakePinger{})

	rec := doJSON(t, handler, http.MethodPost, "/register", registerAlice)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["message"] != "User created successfully" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestRegisterEndpoint_DuplicateSurfacesAsStoreError(t *testing.T) {
	repo := newFakeUserRepo()
	handler := setupHandler(t, repo, &fakePinger{})

	if rec := doJSON(t, handler, http.MethodPost, "/register", registerAlice); rec.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", rec.Code)
	}

	// Same username, different email: still a 500, not a 409.
	rec := doJSON(t, handler, http.MethodPost, "/register",
		`{"username":"alice","email":"other@x.com","password":"Secret123!","handle":"@other"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if _, ok := body["error"]; !ok {
		t.Errorf("expected error key in body: %v", body)
	}
}

func TestRegisterEndpoint_ValidationUsesMessageKey(t *testing.T) {
	handler := setupHandler(t, newFakeUserRepo(), &fakePinger{})

	rec := doJSON(t, handler, http.MethodPost, "/register",
		`{"username":"alice","email":"","password":"Secret123!","handle":"@alice"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if _, ok := body["message"]; !ok {
		t.Errorf("register validation failures report under message: %v", body)
	}
}

func TestRegisterEndpoint_MethodNotAllowed(t *testing.T) {
	handler := setupHandler(t, newFakeUserRepo(), &fakePinger{})

	rec := doJSON(t, handler, http.MethodGet, "/register", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestLoginEndpoint_SuccessWithUsernameAndEmail(t *testing.T) {
	repo := newFakeUserRepo()
	handler := setupHandler(t, repo, &fakePinger{})
	doJSON(t, handler, http.MethodPost, "/register", registerAlice)

	for _, identifier := range []string{"alice", "alice@x.com"} {
		rec := doJSON(t, handler, http.MethodPost, "/login",
			`{"identifier":"`+identifier+`","password":"Secret123!"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("login via %q: expected 200, got %d: %s", identifier, rec.Code, rec.Body.String())
		}

		body := decodeBody(t, rec)
		if body["token"] == "" || body["token"] == nil {
			t.Error("expected token in response")
		}
		user, ok := body["user"].(map[string]any)
		if !ok {
			t.Fatalf("expected user object, got %v", body["user"])
		}
		if user["username"] != "alice" || user["email"] != "alice@x.com" || user["handle"] != "@alice" {
			t.Errorf("unexpected user: %v", user)
		}
		for _, key := range []string{"id", "created_at", "updated_at"} {
			if _, ok := user[key]; !ok {
				t.Errorf("expected %s in user object: %v", key, user)
			}
		}
		if strings.Contains(rec.Body.String(), "password") {
			t.Errorf("response body leaks credentials: %s", rec.Body.String())
		}
	}
}

func TestLoginEndpoint_InvalidCredentialsBodyIsFixed(t *testing.T) {
	repo := newFakeUserRepo()
	handler := setupHandler(t, repo, &fakePinger{})
	doJSON(t, handler, http.MethodPost, "/register", registerAlice)

	wrongPassword := doJSON(t, handler, http.MethodPost, "/login",
		`{"identifier":"alice","password":"wrong"}`)
	unknownUser := doJSON(t, handler, http.MethodPost, "/login",
		`{"identifier":"nobody","password":"whatever"}`)

	for _, rec := range []*httptest.ResponseRecorder{wrongPassword, unknownUser} {
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		if body["error"] != "Invalid credentials" {
			t.Errorf("expected fixed message, got %v", body)
		}
	}

	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Errorf("401 bodies must be identical: %q vs %q",
			wrongPassword.Body.String(), unknownUser.Body.String())
	}
}

func TestLoginEndpoint_ValidationError(t *testing.T) {
	handler := setupHandler(t, newFakeUserRepo(), &fakePinger{})

	rec := doJSON(t, handler, http.MethodPost, "/login", `{"identifier":"","password":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if _, ok := body["error"]; !ok {
		t.Errorf("login failures report under error: %v", body)
	}
}

func TestCheckEndpoints_RoundTripAfterRegister(t *testing.T) {
	repo := newFakeUserRepo()
	handler := setupHandler(t, repo, &fakePinger{})
	doJSON(t, handler, http.MethodPost, "/register", registerAlice)

	cases := []struct {
		path    string
		body    string
		echoKey string
		exists  bool
	}{
		{"/username-check", `{"username":"alice"}`, "username", true},
		{"/username-check", `{"username":"Alice"}`, "username", false},
		{"/email-check", `{"email":"alice@x.com"}`, "email", true},
		{"/email-check", `{"email":"free@x.com"}`, "email", false},
		{"/handle-check", `{"handle":"@alice"}`, "handle", true},
		{"/handle-check", `{"handle":"@bob"}`, "handle", false},
	}

	for _, tc := range cases {
		rec := doJSON(t, handler, http.MethodPost, tc.path, tc.body)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s %s: expected 200, got %d: %s", tc.path, tc.body, rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		if _, ok := body[tc.echoKey]; !ok {
			t.Errorf("%s: expected echoed %s key: %v", tc.path, tc.echoKey, body)
		}
		if body["exists"] != tc.exists || body["available"] != !tc.exists {
			t.Errorf("%s %s: expected exists=%v, got %v", tc.path, tc.body, tc.exists, body)
		}
	}
}

func TestCheckEndpoints_EmptyValue(t *testing.T) {
	handler := setupHandler(t, newFakeUserRepo(), &fakePinger{})

	cases := []struct {
		path string
		body string
		want string
	}{
		{"/username-check", `{"username":""}`, "Username is required and must be a non-empty string"},
		{"/email-check", `{"email":""}`, "Email is required and must be a non-empty string"},
		{"/handle-check", `{"handle":""}`, "Handle is required and must be a non-empty string"},
	}

	for _, tc := range cases {
		rec := doJSON(t, handler, http.MethodPost, tc.path, tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.path, rec.Code)
		}
		body := decodeBody(t, rec)
		if body["error"] != tc.want {
			t.Errorf("%s: expected %q, got %v", tc.path, tc.want, body)
		}
	}
}

func TestCheckEndpoints_StoreError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.existsErr = errors.New("connection reset by peer")
	handler := setupHandler(t, repo, &fakePinger{})

	rec := doJSON(t, handler, http.MethodPost, "/username-check", `{"username":"alice"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "Server Error") {
		t.Errorf("expected Server Error in message, got %v", body)
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := setupHandler(t, newFakeUserRepo(), &fakePinger{})

	rec := doJSON(t, handler, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["server"] != "ok" || body["database"] != "ok" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	handler := setupHandler(t, newFakeUserRepo(), &fakePinger{err: errors.New("dial tcp: connection refused")})

	rec := doJSON(t, handler, http.MethodGet, "/health", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["server"] != "ok" || body["database"] != "error" {
		t.Errorf("unexpected body: %v", body)
	}
	if details, _ := body["details"].(string); !strings.Contains(details, "connection refused") {
		t.Errorf("expected details with underlying error, got %v", body)
	}
}

func TestInvalidJSONBodies(t *testing.T) {
	handler := setupHandler(t, newFakeUserRepo(), &fakePinger{})

	rec := doJSON(t, handler, http.MethodPost, "/register", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("register: expected 400, got %d", rec.Code)
	}
	if _, ok := decodeBody(t, rec)["message"]; !ok {
		t.Error("register decode failures report under message")
	}

	rec = doJSON(t, handler, http.MethodPost, "/login", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("login: expected 400, got %d", rec.Code)
	}
	if _, ok := decodeBody(t, rec)["error"]; !ok {
		t.Error("login decode failures report under error")
	}
}
