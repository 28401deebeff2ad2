package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cinelog/internal/httpapi/dto"
	"cinelog/internal/httpapi/middleware"
	"cinelog/internal/httpapi/models"
	"cinelog/internal/httpapi/service"
	"cinelog/internal/session"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(username, password string) (*models.User, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(username, password string) (*models.User, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

const testSessionTTL = 20 * time.Minute

func setupAuthRouter(svc service.AuthService, store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Resolve(store, int(testSessionTTL.Seconds()), false))
	api := r.Group("/api")
	NewAuthHandler(svc, NewSessionWriter(store, testSessionTTL, false)).RegisterRoutes(api)
	return r
}

func doJSON(r *gin.Engine, method, path, body, sessionToken string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: sessionToken})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var envelope dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestRegisterEndpoint_Success(t *testing.T) {
	svc := new(MockAuthService)
	store := session.NewMemoryStore(testSessionTTL)
	r := setupAuthRouter(svc, store)

	svc.On("Register", "user123", "abcd").Return(&models.User{ID: 1, Username: "user123"}, nil)

	w := doJSON(r, http.MethodPost, "/api/register", `{"username":"user123","password":"abcd"}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"username":"user123"}`, w.Body.String())
	setCookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, setCookie, middleware.SessionCookie+"=")
	assert.Contains(t, setCookie, "HttpOnly")
}

func TestRegisterEndpoint_ValidationFailure(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc, session.NewMemoryStore(testSessionTTL))

	w := doJSON(r, http.MethodPost, "/api/register", `{"username":"ab","password":"x"}`, "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, http.StatusUnprocessableEntity, envelope.Status)
	assert.Equal(t, "Unprocessable Entity", envelope.Error)
	assert.Len(t, envelope.FieldErrors, 2)
	assert.NotEmpty(t, envelope.Timestamp)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegisterEndpoint_EmptyBodyIsValidationFailure(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc, session.NewMemoryStore(testSessionTTL))

	w := doJSON(r, http.MethodPost, "/api/register", "", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	envelope := decodeEnvelope(t, w)
	require.Len(t, envelope.FieldErrors, 2)
	assert.Equal(t, "username", envelope.FieldErrors[0].Field)
	assert.Equal(t, "REQUIRED", envelope.FieldErrors[0].Code)
}

func TestRegisterEndpoint_DuplicateUsername(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc, session.NewMemoryStore(testSessionTTL))

	svc.On("Register", "user123", "abcd").Return(nil, service.ErrUsernameTaken)

	w := doJSON(r, http.MethodPost, "/api/register", `{"username":"user123","password":"abcd"}`, "")

	assert.Equal(t, http.StatusConflict, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, "Conflict", envelope.Error)
	require.Len(t, envelope.FieldErrors, 1)
	assert.Equal(t, "username", envelope.FieldErrors[0].Field)
	assert.Equal(t, "DUPLICATE", envelope.FieldErrors[0].Code)
}

func TestLoginEndpoint_Success(t *testing.T) {
	svc := new(MockAuthService)
	store := session.NewMemoryStore(testSessionTTL)
	r := setupAuthRouter(svc, store)

	svc.On("Login", "user123", "abcd").Return(&models.User{ID: 1, Username: "user123"}, nil)

	w := doJSON(r, http.MethodPost, "/api/login", `{"username":"user123","password":"abcd"}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"username":"user123"}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.SessionCookie+"=")
}

func TestLoginEndpoint_UnknownUser(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc, session.NewMemoryStore(testSessionTTL))

	svc.On("Login", "ghost123", "abcd").Return(nil, service.ErrUserNotFound)

	w := doJSON(r, http.MethodPost, "/api/login", `{"username":"ghost123","password":"abcd"}`, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	envelope := decodeEnvelope(t, w)
	require.Len(t, envelope.FieldErrors, 1)
	assert.Equal(t, "username", envelope.FieldErrors[0].Field)
	assert.Equal(t, "NOT_FOUND", envelope.FieldErrors[0].Code)
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc, session.NewMemoryStore(testSessionTTL))

	svc.On("Login", "user123", "nope").Return(nil, service.ErrInvalidPassword)

	w := doJSON(r, http.MethodPost, "/api/login", `{"username":"user123","password":"nope"}`, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	envelope := decodeEnvelope(t, w)
	require.Len(t, envelope.FieldErrors, 1)
	assert.Equal(t, "password", envelope.FieldErrors[0].Field)
	assert.Equal(t, "INVALID_PASSWORD", envelope.FieldErrors[0].Code)
}

func TestLogoutEndpoint_DestroysSession(t *testing.T) {
	svc := new(MockAuthService)
	store := session.NewMemoryStore(testSessionTTL)
	r := setupAuthRouter(svc, store)

	require.NoError(t, store.Save(t.Context(), "tok-1", "user123"))

	w := doJSON(r, http.MethodPost, "/api/logout", "", "tok-1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	_, err := store.Get(t.Context(), "tok-1")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestLogoutEndpoint_AnonymousStillOK(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc, session.NewMemoryStore(testSessionTTL))

	w := doJSON(r, http.MethodPost, "/api/logout", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestMeEndpoint_Anonymous(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc, session.NewMemoryStore(testSessionTTL))

	w := doJSON(r, http.MethodGet, "/api/me", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestMeEndpoint_LoggedIn(t *testing.T) {
	svc := new(MockAuthService)
	store := session.NewMemoryStore(testSessionTTL)
	r := setupAuthRouter(svc, store)

	require.NoError(t, store.Save(t.Context(), "tok-1", "user123"))

	w := doJSON(r, http.MethodGet, "/api/me", "", "tok-1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"user123"}`, w.Body.String())
}

func TestMeEndpoint_ExpiredSessionIsAnonymous(t *testing.T) {
	svc := new(MockAuthService)
	store := session.NewMemoryStore(time.Nanosecond)
	r := setupAuthRouter(svc, store)

	require.NoError(t, store.Save(t.Context(), "tok-1", "user123"))
	time.Sleep(time.Millisecond)

	w := doJSON(r, http.MethodGet, "/api/me", "", "tok-1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}
