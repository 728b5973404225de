package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/vendor-api/internal/modules/user"
)

func int64Ptr(v int64) *int64 { return &v }

func TestRegisterUserHashesPassword(t *testing.T) {
	repo := user.NewMemoryRepository()
	svc := user.NewService(repo)

	u, err := svc.RegisterUser(context.Background(), user.RegisterRequest{
		Email:    " ada@example.com ",
		Password: "correct-horse",
		Name:     "Ada",
		OrgID:    int64Ptr(3),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "member", u.Role)
	require.NotNil(t, u.OrgID)
	assert.Equal(t, int64(3), *u.OrgID)
	assert.NotEqual(t, "correct-horse", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct-horse")))

	stored, err := repo.GetUserByEmail(context.Background(), "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, stored.ID)
}

func TestRegisterUserRejectsDuplicateEmail(t *testing.T) {
	svc := user.NewService(user.NewMemoryRepository())
	req := user.RegisterRequest{Email: "dup@example.com", Password: "password1"}

	_, err := svc.RegisterUser(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.RegisterUser(context.Background(), req)
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestRegisterUserValidation(t *testing.T) {
	svc := user.NewService(user.NewMemoryRepository())

	cases := map[string]user.RegisterRequest{
		"missing email":  {Password: "password1"},
		"bad email":      {Email: "nope", Password: "password1"},
		"short password": {Email: "a@example.com", Password: "short"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.RegisterUser(context.Background(), req)
			assert.ErrorIs(t, err, user.ErrValidation)
		})
	}
}

func TestGetUserNotFound(t *testing.T) {
	svc := user.NewService(user.NewMemoryRepository())
	_, err := svc.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func newRouter() *chi.Mux {
	router := chi.NewRouter()
	user.NewHandler(user.NewService(user.NewMemoryRepository()), zap.NewNop()).RegisterRoutes(router)
	return router
}

func TestHandlerRegisterAndGet(t *testing.T) {
	router := newRouter()

	body, _ := json.Marshal(map[string]any{"email": "bob@example.com", "password": "password1", "name": "Bob"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/users/1", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success bool      `json:"success"`
		Data    user.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Bob", resp.Data.Name)
	assert.Nil(t, resp.Data.OrgID)
}

func TestHandlerRegisterErrors(t *testing.T) {
	router := newRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewBufferString(`{"email":"x@example.com"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	payload := `{"email":"x@example.com","password":"password1"}`
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewBufferString(payload)))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewBufferString(payload)))
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestHandlerGetUnknownUser(t *testing.T) {
	router := newRouter()

	for _, path := range []string{"/api/users/99", "/api/users/abc"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}
