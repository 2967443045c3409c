package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nolanpk/taskwell-api/internal/api"
	apimiddleware "github.com/nolanpk/taskwell-api/internal/api/middleware"
	"github.com/nolanpk/taskwell-api/internal/api/shared"
	"github.com/nolanpk/taskwell-api/internal/config"
	"github.com/nolanpk/taskwell-api/internal/domain"
	"github.com/nolanpk/taskwell-api/internal/service"
	"github.com/nolanpk/taskwell-api/internal/service/auth"
	"github.com/nolanpk/taskwell-api/internal/store"
)

// In-memory stores backing the full API surface so handler tests exercise
// the real services, token issuance included, without a database.

type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *memUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return store.ErrEmailExists
		}
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

type memTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (s *memTaskStore) Create(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *memTaskStore) GetForUser(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok || task.UserID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (s *memTaskStore) ListForUser(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*domain.Task{}
	for _, task := range s.tasks {
		if task.UserID == ownerID {
			copied := *task
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memTaskStore) Update(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return store.ErrTaskNotFound
	}
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *memTaskStore) DeleteForUser(ctx context.Context, id, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok || task.UserID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*domain.AuthToken
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[uuid.UUID]*domain.AuthToken)}
}

func (s *memTokenStore) Create(ctx context.Context, token *domain.AuthToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *token
	s.tokens[token.ID] = &copied
	return nil
}

func (s *memTokenStore) Get(ctx context.Context, id uuid.UUID) (*domain.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[id]
	if !ok {
		return nil, store.ErrTokenNotFound
	}
	copied := *token
	return &copied, nil
}

func (s *memTokenStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[id]; !ok {
		return store.ErrTokenNotFound
	}
	delete(s.tokens, id)
	return nil
}

func (s *memTokenStore) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

// newTestRouter wires the full route tree over in-memory stores, mirroring
// the production router.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := config.AuthConfig{
		JWTSecret:            strings.Repeat("k", 32),
		TokenLifetimeMinutes: 60,
		BcryptCost:           bcrypt.MinCost,
	}

	tokenService, err := auth.NewTokenService(cfg, newMemTokenStore())
	require.NoError(t, err)

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	userService := service.NewUserService(newMemUserStore(), hasher, hasher, nil)
	taskService := service.NewTaskService(newMemTaskStore(), nil)

	authHandler := api.NewAuthHandler(userService, tokenService)
	userHandler := api.NewUserHandler(userService)
	taskHandler := api.NewTaskHandler(taskService)
	authMiddleware := apimiddleware.NewAuthMiddleware(tokenService)

	r := chi.NewRouter()
	r.Use(apimiddleware.Trace)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/users/me", userHandler.Me)

			r.Get("/tasks", taskHandler.List)
			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Patch("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)
		})
	})
	return r
}

// doJSON performs a request against the router. A nil body sends no payload;
// a non-empty token is sent as a bearer credential.
func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func decodeErrors(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	decodeBody(t, rec, &resp)
	return resp
}

// registerAndLogin creates an account and returns its access token.
func registerAndLogin(t *testing.T, h http.Handler, email string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", api.RegisterRequest{
		FullName: "Test Person",
		Email:    email,
		Password: "password1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{
		Email:    email,
		Password: "password1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login api.LoginResponse
	decodeBody(t, rec, &login)
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}
