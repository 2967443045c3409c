package api_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nolanpk/taskwell-api/internal/api"
	"github.com/nolanpk/taskwell-api/internal/domain"
)

func TestRegister(t *testing.T) {
	router := newTestRouter(t)

	t.Run("success_returns_created_user", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", api.RegisterRequest{
			FullName: "Grace Hopper",
			Email:    "grace@example.com",
			Password: "password1",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var user map[string]interface{}
		decodeBody(t, rec, &user)
		assert.Equal(t, "Grace Hopper", user["fullName"])
		assert.Equal(t, "grace@example.com", user["email"])
		assert.NotEmpty(t, user["id"])
		// The password hash must never appear in responses.
		assert.NotContains(t, rec.Body.String(), "password")
		assert.NotContains(t, rec.Body.String(), "hash")
	})

	t.Run("duplicate_email_is_422", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", api.RegisterRequest{
			FullName: "Another Grace",
			Email:    "grace@example.com",
			Password: "password2",
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		resp := decodeErrors(t, rec)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "The email has already been taken", resp.Errors[0].Message)
		assert.Equal(t, "email", resp.Errors[0].Field)
		assert.Equal(t, "database.unique", resp.Errors[0].Rule)
	})

	t.Run("validation_boundaries", func(t *testing.T) {
		tests := []struct {
			name      string
			req       api.RegisterRequest
			wantCode  int
			wantField string
		}{
			{
				name: "seven_char_password",
				req: api.RegisterRequest{
					FullName: "Grace Hopper",
					Email:    "short@example.com",
					Password: strings.Repeat("p", 7),
				},
				wantCode:  http.StatusUnprocessableEntity,
				wantField: "password",
			},
			{
				name: "eight_char_password_ok",
				req: api.RegisterRequest{
					FullName: "Grace Hopper",
					Email:    "eight@example.com",
					Password: strings.Repeat("p", 8),
				},
				wantCode: http.StatusCreated,
			},
			{
				name: "sixty_five_char_password",
				req: api.RegisterRequest{
					FullName: "Grace Hopper",
					Email:    "long@example.com",
					Password: strings.Repeat("p", 65),
				},
				wantCode:  http.StatusUnprocessableEntity,
				wantField: "password",
			},
			{
				name: "short_full_name",
				req: api.RegisterRequest{
					FullName: "GH",
					Email:    "gh@example.com",
					Password: "password1",
				},
				wantCode:  http.StatusUnprocessableEntity,
				wantField: "fullName",
			},
			{
				name: "malformed_email",
				req: api.RegisterRequest{
					FullName: "Grace Hopper",
					Email:    "not-an-email",
					Password: "password1",
				},
				wantCode:  http.StatusUnprocessableEntity,
				wantField: "email",
			},
			{
				name:     "empty_body_fields",
				req:      api.RegisterRequest{},
				wantCode: http.StatusUnprocessableEntity,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", tt.req)
				assert.Equal(t, tt.wantCode, rec.Code)

				if tt.wantField != "" {
					resp := decodeErrors(t, rec)
					require.NotEmpty(t, resp.Errors)
					assert.Equal(t, tt.wantField, resp.Errors[0].Field)
				}
			})
		}
	})

	t.Run("malformed_json_is_400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", "not an object")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", api.RegisterRequest{
		FullName: "Grace Hopper",
		Email:    "grace@example.com",
		Password: "password1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("success_returns_bearer_token", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{
			Email:    "grace@example.com",
			Password: "password1",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var login api.LoginResponse
		decodeBody(t, rec, &login)
		assert.Equal(t, domain.TokenTypeBearer, login.Type)
		assert.NotEmpty(t, login.AccessToken)

		// The token works against a protected route.
		me := doJSON(t, router, http.MethodGet, "/api/v1/users/me", login.AccessToken, nil)
		assert.Equal(t, http.StatusOK, me.Code)
	})

	t.Run("wrong_password_and_unknown_email_look_identical", func(t *testing.T) {
		wrongPass := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{
			Email:    "grace@example.com",
			Password: "wrongpass1",
		})
		unknown := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password1",
		})

		assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.JSONEq(t, wrongPass.Body.String(), unknown.Body.String())

		resp := decodeErrors(t, wrongPass)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "Invalid user credentials", resp.Errors[0].Message)
	})

	t.Run("out_of_bounds_password_is_422_not_401", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{
			Email:    "grace@example.com",
			Password: "short",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("each_login_issues_a_distinct_token", func(t *testing.T) {
		first := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{
			Email:    "grace@example.com",
			Password: "password1",
		})
		second := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{
			Email:    "grace@example.com",
			Password: "password1",
		})
		require.Equal(t, http.StatusOK, first.Code)
		require.Equal(t, http.StatusOK, second.Code)

		var a, b api.LoginResponse
		decodeBody(t, first, &a)
		decodeBody(t, second, &b)
		assert.NotEqual(t, a.AccessToken, b.AccessToken)
	})
}

func TestLogout(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "grace@example.com")

	t.Run("revokes_only_the_presented_token", func(t *testing.T) {
		other := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{
			Email:    "grace@example.com",
			Password: "password1",
		})
		require.Equal(t, http.StatusOK, other.Code)
		var otherLogin api.LoginResponse
		decodeBody(t, other, &otherLogin)

		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var msg api.MessageResponse
		decodeBody(t, rec, &msg)
		assert.Equal(t, "Logged out", msg.Message)

		// The revoked token is dead; the other session keeps working.
		reuse := doJSON(t, router, http.MethodGet, "/api/v1/users/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, reuse.Code)

		alive := doJSON(t, router, http.MethodGet, "/api/v1/users/me", otherLogin.AccessToken, nil)
		assert.Equal(t, http.StatusOK, alive.Code)
	})

	t.Run("logout_with_revoked_token_is_401", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("logout_without_token_is_401", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
