package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/common/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "manager", "super-secret", database.RoleAdmin)

	w := env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: "manager",
		Password: "super-secret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	decode(t, w, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "manager", resp.User.Username)
	assert.Equal(t, "admin", resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "manager", "super-secret", database.RoleAdmin)

	w := env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: "manager",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_DisabledUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "manager", "super-secret", database.RoleAdmin)
	user.IsActive = false
	require.NoError(t, env.db.UpdateUser(context.Background(), user))

	w := env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: "manager",
		Password: "super-secret",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "resident", "super-secret", database.RoleTenant)

	w := env.request(t, http.MethodGet, "/api/auth/me", env.token(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var info dto.UserInfo
	decode(t, w, &info)
	assert.Equal(t, user.ID, info.ID)
	assert.Equal(t, "tenant", info.Role)
}

func TestMe_NoToken(t *testing.T) {
	env := newTestEnv(t)
	w := env.request(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "manager", "old-password", database.RoleAdmin)
	token := env.token(t, user)

	w := env.request(t, http.MethodPost, "/api/auth/change-password", token, dto.ChangePasswordRequest{
		OldPassword: "old-password",
		NewPassword: "new-password-1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Old password no longer works, new one does.
	w = env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "manager", Password: "old-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "manager", Password: "new-password-1"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "manager", "old-password", database.RoleAdmin)

	w := env.request(t, http.MethodPost, "/api/auth/change-password", env.token(t, user), dto.ChangePasswordRequest{
		OldPassword: "nope",
		NewPassword: "new-password-1",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminGuard_TenantForbidden(t *testing.T) {
	env := newTestEnv(t)
	tenant := env.seedUser(t, "resident", "super-secret", database.RoleTenant)

	w := env.request(t, http.MethodGet, "/api/properties", env.token(t, tenant), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.NotEmpty(t, body["error"])
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/nonsense", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.NotEmpty(t, body["error"])
}
