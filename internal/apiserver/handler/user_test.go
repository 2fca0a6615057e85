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

func TestUserManagement(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)

	w := env.request(t, http.MethodPost, "/api/users", token, dto.CreateUserRequest{
		Username: "resident",
		Password: "super-secret",
		Role:     "tenant",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// The new account can log in straight away.
	w = env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: "resident",
		Password: "super-secret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []*database.User
	decode(t, w, &users)
	assert.Len(t, users, 2)

	disabled := false
	w = env.request(t, http.MethodPut, "/api/users", token, dto.UpdateUserRequest{
		Username: "resident",
		IsActive: &disabled,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: "resident",
		Password: "super-secret",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodDelete, "/api/users/resident", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/users", token, nil)
	decode(t, w, &users)
	assert.Len(t, users, 1)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)

	w := env.request(t, http.MethodPost, "/api/users", token, dto.CreateUserRequest{
		Username: "manager",
		Password: "another-secret",
		Role:     "admin",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateUser_LinksTenantRecord(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	seedProperty(t, env, token)

	tenant := &database.Tenant{
		PropertyID: 1,
		FullName:   "Arben Hoxha",
		Floor:      4,
		IsActive:   true,
	}
	require.NoError(t, env.db.CreateTenant(context.Background(), tenant))

	w := env.request(t, http.MethodPost, "/api/users", token, dto.CreateUserRequest{
		Username: "arben",
		Password: "super-secret",
		Role:     "tenant",
		TenantID: &tenant.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	linked, err := env.db.GetTenant(context.Background(), tenant.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.UserID)

	user, err := env.db.GetUserByUsername(context.Background(), "arben")
	require.NoError(t, err)
	assert.Equal(t, user.ID, *linked.UserID)
}

func TestDeleteUser_Unknown(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)

	w := env.request(t, http.MethodDelete, "/api/users/ghost", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
