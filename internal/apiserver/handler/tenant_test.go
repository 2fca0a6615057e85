package handler

import (
	"net/http"
	"testing"

	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/common/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProperty(t *testing.T, env *testEnv, token string) {
	t.Helper()
	w := env.request(t, http.MethodPost, "/api/properties", token, dto.CreatePropertyRequest{
		Name:       "Blloku Residences",
		FloorsFrom: 1,
		FloorsTo:   8,
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestTenantCRUDOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	seedProperty(t, env, token)

	w := env.request(t, http.MethodPost, "/api/tenants", token, dto.CreateTenantRequest{
		PropertyID:     1,
		FullName:       "Arben Hoxha",
		ApartmentLabel: "A12",
		Floor:          3,
		MonthlyRate:    floatPtr(55),
		Phone:          "+355 69 000 0000",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, "/api/users/tenants?property_id=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tenants []*database.Tenant
	decode(t, w, &tenants)
	require.Len(t, tenants, 1)
	require.NotNil(t, tenants[0].MonthlyRate)
	assert.Equal(t, 55.0, *tenants[0].MonthlyRate)

	// Clearing the monthly rate makes the tenant ineligible for payment
	// record creation.
	w = env.request(t, http.MethodPut, "/api/tenants/1", token, dto.UpdateTenantRequest{
		FullName: "Arben Hoxha",
		Floor:    3,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/users/tenants", token, nil)
	decode(t, w, &tenants)
	require.Len(t, tenants, 1)
	assert.Nil(t, tenants[0].MonthlyRate)

	w = env.request(t, http.MethodDelete, "/api/tenants/1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/users/tenants", token, nil)
	decode(t, w, &tenants)
	assert.Empty(t, tenants)
}

func TestCreateTenant_FloorOutsideRange(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	seedProperty(t, env, token)

	w := env.request(t, http.MethodPost, "/api/tenants", token, dto.CreateTenantRequest{
		PropertyID: 1,
		FullName:   "Basement Dweller",
		Floor:      9,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTenant_UnknownProperty(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)

	w := env.request(t, http.MethodPost, "/api/tenants", token, dto.CreateTenantRequest{
		PropertyID: 99,
		FullName:   "Nobody Home",
		Floor:      1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
