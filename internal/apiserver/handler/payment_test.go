package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/common/dto"
	"github.com/bllokusync/bllokusync/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRoster(t *testing.T, env *testEnv, token string) []uint {
	t.Helper()
	seedProperty(t, env, token)

	rates := []*float64{floatPtr(50), nil, floatPtr(75)}
	ids := make([]uint, 0, len(rates))
	for i, rate := range rates {
		tenant := &database.Tenant{
			PropertyID:  1,
			FullName:    fmt.Sprintf("Tenant %d", i+1),
			Floor:       1,
			MonthlyRate: rate,
			IsActive:    true,
		}
		require.NoError(t, env.db.CreateTenant(context.Background(), tenant))
		ids = append(ids, tenant.ID)
	}
	return ids
}

func TestEnsurePayments(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	ids := seedRoster(t, env, token)

	w := env.request(t, http.MethodPost, "/api/payments/ensure", token, dto.EnsurePaymentsRequest{
		TenantIDs:  ids,
		PropertyID: 1,
		Year:       2025,
		Months:     []int{9},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result payment.EnsureResult
	decode(t, w, &result)
	assert.Equal(t, 2, result.NewRecords)
	require.Len(t, result.Payments, 2)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ids[1], result.Errors[0].TenantID)
	assert.Equal(t, "no monthly rate", result.Errors[0].Error)

	// A repeated call creates nothing new.
	w = env.request(t, http.MethodPost, "/api/payments/ensure", token, dto.EnsurePaymentsRequest{
		TenantIDs:  ids,
		PropertyID: 1,
		Year:       2025,
		Months:     []int{9},
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &result)
	assert.Equal(t, 0, result.NewRecords)
	assert.Len(t, result.Payments, 2)
}

func TestBulkUpdateAndList(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	ids := seedRoster(t, env, token)

	w := env.request(t, http.MethodPost, "/api/payments/ensure", token, dto.EnsurePaymentsRequest{
		TenantIDs:  ids,
		PropertyID: 1,
		Year:       2025,
		Months:     []int{0, 1},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var ensured payment.EnsureResult
	decode(t, w, &ensured)
	require.Len(t, ensured.Payments, 4)

	recordIDs := make([]uint, 0, len(ensured.Payments))
	for _, p := range ensured.Payments {
		recordIDs = append(recordIDs, p.ID)
	}

	w = env.request(t, http.MethodPost, "/api/payments/bulk-status", token, dto.BulkUpdatePaymentsRequest{
		IDs:    recordIDs,
		Status: "paid",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var bulk payment.BulkResult
	decode(t, w, &bulk)
	assert.Len(t, bulk.Updated, 4)
	assert.Empty(t, bulk.Missing)

	w = env.request(t, http.MethodGet, "/api/payments?property_id=1&status=paid", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var records []*database.PaymentRecord
	decode(t, w, &records)
	assert.Len(t, records, 4)
	for _, r := range records {
		assert.NotNil(t, r.PaymentDate)
	}
}

func TestListPayments_MonthFilter(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	ids := seedRoster(t, env, token)

	w := env.request(t, http.MethodPost, "/api/payments/ensure", token, dto.EnsurePaymentsRequest{
		TenantIDs:  ids,
		PropertyID: 1,
		Year:       2025,
		Months:     []int{0, 9},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/payments?property_id=1&year=2025&month=9", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var records []*database.PaymentRecord
	decode(t, w, &records)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "2025-10-01", r.PaymentMonth)
	}
}

func TestGetStatistics(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	ids := seedRoster(t, env, token)

	w := env.request(t, http.MethodPost, "/api/payments/ensure", token, dto.EnsurePaymentsRequest{
		TenantIDs:  ids,
		PropertyID: 1,
		Year:       2025,
		Months:     []int{9},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/payments/statistics?property_id=1&year=2025", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats payment.Statistics
	decode(t, w, &stats)
	assert.Equal(t, 2, stats.Months[9].Total.Count)
	assert.Equal(t, 125.0, stats.Months[9].Total.Amount)
	assert.Equal(t, 2, stats.Months[9].Pending.Count)

	// Mark one paid; invalidation must make the next read fresh.
	var ensured payment.EnsureResult
	w = env.request(t, http.MethodPost, "/api/payments/ensure", token, dto.EnsurePaymentsRequest{
		TenantIDs: ids, PropertyID: 1, Year: 2025, Months: []int{9},
	})
	decode(t, w, &ensured)
	w = env.request(t, http.MethodPost, "/api/payments/bulk-status", token, dto.BulkUpdatePaymentsRequest{
		IDs:    []uint{ensured.Payments[0].ID},
		Status: "paid",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/payments/statistics?property_id=1&year=2025", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &stats)
	assert.Equal(t, 1, stats.Months[9].Paid.Count)
	assert.Equal(t, 1, stats.Months[9].Pending.Count)
}

func TestGetStatistics_MonthFilterGetsOwnCacheEntry(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	ids := seedRoster(t, env, token)

	w := env.request(t, http.MethodPost, "/api/payments/ensure", token, dto.EnsurePaymentsRequest{
		TenantIDs:  ids,
		PropertyID: 1,
		Year:       2025,
		Months:     []int{0, 9},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Warm the cache with the month-filtered projection first.
	w = env.request(t, http.MethodGet, "/api/payments/statistics?property_id=1&year=2025&month=9", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats payment.Statistics
	decode(t, w, &stats)
	assert.Equal(t, 2, stats.Total.Count)

	// The unfiltered request must not be served the cached month slice.
	w = env.request(t, http.MethodGet, "/api/payments/statistics?property_id=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &stats)
	assert.Equal(t, 4, stats.Total.Count)
	assert.Equal(t, 2, stats.Months[0].Total.Count)
	assert.Equal(t, 2, stats.Months[9].Total.Count)

	// And the other way round: the month slice stays a month slice.
	w = env.request(t, http.MethodGet, "/api/payments/statistics?property_id=1&year=2025&month=0", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &stats)
	assert.Equal(t, 2, stats.Total.Count)
	assert.Equal(t, 0, stats.Months[9].Total.Count)
}

func TestUpdatePaymentStatusAndDate(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	ids := seedRoster(t, env, token)

	w := env.request(t, http.MethodPost, "/api/payments/ensure", token, dto.EnsurePaymentsRequest{
		TenantIDs: ids, PropertyID: 1, Year: 2025, Months: []int{3},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var ensured payment.EnsureResult
	decode(t, w, &ensured)
	id := ensured.Payments[0].ID

	w = env.request(t, http.MethodPatch, fmt.Sprintf("/api/payments/%d/status", id), token, dto.UpdatePaymentStatusRequest{Status: "paid"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPatch, fmt.Sprintf("/api/payments/%d/date", id), token, dto.UpdatePaymentDateRequest{Date: "2025-04-10"})
	require.Equal(t, http.StatusOK, w.Code)

	record, err := env.db.GetPayment(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "paid", record.Status)
	require.NotNil(t, record.PaymentDate)
	assert.Equal(t, "2025-04-10", *record.PaymentDate)
}

func TestDeletePayment(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	ids := seedRoster(t, env, token)

	w := env.request(t, http.MethodPost, "/api/payments/ensure", token, dto.EnsurePaymentsRequest{
		TenantIDs: ids, PropertyID: 1, Year: 2025, Months: []int{5},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var ensured payment.EnsureResult
	decode(t, w, &ensured)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/payments/%d", ensured.Payments[0].ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodDelete, "/api/payments/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMyPayments(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	ids := seedRoster(t, env, token)

	resident := env.seedUser(t, "resident", "super-secret", database.RoleTenant)
	tenant, err := env.db.GetTenant(context.Background(), ids[0])
	require.NoError(t, err)
	tenant.UserID = &resident.ID
	require.NoError(t, env.db.UpdateTenant(context.Background(), tenant))

	w := env.request(t, http.MethodPost, "/api/payments/ensure", token, dto.EnsurePaymentsRequest{
		TenantIDs: ids, PropertyID: 1, Year: 2025, Months: []int{0, 1},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/payments/mine", env.token(t, resident), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var records []*database.PaymentRecord
	decode(t, w, &records)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, tenant.ID, r.TenantID)
	}
}

func TestListMyPayments_NoTenantRecord(t *testing.T) {
	env := newTestEnv(t)
	resident := env.seedUser(t, "resident", "super-secret", database.RoleTenant)

	w := env.request(t, http.MethodGet, "/api/payments/mine", env.token(t, resident), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
