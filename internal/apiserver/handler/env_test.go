package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/bllokusync/bllokusync/internal/apiserver/cache"
	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	jsvc "github.com/bllokusync/bllokusync/internal/auth/jwt"
	"github.com/bllokusync/bllokusync/internal/common/config"
	"github.com/bllokusync/bllokusync/internal/payment"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	db     database.Database
	jwt    *jsvc.Service
	router *gin.Engine
}

func mustNewJWTService() *jsvc.Service {
	s, _ := jsvc.NewService(jsvc.Config{SecretKey: "this-is-a-very-long-secret-key-for-testing", Duration: time.Hour})
	return s
}

// newTestEnv builds a full router over a fresh sqlite database
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLite(&config.DatabaseConfig{
		Type:   "sqlite",
		DBName: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := zap.NewNop()
	jwtSvc := mustNewJWTService()
	reconciler := payment.NewReconciler(db, logger)
	stats := cache.NewStatsCache(cache.StatsCacheConfig{}, logger)

	handlers := &Handlers{
		Auth:          NewAuth(db, jwtSvc, logger),
		User:          NewUser(db, logger),
		Property:      NewProperty(db, logger),
		Tenant:        NewTenant(db, logger),
		Payment:       NewPayment(db, reconciler, stats, nil, logger),
		Submission:    NewSubmission(db, logger),
		MonthlyReport: NewMonthlyReport(db, logger),
	}

	router := gin.New()
	RegisterRoutes(router, jwtSvc, handlers)

	return &testEnv{db: db, jwt: jwtSvc, router: router}
}

// seedUser creates an account with a bcrypt-hashed password and returns it
func (e *testEnv) seedUser(t *testing.T, username, password string, role database.UserRole) *database.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &database.User{Username: username, Password: string(hashed), Role: role, IsActive: true}
	require.NoError(t, e.db.CreateUser(context.Background(), user))
	return user
}

// token issues a bearer token for the given user
func (e *testEnv) token(t *testing.T, user *database.User) string {
	t.Helper()
	token, err := e.jwt.GenerateToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)
	return token
}

// request performs an HTTP request against the test router
func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorded JSON response body into out
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func floatPtr(v float64) *float64 { return &v }
