package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fitsync/training-service/internal/config"
	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var testJWT = config.JWTConfig{Secret: testSecret, Issuer: "fitsync-user-service", Audience: "fitsync-api"}

type testServer struct {
	exercises *fakeExerciseService
	workouts  *fakeWorkoutService
	diets     *fakeDietService
	programs  *fakeProgramService
	router    *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := &testServer{
		exercises: &fakeExerciseService{},
		workouts:  &fakeWorkoutService{},
		diets:     &fakeDietService{},
		programs:  &fakeProgramService{},
	}
	cfg := config.Config{JWT: testJWT, Server: config.ServerConfig{CORSOrigins: []string{"*"}}}
	s.router = NewRouter(cfg, Services{
		Exercises: s.exercises,
		Workouts:  s.workouts,
		Diets:     s.diets,
		Programs:  s.programs,
	}, logger.Nop())
	return s
}

func signToken(t *testing.T, userID string, role domain.Role, mutate func(*jwtClaims)) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testJWT.Issuer,
			Audience:  jwt.ClaimStrings{testJWT.Audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	if mutate != nil {
		mutate(claims)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success    bool              `json:"success"`
	Data       json.RawMessage   `json:"data"`
	Message    string            `json:"message"`
	Pagination domain.Pagination `json:"pagination"`
	Users      []domain.User     `json:"users"`
	Error      struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) envelope {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)
	require.False(t, env.Success)
	require.Equal(t, code, env.Error.Code)
	return env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, "training-service", body["service"])
	_, err := time.Parse(timestampLayout, body["timestamp"])
	require.NoError(t, err)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	env := requireError(t, s.do(t, http.MethodGet, "/api/nothing-here", "", ""), http.StatusNotFound, "NOT_FOUND")
	require.Equal(t, "Endpoint not found", env.Error.Message)
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)

	env := requireError(t, s.do(t, http.MethodGet, "/api/exercises", "", ""), http.StatusUnauthorized, "UNAUTHORIZED")
	require.Equal(t, "No token provided", env.Error.Message)

	requireError(t, s.do(t, http.MethodGet, "/api/exercises", "not-a-jwt", ""), http.StatusUnauthorized, "INVALID_TOKEN")

	cases := map[string]func(*jwtClaims){
		"expired":        func(c *jwtClaims) { c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute)) },
		"wrong issuer":   func(c *jwtClaims) { c.Issuer = "someone-else" },
		"wrong audience": func(c *jwtClaims) { c.Audience = jwt.ClaimStrings{"other-api"} },
		"missing role":   func(c *jwtClaims) { c.Role = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			token := signToken(t, "trainer-1", domain.RoleTrainer, mutate)
			env := requireError(t, s.do(t, http.MethodGet, "/api/exercises", token, ""), http.StatusUnauthorized, "INVALID_TOKEN")
			require.Equal(t, "Invalid or expired token", env.Error.Message)
		})
	}
}

func TestRoleGuard(t *testing.T) {
	s := newTestServer(t)
	client := signToken(t, "client-1", domain.RoleClient, nil)

	env := requireError(t, s.do(t, http.MethodPost, "/api/exercises", client, `{"name":"X","muscle_group":["core"]}`),
		http.StatusForbidden, "FORBIDDEN")
	require.Equal(t, "Insufficient permissions", env.Error.Message)
	require.Nil(t, s.exercises.created)

	// Reads are open to every role.
	w := s.do(t, http.MethodGet, "/api/exercises/ex-1", client, "")
	require.Equal(t, http.StatusOK, w.Code)

	admin := signToken(t, "admin-1", domain.RoleAdmin, nil)
	w = s.do(t, http.MethodDelete, "/api/workouts/wp-1", admin, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCorrelationID(t *testing.T) {
	s := newTestServer(t)
	trainer := signToken(t, "trainer-1", domain.RoleTrainer, nil)
	body := `{"client_id":"client-1","start_date":"2025-01-06"}`

	w := s.do(t, http.MethodPost, "/api/programs", trainer, body, "X-Correlation-ID", "corr-42")
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "corr-42", w.Header().Get("X-Correlation-ID"))
	require.Equal(t, "corr-42", s.programs.correlationID)

	w = s.do(t, http.MethodPost, "/api/programs", trainer, body)
	generated := w.Header().Get("X-Correlation-ID")
	require.NotEmpty(t, generated)
	require.Equal(t, generated, s.programs.correlationID)
}

func TestOpaqueFailuresDoNotLeakDetail(t *testing.T) {
	s := newTestServer(t)
	trainer := signToken(t, "trainer-1", domain.RoleTrainer, nil)
	s.exercises.err = errors.New("pq: relation \"exercises\" does not exist")

	cases := []struct {
		method, path, body, code, message string
	}{
		{http.MethodPost, "/api/exercises", `{"name":"X","muscle_group":["core"]}`, "CREATE_FAILED", "Failed to create exercise"},
		{http.MethodGet, "/api/exercises", "", "FETCH_FAILED", "Failed to fetch exercises"},
		{http.MethodGet, "/api/exercises/ex-1", "", "FETCH_FAILED", "Failed to fetch exercise"},
		{http.MethodPut, "/api/exercises/ex-1", `{"name":"Y"}`, "UPDATE_FAILED", "Failed to update exercise"},
		{http.MethodDelete, "/api/exercises/ex-1", "", "DELETE_FAILED", "Failed to delete exercise"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := s.do(t, tc.method, tc.path, trainer, tc.body)
			env := requireError(t, w, http.StatusInternalServerError, tc.code)
			require.Equal(t, tc.message, env.Error.Message)
			require.NotContains(t, w.Body.String(), "relation")
		})
	}
}
