package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/LouisFontaine/ai-cycling-trainer/internal/domain"
	"github.com/LouisFontaine/ai-cycling-trainer/internal/intervalsicu"
	"github.com/LouisFontaine/ai-cycling-trainer/internal/repository"
	"github.com/LouisFontaine/ai-cycling-trainer/internal/service"
)

// --- fakes ---

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	stored := *user
	r.users[user.ID] = &stored
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) SetProviderLink(_ context.Context, id primitive.ObjectID, athleteID, apiKey string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.IntervalsAthleteID = &athleteID
	user.IntervalsAPIKey = &apiKey
	return nil
}

func (r *fakeUserRepo) ClearProviderLink(_ context.Context, id primitive.ObjectID) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.IntervalsAthleteID = nil
	user.IntervalsAPIKey = nil
	return nil
}

type fakeIntervals struct {
	athlete    intervalsicu.Athlete
	athleteErr error
	events     []intervalsicu.Event
	eventsErr  error
}

func (f *fakeIntervals) GetAthlete(context.Context, string, string) (intervalsicu.Athlete, error) {
	if f.athleteErr != nil {
		return intervalsicu.Athlete{}, f.athleteErr
	}
	return f.athlete, nil
}

func (f *fakeIntervals) ListEvents(context.Context, string, string, time.Time, time.Time) ([]intervalsicu.Event, error) {
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	return f.events, nil
}

// --- test server ---

const testJWTSecret = "handler-test-secret"

func newTestRouter(t *testing.T, repo repository.UserRepository, provider intervalsicu.API) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := service.NewAuthService(repo, testJWTSecret, time.Hour)
	accountService := service.NewAccountService(repo, provider)
	workoutService := service.NewWorkoutService(repo, provider)

	router := gin.New()
	SetupRoutes(router, testJWTSecret, authService, accountService, workoutService)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerTestUser(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":     "test@example.com",
		"firstName": "john",
		"lastName":  "doe",
		"password":  "securePassword123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// --- tests ---

func TestRegisterAndGetMe(t *testing.T) {
	router := newTestRouter(t, newFakeUserRepo(), &fakeIntervals{})
	token := registerTestUser(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "test@example.com", body["email"])
	assert.Equal(t, "john", body["firstName"])
	assert.Equal(t, "doe", body["lastName"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "passwordHash")
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	router := newTestRouter(t, newFakeUserRepo(), &fakeIntervals{})
	registerTestUser(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":     "test@example.com",
		"firstName": "jane",
		"lastName":  "doe",
		"password":  "otherPassword456",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_ALREADY_EXISTS")
}

func TestLogin_SameResponseForUnknownEmailAndWrongPassword(t *testing.T) {
	router := newTestRouter(t, newFakeUserRepo(), &fakeIntervals{})
	registerTestUser(t, router)

	unknown := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "securePassword123",
	})
	wrongPassword := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "test@example.com",
		"password": "wrongPassword999",
	})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.JSONEq(t, unknown.Body.String(), wrongPassword.Body.String())
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(t, newFakeUserRepo(), &fakeIntervals{})

	for _, path := range []string{
		"/api/v1/auth/me",
		"/api/v1/users/me/intervals-icu/status",
		"/api/v1/workouts/next",
	} {
		rec := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestConnectAndStatusFlow(t *testing.T) {
	provider := &fakeIntervals{athlete: intervalsicu.Athlete{ID: "i12345", Name: "Lance Strong"}}
	router := newTestRouter(t, newFakeUserRepo(), provider)
	token := registerTestUser(t, router)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/users/me/intervals-icu", token, gin.H{
		"athleteId": "i12345",
		"apiKey":    "api-key",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"athleteName":"Lance Strong"}`, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users/me/intervals-icu/status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"connected":true,"athleteId":"i12345","athleteName":"Lance Strong"}`, rec.Body.String())
}

func TestConnect_RejectedCredentials(t *testing.T) {
	provider := &fakeIntervals{athleteErr: intervalsicu.ErrInvalidCredentials}
	router := newTestRouter(t, newFakeUserRepo(), provider)
	token := registerTestUser(t, router)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/users/me/intervals-icu", token, gin.H{
		"athleteId": "i12345",
		"apiKey":    "bad-key",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INTERVALS_ICU_CREDENTIALS")

	// nothing was persisted
	rec = doJSON(t, router, http.MethodGet, "/api/v1/users/me/intervals-icu/status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"connected":false}`, rec.Body.String())
}

func TestDisconnect_Idempotent(t *testing.T) {
	provider := &fakeIntervals{athlete: intervalsicu.Athlete{ID: "i12345", Name: "Lance Strong"}}
	router := newTestRouter(t, newFakeUserRepo(), provider)
	token := registerTestUser(t, router)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/users/me/intervals-icu", token, gin.H{
		"athleteId": "i12345",
		"apiKey":    "api-key",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	first := doJSON(t, router, http.MethodDelete, "/api/v1/users/me/intervals-icu", token, nil)
	second := doJSON(t, router, http.MethodDelete, "/api/v1/users/me/intervals-icu", token, nil)
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusNoContent, second.Code)
}

func TestNextWorkout_NotConnected(t *testing.T) {
	router := newTestRouter(t, newFakeUserRepo(), &fakeIntervals{})
	token := registerTestUser(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/workouts/next", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERVALS_ICU_NOT_CONNECTED")
}

func TestNextWorkout_EmptyCalendarReturnsNull(t *testing.T) {
	provider := &fakeIntervals{athlete: intervalsicu.Athlete{ID: "i12345", Name: "Lance Strong"}}
	router := newTestRouter(t, newFakeUserRepo(), provider)
	token := registerTestUser(t, router)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/users/me/intervals-icu", token, gin.H{
		"athleteId": "i12345",
		"apiKey":    "api-key",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/workouts/next", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())
}

func TestNextWorkout_DerivedResponse(t *testing.T) {
	duration := 600
	workDuration := 1200
	start := 40.0
	end := 70.0
	work := 91.0

	provider := &fakeIntervals{
		athlete: intervalsicu.Athlete{ID: "i12345", Name: "Lance Strong"},
		events: []intervalsicu.Event{{
			ID:             1,
			Name:           "Threshold Builder",
			StartDateLocal: "2026-09-01T09:00:00",
			Type:           "Ride",
			WorkoutDoc: &intervalsicu.WorkoutDoc{
				Duration: &workDuration,
				Steps: []intervalsicu.Step{
					{Duration: &duration, Ramp: true, Power: &intervalsicu.StepPower{Start: &start, End: &end}},
					{Duration: &workDuration, Power: &intervalsicu.StepPower{Value: &work}},
				},
			},
		}},
	}
	router := newTestRouter(t, newFakeUserRepo(), provider)
	token := registerTestUser(t, router)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/users/me/intervals-icu", token, gin.H{
		"athleteId": "i12345",
		"apiKey":    "api-key",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/workouts/next", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body NextWorkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "Threshold Builder", body.Name)
	assert.Equal(t, 20, body.DurationMinutes)
	require.Len(t, body.Intervals, 2)

	ramp := body.Intervals[0]
	assert.Equal(t, "WARMUP", ramp.Type)
	assert.True(t, ramp.IsRamp)
	require.NotNil(t, ramp.PowerStartPercent)
	assert.Equal(t, 40.0, *ramp.PowerStartPercent)

	interval := body.Intervals[1]
	assert.Equal(t, "WORK", interval.Type)
	require.NotNil(t, interval.PowerTargetPercent)
	assert.Equal(t, 91.0, *interval.PowerTargetPercent)
	assert.Equal(t, "#fb923c", interval.Color)
}

func TestResponsesCarryRequestID(t *testing.T) {
	router := newTestRouter(t, newFakeUserRepo(), &fakeIntervals{})

	rec := doJSON(t, router, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "client-supplied-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "client-supplied-id", rec.Header().Get("X-Request-Id"))
}
