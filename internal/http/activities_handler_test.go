package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "activity-signup/internal/http"
	"activity-signup/internal/http/mocks"
	"activity-signup/internal/metrics"
	"activity-signup/internal/model"
	"activity-signup/internal/repository"
	"activity-signup/internal/service"
	"activity-signup/internal/web"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newRouter(t *testing.T, svc httpapi.ActivityService) http.Handler {
	t.Helper()
	reg, err := metrics.New()
	require.NoError(t, err)
	return httpapi.NewHandler(svc, reg, web.Static(), newLogger()).Router()
}

// newSeededRouter собирает роутер поверх настоящего сервиса и стартового набора кружков.
func newSeededRouter(t *testing.T) (http.Handler, *repository.MemoryRepo) {
	t.Helper()
	seed, err := repository.LoadSeed("")
	require.NoError(t, err)
	repo := repository.NewMemoryRepo(seed)
	return newRouter(t, service.NewActivityService(repo, repo)), repo
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestHandler_RootRedirectsToIndex(t *testing.T) {
	router, _ := newSeededRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/static/index.html", w.Header().Get("Location"))
}

func TestHandler_ServesIndex(t *testing.T) {
	router, _ := newSeededRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/index.html", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="activities-list"`)
}

func TestHandler_ListActivities(t *testing.T) {
	router, _ := newSeededRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/activities", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var dir model.Directory
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dir))
	assert.Equal(t, 9, dir.Len())
	assert.Equal(t, "Basketball Team", dir.Names()[0])
	_, ok := dir.Get("Soccer Club")
	assert.True(t, ok)
}

func TestHandler_Signup(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantKey    string
		wantValue  string
	}{
		{
			name:       "Success",
			target:     "/activities/Basketball%20Team/signup?email=new.student%40mergington.edu",
			wantStatus: http.StatusOK,
			wantKey:    "message",
			wantValue:  "Signed up new.student@mergington.edu for Basketball Team",
		},
		{
			name:       "Duplicate rejected",
			target:     "/activities/Basketball%20Team/signup?email=liam%40mergington.edu",
			wantStatus: http.StatusBadRequest,
			wantKey:    "detail",
			wantValue:  "Student already signed up for this activity",
		},
		{
			name:       "Missing activity",
			target:     "/activities/Unknown%20Activity/signup?email=test%40mergington.edu",
			wantStatus: http.StatusNotFound,
			wantKey:    "detail",
			wantValue:  "Activity not found",
		},
		{
			name:       "Missing email",
			target:     "/activities/Basketball%20Team/signup",
			wantStatus: http.StatusBadRequest,
			wantKey:    "detail",
			wantValue:  "email is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newSeededRouter(t)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.target, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantValue, decodeBody(t, w)[tt.wantKey])
		})
	}
}

func TestHandler_SignupPersists(t *testing.T) {
	router, repo := newSeededRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost,
		"/activities/Basketball%20Team/signup?email=new.student%40mergington.edu", nil))
	require.Equal(t, http.StatusOK, w.Code)

	a, err := repo.GetActivity(context.Background(), "Basketball Team")
	require.NoError(t, err)
	assert.Contains(t, a.Participants, "new.student@mergington.edu")
}

func TestHandler_Unregister(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantKey    string
		wantValue  string
	}{
		{
			name:       "Success",
			target:     "/activities/Basketball%20Team/participants/liam%40mergington.edu",
			wantStatus: http.StatusOK,
			wantKey:    "message",
			wantValue:  "Removed liam@mergington.edu from Basketball Team",
		},
		{
			name:       "Unencoded email",
			target:     "/activities/Basketball%20Team/participants/ava@mergington.edu",
			wantStatus: http.StatusOK,
			wantKey:    "message",
			wantValue:  "Removed ava@mergington.edu from Basketball Team",
		},
		{
			name:       "Not registered",
			target:     "/activities/Basketball%20Team/participants/not.registered%40mergington.edu",
			wantStatus: http.StatusNotFound,
			wantKey:    "detail",
			wantValue:  "Participant not found for this activity",
		},
		{
			name:       "Missing activity",
			target:     "/activities/Unknown%20Activity/participants/test%40mergington.edu",
			wantStatus: http.StatusNotFound,
			wantKey:    "detail",
			wantValue:  "Activity not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newSeededRouter(t)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, tt.target, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantValue, decodeBody(t, w)[tt.wantKey])
		})
	}
}

func TestHandler_WithMockService(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		target         string
		mockBehavior   func(s *mocks.ActivityService)
		expectedStatus int
		expectedDetail string
	}{
		{
			name:   "Encoded slash in activity name",
			method: http.MethodPost,
			target: "/activities/AC%2FDC%20Fans/signup?email=a%40x.com",
			mockBehavior: func(s *mocks.ActivityService) {
				s.On("Signup", mock.Anything, "AC/DC Fans", "a@x.com").Return("Signed up a@x.com for AC/DC Fans", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Unexpected error becomes 500",
			method: http.MethodDelete,
			target: "/activities/Chess%20Club/participants/a%40x.com",
			mockBehavior: func(s *mocks.ActivityService) {
				s.On("Unregister", mock.Anything, "Chess Club", "a@x.com").Return("", errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: "internal error",
		},
		{
			name:   "List failure",
			method: http.MethodGet,
			target: "/activities",
			mockBehavior: func(s *mocks.ActivityService) {
				s.On("ListActivities", mock.Anything).
					Return(model.Directory{}, service.ErrInternal("failed to list activities", errors.New("db down")))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: "failed to list activities",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.ActivityService)
			tt.mockBehavior(svc)

			w := httptest.NewRecorder()
			newRouter(t, svc).ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedDetail != "" {
				assert.Equal(t, tt.expectedDetail, decodeBody(t, w)["detail"])
			}
			svc.AssertExpectations(t)
		})
	}
}
