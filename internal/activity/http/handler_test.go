package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/user-management-console/internal/activity"
	"github.com/nekogravitycat/user-management-console/internal/auth"
)

type fakeService struct {
	entries []*activity.Entry
	err     error
	last    activity.Filter
}

func (f *fakeService) Record(context.Context, activity.Entry) {}
func (f *fakeService) Enabled() bool                          { return f.err == nil }

func (f *fakeService) List(_ context.Context, filter activity.Filter) ([]*activity.Entry, int, error) {
	f.last = filter
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.entries, len(f.entries), nil
}

func setupRouter(svc activity.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	sessionMw := auth.SessionRequired(jwtManager, auth.CookieConfig{Name: "sid"})
	pass := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), sessionMw, pass)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestList(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := &fakeService{entries: []*activity.Entry{
		{ID: 7, SessionID: "s1", Action: activity.ActionDelete, Target: "3", Outcome: activity.OutcomeFailed, Message: "Failed to delete user.", CreatedAt: created},
	}}
	r := setupRouter(svc)

	t.Run("Defaults", func(t *testing.T) {
		w := get(r, "/v1/activity")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"items": [{
				"id": 7, "session_id": "s1", "action": "delete", "target": "3",
				"outcome": "failed", "message": "Failed to delete user.",
				"created_at": "2026-01-02T03:04:05Z"
			}],
			"page": 1, "page_size": 20, "total": 1, "has_more": false
		}`, w.Body.String())
		assert.Empty(t, svc.last.SessionID)
	})

	t.Run("Mine Filters By Session", func(t *testing.T) {
		w := get(r, "/v1/activity?mine=true&action=search&page=2&page_size=5")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, svc.last.SessionID)
		assert.Equal(t, activity.ActionSearch, svc.last.Action)
		assert.Equal(t, 2, svc.last.Page)
		assert.Equal(t, 5, svc.last.PageSize)
	})

	t.Run("Invalid Query", func(t *testing.T) {
		for _, q := range []string{"?action=rename", "?page=0", "?page_size=500"} {
			w := get(r, "/v1/activity"+q)
			assert.Equal(t, http.StatusBadRequest, w.Code, q)
		}
	})
}

func TestListErrors(t *testing.T) {
	t.Run("Journal Disabled", func(t *testing.T) {
		w := get(setupRouter(activity.NewNopService()), "/v1/activity")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"error":"activity journal unavailable"}`, w.Body.String())
	})

	t.Run("Unexpected Failure", func(t *testing.T) {
		w := get(setupRouter(&fakeService{err: errors.New("boom")}), "/v1/activity")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
