package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/tennis-booking/internal/coaching/coachingtest"
	"github.com/wolfman30/tennis-booking/internal/frontend"
	"github.com/wolfman30/tennis-booking/internal/session"
	"github.com/wolfman30/tennis-booking/internal/view"
	"github.com/wolfman30/tennis-booking/pkg/logging"
)

type failingStore struct {
	session.Store
	loadErr error
	saveErr error
}

func (f failingStore) Load(ctx context.Context, id string) (*frontend.Session, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.Store.Load(ctx, id)
}

func (f failingStore) Save(ctx context.Context, id string, s *frontend.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.Store.Save(ctx, id, s)
}

func newPageHandler(t *testing.T, store session.Store) (*BookingPageHandler, *coachingtest.Server) {
	t.Helper()
	backend := coachingtest.NewServer()
	logger := logging.New("error")
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	controller := frontend.NewController(backend.Client(t), nil, logger)
	return NewBookingPageHandler(controller, store, renderer, logger), backend
}

func withSessionID(r *http.Request, id string) *http.Request {
	return r.WithContext(session.WithID(r.Context(), id))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPageRendersAndStoresSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	h, _ := newPageHandler(t, store)

	rr := httptest.NewRecorder()
	h.Page(rr, withSessionID(httptest.NewRequest(http.MethodGet, "/", nil), "visitor-1"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "James Chen")

	s, err := store.Load(context.Background(), "visitor-1")
	require.NoError(t, err)
	assert.True(t, s.CoachesLoaded)
}

func TestPageWithoutSessionID(t *testing.T) {
	h, backend := newPageHandler(t, session.NewMemoryStore(time.Hour))

	rr := httptest.NewRecorder()
	h.Page(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, 0, backend.Calls("GET"))
}

func TestSessionStoreFailures(t *testing.T) {
	storeErr := errors.New("redis down")
	cases := map[string]failingStore{
		"load": {Store: session.NewMemoryStore(time.Hour), loadErr: storeErr},
		"save": {Store: session.NewMemoryStore(time.Hour), saveErr: storeErr},
	}
	for name, store := range cases {
		t.Run(name, func(t *testing.T) {
			h, _ := newPageHandler(t, store)
			rr := httptest.NewRecorder()
			h.ViewJSON(rr, withSessionID(httptest.NewRequest(http.MethodGet, "/view.json", nil), "visitor-1"))
			assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		})
	}
}

func TestRejectedInteractionKeepsStoredSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	h, _ := newPageHandler(t, store)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "visitor-1", frontend.NewSession()))

	req := withSessionID(httptest.NewRequest(http.MethodPost, "/navigate/admin", nil), "visitor-1")
	rr := httptest.NewRecorder()
	h.Navigate(rr, withURLParam(req, "view", "admin"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	s, err := store.Load(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, frontend.ViewCoaches, s.View)
}

func TestSelectCoachRejectsBadID(t *testing.T) {
	h, _ := newPageHandler(t, session.NewMemoryStore(time.Hour))

	for _, id := range []string{"abc", "0", "-3"} {
		req := withSessionID(httptest.NewRequest(http.MethodPost, "/coaches/x/select", nil), "visitor-1")
		rr := httptest.NewRecorder()
		h.SelectCoach(rr, withURLParam(req, "coachID", id))
		assert.Equal(t, http.StatusBadRequest, rr.Code, id)
	}
}

func TestNavigateRedirects(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	h, _ := newPageHandler(t, store)

	req := withSessionID(httptest.NewRequest(http.MethodPost, "/navigate/bookings", nil), "visitor-1")
	rr := httptest.NewRecorder()
	h.Navigate(rr, withURLParam(req, "view", "bookings"))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	s, err := store.Load(context.Background(), "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, frontend.ViewBookings, s.View)
}

func TestHealthCheck(t *testing.T) {
	rr := httptest.NewRecorder()
	HealthCheck(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
