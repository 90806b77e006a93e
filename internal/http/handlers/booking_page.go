package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/tennis-booking/internal/frontend"
	"github.com/wolfman30/tennis-booking/internal/session"
	"github.com/wolfman30/tennis-booking/internal/view"
	"github.com/wolfman30/tennis-booking/internal/wizard"
	"github.com/wolfman30/tennis-booking/pkg/logging"
)

var errSlotMismatch = errors.New("handlers: submitted slot is not the selected slot")

// BookingPageHandler serves the booking page and applies each visitor
// interaction to the visitor's session. Every POST redirects back to "/".
type BookingPageHandler struct {
	controller *frontend.Controller
	store      session.Store
	renderer   *view.Renderer
	logger     *logging.Logger
}

// NewBookingPageHandler creates the page handler.
func NewBookingPageHandler(controller *frontend.Controller, store session.Store, renderer *view.Renderer, logger *logging.Logger) *BookingPageHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &BookingPageHandler{
		controller: controller,
		store:      store,
		renderer:   renderer,
		logger:     logger,
	}
}

// Page handles GET /
func (h *BookingPageHandler) Page(w http.ResponseWriter, r *http.Request) {
	page, ok := h.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, page); err != nil {
		h.logger.Error("failed to render page", "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

// ViewJSON handles GET /view.json
func (h *BookingPageHandler) ViewJSON(w http.ResponseWriter, r *http.Request) {
	page, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Navigate handles POST /navigate/{view}
func (h *BookingPageHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	target := frontend.View(chi.URLParam(r, "view"))
	h.act(w, r, func(ctx context.Context, s *frontend.Session) error {
		return h.controller.Navigate(ctx, s, target)
	})
}

// SelectCoach handles POST /coaches/{coachID}/select
func (h *BookingPageHandler) SelectCoach(w http.ResponseWriter, r *http.Request) {
	coachID, ok := intParam(w, r, "coachID")
	if !ok {
		return
	}
	h.act(w, r, func(ctx context.Context, s *frontend.Session) error {
		return h.controller.SelectCoach(ctx, s, coachID)
	})
}

// SelectDate handles POST /dates/{date}/select
func (h *BookingPageHandler) SelectDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	h.act(w, r, func(ctx context.Context, s *frontend.Session) error {
		return h.controller.SelectDate(ctx, s, date)
	})
}

// SelectSlot handles POST /slots/{slotID}/select
func (h *BookingPageHandler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	slotID, ok := intParam(w, r, "slotID")
	if !ok {
		return
	}
	h.act(w, r, func(_ context.Context, s *frontend.Session) error {
		return h.controller.SelectSlot(s, slotID)
	})
}

// Book handles POST /book. The form's slot_id, when present, must match the
// session's selected slot so a stale page cannot book a different slot.
func (h *BookingPageHandler) Book(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	name, email := r.PostFormValue("name"), r.PostFormValue("email")
	slotField := r.PostFormValue("slot_id")
	h.act(w, r, func(ctx context.Context, s *frontend.Session) error {
		if slotField != "" {
			chosen, ok := s.Wizard.State.(wizard.SlotChosen)
			if ok && strconv.Itoa(chosen.Slot.ID) != slotField {
				return fmt.Errorf("%w: %s", errSlotMismatch, slotField)
			}
		}
		return h.controller.SubmitBooking(ctx, s, name, email)
	})
}

// CloseModal handles POST /modal/close
func (h *BookingPageHandler) CloseModal(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(_ context.Context, s *frontend.Session) error {
		h.controller.CloseModal(s)
		return nil
	})
}

// DismissAlert handles POST /alert/dismiss
func (h *BookingPageHandler) DismissAlert(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(_ context.Context, s *frontend.Session) error {
		h.controller.DismissAlert(s)
		return nil
	})
}

// Lookup handles POST /bookings/lookup
func (h *BookingPageHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	h.act(w, r, func(ctx context.Context, s *frontend.Session) error {
		h.controller.LookupBookings(ctx, s, email)
		return nil
	})
}

// RequestCancel handles POST /bookings/{bookingID}/cancel
func (h *BookingPageHandler) RequestCancel(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := intParam(w, r, "bookingID")
	if !ok {
		return
	}
	h.act(w, r, func(_ context.Context, s *frontend.Session) error {
		return h.controller.RequestCancel(s, bookingID)
	})
}

// ConfirmCancel handles POST /bookings/cancel/confirm
func (h *BookingPageHandler) ConfirmCancel(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.controller.ConfirmCancel)
}

// AbortCancel handles POST /bookings/cancel/abort
func (h *BookingPageHandler) AbortCancel(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(_ context.Context, s *frontend.Session) error {
		h.controller.AbortCancel(s)
		return nil
	})
}

// load runs the page-load fetch and returns the page description.
func (h *BookingPageHandler) load(w http.ResponseWriter, r *http.Request) (view.Page, bool) {
	var page view.Page
	ok := h.withSession(w, r, func(ctx context.Context, s *frontend.Session) error {
		h.controller.PageLoad(ctx, s)
		page = view.Build(s)
		return nil
	})
	return page, ok
}

// act applies one interaction and redirects back to the page.
func (h *BookingPageHandler) act(w http.ResponseWriter, r *http.Request, fn func(context.Context, *frontend.Session) error) {
	if h.withSession(w, r, fn) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// withSession loads the visitor's session, runs fn and saves the result.
// A rejected interaction leaves the stored session untouched.
func (h *BookingPageHandler) withSession(w http.ResponseWriter, r *http.Request, fn func(context.Context, *frontend.Session) error) bool {
	ctx := r.Context()
	id, ok := session.IDFromContext(ctx)
	if !ok {
		h.logger.Error("request without session id", "path", r.URL.Path)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return false
	}
	s, err := session.LoadOrNew(ctx, h.store, id)
	if err != nil {
		h.logger.Error("failed to load session", "error", err)
		http.Error(w, "session unavailable", http.StatusServiceUnavailable)
		return false
	}
	if err := fn(ctx, s); err != nil {
		status := interactionStatus(err)
		h.logger.Warn("rejected interaction", "path", r.URL.Path, "status", status, "error", err)
		http.Error(w, err.Error(), status)
		return false
	}
	if err := h.store.Save(ctx, id, s); err != nil {
		h.logger.Error("failed to save session", "error", err)
		http.Error(w, "session unavailable", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func interactionStatus(err error) int {
	switch {
	case errors.Is(err, frontend.ErrUnknownView),
		errors.Is(err, frontend.ErrUnknownCoach),
		errors.Is(err, frontend.ErrUnknownBooking),
		errors.Is(err, wizard.ErrUnknownDate),
		errors.Is(err, wizard.ErrUnknownSlot):
		return http.StatusNotFound
	default:
		return http.StatusConflict
	}
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v <= 0 {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
