// Package coachingtest provides an in-memory booking backend speaking the
// coaching REST contract, for tests.
package coachingtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wolfman30/tennis-booking/internal/coaching"
	"github.com/wolfman30/tennis-booking/pkg/logging"
)

// Server is an in-memory stand-in for the booking backend. It seeds two
// coaches: 5 (Maria Santos, $85) with open slots 9 and 10 on 2024-06-10 and
// a booked slot 11 on 2024-06-11, and 6 (James Chen, $65) with slot 12 on
// 2024-06-12.
type Server struct {
	mu       sync.Mutex
	coaches  []coaching.Coach
	slots    []slot
	bookings []booking
	nextID   int

	bookStatus int
	bookError  string
	cancelFail bool
	requests   []string
}

type slot struct {
	coaching.Slot
	booked bool
}

type booking struct {
	id     int
	slotID int
	name   string
	email  string
}

// NewServer returns a seeded backend.
func NewServer() *Server {
	return &Server{
		coaches: []coaching.Coach{
			{ID: 5, Name: "Maria Santos", Specialty: "Groundstrokes & Match Strategy", HourlyRate: 85},
			{ID: 6, Name: "James Chen", Specialty: "Beginners & Technique", HourlyRate: 65},
		},
		slots: []slot{
			{Slot: coaching.Slot{ID: 9, CoachID: 5, Date: "2024-06-10", StartTime: "10:00", EndTime: "11:00"}},
			{Slot: coaching.Slot{ID: 10, CoachID: 5, Date: "2024-06-10", StartTime: "11:00", EndTime: "12:00"}},
			{Slot: coaching.Slot{ID: 11, CoachID: 5, Date: "2024-06-11", StartTime: "09:00", EndTime: "10:00"}, booked: true},
			{Slot: coaching.Slot{ID: 12, CoachID: 6, Date: "2024-06-12", StartTime: "15:00", EndTime: "16:00"}},
		},
		nextID: 100,
	}
}

// Client starts an httptest server for b and returns a client to it. The
// server is closed when the test ends.
func (b *Server) Client(t testing.TB) *coaching.Client {
	t.Helper()
	ts := httptest.NewServer(b)
	t.Cleanup(ts.Close)
	return coaching.NewClient(ts.URL, time.Second, nil, logging.New("error"))
}

// Calls counts received requests whose "METHOD /path" starts with prefix.
func (b *Server) Calls(prefix string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SetCoaches replaces the coach list.
func (b *Server) SetCoaches(coaches []coaching.Coach) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.coaches = coaches
}

// Coaches returns the current coach list.
func (b *Server) Coaches() []coaching.Coach {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]coaching.Coach(nil), b.coaches...)
}

// RejectBookings makes POST /api/book answer status with message as the
// error body. A zero status restores normal booking.
func (b *Server) RejectBookings(status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bookStatus, b.bookError = status, message
}

// FailCancels makes DELETE /api/bookings/{id} answer 500 with no body.
func (b *Server) FailCancels(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelFail = fail
}

func (b *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)

	q := r.URL.Query()
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/coaches":
		writeJSON(w, http.StatusOK, b.coaches)

	case r.Method == http.MethodGet && r.URL.Path == "/api/dates":
		coachID, _ := strconv.Atoi(q.Get("coach_id"))
		dates := []string{}
		for _, s := range b.slots {
			if s.CoachID == coachID && !s.booked && (len(dates) == 0 || dates[len(dates)-1] != s.Date) {
				dates = append(dates, s.Date)
			}
		}
		writeJSON(w, http.StatusOK, dates)

	case r.Method == http.MethodGet && r.URL.Path == "/api/slots":
		coachID, _ := strconv.Atoi(q.Get("coach_id"))
		slots := []coaching.Slot{}
		for _, s := range b.slots {
			if s.CoachID == coachID && s.Date == q.Get("date") && !s.booked {
				slots = append(slots, s.Slot)
			}
		}
		writeJSON(w, http.StatusOK, slots)

	case r.Method == http.MethodPost && r.URL.Path == "/api/book":
		if b.bookStatus != 0 {
			writeJSON(w, b.bookStatus, map[string]string{"error": b.bookError})
			return
		}
		var req coaching.BookRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		for i := range b.slots {
			if b.slots[i].ID != req.SlotID {
				continue
			}
			if b.slots[i].booked {
				writeJSON(w, http.StatusConflict, map[string]string{"error": "Slot is already booked"})
				return
			}
			b.slots[i].booked = true
			b.nextID++
			b.bookings = append(b.bookings, booking{id: b.nextID, slotID: req.SlotID, name: req.Name, email: req.Email})
			writeJSON(w, http.StatusCreated, coaching.Confirmation{
				ID:            b.nextID,
				CoachName:     b.coachName(b.slots[i].CoachID),
				Date:          b.slots[i].Date,
				StartTime:     b.slots[i].StartTime,
				EndTime:       b.slots[i].EndTime,
				CustomerName:  req.Name,
				CustomerEmail: req.Email,
			})
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Slot not found"})

	case r.Method == http.MethodGet && r.URL.Path == "/api/bookings":
		out := []coaching.Booking{}
		for _, bk := range b.bookings {
			if !strings.EqualFold(bk.email, q.Get("email")) {
				continue
			}
			s := b.slotByID(bk.slotID)
			out = append(out, coaching.Booking{
				ID: bk.id, SlotID: bk.slotID, CoachName: b.coachName(s.CoachID),
				Date: s.Date, StartTime: s.StartTime, EndTime: s.EndTime,
				HourlyRate: b.coachRate(s.CoachID), CustomerEmail: bk.email,
			})
		}
		writeJSON(w, http.StatusOK, out)

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/bookings/"):
		if b.cancelFail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/bookings/"))
		for i, bk := range b.bookings {
			if bk.id == id {
				b.bookings = append(b.bookings[:i], b.bookings[i+1:]...)
				for j := range b.slots {
					if b.slots[j].ID == bk.slotID {
						b.slots[j].booked = false
					}
				}
				writeJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled successfully"})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Booking not found"})

	default:
		http.NotFound(w, r)
	}
}

func (b *Server) slotByID(id int) coaching.Slot {
	for _, s := range b.slots {
		if s.ID == id {
			return s.Slot
		}
	}
	return coaching.Slot{}
}

func (b *Server) coachName(id int) string {
	for _, c := range b.coaches {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

func (b *Server) coachRate(id int) float64 {
	for _, c := range b.coaches {
		if c.ID == id {
			return c.HourlyRate
		}
	}
	return 0
}
