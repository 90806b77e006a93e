// Package frontend holds the visitor-facing booking flow: the session a
// visitor carries between requests and the controller operations that
// mutate it in response to each interaction.
package frontend

import (
	"github.com/wolfman30/tennis-booking/internal/coaching"
	"github.com/wolfman30/tennis-booking/internal/wizard"
)

// View names a top-level panel.
type View string

const (
	ViewCoaches  View = "coaches"
	ViewBooking  View = "booking"
	ViewBookings View = "bookings"
)

// Views lists every panel in display order.
var Views = []View{ViewCoaches, ViewBooking, ViewBookings}

// Valid reports whether v names a known panel.
func (v View) Valid() bool {
	switch v {
	case ViewCoaches, ViewBooking, ViewBookings:
		return true
	}
	return false
}

// Session is everything the page shows for one visitor. It is replaced
// from the backend on every step and never treated as a source of truth.
type Session struct {
	View          View             `json:"view"`
	Coaches       []coaching.Coach `json:"coaches"`
	CoachesLoaded bool             `json:"coaches_loaded"`
	Wizard        wizard.Snapshot  `json:"wizard"`
	Draft         Draft            `json:"draft"`
	Lookup        LookupState      `json:"lookup"`
	Modal         *Modal           `json:"modal,omitempty"`
	Alert         string           `json:"alert,omitempty"`
}

// Draft keeps the details form input until a booking succeeds.
type Draft struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LookupState is the My Bookings panel.
type LookupState struct {
	Email         string             `json:"email"`
	Searched      bool               `json:"searched"`
	Bookings      []coaching.Booking `json:"bookings"`
	PendingCancel int                `json:"pending_cancel,omitempty"`
}

// Modal is the booking confirmation dialog.
type Modal struct {
	CoachName string `json:"coach_name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Email     string `json:"email"`
}

// NewSession returns the state of a first page load.
func NewSession() *Session {
	return &Session{
		View:   ViewCoaches,
		Wizard: wizard.Snapshot{State: wizard.NoCoach{}},
	}
}
