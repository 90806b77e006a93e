// Package view turns a visitor session into a page description. Build is
// pure; Renderer applies a description to HTML.
package view

import (
	"fmt"
	"math"

	"github.com/wolfman30/tennis-booking/internal/coaching"
	"github.com/wolfman30/tennis-booking/internal/frontend"
	"github.com/wolfman30/tennis-booking/internal/timefmt"
	"github.com/wolfman30/tennis-booking/internal/wizard"
)

// Empty-state and prompt texts.
const (
	HintSelectDate = "Select a date first"
	NoDates        = "No available dates for this coach"
	NoSlots        = "No available slots on this date"
	NoBookings     = "No bookings found for this email."
	CancelPrompt   = "Are you sure you want to cancel this booking?"
)

var navLabels = map[frontend.View]string{
	frontend.ViewCoaches:  "Coaches",
	frontend.ViewBookings: "My Bookings",
}

// Page describes everything on screen.
type Page struct {
	Nav      []NavItem     `json:"nav"`
	Panels   []Panel       `json:"panels"`
	Coaches  []CoachCard   `json:"coaches"`
	Booking  *BookingPanel `json:"booking,omitempty"`
	Bookings BookingsPanel `json:"bookings"`
	Modal    *Confirmation `json:"modal,omitempty"`
	Alert    string        `json:"alert,omitempty"`
}

// NavItem is one navigation control.
type NavItem struct {
	View   frontend.View `json:"view"`
	Label  string        `json:"label"`
	Active bool          `json:"active"`
}

// Panel marks whether a view's panel is visible.
type Panel struct {
	View   frontend.View `json:"view"`
	Active bool          `json:"active"`
}

// CoachCard is a coach as listed in the catalog.
type CoachCard struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
	PhotoURL  string `json:"photo_url"`
	Rate      string `json:"rate"`
}

// BookingPanel is the wizard. Slots and Details follow the wizard stage:
// Details is nil until a slot is chosen.
type BookingPanel struct {
	Coach   CoachCard    `json:"coach"`
	Dates   []DateButton `json:"dates"`
	NoDates string       `json:"no_dates,omitempty"`
	Slots   SlotPanel    `json:"slots"`
	Details *Details     `json:"details,omitempty"`
}

// DateButton is one selectable availability date.
type DateButton struct {
	Date     string `json:"date"`
	Weekday  string `json:"weekday"`
	Day      string `json:"day"`
	Month    string `json:"month"`
	Selected bool   `json:"selected"`
}

// SlotPanel shows either a notice or buttons, never an empty list.
type SlotPanel struct {
	Notice  string       `json:"notice,omitempty"`
	Buttons []SlotButton `json:"buttons,omitempty"`
}

// SlotButton is one selectable time slot.
type SlotButton struct {
	ID       int    `json:"id"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Details is the visitor form shown once a slot is chosen.
type Details struct {
	SlotID  int     `json:"slot_id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Summary Summary `json:"summary"`
}

// Summary recaps the lesson about to be booked.
type Summary struct {
	Coach string `json:"coach"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Price string `json:"price"`
}

// BookingsPanel lists the bookings found for an email.
type BookingsPanel struct {
	Email   string        `json:"email"`
	Empty   bool          `json:"empty"`
	Cards   []BookingCard `json:"cards,omitempty"`
	Confirm *CancelDialog `json:"confirm,omitempty"`
}

// BookingCard is one booking in the lookup results.
type BookingCard struct {
	ID    int    `json:"id"`
	Coach string `json:"coach"`
	When  string `json:"when"`
	Price string `json:"price"`
}

// CancelDialog asks the visitor to confirm a cancellation.
type CancelDialog struct {
	BookingID int    `json:"booking_id"`
	Message   string `json:"message"`
}

// Confirmation is the modal shown after a successful booking.
type Confirmation struct {
	CoachName string `json:"coach_name"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Email     string `json:"email"`
}

// Build describes the page for s.
func Build(s *frontend.Session) Page {
	p := Page{
		Coaches:  coachCards(s.Coaches),
		Booking:  bookingPanel(s.Wizard.State, s.Draft),
		Bookings: bookingsPanel(s.Lookup),
		Alert:    s.Alert,
	}
	for _, v := range frontend.Views {
		p.Panels = append(p.Panels, Panel{View: v, Active: v == s.View})
		if frontend.NavTarget(v) {
			p.Nav = append(p.Nav, NavItem{View: v, Label: navLabels[v], Active: v == s.View})
		}
	}
	if m := s.Modal; m != nil {
		p.Modal = &Confirmation{
			CoachName: m.CoachName,
			Date:      timefmt.LongDate(m.Date),
			Time:      timefmt.FormatRange(m.StartTime, m.EndTime),
			Email:     m.Email,
		}
	}
	return p
}

func coachCards(coaches []coaching.Coach) []CoachCard {
	cards := make([]CoachCard, 0, len(coaches))
	for _, c := range coaches {
		cards = append(cards, coachCard(c))
	}
	return cards
}

func coachCard(c coaching.Coach) CoachCard {
	return CoachCard{
		ID:        c.ID,
		Name:      c.Name,
		Specialty: c.Specialty,
		Bio:       c.Bio,
		PhotoURL:  c.PhotoURL,
		Rate:      Price(c.HourlyRate),
	}
}

func bookingPanel(state wizard.State, draft frontend.Draft) *BookingPanel {
	var (
		coach   wizard.CoachChosen
		date    string
		slots   []coaching.Slot
		slot    *coaching.Slot
		hasDate bool
	)
	switch st := state.(type) {
	case wizard.CoachChosen:
		coach = st
	case wizard.DateChosen:
		coach, date, slots, hasDate = st.CoachChosen, st.Date, st.Slots, true
	case wizard.SlotChosen:
		coach, date, slots, hasDate = st.CoachChosen, st.Date, st.Slots, true
		slot = &st.Slot
	default:
		return nil
	}

	panel := &BookingPanel{Coach: coachCard(coach.Coach)}
	for _, d := range coach.Dates {
		btn := DateButton{Date: d, Selected: hasDate && d == date}
		if weekday, day, month, ok := timefmt.DayParts(d); ok {
			btn.Weekday, btn.Day, btn.Month = weekday, day, month
		} else {
			btn.Day = d
		}
		panel.Dates = append(panel.Dates, btn)
	}

	if len(coach.Dates) == 0 {
		panel.NoDates = NoDates
	}

	switch {
	case !hasDate && len(coach.Dates) == 0:
		panel.Slots.Notice = NoDates
	case !hasDate:
		panel.Slots.Notice = HintSelectDate
	case len(slots) == 0:
		panel.Slots.Notice = NoSlots
	default:
		for _, s := range slots {
			panel.Slots.Buttons = append(panel.Slots.Buttons, SlotButton{
				ID:       s.ID,
				Label:    timefmt.FormatRange(s.StartTime, s.EndTime),
				Selected: slot != nil && slot.ID == s.ID,
			})
		}
	}

	if slot != nil {
		panel.Details = &Details{
			SlotID: slot.ID,
			Name:   draft.Name,
			Email:  draft.Email,
			Summary: Summary{
				Coach: coach.Coach.Name,
				Date:  timefmt.LongDate(date),
				Time:  timefmt.FormatRange(slot.StartTime, slot.EndTime),
				Price: Price(coach.Coach.HourlyRate),
			},
		}
	}
	return panel
}

func bookingsPanel(l frontend.LookupState) BookingsPanel {
	panel := BookingsPanel{Email: l.Email}
	if !l.Searched {
		return panel
	}
	if len(l.Bookings) == 0 {
		panel.Empty = true
		return panel
	}
	for _, b := range l.Bookings {
		panel.Cards = append(panel.Cards, BookingCard{
			ID:    b.ID,
			Coach: b.CoachName,
			When:  timefmt.ShortDate(b.Date) + " · " + timefmt.FormatRange(b.StartTime, b.EndTime),
			Price: Price(b.HourlyRate),
		})
		if b.ID == l.PendingCancel {
			panel.Confirm = &CancelDialog{BookingID: b.ID, Message: CancelPrompt}
		}
	}
	return panel
}

// Price renders an hourly rate rounded to whole dollars, e.g. "$85".
func Price(rate float64) string {
	return fmt.Sprintf("$%d", int64(math.Round(rate)))
}
