package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/tennis-booking/internal/coaching"
	"github.com/wolfman30/tennis-booking/internal/frontend"
	"github.com/wolfman30/tennis-booking/internal/wizard"
)

var (
	maria = coaching.Coach{ID: 5, Name: "Maria", Specialty: "Serve", Bio: "Former pro", PhotoURL: "/m.jpg", HourlyRate: 85}
	slotA = coaching.Slot{ID: 9, CoachID: 5, Date: "2024-06-10", StartTime: "10:00", EndTime: "11:00"}
	slotB = coaching.Slot{ID: 10, CoachID: 5, Date: "2024-06-10", StartTime: "13:30", EndTime: "14:30"}
)

func coachChosen() wizard.CoachChosen {
	return wizard.CoachChosen{Coach: maria, Dates: []string{"2024-06-10", "2024-06-11"}}
}

func sessionAt(state wizard.State) *frontend.Session {
	s := frontend.NewSession()
	s.View = frontend.ViewBooking
	s.Wizard.State = state
	return s
}

func TestBuildNavMarksActiveView(t *testing.T) {
	s := frontend.NewSession()
	s.Coaches = []coaching.Coach{maria}

	p := Build(s)

	require.Len(t, p.Nav, 2)
	assert.Equal(t, NavItem{View: frontend.ViewCoaches, Label: "Coaches", Active: true}, p.Nav[0])
	assert.Equal(t, NavItem{View: frontend.ViewBookings, Label: "My Bookings"}, p.Nav[1])
	require.Len(t, p.Panels, 3)
	for _, panel := range p.Panels {
		assert.Equal(t, panel.View == frontend.ViewCoaches, panel.Active, panel.View)
	}
	require.Len(t, p.Coaches, 1)
	assert.Equal(t, "$85", p.Coaches[0].Rate)
	assert.Nil(t, p.Booking)
}

func TestBuildBookingViewHasNoNavHighlight(t *testing.T) {
	p := Build(sessionAt(coachChosen()))
	for _, item := range p.Nav {
		assert.False(t, item.Active, item.View)
	}
}

func TestBuildCoachChosenHintsDate(t *testing.T) {
	p := Build(sessionAt(coachChosen()))

	require.NotNil(t, p.Booking)
	assert.Equal(t, "Maria", p.Booking.Coach.Name)
	require.Len(t, p.Booking.Dates, 2)
	assert.Equal(t, DateButton{Date: "2024-06-10", Weekday: "Mon", Day: "10", Month: "Jun"}, p.Booking.Dates[0])
	assert.Equal(t, HintSelectDate, p.Booking.Slots.Notice)
	assert.Empty(t, p.Booking.Slots.Buttons)
	assert.Nil(t, p.Booking.Details)
}

func TestBuildCoachWithoutDates(t *testing.T) {
	p := Build(sessionAt(wizard.CoachChosen{Coach: maria, Dates: []string{}}))

	require.NotNil(t, p.Booking)
	assert.Empty(t, p.Booking.Dates)
	assert.Equal(t, NoDates, p.Booking.NoDates)
	assert.Equal(t, NoDates, p.Booking.Slots.Notice)

	p = Build(sessionAt(coachChosen()))
	assert.Empty(t, p.Booking.NoDates)
}

func TestBuildDateChosenWithoutSlots(t *testing.T) {
	p := Build(sessionAt(wizard.DateChosen{CoachChosen: coachChosen(), Date: "2024-06-11"}))

	require.NotNil(t, p.Booking)
	assert.True(t, p.Booking.Dates[1].Selected)
	assert.False(t, p.Booking.Dates[0].Selected)
	assert.Equal(t, NoSlots, p.Booking.Slots.Notice)
	assert.Nil(t, p.Booking.Details)
}

func TestBuildSlotChosenShowsDetails(t *testing.T) {
	state := wizard.SlotChosen{
		DateChosen: wizard.DateChosen{CoachChosen: coachChosen(), Date: "2024-06-10", Slots: []coaching.Slot{slotA, slotB}},
		Slot:       slotB,
	}
	s := sessionAt(state)
	s.Draft = frontend.Draft{Name: "Ann", Email: "ann@example.com"}

	p := Build(s)

	require.NotNil(t, p.Booking)
	assert.Empty(t, p.Booking.Slots.Notice)
	assert.Equal(t, []SlotButton{
		{ID: 9, Label: "10:00 AM – 11:00 AM"},
		{ID: 10, Label: "1:30 PM – 2:30 PM", Selected: true},
	}, p.Booking.Slots.Buttons)
	require.NotNil(t, p.Booking.Details)
	assert.Equal(t, 10, p.Booking.Details.SlotID)
	assert.Equal(t, "Ann", p.Booking.Details.Name)
	assert.Equal(t, Summary{
		Coach: "Maria",
		Date:  "Monday, June 10, 2024",
		Time:  "1:30 PM – 2:30 PM",
		Price: "$85",
	}, p.Booking.Details.Summary)
}

func TestBuildBookingsBeforeSearchIsBlank(t *testing.T) {
	p := Build(frontend.NewSession())
	assert.False(t, p.Bookings.Empty)
	assert.Empty(t, p.Bookings.Cards)
}

func TestBuildBookingsEmptyState(t *testing.T) {
	s := frontend.NewSession()
	s.Lookup = frontend.LookupState{Email: "nobody@example.com", Searched: true}

	p := Build(s)

	assert.True(t, p.Bookings.Empty)
	assert.Equal(t, "nobody@example.com", p.Bookings.Email)
}

func TestBuildBookingCardsAndCancelPrompt(t *testing.T) {
	s := frontend.NewSession()
	s.Lookup = frontend.LookupState{
		Email:    "ann@example.com",
		Searched: true,
		Bookings: []coaching.Booking{
			{ID: 3, CoachName: "Maria", Date: "2024-06-10", StartTime: "10:00", EndTime: "11:00", HourlyRate: 85},
			{ID: 4, CoachName: "James", Date: "2024-06-12", StartTime: "09:00", EndTime: "10:00", HourlyRate: 64.5},
		},
		PendingCancel: 4,
	}

	p := Build(s)

	assert.Equal(t, []BookingCard{
		{ID: 3, Coach: "Maria", When: "Mon, Jun 10, 2024 · 10:00 AM – 11:00 AM", Price: "$85"},
		{ID: 4, Coach: "James", When: "Wed, Jun 12, 2024 · 9:00 AM – 10:00 AM", Price: "$65"},
	}, p.Bookings.Cards)
	require.NotNil(t, p.Bookings.Confirm)
	assert.Equal(t, CancelDialog{BookingID: 4, Message: CancelPrompt}, *p.Bookings.Confirm)
}

func TestBuildModal(t *testing.T) {
	s := frontend.NewSession()
	s.Modal = &frontend.Modal{CoachName: "Maria", Date: "2024-06-10", StartTime: "10:00", EndTime: "11:00", Email: "ann@example.com"}
	s.Alert = "Something went wrong. Please try again."

	p := Build(s)

	require.NotNil(t, p.Modal)
	assert.Equal(t, Confirmation{
		CoachName: "Maria",
		Date:      "Monday, June 10, 2024",
		Time:      "10:00 AM – 11:00 AM",
		Email:     "ann@example.com",
	}, *p.Modal)
	assert.Equal(t, s.Alert, p.Alert)
}

func TestPrice(t *testing.T) {
	assert.Equal(t, "$0", Price(0))
	assert.Equal(t, "$85", Price(85))
	assert.Equal(t, "$86", Price(85.5))
}
