package wizard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/wolfman30/tennis-booking/internal/coaching"
	"github.com/wolfman30/tennis-booking/internal/observability/metrics"
	"github.com/wolfman30/tennis-booking/pkg/logging"
)

var (
	ErrNoCoach     = errors.New("wizard: no coach selected")
	ErrNoDate      = errors.New("wizard: no date selected")
	ErrNoSlot      = errors.New("wizard: no time slot selected")
	ErrUnknownDate = errors.New("wizard: date not offered for coach")
	ErrUnknownSlot = errors.New("wizard: slot not offered for date")

	// ErrSlotsStale accompanies a successful booking whose follow-up slot
	// refresh failed.
	ErrSlotsStale = errors.New("wizard: slot list could not be refreshed")
)

// Backend is the subset of the booking backend the wizard drives.
type Backend interface {
	ListDates(ctx context.Context, coachID int) ([]string, error)
	ListSlots(ctx context.Context, coachID int, date string) ([]coaching.Slot, error)
	Book(ctx context.Context, req coaching.BookRequest) (*coaching.Confirmation, error)
}

// Receipt is what the confirmation modal shows after a booking.
type Receipt struct {
	Confirmation coaching.Confirmation
	Email        string
}

// Wizard sequences one booking attempt. It is not safe for concurrent use;
// each visitor interaction drives it from a single goroutine.
type Wizard struct {
	backend Backend
	state   State
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// New resumes a wizard at state. A nil state starts at NoCoach.
func New(backend Backend, state State, m *metrics.BookingMetrics, logger *logging.Logger) *Wizard {
	if state == nil {
		state = NoCoach{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Wizard{backend: backend, state: state, metrics: m, logger: logger}
}

// State returns the current state.
func (w *Wizard) State() State { return w.state }

// Reset returns to NoCoach.
func (w *Wizard) Reset() { w.transition(NoCoach{}) }

// SelectCoach picks a coach, clearing any date and slot, and loads the
// coach's available dates. If the dates cannot be loaded the coach stays
// selected with an empty picker and the error is returned.
func (w *Wizard) SelectCoach(ctx context.Context, coach coaching.Coach) error {
	w.transition(CoachChosen{Coach: coach})

	dates, err := w.backend.ListDates(ctx, coach.ID)
	if err != nil {
		return fmt.Errorf("select coach %d: %w", coach.ID, err)
	}
	w.state = CoachChosen{Coach: coach, Dates: dates}
	w.logger.Debug("coach selected", "coach_id", coach.ID, "dates", len(dates))
	return nil
}

// SelectDate picks one of the offered dates, clearing any slot, and loads
// its open slots. On a failed load the wizard falls back to CoachChosen.
func (w *Wizard) SelectDate(ctx context.Context, date string) error {
	coach, ok := w.coach()
	if !ok {
		return ErrNoCoach
	}
	if !slices.Contains(coach.Dates, date) {
		return fmt.Errorf("%w: %s", ErrUnknownDate, date)
	}

	w.state = coach
	slots, err := w.backend.ListSlots(ctx, coach.Coach.ID, date)
	if err != nil {
		return fmt.Errorf("select date %s: %w", date, err)
	}
	w.transition(DateChosen{CoachChosen: coach, Date: date, Slots: slots})
	w.logger.Debug("date selected", "coach_id", coach.Coach.ID, "date", date, "slots", len(slots))
	return nil
}

// SelectSlot picks one of the open slots of the chosen date.
func (w *Wizard) SelectSlot(slotID int) error {
	date, err := w.date()
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(date.Slots, func(s coaching.Slot) bool { return s.ID == slotID })
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownSlot, slotID)
	}
	w.transition(SlotChosen{DateChosen: date, Slot: date.Slots[idx]})
	return nil
}

// Submit books the chosen slot for name and email. A rejected booking
// leaves the state at SlotChosen. After a successful booking the slot is
// cleared and the date's slots are reloaded; if that reload fails the
// receipt is still returned together with an error wrapping ErrSlotsStale.
func (w *Wizard) Submit(ctx context.Context, name, email string) (*Receipt, error) {
	chosen, ok := w.state.(SlotChosen)
	if !ok {
		return nil, ErrNoSlot
	}
	email = strings.TrimSpace(email)

	conf, err := w.backend.Book(ctx, coaching.BookRequest{
		SlotID: chosen.Slot.ID,
		Name:   strings.TrimSpace(name),
		Email:  email,
	})
	if err != nil {
		var apiErr *coaching.APIError
		if errors.As(err, &apiErr) {
			w.metrics.ObserveBooking("rejected")
		} else {
			w.metrics.ObserveBooking("error")
		}
		return nil, err
	}
	w.metrics.ObserveBooking("confirmed")
	w.logger.Info("booking confirmed", "booking_id", conf.ID, "slot_id", chosen.Slot.ID, "coach_id", chosen.Coach.ID)

	receipt := &Receipt{Confirmation: *conf, Email: email}
	date := chosen.DateChosen
	date.Slots = slices.DeleteFunc(slices.Clone(date.Slots), func(s coaching.Slot) bool { return s.ID == chosen.Slot.ID })
	w.transition(date)

	slots, err := w.backend.ListSlots(ctx, date.Coach.ID, date.Date)
	if err != nil {
		return receipt, fmt.Errorf("%w: %w", ErrSlotsStale, err)
	}
	date.Slots = slots
	w.state = date
	return receipt, nil
}

func (w *Wizard) transition(next State) {
	w.state = next
	w.metrics.ObserveTransition(string(next.Stage()))
}

func (w *Wizard) coach() (CoachChosen, bool) {
	switch st := w.state.(type) {
	case CoachChosen:
		return st, true
	case DateChosen:
		return st.CoachChosen, true
	case SlotChosen:
		return st.CoachChosen, true
	}
	return CoachChosen{}, false
}

func (w *Wizard) date() (DateChosen, error) {
	switch st := w.state.(type) {
	case DateChosen:
		return st, nil
	case SlotChosen:
		return st.DateChosen, nil
	case CoachChosen:
		return DateChosen{}, ErrNoDate
	}
	return DateChosen{}, ErrNoCoach
}
