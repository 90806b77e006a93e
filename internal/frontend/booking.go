package frontend

import (
	"context"
	"errors"
	"strings"

	"github.com/wolfman30/tennis-booking/internal/wizard"
)

// wizardInputError reports errors caused by an interaction the current
// state does not allow.
func wizardInputError(err error) bool {
	return errors.Is(err, wizard.ErrNoCoach) ||
		errors.Is(err, wizard.ErrNoDate) ||
		errors.Is(err, wizard.ErrNoSlot) ||
		errors.Is(err, wizard.ErrUnknownDate) ||
		errors.Is(err, wizard.ErrUnknownSlot)
}

// SelectDate picks a date of the chosen coach.
func (c *Controller) SelectDate(ctx context.Context, s *Session, date string) error {
	w := c.flow(s)
	err := w.SelectDate(ctx, date)
	if wizardInputError(err) {
		return err
	}
	s.Wizard.State = w.State()
	if err != nil {
		c.fail(s, "select_date", err, msgSlotsFailed)
	}
	return nil
}

// SelectSlot picks a time slot of the chosen date, showing the details form.
func (c *Controller) SelectSlot(s *Session, slotID int) error {
	w := c.flow(s)
	if err := w.SelectSlot(slotID); err != nil {
		return err
	}
	s.Wizard.State = w.State()
	return nil
}

// SubmitBooking books the chosen slot. On success the confirmation modal
// opens and the form is reset; on failure the form keeps its input and the
// backend's reason is alerted.
func (c *Controller) SubmitBooking(ctx context.Context, s *Session, name, email string) error {
	w := c.flow(s)
	receipt, err := w.Submit(ctx, name, email)
	if wizardInputError(err) {
		return err
	}
	s.Wizard.State = w.State()

	if receipt == nil {
		s.Draft = Draft{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
		c.fail(s, "book", err, msgBookingFailed)
		return nil
	}

	s.Draft = Draft{}
	s.Modal = &Modal{
		CoachName: receipt.Confirmation.CoachName,
		Date:      receipt.Confirmation.Date,
		StartTime: receipt.Confirmation.StartTime,
		EndTime:   receipt.Confirmation.EndTime,
		Email:     receipt.Email,
	}
	if err != nil {
		c.fail(s, "refresh_slots", err, msgSlotsFailed)
	}
	return nil
}
