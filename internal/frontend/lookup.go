package frontend

import (
	"context"
	"fmt"
	"strings"
)

// LookupBookings lists the bookings made with email.
func (c *Controller) LookupBookings(ctx context.Context, s *Session, email string) {
	email = strings.TrimSpace(email)
	s.Lookup.Email = email
	s.Lookup.PendingCancel = 0

	bookings, err := c.backend.ListBookings(ctx, email)
	if err != nil {
		s.Lookup.Bookings = nil
		s.Lookup.Searched = false
		c.fail(s, "lookup_bookings", err, msgLookupFailed)
		return
	}
	s.Lookup.Bookings = bookings
	s.Lookup.Searched = true
}

// RequestCancel asks the visitor to confirm cancelling a listed booking.
func (c *Controller) RequestCancel(s *Session, bookingID int) error {
	for _, b := range s.Lookup.Bookings {
		if b.ID == bookingID {
			s.Lookup.PendingCancel = bookingID
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownBooking, bookingID)
}

// AbortCancel drops the pending cancellation without contacting the backend.
func (c *Controller) AbortCancel(s *Session) {
	s.Lookup.PendingCancel = 0
}

// ConfirmCancel cancels the booking awaiting confirmation and refreshes the
// list for the entered email.
func (c *Controller) ConfirmCancel(ctx context.Context, s *Session) error {
	bookingID := s.Lookup.PendingCancel
	if bookingID == 0 {
		return ErrNoPendingCancel
	}
	s.Lookup.PendingCancel = 0

	if err := c.backend.CancelBooking(ctx, bookingID); err != nil {
		c.metrics.ObserveCancel("failed")
		c.fail(s, "cancel_booking", err, msgCancelFailed)
		return nil
	}
	c.metrics.ObserveCancel("cancelled")
	c.logger.Info("booking cancelled", "booking_id", bookingID)

	if s.Lookup.Email != "" {
		c.LookupBookings(ctx, s, s.Lookup.Email)
	}
	return nil
}
