package frontend

import (
	"context"
	"fmt"
)

// LoadCoaches replaces the coach list with the backend's current one. On
// failure the previous list stays and the visitor is alerted.
func (c *Controller) LoadCoaches(ctx context.Context, s *Session) {
	coaches, err := c.backend.ListCoaches(ctx)
	if err != nil {
		c.fail(s, "load_coaches", err, msgCoachesFailed)
		return
	}
	s.Coaches = coaches
	s.CoachesLoaded = true
}

// SelectCoach starts a booking with a coach from the loaded list and
// switches to the booking panel.
func (c *Controller) SelectCoach(ctx context.Context, s *Session, coachID int) error {
	idx := -1
	for i := range s.Coaches {
		if s.Coaches[i].ID == coachID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownCoach, coachID)
	}

	w := c.flow(s)
	err := w.SelectCoach(ctx, s.Coaches[idx])
	s.Wizard.State = w.State()
	s.View = ViewBooking
	if err != nil {
		c.fail(s, "select_coach", err, msgDatesFailed)
	}
	return nil
}
