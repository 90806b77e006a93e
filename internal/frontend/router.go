package frontend

import (
	"context"
	"fmt"
)

// Navigate shows view. Entering the coach list refreshes the catalog. The
// booking panel is not a navigation target.
func (c *Controller) Navigate(ctx context.Context, s *Session, view View) error {
	if !NavTarget(view) {
		return fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
	s.View = view
	if view == ViewCoaches {
		c.LoadCoaches(ctx, s)
	}
	return nil
}

// NavTarget reports whether view has its own navigation control. The
// booking panel is only reachable by picking a coach.
func NavTarget(view View) bool {
	return view == ViewCoaches || view == ViewBookings
}
