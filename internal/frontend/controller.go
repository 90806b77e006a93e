package frontend

import (
	"context"
	"errors"

	"github.com/wolfman30/tennis-booking/internal/coaching"
	"github.com/wolfman30/tennis-booking/internal/observability/metrics"
	"github.com/wolfman30/tennis-booking/internal/wizard"
	"github.com/wolfman30/tennis-booking/pkg/logging"
)

var (
	ErrUnknownView     = errors.New("frontend: unknown view")
	ErrUnknownCoach    = errors.New("frontend: unknown coach")
	ErrUnknownBooking  = errors.New("frontend: unknown booking")
	ErrNoPendingCancel = errors.New("frontend: no cancellation awaiting confirmation")
)

// Alert fallbacks for backend rejections that carry no message.
const (
	msgBookingFailed = "Booking failed"
	msgCancelFailed  = "Cancel failed"
	msgCoachesFailed = "Could not load coaches"
	msgDatesFailed   = "Could not load available dates"
	msgSlotsFailed   = "Could not load available times"
	msgLookupFailed  = "Could not load bookings"
)

// Backend is the booking backend as the front end uses it.
type Backend interface {
	wizard.Backend
	ListCoaches(ctx context.Context) ([]coaching.Coach, error)
	ListBookings(ctx context.Context, email string) ([]coaching.Booking, error)
	CancelBooking(ctx context.Context, bookingID int) error
}

// Controller applies visitor interactions to a Session. Backend failures
// never escape as errors: they are logged and turned into the session
// alert. Returned errors mean the interaction itself was invalid.
type Controller struct {
	backend Backend
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewController wires a controller to a backend.
func NewController(backend Backend, m *metrics.BookingMetrics, logger *logging.Logger) *Controller {
	if backend == nil {
		panic("frontend: backend required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Controller{backend: backend, metrics: m, logger: logger}
}

// PageLoad runs the initial catalog fetch for a fresh session.
func (c *Controller) PageLoad(ctx context.Context, s *Session) {
	if !s.CoachesLoaded {
		c.LoadCoaches(ctx, s)
	}
}

// CloseModal dismisses the confirmation dialog.
func (c *Controller) CloseModal(s *Session) {
	s.Modal = nil
}

// DismissAlert clears the alert dialog.
func (c *Controller) DismissAlert(s *Session) {
	s.Alert = ""
}

func (c *Controller) fail(s *Session, op string, err error, fallback string) {
	var apiErr *coaching.APIError
	if errors.As(err, &apiErr) {
		c.logger.Warn("backend rejected request", "op", op, "status", apiErr.Status, "error", err)
	} else {
		c.logger.Error("backend request failed", "op", op, "error", err)
	}
	s.Alert = coaching.UserMessage(err, fallback)
}

func (c *Controller) flow(s *Session) *wizard.Wizard {
	return wizard.New(c.backend, s.Wizard.State, c.metrics, c.logger)
}
