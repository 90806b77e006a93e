package coaching

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/tennis-booking/internal/observability/metrics"
	"github.com/wolfman30/tennis-booking/pkg/logging"
)

const (
	defaultBaseURL = "http://localhost:5000"
	defaultTimeout = 10 * time.Second
)

var coachingTracer = otel.Tracer("tennis.internal.coaching")

// Client wraps the REST calls of the coaching booking backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.BookingMetrics
	logger     *logging.Logger
}

// NewClient constructs a backend client. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration, m *metrics.BookingMetrics, logger *logging.Logger) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		metrics:    m,
		logger:     logger,
	}
}

// ListCoaches returns every coach in backend order.
func (c *Client) ListCoaches(ctx context.Context) ([]Coach, error) {
	var coaches []Coach
	if err := c.doJSON(ctx, "coaches", http.MethodGet, "/api/coaches", nil, &coaches); err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}
	return coaches, nil
}

// ListDates returns the ISO dates on which the coach has open slots.
func (c *Client) ListDates(ctx context.Context, coachID int) ([]string, error) {
	q := url.Values{}
	q.Set("coach_id", strconv.Itoa(coachID))

	var dates []string
	if err := c.doJSON(ctx, "dates", http.MethodGet, "/api/dates?"+q.Encode(), nil, &dates); err != nil {
		return nil, fmt.Errorf("list dates: %w", err)
	}
	return dates, nil
}

// ListSlots returns open slots for a coach on date.
func (c *Client) ListSlots(ctx context.Context, coachID int, date string) ([]Slot, error) {
	q := url.Values{}
	q.Set("coach_id", strconv.Itoa(coachID))
	q.Set("date", date)

	var slots []Slot
	if err := c.doJSON(ctx, "slots", http.MethodGet, "/api/slots?"+q.Encode(), nil, &slots); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// Book requests a booking for a slot.
func (c *Client) Book(ctx context.Context, req BookRequest) (*Confirmation, error) {
	var conf Confirmation
	if err := c.doJSON(ctx, "book", http.MethodPost, "/api/book", req, &conf); err != nil {
		return nil, fmt.Errorf("book slot %d: %w", req.SlotID, err)
	}
	return &conf, nil
}

// ListBookings returns bookings made with email.
func (c *Client) ListBookings(ctx context.Context, email string) ([]Booking, error) {
	q := url.Values{}
	q.Set("email", email)

	var bookings []Booking
	if err := c.doJSON(ctx, "bookings", http.MethodGet, "/api/bookings?"+q.Encode(), nil, &bookings); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// CancelBooking deletes a booking.
func (c *Client) CancelBooking(ctx context.Context, bookingID int) error {
	path := "/api/bookings/" + url.PathEscape(strconv.Itoa(bookingID))
	if err := c.doJSON(ctx, "cancel", http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("cancel booking %d: %w", bookingID, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, endpoint, method, path string, body interface{}, out interface{}) (err error) {
	ctx, span := coachingTracer.Start(ctx, "coaching."+endpoint, trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("tennis.backend.endpoint", endpoint),
	)

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveBackend(endpoint, "error", time.Since(start).Seconds())
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveBackend(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Path: req.URL.Path}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &payload) == nil {
			apiErr.Message = strings.TrimSpace(payload.Error)
		}
		c.logger.Warn("coaching backend non-2xx response", "status", resp.StatusCode, "endpoint", endpoint, "error_message", apiErr.Message)
		return apiErr
	}

	if len(respBody) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
