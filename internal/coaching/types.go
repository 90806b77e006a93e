// Package coaching contains the client for the tennis coaching booking
// backend and the types it exchanges.
package coaching

// Coach is a bookable coach as listed by the backend.
type Coach struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Specialty  string  `json:"specialty"`
	Bio        string  `json:"bio"`
	PhotoURL   string  `json:"photo_url"`
	HourlyRate float64 `json:"hourly_rate"`
}

// Slot is one open time interval for a coach on a date. Times are 24-hour
// "HH:MM" strings.
type Slot struct {
	ID        int    `json:"id"`
	CoachID   int    `json:"coach_id,omitempty"`
	Date      string `json:"date,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// BookRequest is the body of POST /api/book.
type BookRequest struct {
	SlotID int    `json:"slot_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Confirmation is the backend's answer to a successful booking.
type Confirmation struct {
	ID            int    `json:"id"`
	CoachName     string `json:"coach_name"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// Booking is a row returned by the email lookup.
type Booking struct {
	ID            int     `json:"id"`
	SlotID        int     `json:"slot_id,omitempty"`
	CoachName     string  `json:"coach_name"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	HourlyRate    float64 `json:"hourly_rate"`
	CustomerName  string  `json:"customer_name,omitempty"`
	CustomerEmail string  `json:"customer_email,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
}
