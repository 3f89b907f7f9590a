// Package leads captures viewing requests and enquiries and hands them to a
// sink. The default sink only logs; a CRM sink posts them over HTTP.
package leads

import (
	"strings"
	"time"
)

// Draft is what the form collects before validation.
type Draft struct {
	Name      string  `validate:"required,max=120"`
	Email     string  `validate:"required,email"`
	Phone     string  `validate:"required"`
	Message   string  `validate:"max=2000"`
	ListingID *string
}

// Normalized trims every field. The phone number is otherwise kept as typed,
// extensions and notes included.
func (d Draft) Normalized() Draft {
	out := Draft{
		Name:    strings.TrimSpace(d.Name),
		Email:   strings.TrimSpace(d.Email),
		Phone:   strings.TrimSpace(d.Phone),
		Message: strings.TrimSpace(d.Message),
	}
	if d.ListingID != nil {
		id := *d.ListingID
		out.ListingID = &id
	}
	return out
}

// Lead is an accepted submission.
type Lead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Message     string    `json:"message,omitempty"`
	ListingID   *string   `json:"listing"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Receipt acknowledges a lead that reached its sink.
type Receipt struct {
	Reference string
	Listing   string
	Sink      string
	At        time.Time
}

// Acknowledgment is the message shown once a lead is accepted.
const Acknowledgment = "Thanks, your enquiry was submitted. An agent will contact you shortly."
