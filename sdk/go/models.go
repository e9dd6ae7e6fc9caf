package rsvp

import "time"

// Attending answers
const (
	AttendingYes = "yes"
	AttendingNo  = "no"
)

// Submission is one guest's reply.
type Submission struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Attending string `json:"attending"`
	// NumPersons is required when Attending is "yes". Leave it nil otherwise;
	// the server records 1 for guests who are not attending.
	NumPersons *int `json:"numPersons,omitempty"`
}

// PartyOf returns a pointer to n for Submission.NumPersons.
func PartyOf(n int) *int {
	return &n
}

// Receipt is returned when the server has forwarded the RSVP.
type Receipt struct {
	ID       string    `json:"id"`
	Provider string    `json:"provider"`
	SentAt   time.Time `json:"sentAt"`
	Message  string    `json:"message"`
}
