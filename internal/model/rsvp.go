package model

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Attending is the guest's answer to "Are you attending?"
type Attending string

// Attendance choices
const (
	AttendingYes Attending = "yes"
	AttendingNo  Attending = "no"
)

// DefaultNumPersons is the party size assumed when the guest is not attending
const DefaultNumPersons = 1

// Submission is one guest's RSVP. It lives for a single submit attempt.
type Submission struct {
	Name       string    `json:"name" validate:"required"`
	Email      string    `json:"email" validate:"required,email"`
	Attending  Attending `json:"attending" validate:"required,oneof=yes no"`
	NumPersons int       `json:"numPersons"`
}

// NewSubmission returns the empty record shown when the page is first rendered
func NewSubmission() Submission {
	return Submission{NumPersons: DefaultNumPersons}
}

// Normalize trims the text fields and resets the party size to 1 unless
// the guest is attending. Attending is matched exactly: "YES" stays "YES"
// and fails validation.
func (s *Submission) Normalize() {
	s.Name = norm.NFC.String(strings.TrimSpace(s.Name))
	s.Email = strings.TrimSpace(s.Email)
	s.Attending = Attending(strings.TrimSpace(string(s.Attending)))
	if s.Attending != AttendingYes {
		s.NumPersons = DefaultNumPersons
	}
}

// ShowPartySize reports whether the party-size prompt should be visible
func (s Submission) ShowPartySize() bool {
	return s.Attending == AttendingYes
}

// Params returns the key/value payload forwarded to the email provider.
// Every value is a string, numPersons included, since providers interpolate
// them into hosted text templates.
func (s Submission) Params() map[string]string {
	return map[string]string{
		"name":       s.Name,
		"email":      s.Email,
		"attending":  string(s.Attending),
		"numPersons": strconv.Itoa(s.NumPersons),
	}
}
