// Package form decodes and validates RSVP input.
//
// The validation schema is declared as struct tags on model.Submission and
// evaluated with go-playground/validator. The one conditional rule (party
// size is only checked when the guest is attending) is a struct-level
// validation. Every failure maps to the guest-facing message shown beneath
// the offending input.
package form

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ourday/rsvp/internal/model"
)

// Field names as they appear in the HTML form and the JSON API
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldAttending  = "attending"
	FieldNumPersons = "numPersons"
)

// Guest-facing messages
const (
	MsgNameRequired       = "Name is required"
	MsgEmailRequired      = "Email is required"
	MsgEmailInvalid       = "Invalid email format"
	MsgAttendingRequired  = "Please select if you are attending"
	MsgAttendingInvalid   = "Invalid Selection"
	MsgNumPersonsRequired = "Number of persons attending is required"
	MsgNumPersonsMin      = "At least one person must attend"
	MsgNumPersonsInteger  = "Number of persons must be a whole number"
)

const tagMinPersons = "min_persons"

// messages maps field and failed tag to the message shown to the guest
var messages = map[string]map[string]string{
	FieldName: {
		"required": MsgNameRequired,
	},
	FieldEmail: {
		"required": MsgEmailRequired,
		"email":    MsgEmailInvalid,
	},
	FieldAttending: {
		"required": MsgAttendingRequired,
		"oneof":    MsgAttendingInvalid,
	},
	FieldNumPersons: {
		tagMinPersons: MsgNumPersonsMin,
	},
}

// FieldErrors maps a field name to the message shown beneath that input
type FieldErrors map[string]string

// Error implements error
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "invalid rsvp: " + strings.Join(parts, "; ")
}

// Add records msg for field unless the field already has a message
func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// Merge copies messages from other, keeping existing ones
func (fe FieldErrors) Merge(other FieldErrors) {
	for f, m := range other {
		fe.Add(f, m)
	}
}

// AsFieldErrors extracts FieldErrors from err
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Validator evaluates the RSVP validation schema
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with field names reported in their
// JSON spelling.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterStructValidation(partySizeRule, model.Submission{})

	return &Validator{validate: v}
}

// partySizeRule requires at least one person when the guest is attending
func partySizeRule(sl validator.StructLevel) {
	s := sl.Current().Interface().(model.Submission)
	if s.Attending == model.AttendingYes && s.NumPersons < 1 {
		sl.ReportError(s.NumPersons, FieldNumPersons, "NumPersons", tagMinPersons, "1")
	}
}

// Validate checks s and returns FieldErrors when any rule fails.
// s should already be normalized.
func (v *Validator) Validate(s model.Submission) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := FieldErrors{}
	for _, e := range verrs {
		msg, ok := messages[e.Field()][e.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		fe.Add(e.Field(), msg)
	}
	return fe
}
