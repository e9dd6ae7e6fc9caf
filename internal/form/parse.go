package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/ourday/rsvp/internal/model"
)

// ErrMalformedBody is returned when a JSON request body cannot be decoded
var ErrMalformedBody = errors.New("malformed request body")

// ParseValues decodes a submitted HTML form. Decoding problems that belong
// to a single input are returned as FieldErrors alongside the record so the
// page can be re-rendered with what the guest typed.
func ParseValues(values url.Values) (model.Submission, FieldErrors) {
	s := model.Submission{
		Name:       values.Get(FieldName),
		Email:      values.Get(FieldEmail),
		Attending:  model.Attending(values.Get(FieldAttending)),
		NumPersons: model.DefaultNumPersons,
	}

	fe := FieldErrors{}
	if !attendingYes(s.Attending) {
		return s, fe
	}

	raw := strings.TrimSpace(values.Get(FieldNumPersons))
	switch n, err := strconv.Atoi(raw); {
	case raw == "":
		s.NumPersons = 0
		fe.Add(FieldNumPersons, MsgNumPersonsRequired)
	case err != nil:
		s.NumPersons = 0
		fe.Add(FieldNumPersons, MsgNumPersonsInteger)
	default:
		s.NumPersons = n
	}
	return s, fe
}

// jsonSubmission mirrors model.Submission with an optional party size
type jsonSubmission struct {
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Attending  model.Attending `json:"attending"`
	NumPersons *json.Number    `json:"numPersons"`
}

// ParseJSON decodes a JSON API request body
func ParseJSON(r io.Reader) (model.Submission, FieldErrors, error) {
	var in jsonSubmission
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(&in); err != nil {
		return model.Submission{}, nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	s := model.Submission{
		Name:       in.Name,
		Email:      in.Email,
		Attending:  in.Attending,
		NumPersons: model.DefaultNumPersons,
	}

	fe := FieldErrors{}
	if !attendingYes(s.Attending) {
		return s, fe, nil
	}

	if in.NumPersons == nil {
		s.NumPersons = 0
		fe.Add(FieldNumPersons, MsgNumPersonsRequired)
		return s, fe, nil
	}
	n, err := strconv.Atoi(in.NumPersons.String())
	if err != nil {
		s.NumPersons = 0
		fe.Add(FieldNumPersons, MsgNumPersonsInteger)
		return s, fe, nil
	}
	s.NumPersons = n
	return s, fe, nil
}

func attendingYes(a model.Attending) bool {
	return model.Attending(strings.TrimSpace(string(a))) == model.AttendingYes
}
