// Package view renders the RSVP page.
package view

import (
	"embed"
	"html/template"
	"io/fs"
	"strconv"

	"github.com/a-h/templ"

	"github.com/ourday/rsvp/internal/config"
	"github.com/ourday/rsvp/internal/form"
	"github.com/ourday/rsvp/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html")).Lookup("page")

// Notice kinds
const (
	NoticeSuccess = "success"
	NoticeFailure = "failure"
)

// Notice texts
const (
	MsgSent       = "Email sent successfully!"
	MsgSendFailed = "Failed to send email. Please try again later."
)

// Notice is the blocking message shown after a submit attempt
type Notice struct {
	Kind    string
	Message string
}

// PageData is everything the RSVP page needs
type PageData struct {
	Page   config.PageConfig
	Form   model.Submission
	Errors form.FieldErrors
	Notice *Notice
	// NumPersonsRaw is what the guest typed into the party-size input when
	// it could not be read as a number.
	NumPersonsRaw string
}

// ShowPartySize reports whether the party-size prompt is open
func (d PageData) ShowPartySize() bool {
	return d.Form.ShowPartySize()
}

// NumPersons is the party-size input value
func (d PageData) NumPersons() string {
	if d.NumPersonsRaw != "" {
		return d.NumPersonsRaw
	}
	return strconv.Itoa(d.Form.NumPersons)
}

// Page returns the RSVP page component
func Page(data PageData) templ.Component {
	return templ.FromGoHTML(pageTemplate, data)
}

// Static returns the stylesheet and script served under /static/
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
