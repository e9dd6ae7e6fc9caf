package email

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
)

// NotificationData is the content of an RSVP notification
type NotificationData struct {
	Name       string
	Email      string
	Attending  bool
	NumPersons int
}

var notificationHTML = template.Must(template.New("rsvp_html").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>New RSVP</title>
</head>
<body style="margin:0;padding:0;font-family:Georgia,'Times New Roman',serif;background-color:#f7f3ee;">
<table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f7f3ee;padding:40px 0;">
<tr><td align="center">
<table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;box-shadow:0 2px 8px rgba(0,0,0,0.08);">
  <tr><td style="padding:32px 40px 16px;text-align:center;">
    <h1 style="margin:0;font-size:24px;color:#3b2f2f;">New RSVP</h1>
  </td></tr>
  <tr><td style="padding:0 40px 32px;">
    <table width="100%" cellpadding="6" cellspacing="0" style="font-size:15px;color:#4a4a68;">
      <tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>
      <tr><td><strong>Email</strong></td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
      <tr><td><strong>Attending</strong></td><td>{{if .Attending}}Yes{{else}}No{{end}}</td></tr>
      {{- if .Attending}}
      <tr><td><strong>Number of persons</strong></td><td>{{.NumPersons}}</td></tr>
      {{- end}}
    </table>
  </td></tr>
</table>
</td></tr>
</table>
</body>
</html>`))

var notificationText = texttemplate.Must(texttemplate.New("rsvp_text").Parse(`New RSVP

Name: {{.Name}}
Email: {{.Email}}
Attending: {{if .Attending}}Yes{{else}}No{{end}}
{{- if .Attending}}
Number of persons: {{.NumPersons}}
{{- end}}
`))

// RSVPNotificationHTML returns the HTML body for an RSVP notification.
func RSVPNotificationHTML(d NotificationData) (string, error) {
	var buf bytes.Buffer
	if err := notificationHTML.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("render html notification: %w", err)
	}
	return buf.String(), nil
}

// RSVPNotificationText returns the plain-text body for an RSVP notification.
func RSVPNotificationText(d NotificationData) (string, error) {
	var buf bytes.Buffer
	if err := notificationText.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("render text notification: %w", err)
	}
	return buf.String(), nil
}
