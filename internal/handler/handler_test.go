package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourday/rsvp/internal/config"
	"github.com/ourday/rsvp/internal/email"
	"github.com/ourday/rsvp/internal/form"
	"github.com/ourday/rsvp/internal/logger"
	"github.com/ourday/rsvp/internal/service"
	"github.com/ourday/rsvp/internal/view"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []email.Message
	err      error
}

func (s *recordingSender) Name() string { return "recording" }

func (s *recordingSender) Send(_ context.Context, msg email.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return s.err
}

type fakeHealth struct{ err error }

func (f fakeHealth) HealthCheck(context.Context) error { return f.err }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Page = config.PageConfig{Title: "RSVP", Heading: "RSVP Form", PublicURL: "https://rsvp.example.com/"}
	cfg.Email.Provider = "recording"
	return cfg
}

func newTestHandler(t *testing.T, sender *recordingSender) *Handler {
	t.Helper()
	cfg := testConfig()
	svc := service.NewRSVPService(sender, form.NewValidator(), cfg.Email, logger.Nop())
	return New(svc, nil, logger.Nop(), cfg)
}

func postForm(h http.HandlerFunc, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/rsvp", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func validValues() url.Values {
	return url.Values{
		"name":       {"Jane Doe"},
		"email":      {"jane@example.com"},
		"attending":  {"yes"},
		"numPersons": {"2"},
	}
}

func TestPage(t *testing.T) {
	h := newTestHandler(t, &recordingSender{})

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "RSVP Form")
	assert.Contains(t, rec.Body.String(), `name="numPersons"`)
}

func TestSubmitForm_Success(t *testing.T) {
	sender := &recordingSender{}
	h := newTestHandler(t, sender)

	rec := postForm(h.SubmitForm, validValues())

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, view.MsgSent)
	assert.Contains(t, body, "notice-success")
	assert.Contains(t, body, `id="name" name="name" type="text" value=""`, "form is cleared after success")

	require.Len(t, sender.messages, 1)
	assert.Equal(t, map[string]string{
		"name":       "Jane Doe",
		"email":      "jane@example.com",
		"attending":  "yes",
		"numPersons": "2",
	}, sender.messages[0].Params)
}

func TestSubmitForm_NotAttendingResetsPartySize(t *testing.T) {
	sender := &recordingSender{}
	h := newTestHandler(t, sender)

	values := validValues()
	values.Set("attending", "no")
	values.Set("numPersons", "5")

	rec := postForm(h.SubmitForm, values)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sender.messages, 1)
	assert.Equal(t, "1", sender.messages[0].Params["numPersons"])
}

func TestSubmitForm_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(v url.Values)
		messages []string
		dialog   bool
	}{
		{
			name:     "empty name",
			mutate:   func(v url.Values) { v.Set("name", "") },
			messages: []string{form.MsgNameRequired},
			dialog:   true,
		},
		{
			name:     "malformed email",
			mutate:   func(v url.Values) { v.Set("email", "jane.example.com") },
			messages: []string{form.MsgEmailInvalid},
			dialog:   true,
		},
		{
			name: "empty name and malformed email",
			mutate: func(v url.Values) {
				v.Set("name", "")
				v.Set("email", "nope")
				v.Set("attending", "no")
			},
			messages: []string{form.MsgNameRequired, form.MsgEmailInvalid},
		},
		{
			name:     "attending with zero persons",
			mutate:   func(v url.Values) { v.Set("numPersons", "0") },
			messages: []string{form.MsgNumPersonsMin},
			dialog:   true,
		},
		{
			name:     "attending without party size",
			mutate:   func(v url.Values) { v.Del("numPersons") },
			messages: []string{form.MsgNumPersonsRequired},
			dialog:   true,
		},
		{
			name: "party size error alongside other errors",
			mutate: func(v url.Values) {
				v.Set("numPersons", "two")
				v.Set("name", "")
			},
			messages: []string{form.MsgNumPersonsInteger, form.MsgNameRequired},
			dialog:   true,
		},
		{
			name:     "attending in upper case",
			mutate:   func(v url.Values) { v.Set("attending", "YES") },
			messages: []string{form.MsgAttendingInvalid},
		},
		{
			name:     "attending not selected",
			mutate:   func(v url.Values) { v.Set("attending", "") },
			messages: []string{form.MsgAttendingRequired},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &recordingSender{}
			h := newTestHandler(t, sender)

			values := validValues()
			tt.mutate(values)
			rec := postForm(h.SubmitForm, values)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			for _, msg := range tt.messages {
				assert.Contains(t, rec.Body.String(), msg)
			}
			if tt.dialog {
				assert.Contains(t, rec.Body.String(), `data-open="true" open`)
			} else {
				assert.Contains(t, rec.Body.String(), `data-open="false">`)
			}
			assert.Empty(t, sender.messages, "invalid submissions are never sent")
		})
	}
}

func TestSubmitForm_DeliveryFailureKeepsValues(t *testing.T) {
	sender := &recordingSender{err: errors.New("emailjs: status 400: The service ID is invalid")}
	h := newTestHandler(t, sender)

	rec := postForm(h.SubmitForm, validValues())

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, view.MsgSendFailed)
	assert.Contains(t, body, "notice-failure")
	assert.Contains(t, body, `value="Jane Doe"`)
	assert.Contains(t, body, `value="jane@example.com"`)
	assert.Contains(t, body, `<option value="yes" selected>Yes</option>`)
	assert.Contains(t, body, `value="2"`)
	assert.Len(t, sender.messages, 1, "no retry")
}

func TestSubmitForm_PageReloaded(t *testing.T) {
	h := newTestHandler(t, &recordingSender{})
	h.SetPage(config.PageConfig{Heading: "Anna & Ben"})

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), "<h1>Anna &amp; Ben</h1>")
}

func postJSON(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rsvp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestSubmitJSON(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		sender := &recordingSender{}
		h := newTestHandler(t, sender)

		rec := postJSON(h.SubmitJSON, `{"name":"Jane Doe","email":"jane@example.com","attending":"yes","numPersons":2}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["id"])
		assert.Equal(t, "recording", resp["provider"])
		assert.Equal(t, view.MsgSent, resp["message"])
		require.Len(t, sender.messages, 1)
	})

	t.Run("validation failed", func(t *testing.T) {
		sender := &recordingSender{}
		h := newTestHandler(t, sender)

		rec := postJSON(h.SubmitJSON, `{"name":"","email":"bad","attending":"yes","numPersons":0}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var resp struct {
			Error struct {
				Code    string            `json:"code"`
				Details map[string]string `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "validation_failed", resp.Error.Code)
		assert.Equal(t, map[string]string{
			"name":       form.MsgNameRequired,
			"email":      form.MsgEmailInvalid,
			"numPersons": form.MsgNumPersonsMin,
		}, resp.Error.Details)
		assert.Empty(t, sender.messages)
	})

	t.Run("missing party size", func(t *testing.T) {
		h := newTestHandler(t, &recordingSender{})
		rec := postJSON(h.SubmitJSON, `{"name":"Jane","email":"jane@example.com","attending":"yes"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), form.MsgNumPersonsRequired)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := newTestHandler(t, &recordingSender{})
		rec := postJSON(h.SubmitJSON, `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid_request")
	})

	t.Run("delivery failed", func(t *testing.T) {
		h := newTestHandler(t, &recordingSender{err: errors.New("boom")})
		rec := postJSON(h.SubmitJSON, `{"name":"Jane","email":"jane@example.com","attending":"no"}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "delivery_failed")
	})
}

func TestInvitationQR(t *testing.T) {
	h := newTestHandler(t, &recordingSender{})

	rec := httptest.NewRecorder()
	h.InvitationQR(rec, httptest.NewRequest(http.MethodGet, "/invitation/qr.png?size=128", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))

	rec = httptest.NewRecorder()
	h.InvitationQR(rec, httptest.NewRequest(http.MethodGet, "/invitation/qr.png?size=9999", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	h.SetPage(config.PageConfig{})
	rec = httptest.NewRecorder()
	h.InvitationQR(rec, httptest.NewRequest(http.MethodGet, "/invitation/qr.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	cfg := testConfig()
	svc := service.NewRSVPService(&recordingSender{}, form.NewValidator(), cfg.Email, logger.Nop())

	t.Run("without redis", func(t *testing.T) {
		h := New(svc, nil, logger.Nop(), cfg)
		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

		rec = httptest.NewRecorder()
		h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("redis down", func(t *testing.T) {
		h := New(svc, fakeHealth{err: errors.New("dial tcp: refused")}, logger.Nop(), cfg)
		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"redis":"unhealthy"`)

		rec = httptest.NewRecorder()
		h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
