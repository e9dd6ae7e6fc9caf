package handler

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ourday/rsvp/internal/form"
	"github.com/ourday/rsvp/internal/model"
	"github.com/ourday/rsvp/internal/service"
	"github.com/ourday/rsvp/internal/view"
)

const maxFormBytes = 16 << 10

// Page handles GET / and renders the empty RSVP form
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageData{Form: model.NewSubmission()})
}

// SubmitForm handles POST /rsvp from the HTML form.
//
// Invalid input re-renders the page with inline errors. A delivery failure
// re-renders the page with the guest's values kept and a failure notice;
// success renders an empty form with a success notice.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	sub, fieldErrs := form.ParseValues(r.PostForm)
	data := view.PageData{Form: sub}
	if msg, ok := fieldErrs[form.FieldNumPersons]; ok && msg == form.MsgNumPersonsInteger {
		data.NumPersonsRaw = r.PostForm.Get(form.FieldNumPersons)
	}

	if len(fieldErrs) > 0 {
		if err := h.rsvpSvc.Validate(&data.Form); err != nil {
			if fe, ok := form.AsFieldErrors(err); ok {
				fieldErrs.Merge(fe)
			}
		}
		data.Errors = fieldErrs
		h.render(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	_, err := h.rsvpSvc.Submit(r.Context(), sub)
	switch {
	case err == nil:
		data.Form = model.NewSubmission()
		data.Notice = &view.Notice{Kind: view.NoticeSuccess, Message: view.MsgSent}
		h.render(w, r, http.StatusOK, data)
	case isFieldErrors(err):
		fe, _ := form.AsFieldErrors(err)
		data.Form.Normalize()
		data.Errors = fe
		h.render(w, r, http.StatusUnprocessableEntity, data)
	case errors.Is(err, service.ErrDeliveryFailed):
		data.Notice = &view.Notice{Kind: view.NoticeFailure, Message: view.MsgSendFailed}
		h.render(w, r, http.StatusBadGateway, data)
	default:
		h.log.Error().Err(err).Msg("rsvp submission failed")
		data.Notice = &view.Notice{Kind: view.NoticeFailure, Message: view.MsgSendFailed}
		h.render(w, r, http.StatusInternalServerError, data)
	}
}

// SubmitJSON handles POST /api/v1/rsvp
func (h *Handler) SubmitJSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	defer r.Body.Close()

	sub, fieldErrs, err := form.ParseJSON(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if len(fieldErrs) > 0 {
		if err := h.rsvpSvc.Validate(&sub); err != nil {
			if fe, ok := form.AsFieldErrors(err); ok {
				fieldErrs.Merge(fe)
			}
		}
		writeErrorWithDetails(w, r, http.StatusUnprocessableEntity, "validation_failed", "Please correct the highlighted fields", fieldErrs)
		return
	}

	receipt, err := h.rsvpSvc.Submit(r.Context(), sub)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"id":       receipt.ID,
			"provider": receipt.Provider,
			"sentAt":   receipt.SentAt,
			"message":  view.MsgSent,
		})
	case isFieldErrors(err):
		fe, _ := form.AsFieldErrors(err)
		writeErrorWithDetails(w, r, http.StatusUnprocessableEntity, "validation_failed", "Please correct the highlighted fields", fe)
	case errors.Is(err, service.ErrDeliveryFailed):
		writeError(w, r, http.StatusBadGateway, "delivery_failed", view.MsgSendFailed)
	default:
		h.log.Error().Err(err).Msg("rsvp submission failed")
		writeError(w, r, http.StatusInternalServerError, "internal_error", view.MsgSendFailed)
	}
}

// RateLimited renders the page with a notice when a guest submits too often
func (h *Handler) RateLimited(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/rsvp" {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		_ = r.ParseForm()
		sub, _ := form.ParseValues(r.PostForm)
		h.render(w, r, http.StatusTooManyRequests, view.PageData{
			Form:   sub,
			Notice: &view.Notice{Kind: view.NoticeFailure, Message: "Too many attempts. Please try again later."},
		})
		return
	}
	writeError(w, r, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data view.PageData) {
	data.Page = h.pageConfig()
	w.Header().Set("Cache-Control", "no-store")
	templ.Handler(view.Page(data), templ.WithStatus(status)).ServeHTTP(w, r)
}

func isFieldErrors(err error) bool {
	_, ok := form.AsFieldErrors(err)
	return ok
}
