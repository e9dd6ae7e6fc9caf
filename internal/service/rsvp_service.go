package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ourday/rsvp/internal/config"
	"github.com/ourday/rsvp/internal/email"
	"github.com/ourday/rsvp/internal/form"
	"github.com/ourday/rsvp/internal/logger"
	"github.com/ourday/rsvp/internal/model"
)

// ErrDeliveryFailed is returned when the provider rejects or cannot be
// reached for a valid submission. The submission is not retried.
var ErrDeliveryFailed = errors.New("rsvp delivery failed")

// Receipt describes a delivered submission
type Receipt struct {
	ID       string    `json:"id"`
	Provider string    `json:"provider"`
	SentAt   time.Time `json:"sentAt"`
}

// RSVPService validates RSVPs and hands them to the delivery provider
type RSVPService struct {
	sender    email.Sender
	validator *form.Validator
	cfg       config.EmailConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewRSVPService creates a new RSVPService
func NewRSVPService(sender email.Sender, validator *form.Validator, cfg config.EmailConfig, log *logger.Logger) *RSVPService {
	return &RSVPService{
		sender:    sender,
		validator: validator,
		cfg:       cfg,
		log:       log.WithComponent("rsvp"),
		now:       time.Now,
	}
}

// Validate normalizes s in place and checks it against the validation
// schema. It returns form.FieldErrors when a rule fails.
func (s *RSVPService) Validate(sub *model.Submission) error {
	sub.Normalize()
	return s.validator.Validate(*sub)
}

// Submit validates sub and, if it is valid, delivers it with exactly one
// call to the provider. Invalid submissions return form.FieldErrors and
// are never sent.
func (s *RSVPService) Submit(ctx context.Context, sub model.Submission) (*Receipt, error) {
	if err := s.Validate(&sub); err != nil {
		return nil, err
	}

	msg, err := s.buildMessage(sub)
	if err != nil {
		return nil, err
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	receipt := &Receipt{
		ID:       uuid.New().String(),
		Provider: s.sender.Name(),
	}

	err = s.sender.Send(ctx, msg)
	s.log.Submission(receipt.ID, receipt.Provider, string(sub.Attending), sub.NumPersons, err)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	receipt.SentAt = s.now()
	return receipt, nil
}

func (s *RSVPService) buildMessage(sub model.Submission) (email.Message, error) {
	data := email.NotificationData{
		Name:       sub.Name,
		Email:      sub.Email,
		Attending:  sub.Attending == model.AttendingYes,
		NumPersons: sub.NumPersons,
	}

	htmlBody, err := email.RSVPNotificationHTML(data)
	if err != nil {
		return email.Message{}, err
	}
	textBody, err := email.RSVPNotificationText(data)
	if err != nil {
		return email.Message{}, err
	}

	subject := s.cfg.Subject
	if subject == "" {
		subject = "New RSVP from %s"
	}
	if strings.Contains(subject, "%s") {
		subject = fmt.Sprintf(subject, sub.Name)
	}

	return email.Message{
		To:       s.cfg.Recipient,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
		Params:   sub.Params(),
	}, nil
}
