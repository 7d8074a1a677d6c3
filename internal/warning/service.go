package warning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bfcms/internal/mailer"
	dErrors "bfcms/pkg/domain-errors"
	"bfcms/pkg/platform/sentinel"
	"bfcms/pkg/requestcontext"
)

// LetterRenderer turns letter fields into an opaque document. The rendering
// engine is a black box; only success or failure matters here.
type LetterRenderer interface {
	RenderLetter(fields LetterFields) ([]byte, error)
}

// Service implements warning reads and notice delivery. Flag flips happen
// strictly after the render or send succeeds, so a false flag always means
// the action can be retried.
type Service struct {
	ledger   Store
	renderer LetterRenderer
	mail     mailer.Mailer
	sender   string
	orgName  string
	logger   *slog.Logger
	metrics  *Metrics
}

func NewService(ledger Store, renderer LetterRenderer, mail mailer.Mailer,
	sender, orgName string, logger *slog.Logger, metrics *Metrics) *Service {
	return &Service{
		ledger:   ledger,
		renderer: renderer,
		mail:     mail,
		sender:   sender,
		orgName:  orgName,
		logger:   logger,
		metrics:  metrics,
	}
}

// List returns the ledger, newest first.
func (s *Service) List(ctx context.Context) ([]*Warning, error) {
	warnings, err := s.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing warnings: %w", err)
	}
	if warnings == nil {
		warnings = []*Warning{}
	}
	return warnings, nil
}

// Get returns one warning.
func (s *Service) Get(ctx context.Context, id string) (*Warning, error) {
	w, err := s.ledger.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "warning not found")
		}
		return nil, fmt.Errorf("finding warning: %w", err)
	}
	return w, nil
}

// GenerateLetter renders the warning letter and, on success only, marks
// letter_generated. Regenerating an already-generated letter is allowed and
// leaves the flag true.
func (s *Service) GenerateLetter(ctx context.Context, id string) ([]byte, *Warning, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	fields := BuildLetterFields(w, s.orgName, requestcontext.Now(ctx))
	data, err := s.renderer.RenderLetter(fields)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeDependencyFailed, "letter rendering failed")
	}

	if err := s.ledger.SetLetterGenerated(ctx, id); err != nil {
		return nil, nil, fmt.Errorf("marking letter generated: %w", err)
	}
	s.metrics.ObserveLetterGenerated()
	s.logger.InfoContext(ctx, "warning letter generated", "warning_id", id)
	return data, w, nil
}

// SendEmail delivers the warning email to the snapshot address. With no
// mailer configured it fails before reading the ledger or touching the
// network. The email_sent flag flips only after the provider accepts the
// message; a send failure leaves it false so the send can be retried.
func (s *Service) SendEmail(ctx context.Context, id string) (string, error) {
	if s.mail == nil {
		return "", dErrors.New(dErrors.CodeUnavailable, "email service not configured")
	}

	w, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	fields := BuildEmailFields(w, s.orgName)
	deliveryID, err := s.mail.Send(ctx, mailer.Message{
		From:    s.sender,
		To:      []string{fields.To},
		Subject: fields.Subject,
		HTML:    RenderEmailHTML(fields),
	})
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeDependencyFailed, "failed to send warning email")
	}

	if err := s.ledger.SetEmailSent(ctx, id); err != nil {
		return "", fmt.Errorf("marking email sent: %w", err)
	}
	s.metrics.ObserveEmailSent()
	s.logger.InfoContext(ctx, "warning email sent", "warning_id", id, "delivery_id", deliveryID)
	return deliveryID, nil
}
