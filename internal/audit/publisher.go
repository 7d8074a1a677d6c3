package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"bfcms/pkg/requestcontext"
)

// Publisher decouples audit emission from request latency. Publish enqueues;
// a single worker goroutine drains the queue into the store. A full queue
// drops the event rather than blocking the request.
type Publisher struct {
	store  Store
	logger *slog.Logger
	queue  chan *Event
}

func NewPublisher(store Store, logger *slog.Logger, buffer int) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{store: store, logger: logger, queue: make(chan *Event, buffer)}
}

// Publish records an action against a subject. Actor, client IP and User-Agent
// come from the request context.
func (p *Publisher) Publish(ctx context.Context, action, subject string) {
	actor := requestcontext.Actor(ctx)
	e := &Event{
		ID:        uuid.NewString(),
		ActorID:   actor.UserID,
		ActorName: actor.FullName,
		Action:    action,
		Subject:   subject,
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
		CreatedAt: requestcontext.Now(ctx),
	}
	select {
	case p.queue <- e:
	default:
		p.logger.Warn("audit queue full, event dropped", "action", action, "subject", subject)
	}
}

// Run drains the queue until ctx is cancelled, then flushes whatever is left.
func (p *Publisher) Run(ctx context.Context) {
	for {
		select {
		case e := <-p.queue:
			p.persist(e)
		case <-ctx.Done():
			for {
				select {
				case e := <-p.queue:
					p.persist(e)
				default:
					return
				}
			}
		}
	}
}

func (p *Publisher) persist(e *Event) {
	// Store writes use a fresh context: the request that produced the event
	// may already be finished.
	if err := p.store.Append(context.Background(), e); err != nil {
		p.logger.Error("audit event write failed", "action", e.Action, "error", err)
	}
}
