package campaigns

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ragavan2104/mailblaster/pkg/mailer"
)

// Relay composes and delivers mail. *relay.Relay implements it.
type Relay interface {
	Ready() bool
	Prepare(msg mailer.Message) (*mailer.Email, error)
	Deliver(ctx context.Context, email *mailer.Email, to string) (string, error)
}

// Saver persists a finished campaign. *Store implements it.
type Saver interface {
	Save(ctx context.Context, r Record) (uuid.UUID, error)
}

// Recorder receives dispatch metrics. *metrics.Metrics implements it.
type Recorder interface {
	IncCampaigns()
	IncDelivery(success bool)
	IncRelayUnavailable()
	ObserveDispatch(d time.Duration)
}

// DispatcherConfig holds dispatch settings.
type DispatcherConfig struct {
	Concurrency int `env:"MAILER_CONCURRENCY" envDefault:"1"`
}

// Dispatcher sends a campaign to every recipient and records the outcome.
type Dispatcher struct {
	relay       Relay
	store       Saver
	metrics     Recorder
	logger      *slog.Logger
	now         func() time.Time
	concurrency int
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithRecorder reports metrics to r.
func WithRecorder(r Recorder) DispatcherOption {
	return func(d *Dispatcher) {
		if r != nil {
			d.metrics = r
		}
	}
}

// WithDispatcherLogger sets the logger.
func WithDispatcherLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithDispatcherClock overrides the time source for SentAt.
func WithDispatcherClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(relay Relay, store Saver, cfg DispatcherConfig, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		relay:       relay,
		store:       store,
		metrics:     nopRecorder{},
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
		concurrency: max(cfg.Concurrency, 1),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Request is one campaign.
type Request struct {
	Subject string
	Body    string
	Emails  []string
	SentBy  string
}

// Result is the dispatch outcome returned to the caller.
type Result struct {
	Summary   Summary   `json:"summary"`
	Results   []Outcome `json:"results"`
	HistoryID uuid.UUID `json:"historyId"`
}

// Dispatch validates req, sends one message per recipient in order, and
// saves exactly one record. Per-recipient failures are recorded, not returned.
//
// Delivery runs on a context detached from ctx's cancellation, so a client
// disconnect never leaves a campaign half sent and unrecorded.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Result, error) {
	if req.Body == "" {
		return Result{}, ErrMessageRequired
	}
	if len(req.Emails) == 0 {
		return Result{}, ErrRecipientsRequired
	}
	if !d.relay.Ready() {
		d.metrics.IncRelayUnavailable()
		return Result{}, ErrRelayUnavailable
	}

	email, err := d.relay.Prepare(mailer.Message{
		Subject: req.Subject,
		Body:    req.Body,
		Tags:    mailer.SimpleTags("campaign"),
	})
	if err != nil {
		return Result{}, errors.Join(ErrComposeFailed, err)
	}

	ctx = context.WithoutCancel(ctx)
	start := time.Now()
	d.logger.InfoContext(ctx, "campaign started",
		slog.String("subject", email.Subject),
		slog.Int("recipients", len(req.Emails)),
	)

	outcomes := d.deliverAll(ctx, email, req.Emails)

	d.metrics.IncCampaigns()
	d.metrics.ObserveDispatch(time.Since(start))

	record, err := NewRecord(email.Subject, req.Body, req.SentBy, outcomes, d.now())
	if err != nil {
		return Result{}, err
	}
	d.logger.InfoContext(ctx, "campaign completed",
		slog.Int("total", record.TotalRecipients),
		slog.Int("successful", record.SuccessfulSends),
		slog.Int("failed", record.FailedSends),
		slog.Duration("elapsed", time.Since(start)),
	)

	id, err := d.store.Save(ctx, record)
	if err != nil {
		d.logger.ErrorContext(ctx, "campaign sent but not recorded", slog.Any("error", err))
		return Result{}, err
	}

	return Result{Summary: record.Summary(), Results: outcomes, HistoryID: id}, nil
}

// deliverAll stores each outcome at its recipient's index.
func (d *Dispatcher) deliverAll(ctx context.Context, email *mailer.Email, to []string) []Outcome {
	outcomes := make([]Outcome, len(to))

	var g errgroup.Group
	g.SetLimit(d.concurrency)
	for i, addr := range to {
		g.Go(func() error {
			outcomes[i] = d.deliver(ctx, email, addr)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (d *Dispatcher) deliver(ctx context.Context, email *mailer.Email, to string) Outcome {
	msgID, err := d.relay.Deliver(ctx, email, to)
	if err != nil {
		d.metrics.IncDelivery(false)
		d.logger.WarnContext(ctx, "delivery failed", slog.String("email", to), slog.Any("error", err))
		return Outcome{Email: to, Status: StatusFailed, Error: err.Error()}
	}
	d.metrics.IncDelivery(true)
	return Outcome{Email: to, Status: StatusSuccess, MessageID: msgID}
}

// SingleResult is the outcome of SendSingle.
type SingleResult struct {
	Email     string `json:"email"`
	MessageID string `json:"messageId"`
}

// SendSingle delivers one message and records nothing.
func (d *Dispatcher) SendSingle(ctx context.Context, to, subject, body string) (SingleResult, error) {
	to = strings.TrimSpace(to)
	if to == "" || body == "" {
		return SingleResult{}, ErrSingleFieldsMissing
	}
	if !d.relay.Ready() {
		d.metrics.IncRelayUnavailable()
		return SingleResult{}, ErrRelayUnavailable
	}

	email, err := d.relay.Prepare(mailer.Message{Subject: subject, Body: body})
	if err != nil {
		return SingleResult{}, errors.Join(ErrComposeFailed, err)
	}

	msgID, err := d.relay.Deliver(ctx, email, to)
	d.metrics.IncDelivery(err == nil)
	if err != nil {
		return SingleResult{}, err
	}
	return SingleResult{Email: to, MessageID: msgID}, nil
}

type nopRecorder struct{}

func (nopRecorder) IncCampaigns()                 {}
func (nopRecorder) IncDelivery(bool)              {}
func (nopRecorder) IncRelayUnavailable()          {}
func (nopRecorder) ObserveDispatch(time.Duration) {}
