package notifications

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/financial-times/myft.go"
	"github.com/financial-times/myft.go/pkg/constants"
	"github.com/financial-times/myft.go/pkg/events"
	"github.com/financial-times/myft.go/pkg/logger"
	"github.com/financial-times/myft.go/pkg/models"
)

// Fetcher is the part of *myft.Client the poller needs.
type Fetcher interface {
	FetchJSON(ctx context.Context, method, endpoint string, data any, opts ...myft.RequestOption) ([]byte, error)
}

var _ Fetcher = (*myft.Client)(nil)

type Poller struct {
	fetcher  Fetcher
	userID   string
	relation models.Relationship

	interval  time.Duration
	since     string
	scheduler Scheduler
	bus       events.Bus
	logger    logger.Logger
	onError   func(error)

	// errLimiter throttles the log lines of failed scheduled polls.
	errLimiter *rate.Limiter

	stateMu    sync.Mutex
	state      State
	generation uint64
	cancel     func()

	// pollMu serialises polls so a slow response can never overwrite a newer one.
	pollMu sync.Mutex

	mu       sync.RWMutex
	previous *models.PollResponse
}

type Option func(*Poller)

// WithInterval sets the time between scheduled polls. Defaults to 30 seconds.
// The default cron scheduler runs at whole seconds only, see CronInterval.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		p.interval = d
	}
}

func WithScheduler(s Scheduler) Option {
	return func(p *Poller) {
		p.scheduler = s
	}
}

func WithBus(bus events.Bus) Option {
	return func(p *Poller) {
		p.bus = bus
	}
}

func WithLogger(l logger.Logger) Option {
	return func(p *Poller) {
		p.logger = l
	}
}

// WithErrorHook installs a func called with the error of every failed scheduled poll.
func WithErrorHook(fn func(error)) Option {
	return func(p *Poller) {
		p.onError = fn
	}
}

// WithSince sets the look-back window of each poll, e.g. "-168h".
func WithSince(since string) Option {
	return func(p *Poller) {
		p.since = since
	}
}

func New(fetcher Fetcher, userID string, opts ...Option) *Poller {
	relation, _ := models.LookupRelationship(models.VerbArticleFromFollow)

	p := &Poller{
		fetcher:    fetcher,
		userID:     userID,
		relation:   relation,
		interval:   constants.DefaultPollInterval,
		since:      constants.DefaultPollSince,
		errLimiter: rate.NewLimiter(rate.Every(time.Minute), 1),
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Default()
	}
	if p.bus == nil {
		p.bus = events.Discard{}
	}
	if p.scheduler == nil {
		p.scheduler = NewCronScheduler(p.logger)
	}

	return p
}

func (p *Poller) State() State {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	return p.state
}

func (p *Poller) transitionTo(newState State) error {
	if err := p.state.validateTransitionTo(newState); err != nil {
		return err
	}

	p.state = newState
	p.logger.Debug("notifications.Poller state transitioned", "new_state", newState, "user", p.userID)

	return nil
}

// Start polls once and then on every scheduler tick. It does nothing when the
// poller is already polling.
//
// Scheduled polls run with ctx's values but are not cancelled with it; use Stop.
func (p *Poller) Start(ctx context.Context) {
	p.stateMu.Lock()
	if p.state == StatePolling {
		p.stateMu.Unlock()
		return
	}
	if err := p.transitionTo(StatePolling); err != nil {
		p.stateMu.Unlock()
		p.logger.Error("notifications.Poller failed to start", "error", err)
		return
	}
	p.generation++
	gen := p.generation
	p.stateMu.Unlock()

	if err := p.Poll(ctx); err != nil {
		p.reportError(err)
	}

	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	// Stop, or Stop and Start again, may have happened during the first poll.
	if p.state != StatePolling || p.generation != gen {
		return
	}

	tickCtx := context.WithoutCancel(ctx)
	p.cancel = p.scheduler.Schedule(p.interval, func() {
		if err := p.Poll(tickCtx); err != nil {
			p.reportError(err)
		}
	})
}

// Stop cancels future polls. It is safe to call on an idle poller.
func (p *Poller) Stop() {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	if p.state == StateIdle {
		return
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if err := p.transitionTo(StateIdle); err != nil {
		p.logger.Error("notifications.Poller failed to stop", "error", err)
	}
}

// Poll fetches the new events of the user and publishes a load event carrying the
// collection and the change in count since the previous successful poll. A failed
// poll leaves the previous collection in place and publishes nothing.
func (p *Poller) Poll(ctx context.Context) error {
	p.pollMu.Lock()
	defer p.pollMu.Unlock()

	raw, err := p.fetcher.FetchJSON(ctx, http.MethodGet, p.pollPath(),
		myft.Params{{Key: "status", Value: string(models.StatusNew)}})
	if err != nil {
		return fmt.Errorf("poll notifications: %w", err)
	}

	res, err := models.ParsePollResponse(raw)
	if err != nil {
		return fmt.Errorf("poll notifications: %w", err)
	}

	p.mu.Lock()
	previousCount := 0
	if p.previous != nil {
		previousCount = p.previous.Count
	}
	p.previous = &res
	p.mu.Unlock()

	p.bus.Publish(events.New(models.VerbArticleFromFollow, events.KindLoad, events.LoadPayload{
		Count: res.Count,
		Items: res.Items,
		Delta: res.Count - previousCount,
	}))

	return nil
}

// Loaded returns the collection of the last successful poll.
func (p *Poller) Loaded() (models.PollResponse, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.previous == nil {
		return models.PollResponse{}, false
	}
	return *p.previous, true
}

// Clear marks the notifications as read and publishes one remove event per id
// cleared. Unless optimistic, ids missing from the loaded collection are skipped
// without a request.
func (p *Poller) Clear(ctx context.Context, ids []string, optimistic bool) error {
	return p.setStatus(ctx, ids, models.StatusRead, events.KindRemove, optimistic)
}

// MarkAsSeen marks every notification as seen and publishes one add event per id.
func (p *Poller) MarkAsSeen(ctx context.Context, ids []string) error {
	return p.setStatus(ctx, ids, models.StatusSeen, events.KindAdd, true)
}

func (p *Poller) setStatus(ctx context.Context, ids []string, status models.NotificationStatus, kind events.Kind, optimistic bool) error {
	var errs []error
	for _, id := range ids {
		if !optimistic && !p.isLoaded(id) {
			p.logger.Warn("skipping notification missing from the loaded collection", "id", id, "status", status)
			continue
		}

		raw, err := p.fetcher.FetchJSON(ctx, http.MethodPut, p.relation.SubjectPath(p.userID, id),
			models.StatusUpdate{Status: status})
		if err != nil {
			errs = append(errs, fmt.Errorf("mark notification %s as %s: %w", id, status, err))
			continue
		}

		p.bus.Publish(events.New(models.VerbArticleFromFollow, kind, events.ChangePayload{
			Subject: id,
			Results: raw,
		}))
	}
	return errors.Join(errs...)
}

func (p *Poller) isLoaded(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.previous.Contains(id)
}

func (p *Poller) pollPath() string {
	return fmt.Sprintf("%s/%s/%s/getSinceDate/%s",
		p.relation.Category, models.UserSubject(p.userID), p.relation.Verb, p.since)
}

func (p *Poller) reportError(err error) {
	if p.onError != nil {
		p.onError(err)
	}
	if p.errLimiter.Allow() {
		p.logger.Warn("myft notifications poll failed", "user", p.userID, "error", err)
	}
}
