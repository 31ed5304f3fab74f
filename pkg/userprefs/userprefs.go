// Package userprefs loads, adds and removes the relationships of one signed in user
// and publishes every result on an events bus.
package userprefs

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/financial-times/myft.go/pkg/events"
	"github.com/financial-times/myft.go/pkg/logger"
	"github.com/financial-times/myft.go/pkg/models"
	"github.com/financial-times/myft.go/pkg/notifications"
)

type Client struct {
	fetcher notifications.Fetcher
	userID  string
	bus     events.Bus
	logger  logger.Logger

	pollerOpts []notifications.Option

	initOnce      sync.Once
	notifications *notifications.Poller

	mu     sync.RWMutex
	loaded map[models.Verb]models.PollResponse
}

type Option func(*Client)

func WithBus(bus events.Bus) Option {
	return func(c *Client) {
		c.bus = bus
	}
}

func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithPollerOptions configures the notification poller started by Init.
func WithPollerOptions(opts ...notifications.Option) Option {
	return func(c *Client) {
		c.pollerOpts = append(c.pollerOpts, opts...)
	}
}

func New(fetcher notifications.Fetcher, userID string, opts ...Option) *Client {
	c := &Client{
		fetcher: fetcher,
		userID:  userID,
		loaded:  make(map[models.Verb]models.PollResponse),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.bus == nil {
		c.bus = events.NewBus()
	}
	if c.logger == nil {
		c.logger = logger.Default()
	}

	pollerOpts := append([]notifications.Option{
		notifications.WithBus(c.bus),
		notifications.WithLogger(c.logger),
	}, c.pollerOpts...)
	c.notifications = notifications.New(fetcher, userID, pollerOpts...)

	return c
}

// Bus is where load, add and remove events are published.
func (c *Client) Bus() events.Bus {
	return c.bus
}

func (c *Client) Notifications() *notifications.Poller {
	return c.notifications
}

type InitOptions struct {
	Follow       bool
	SaveForLater bool
	Recommend    bool
}

// Init loads the requested collections and, when following, starts the notification
// poller. Only the first call does anything. Load failures are logged, not returned,
// so one unavailable collection does not prevent the others from loading.
func (c *Client) Init(ctx context.Context, opts InitOptions) {
	c.initOnce.Do(func() {
		if opts.Follow {
			c.notifications.Start(ctx)
			c.loadLogged(ctx, models.VerbFollowed)
		}
		if opts.SaveForLater {
			c.loadLogged(ctx, models.VerbForLater)
		}
		if opts.Recommend {
			c.loadLogged(ctx, models.VerbRecommended)
		}
	})
}

func (c *Client) loadLogged(ctx context.Context, verb models.Verb) {
	if _, err := c.Load(ctx, verb); err != nil {
		c.logger.Error("failed to load user prefs", "verb", verb, "user", c.userID, "error", err)
	}
}

// Load fetches every subject of verb and publishes a load event. The event always
// carries the body as returned by the service; Count and Items are filled in when
// the body has the {Count, Items} shape.
func (c *Client) Load(ctx context.Context, verb models.Verb) (models.PollResponse, error) {
	rel, err := models.LookupRelationship(verb)
	if err != nil {
		return models.PollResponse{}, err
	}

	raw, err := c.fetcher.FetchJSON(ctx, http.MethodGet, rel.CollectionPath(c.userID), nil)
	if err != nil {
		return models.PollResponse{}, fmt.Errorf("load %s: %w", verb, err)
	}
	res, err := models.ParseCollection(raw)
	if err != nil {
		return models.PollResponse{}, fmt.Errorf("load %s: %w", verb, err)
	}

	c.mu.Lock()
	previous := c.loaded[verb]
	c.loaded[verb] = res
	c.mu.Unlock()

	c.bus.Publish(events.New(verb, events.KindLoad, events.LoadPayload{
		Count: res.Count,
		Items: res.Items,
		Delta: res.Count - previous.Count,
		Raw:   res.Raw,
	}))

	return res, nil
}

// Loaded returns the last collection loaded for verb.
func (c *Client) Loaded(verb models.Verb) (models.PollResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res, ok := c.loaded[verb]
	return res, ok
}

// Add creates the relationship between the user and subject. meta is sent as the
// body and may be nil.
func (c *Client) Add(ctx context.Context, verb models.Verb, subject string, meta any) ([]byte, error) {
	rel, err := models.LookupRelationship(verb)
	if err != nil {
		return nil, err
	}

	raw, err := c.fetcher.FetchJSON(ctx, http.MethodPut, rel.SubjectPath(c.userID, subject), meta)
	if err != nil {
		return nil, fmt.Errorf("add %s %s: %w", verb, subject, err)
	}

	c.bus.Publish(events.New(verb, events.KindAdd, events.ChangePayload{Subject: subject, Results: raw}))
	return raw, nil
}

func (c *Client) Remove(ctx context.Context, verb models.Verb, subject string) error {
	rel, err := models.LookupRelationship(verb)
	if err != nil {
		return err
	}

	if _, err := c.fetcher.FetchJSON(ctx, http.MethodDelete, rel.SubjectPath(c.userID, subject), nil); err != nil {
		return fmt.Errorf("remove %s %s: %w", verb, subject, err)
	}

	c.bus.Publish(events.New(verb, events.KindRemove, events.ChangePayload{Subject: subject}))
	return nil
}
