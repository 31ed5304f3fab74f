package userprefs_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financial-times/myft.go"
	"github.com/financial-times/myft.go/internal/fakemyft"
	"github.com/financial-times/myft.go/pkg/events"
	"github.com/financial-times/myft.go/pkg/logger"
	"github.com/financial-times/myft.go/pkg/models"
	"github.com/financial-times/myft.go/pkg/notifications"
	"github.com/financial-times/myft.go/pkg/userprefs"
)

const userID = "abcd"

type noopScheduler struct {
	scheduled int
}

func (s *noopScheduler) Schedule(time.Duration, func()) func() {
	s.scheduled++
	return func() {}
}

func setup(t *testing.T, opts ...userprefs.Option) (*userprefs.Client, *fakemyft.Server, <-chan events.Event) {
	t.Helper()
	server := fakemyft.NewServer()
	server.Start()
	t.Cleanup(server.Close)

	api, err := myft.New(myft.Config{APIRoot: server.URL()}, myft.WithLogger(logger.Nop()))
	require.NoError(t, err)

	opts = append([]userprefs.Option{userprefs.WithLogger(logger.Nop())}, opts...)
	c := userprefs.New(api, userID, opts...)
	ch, unsub := c.Bus().Subscribe(16)
	t.Cleanup(unsub)
	return c, server, ch
}

func next(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("no event published")
		return events.Event{}
	}
}

func TestLoad(t *testing.T) {
	c, server, ch := setup(t)
	server.AddStubResponse(fakemyft.SimpleStubResponse(http.MethodGet,
		"activities/User:guid-abcd/followed/Topic:",
		`{"Count": 1, "Items": [{"UUID": "Topic:climate"}]}`))

	res, err := c.Load(context.Background(), models.VerbFollowed)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	e := next(t, ch)
	assert.Equal(t, "myft.followed.load", e.Name)
	assert.Equal(t, 1, e.Payload.(events.LoadPayload).Count)

	loaded, ok := c.Loaded(models.VerbFollowed)
	require.True(t, ok)
	assert.Equal(t, "Topic:climate", loaded.Items[0].ID)

	_, ok = c.Loaded(models.VerbForLater)
	assert.False(t, ok)
}

func TestLoadKeepsBodyOfAnyShape(t *testing.T) {
	for name, body := range map[string]string{
		"array":           `[{"UUID": "Topic:x"}, {"UUID": "Topic:y"}]`,
		"items without id": `{"Count": 2, "Items": [{"subject": "Topic:x"}, {"subject": "Topic:y"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, server, ch := setup(t)
			server.AddStubResponse(fakemyft.SimpleStubResponse(http.MethodGet,
				"activities/User:guid-abcd/followed/Topic:", body))

			res, err := c.Load(context.Background(), models.VerbFollowed)
			require.NoError(t, err)
			assert.Equal(t, 2, res.Count)
			assert.JSONEq(t, body, string(res.Raw))

			payload := next(t, ch).Payload.(events.LoadPayload)
			assert.Equal(t, 2, payload.Count)
			assert.Equal(t, 2, payload.Delta)
			assert.JSONEq(t, body, string(payload.Raw))

			loaded, ok := c.Loaded(models.VerbFollowed)
			require.True(t, ok)
			assert.JSONEq(t, body, string(loaded.Raw))
		})
	}
}

func TestAdd(t *testing.T) {
	c, server, ch := setup(t)
	server.AddStubResponse(fakemyft.SimpleStubResponse(http.MethodPut,
		"activities/User:guid-abcd/forlater/Article:a1", `{"UUID": "Article:a1"}`))

	raw, err := c.Add(context.Background(), models.VerbForLater, "a1", map[string]any{"notify": "true"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"UUID": "Article:a1"}`, string(raw))

	req, _ := server.LastRequest()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.JSONEq(t, `{"notify": true}`, string(req.Body))

	e := next(t, ch)
	assert.Equal(t, "myft.forlater.add", e.Name)
	payload := e.Payload.(events.ChangePayload)
	assert.Equal(t, "a1", payload.Subject)
	assert.JSONEq(t, `{"UUID": "Article:a1"}`, string(payload.Results))
}

func TestRemove(t *testing.T) {
	c, server, ch := setup(t)
	server.AddStubResponse(fakemyft.SimpleStubResponse(http.MethodDelete,
		"activities/User:guid-abcd/followed/Topic:markets", `{}`))

	require.NoError(t, c.Remove(context.Background(), models.VerbFollowed, "markets"))

	e := next(t, ch)
	assert.Equal(t, "myft.followed.remove", e.Name)
	assert.Equal(t, "markets", e.Payload.(events.ChangePayload).Subject)
}

func TestFailuresPublishNothing(t *testing.T) {
	c, server, ch := setup(t)

	_, err := c.Load(context.Background(), models.VerbFollowed)
	assert.ErrorIs(t, err, myft.ErrNotFound)

	err = c.Remove(context.Background(), models.VerbFollowed, "markets")
	assert.ErrorIs(t, err, myft.ErrNotFound)

	assert.Empty(t, ch)
	assert.Len(t, server.Requests(), 2)
}

func TestUnknownVerb(t *testing.T) {
	c, server, _ := setup(t)

	_, err := c.Load(context.Background(), "liked")
	assert.ErrorIs(t, err, models.ErrUnknownVerb)
	_, err = c.Add(context.Background(), "liked", "a1", nil)
	assert.ErrorIs(t, err, models.ErrUnknownVerb)
	err = c.Remove(context.Background(), "liked", "a1")
	assert.ErrorIs(t, err, models.ErrUnknownVerb)

	assert.Empty(t, server.Requests())
}

func TestInit(t *testing.T) {
	sched := &noopScheduler{}
	c, server, _ := setup(t, userprefs.WithPollerOptions(notifications.WithScheduler(sched)))
	server.AddStubResponse(fakemyft.StubResponse{
		Matcher: fakemyft.RequestMatcher{Method: http.MethodGet},
		Body:    `{"Count": 0, "Items": []}`,
	})

	c.Init(context.Background(), userprefs.InitOptions{Follow: true, SaveForLater: true})
	c.Init(context.Background(), userprefs.InitOptions{Recommend: true})

	var paths []string
	for _, req := range server.Requests() {
		paths = append(paths, req.Path)
	}
	assert.Equal(t, []string{
		"events/User:guid-abcd/articleFromFollow/getSinceDate/-168h",
		"activities/User:guid-abcd/followed/Topic:",
		"activities/User:guid-abcd/forlater/Article:",
	}, paths)

	assert.Equal(t, notifications.StatePolling, c.Notifications().State())
	assert.Equal(t, 1, sched.scheduled)
	c.Notifications().Stop()
}
