// Package events is the in-memory bus the myFT clients publish their results on.
//
// Contract:
//   - Publish never blocks.
//   - Subscribers get buffered channels and may drop events when slow.
//   - A subscriber only receives the kinds it asked for, or every kind when it
//     asked for none.
package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/financial-times/myft.go/pkg/models"
)

type Kind string

const (
	KindLoad   Kind = "load"
	KindAdd    Kind = "add"
	KindRemove Kind = "remove"
)

const defaultBuffer = 8

// Event is one myft.<verb>.<kind> notification.
type Event struct {
	Name    string      `json:"name"`
	Kind    Kind        `json:"kind"`
	Verb    models.Verb `json:"verb"`
	Time    time.Time   `json:"time"`
	Payload any         `json:"payload,omitempty"`
}

// Name is the event name for a verb and kind, e.g. myft.followed.load
func Name(verb models.Verb, kind Kind) string {
	return "myft." + string(verb) + "." + string(kind)
}

func New(verb models.Verb, kind Kind, payload any) Event {
	return Event{
		Name:    Name(verb, kind),
		Kind:    kind,
		Verb:    verb,
		Payload: payload,
	}
}

// LoadPayload carries a whole collection. Delta is the change in Count since
// the previous load of the same collection. Raw is the body of a relationship
// collection load, whatever its shape.
type LoadPayload struct {
	Count int                       `json:"Count"`
	Items []models.NotificationItem `json:"Items"`
	Delta int                       `json:"delta"`
	Raw   json.RawMessage           `json:"raw,omitempty"`
}

// ChangePayload carries one added or removed subject.
type ChangePayload struct {
	Subject string          `json:"subject"`
	Results json.RawMessage `json:"results,omitempty"`
}

type Bus interface {
	Publish(e Event)
	// Subscribe returns a channel receiving events of the given kinds and a
	// func that unsubscribes and closes the channel.
	Subscribe(buffer int, kinds ...Kind) (ch <-chan Event, unsubscribe func())
}

func NewBus() Bus {
	return &memBus{subs: map[uint64]subscriber{}}
}

type subscriber struct {
	ch    chan Event
	kinds map[Kind]struct{}
}

func (s subscriber) wants(k Kind) bool {
	if len(s.kinds) == 0 {
		return true
	}
	_, ok := s.kinds[k]
	return ok
}

type memBus struct {
	mu   sync.RWMutex
	subs map[uint64]subscriber
	seq  atomic.Uint64
}

func (b *memBus) Publish(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	// sends never block; the read lock keeps unsubscribe from closing a channel mid-send
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if !sub.wants(e.Kind) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
		}
	}
}

func (b *memBus) Subscribe(buffer int, kinds ...Kind) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	sub := subscriber{ch: make(chan Event, buffer)}
	if len(kinds) > 0 {
		sub.kinds = make(map[Kind]struct{}, len(kinds))
		for _, k := range kinds {
			sub.kinds[k] = struct{}{}
		}
	}
	id := b.seq.Add(1)

	b.mu.Lock()
	b.subs[id] = sub
	b.mu.Unlock()

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(sub.ch)
		})
	}
	return sub.ch, unsub
}

// Discard is a Bus that drops everything published on it.
type Discard struct{}

func (Discard) Publish(Event) {}

func (Discard) Subscribe(int, ...Kind) (<-chan Event, func()) {
	ch := make(chan Event)
	close(ch)
	return ch, func() {}
}
