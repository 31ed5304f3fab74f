package models

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/goccy/go-json"
)

type NotificationStatus string

const (
	StatusNew  NotificationStatus = "new"
	StatusRead NotificationStatus = "read"
	StatusSeen NotificationStatus = "seen"
)

var ErrUnexpectedShape = errors.New("unexpected poll response shape")

// NotificationItem is one event of a notification collection.
// Raw keeps the item exactly as the service sent it.
type NotificationItem struct {
	ID     string
	Status NotificationStatus
	Raw    []byte
}

func (n NotificationItem) MarshalJSON() ([]byte, error) {
	if len(n.Raw) > 0 {
		return n.Raw, nil
	}
	return json.Marshal(map[string]string{"UUID": n.ID, "Status": string(n.Status)})
}

// PollResponse is the collection returned by one notification poll.
type PollResponse struct {
	Count int                `json:"Count"`
	Items []NotificationItem `json:"Items"`

	// Raw is the whole body, set by ParseCollection.
	Raw []byte `json:"-"`
}

// Contains reports whether an item with the given id is in the collection.
func (p *PollResponse) Contains(id string) bool {
	if p == nil {
		return false
	}
	for _, item := range p.Items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// StatusUpdate is the body of a clear or mark-as-seen request.
type StatusUpdate struct {
	Status NotificationStatus `json:"status"`
}

// ParsePollResponse extracts Count and Items from a poll response body without
// decoding item fields it does not need. Count falls back to the number of items
// when the service omits it.
func ParsePollResponse(data []byte) (PollResponse, error) {
	_, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return PollResponse{}, fmt.Errorf("parse poll response: %w", err)
	}
	if dataType != jsonparser.Object {
		return PollResponse{}, fmt.Errorf("%w: top level is %s", ErrUnexpectedShape, dataType)
	}

	var res PollResponse

	key := itemsKey(data)
	_, itemsType, _, err := jsonparser.Get(data, key)
	switch {
	case errors.Is(err, jsonparser.KeyPathNotFoundError), err == nil && itemsType == jsonparser.Null:
		// no items
	case err != nil:
		return PollResponse{}, fmt.Errorf("parse poll items: %w", err)
	case itemsType != jsonparser.Array:
		return PollResponse{}, fmt.Errorf("%w: items is %s", ErrUnexpectedShape, itemsType)
	default:
		if err := parseItems(data, key, &res); err != nil {
			return PollResponse{}, err
		}
	}

	count, err := firstInt(data, "Count", "count")
	switch {
	case errors.Is(err, jsonparser.KeyPathNotFoundError):
		res.Count = len(res.Items)
	case err != nil:
		return PollResponse{}, fmt.Errorf("parse poll count: %w", err)
	default:
		res.Count = int(count)
	}

	return res, nil
}

// ParseCollection reads a relationship collection. Bodies in the {Count, Items}
// shape are parsed like a poll response. Any other JSON is kept as Raw only, with
// Count taken from a top level array length or a numeric Count key. Raw always
// holds the whole body.
func ParseCollection(data []byte) (PollResponse, error) {
	res, err := ParsePollResponse(data)
	if err == nil {
		res.Raw = bytes.Clone(data)
		return res, nil
	}

	_, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return PollResponse{}, fmt.Errorf("parse collection: %w", err)
	}
	res = PollResponse{Raw: bytes.Clone(data)}
	switch dataType {
	case jsonparser.Array:
		_, err = jsonparser.ArrayEach(data, func([]byte, jsonparser.ValueType, int, error) {
			res.Count++
		})
		if err != nil {
			return PollResponse{}, fmt.Errorf("parse collection: %w", err)
		}
	case jsonparser.Object:
		if count, err := firstInt(data, "Count", "count"); err == nil {
			res.Count = int(count)
		}
	}
	return res, nil
}

func parseItems(data []byte, key string, res *PollResponse) error {
	var itemErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if itemErr != nil {
			return
		}
		if dataType != jsonparser.Object {
			itemErr = fmt.Errorf("%w: item is %s", ErrUnexpectedShape, dataType)
			return
		}
		item, err := parseItem(value)
		if err != nil {
			itemErr = err
			return
		}
		res.Items = append(res.Items, item)
	}, key)
	if err != nil {
		return fmt.Errorf("parse poll items: %w", err)
	}
	return itemErr
}

func itemsKey(data []byte) string {
	if _, _, _, err := jsonparser.Get(data, "Items"); err == nil {
		return "Items"
	}
	return "items"
}

func firstInt(data []byte, keys ...string) (int64, error) {
	err := jsonparser.KeyPathNotFoundError
	for _, key := range keys {
		var v int64
		v, err = jsonparser.GetInt(data, key)
		if !errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return v, err
		}
	}
	return 0, err
}

func firstString(data []byte, keys ...string) string {
	for _, key := range keys {
		if v, err := jsonparser.GetString(data, key); err == nil {
			return v
		}
	}
	return ""
}

func parseItem(value []byte) (NotificationItem, error) {
	id := firstString(value, "UUID", "id", "uuid")
	if id == "" {
		return NotificationItem{}, fmt.Errorf("%w: item without id", ErrUnexpectedShape)
	}
	return NotificationItem{
		ID:     id,
		Status: NotificationStatus(firstString(value, "Status", "status")),
		Raw:    bytes.Clone(value),
	}, nil
}
