package myft

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/financial-times/myft.go/pkg/constants"
	"github.com/financial-times/myft.go/pkg/urls"
)

func (c *Client) AddActor(ctx context.Context, actor string, data any, opts ...RequestOption) ([]byte, error) {
	return c.FetchJSON(ctx, http.MethodPost, actor, data, opts...)
}

func (c *Client) GetActor(ctx context.Context, actor, id string, opts ...RequestOption) ([]byte, error) {
	return c.FetchJSON(ctx, http.MethodGet, actorPath(actor, id), nil, opts...)
}

func (c *Client) UpdateActor(ctx context.Context, actor, id string, data any, opts ...RequestOption) ([]byte, error) {
	return c.FetchJSON(ctx, http.MethodPut, actorPath(actor, id), data, opts...)
}

func (c *Client) RemoveActor(ctx context.Context, actor, id string, opts ...RequestOption) ([]byte, error) {
	return c.FetchJSON(ctx, http.MethodDelete, actorPath(actor, id), nil, opts...)
}

// GetAllRelationship lists every subject the actor has the relationship with.
// params becomes the query string, e.g. Params{{"page", 2}, {"limit", 10}}.
func (c *Client) GetAllRelationship(ctx context.Context, actor, id, relationship, subjectType string, params any, opts ...RequestOption) ([]byte, error) {
	return c.FetchJSON(ctx, http.MethodGet, relationshipPath(actor, id, relationship, subjectType), params, opts...)
}

func (c *Client) GetRelationship(ctx context.Context, actor, id, relationship, subjectType, subject string, params any, opts ...RequestOption) ([]byte, error) {
	return c.FetchJSON(ctx, http.MethodGet, subjectPath(actor, id, relationship, subjectType, subject), params, opts...)
}

func (c *Client) AddRelationship(ctx context.Context, actor, id, relationship, subjectType string, data any, opts ...RequestOption) ([]byte, error) {
	return c.FetchJSON(ctx, http.MethodPost, relationshipPath(actor, id, relationship, subjectType), data, opts...)
}

func (c *Client) UpdateRelationship(ctx context.Context, actor, id, relationship, subjectType, subject string, data any, opts ...RequestOption) ([]byte, error) {
	return c.FetchJSON(ctx, http.MethodPut, subjectPath(actor, id, relationship, subjectType, subject), data, opts...)
}

func (c *Client) RemoveRelationship(ctx context.Context, actor, id, relationship, subjectType, subject string, opts ...RequestOption) ([]byte, error) {
	return c.FetchJSON(ctx, http.MethodDelete, subjectPath(actor, id, relationship, subjectType, subject), nil, opts...)
}

// PurgeActor removes the actor and every relationship it has.
func (c *Client) PurgeActor(ctx context.Context, actor, id string, opts ...RequestOption) ([]byte, error) {
	return c.FetchJSON(ctx, http.MethodPost, "purge/"+actorPath(actor, id), nil, opts...)
}

func (c *Client) PurgeRelationship(ctx context.Context, actor, id, relationship string, opts ...RequestOption) ([]byte, error) {
	return c.FetchJSON(ctx, http.MethodPost, fmt.Sprintf("purge/%s/%s", actorPath(actor, id), relationship), nil, opts...)
}

// GetConceptsFromReadingHistory returns the concepts of the articles a user read recently,
// at most limit of them.
func (c *Client) GetConceptsFromReadingHistory(ctx context.Context, userID string, limit int, params Params, headers map[string]string) ([]byte, error) {
	params = append(Params(nil), params...).Set("limit", strconv.Itoa(limit))
	return c.FetchJSON(ctx, http.MethodGet, actorPath("user", userID)+"/history/concepts", params,
		WithHeaders(headers), WithHeader(constants.HeaderUserUUID, userID))
}

// GetArticlesFromReadingHistory returns the articles a user read in the given day window.
// days is relative to today, -7 being the last week.
func (c *Client) GetArticlesFromReadingHistory(ctx context.Context, userID string, days int, params Params, headers map[string]string) ([]byte, error) {
	params = append(Params(nil), params...).Set("days", strconv.Itoa(days))
	return c.FetchJSON(ctx, http.MethodGet, actorPath("user", userID)+"/history/articles", params,
		WithHeaders(headers), WithHeader(constants.HeaderUserUUID, userID))
}

func (c *Client) GetUserLastSeenTimestamp(ctx context.Context, userID string, opts ...RequestOption) ([]byte, error) {
	opts = append(opts, WithHeader(constants.HeaderUserUUID, userID))
	return c.FetchJSON(ctx, http.MethodGet, actorPath("user", userID)+"/last-seen", nil, opts...)
}

func (c *Client) PersonaliseURL(path, userID string) string {
	return urls.PersonaliseURL(path, userID)
}

func (c *Client) IsPersonalisedURL(path string) bool {
	return urls.IsPersonalisedURL(path)
}

func (c *Client) IsImmutableURL(path string) bool {
	return urls.IsImmutableURL(path)
}

func (c *Client) IsValidUUID(s string) bool {
	return urls.IsValidUUID(s)
}

func actorPath(actor, id string) string {
	return actor + "/" + id
}

func relationshipPath(actor, id, relationship, subjectType string) string {
	return fmt.Sprintf("%s/%s/%s", actorPath(actor, id), relationship, subjectType)
}

func subjectPath(actor, id, relationship, subjectType, subject string) string {
	return relationshipPath(actor, id, relationship, subjectType) + "/" + subject
}
