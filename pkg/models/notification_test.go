package models_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financial-times/myft.go/pkg/models"
)

const fixture = `{
	"Count": 2,
	"Items": [
		{"UUID": "12345", "Status": "new", "Meta": {"title": "First"}},
		{"UUID": "678910", "Status": "seen"}
	]
}`

func TestParsePollResponse(t *testing.T) {
	res, err := models.ParsePollResponse([]byte(fixture))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Count)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "12345", res.Items[0].ID)
	assert.Equal(t, models.StatusNew, res.Items[0].Status)
	assert.JSONEq(t, `{"UUID": "12345", "Status": "new", "Meta": {"title": "First"}}`, string(res.Items[0].Raw))
	assert.Equal(t, models.StatusSeen, res.Items[1].Status)

	assert.True(t, res.Contains("678910"))
	assert.False(t, res.Contains("nope"))
}

func TestParsePollResponseLowercaseKeys(t *testing.T) {
	res, err := models.ParsePollResponse([]byte(`{"count": 1, "items": [{"id": "a", "status": "read"}]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "a", res.Items[0].ID)
	assert.Equal(t, models.StatusRead, res.Items[0].Status)
}

func TestParsePollResponseCountDefaultsToItems(t *testing.T) {
	res, err := models.ParsePollResponse([]byte(`{"Items": [{"UUID": "a"}, {"UUID": "b"}, {"UUID": "c"}]}`))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
}

func TestParsePollResponseEmpty(t *testing.T) {
	res, err := models.ParsePollResponse([]byte(`{}`))
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.Empty(t, res.Items)
}

func TestParsePollResponseNullItems(t *testing.T) {
	for _, body := range []string{
		`{"Count": 0, "Items": null}`,
		`{"count": 0, "items": null}`,
		`{"Items": null}`,
	} {
		res, err := models.ParsePollResponse([]byte(body))
		require.NoError(t, err, body)
		assert.Zero(t, res.Count, body)
		assert.Empty(t, res.Items, body)
	}
}

func TestParsePollResponseRejectsUnexpectedShapes(t *testing.T) {
	for _, body := range []string{
		`[]`,
		`"text"`,
		`{"Items": [1, 2]}`,
		`{"Items": [{"Status": "new"}]}`,
		`{"Count": "two", "Items": []}`,
		`{"Items": "none"}`,
	} {
		_, err := models.ParsePollResponse([]byte(body))
		assert.Error(t, err, body)
	}
}

func TestPollResponseNilContains(t *testing.T) {
	var res *models.PollResponse
	assert.False(t, res.Contains("a"))
}

func TestNotificationItemMarshalKeepsRaw(t *testing.T) {
	res, err := models.ParsePollResponse([]byte(fixture))
	require.NoError(t, err)

	out, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, fixture, string(out))

	out, err = json.Marshal(models.NotificationItem{ID: "x", Status: models.StatusRead})
	require.NoError(t, err)
	assert.JSONEq(t, `{"UUID": "x", "Status": "read"}`, string(out))
}

func TestStatusUpdateBody(t *testing.T) {
	out, err := json.Marshal(models.StatusUpdate{Status: models.StatusRead})
	require.NoError(t, err)
	assert.Equal(t, `{"status":"read"}`, string(out))
}

func TestParseCollection(t *testing.T) {
	t.Run("poll shape", func(t *testing.T) {
		res, err := models.ParseCollection([]byte(fixture))
		require.NoError(t, err)
		assert.Equal(t, 2, res.Count)
		assert.Len(t, res.Items, 2)
		assert.JSONEq(t, fixture, string(res.Raw))
	})

	t.Run("top level array", func(t *testing.T) {
		body := `[{"UUID": "Topic:x"}, {"UUID": "Topic:y"}]`
		res, err := models.ParseCollection([]byte(body))
		require.NoError(t, err)
		assert.Equal(t, 2, res.Count)
		assert.Empty(t, res.Items)
		assert.JSONEq(t, body, string(res.Raw))
	})

	t.Run("items without id", func(t *testing.T) {
		body := `{"Count": 1, "Items": [{"subject": "Topic:x"}]}`
		res, err := models.ParseCollection([]byte(body))
		require.NoError(t, err)
		assert.Equal(t, 1, res.Count)
		assert.Empty(t, res.Items)
		assert.JSONEq(t, body, string(res.Raw))
	})

	t.Run("not json", func(t *testing.T) {
		_, err := models.ParseCollection([]byte(`<html>`))
		require.Error(t, err)
	})
}
