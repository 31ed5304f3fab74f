package myft

import (
	"net/url"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsKeepOrder(t *testing.T) {
	p := Params{{Key: "page", Value: 2}, {Key: "limit", Value: 10}}
	assert.Equal(t, "page=2&limit=10", p.Encode())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `{"page":2,"limit":10}`, string(out))
}

func TestParamsSetAndGet(t *testing.T) {
	var p Params
	p = p.Set("a", 1).Set("b", "x").Set("a", 3)

	assert.Equal(t, Params{{Key: "a", Value: 3}, {Key: "b", Value: "x"}}, p)

	v, ok := p.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = p.Get("missing")
	assert.False(t, ok)
}

func TestParamsEncodeEscapes(t *testing.T) {
	p := Params{{Key: "q", Value: "climate change&more"}, {Key: "empty", Value: nil}}
	assert.Equal(t, "q=climate+change%26more&empty=", p.Encode())
}

func TestEncodeQuery(t *testing.T) {
	cases := []struct {
		name string
		data any
		want string
	}{
		{"nil", nil, ""},
		{"params", Params{{Key: "z", Value: 1}, {Key: "a", Value: 2}}, "z=1&a=2"},
		{"map any", map[string]any{"z": 1, "a": true}, "a=true&z=1"},
		{"map string", map[string]string{"limit": "10", "page": "2"}, "limit=10&page=2"},
		{"values", url.Values{"status": {"new"}}, "status=new"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := encodeQuery(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := encodeQuery(42)
	assert.ErrorIs(t, err, ErrUnsupportedQuery)
}

func TestAppendQuery(t *testing.T) {
	assert.Equal(t, "https://x/a", appendQuery("https://x/a", ""))
	assert.Equal(t, "https://x/a?b=1", appendQuery("https://x/a", "b=1"))
	assert.Equal(t, "https://x/a?status=new&b=1", appendQuery("https://x/a?status=new", "b=1"))
}
