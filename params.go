package myft

import (
	"bytes"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

type Param struct {
	Key   string
	Value any
}

// Params is an ordered set of request parameters. As a GET query it keeps insertion
// order; as a body it is a JSON object with keys in the same order.
type Params []Param

// Set replaces the value of key, or appends it when absent.
func (p Params) Set(key string, value any) Params {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Key: key, Value: value})
}

func (p Params) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// Encode renders p as a URL query without the leading "?".
func (p Params) Encode() string {
	var sb strings.Builder
	for i, param := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(param.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(queryValue(param.Value)))
	}
	return sb.String()
}

func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, param := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(param.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(param.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal param %s: %w", param.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func queryValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// encodeQuery turns the data of a GET request into a query string.
func encodeQuery(data any) (string, error) {
	switch d := data.(type) {
	case nil:
		return "", nil
	case Params:
		return d.Encode(), nil
	case url.Values:
		return d.Encode(), nil
	case map[string]any:
		return sortedParams(d).Encode(), nil
	case map[string]string:
		m := make(map[string]any, len(d))
		for k, v := range d {
			m[k] = v
		}
		return sortedParams(m).Encode(), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedQuery, data)
	}
}

func sortedParams(m map[string]any) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := make(Params, 0, len(keys))
	for _, k := range keys {
		p = append(p, Param{Key: k, Value: m[k]})
	}
	return p
}
