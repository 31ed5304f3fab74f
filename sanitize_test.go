package myft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/financial-times/myft.go"
)

func TestSanitize(t *testing.T) {
	in := map[string]any{
		"a": "true",
		"b": "false",
		"c": "maybe",
		"d": map[string]any{"e": "true", "f": []any{"false", map[string]any{"g": "false"}}},
		"h": 1,
	}

	out := myft.Sanitize(in)

	assert.Equal(t, map[string]any{
		"a": true,
		"b": false,
		"c": "maybe",
		"d": map[string]any{"e": true, "f": []any{"false", map[string]any{"g": false}}},
		"h": 1,
	}, out)
	assert.Equal(t, "true", in["a"], "input must not be modified")
}

func TestSanitizeLeavesScalarsAlone(t *testing.T) {
	assert.Nil(t, myft.Sanitize(nil))
	assert.Equal(t, "true", myft.Sanitize("true"))
	assert.Equal(t, 3, myft.Sanitize(3))
}

func TestSanitizeParamsAndStringMaps(t *testing.T) {
	assert.Equal(t,
		myft.Params{{Key: "instant", Value: true}, {Key: "page", Value: 2}},
		myft.Sanitize(myft.Params{{Key: "instant", Value: "true"}, {Key: "page", Value: 2}}))

	assert.Equal(t,
		map[string]any{"instant": false, "name": "x"},
		myft.Sanitize(map[string]string{"instant": "false", "name": "x"}))
}
