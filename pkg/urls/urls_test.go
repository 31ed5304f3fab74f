package urls_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financial-times/myft.go/pkg/urls"
)

const (
	testUUID   = "3f041222-22b9-4098-b4a6-7967e48fe4f7"
	shortID    = "abcd"
	contentID  = "6c9c03b0-7bf9-11e5-98fb-5a6d4728f74e"
	listID     = "0e6f700d-d1c7-4667-9ec3-268a4572d3dc"
	anotherUID = "00000000-0000-0000-0000-000000000001"
)

var personaliseCases = []struct {
	in   string
	want string
}{
	{"/myft", "/myft/abcd"},
	{"/myft/", "/myft/abcd"},
	{"/myft/my-news", "/myft/my-news/abcd"},
	{"/myft/my-news/", "/myft/my-news/abcd"},
	{"/myft/my-news?query=string", "/myft/my-news/abcd?query=string"},
	{"/myft/preferences", "/myft/preferences/abcd"},
	{"/myft/portfolio", "/myft/portfolio/abcd"},
	{"/myft/portfolio/", "/myft/portfolio/abcd"},
	{"/__myft/my-news", "/__myft/my-news/abcd"},

	// immutable
	{"/myft/" + testUUID, "/myft/" + testUUID},
	{"/myft/my-news/" + testUUID, "/myft/my-news/" + testUUID},
	{"/myft/product-tour", "/myft/product-tour"},
	{"/myft/api/skdjfhksjd", "/myft/api/skdjfhksjd"},

	// a non-user uuid in the query string
	{"/myft/article-saved?fragment=true&contentId=" + contentID, "/myft/article-saved/abcd?fragment=true&contentId=" + contentID},

	// lists are public and contain no user id
	{"/myft/list/" + listID, "/myft/list/" + listID},
}

func TestPersonaliseURL(t *testing.T) {
	for _, tc := range personaliseCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, urls.PersonaliseURL(tc.in, shortID))
		})
	}
}

func TestPersonaliseURLWithUUID(t *testing.T) {
	assert.Equal(t, "/myft/"+testUUID, urls.PersonaliseURL("/myft", testUUID))
	assert.Equal(t, "/myft/"+testUUID, urls.PersonaliseURL("/myft/"+testUUID, testUUID))
}

func TestPersonaliseURLIsIdempotent(t *testing.T) {
	inputs := []string{
		"/myft", "/myft/", "/myft/my-news?query=string", "/myft/preferences/",
		"/myft/list/" + listID, "/myft/api/x", "/somewhere/else", "", "?", "/myft?",
	}
	for _, id := range []string{shortID, testUUID, "my-news", "explore"} {
		for _, in := range inputs {
			once := urls.PersonaliseURL(in, id)
			assert.Equal(t, once, urls.PersonaliseURL(once, id), "input %q id %q", in, id)
		}
	}
}

func TestPersonaliseURLPageNameUserID(t *testing.T) {
	for _, in := range []string{"/myft", "/myft/my-news", "/myft/preferences?x=1"} {
		assert.Equal(t, in, urls.PersonaliseURL(in, "my-news"))
		assert.Equal(t, in, urls.PersonaliseURL(in, "preferences"))
	}
}

func TestPersonaliseURLEmptyUserID(t *testing.T) {
	assert.Equal(t, "/myft/my-news", urls.PersonaliseURL("/myft/my-news", ""))
}

func TestIsPersonalisedURL(t *testing.T) {
	assert.True(t, urls.IsPersonalisedURL("/myft/"+testUUID))
	assert.True(t, urls.IsPersonalisedURL("/myft/"+anotherUID))
	assert.True(t, urls.IsPersonalisedURL("/myft/portfolio/"+testUUID+"?x=1"))
	assert.False(t, urls.IsPersonalisedURL("/myft/following/"))
	assert.False(t, urls.IsPersonalisedURL("/myft/article-saved?contentId="+contentID))
	assert.False(t, urls.IsPersonalisedURL("/myft/list/"+listID))
}

func TestIsImmutableURL(t *testing.T) {
	assert.True(t, urls.IsImmutableURL("/myft/"+testUUID))
	assert.True(t, urls.IsImmutableURL("/__myft/api/onsite"))
	assert.True(t, urls.IsImmutableURL("/myft/product-tour"))
	assert.False(t, urls.IsImmutableURL("/myft/following/"))
	assert.False(t, urls.IsImmutableURL("/myft/api"))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, urls.IsValidUUID(testUUID))
	assert.True(t, urls.IsValidUUID(strings.ToUpper(testUUID)))
	assert.False(t, urls.IsValidUUID(shortID))
	assert.False(t, urls.IsValidUUID("urn:uuid:"+testUUID))
	assert.False(t, urls.IsValidUUID("{"+testUUID+"}"))
	assert.False(t, urls.IsValidUUID(strings.ReplaceAll(testUUID, "-", "")))
}

func TestClassifiersAreTotal(t *testing.T) {
	inputs := []string{"", "/", "?", "//", "/myft//", "/myft/\x00", "\xff\xfe", strings.Repeat("/myft", 1000)}
	for _, in := range inputs {
		require.NotPanics(t, func() {
			_ = urls.IsImmutableURL(in)
			_ = urls.IsPersonalisedURL(in)
			_ = urls.IsValidUUID(in)
			_ = urls.PersonaliseURL(in, shortID)
		})
	}
}

func TestPersonaliseURLGolden(t *testing.T) {
	var b strings.Builder
	for _, tc := range personaliseCases {
		fmt.Fprintf(&b, "%s -> %s\n", tc.in, urls.PersonaliseURL(tc.in, shortID))
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "personalise_url", []byte(b.String()))
}
