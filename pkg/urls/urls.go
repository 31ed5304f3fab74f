// Package urls classifies and personalises myFT page paths.
//
// A personalised path carries the user's UUID as a path segment, for example
// /myft/my-news/3f041222-22b9-4098-b4a6-7967e48fe4f7. Immutable paths (API
// routes, the product tour and already personalised paths) are never rewritten.
//
// All functions are pure and total: they never fail and never touch the network.
package urls

import (
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Pages that accept a user id as the segment right after their prefix.
// The empty entry is the myFT root itself.
var personalisablePages = []string{
	"my-news",
	"preferences",
	"portfolio",
	"article-saved",
	"following",
	"saved-articles",
	"alerts",
	"explore",
}

var (
	apiPath         = regexp.MustCompile(`^/(__)?myft/api/`)
	productTourPath = regexp.MustCompile(`^/(__)?myft/product-tour`)

	pagesAlternation = strings.Join(personalisablePages, "|")

	// The segment that would hold a user id: directly under /myft, or under a personalisable page.
	idSegment = regexp.MustCompile(`^/(?:__)?myft/(?:(?:` + pagesAlternation + `)/)?([^/]+)`)

	// A personalisable page with nothing after it but an optional trailing slash.
	templatePath = regexp.MustCompile(`^(/(?:__)?myft(?:/(?:` + pagesAlternation + `))?)/?$`)
)

const uuidLength = 36

// IsValidUUID reports whether s is a canonical, hyphenated UUID.
func IsValidUUID(s string) bool {
	if len(s) != uuidLength {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// IsPersonalisedURL reports whether the path already carries a user id segment.
// The query string is ignored, so UUIDs in query parameters do not count.
func IsPersonalisedURL(rawPath string) bool {
	path, _ := splitQuery(rawPath)
	m := idSegment.FindStringSubmatch(path)
	if m == nil {
		return false
	}
	return IsValidUUID(m[1])
}

// IsImmutableURL reports whether the path must never receive a personalisation segment.
func IsImmutableURL(rawPath string) bool {
	return apiPath.MatchString(rawPath) ||
		productTourPath.MatchString(rawPath) ||
		IsPersonalisedURL(rawPath)
}

// PersonaliseURL inserts userID after the matched page prefix and keeps the query
// string untouched. Immutable paths and paths outside the known pages (lists, for
// example, which are public) are returned unchanged.
//
// Only the page itself is rewritten, not paths below it, which keeps the function
// idempotent even for user ids that are not UUIDs. User ids equal to a page name
// are ambiguous with the page and leave the path unchanged.
func PersonaliseURL(rawPath, userID string) string {
	if userID == "" || slices.Contains(personalisablePages, userID) || IsImmutableURL(rawPath) {
		return rawPath
	}

	path, query := splitQuery(rawPath)
	m := templatePath.FindStringSubmatch(path)
	if m == nil {
		return rawPath
	}

	return m[1] + "/" + userID + query
}

// splitQuery returns the path and the query string including its leading '?'.
func splitQuery(rawPath string) (path, query string) {
	if i := strings.IndexByte(rawPath, '?'); i >= 0 {
		return rawPath[:i], rawPath[i:]
	}
	return rawPath, ""
}
