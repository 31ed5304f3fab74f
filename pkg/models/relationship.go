package models

import (
	"errors"
	"fmt"
	"sort"
)

// Verb names a relationship between a user and a subject.
type Verb string

const (
	VerbFollowed          Verb = "followed"
	VerbRecommended       Verb = "recommended"
	VerbForLater          Verb = "forlater"
	VerbPreferred         Verb = "preferred"
	VerbArticleFromFollow Verb = "articleFromFollow"
)

// Category is the top level collection a verb is stored under.
type Category string

const (
	CategoryActivities Category = "activities"
	CategoryEvents     Category = "events"
)

var ErrUnknownVerb = errors.New("unknown relationship verb")

// Relationship is the fixed endpoint shape of a verb.
type Relationship struct {
	Verb          Verb
	Category      Category
	SubjectPrefix string
}

var relationships = map[Verb]Relationship{
	VerbFollowed:          {Verb: VerbFollowed, Category: CategoryActivities, SubjectPrefix: "Topic:"},
	VerbRecommended:       {Verb: VerbRecommended, Category: CategoryActivities, SubjectPrefix: "Article:"},
	VerbForLater:          {Verb: VerbForLater, Category: CategoryActivities, SubjectPrefix: "Article:"},
	VerbPreferred:         {Verb: VerbPreferred, Category: CategoryActivities, SubjectPrefix: "Preference:"},
	VerbArticleFromFollow: {Verb: VerbArticleFromFollow, Category: CategoryEvents, SubjectPrefix: "Article:"},
}

// LookupRelationship returns the endpoint shape of verb, or ErrUnknownVerb.
func LookupRelationship(verb Verb) (Relationship, error) {
	r, ok := relationships[verb]
	if !ok {
		return Relationship{}, fmt.Errorf("%w: %q", ErrUnknownVerb, string(verb))
	}
	return r, nil
}

// Verbs returns every known verb in lexical order.
func Verbs() []Verb {
	verbs := make([]Verb, 0, len(relationships))
	for v := range relationships {
		verbs = append(verbs, v)
	}
	sort.Slice(verbs, func(i, j int) bool { return verbs[i] < verbs[j] })
	return verbs
}

// UserSubject is how the activity and event collections address a user.
func UserSubject(userID string) string {
	return "User:guid-" + userID
}

// CollectionPath is the endpoint listing every subject of the relationship,
// e.g. activities/User:guid-abcd/followed/Topic:
func (r Relationship) CollectionPath(userID string) string {
	return fmt.Sprintf("%s/%s/%s/%s", r.Category, UserSubject(userID), r.Verb, r.SubjectPrefix)
}

// SubjectPath is the endpoint of a single subject,
// e.g. events/User:guid-abcd/articleFromFollow/Article:12345
func (r Relationship) SubjectPath(userID, subject string) string {
	return r.CollectionPath(userID) + subject
}
